package tui

import (
	"strconv"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/domain/job"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	postTitle = iota
	postCompany
	postDescription
	postRequirements
	postLocation
	postJobType
	postSalaryMin
	postSalaryMax
	postRemote
	postStatus
)

type jobCreatedMsg struct {
	id  int64
	job dto.JobResponse
	err error
}

// jobPostedMsg is delivered to the screen below after a successful post.
type jobPostedMsg struct {
	job dto.JobResponse
}

type postJobScreen struct {
	id      int64
	api     API
	form    form
	pending bool
}

func newPostJobScreen(api API) *postJobScreen {
	types := make([]string, 0, len(job.Types))
	for _, t := range job.Types {
		types = append(types, string(t))
	}
	statuses := make([]string, 0, len(job.Statuses))
	for _, st := range job.Statuses {
		statuses = append(statuses, string(st))
	}

	return &postJobScreen{
		id:  nextScreenID(),
		api: api,
		form: newForm(
			textField("Title", "", 255),
			textField("Company", "defaults to your company", 255),
			textField("Description", "", 10000),
			textField("Requirements", "optional", 10000),
			textField("Location", "", 255),
			choiceField("Job type", types...),
			textField("Salary min", "optional", 12),
			textField("Salary max", "optional", 12),
			choiceField("Remote", "no", "yes"),
			choiceField("Status", statuses...),
		),
	}
}

func (s *postJobScreen) Init() tea.Cmd { return s.form.setFocus(0) }

func (s *postJobScreen) Title() string { return "Post a job" }

func (s *postJobScreen) Help() string {
	return "tab/enter next  left/right choose  enter on last field submits"
}

func (s *postJobScreen) Capturing() bool { return true }

func (s *postJobScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case jobCreatedMsg:
		if msg.id != s.id {
			return s, nil
		}
		s.pending = false
		if msg.err != nil {
			return s, failed(msg.err)
		}
		return s, tea.Batch(popWith(jobPostedMsg{job: msg.job}), notify(ToastSuccess, "Job posted."))

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return s, pop
		}
		if s.pending {
			return s, nil
		}
		submit, cmd := s.form.Update(msg)
		if !submit {
			return s, cmd
		}
		return s, s.submit()
	}
	return s, nil
}

func (s *postJobScreen) request() (dto.CreateJobRequest, string) {
	f := s.form
	req := dto.CreateJobRequest{
		Title:       f.Value(postTitle),
		Company:     f.Value(postCompany),
		Description: f.Value(postDescription),
		Location:    f.Value(postLocation),
		JobType:     f.Value(postJobType),
		Status:      f.Value(postStatus),
		RemoteOK:    f.Value(postRemote) == "yes",
	}
	if req.Title == "" || req.Description == "" || req.Location == "" {
		return req, "Title, description and location are required."
	}
	if v := f.Value(postRequirements); v != "" {
		req.Requirements = &v
	}

	var ok bool
	if req.SalaryMin, ok = parseSalary(f.Value(postSalaryMin)); !ok {
		return req, "Salary min must be a whole number."
	}
	if req.SalaryMax, ok = parseSalary(f.Value(postSalaryMax)); !ok {
		return req, "Salary max must be a whole number."
	}
	return req, ""
}

func parseSalary(raw string) (*int, bool) {
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, false
	}
	return &n, true
}

func (s *postJobScreen) submit() tea.Cmd {
	req, problem := s.request()
	if problem != "" {
		return notify(ToastWarning, problem)
	}
	s.pending = true

	id, api := s.id, s.api
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		created, err := api.CreateJob(ctx, req)
		return jobCreatedMsg{id: id, job: created, err: err}
	}
}

func (s *postJobScreen) View() string {
	out := titleStyle.Render("New job posting") + "\n\n" + s.form.View()
	if s.pending {
		out += "\n" + mutedStyle.Render("Posting...")
	}
	return out
}
