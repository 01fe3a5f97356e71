package tui

import (
	"fmt"
	"strings"

	"job-board/internal/delivery/http/dto"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type jobLoadedMsg struct {
	id  int64
	job dto.JobResponse
	err error
}

type checkLoadedMsg struct {
	id  int64
	res dto.CheckApplicationResponse
	err error
}

type appliedMsg struct {
	id  int64
	app dto.ApplicationResponse
	err error
}

// jobDetailScreen shows one job. Students apply from here; the apply action
// is offered only after the check call says they have not applied yet.
type jobDetailScreen struct {
	id      int64
	api     API
	job     dto.JobResponse
	checked bool
	applied *dto.ApplicationResponse
	cover   textinput.Model
	writing bool
	pending bool
}

func newJobDetailScreen(api API, j dto.JobResponse) *jobDetailScreen {
	cover := textinput.New()
	cover.Prompt = ""
	cover.Placeholder = "optional cover letter, enter to submit"
	cover.CharLimit = 5000

	return &jobDetailScreen{id: nextScreenID(), api: api, job: j, cover: cover}
}

func (s *jobDetailScreen) Init() tea.Cmd {
	id, api, jobID := s.id, s.api, s.job.ID
	cmds := []tea.Cmd{func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		j, err := api.GetJob(ctx, jobID)
		return jobLoadedMsg{id: id, job: j, err: err}
	}}
	if api.Session().IsStudent() {
		cmds = append(cmds, func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			res, err := api.CheckApplied(ctx, jobID)
			return checkLoadedMsg{id: id, res: res, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (s *jobDetailScreen) Title() string { return s.job.Title }

func (s *jobDetailScreen) Help() string {
	switch {
	case s.writing:
		return "enter submit  esc cancel"
	case s.canApply():
		return "a apply"
	case s.isOwner():
		return "v view applicants"
	}
	return ""
}

func (s *jobDetailScreen) Capturing() bool { return s.writing }

func (s *jobDetailScreen) isOwner() bool {
	sess := s.api.Session()
	return sess.IsRecruiter() && sess.UserID == s.job.RecruiterID.String()
}

func (s *jobDetailScreen) canApply() bool {
	return s.api.Session().IsStudent() && s.checked && s.applied == nil && !s.pending && s.job.Status == "open"
}

func (s *jobDetailScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case jobLoadedMsg:
		if msg.id != s.id {
			return s, nil
		}
		if msg.err != nil {
			return s, failed(msg.err)
		}
		s.job = msg.job
		return s, nil

	case checkLoadedMsg:
		if msg.id != s.id {
			return s, nil
		}
		if msg.err != nil {
			return s, failed(msg.err)
		}
		s.checked = true
		s.applied = msg.res.Application
		return s, nil

	case appliedMsg:
		if msg.id != s.id {
			return s, nil
		}
		s.pending = false
		if msg.err != nil {
			return s, failed(msg.err)
		}
		app := msg.app
		s.applied = &app
		s.job.ApplicationCount++
		return s, notify(ToastSuccess, "Application submitted.")

	case tea.KeyMsg:
		if s.writing {
			return s, s.updateCover(msg)
		}
		switch msg.String() {
		case "a":
			if s.canApply() {
				s.writing = true
				return s, s.cover.Focus()
			}
		case "v":
			if s.isOwner() {
				return s, push(newJobApplicantsScreen(s.api, s.job.ID, s.job.Title))
			}
		}
	}
	return s, nil
}

func (s *jobDetailScreen) updateCover(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.writing = false
		s.cover.Blur()
		return nil
	case "enter":
		s.writing = false
		s.cover.Blur()
		s.pending = true

		id, api, jobID, letter := s.id, s.api, s.job.ID, s.cover.Value()
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			app, err := api.Apply(ctx, jobID, letter)
			return appliedMsg{id: id, app: app, err: err}
		}
	}
	var cmd tea.Cmd
	s.cover, cmd = s.cover.Update(msg)
	return cmd
}

func (s *jobDetailScreen) View() string {
	j := s.job
	var b strings.Builder

	b.WriteString(titleStyle.Render(j.Title) + "  " + statusBadge(j.Status) + "\n")
	b.WriteString(textStyle.Render(j.Company) + labelStyle.Render("  "+j.Location+"  "+j.JobType) + "\n")
	if j.RemoteOK {
		b.WriteString(labelStyle.Render("Remote friendly") + "\n")
	}
	if salary := salaryRange(j.SalaryMin, j.SalaryMax); salary != "" {
		b.WriteString(labelStyle.Render("Salary ") + salary + "\n")
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("Posted by %s %s, %d applicants", j.Recruiter.FirstName, j.Recruiter.LastName, j.ApplicationCount)) + "\n\n")
	b.WriteString(textStyle.Render(j.Description) + "\n")
	if j.Requirements != nil {
		b.WriteString("\n" + labelStyle.Render("Requirements") + "\n" + textStyle.Render(*j.Requirements) + "\n")
	}

	b.WriteString("\n")
	switch {
	case s.applied != nil:
		b.WriteString(ctaStyle.Render("You applied ") + statusBadge(s.applied.Status) + "\n")
	case s.writing:
		b.WriteString(labelStyle.Render("Cover letter ") + s.cover.View() + "\n")
	case s.pending:
		b.WriteString(mutedStyle.Render("Submitting application...") + "\n")
	case s.canApply():
		b.WriteString(ctaStyle.Render("Press a to apply.") + "\n")
	case s.api.Session().IsStudent() && s.checked && j.Status != "open":
		b.WriteString(mutedStyle.Render("This job is not accepting applications.") + "\n")
	}
	return b.String()
}

func salaryRange(lo, hi *int) string {
	switch {
	case lo != nil && hi != nil:
		return fmt.Sprintf("%d - %d", *lo, *hi)
	case lo != nil:
		return fmt.Sprintf("from %d", *lo)
	case hi != nil:
		return fmt.Sprintf("up to %d", *hi)
	}
	return ""
}
