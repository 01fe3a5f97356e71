package tui

import (
	"fmt"
	"strings"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/domain/application"
	"job-board/internal/pkg/optional"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type recruiterAppsLoadedMsg struct {
	id   int64
	apps []dto.RecruiterApplicationResponse
	err  error
}

type appUpdatedMsg struct {
	id  int64
	app dto.ApplicationResponse
	err error
}

type editMode int

const (
	editNone editMode = iota
	editStatus
	editNote
)

// recruiterAppsScreen lists applications to the recruiter's jobs, either
// across all jobs or, when jobID is set, for one job.
type recruiterAppsScreen struct {
	id       int64
	api      API
	jobID    uuid.UUID
	jobTitle string
	status   string
	list     listing
	all      []dto.RecruiterApplicationResponse
	apps     []dto.RecruiterApplicationResponse
	mode     editMode
	choice   int
	note     textinput.Model
	busy     bool
}

func newRecruiterAppsScreen(api API) *recruiterAppsScreen {
	note := textinput.New()
	note.Prompt = ""
	note.Placeholder = "empty clears the note"
	note.CharLimit = 5000

	return &recruiterAppsScreen{id: nextScreenID(), api: api, list: newListing(), note: note}
}

func newJobApplicantsScreen(api API, jobID uuid.UUID, title string) *recruiterAppsScreen {
	s := newRecruiterAppsScreen(api)
	s.jobID = jobID
	s.jobTitle = title
	return s
}

func (s *recruiterAppsScreen) Init() tea.Cmd { return s.load() }

func (s *recruiterAppsScreen) Title() string {
	if s.jobID != uuid.Nil {
		return "Applicants: " + s.jobTitle
	}
	return "Applications"
}

func (s *recruiterAppsScreen) Help() string {
	switch s.mode {
	case editStatus:
		return "left/right choose  enter save  esc cancel"
	case editNote:
		return "enter save  esc cancel"
	}
	return "f filter status  s change status  N note  r reload"
}

func (s *recruiterAppsScreen) Capturing() bool { return s.mode != editNone }

func (s *recruiterAppsScreen) load() tea.Cmd {
	id, api, jobID, status := s.id, s.api, s.jobID, s.status
	return tea.Batch(s.list.start(), func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		if jobID == uuid.Nil {
			apps, err := api.RecruiterApplications(ctx, status)
			return recruiterAppsLoadedMsg{id: id, apps: apps, err: err}
		}
		res, err := api.JobApplications(ctx, jobID)
		if err != nil {
			return recruiterAppsLoadedMsg{id: id, err: err}
		}
		apps := make([]dto.RecruiterApplicationResponse, 0, len(res.Applications))
		for _, a := range res.Applications {
			apps = append(apps, dto.RecruiterApplicationResponse{
				ApplicationResponse: a.ApplicationResponse,
				Job:                 res.Job,
				Student:             a.Student,
			})
		}
		return recruiterAppsLoadedMsg{id: id, apps: apps}
	})
}

// applyFilter narrows the loaded rows; the server already filtered the
// cross-job listing so this only matters for a single job.
func (s *recruiterAppsScreen) applyFilter() {
	if s.status == "" {
		s.apps = s.all
	} else {
		s.apps = make([]dto.RecruiterApplicationResponse, 0, len(s.all))
		for _, a := range s.all {
			if a.Status == s.status {
				s.apps = append(s.apps, a)
			}
		}
	}
	s.list.settle(len(s.apps), nil)
}

func (s *recruiterAppsScreen) selected() (dto.RecruiterApplicationResponse, bool) {
	if s.list.state != stateReady || s.list.cursor >= len(s.apps) {
		return dto.RecruiterApplicationResponse{}, false
	}
	return s.apps[s.list.cursor], true
}

func (s *recruiterAppsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case recruiterAppsLoadedMsg:
		if msg.id != s.id {
			return s, nil
		}
		if msg.err != nil {
			s.list.settle(0, msg.err)
			return s, failed(msg.err)
		}
		s.all = msg.apps
		s.applyFilter()
		return s, nil

	case appUpdatedMsg:
		if msg.id != s.id {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			return s, failed(msg.err)
		}
		for i := range s.all {
			if s.all[i].ID == msg.app.ID {
				s.all[i].ApplicationResponse = msg.app
			}
		}
		s.applyFilter()
		return s, notify(ToastSuccess, "Application updated.")

	case tea.KeyMsg:
		return s, s.handleKey(msg)
	}
	return s, s.list.tick(msg)
}

func (s *recruiterAppsScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch s.mode {
	case editStatus:
		switch key {
		case "esc":
			s.mode = editNone
		case "left", "h":
			s.choice = (s.choice - 1 + len(application.Statuses)) % len(application.Statuses)
		case "right", "l":
			s.choice = (s.choice + 1) % len(application.Statuses)
		case "enter":
			s.mode = editNone
			status := string(application.Statuses[s.choice])
			return s.save(dto.UpdateApplicationStatusRequest{Status: optional.Of(status)})
		}
		return nil

	case editNote:
		switch key {
		case "esc":
			s.mode = editNone
			s.note.Blur()
			return nil
		case "enter":
			s.mode = editNone
			s.note.Blur()
			notes := optional.BlankAsNull(optional.TrimSpace(optional.Of(s.note.Value())))
			return s.save(dto.UpdateApplicationStatusRequest{RecruiterNotes: notes})
		}
		var cmd tea.Cmd
		s.note, cmd = s.note.Update(msg)
		return cmd
	}

	if s.list.move(key, len(s.apps)) {
		return nil
	}

	switch key {
	case "r":
		return s.load()
	case "f":
		s.status = nextStatusFilter(s.status)
		s.list.cursor = 0
		if s.jobID != uuid.Nil {
			s.applyFilter()
			return nil
		}
		return s.load()
	}

	a, ok := s.selected()
	if !ok || s.busy {
		return nil
	}
	switch key {
	case "s":
		s.mode = editStatus
		s.choice = 0
		for i, st := range application.Statuses {
			if string(st) == a.Status {
				s.choice = i
			}
		}
	case "N":
		s.mode = editNote
		if a.RecruiterNotes != nil {
			s.note.SetValue(*a.RecruiterNotes)
		} else {
			s.note.SetValue("")
		}
		return s.note.Focus()
	}
	return nil
}

func (s *recruiterAppsScreen) save(req dto.UpdateApplicationStatusRequest) tea.Cmd {
	a, ok := s.selected()
	if !ok {
		return nil
	}
	s.busy = true
	id, api := s.id, s.api
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		updated, err := api.UpdateApplicationStatus(ctx, a.ID, req)
		return appUpdatedMsg{id: id, app: updated, err: err}
	}
}

// nextStatusFilter cycles "" -> each application status -> "".
func nextStatusFilter(cur string) string {
	if cur == "" {
		return string(application.Statuses[0])
	}
	for i, st := range application.Statuses {
		if string(st) == cur && i+1 < len(application.Statuses) {
			return string(application.Statuses[i+1])
		}
	}
	return ""
}

func (s *recruiterAppsScreen) View() string {
	var b strings.Builder
	filter := s.status
	if filter == "" {
		filter = "all"
	}
	b.WriteString(labelStyle.Render("Status filter "+filter) + "\n\n")

	if text, ok := s.list.placeholder("applications", "Share your job postings to attract applicants."); ok {
		b.WriteString(text + "\n")
		return b.String()
	}

	for i, a := range s.apps {
		name := a.Student.FirstName + " " + a.Student.LastName
		line := fmt.Sprintf("%s %s  %s  %s", statusBadge(a.Status), name, labelStyle.Render(a.Student.Email), labelStyle.Render(a.Job.Title))
		b.WriteString(cursorPrefix(i == s.list.cursor) + line + "\n")
	}

	a, ok := s.selected()
	if !ok {
		return b.String()
	}
	b.WriteString("\n")
	if a.CoverLetter != nil {
		b.WriteString(labelStyle.Render("Cover letter ") + textStyle.Render(*a.CoverLetter) + "\n")
	}
	if a.Student.Bio != nil {
		b.WriteString(labelStyle.Render("Bio ") + textStyle.Render(*a.Student.Bio) + "\n")
	}
	switch s.mode {
	case editStatus:
		b.WriteString(labelStyle.Render("New status ") + selectedStyle.Render("< "+string(application.Statuses[s.choice])+" >") + "\n")
	case editNote:
		b.WriteString(labelStyle.Render("Note ") + s.note.View() + "\n")
	default:
		if a.RecruiterNotes != nil {
			b.WriteString(labelStyle.Render("Note ") + textStyle.Render(*a.RecruiterNotes) + "\n")
		}
	}
	return b.String()
}
