package tui

import (
	"fmt"
	"strings"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/domain/application"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type myAppsLoadedMsg struct {
	id   int64
	apps []dto.StudentApplicationResponse
	err  error
}

type withdrawnMsg struct {
	id    int64
	appID uuid.UUID
	err   error
}

// myAppsScreen is a student's applications, newest first.
type myAppsScreen struct {
	id         int64
	api        API
	list       listing
	apps       []dto.StudentApplicationResponse
	confirming bool
	busy       bool
}

func newMyAppsScreen(api API) *myAppsScreen {
	return &myAppsScreen{id: nextScreenID(), api: api, list: newListing()}
}

func (s *myAppsScreen) Init() tea.Cmd { return s.load() }

func (s *myAppsScreen) Title() string { return "My applications" }

func (s *myAppsScreen) Help() string {
	if s.confirming {
		return "y confirm withdraw  any other key cancel"
	}
	return "w withdraw (pending only)  enter job details  r reload"
}

func (s *myAppsScreen) Capturing() bool { return s.confirming }

func (s *myAppsScreen) load() tea.Cmd {
	id, api := s.id, s.api
	return tea.Batch(s.list.start(), func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		apps, err := api.MyApplications(ctx)
		return myAppsLoadedMsg{id: id, apps: apps, err: err}
	})
}

func (s *myAppsScreen) selected() (dto.StudentApplicationResponse, bool) {
	if s.list.state != stateReady || s.list.cursor >= len(s.apps) {
		return dto.StudentApplicationResponse{}, false
	}
	return s.apps[s.list.cursor], true
}

func (s *myAppsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case myAppsLoadedMsg:
		if msg.id != s.id {
			return s, nil
		}
		if msg.err != nil {
			s.list.settle(0, msg.err)
			return s, failed(msg.err)
		}
		s.apps = msg.apps
		s.list.settle(len(s.apps), nil)
		return s, nil

	case withdrawnMsg:
		if msg.id != s.id {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			return s, failed(msg.err)
		}
		kept := s.apps[:0]
		for _, a := range s.apps {
			if a.ID != msg.appID {
				kept = append(kept, a)
			}
		}
		s.apps = kept
		s.list.settle(len(s.apps), nil)
		return s, notify(ToastSuccess, "Application withdrawn.")

	case tea.KeyMsg:
		return s, s.handleKey(msg.String())
	}
	return s, s.list.tick(msg)
}

func (s *myAppsScreen) handleKey(key string) tea.Cmd {
	if s.confirming {
		s.confirming = false
		if key != "y" {
			return nil
		}
		a, ok := s.selected()
		if !ok {
			return nil
		}
		s.busy = true
		id, api := s.id, s.api
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			return withdrawnMsg{id: id, appID: a.ID, err: api.Withdraw(ctx, a.ID)}
		}
	}

	if s.list.move(key, len(s.apps)) {
		return nil
	}
	if key == "r" {
		return s.load()
	}

	a, ok := s.selected()
	if !ok || s.busy {
		return nil
	}
	switch key {
	case "enter":
		return push(newJobDetailScreen(s.api, dto.JobResponse{
			ID:       a.Job.ID,
			Title:    a.Job.Title,
			Company:  a.Job.Company,
			Location: a.Job.Location,
			JobType:  a.Job.JobType,
			Status:   a.Job.Status,
		}))
	case "w":
		if a.Status != string(application.StatusPending) {
			return notify(ToastWarning, "Only pending applications can be withdrawn.")
		}
		s.confirming = true
	}
	return nil
}

func (s *myAppsScreen) View() string {
	if text, ok := s.list.placeholder("applications", "Browse jobs from the home screen to apply."); ok {
		return text + "\n"
	}

	var b strings.Builder
	for i, a := range s.apps {
		line := fmt.Sprintf("%s %s  %s  %s", statusBadge(a.Status), a.Job.Title, labelStyle.Render(a.Job.Company), labelStyle.Render(a.CreatedAt.Format("2006-01-02")))
		b.WriteString(cursorPrefix(i == s.list.cursor) + line + "\n")
	}

	if a, ok := s.selected(); ok {
		if a.RecruiterNotes != nil {
			b.WriteString("\n" + labelStyle.Render("Recruiter notes ") + textStyle.Render(*a.RecruiterNotes) + "\n")
		}
		if s.confirming {
			b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Withdraw your application to %q? (y/N)", a.Job.Title)) + "\n")
		}
	}
	return b.String()
}
