package tui

import (
	"fmt"
	"strings"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/domain/job"
	"job-board/internal/pkg/optional"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type myJobsLoadedMsg struct {
	id   int64
	jobs []dto.JobResponse
	err  error
}

type jobUpdatedMsg struct {
	id  int64
	job dto.JobResponse
	err error
}

type jobDeletedMsg struct {
	id    int64
	jobID uuid.UUID
	err   error
}

// myJobsScreen is a recruiter's own postings, every status included.
type myJobsScreen struct {
	id         int64
	api        API
	list       listing
	jobs       []dto.JobResponse
	confirming bool
	busy       bool
}

func newMyJobsScreen(api API) *myJobsScreen {
	return &myJobsScreen{id: nextScreenID(), api: api, list: newListing()}
}

func (s *myJobsScreen) Init() tea.Cmd { return s.load() }

func (s *myJobsScreen) Title() string { return "My jobs" }

func (s *myJobsScreen) Help() string {
	if s.confirming {
		return "y confirm delete  any other key cancel"
	}
	return "s cycle status  d delete  v applicants  enter details  n new job  r reload"
}

func (s *myJobsScreen) Capturing() bool { return s.confirming }

func (s *myJobsScreen) load() tea.Cmd {
	id, api := s.id, s.api
	return tea.Batch(s.list.start(), func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		jobs, err := api.MyJobs(ctx)
		return myJobsLoadedMsg{id: id, jobs: jobs, err: err}
	})
}

func (s *myJobsScreen) selected() (dto.JobResponse, bool) {
	if s.list.state != stateReady || s.list.cursor >= len(s.jobs) {
		return dto.JobResponse{}, false
	}
	return s.jobs[s.list.cursor], true
}

func (s *myJobsScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case myJobsLoadedMsg:
		if msg.id != s.id {
			return s, nil
		}
		if msg.err != nil {
			s.list.settle(0, msg.err)
			return s, failed(msg.err)
		}
		s.jobs = msg.jobs
		s.list.settle(len(s.jobs), nil)
		return s, nil

	case jobUpdatedMsg:
		if msg.id != s.id {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			return s, failed(msg.err)
		}
		for i := range s.jobs {
			if s.jobs[i].ID == msg.job.ID {
				s.jobs[i] = msg.job
			}
		}
		return s, notify(ToastSuccess, fmt.Sprintf("%q is now %s.", msg.job.Title, msg.job.Status))

	case jobDeletedMsg:
		if msg.id != s.id {
			return s, nil
		}
		s.busy = false
		if msg.err != nil {
			return s, failed(msg.err)
		}
		kept := s.jobs[:0]
		for _, j := range s.jobs {
			if j.ID != msg.jobID {
				kept = append(kept, j)
			}
		}
		s.jobs = kept
		s.list.settle(len(s.jobs), nil)
		return s, notify(ToastSuccess, "Job deleted.")

	case jobPostedMsg:
		s.jobs = append([]dto.JobResponse{msg.job}, s.jobs...)
		s.list.cursor = 0
		s.list.settle(len(s.jobs), nil)
		return s, nil

	case tea.KeyMsg:
		return s, s.handleKey(msg.String())
	}
	return s, s.list.tick(msg)
}

func (s *myJobsScreen) handleKey(key string) tea.Cmd {
	if s.confirming {
		s.confirming = false
		if key != "y" {
			return nil
		}
		j, ok := s.selected()
		if !ok {
			return nil
		}
		s.busy = true
		id, api := s.id, s.api
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			return jobDeletedMsg{id: id, jobID: j.ID, err: api.DeleteJob(ctx, j.ID)}
		}
	}

	if s.list.move(key, len(s.jobs)) {
		return nil
	}

	switch key {
	case "r":
		return s.load()
	case "n":
		return push(newPostJobScreen(s.api))
	}

	j, ok := s.selected()
	if !ok || s.busy {
		return nil
	}
	switch key {
	case "enter":
		return push(newJobDetailScreen(s.api, j))
	case "v":
		return push(newJobApplicantsScreen(s.api, j.ID, j.Title))
	case "d":
		s.confirming = true
	case "s":
		s.busy = true
		id, api, next := s.id, s.api, nextJobStatus(j.Status)
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			updated, err := api.UpdateJob(ctx, j.ID, dto.UpdateJobRequest{Status: optional.Of(next)})
			return jobUpdatedMsg{id: id, job: updated, err: err}
		}
	}
	return nil
}

// nextJobStatus cycles open -> closed -> paused -> open.
func nextJobStatus(cur string) string {
	for i, st := range job.Statuses {
		if string(st) == cur {
			return string(job.Statuses[(i+1)%len(job.Statuses)])
		}
	}
	return string(job.StatusOpen)
}

func (s *myJobsScreen) View() string {
	if text, ok := s.list.placeholder("jobs", "Press n to post your first job."); ok {
		return text + "\n"
	}

	var b strings.Builder
	for i, j := range s.jobs {
		line := fmt.Sprintf("%s %s  %s", statusBadge(j.Status), j.Title, labelStyle.Render(fmt.Sprintf("%d applicants", j.ApplicationCount)))
		b.WriteString(cursorPrefix(i == s.list.cursor) + line + "\n")
	}
	if s.confirming {
		if j, ok := s.selected(); ok {
			b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Delete %q and all its applications? (y/N)", j.Title)) + "\n")
		}
	}
	return b.String()
}
