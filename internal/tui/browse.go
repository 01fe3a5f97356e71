package tui

import (
	"fmt"
	"strings"

	"job-board/internal/client"
	"job-board/internal/delivery/http/dto"
	"job-board/internal/domain/job"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const browsePageSize = 10

type jobsLoadedMsg struct {
	id  int64
	res dto.JobListResponse
	err error
}

const (
	focusNone = iota
	focusSearch
	focusLocation
)

// browseScreen lists open jobs. Its filter and page live and die with the
// screen instance.
type browseScreen struct {
	id       int64
	api      API
	filter   client.JobFilter
	search   textinput.Model
	location textinput.Model
	focus    int
	list     listing
	jobs     []dto.JobResponse
	page     dto.Pagination
}

func newBrowseScreen(api API) *browseScreen {
	search := textinput.New()
	search.Prompt = ""
	search.Placeholder = "title, company or description"
	search.CharLimit = 100

	location := textinput.New()
	location.Prompt = ""
	location.Placeholder = "any"
	location.CharLimit = 100

	return &browseScreen{
		id:       nextScreenID(),
		api:      api,
		filter:   client.JobFilter{Page: 1, Limit: browsePageSize},
		search:   search,
		location: location,
		list:     newListing(),
	}
}

func (s *browseScreen) Init() tea.Cmd { return s.load() }

func (s *browseScreen) Title() string { return "Browse jobs" }

func (s *browseScreen) Help() string {
	if s.focus != focusNone {
		return "enter apply filter  esc cancel"
	}
	return "/ search  L location  t type  o remote  c clear  n/p page  enter details  r reload"
}

func (s *browseScreen) Capturing() bool { return s.focus != focusNone }

func (s *browseScreen) load() tea.Cmd {
	id, api, f := s.id, s.api, s.filter
	fetch := func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		res, err := api.ListJobs(ctx, f)
		return jobsLoadedMsg{id: id, res: res, err: err}
	}
	return tea.Batch(s.list.start(), fetch)
}

func (s *browseScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case jobsLoadedMsg:
		if msg.id != s.id {
			return s, nil
		}
		if msg.err != nil {
			s.list.settle(0, msg.err)
			return s, failed(msg.err)
		}
		s.jobs = msg.res.Jobs
		s.page = msg.res.Pagination
		s.list.settle(len(s.jobs), nil)
		return s, nil

	case tea.KeyMsg:
		if s.focus != focusNone {
			return s, s.updateInput(msg)
		}
		return s, s.handleKey(msg.String())
	}
	return s, s.list.tick(msg)
}

func (s *browseScreen) updateInput(msg tea.KeyMsg) tea.Cmd {
	input := &s.search
	if s.focus == focusLocation {
		input = &s.location
	}

	switch msg.String() {
	case "esc":
		input.SetValue(s.currentFilterText())
		input.Blur()
		s.focus = focusNone
		return nil
	case "enter":
		input.Blur()
		s.focus = focusNone
		s.filter.Search = strings.TrimSpace(s.search.Value())
		s.filter.Location = strings.TrimSpace(s.location.Value())
		s.filter.Page = 1
		return s.load()
	}

	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	return cmd
}

func (s *browseScreen) currentFilterText() string {
	if s.focus == focusLocation {
		return s.filter.Location
	}
	return s.filter.Search
}

func (s *browseScreen) handleKey(key string) tea.Cmd {
	if s.list.move(key, len(s.jobs)) {
		return nil
	}

	switch key {
	case "/":
		s.focus = focusSearch
		return s.search.Focus()
	case "L":
		s.focus = focusLocation
		return s.location.Focus()
	case "t":
		s.filter.JobType = nextJobType(s.filter.JobType)
		s.filter.Page = 1
		return s.load()
	case "o":
		s.filter.RemoteOnly = !s.filter.RemoteOnly
		s.filter.Page = 1
		return s.load()
	case "c":
		s.search.SetValue("")
		s.location.SetValue("")
		s.filter = client.JobFilter{Page: 1, Limit: browsePageSize}
		return s.load()
	case "n", "right":
		if s.filter.Page < s.page.TotalPages {
			s.filter.Page++
			s.list.cursor = 0
			return s.load()
		}
	case "p", "left":
		if s.filter.Page > 1 {
			s.filter.Page--
			s.list.cursor = 0
			return s.load()
		}
	case "r":
		return s.load()
	case "enter":
		if s.list.state == stateReady {
			return push(newJobDetailScreen(s.api, s.jobs[s.list.cursor]))
		}
	}
	return nil
}

// nextJobType cycles "" -> each job type -> "".
func nextJobType(cur string) string {
	if cur == "" {
		return string(job.Types[0])
	}
	for i, t := range job.Types {
		if string(t) == cur && i+1 < len(job.Types) {
			return string(job.Types[i+1])
		}
	}
	return ""
}

func (s *browseScreen) filtersView() string {
	jobType := s.filter.JobType
	if jobType == "" {
		jobType = "all"
	}
	remote := "no"
	if s.filter.RemoteOnly {
		remote = "yes"
	}
	return labelStyle.Render("Search ") + s.search.View() + "\n" +
		labelStyle.Render("Location ") + s.location.View() + "\n" +
		labelStyle.Render(fmt.Sprintf("Type %s  Remote only %s", jobType, remote)) + "\n"
}

func (s *browseScreen) View() string {
	var b strings.Builder
	b.WriteString(s.filtersView() + "\n")

	if text, ok := s.list.placeholder("jobs", "Press c to clear filters or r to reload."); ok {
		b.WriteString(text + "\n")
		return b.String()
	}

	for i, j := range s.jobs {
		line := fmt.Sprintf("%s  %s  %s  %s", j.Title, labelStyle.Render(j.Company), j.Location, labelStyle.Render(j.JobType))
		if j.RemoteOK {
			line += labelStyle.Render("  remote")
		}
		b.WriteString(cursorPrefix(i == s.list.cursor) + line + "\n")
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("\nPage %d of %d  (%d jobs)", s.page.Page, max(s.page.TotalPages, 1), s.page.TotalCount)) + "\n")
	return b.String()
}
