package tui

import (
	"strings"

	"job-board/internal/client"

	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	label string
	open  func() screen
}

type homeScreen struct {
	session client.Session
	items   []menuItem
	cursor  int
}

func newHomeScreen(api API) *homeScreen {
	s := &homeScreen{session: api.Session()}
	s.items = s.menu(api)
	return s
}

func (s *homeScreen) menu(api API) []menuItem {
	items := []menuItem{
		{label: "Browse jobs", open: func() screen { return newBrowseScreen(api) }},
	}
	switch {
	case s.session.IsRecruiter():
		items = append(items,
			menuItem{label: "My jobs", open: func() screen { return newMyJobsScreen(api) }},
			menuItem{label: "Post a job", open: func() screen { return newPostJobScreen(api) }},
			menuItem{label: "Applications", open: func() screen { return newRecruiterAppsScreen(api) }},
		)
	case s.session.IsStudent():
		items = append(items,
			menuItem{label: "My applications", open: func() screen { return newMyAppsScreen(api) }},
		)
	}
	return append(items, menuItem{label: "Log out"})
}

func (s *homeScreen) Init() tea.Cmd { return nil }

func (s *homeScreen) Title() string { return "Home" }

func (s *homeScreen) Help() string { return "up/down move  enter open" }

func (s *homeScreen) Capturing() bool { return false }

func (s *homeScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch key.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.items)-1 {
			s.cursor++
		}
	case "enter":
		item := s.items[s.cursor]
		if item.open == nil {
			return s, logout
		}
		return s, push(item.open())
	}
	return s, nil
}

func (s *homeScreen) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Hello, "+s.session.FirstName) + "\n\n")
	for i, item := range s.items {
		b.WriteString(cursorPrefix(i == s.cursor) + textStyle.Render(item.label) + "\n")
	}
	return b.String()
}
