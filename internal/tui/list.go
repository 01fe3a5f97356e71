package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type loadState int

const (
	stateLoading loadState = iota
	stateEmpty
	stateReady
	stateFailed
)

// listing is the loading / empty / list lifecycle shared by list screens.
type listing struct {
	state  loadState
	spin   spinner.Model
	cursor int
}

func newListing() listing {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = labelStyle
	return listing{state: stateLoading, spin: sp}
}

// start moves to the loading state and returns the spinner tick.
func (l *listing) start() tea.Cmd {
	l.state = stateLoading
	return l.spin.Tick
}

// settle records the outcome of a load of n items.
func (l *listing) settle(n int, err error) {
	switch {
	case err != nil:
		l.state = stateFailed
	case n == 0:
		l.state = stateEmpty
	default:
		l.state = stateReady
	}
	l.clamp(n)
}

func (l *listing) clamp(n int) {
	if l.cursor >= n {
		l.cursor = n - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *listing) move(key string, n int) bool {
	switch key {
	case "up", "k":
		if l.cursor > 0 {
			l.cursor--
		}
		return true
	case "down", "j":
		if l.cursor < n-1 {
			l.cursor++
		}
		return true
	}
	return false
}

func (l *listing) tick(msg tea.Msg) tea.Cmd {
	if l.state != stateLoading {
		return nil
	}
	var cmd tea.Cmd
	l.spin, cmd = l.spin.Update(msg)
	return cmd
}

// placeholder renders the non-list states; ok is false once items exist.
func (l listing) placeholder(what, emptyCTA string) (string, bool) {
	switch l.state {
	case stateLoading:
		return l.spin.View() + " Loading " + what + "...", true
	case stateEmpty:
		return mutedStyle.Render("No "+what+" yet.") + "\n" + ctaStyle.Render(emptyCTA), true
	case stateFailed:
		return errorStyle.Render("Could not load "+what+".") + "\n" + ctaStyle.Render("Press r to retry."), true
	}
	return "", false
}
