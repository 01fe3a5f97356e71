package tui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type ToastKind int

const (
	ToastStatus ToastKind = iota
	ToastError
	ToastWarning
	ToastSuccess
)

const (
	StatusToastDuration  = 4 * time.Second
	ErrorToastDuration   = 8 * time.Second
	WarningToastDuration = 6 * time.Second

	maxToasts = 4
)

type Toast struct {
	ID        int
	Kind      ToastKind
	Message   string
	CreatedAt time.Time
	Duration  time.Duration
}

func (t Toast) expired(now time.Time) bool {
	return now.Sub(t.CreatedAt) >= t.Duration
}

func durationFor(kind ToastKind) time.Duration {
	switch kind {
	case ToastError:
		return ErrorToastDuration
	case ToastWarning:
		return WarningToastDuration
	default:
		return StatusToastDuration
	}
}

// Toasts is the newest-first stack of transient notifications.
// It is only touched from the bubbletea update loop.
type Toasts struct {
	items  []Toast
	nextID int
	now    func() time.Time
}

func NewToasts() *Toasts {
	return &Toasts{nextID: 1, now: time.Now}
}

func (t *Toasts) Add(kind ToastKind, message string) int {
	toast := Toast{
		ID:        t.nextID,
		Kind:      kind,
		Message:   message,
		CreatedAt: t.now(),
		Duration:  durationFor(kind),
	}
	t.nextID++

	t.items = append([]Toast{toast}, t.items...)
	if len(t.items) > maxToasts {
		t.items = t.items[:maxToasts]
	}
	return toast.ID
}

// Expire drops toasts past their duration and reports whether any remain.
func (t *Toasts) Expire() bool {
	now := t.now()
	active := t.items[:0]
	for _, item := range t.items {
		if !item.expired(now) {
			active = append(active, item)
		}
	}
	t.items = active
	return len(t.items) > 0
}

// DismissNewest removes the most recent toast.
func (t *Toasts) DismissNewest() {
	if len(t.items) > 0 {
		t.items = t.items[1:]
	}
}

func (t *Toasts) Items() []Toast {
	out := make([]Toast, len(t.items))
	copy(out, t.items)
	return out
}

type toastTickMsg time.Time

func toastTick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(ts time.Time) tea.Msg {
		return toastTickMsg(ts)
	})
}

func renderToast(t Toast, width int) string {
	maxWidth := 56
	if width > 0 && width-4 < maxWidth {
		maxWidth = width - 4
	}
	if maxWidth < 24 {
		maxWidth = 24
	}

	var color lipgloss.AdaptiveColor
	var icon string
	switch t.Kind {
	case ToastError:
		color, icon = colorError, "x"
	case ToastWarning:
		color, icon = colorWarning, "!"
	case ToastSuccess:
		color, icon = colorSuccess, "+"
	default:
		color, icon = colorInfo, "i"
	}

	body := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon+" ") +
		lipgloss.NewStyle().Foreground(colorText).Width(maxWidth-6).Render(t.Message)

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1).
		MaxWidth(maxWidth).
		Render(body)
}

func renderToasts(items []Toast, width int) string {
	if len(items) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(items))
	for _, t := range items {
		rendered = append(rendered, renderToast(t, width))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	if width > 0 {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
	}
	return strings.TrimRight(stack, "\n")
}
