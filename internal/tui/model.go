// Package tui is the terminal front end of the job board.
//
// The root Model owns a stack of screens, the toast stack and session
// handling. Screens talk to the server only through the API interface and
// report failures with failed(), which the root turns into an error toast or,
// on 401, a return to the login screen.
package tui

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"job-board/internal/client"
	"job-board/internal/delivery/http/dto"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

const requestTimeout = 15 * time.Second

// API is the subset of *client.Client the screens use.
type API interface {
	Session() client.Session
	Logout() error

	Signup(ctx context.Context, req dto.SignupRequest) (dto.UserResponse, error)
	Login(ctx context.Context, email, password string) (dto.UserResponse, error)

	ListJobs(ctx context.Context, f client.JobFilter) (dto.JobListResponse, error)
	GetJob(ctx context.Context, id uuid.UUID) (dto.JobResponse, error)
	CreateJob(ctx context.Context, req dto.CreateJobRequest) (dto.JobResponse, error)
	MyJobs(ctx context.Context) ([]dto.JobResponse, error)
	UpdateJob(ctx context.Context, id uuid.UUID, req dto.UpdateJobRequest) (dto.JobResponse, error)
	DeleteJob(ctx context.Context, id uuid.UUID) error

	Apply(ctx context.Context, jobID uuid.UUID, coverLetter string) (dto.ApplicationResponse, error)
	MyApplications(ctx context.Context) ([]dto.StudentApplicationResponse, error)
	CheckApplied(ctx context.Context, jobID uuid.UUID) (dto.CheckApplicationResponse, error)
	Withdraw(ctx context.Context, id uuid.UUID) error
	RecruiterApplications(ctx context.Context, status string) ([]dto.RecruiterApplicationResponse, error)
	JobApplications(ctx context.Context, jobID uuid.UUID) (dto.JobApplicationsResponse, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, req dto.UpdateApplicationStatusRequest) (dto.ApplicationResponse, error)
}

var _ API = (*client.Client)(nil)

// screen is one view on the navigation stack.
type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (screen, tea.Cmd)
	View() string
	Title() string
	Help() string
	// Capturing is true while a text field has focus; global keys are then
	// delivered to the screen instead.
	Capturing() bool
}

var screenSeq atomic.Int64

func nextScreenID() int64 {
	return screenSeq.Add(1)
}

// Navigation and notification messages.
type pushMsg struct{ s screen }

type popMsg struct{}

// popWithMsg closes the top screen and hands msg to the one below.
type popWithMsg struct{ msg tea.Msg }

type resetMsg struct{}

type loggedOutMsg struct{}

type toastMsg struct {
	kind ToastKind
	text string
}

type failedMsg struct{ err error }

func push(s screen) tea.Cmd {
	return func() tea.Msg { return pushMsg{s: s} }
}

func pop() tea.Msg { return popMsg{} }

func popWith(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return popWithMsg{msg: msg} }
}

// reset returns to the home screen of the current session.
func reset() tea.Msg { return resetMsg{} }

func logout() tea.Msg { return loggedOutMsg{} }

func notify(kind ToastKind, text string) tea.Cmd {
	return func() tea.Msg { return toastMsg{kind: kind, text: text} }
}

func failed(err error) tea.Cmd {
	return func() tea.Msg { return failedMsg{err: err} }
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

type Model struct {
	api     API
	stack   []screen
	toasts  *Toasts
	width   int
	height  int
	ticking bool
}

func New(api API) Model {
	m := Model{api: api, toasts: NewToasts()}
	m.stack = []screen{m.home()}
	return m
}

func (m Model) home() screen {
	if !m.api.Session().LoggedIn() {
		return newAuthScreen(m.api)
	}
	return newHomeScreen(m.api)
}

func (m Model) top() screen {
	return m.stack[len(m.stack)-1]
}

func (m Model) Init() tea.Cmd {
	return m.top().Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if !m.top().Capturing() {
			switch msg.String() {
			case "q":
				if len(m.stack) == 1 {
					return m, tea.Quit
				}
			case "esc":
				return m.popScreen()
			case "x":
				m.toasts.DismissNewest()
				return m, nil
			}
		}

	case pushMsg:
		m.stack = append(m.stack, msg.s)
		return m, msg.s.Init()

	case popMsg:
		return m.popScreen()

	case popWithMsg:
		if len(m.stack) > 1 {
			m.stack = m.stack[:len(m.stack)-1]
		}
		return m.Update(msg.msg)

	case resetMsg:
		m.stack = []screen{m.home()}
		return m, m.top().Init()

	case loggedOutMsg:
		_ = m.api.Logout()
		m.stack = []screen{newAuthScreen(m.api)}
		return m, tea.Batch(m.top().Init(), m.addToast(ToastStatus, "Logged out."))

	case toastMsg:
		return m, m.addToast(msg.kind, msg.text)

	case failedMsg:
		_, onAuth := m.top().(*authScreen)
		if !onAuth && client.IsUnauthorized(msg.err) && !m.api.Session().LoggedIn() {
			m.stack = []screen{newAuthScreen(m.api)}
			return m, tea.Batch(m.top().Init(), m.addToast(ToastWarning, "Your session has ended. Please log in again."))
		}
		return m, m.addToast(ToastError, client.Message(msg.err))

	case toastTickMsg:
		if m.toasts.Expire() {
			return m, toastTick()
		}
		m.ticking = false
		return m, nil
	}

	next, cmd := m.top().Update(msg)
	m.stack[len(m.stack)-1] = next
	return m, cmd
}

func (m Model) popScreen() (tea.Model, tea.Cmd) {
	if len(m.stack) == 1 {
		return m, nil
	}
	m.stack = m.stack[:len(m.stack)-1]
	return m, nil
}

func (m *Model) addToast(kind ToastKind, text string) tea.Cmd {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	m.toasts.Add(kind, text)
	if m.ticking {
		return nil
	}
	m.ticking = true
	return toastTick()
}

func (m Model) View() string {
	var b strings.Builder

	crumbs := make([]string, 0, len(m.stack))
	for _, s := range m.stack {
		crumbs = append(crumbs, s.Title())
	}
	header := titleStyle.Render("Job Board") + "  " + strings.Join(crumbs, " / ")
	if sess := m.api.Session(); sess.LoggedIn() {
		header += labelStyle.Render("  (" + sess.Email + ", " + sess.Role + ")")
	}
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(m.top().View())

	help := m.top().Help()
	if len(m.stack) > 1 {
		help += "  esc back"
	} else {
		help += "  q quit"
	}
	b.WriteString(helpStyle.Render(help))

	if toasts := renderToasts(m.toasts.Items(), m.width); toasts != "" {
		b.WriteString("\n")
		b.WriteString(toasts)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(b.String())
}

// Stack returns the titles of the open screens, bottom first.
func (m Model) Stack() []string {
	out := make([]string, 0, len(m.stack))
	for _, s := range m.stack {
		out = append(out, s.Title())
	}
	return out
}

func (m Model) Toasts() []Toast {
	return m.toasts.Items()
}
