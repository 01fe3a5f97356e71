package tui

import (
	"context"
	"net/http"
	"sync"
	"time"

	"job-board/internal/client"
	"job-board/internal/delivery/http/dto"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// fakeAPI records calls and answers from the configured funcs. Like the
// real client, any 401 on an authenticated call drops the session.
type fakeAPI struct {
	mu      sync.Mutex
	session client.Session
	calls   []string

	loginFn         func(email, password string) (dto.UserResponse, error)
	signupFn        func(req dto.SignupRequest) (dto.UserResponse, error)
	listJobsFn      func(f client.JobFilter) (dto.JobListResponse, error)
	getJobFn        func(id uuid.UUID) (dto.JobResponse, error)
	createJobFn     func(req dto.CreateJobRequest) (dto.JobResponse, error)
	myJobsFn        func() ([]dto.JobResponse, error)
	updateJobFn     func(id uuid.UUID, req dto.UpdateJobRequest) (dto.JobResponse, error)
	deleteJobFn     func(id uuid.UUID) error
	applyFn         func(jobID uuid.UUID, letter string) (dto.ApplicationResponse, error)
	myAppsFn        func() ([]dto.StudentApplicationResponse, error)
	checkFn         func(jobID uuid.UUID) (dto.CheckApplicationResponse, error)
	withdrawFn      func(id uuid.UUID) error
	recruiterAppsFn func(status string) ([]dto.RecruiterApplicationResponse, error)
	jobAppsFn       func(jobID uuid.UUID) (dto.JobApplicationsResponse, error)
	updateAppFn     func(id uuid.UUID, req dto.UpdateApplicationStatusRequest) (dto.ApplicationResponse, error)
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.mu.Unlock()
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) authed(err error) error {
	if client.IsUnauthorized(err) {
		f.mu.Lock()
		f.session = client.Session{}
		f.mu.Unlock()
	}
	return err
}

func (f *fakeAPI) Session() client.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.session
}

func (f *fakeAPI) Logout() error {
	f.record("Logout")
	f.mu.Lock()
	f.session = client.Session{}
	f.mu.Unlock()
	return nil
}

func (f *fakeAPI) login(u dto.UserResponse) {
	f.mu.Lock()
	f.session = client.Session{Token: "tok", UserID: u.ID.String(), Email: u.Email, Role: u.Role, FirstName: u.FirstName}
	f.mu.Unlock()
}

func (f *fakeAPI) Signup(_ context.Context, req dto.SignupRequest) (dto.UserResponse, error) {
	f.record("Signup")
	u, err := f.signupFn(req)
	if err == nil {
		f.login(u)
	}
	return u, err
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (dto.UserResponse, error) {
	f.record("Login")
	u, err := f.loginFn(email, password)
	if err == nil {
		f.login(u)
	}
	return u, err
}

func (f *fakeAPI) ListJobs(_ context.Context, flt client.JobFilter) (dto.JobListResponse, error) {
	f.record("ListJobs")
	return f.listJobsFn(flt)
}

func (f *fakeAPI) GetJob(_ context.Context, id uuid.UUID) (dto.JobResponse, error) {
	f.record("GetJob")
	if f.getJobFn == nil {
		return dto.JobResponse{ID: id, Status: "open"}, nil
	}
	return f.getJobFn(id)
}

func (f *fakeAPI) CreateJob(_ context.Context, req dto.CreateJobRequest) (dto.JobResponse, error) {
	f.record("CreateJob")
	res, err := f.createJobFn(req)
	return res, f.authed(err)
}

func (f *fakeAPI) MyJobs(context.Context) ([]dto.JobResponse, error) {
	f.record("MyJobs")
	res, err := f.myJobsFn()
	return res, f.authed(err)
}

func (f *fakeAPI) UpdateJob(_ context.Context, id uuid.UUID, req dto.UpdateJobRequest) (dto.JobResponse, error) {
	f.record("UpdateJob")
	res, err := f.updateJobFn(id, req)
	return res, f.authed(err)
}

func (f *fakeAPI) DeleteJob(_ context.Context, id uuid.UUID) error {
	f.record("DeleteJob")
	return f.authed(f.deleteJobFn(id))
}

func (f *fakeAPI) Apply(_ context.Context, jobID uuid.UUID, letter string) (dto.ApplicationResponse, error) {
	f.record("Apply")
	res, err := f.applyFn(jobID, letter)
	return res, f.authed(err)
}

func (f *fakeAPI) MyApplications(context.Context) ([]dto.StudentApplicationResponse, error) {
	f.record("MyApplications")
	res, err := f.myAppsFn()
	return res, f.authed(err)
}

func (f *fakeAPI) CheckApplied(_ context.Context, jobID uuid.UUID) (dto.CheckApplicationResponse, error) {
	f.record("CheckApplied")
	res, err := f.checkFn(jobID)
	return res, f.authed(err)
}

func (f *fakeAPI) Withdraw(_ context.Context, id uuid.UUID) error {
	f.record("Withdraw")
	return f.authed(f.withdrawFn(id))
}

func (f *fakeAPI) RecruiterApplications(_ context.Context, status string) ([]dto.RecruiterApplicationResponse, error) {
	f.record("RecruiterApplications")
	res, err := f.recruiterAppsFn(status)
	return res, f.authed(err)
}

func (f *fakeAPI) JobApplications(_ context.Context, jobID uuid.UUID) (dto.JobApplicationsResponse, error) {
	f.record("JobApplications")
	res, err := f.jobAppsFn(jobID)
	return res, f.authed(err)
}

func (f *fakeAPI) UpdateApplicationStatus(_ context.Context, id uuid.UUID, req dto.UpdateApplicationStatusRequest) (dto.ApplicationResponse, error) {
	f.record("UpdateApplicationStatus")
	res, err := f.updateAppFn(id, req)
	return res, f.authed(err)
}

func studentAPI() *fakeAPI {
	return &fakeAPI{session: client.Session{Token: "tok", UserID: uuid.NewString(), Email: "s@example.com", Role: "student", FirstName: "Sam"}}
}

func recruiterAPI() *fakeAPI {
	return &fakeAPI{session: client.Session{Token: "tok", UserID: uuid.NewString(), Email: "r@example.com", Role: "recruiter", FirstName: "Rita"}}
}

func unauthorized() error {
	return &client.APIError{Status: http.StatusUnauthorized, Message: "Token has expired."}
}

// run feeds msgs through the model, executing returned commands until the
// queue drains. Commands that block (timers, cursor blink) are dropped.
func run(m Model, msgs ...tea.Msg) Model {
	queue := append([]tea.Msg(nil), msgs...)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]

		next, cmd := m.Update(msg)
		m = next.(Model)
		queue = append(queue, collect(cmd)...)
	}
	return m
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(50 * time.Millisecond):
		return nil
	}

	switch msg := msg.(type) {
	case nil, spinner.TickMsg, toastTickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typed(text string) []tea.Msg {
	out := make([]tea.Msg, 0, len(text))
	for _, r := range text {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

func keys(names ...string) []tea.Msg {
	out := make([]tea.Msg, 0, len(names))
	for _, n := range names {
		out = append(out, key(n))
	}
	return out
}

func start(m Model) Model {
	return run(m, collect(m.Init())...)
}

func toastKinds(m Model) []ToastKind {
	var out []ToastKind
	for _, t := range m.Toasts() {
		out = append(out, t.Kind)
	}
	return out
}
