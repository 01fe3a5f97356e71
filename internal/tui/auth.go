package tui

import (
	"job-board/internal/delivery/http/dto"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	authEmail = iota
	authPassword
	authFirstName
	authLastName
	authRole
	authCompany
)

type authDoneMsg struct {
	id   int64
	user dto.UserResponse
	err  error
}

// authScreen is the login form; ctrl+t switches it to sign up.
type authScreen struct {
	id      int64
	api     API
	signup  bool
	form    form
	pending bool
}

func newAuthScreen(api API) *authScreen {
	s := &authScreen{id: nextScreenID(), api: api}
	s.buildForm()
	return s
}

func (s *authScreen) buildForm() {
	if s.signup {
		s.form = newForm(
			textField("Email", "you@example.com", 255),
			secretField("Password"),
			textField("First name", "", 100),
			textField("Last name", "", 100),
			choiceField("Role", "student", "recruiter"),
			textField("Company", "recruiters only", 255),
		)
		return
	}
	s.form = newForm(
		textField("Email", "you@example.com", 255),
		secretField("Password"),
	)
}

func (s *authScreen) Init() tea.Cmd {
	return s.form.setFocus(0)
}

func (s *authScreen) Title() string {
	if s.signup {
		return "Sign up"
	}
	return "Log in"
}

func (s *authScreen) Help() string {
	if s.signup {
		return "enter next/submit  ctrl+t log in instead"
	}
	return "enter next/submit  ctrl+t sign up instead"
}

func (s *authScreen) Capturing() bool { return true }

func (s *authScreen) Update(msg tea.Msg) (screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		if msg.id != s.id {
			return s, nil
		}
		s.pending = false
		if msg.err != nil {
			return s, failed(msg.err)
		}
		greeting := "Welcome back, " + msg.user.FirstName + "."
		if s.signup {
			greeting = "Account created. Welcome, " + msg.user.FirstName + "."
		}
		return s, tea.Batch(reset, notify(ToastSuccess, greeting))

	case tea.KeyMsg:
		if s.pending {
			return s, nil
		}
		if msg.String() == "ctrl+t" {
			s.signup = !s.signup
			s.buildForm()
			return s, s.form.setFocus(0)
		}
		submit, cmd := s.form.Update(msg)
		if !submit {
			return s, cmd
		}
		return s, s.submit()
	}
	return s, nil
}

func (s *authScreen) submit() tea.Cmd {
	if s.form.Value(authEmail) == "" || s.form.Value(authPassword) == "" {
		return notify(ToastWarning, "Email and password are required.")
	}
	s.pending = true

	id, api := s.id, s.api
	if !s.signup {
		email, password := s.form.Value(authEmail), s.form.Raw(authPassword)
		return func() tea.Msg {
			ctx, cancel := requestContext()
			defer cancel()
			usr, err := api.Login(ctx, email, password)
			return authDoneMsg{id: id, user: usr, err: err}
		}
	}

	req := dto.SignupRequest{
		Email:     s.form.Value(authEmail),
		Password:  s.form.Raw(authPassword),
		FirstName: s.form.Value(authFirstName),
		LastName:  s.form.Value(authLastName),
		Role:      s.form.Value(authRole),
	}
	if req.Role == "recruiter" {
		req.CompanyName = s.form.Value(authCompany)
	}
	return func() tea.Msg {
		ctx, cancel := requestContext()
		defer cancel()
		usr, err := api.Signup(ctx, req)
		return authDoneMsg{id: id, user: usr, err: err}
	}
}

func (s *authScreen) View() string {
	out := titleStyle.Render(s.Title()) + "\n\n" + s.form.View()
	if s.pending {
		out += "\n" + mutedStyle.Render("Contacting server...")
	}
	return out
}
