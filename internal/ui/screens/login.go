// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nestapp/nest-tui/internal/guard"
	"github.com/nestapp/nest-tui/internal/ui/components"
)

// loginMethod selects which credential form is shown.
type loginMethod int

const (
	methodPassword loginMethod = iota
	methodOTP
)

// Login is the credential screen: a password form with a toggle to the OTP
// request form.
type Login struct {
	deps Deps

	method     loginMethod
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool

	spinner components.Spinner
	panel   components.ErrorPanel

	seq int
}

// passwordLoginMsg is the result of a password login attempt.
type passwordLoginMsg struct {
	seq int
	err error
}

// otpRequestMsg is the result of an OTP challenge request.
type otpRequestMsg struct {
	seq         int
	email       string
	challengeID string
	err         error
}

// NewLogin creates the login screen.
func NewLogin(deps Deps) *Login {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 254
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.CharLimit = 128

	return &Login{
		deps:     deps,
		email:    email,
		password: password,
		spinner:  components.NewSpinner("Signing in"),
		panel:    components.NewErrorPanel(deps.Theme),
	}
}

// Init implements Screen.
func (s *Login) Init() tea.Cmd { return textinput.Blink }

// Title implements Screen.
func (s *Login) Title() string { return "Nest — Sign in" }

// Area implements Screen.
func (s *Login) Area() guard.Area { return guard.AreaLogin }

// Update implements Screen.
func (s *Login) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return s.handleKey(msg)

	case passwordLoginMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.submitting = false
		s.spinner.Stop()
		if msg.err != nil {
			// Keep the form pre-filled; only the password is cleared.
			s.password.SetValue("")
			s.panel.Show(msg.err.Error(), false)
			return s, nil
		}
		// Success: the session change drives the redirect.
		return s, nil

	case otpRequestMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.submitting = false
		s.spinner.Stop()
		if msg.err != nil {
			s.panel.Show(msg.err.Error(), false)
			return s, nil
		}
		return s, navigate(ShowOTPMsg{Email: msg.email, ChallengeID: msg.challengeID})
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	cmds = append(cmds, cmd)
	s.email, cmd = s.email.Update(msg)
	cmds = append(cmds, cmd)
	s.password, cmd = s.password.Update(msg)
	cmds = append(cmds, cmd)
	return s, tea.Batch(cmds...)
}

func (s *Login) handleKey(msg tea.KeyMsg) (Screen, tea.Cmd) {
	if s.submitting {
		return s, nil
	}

	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		s.cycleFocus(msg.String() == "shift+tab" || msg.String() == "up")
		return s, nil

	case "ctrl+o":
		s.toggleMethod()
		return s, nil

	case "enter":
		return s, s.submit()
	}

	// Everything else edits the focused input.
	var cmd tea.Cmd
	if s.focus == 0 {
		s.email, cmd = s.email.Update(msg)
	} else {
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

func (s *Login) cycleFocus(backward bool) {
	if s.method == methodOTP {
		return // single field
	}
	s.focus = (s.focus + 1) % 2
	if backward {
		s.focus = (s.focus + 1) % 2 // two fields: backward is the same hop
	}
	if s.focus == 0 {
		s.email.Focus()
		s.password.Blur()
	} else {
		s.email.Blur()
		s.password.Focus()
	}
}

func (s *Login) toggleMethod() {
	if s.method == methodPassword {
		s.method = methodOTP
	} else {
		s.method = methodPassword
	}
	s.panel.Clear()
	s.focus = 0
	s.email.Focus()
	s.password.Blur()
}

// submit dispatches the current form. The sequence is bumped so an earlier
// in-flight attempt can no longer land.
func (s *Login) submit() tea.Cmd {
	s.panel.Clear()
	s.seq++
	seq := s.seq
	s.submitting = true

	email := strings.TrimSpace(s.email.Value())
	flows := s.deps.Flows

	if s.method == methodOTP {
		s.spinner.SetMessage("Requesting code")
		return tea.Batch(s.spinner.Start(), func() tea.Msg {
			challengeID, err := flows.RequestOTP(context.Background(), email)
			return otpRequestMsg{seq: seq, email: email, challengeID: challengeID, err: err}
		})
	}

	password := s.password.Value()
	s.spinner.SetMessage("Signing in")
	return tea.Batch(s.spinner.Start(), func() tea.Msg {
		_, err := flows.PasswordLogin(context.Background(), email, password)
		return passwordLoginMsg{seq: seq, err: err}
	})
}

// View implements Screen.
func (s *Login) View() string {
	t := s.deps.Theme
	var b strings.Builder

	b.WriteString(t.ScreenTitle.Render("Welcome to Nest"))
	b.WriteString("\n\n")

	b.WriteString(t.FormLabel.Render("Email"))
	b.WriteString("\n")
	b.WriteString(s.email.View())
	b.WriteString("\n")

	if s.method == methodPassword {
		b.WriteString(t.FormLabel.Render("Password"))
		b.WriteString("\n")
		b.WriteString(s.password.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.submitting {
		b.WriteString(s.spinner.View())
	} else if s.method == methodPassword {
		b.WriteString(t.FormHint.Render("enter to sign in · ctrl+o to use a one-time code"))
	} else {
		b.WriteString(t.FormHint.Render("enter to request a code · ctrl+o to use a password"))
	}

	if s.panel.Visible() {
		b.WriteString("\n\n")
		b.WriteString(s.panel.View())
	}

	return t.Container.Render(b.String())
}
