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
	"github.com/nestapp/nest-tui/internal/util"
)

// otpCodeLength is the expected one-time code length.
const otpCodeLength = 6

// OTP is the code verification screen. The email is read-only; the
// challengeId is threaded through unchanged from the request step, and the
// screen stays put on failure so the same challenge can be retried.
type OTP struct {
	deps Deps

	email       string
	challengeID string
	code        textinput.Model
	verifying   bool

	spinner components.Spinner
	panel   components.ErrorPanel

	seq int
}

// otpVerifyMsg is the result of a verification attempt.
type otpVerifyMsg struct {
	seq int
	err error
}

// NewOTP creates the OTP verification screen.
func NewOTP(deps Deps, email, challengeID string) *OTP {
	code := textinput.New()
	code.Placeholder = "000000"
	code.CharLimit = otpCodeLength
	code.Width = otpCodeLength + 2
	code.Focus()

	return &OTP{
		deps:        deps,
		email:       email,
		challengeID: challengeID,
		code:        code,
		spinner:     components.NewSpinner("Verifying"),
		panel:       components.NewErrorPanel(deps.Theme),
	}
}

// Init implements Screen.
func (s *OTP) Init() tea.Cmd { return textinput.Blink }

// Title implements Screen.
func (s *OTP) Title() string { return "Nest — Enter code" }

// Area implements Screen.
func (s *OTP) Area() guard.Area { return guard.AreaLogin }

// Update implements Screen.
func (s *OTP) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if s.verifying {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, navigate(ShowLoginMsg{})
		case "enter":
			return s, s.submit()
		}
		var cmd tea.Cmd
		s.code, cmd = s.code.Update(msg)
		// Non-digits never survive input.
		s.code.SetValue(util.DigitsOnly(s.code.Value()))
		return s, cmd

	case otpVerifyMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.verifying = false
		s.spinner.Stop()
		if msg.err != nil {
			s.panel.Show(msg.err.Error(), false)
			return s, nil
		}
		// Success: the session change drives the redirect.
		return s, nil
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

func (s *OTP) submit() tea.Cmd {
	s.panel.Clear()
	s.seq++
	seq := s.seq
	s.verifying = true

	email, code, challengeID := s.email, s.code.Value(), s.challengeID
	flows := s.deps.Flows
	return tea.Batch(s.spinner.Start(), func() tea.Msg {
		_, err := flows.VerifyOTP(context.Background(), email, code, challengeID)
		return otpVerifyMsg{seq: seq, err: err}
	})
}

// View implements Screen.
func (s *OTP) View() string {
	t := s.deps.Theme
	var b strings.Builder

	b.WriteString(t.ScreenTitle.Render("Check your email"))
	b.WriteString("\n")
	b.WriteString(t.Subtitle.Render("We sent a code to ") + t.FormValue.Render(s.email))
	b.WriteString("\n\n")

	b.WriteString(t.FormLabel.Render("Code"))
	b.WriteString("\n")
	b.WriteString(s.code.View())
	b.WriteString("\n\n")

	if s.verifying {
		b.WriteString(s.spinner.View())
	} else {
		b.WriteString(t.FormHint.Render("enter to verify · esc to go back"))
	}

	if s.panel.Visible() {
		b.WriteString("\n\n")
		b.WriteString(s.panel.View())
	}

	return t.Container.Render(b.String())
}
