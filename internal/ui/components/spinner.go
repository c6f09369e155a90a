// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nestapp/nest-tui/internal/ui/styles"
)

// Spinner is the loading spinner shown while a screen fetches data.
// ASCII frames only, so it renders the same on every terminal.
type Spinner struct {
	spinner spinner.Model
	message string
	active  bool
}

// NewSpinner creates a spinner with the given message.
func NewSpinner(message string) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	return Spinner{spinner: s, message: message}
}

// SetMessage sets the text displayed next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// Start activates the spinner and returns its tick command.
func (s *Spinner) Start() tea.Cmd {
	s.active = true
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.active = false
}

// IsActive returns whether the spinner is currently running.
func (s Spinner) IsActive() bool {
	return s.active
}

// Update handles tick messages for the spinner.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner with its message, or "" when inactive.
func (s Spinner) View() string {
	if !s.active {
		return ""
	}
	frame := lipgloss.NewStyle().Foreground(styles.Orange).Render(s.spinner.View())
	text := lipgloss.NewStyle().Foreground(styles.TextSecondary).Render(s.message)
	return frame + " " + text
}
