// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/nestapp/nest-tui/internal/ui/styles"
)

// ErrorPanel shows a failure message with an optional retry hint. Screens
// render it instead of their content when a load fails, so a failed fetch
// never masquerades as an empty result.
type ErrorPanel struct {
	theme *styles.Theme

	message   string
	retryable bool
}

// NewErrorPanel creates an empty error panel.
func NewErrorPanel(theme *styles.Theme) ErrorPanel {
	return ErrorPanel{theme: theme}
}

// Show sets the message and whether a retry binding applies.
func (p *ErrorPanel) Show(message string, retryable bool) {
	p.message = message
	p.retryable = retryable
}

// Clear hides the panel.
func (p *ErrorPanel) Clear() {
	p.message = ""
	p.retryable = false
}

// Visible reports whether the panel has a message to show.
func (p ErrorPanel) Visible() bool {
	return p.message != ""
}

// Message returns the current message.
func (p ErrorPanel) Message() string {
	return p.message
}

// View renders the panel, or "" when there is nothing to show.
func (p ErrorPanel) View() string {
	if p.message == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(p.theme.ErrorTitle.Render(styles.StatusIndicators.Error + " Error"))
	b.WriteString("\n")
	b.WriteString(p.theme.ErrorMessage.Render(p.message))
	if p.retryable {
		b.WriteString("\n")
		b.WriteString(p.theme.ErrorHint.Render("press r to retry"))
	}
	return p.theme.ErrorBox.Render(b.String())
}
