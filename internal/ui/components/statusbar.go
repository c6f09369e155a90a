// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/nestapp/nest-tui/internal/ui/styles"
	"github.com/nestapp/nest-tui/internal/util"
)

// Shortcut is one key binding shown in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the bottom bar: screen title on the left, key bindings
// on the right, truncated to the terminal width.
type StatusBar struct {
	theme *styles.Theme

	title     string
	shortcuts []Shortcut
	width     int
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) StatusBar {
	return StatusBar{theme: theme}
}

// SetTitle sets the left-hand title.
func (b *StatusBar) SetTitle(title string) {
	b.title = title
}

// SetShortcuts replaces the displayed key bindings.
func (b *StatusBar) SetShortcuts(shortcuts []Shortcut) {
	b.shortcuts = shortcuts
}

// SetWidth sets the render width.
func (b *StatusBar) SetWidth(width int) {
	b.width = width
}

// View renders the bar.
func (b StatusBar) View() string {
	var right strings.Builder
	rightWidth := 0
	for i, s := range b.shortcuts {
		if i > 0 {
			right.WriteString("  ")
			rightWidth += 2
		}
		right.WriteString(b.theme.ShortcutKey.Render(s.Key))
		right.WriteString(" ")
		right.WriteString(b.theme.ShortcutDesc.Render(s.Desc))
		rightWidth += util.StringWidth(s.Key) + 1 + util.StringWidth(s.Desc)
	}

	left := b.title
	if b.width > 0 {
		// Leave room for the shortcuts; the title gives way first.
		avail := b.width - rightWidth - 3
		if avail < 0 {
			avail = 0
		}
		left = util.TruncateWidth(left, avail)
	}

	line := left
	if right.Len() > 0 {
		line += "  " + right.String()
	}
	return b.theme.StatusBar.Render(line)
}
