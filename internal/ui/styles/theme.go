// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the Nest TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// APPLICATION CONTAINER STYLES
	// ==========================================================================

	App       lipgloss.Style
	Container lipgloss.Style

	// ==========================================================================
	// HEADER AND TITLE STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	ScreenTitle lipgloss.Style
	Subtitle    lipgloss.Style

	// ==========================================================================
	// CARD STYLES
	// ==========================================================================

	DebtCard      lipgloss.Style
	DebtAmount    lipgloss.Style
	DebtLabel     lipgloss.Style
	SummaryCard   lipgloss.Style
	SummaryLabel  lipgloss.Style
	SummaryValue  lipgloss.Style

	// ==========================================================================
	// LIST STYLES
	// ==========================================================================

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style
	ListTitle        lipgloss.Style
	ListMeta         lipgloss.Style
	PaidMark         lipgloss.Style
	UnpaidMark       lipgloss.Style
	CheckMark        lipgloss.Style

	// ==========================================================================
	// FILTER CHIP STYLES
	// ==========================================================================

	Chip       lipgloss.Style
	ChipActive lipgloss.Style

	// ==========================================================================
	// FORM STYLES
	// ==========================================================================

	FormLabel        lipgloss.Style
	FormValue        lipgloss.Style
	FormHint         lipgloss.Style
	ButtonIdle       lipgloss.Style
	ButtonActive     lipgloss.Style
	ButtonDisabled   lipgloss.Style

	// ==========================================================================
	// ERROR PANEL STYLES
	// ==========================================================================

	ErrorBox     lipgloss.Style
	ErrorTitle   lipgloss.Style
	ErrorMessage lipgloss.Style
	ErrorHint    lipgloss.Style

	// ==========================================================================
	// STATUS BAR AND SPINNER STYLES
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	Spinner      lipgloss.Style
	LoadingText  lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       termenv.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}

	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	// App container
	t.App = lipgloss.NewStyle()
	t.Container = lipgloss.NewStyle().Padding(0, 1)

	// Header
	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Navy).
		Background(SurfaceDim).
		Padding(0, 2)

	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Navy)

	t.ScreenTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Navy).
		MarginBottom(1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary)

	// Cards
	t.DebtCard = lipgloss.NewStyle().
		Background(Sky).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Navy).
		Padding(1, 3).
		Align(lipgloss.Center)

	t.DebtAmount = lipgloss.NewStyle().
		Bold(true).
		Foreground(Navy)

	t.DebtLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.SummaryCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2)

	t.SummaryLabel = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.SummaryValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	// Lists
	t.ListItem = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Padding(0, 1)

	t.ListItemSelected = lipgloss.NewStyle().
		Background(SelectionBg).
		Foreground(TextPrimary).
		Bold(true).
		Padding(0, 1)

	t.ListTitle = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ListMeta = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.PaidMark = lipgloss.NewStyle().
		Foreground(Green).
		Bold(true)

	t.UnpaidMark = lipgloss.NewStyle().
		Foreground(Peach).
		Bold(true)

	t.CheckMark = lipgloss.NewStyle().
		Foreground(Orange).
		Bold(true)

	// Filter chips
	t.Chip = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ChipActive = lipgloss.NewStyle().
		Background(Navy).
		Foreground(TextInverse).
		Bold(true).
		Padding(0, 1)

	// Forms
	t.FormLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Bold(true)

	t.FormValue = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.FormHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.ButtonIdle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Overlay).
		Padding(0, 2)

	t.ButtonActive = lipgloss.NewStyle().
		Foreground(TextInverse).
		Background(Orange).
		Bold(true).
		Padding(0, 2)

	t.ButtonDisabled = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(SurfaceDim).
		Padding(0, 2)

	// Error panel
	t.ErrorBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Red).
		Background(RedDeep).
		Padding(0, 2)

	t.ErrorTitle = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	t.ErrorMessage = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.ErrorHint = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	// Status bar and spinner
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Foreground(Orange).
		Bold(true)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Spinner = lipgloss.NewStyle().
		Foreground(Orange)

	t.LoadingText = lipgloss.NewStyle().
		Foreground(TextSecondary)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}
