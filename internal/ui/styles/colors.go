// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the Nest TUI.
// All colors use Lip Gloss AdaptiveColor for automatic light/dark detection.
package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// BRAND COLORS
// =============================================================================

// Navy - Primary brand color: headers, titles, selections
var Navy = lipgloss.AdaptiveColor{Light: "#161E54", Dark: "#8E9AE8"}

// Orange - Accent color: actions, highlights, the settle button
var Orange = lipgloss.AdaptiveColor{Light: "#F16D34", Dark: "#F16D34"}

// Sky - Soft backgrounds, cards, the total-debt panel
var Sky = lipgloss.AdaptiveColor{Light: "#BBE0EF", Dark: "#2A4656"}

// Peach - Secondary accent: badges, unpaid markers
var Peach = lipgloss.AdaptiveColor{Light: "#FF986A", Dark: "#FF986A"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Green - Success states, paid markers
var Green = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Red - Errors, critical alerts
var Red = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

// RedDeep - Darker red for error panel backgrounds
var RedDeep = lipgloss.AdaptiveColor{Light: "#FEE2E2", Dark: "#4C1D24"}

// Amber - Warnings, pending states
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE AND TEXT COLORS
// =============================================================================

// Surface - Main background
var Surface = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1A1B26"}

// SurfaceDim - Headers, footers, the status bar
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#16161E"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#2F3149"}

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#C0CAF5"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A9B1D6"}

// TextMuted - Hints, timestamps
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#565F89"}

// TextInverse - Text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1A1B26"}

// SelectionBg - Highlighted list rows
var SelectionBg = lipgloss.AdaptiveColor{Light: "#DCEEFB", Dark: "#283457"}

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicatorSet contains ASCII indicators used alongside color so paid
// and unpaid states stay distinguishable without color.
type StatusIndicatorSet struct {
	Success  string
	Error    string
	Pending  string
	Selected string
	Empty    string
}

// StatusIndicators is the indicator set used across screens.
var StatusIndicators = StatusIndicatorSet{
	Success:  "[OK]",
	Error:    "[X]",
	Pending:  "[ ]",
	Selected: "[x]",
	Empty:    "[ ]",
}

// RenderSuccess renders a success message with its indicator.
func RenderSuccess(message string) string {
	return lipgloss.NewStyle().Foreground(Green).Bold(true).
		Render(StatusIndicators.Success + " " + message)
}

// RenderError renders an error message with its indicator.
func RenderError(message string) string {
	return lipgloss.NewStyle().Foreground(Red).Bold(true).
		Render(StatusIndicators.Error + " " + message)
}
