// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package screens implements the Nest TUI screens: login, OTP verification,
// the dashboard, the expense list, group expenses with settle-up, and the
// add-expense form.
//
// Each screen is a self-contained Bubble Tea model behind the Screen
// interface. Async loads carry a per-screen-instance sequence number;
// results arriving with a stale sequence are discarded, so a refresh or a
// screen swap can never be overwritten by a slow earlier response.
package screens

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nestapp/nest-tui/internal/auth"
	"github.com/nestapp/nest-tui/internal/config"
	"github.com/nestapp/nest-tui/internal/graphql"
	"github.com/nestapp/nest-tui/internal/guard"
	"github.com/nestapp/nest-tui/internal/ui/styles"

	"github.com/nestapp/nest-tui/internal/api"
)

// Screen is one screen of the application.
type Screen interface {
	// Init returns the screen's initial command (usually its first load).
	Init() tea.Cmd

	// Update handles a message and returns the (possibly replaced) screen.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen.
	View() string

	// Title is the screen's status bar title.
	Title() string

	// Area classifies the screen for the route guard.
	Area() guard.Area
}

// Deps carries the shared dependencies every screen needs.
type Deps struct {
	Theme   *styles.Theme
	Session *auth.Manager
	Flows   *auth.Flows
	REST    *api.Client
	GQL     *graphql.Client
	Config  *config.Config
}

// =============================================================================
// NAVIGATION MESSAGES
// =============================================================================

// Navigation messages are emitted by screens and handled by the root model,
// which swaps the active screen.

// ShowOTPMsg moves from the login form to OTP verification.
type ShowOTPMsg struct {
	Email       string
	ChallengeID string
}

// ShowLoginMsg returns to the login form.
type ShowLoginMsg struct{}

// ShowHomeMsg shows the dashboard.
type ShowHomeMsg struct{}

// ShowExpensesMsg shows the flat expense list.
type ShowExpensesMsg struct{}

// ShowGroupMsg shows a group's expenses.
type ShowGroupMsg struct {
	GroupID   string
	GroupName string
}

// ShowAddExpenseMsg shows the add-expense form for a group.
type ShowAddExpenseMsg struct {
	GroupID   string
	GroupName string
}

// navigate wraps a navigation message in a command.
func navigate(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
