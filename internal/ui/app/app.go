// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app holds the root Bubble Tea model: it owns the active screen,
// subscribes to the session manager, and applies the route guard on every
// status or screen change.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nestapp/nest-tui/internal/auth"
	"github.com/nestapp/nest-tui/internal/guard"
	"github.com/nestapp/nest-tui/internal/ui/components"
	"github.com/nestapp/nest-tui/internal/ui/screens"
)

// sessionChangedMsg signals that the session manager committed a change.
// The model re-reads the snapshot; intermediate states may be coalesced.
type sessionChangedMsg struct{}

// sessionReadyMsg is the completion of the initial hydration.
type sessionReadyMsg struct{ err error }

// Model is the root application model.
type Model struct {
	deps screens.Deps

	screen    screens.Screen
	statusbar components.StatusBar

	// sessionPing carries change notifications out of the subscription
	// callback and into the update loop. Capacity 1 with a latest-wins
	// send: the snapshot is re-read on receipt, so coalescing is safe.
	sessionPing chan struct{}
	unsubscribe func()

	width  int
	height int
}

// New creates the root model. The session subscription is registered
// immediately so no commit between New and Init is missed.
func New(deps screens.Deps) *Model {
	m := &Model{
		deps:        deps,
		statusbar:   components.NewStatusBar(deps.Theme),
		sessionPing: make(chan struct{}, 1),
	}
	m.unsubscribe = deps.Session.Subscribe(func(auth.Snapshot) {
		select {
		case m.sessionPing <- struct{}{}:
		default:
		}
	})
	return m
}

// Init implements tea.Model: it starts session hydration and the
// change-notification listener.
func (m *Model) Init() tea.Cmd {
	session := m.deps.Session
	return tea.Batch(
		func() tea.Msg { return sessionReadyMsg{err: session.Initialize()} },
		m.waitForSession(),
	)
}

// waitForSession blocks until the next session change notification.
func (m *Model) waitForSession() tea.Cmd {
	ping := m.sessionPing
	return func() tea.Msg {
		<-ping
		return sessionChangedMsg{}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.unsubscribe()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.deps.Theme.SetSize(msg.Width, msg.Height)
		m.statusbar.SetWidth(msg.Width)
		// Screens also see the size message below.

	case sessionReadyMsg, sessionChangedMsg:
		cmd := m.applyGuard()
		return m, tea.Batch(cmd, m.waitForSession())

	// Navigation requested by a screen.
	case screens.ShowLoginMsg:
		return m, m.swap(screens.NewLogin(m.deps))
	case screens.ShowOTPMsg:
		return m, m.swap(screens.NewOTP(m.deps, msg.Email, msg.ChallengeID))
	case screens.ShowHomeMsg:
		return m, m.swap(screens.NewHome(m.deps))
	case screens.ShowExpensesMsg:
		return m, m.swap(screens.NewExpenses(m.deps))
	case screens.ShowGroupMsg:
		return m, m.swap(screens.NewGroup(m.deps, msg.GroupID, msg.GroupName))
	case screens.ShowAddExpenseMsg:
		return m, m.swap(screens.NewAddExpense(m.deps, msg.GroupID, msg.GroupName))
	}

	if m.screen == nil {
		return m, nil
	}
	next, cmd := m.screen.Update(msg)
	m.screen = next
	return m, cmd
}

// swap replaces the active screen, re-checking the guard against the new
// screen's area so a stale navigation cannot escape it.
func (m *Model) swap(next screens.Screen) tea.Cmd {
	status := m.deps.Session.Status()
	if d := guard.Decide(status, next.Area()); d.Redirect {
		next = m.screenFor(d.Target)
	}
	m.screen = next
	return next.Init()
}

// applyGuard routes according to the current session status and screen.
// Before the first screen exists there is no area to guard: once hydration
// resolves, the status itself picks the entry screen.
func (m *Model) applyGuard() tea.Cmd {
	status := m.deps.Session.Status()

	if m.screen == nil {
		if status == auth.StatusLoading {
			return nil
		}
		target := guard.AreaAuthed
		if status == auth.StatusGuest {
			target = guard.AreaLogin
		}
		m.screen = m.screenFor(target)
		return m.screen.Init()
	}

	d := guard.Decide(status, m.screen.Area())
	if !d.Redirect {
		return nil
	}
	m.screen = m.screenFor(d.Target)
	return m.screen.Init()
}

// screenFor maps a guard target to its entry screen.
func (m *Model) screenFor(target guard.Area) screens.Screen {
	if target == guard.AreaLogin {
		return screens.NewLogin(m.deps)
	}
	return screens.NewHome(m.deps)
}

// View implements tea.Model.
func (m *Model) View() string {
	t := m.deps.Theme

	// Hydration pending: a neutral loading view, no screen yet.
	if m.screen == nil {
		return t.App.Render(t.Container.Render(t.LoadingText.Render("Loading session...")))
	}

	header := t.Header.Render(t.HeaderTitle.Render("Nest") + " · split expenses")
	m.statusbar.SetTitle(m.screen.Title())
	m.statusbar.SetShortcuts([]components.Shortcut{{Key: "ctrl+c", Desc: "quit"}})
	return t.App.Render(header + "\n" + m.screen.View() + "\n" + m.statusbar.View())
}
