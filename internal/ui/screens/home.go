// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nestapp/nest-tui/internal/api"
	"github.com/nestapp/nest-tui/internal/graphql"
	"github.com/nestapp/nest-tui/internal/guard"
	"github.com/nestapp/nest-tui/internal/ui/components"
	"github.com/nestapp/nest-tui/internal/ui/styles"
	"github.com/nestapp/nest-tui/internal/util"
)

// Home is the dashboard: the total-debt card and the group list.
type Home struct {
	deps Deps

	loading bool
	dash    *graphql.Dashboard
	cursor  int

	spinner components.Spinner
	panel   components.ErrorPanel

	seq int
}

// dashboardMsg is the result of a dashboard load.
type dashboardMsg struct {
	seq  int
	dash *graphql.Dashboard
	err  error
}

// NewHome creates the dashboard screen.
func NewHome(deps Deps) *Home {
	return &Home{
		deps:    deps,
		spinner: components.NewSpinner("Loading dashboard"),
		panel:   components.NewErrorPanel(deps.Theme),
	}
}

// Init implements Screen.
func (s *Home) Init() tea.Cmd { return s.load() }

// Title implements Screen.
func (s *Home) Title() string { return "Nest — Home" }

// Area implements Screen.
func (s *Home) Area() guard.Area { return guard.AreaAuthed }

// load starts a dashboard fetch under a fresh sequence.
func (s *Home) load() tea.Cmd {
	s.seq++
	seq := s.seq
	s.loading = true
	s.panel.Clear()

	gql := s.deps.GQL
	limit := s.deps.Config.UI.GroupLimit
	return tea.Batch(s.spinner.Start(), func() tea.Msg {
		dash, err := gql.Dashboard(context.Background(), limit)
		return dashboardMsg{seq: seq, dash: dash, err: err}
	})
}

// Update implements Screen.
func (s *Home) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.loading = false
		s.spinner.Stop()
		if msg.err != nil {
			s.panel.Show(api.UserMessage(msg.err, "Failed to load dashboard"), true)
			return s, nil
		}
		s.dash = msg.dash
		if s.cursor >= len(s.dash.Groups) {
			s.cursor = 0
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

func (s *Home) handleKey(msg tea.KeyMsg) (Screen, tea.Cmd) {
	switch msg.String() {
	case "r":
		return s, s.load()

	case "e":
		return s, navigate(ShowExpensesMsg{})

	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}

	case "down", "j":
		if s.dash != nil && s.cursor < len(s.dash.Groups)-1 {
			s.cursor++
		}

	case "enter":
		if s.dash != nil && s.cursor < len(s.dash.Groups) {
			g := s.dash.Groups[s.cursor]
			return s, navigate(ShowGroupMsg{GroupID: g.ID, GroupName: g.Name})
		}
	}
	return s, nil
}

// View implements Screen.
func (s *Home) View() string {
	t := s.deps.Theme
	var b strings.Builder

	b.WriteString(t.ScreenTitle.Render("Home"))
	b.WriteString("\n")

	if s.loading {
		b.WriteString(s.spinner.View())
		return t.Container.Render(b.String())
	}
	if s.panel.Visible() {
		b.WriteString(s.panel.View())
		return t.Container.Render(b.String())
	}
	if s.dash == nil {
		return t.Container.Render(b.String())
	}

	// Total-debt card; collapses to a single line on narrow terminals.
	amount := t.DebtAmount.Render(util.FormatAmount(s.dash.Summary.TotalDebt))
	if t.GetLayoutMode() == styles.LayoutNarrow {
		b.WriteString(t.DebtLabel.Render("you owe "))
		b.WriteString(amount)
	} else {
		b.WriteString(t.DebtCard.Render(t.DebtLabel.Render("you owe") + "\n" + amount))
	}
	b.WriteString("\n\n")

	// Group list
	b.WriteString(t.FormLabel.Render("Your groups"))
	b.WriteString("\n")
	if len(s.dash.Groups) == 0 {
		b.WriteString(t.ListMeta.Render("no groups yet"))
	}
	for i, g := range s.dash.Groups {
		line := fmt.Sprintf("(%s) %s  %s",
			util.Initial(g.Name),
			t.ListTitle.Render(g.Name),
			t.ListMeta.Render(fmt.Sprintf("%d members", len(g.Members))))
		if i == s.cursor {
			b.WriteString(t.ListItemSelected.Render("> " + line))
		} else {
			b.WriteString(t.ListItem.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(t.FormHint.Render("enter open group · e expenses · r refresh"))
	return t.Container.Render(b.String())
}
