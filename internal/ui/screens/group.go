// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nestapp/nest-tui/internal/api"
	"github.com/nestapp/nest-tui/internal/guard"
	"github.com/nestapp/nest-tui/internal/model"
	"github.com/nestapp/nest-tui/internal/ui/components"
	"github.com/nestapp/nest-tui/internal/ui/styles"
	"github.com/nestapp/nest-tui/internal/util"
)

// Group shows one group's expenses with filter chips, multi-select of
// unpaid rows, and the settle-up action.
type Group struct {
	deps Deps

	groupID   string
	groupName string

	loading  bool
	paying   bool
	expenses []model.GroupExpense
	filter   model.StatusFilter
	cursor   int
	selected map[string]bool
	status   string

	spinner components.Spinner
	panel   components.ErrorPanel

	seq int
}

// groupExpensesMsg is the result of a group expense load.
type groupExpensesMsg struct {
	seq      int
	expenses []model.GroupExpense
	err      error
}

// payMsg is the result of a settle-up attempt.
type payMsg struct {
	seq    int
	result *model.PayResult
	err    error
}

// NewGroup creates the group expenses screen.
func NewGroup(deps Deps, groupID, groupName string) *Group {
	return &Group{
		deps:      deps,
		groupID:   groupID,
		groupName: groupName,
		selected:  make(map[string]bool),
		spinner:   components.NewSpinner("Loading group"),
		panel:     components.NewErrorPanel(deps.Theme),
	}
}

// Init implements Screen.
func (s *Group) Init() tea.Cmd { return s.load() }

// Title implements Screen.
func (s *Group) Title() string { return "Nest — " + s.groupName }

// Area implements Screen.
func (s *Group) Area() guard.Area { return guard.AreaAuthed }

func (s *Group) load() tea.Cmd {
	s.seq++
	seq := s.seq
	s.loading = true
	s.panel.Clear()
	s.status = ""
	s.spinner.SetMessage("Loading group")

	gql := s.deps.GQL
	groupID := s.groupID
	limit := s.deps.Config.UI.GroupLimit
	return tea.Batch(s.spinner.Start(), func() tea.Msg {
		expenses, err := gql.GroupExpenses(context.Background(), groupID, limit)
		return groupExpensesMsg{seq: seq, expenses: expenses, err: err}
	})
}

// visible returns the expenses under the current filter.
func (s *Group) visible() []model.GroupExpense {
	return model.FilterGroupExpenses(s.filter, s.expenses)
}

// Update implements Screen.
func (s *Group) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case groupExpensesMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.loading = false
		s.spinner.Stop()
		if msg.err != nil {
			s.panel.Show(api.UserMessage(msg.err, "Failed to load group expenses"), true)
			return s, nil
		}
		s.expenses = msg.expenses
		s.clampCursor()
		return s, nil

	case payMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.paying = false
		s.spinner.Stop()
		if msg.err != nil {
			s.panel.Show(api.UserMessage(msg.err, "Failed to pay expenses"), false)
			return s, nil
		}
		if msg.result != nil && !msg.result.IsSuccess {
			message := msg.result.Message
			if message == "" {
				message = "Failed to pay expenses"
			}
			s.panel.Show(message, false)
			return s, nil
		}
		// Settled: drop the selection and refetch.
		s.selected = make(map[string]bool)
		cmd := s.load()
		if msg.result != nil {
			s.status = styles.RenderSuccess(fmt.Sprintf("settled %d", msg.result.UpdatedCount))
		}
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

func (s *Group) handleKey(msg tea.KeyMsg) (Screen, tea.Cmd) {
	if s.paying {
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, navigate(ShowHomeMsg{})

	case "r":
		return s, s.load()

	case "a":
		return s, navigate(ShowAddExpenseMsg{GroupID: s.groupID, GroupName: s.groupName})

	case "f":
		s.filter = nextFilter(s.filter)
		s.clampCursor()

	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}

	case "down", "j":
		if s.cursor < len(s.visible())-1 {
			s.cursor++
		}

	case " ":
		visible := s.visible()
		if s.cursor < len(visible) {
			e := visible[s.cursor]
			if !e.IsPaid { // only unpaid rows are selectable
				s.selected[e.ID] = !s.selected[e.ID]
				if !s.selected[e.ID] {
					delete(s.selected, e.ID)
				}
			}
		}

	case "p", "enter":
		return s, s.pay()
	}
	return s, nil
}

func (s *Group) clampCursor() {
	if n := len(s.visible()); s.cursor >= n {
		s.cursor = 0
	}
}

// nextFilter cycles All -> Unpaid -> Paid -> All.
func nextFilter(f model.StatusFilter) model.StatusFilter {
	switch f {
	case model.FilterAll:
		return model.FilterUnpaid
	case model.FilterUnpaid:
		return model.FilterPaid
	default:
		return model.FilterAll
	}
}

// pay settles the selected expenses.
func (s *Group) pay() tea.Cmd {
	ids := make([]string, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil
	}

	s.panel.Clear()
	s.status = ""
	s.seq++
	seq := s.seq
	s.paying = true
	s.spinner.SetMessage("Settling up")

	gql := s.deps.GQL
	return tea.Batch(s.spinner.Start(), func() tea.Msg {
		result, err := gql.PayExpenseShares(context.Background(), ids)
		return payMsg{seq: seq, result: result, err: err}
	})
}

// View implements Screen.
func (s *Group) View() string {
	t := s.deps.Theme
	var b strings.Builder

	b.WriteString(t.ScreenTitle.Render(s.groupName))
	b.WriteString("\n")

	// Filter chips
	var chips []string
	for _, f := range []model.StatusFilter{model.FilterAll, model.FilterPaid, model.FilterUnpaid} {
		if f == s.filter {
			chips = append(chips, t.ChipActive.Render(f.String()))
		} else {
			chips = append(chips, t.Chip.Render(f.String()))
		}
	}
	b.WriteString(strings.Join(chips, " "))
	b.WriteString("\n\n")

	if s.status != "" {
		b.WriteString(s.status)
		b.WriteString("\n\n")
	}

	if s.loading || s.paying {
		b.WriteString(s.spinner.View())
		return t.Container.Render(b.String())
	}
	if s.panel.Visible() {
		b.WriteString(s.panel.View())
		b.WriteString("\n\n")
	}

	visible := s.visible()
	if len(visible) == 0 {
		b.WriteString(t.ListMeta.Render("nothing here"))
		b.WriteString("\n")
	}
	for i, e := range visible {
		var mark string
		switch {
		case e.IsPaid:
			mark = t.PaidMark.Render(styles.StatusIndicators.Success)
		case s.selected[e.ID]:
			mark = t.CheckMark.Render(styles.StatusIndicators.Selected)
		default:
			mark = t.UnpaidMark.Render(styles.StatusIndicators.Empty)
		}
		line := fmt.Sprintf("%s %s  your share %s",
			mark,
			util.PadRight(util.TruncateWidth(e.Title, 28), 28),
			util.FormatAmount(e.MyShare))
		if i == s.cursor {
			b.WriteString(t.ListItemSelected.Render(line))
		} else {
			b.WriteString(t.ListItem.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if n := len(s.selected); n > 0 {
		total := model.ShareTotal(s.expenses, s.selected)
		b.WriteString(t.ButtonActive.Render(fmt.Sprintf("settle %d for %s", n, util.FormatAmount(total))))
	} else {
		b.WriteString(t.ButtonIdle.Render("settle"))
	}
	b.WriteString("  ")
	b.WriteString(t.FormHint.Render("space select · p pay · f filter · a add · r refresh · esc home"))
	return t.Container.Render(b.String())
}
