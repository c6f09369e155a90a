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

// Expenses is the flat expense list across all groups, with its summary
// card. A failed load shows the error panel with a retry binding, never an
// empty list.
type Expenses struct {
	deps Deps

	loading  bool
	loaded   bool
	expenses []model.Expense
	cursor   int

	spinner components.Spinner
	panel   components.ErrorPanel

	seq int
}

// expensesMsg is the result of an expense list load.
type expensesMsg struct {
	seq      int
	expenses []model.Expense
	err      error
}

// NewExpenses creates the expense list screen.
func NewExpenses(deps Deps) *Expenses {
	return &Expenses{
		deps:    deps,
		spinner: components.NewSpinner("Loading expenses"),
		panel:   components.NewErrorPanel(deps.Theme),
	}
}

// Init implements Screen.
func (s *Expenses) Init() tea.Cmd { return s.load() }

// Title implements Screen.
func (s *Expenses) Title() string { return "Nest — Expenses" }

// Area implements Screen.
func (s *Expenses) Area() guard.Area { return guard.AreaAuthed }

func (s *Expenses) load() tea.Cmd {
	s.seq++
	seq := s.seq
	s.loading = true
	s.panel.Clear()

	rest := s.deps.REST
	return tea.Batch(s.spinner.Start(), func() tea.Msg {
		expenses, err := rest.ListExpenses(context.Background())
		return expensesMsg{seq: seq, expenses: expenses, err: err}
	})
}

// Update implements Screen.
func (s *Expenses) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case expensesMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.loading = false
		s.spinner.Stop()
		if msg.err != nil {
			s.loaded = false
			s.panel.Show(api.UserMessage(msg.err, "Failed to load expenses"), true)
			return s, nil
		}
		s.loaded = true
		s.expenses = msg.expenses
		if s.cursor >= len(s.expenses) {
			s.cursor = 0
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return s, s.load()
		case "esc":
			return s, navigate(ShowHomeMsg{})
		case "up", "k":
			if s.cursor > 0 {
				s.cursor--
			}
		case "down", "j":
			if s.cursor < len(s.expenses)-1 {
				s.cursor++
			}
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View implements Screen.
func (s *Expenses) View() string {
	t := s.deps.Theme
	var b strings.Builder

	b.WriteString(t.ScreenTitle.Render("Expenses"))
	b.WriteString("\n")

	if s.loading {
		b.WriteString(s.spinner.View())
		return t.Container.Render(b.String())
	}
	if s.panel.Visible() {
		b.WriteString(s.panel.View())
		return t.Container.Render(b.String())
	}
	if !s.loaded {
		return t.Container.Render(b.String())
	}

	// Summary card
	sum := model.Summarize(s.expenses)
	card := fmt.Sprintf("%s %s   %s %d   %s %d",
		t.SummaryLabel.Render("unpaid"), t.SummaryValue.Render(util.FormatAmount(sum.UnpaidTotal)),
		t.SummaryLabel.Render("open"), sum.UnpaidCount,
		t.SummaryLabel.Render("settled"), sum.PaidCount)
	b.WriteString(t.SummaryCard.Render(card))
	b.WriteString("\n\n")

	if len(s.expenses) == 0 {
		b.WriteString(t.ListMeta.Render("no expenses yet"))
		b.WriteString("\n")
	}
	for i, e := range s.expenses {
		mark := t.UnpaidMark.Render(styles.StatusIndicators.Pending)
		if e.Paid {
			mark = t.PaidMark.Render(styles.StatusIndicators.Success)
		}
		line := fmt.Sprintf("%s %s  %s  %s",
			mark,
			util.PadRight(util.TruncateWidth(e.Title, 28), 28),
			util.PadRight(util.FormatAmountString(e.Amount), 12),
			t.ListMeta.Render(e.Group))
		if i == s.cursor {
			b.WriteString(t.ListItemSelected.Render(line))
		} else {
			b.WriteString(t.ListItem.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(t.FormHint.Render("r refresh · esc home"))
	return t.Container.Render(b.String())
}
