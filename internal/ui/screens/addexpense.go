// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package screens

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nestapp/nest-tui/internal/api"
	"github.com/nestapp/nest-tui/internal/guard"
	"github.com/nestapp/nest-tui/internal/model"
	"github.com/nestapp/nest-tui/internal/ui/components"
	"github.com/nestapp/nest-tui/internal/ui/styles"
	"github.com/nestapp/nest-tui/internal/util"
)

// Form field indices for the add-expense screen. Fields below fieldMembers
// are text inputs; fieldMembers is the member picker list.
const (
	fieldTitle = iota
	fieldAmount
	fieldDescription
	fieldMembers
)

// AddExpense is the expense creation form: title, amount, description, and
// the member picker (all members preselected). The expense is always split
// equally among the selected members.
type AddExpense struct {
	deps Deps

	groupID   string
	groupName string

	loading    bool
	submitting bool
	members    []model.Member
	selected   map[string]bool

	title       textinput.Model
	amount      textinput.Model
	description textinput.Model
	focus       int
	memberIdx   int

	spinner components.Spinner
	panel   components.ErrorPanel

	seq int
}

// membersMsg is the result of the member list load.
type membersMsg struct {
	seq   int
	group *model.Group
	err   error
}

// addExpenseMsg is the result of the create mutation.
type addExpenseMsg struct {
	seq    int
	result *model.AddExpenseResult
	err    error
}

// NewAddExpense creates the add-expense screen for a group.
func NewAddExpense(deps Deps, groupID, groupName string) *AddExpense {
	title := textinput.New()
	title.Placeholder = "what was it for?"
	title.CharLimit = 120
	title.Focus()

	amount := textinput.New()
	amount.Placeholder = "0.00"
	amount.CharLimit = 16

	description := textinput.New()
	description.Placeholder = "optional note"
	description.CharLimit = 240

	return &AddExpense{
		deps:        deps,
		groupID:     groupID,
		groupName:   groupName,
		selected:    make(map[string]bool),
		title:       title,
		amount:      amount,
		description: description,
		spinner:     components.NewSpinner("Loading members"),
		panel:       components.NewErrorPanel(deps.Theme),
	}
}

// Init implements Screen.
func (s *AddExpense) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, s.load())
}

// Title implements Screen.
func (s *AddExpense) Title() string { return "Nest — Add expense" }

// Area implements Screen.
func (s *AddExpense) Area() guard.Area { return guard.AreaAuthed }

func (s *AddExpense) load() tea.Cmd {
	s.seq++
	seq := s.seq
	s.loading = true
	s.panel.Clear()
	s.spinner.SetMessage("Loading members")

	gql := s.deps.GQL
	groupID := s.groupID
	return tea.Batch(s.spinner.Start(), func() tea.Msg {
		group, err := gql.GroupMembers(context.Background(), groupID)
		return membersMsg{seq: seq, group: group, err: err}
	})
}

// CanSubmit reports whether the form is complete: a title, an amount that
// parses above zero, and at least one member.
func (s *AddExpense) CanSubmit() bool {
	if strings.TrimSpace(s.title.Value()) == "" {
		return false
	}
	if _, ok := util.ParseAmount(s.amount.Value()); !ok {
		return false
	}
	return len(s.selected) > 0
}

// Update implements Screen.
func (s *AddExpense) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case membersMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.loading = false
		s.spinner.Stop()
		if msg.err != nil {
			s.panel.Show(api.UserMessage(msg.err, "Failed to load group members"), true)
			return s, nil
		}
		s.members = msg.group.Members
		// Everyone is in by default.
		for _, m := range s.members {
			s.selected[m.ID] = true
		}
		return s, nil

	case addExpenseMsg:
		if msg.seq != s.seq {
			return s, nil
		}
		s.submitting = false
		s.spinner.Stop()
		if msg.err != nil {
			s.panel.Show(api.UserMessage(msg.err, "Failed to create expense"), false)
			return s, nil
		}
		if msg.result != nil && !msg.result.IsSuccess {
			message := msg.result.Message
			if message == "" {
				message = "Failed to create expense"
			}
			s.panel.Show(message, false)
			return s, nil
		}
		return s, navigate(ShowGroupMsg{GroupID: s.groupID, GroupName: s.groupName})

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

func (s *AddExpense) handleKey(msg tea.KeyMsg) (Screen, tea.Cmd) {
	if s.submitting {
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, navigate(ShowGroupMsg{GroupID: s.groupID, GroupName: s.groupName})

	case "r":
		if s.panel.Visible() && len(s.members) == 0 {
			return s, s.load()
		}

	case "tab":
		s.setFocus(s.focus + 1)
		return s, nil

	case "shift+tab":
		s.setFocus(s.focus - 1)
		return s, nil

	case "up", "down":
		if s.focus == fieldMembers {
			if msg.String() == "up" && s.memberIdx > 0 {
				s.memberIdx--
			}
			if msg.String() == "down" && s.memberIdx < len(s.members)-1 {
				s.memberIdx++
			}
			return s, nil
		}

	case " ":
		if s.focus == fieldMembers && s.memberIdx < len(s.members) {
			id := s.members[s.memberIdx].ID
			if s.selected[id] {
				delete(s.selected, id)
			} else {
				s.selected[id] = true
			}
			return s, nil
		}

	case "enter":
		if s.CanSubmit() {
			return s, s.submit()
		}
		return s, nil
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldTitle:
		s.title, cmd = s.title.Update(msg)
	case fieldAmount:
		s.amount, cmd = s.amount.Update(msg)
	case fieldDescription:
		s.description, cmd = s.description.Update(msg)
	}
	return s, cmd
}

func (s *AddExpense) setFocus(focus int) {
	if focus < fieldTitle {
		focus = fieldMembers
	}
	if focus > fieldMembers {
		focus = fieldTitle
	}
	s.focus = focus

	s.title.Blur()
	s.amount.Blur()
	s.description.Blur()
	switch focus {
	case fieldTitle:
		s.title.Focus()
	case fieldAmount:
		s.amount.Focus()
	case fieldDescription:
		s.description.Focus()
	}
}

func (s *AddExpense) submit() tea.Cmd {
	amount, _ := util.ParseAmount(s.amount.Value())

	input := model.AddExpenseInput{
		GroupID: s.groupID,
		Title:   strings.TrimSpace(s.title.Value()),
		Amount:  amount,
		IsEqual: true,
	}
	if desc := strings.TrimSpace(s.description.Value()); desc != "" {
		input.Description = &desc
	}
	for id := range s.selected {
		input.MemberIDs = append(input.MemberIDs, id)
	}

	s.panel.Clear()
	s.seq++
	seq := s.seq
	s.submitting = true
	s.spinner.SetMessage("Creating expense")

	gql := s.deps.GQL
	return tea.Batch(s.spinner.Start(), func() tea.Msg {
		result, err := gql.AddExpense(context.Background(), input)
		return addExpenseMsg{seq: seq, result: result, err: err}
	})
}

// View implements Screen.
func (s *AddExpense) View() string {
	t := s.deps.Theme
	var b strings.Builder

	b.WriteString(t.ScreenTitle.Render("Add expense — " + s.groupName))
	b.WriteString("\n")

	if s.loading || s.submitting {
		b.WriteString(s.spinner.View())
		return t.Container.Render(b.String())
	}
	if s.panel.Visible() {
		b.WriteString(s.panel.View())
		b.WriteString("\n\n")
		if len(s.members) == 0 {
			return t.Container.Render(b.String())
		}
	}

	b.WriteString(t.FormLabel.Render("Title"))
	b.WriteString("\n")
	b.WriteString(s.title.View())
	b.WriteString("\n")
	b.WriteString(t.FormLabel.Render("Amount"))
	b.WriteString("\n")
	b.WriteString(s.amount.View())
	b.WriteString("\n")
	b.WriteString(t.FormLabel.Render("Description"))
	b.WriteString("\n")
	b.WriteString(s.description.View())
	b.WriteString("\n\n")

	b.WriteString(t.FormLabel.Render("Split between"))
	b.WriteString("\n")
	for i, m := range s.members {
		mark := styles.StatusIndicators.Empty
		if s.selected[m.ID] {
			mark = styles.StatusIndicators.Selected
		}
		line := mark + " " + m.DisplayName()
		if s.focus == fieldMembers && i == s.memberIdx {
			b.WriteString(t.ListItemSelected.Render(line))
		} else {
			b.WriteString(t.ListItem.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.CanSubmit() {
		b.WriteString(t.ButtonActive.Render("enter to save"))
	} else {
		b.WriteString(t.ButtonDisabled.Render("enter to save"))
	}
	b.WriteString("  ")
	b.WriteString(t.FormHint.Render("tab next field · space toggle member · esc back"))
	return t.Container.Render(b.String())
}
