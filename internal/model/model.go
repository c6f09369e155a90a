// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "strconv"

// =============================================================================
// USERS AND GROUPS
// =============================================================================

// User is an authenticated account as returned by the login endpoints.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Member is a membership of a user in a group.
type Member struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id,omitempty"`
	GroupID   string `json:"group_id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	JoinedAt  string `json:"joined_at,omitempty"`
	User      *User  `json:"user,omitempty"`
}

// DisplayName returns the member's name, falling back to the email address
// when no name is on record.
func (m Member) DisplayName() string {
	switch {
	case m.FirstName != "" && m.LastName != "":
		return m.FirstName + " " + m.LastName
	case m.FirstName != "":
		return m.FirstName
	case m.LastName != "":
		return m.LastName
	default:
		return m.Email
	}
}

// Group is an expense-sharing group.
type Group struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Active    bool     `json:"active,omitempty"`
	CreatedBy string   `json:"created_by,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
	Members   []Member `json:"members"`
}

// DashboardSummary is the aggregate returned by the dashboard query.
type DashboardSummary struct {
	TotalDebt float64 `json:"totalDebt"`
}

// =============================================================================
// EXPENSES
// =============================================================================

// Expense is a row from the REST expense listing (GET /api/expenses).
// Amounts come over the wire as strings.
type Expense struct {
	ID      string `json:"id"`
	GroupID string `json:"groupId,omitempty"`
	Title   string `json:"expenseTitle"`
	Amount  string `json:"expenseAmount"`
	Group   string `json:"groupName"`
	Paid    bool   `json:"paid"`
}

// AmountValue parses the wire amount. Unparseable amounts report ok=false
// and are excluded from totals but still rendered in lists.
func (e Expense) AmountValue() (float64, bool) {
	v, err := strconv.ParseFloat(e.Amount, 64)
	return v, err == nil
}

// ExpenseSummary aggregates an expense list for the summary card.
type ExpenseSummary struct {
	UnpaidTotal float64
	PaidCount   int
	UnpaidCount int
}

// Summarize computes the unpaid total and paid/unpaid counts for a list of
// expenses. Only parseable, unpaid amounts contribute to the total.
func Summarize(expenses []Expense) ExpenseSummary {
	var s ExpenseSummary
	for _, e := range expenses {
		if e.Paid {
			s.PaidCount++
			continue
		}
		s.UnpaidCount++
		if v, ok := e.AmountValue(); ok {
			s.UnpaidTotal += v
		}
	}
	return s
}

// =============================================================================
// GROUP EXPENSES AND SHARES
// =============================================================================

// GroupExpense is a row from the getGroupExpenses query: one expense within
// a group together with the caller's share of it.
type GroupExpense struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Amount         string  `json:"amount"`
	Description    string  `json:"description"`
	IsEqual        bool    `json:"isEqual"`
	MyShare        float64 `json:"myShare"`
	CreatedBy      string  `json:"created_by"`
	CreatedAt      string  `json:"created_at"`
	IsPaid         bool    `json:"isPaid"`
	ExpenseShareID string  `json:"expenseShareId"`
}

// StatusFilter selects which group expenses to show.
type StatusFilter int

const (
	FilterAll StatusFilter = iota
	FilterPaid
	FilterUnpaid
)

// String returns the filter's chip label.
func (f StatusFilter) String() string {
	switch f {
	case FilterPaid:
		return "Paid"
	case FilterUnpaid:
		return "Unpaid"
	default:
		return "All"
	}
}

// FilterGroupExpenses returns the subset of expenses matching the filter.
// The input slice is never mutated.
func FilterGroupExpenses(filter StatusFilter, expenses []GroupExpense) []GroupExpense {
	if filter == FilterAll {
		return expenses
	}
	wantPaid := filter == FilterPaid
	out := make([]GroupExpense, 0, len(expenses))
	for _, e := range expenses {
		if e.IsPaid == wantPaid {
			out = append(out, e)
		}
	}
	return out
}

// ShareTotal sums MyShare over the expenses whose IDs are in selected.
// Used for the settle button's running total.
func ShareTotal(expenses []GroupExpense, selected map[string]bool) float64 {
	var total float64
	for _, e := range expenses {
		if selected[e.ID] {
			total += e.MyShare
		}
	}
	return total
}

// =============================================================================
// MUTATION INPUTS AND RESULTS
// =============================================================================

// AddExpenseInput is the input object for the addExpense mutation.
// IsEqual is fixed to true by the client: unequal splits have no UI yet.
type AddExpenseInput struct {
	GroupID     string   `json:"groupId"`
	Title       string   `json:"title"`
	Amount      float64  `json:"amount"`
	Description *string  `json:"description"`
	IsEqual     bool     `json:"isEqual"`
	MemberIDs   []string `json:"memberIds"`
}

// AddExpenseResult is the payload returned by the addExpense mutation.
type AddExpenseResult struct {
	IsSuccess bool   `json:"isSuccess"`
	Message   string `json:"message"`
	ExpenseID string `json:"expenseId"`
}

// PayResult is the payload returned by the payExpenseShares mutation.
type PayResult struct {
	IsSuccess    bool   `json:"isSuccess"`
	Message      string `json:"message"`
	UpdatedCount int    `json:"updatedCount"`
}
