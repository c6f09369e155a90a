// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package graphql

import (
	"context"

	"github.com/nestapp/nest-tui/internal/api"
	"github.com/nestapp/nest-tui/internal/model"
)

// DefaultListLimit caps the dashboard group list and group expense lists.
const DefaultListLimit = 50

// Operation documents. Field selections match the server schema; renaming a
// field here breaks the unmarshal into the model types.
const (
	dashboardQuery = `
  query GetDashboard($limit: Int!) {
    dashboardSummary {
      totalDebt
    }
    getGroups(limit: $limit) {
      id
      name
      members { id }
    }
  }`

	groupMembersQuery = `
  query Group($groupId: ID!) {
    group(groupId: $groupId) {
      id
      name
      members {
        id
        first_name
        last_name
        email
      }
    }
  }`

	groupExpensesQuery = `
  query GetGroupExpenses($groupId: ID!, $limit: Int!) {
    getGroupExpenses(groupId: $groupId, limit: $limit) {
      id
      title
      amount
      description
      isEqual
      myShare
      created_by
      created_at
      isPaid
      expenseShareId
    }
  }`

	addExpenseMutation = `
  mutation AddExpense($input: AddExpenseInput!) {
    addExpense(input: $input) {
      isSuccess
      message
      expenseId
    }
  }`

	payExpenseSharesMutation = `
  mutation PayExpenseShares($expenseIds: [ID!]!) {
    payExpenseShares(expenseIds: $expenseIds) {
      isSuccess
      message
      updatedCount
    }
  }`
)

// Dashboard is the combined payload of the home screen query.
type Dashboard struct {
	Summary model.DashboardSummary
	Groups  []model.Group
}

// Dashboard fetches the total-debt summary and the caller's groups in a
// single round trip.
func (c *Client) Dashboard(ctx context.Context, limit int) (*Dashboard, error) {
	var data struct {
		DashboardSummary model.DashboardSummary `json:"dashboardSummary"`
		GetGroups        []model.Group          `json:"getGroups"`
	}
	vars := map[string]any{"limit": limit}
	if err := c.execute(ctx, "GetDashboard", dashboardQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.GetGroups == nil {
		data.GetGroups = []model.Group{}
	}
	return &Dashboard{Summary: data.DashboardSummary, Groups: data.GetGroups}, nil
}

// GroupMembers fetches one group with its member list, for the add-expense
// member picker.
func (c *Client) GroupMembers(ctx context.Context, groupID string) (*model.Group, error) {
	var data struct {
		Group *model.Group `json:"group"`
	}
	vars := map[string]any{"groupId": groupID}
	if err := c.execute(ctx, "Group", groupMembersQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.Group == nil {
		return nil, api.ErrUnexpectedResponse
	}
	return data.Group, nil
}

// GroupExpenses fetches the caller's expense shares within a group.
func (c *Client) GroupExpenses(ctx context.Context, groupID string, limit int) ([]model.GroupExpense, error) {
	var data struct {
		GetGroupExpenses []model.GroupExpense `json:"getGroupExpenses"`
	}
	vars := map[string]any{"groupId": groupID, "limit": limit}
	if err := c.execute(ctx, "GetGroupExpenses", groupExpensesQuery, vars, &data); err != nil {
		return nil, err
	}
	if data.GetGroupExpenses == nil {
		data.GetGroupExpenses = []model.GroupExpense{}
	}
	return data.GetGroupExpenses, nil
}

// AddExpense creates an expense split across the selected members.
func (c *Client) AddExpense(ctx context.Context, input model.AddExpenseInput) (*model.AddExpenseResult, error) {
	var data struct {
		AddExpense *model.AddExpenseResult `json:"addExpense"`
	}
	vars := map[string]any{"input": input}
	if err := c.execute(ctx, "AddExpense", addExpenseMutation, vars, &data); err != nil {
		return nil, err
	}
	if data.AddExpense == nil {
		return nil, api.ErrUnexpectedResponse
	}
	return data.AddExpense, nil
}

// PayExpenseShares settles the caller's shares of the given expenses.
func (c *Client) PayExpenseShares(ctx context.Context, expenseIDs []string) (*model.PayResult, error) {
	var data struct {
		PayExpenseShares *model.PayResult `json:"payExpenseShares"`
	}
	vars := map[string]any{"expenseIds": expenseIDs}
	if err := c.execute(ctx, "PayExpenseShares", payExpenseSharesMutation, vars, &data); err != nil {
		return nil, err
	}
	if data.PayExpenseShares == nil {
		return nil, api.ErrUnexpectedResponse
	}
	return data.PayExpenseShares, nil
}
