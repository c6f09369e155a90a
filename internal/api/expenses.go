// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nestapp/nest-tui/internal/model"
)

// expensesPath is the authenticated REST expense listing.
const expensesPath = "/api/expenses"

// ListExpenses fetches the caller's expenses across all groups. It fails
// with ErrMissingToken before any request is dispatched when no session
// token is held.
func (c *Client) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	if c.token() == "" {
		return nil, ErrMissingToken
	}

	status, respBody, err := c.do(ctx, http.MethodGet, expensesPath, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, statusError(status, respBody)
	}

	var resp struct {
		OK   bool            `json:"ok"`
		Data []model.Expense `json:"data"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil || !resp.OK || resp.Data == nil {
		return nil, ErrUnexpectedResponse
	}
	return resp.Data, nil
}
