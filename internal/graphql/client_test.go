// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nestapp/nest-tui/internal/api"
	"github.com/nestapp/nest-tui/internal/model"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

// gqlHandler decodes the request and dispatches on the operation's query text.
func gqlServer(t *testing.T, handle func(query string, vars map[string]any) any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}
		json.NewEncoder(w).Encode(handle(req.Query, req.Variables))
	}))
}

func TestDashboard(t *testing.T) {
	srv := gqlServer(t, func(query string, vars map[string]any) any {
		if vars["limit"] != float64(50) {
			t.Errorf("limit = %v, want 50", vars["limit"])
		}
		return map[string]any{
			"data": map[string]any{
				"dashboardSummary": map[string]any{"totalDebt": 42.5},
				"getGroups": []map[string]any{
					{"id": "g1", "name": "Trip", "members": []map[string]any{{"id": "m1"}, {"id": "m2"}}},
				},
			},
		}
	})
	defer srv.Close()

	c := NewClient(srv.URL)
	dash, err := c.Dashboard(context.Background(), DefaultListLimit)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if dash.Summary.TotalDebt != 42.5 {
		t.Errorf("TotalDebt = %v, want 42.5", dash.Summary.TotalDebt)
	}
	if len(dash.Groups) != 1 || dash.Groups[0].Name != "Trip" || len(dash.Groups[0].Members) != 2 {
		t.Errorf("Groups = %+v", dash.Groups)
	}
}

func TestDashboard_NilGroupsBecomesEmpty(t *testing.T) {
	srv := gqlServer(t, func(string, map[string]any) any {
		return map[string]any{"data": map[string]any{
			"dashboardSummary": map[string]any{"totalDebt": 0},
		}}
	})
	defer srv.Close()

	dash, err := NewClient(srv.URL).Dashboard(context.Background(), 50)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if dash.Groups == nil {
		t.Error("Groups should be an empty slice, not nil")
	}
}

func TestGroupMembers(t *testing.T) {
	srv := gqlServer(t, func(query string, vars map[string]any) any {
		if vars["groupId"] != "g1" {
			t.Errorf("groupId = %v", vars["groupId"])
		}
		return map[string]any{"data": map[string]any{
			"group": map[string]any{
				"id":   "g1",
				"name": "Trip",
				"members": []map[string]any{
					{"id": "m1", "first_name": "Ada", "last_name": "L", "email": "a@b.com"},
				},
			},
		}}
	})
	defer srv.Close()

	g, err := NewClient(srv.URL).GroupMembers(context.Background(), "g1")
	if err != nil {
		t.Fatalf("GroupMembers failed: %v", err)
	}
	if g.Members[0].DisplayName() != "Ada L" {
		t.Errorf("DisplayName = %q", g.Members[0].DisplayName())
	}
}

func TestGroupMembers_NullGroup(t *testing.T) {
	srv := gqlServer(t, func(string, map[string]any) any {
		return map[string]any{"data": map[string]any{"group": nil}}
	})
	defer srv.Close()

	_, err := NewClient(srv.URL).GroupMembers(context.Background(), "gone")
	if !errors.Is(err, api.ErrUnexpectedResponse) {
		t.Errorf("want ErrUnexpectedResponse, got %v", err)
	}
}

func TestGroupExpenses(t *testing.T) {
	srv := gqlServer(t, func(query string, vars map[string]any) any {
		return map[string]any{"data": map[string]any{
			"getGroupExpenses": []map[string]any{
				{"id": "e1", "title": "Dinner", "amount": "30.00", "myShare": 10.0, "isPaid": false},
				{"id": "e2", "title": "Taxi", "amount": "12.00", "myShare": 6.0, "isPaid": true},
			},
		}}
	})
	defer srv.Close()

	list, err := NewClient(srv.URL).GroupExpenses(context.Background(), "g1", 50)
	if err != nil {
		t.Fatalf("GroupExpenses failed: %v", err)
	}
	if len(list) != 2 || list[0].MyShare != 10.0 {
		t.Errorf("list = %+v", list)
	}
}

func TestAddExpense(t *testing.T) {
	srv := gqlServer(t, func(query string, vars map[string]any) any {
		input := vars["input"].(map[string]any)
		if input["isEqual"] != true {
			t.Errorf("isEqual = %v, want true", input["isEqual"])
		}
		if input["title"] != "Dinner" {
			t.Errorf("title = %v", input["title"])
		}
		return map[string]any{"data": map[string]any{
			"addExpense": map[string]any{"isSuccess": true, "expenseId": "e9"},
		}}
	})
	defer srv.Close()

	res, err := NewClient(srv.URL).AddExpense(context.Background(), model.AddExpenseInput{
		GroupID:   "g1",
		Title:     "Dinner",
		Amount:    30,
		IsEqual:   true,
		MemberIDs: []string{"m1", "m2"},
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if !res.IsSuccess || res.ExpenseID != "e9" {
		t.Errorf("result = %+v", res)
	}
}

func TestPayExpenseShares(t *testing.T) {
	srv := gqlServer(t, func(query string, vars map[string]any) any {
		ids := vars["expenseIds"].([]any)
		if len(ids) != 2 {
			t.Errorf("expenseIds = %v", ids)
		}
		return map[string]any{"data": map[string]any{
			"payExpenseShares": map[string]any{"isSuccess": true, "updatedCount": 2},
		}}
	})
	defer srv.Close()

	res, err := NewClient(srv.URL).PayExpenseShares(context.Background(), []string{"e1", "e2"})
	if err != nil {
		t.Fatalf("PayExpenseShares failed: %v", err)
	}
	if res.UpdatedCount != 2 {
		t.Errorf("UpdatedCount = %d, want 2", res.UpdatedCount)
	}
}

func TestErrorsArraySurfacesFirstMessage(t *testing.T) {
	srv := gqlServer(t, func(string, map[string]any) any {
		return map[string]any{"errors": []map[string]any{
			{"message": "Not a group member"},
			{"message": "second"},
		}}
	})
	defer srv.Close()

	_, err := NewClient(srv.URL).Dashboard(context.Background(), 50)
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError, got %v", err)
	}
	if apiErr.Message != "Not a group member" {
		t.Errorf("Message = %q, want first error message", apiErr.Message)
	}
}

func TestBearerHeaderAttached(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"dashboardSummary": map[string]any{"totalDebt": 0},
			"getGroups":        []any{},
		}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL).WithTokenSource(staticToken("tok"))
	if _, err := c.Dashboard(context.Background(), 50); err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if auth != "Bearer tok" {
		t.Errorf("Authorization = %q, want Bearer tok", auth)
	}
}

func TestNetworkFailureWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Dashboard(context.Background(), 50)
	if !errors.Is(err, api.ErrNetwork) {
		t.Errorf("want ErrNetwork, got %v", err)
	}
}
