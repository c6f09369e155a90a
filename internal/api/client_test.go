// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

// tokenStub is a mutable TokenSource for tests.
type tokenStub struct{ value atomic.Value }

func newTokenStub(t string) *tokenStub {
	s := &tokenStub{}
	s.value.Store(t)
	return s
}

func (s *tokenStub) Token() string { return s.value.Load().(string) }
func (s *tokenStub) Set(t string)  { s.value.Store(t) }

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/mobile/login" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["method"] != "password" || body["email"] != "a@b.com" || body["password"] != "x" {
			t.Errorf("unexpected body: %v", body)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"ok":    true,
			"token": "T1",
			"user":  map[string]string{"id": "1", "email": "a@b.com"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	res, err := c.Login(context.Background(), "a@b.com", "x")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if res.Token != "T1" {
		t.Errorf("Token = %q, want T1", res.Token)
	}
	if res.User.Email != "a@b.com" {
		t.Errorf("User.Email = %q", res.User.Email)
	}
}

func TestLogin_ServerErrorVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "Invalid credentials"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("want APIError, got %v", err)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Errorf("Message = %q, want server message verbatim", apiErr.Message)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("Status = %d, want 401", apiErr.Status)
	}
}

func TestLogin_OkFalseWithoutStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "Account locked"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Login(context.Background(), "a@b.com", "x")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Account locked" {
		t.Fatalf("want verbatim server error, got %v", err)
	}
}

func TestRequestOTP_MissingChallengeID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.RequestOTP(context.Background(), "a@b.com")
	if !errors.Is(err, ErrUnexpectedResponse) {
		t.Errorf("want ErrUnexpectedResponse, got %v", err)
	}
}

func TestRequestOTP_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "a@b.com" {
			t.Errorf("email = %q, want a@b.com", body["email"])
		}
		json.NewEncoder(w).Encode(map[string]string{"challengeId": "ch1"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	id, err := c.RequestOTP(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	if id != "ch1" {
		t.Errorf("challengeId = %q, want ch1", id)
	}
}

func TestVerifyOTP_InvalidCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "Invalid code"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.VerifyOTP(context.Background(), "a@b.com", "123456", "ch1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Invalid code" {
		t.Fatalf("want Invalid code, got %v", err)
	}
}

func TestBearerHeader_FollowsTokenSource(t *testing.T) {
	var gotAuth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "data": []any{}})
	}))
	defer srv.Close()

	ts := newTokenStub("abc")
	c := NewClient(srv.URL).WithTokenSource(ts)

	if _, err := c.ListExpenses(context.Background()); err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if got := gotAuth.Load().(string); got != "Bearer abc" {
		t.Errorf("Authorization = %q, want Bearer abc", got)
	}

	// The next dispatched request observes the new token.
	ts.Set("xyz")
	if _, err := c.ListExpenses(context.Background()); err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if got := gotAuth.Load().(string); got != "Bearer xyz" {
		t.Errorf("Authorization = %q, want Bearer xyz", got)
	}
}

func TestListExpenses_MissingTokenBeforeDispatch(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer srv.Close()

	c := NewClient(srv.URL).WithTokenSource(newTokenStub(""))
	_, err := c.ListExpenses(context.Background())
	if !errors.Is(err, ErrMissingToken) {
		t.Errorf("want ErrMissingToken, got %v", err)
	}
	if requests.Load() != 0 {
		t.Errorf("no request should have been dispatched, got %d", requests.Load())
	}
}

func TestListExpenses_UnexpectedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"ok": false})
	}))
	defer srv.Close()

	c := NewClient(srv.URL).WithTokenSource(newTokenStub("t"))
	_, err := c.ListExpenses(context.Background())
	if !errors.Is(err, ErrUnexpectedResponse) {
		t.Errorf("want ErrUnexpectedResponse, got %v", err)
	}
}

func TestNetworkErrorWrapped(t *testing.T) {
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClient(url)
	_, err := c.Login(context.Background(), "a@b.com", "x")
	if !errors.Is(err, ErrNetwork) {
		t.Errorf("want ErrNetwork, got %v", err)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(&APIError{Status: 401, Message: "Invalid code"}, "fallback"); got != "Invalid code" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(&APIError{Status: 500}, "fallback"); got != "fallback" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(ErrUnexpectedResponse, "fallback"); got != "fallback" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(ErrMissingToken, "fallback"); got != "Missing auth token. Please log in again." {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(nil, "fallback"); got != "" {
		t.Errorf("UserMessage(nil) = %q, want empty", got)
	}
}
