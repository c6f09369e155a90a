// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/nestapp/nest-tui/internal/api"
	"github.com/nestapp/nest-tui/internal/model"
	"github.com/nestapp/nest-tui/internal/util"
)

// Fallback messages shown when the server provides no error of its own.
const (
	msgLoginFailed = "Login failed"
	msgOTPFailed   = "Failed to start OTP. Please try again."
	msgInvalidCode = "Invalid code"
)

// ValidationError is a locally detected input problem. It is raised before
// any network request is made.
type ValidationError struct {
	Field string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// FlowError carries the single user-facing message for a failed flow step,
// wrapping the underlying cause for callers that need to inspect it.
type FlowError struct {
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *FlowError) Error() string { return e.Message }

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *FlowError) Unwrap() error { return e.Cause }

// flowError maps a client error to a FlowError with the given fallback text.
func flowError(err error, fallback string) *FlowError {
	return &FlowError{Message: api.UserMessage(err, fallback), Cause: err}
}

// =============================================================================
// FLOWS
// =============================================================================

// Flows runs the credential acquisition flows: password login and two-step
// OTP login. Acquired tokens are always routed through the session manager,
// which persists them before updating the in-memory state.
type Flows struct {
	client  *api.Client
	session *Manager
}

// NewFlows creates the flow runner over the REST client and session manager.
func NewFlows(client *api.Client, session *Manager) *Flows {
	return &Flows{client: client, session: session}
}

// PasswordLogin performs a password login and commits the acquired token to
// the session. The email and password are sent exactly as entered.
func (f *Flows) PasswordLogin(ctx context.Context, email, password string) (model.User, error) {
	if strings.TrimSpace(email) == "" {
		return model.User{}, &ValidationError{Field: "email"}
	}
	if password == "" {
		return model.User{}, &ValidationError{Field: "password"}
	}

	res, err := f.client.Login(ctx, email, password)
	if err != nil {
		return model.User{}, flowError(err, msgLoginFailed)
	}
	if err := f.session.SetToken(res.Token); err != nil {
		return model.User{}, err
	}
	return res.User, nil
}

// RequestOTP asks the server to issue an OTP challenge for email and returns
// the challenge id to thread through VerifyOTP. The email is normalized
// (trimmed, lowercased) before it goes on the wire.
func (f *Flows) RequestOTP(ctx context.Context, email string) (string, error) {
	normalized := util.NormalizeEmail(email)
	if normalized == "" {
		return "", &ValidationError{Field: "email"}
	}

	challengeID, err := f.client.RequestOTP(ctx, normalized)
	if err != nil {
		return "", flowError(err, msgOTPFailed)
	}
	return challengeID, nil
}

// VerifyOTP completes the OTP login: it validates all three inputs locally,
// verifies the code against the challenge, and commits the acquired token to
// the session.
func (f *Flows) VerifyOTP(ctx context.Context, email, code, challengeID string) (model.User, error) {
	normalized := util.NormalizeEmail(email)
	trimmed := strings.TrimSpace(code)
	if normalized == "" {
		return model.User{}, &ValidationError{Field: "email"}
	}
	if trimmed == "" {
		return model.User{}, &ValidationError{Field: "code"}
	}
	if challengeID == "" {
		return model.User{}, &ValidationError{Field: "challengeId"}
	}

	res, err := f.client.VerifyOTP(ctx, normalized, trimmed, challengeID)
	if err != nil {
		return model.User{}, flowError(err, msgInvalidCode)
	}
	if err := f.session.SetToken(res.Token); err != nil {
		return model.User{}, err
	}
	return res.User, nil
}

// Logout clears the session.
func (f *Flows) Logout() error {
	return f.session.Clear()
}
