// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/nestapp/nest-tui/internal/model"
)

// REST endpoint paths.
const (
	loginPath      = "/api/mobile/login"
	otpRequestPath = "/api/auth/otp/request"
	otpVerifyPath  = "/api/auth/otp/verify"
)

// LoginResult is a successful credential acquisition: the bearer token and
// the authenticated user.
type LoginResult struct {
	Token string
	User  model.User
}

// loginResponse is the wire shape of both login endpoints.
type loginResponse struct {
	OK    bool       `json:"ok"`
	Token string     `json:"token"`
	User  model.User `json:"user"`
	Error string     `json:"error"`
}

// Login performs a password login. On success the returned token has not
// yet been stored anywhere; the caller hands it to the session manager.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{
		"method":   "password",
		"email":    email,
		"password": password,
	}

	status, respBody, err := c.do(ctx, http.MethodPost, loginPath, body)
	if err != nil {
		return nil, err
	}
	return parseLoginResponse(status, respBody)
}

// RequestOTP starts an OTP login by asking the server to issue a challenge
// for the given (already normalized) email. The returned challengeId must be
// threaded through to VerifyOTP unmodified.
func (c *Client) RequestOTP(ctx context.Context, email string) (string, error) {
	status, respBody, err := c.do(ctx, http.MethodPost, otpRequestPath, map[string]string{"email": email})
	if err != nil {
		return "", err
	}
	if status < 200 || status > 299 {
		return "", statusError(status, respBody)
	}

	var resp struct {
		ChallengeID string `json:"challengeId"`
	}
	if err := json.Unmarshal(respBody, &resp); err != nil || resp.ChallengeID == "" {
		return "", ErrUnexpectedResponse
	}
	return resp.ChallengeID, nil
}

// VerifyOTP completes an OTP login by verifying code against the challenge.
// Inputs are sent exactly as given; normalization happens in the flow layer.
func (c *Client) VerifyOTP(ctx context.Context, email, code, challengeID string) (*LoginResult, error) {
	body := map[string]string{
		"email":       email,
		"code":        code,
		"challengeId": challengeID,
	}

	status, respBody, err := c.do(ctx, http.MethodPost, otpVerifyPath, body)
	if err != nil {
		return nil, err
	}
	return parseLoginResponse(status, respBody)
}

// parseLoginResponse maps the shared {ok, token, user, error} envelope.
// A server-provided error message is surfaced verbatim through APIError.
func parseLoginResponse(status int, body []byte) (*LoginResult, error) {
	var resp loginResponse
	parsed := json.Unmarshal(body, &resp) == nil

	if status < 200 || status > 299 {
		if parsed && resp.Error != "" {
			return nil, &APIError{Status: status, Message: resp.Error}
		}
		return nil, &APIError{Status: status}
	}
	if !parsed || !resp.OK {
		if parsed && resp.Error != "" {
			return nil, &APIError{Status: status, Message: resp.Error}
		}
		return nil, ErrUnexpectedResponse
	}
	if resp.Token == "" {
		return nil, ErrUnexpectedResponse
	}
	return &LoginResult{Token: resp.Token, User: resp.User}, nil
}
