// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Configuration constants for the Nest REST API.
const (
	// DefaultTimeout is the default timeout for API requests.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize caps response bodies to keep a misbehaving server
	// from exhausting memory.
	MaxResponseSize = 2 * 1024 * 1024 // 2MB

	// userAgent identifies this client on the wire.
	userAgent = "nest-tui/0.1.0"
)

// Error variables for the REST client.
var (
	// ErrNetwork indicates a transport-level failure (timeout, DNS,
	// connection refused).
	ErrNetwork = errors.New("network failure")

	// ErrUnexpectedResponse indicates a response body that parsed but
	// lacked its expected success marker or required fields.
	ErrUnexpectedResponse = errors.New("unexpected response from server")

	// ErrMissingToken indicates a protected call was attempted with no
	// stored session token. Raised before any request is dispatched.
	ErrMissingToken = errors.New("missing auth token, please log in again")
)

// APIError is a request that reached the server and failed: a non-2xx
// status, optionally with the server's error message.
type APIError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("request failed (%d)", e.Status)
}

// TokenSource supplies the current bearer token. The session manager
// implements it; the empty string means "no credential" and the request is
// sent anonymously.
type TokenSource interface {
	Token() string
}

// sharedHTTPClient is the pooled transport shared by all REST clients.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
	Timeout: DefaultTimeout,
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is the REST client for the Nest backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a REST client for the given base URL
// (e.g. "http://localhost:3000").
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: sharedHTTPClient,
	}
}

// WithTokenSource sets the bearer-token source consulted on every request.
func (c *Client) WithTokenSource(ts TokenSource) *Client {
	c.tokens = ts
	return c
}

// WithTimeout sets the per-request timeout. A dedicated HTTP client is used
// so the shared pooled client's timeout is untouched.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.httpClient = &http.Client{
		Transport: sharedHTTPClient.Transport,
		Timeout:   timeout,
	}
	return c
}

// WithRateLimit caps outgoing requests per second (0 disables the limiter).
func (c *Client) WithRateLimit(perSec float64) *Client {
	if perSec > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(perSec), 1)
	} else {
		c.limiter = nil
	}
	return c
}

// WithLogger sets the request logger. Lines contain method, path, status,
// and duration only — never headers or bodies.
func (c *Client) WithLogger(l *log.Logger) *Client {
	c.logger = l
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// token returns the current bearer token, or "" when unauthenticated.
func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// setHeaders sets the common headers, attaching the bearer credential only
// when a token is currently held.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}
}

// logf writes a request log line when a logger is configured.
func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// do performs one HTTP request and returns the status code and body bytes.
// Transport failures are wrapped in ErrNetwork. No retries at this layer.
func (c *Client) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, err
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logf("%s %s -> error: %v", method, path, err)
		return 0, nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := readResponse(resp)
	c.logf("%s %s -> %d (%v)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, respBody, nil
}

// readResponse reads the body with a size limit.
func readResponse(resp *http.Response) ([]byte, error) {
	limited := io.LimitReader(resp.Body, MaxResponseSize+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("response exceeded maximum size of %d bytes", MaxResponseSize)
	}
	return body, nil
}

// okEnvelope is the common REST response envelope.
type okEnvelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// statusError converts a non-2xx response into an APIError, preferring the
// server's own error message when the body carries one.
func statusError(status int, body []byte) error {
	var env okEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		return &APIError{Status: status, Message: env.Error}
	}
	return &APIError{Status: status}
}

// UserMessage converts any client error into the single human-readable
// message shown to the user, falling back to the given text when the error
// carries nothing presentable.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrMissingToken) {
		return "Missing auth token. Please log in again."
	}
	return fallback
}
