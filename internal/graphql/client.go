// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/nestapp/nest-tui/internal/api"
)

// userAgent identifies this client on the wire.
const userAgent = "nest-tui/0.1.0"

// request is the standard GraphQL POST body.
type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// response is the standard GraphQL response envelope.
type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// sharedHTTPClient is the pooled transport shared by all GraphQL clients.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
	Timeout: api.DefaultTimeout,
}

// =============================================================================
// CLIENT
// =============================================================================

// Client is the GraphQL client for the Nest backend.
type Client struct {
	endpoint   string
	httpClient *http.Client
	tokens     api.TokenSource
	limiter    *rate.Limiter
	logger     *log.Logger
}

// NewClient creates a GraphQL client for the given endpoint URL
// (e.g. "http://localhost:3000/api/graphql").
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint:   endpoint,
		httpClient: sharedHTTPClient,
	}
}

// WithTokenSource sets the bearer-token source consulted on every request.
func (c *Client) WithTokenSource(ts api.TokenSource) *Client {
	c.tokens = ts
	return c
}

// WithTimeout sets the per-request timeout without touching the shared
// pooled client.
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

// WithLogger sets the request logger. Lines contain the operation name,
// status, and duration only.
func (c *Client) WithLogger(l *log.Logger) *Client {
	c.logger = l
	return c
}

// Endpoint returns the configured endpoint URL.
func (c *Client) Endpoint() string { return c.endpoint }

// token returns the current bearer token, or "" when unauthenticated.
func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

// =============================================================================
// EXECUTION
// =============================================================================

// execute posts one GraphQL operation and unmarshals the data field into
// out. A populated errors array fails the call with an api.APIError carrying
// the first message; transport failures are wrapped in api.ErrNetwork.
func (c *Client) execute(ctx context.Context, opName, query string, variables map[string]any, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logf("gql %s -> error: %v", opName, err)
		return fmt.Errorf("%w: %v", api.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, api.MaxResponseSize+1))
	c.logf("gql %s -> %d (%v)", opName, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	if err != nil {
		return fmt.Errorf("%w: %v", api.ErrNetwork, err)
	}
	if int64(len(body)) > api.MaxResponseSize {
		return fmt.Errorf("response exceeded maximum size of %d bytes", api.MaxResponseSize)
	}

	var env response
	parsed := json.Unmarshal(body, &env) == nil
	if parsed && len(env.Errors) > 0 {
		return &api.APIError{Status: resp.StatusCode, Message: env.Errors[0].Message}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &api.APIError{Status: resp.StatusCode}
	}
	if !parsed || env.Data == nil {
		return api.ErrUnexpectedResponse
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return api.ErrUnexpectedResponse
	}
	return nil
}
