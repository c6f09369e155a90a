// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/nestapp/nest-tui/internal/api"
	"github.com/nestapp/nest-tui/internal/auth"
	"github.com/nestapp/nest-tui/internal/config"
	"github.com/nestapp/nest-tui/internal/graphql"
	"github.com/nestapp/nest-tui/internal/secrets"
)

// Stack is the assembled application backbone shared by the TUI and the
// subcommands: configuration, the secure token store, the session manager,
// and the network clients.
type Stack struct {
	Config  *config.Config
	Store   *secrets.FileStore
	Session *auth.Manager
	Flows   *auth.Flows
	REST    *api.Client
	GQL     *graphql.Client
}

// BuildStack loads configuration, opens the token store, and wires the
// session manager into the network clients. The session is hydrated before
// returning, so callers can read its status immediately.
func BuildStack(args Args) (*Stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if args.BaseURL != "" {
		cfg.API.BaseURL = args.BaseURL
		cfg.API.GraphQLURL = ""
	}

	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	store, err := secrets.NewFileStore(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open token store: %w", err)
	}

	session := auth.NewManager(store)

	var logger *log.Logger
	if args.Verbose || cfg.API.LogRequests {
		logger = log.New(os.Stderr, "nest: ", log.LstdFlags)
	}

	rest := api.NewClient(cfg.API.BaseURL).
		WithTokenSource(session).
		WithTimeout(cfg.API.Timeout()).
		WithRateLimit(cfg.API.RateLimitPerSec).
		WithLogger(logger)

	gql := graphql.NewClient(cfg.GraphQLEndpoint()).
		WithTokenSource(session).
		WithTimeout(cfg.API.Timeout()).
		WithRateLimit(cfg.API.RateLimitPerSec).
		WithLogger(logger)

	if err := session.Initialize(); err != nil {
		// A broken store surfaces as guest; the commands report it but
		// can still run the login flow.
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}

	return &Stack{
		Config:  cfg,
		Store:   store,
		Session: session,
		Flows:   auth.NewFlows(rest, session),
		REST:    rest,
		GQL:     gql,
	}, nil
}
