// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/nestapp/nest-tui/internal/auth"
	"github.com/nestapp/nest-tui/internal/secrets"
)

// HandleStatus prints the current session status and connection settings.
func HandleStatus(args Args) error {
	stack, err := BuildStack(args)
	if err != nil {
		return err
	}

	snap := stack.Session.Snapshot()
	switch snap.Status {
	case auth.StatusAuthed:
		fmt.Println("Session:  signed in")
	case auth.StatusGuest:
		fmt.Println("Session:  signed out")
	default:
		fmt.Println("Session:  " + snap.Status.String())
	}

	if args.Quiet {
		return nil
	}
	token := "absent"
	if stack.Store.Exists(secrets.TokenKey) {
		token = "stored"
	}
	fmt.Printf("Token:    %s\n", token)
	fmt.Printf("API:      %s\n", stack.Config.API.BaseURL)
	fmt.Printf("GraphQL:  %s\n", stack.Config.GraphQLEndpoint())
	return nil
}
