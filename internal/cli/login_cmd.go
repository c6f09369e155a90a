// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/nestapp/nest-tui/internal/util"
)

// HandleLogin signs in from the command line and stores the session token.
// Password by default, --otp for the emailed one-time code flow.
func HandleLogin(args Args) error {
	stack, err := BuildStack(args)
	if err != nil {
		return err
	}

	email := strings.TrimSpace(args.Email)
	if email == "" {
		email, err = prompt("Email: ")
		if err != nil {
			return err
		}
	}

	ctx := context.Background()

	if args.OTP {
		challengeID, err := stack.Flows.RequestOTP(ctx, email)
		if err != nil {
			return fmt.Errorf("could not request a code: %s", err)
		}
		fmt.Printf("We sent a code to %s.\n", util.NormalizeEmail(email))

		code, err := prompt("Code: ")
		if err != nil {
			return err
		}
		user, err := stack.Flows.VerifyOTP(ctx, email, code, challengeID)
		if err != nil {
			return fmt.Errorf("sign-in failed: %s", err)
		}
		if !args.Quiet {
			fmt.Printf("Signed in as %s.\n", user.Email)
		}
		return nil
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	user, err := stack.Flows.PasswordLogin(ctx, email, password)
	if err != nil {
		return fmt.Errorf("sign-in failed: %s", err)
	}
	if !args.Quiet {
		fmt.Printf("Signed in as %s.\n", user.Email)
	}
	return nil
}

// HandleLogout clears the stored session token.
func HandleLogout(args Args) error {
	stack, err := BuildStack(args)
	if err != nil {
		return err
	}
	if err := stack.Flows.Logout(); err != nil {
		return fmt.Errorf("logout failed: %s", err)
	}
	if !args.Quiet {
		fmt.Println("Signed out.")
	}
	return nil
}

// prompt reads one line from stdin.
func prompt(label string) (string, error) {
	fmt.Print(label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing it.
func promptPassword(label string) (string, error) {
	fmt.Print(label)
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(raw), nil
}
