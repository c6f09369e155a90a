// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command handlers for the Nest TUI.
package cli

import (
	"fmt"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLogin
	CmdLogout
	CmdStatus
	CmdExpenses
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet   bool
	Verbose bool
	BaseURL string // override the configured API base URL

	// Command-specific
	Email string
	OTP   bool // login with a one-time code instead of a password

	// Raw args (remaining after flag parsing)
	Raw []string
}

const usageText = `nest - split expenses from your terminal

Nest tracks shared expenses across your groups. The TUI is the default;
the subcommands cover scripted use.

Usage:
  nest                       Start the TUI (default)
  nest login                 Sign in and store the session token
    --email ADDRESS          Email to sign in with (prompted if omitted)
    --otp                    Use an emailed one-time code instead of a password
  nest logout                Clear the stored session token
  nest status, s             Show session status
  nest expenses, e           List your expenses
  nest version               Show version information
  nest help                  Show this help

Global Flags:
  --base-url URL   Override the API base URL
  -q, --quiet      Minimal output
  -v, --verbose    Log every request

Examples:
  nest                             Start the TUI
  nest login --email a@b.com       Password sign-in
  nest login --otp                 Sign in with an emailed code
  nest expenses                    Print your expense list
  nest logout                      Sign out

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("nest version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments and returns the command and args.
func Parse() (Command, Args) {
	return parse(os.Args[1:])
}

// parse is the testable core of Parse.
func parse(args []string) (Command, Args) {
	remaining, parsed := parseGlobalFlags(args)

	// No arguments: the TUI is the default.
	if len(remaining) == 0 {
		return CmdTUI, parsed
	}

	cmd := strings.ToLower(remaining[0])
	remaining = remaining[1:]
	parsed.Raw = remaining

	switch cmd {
	case "tui":
		return CmdTUI, parsed

	case "login":
		parseLoginArgs(&parsed, remaining)
		return CmdLogin, parsed

	case "logout":
		return CmdLogout, parsed

	case "status", "s":
		return CmdStatus, parsed

	case "expenses", "e":
		return CmdExpenses, parsed

	case "version", "--version", "-V":
		return CmdVersion, parsed

	case "help", "--help", "-h":
		return CmdHelp, parsed

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		return CmdHelp, parsed
	}
}

// parseGlobalFlags extracts global flags, returning the remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var parsed Args
	var remaining []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-q", "--quiet":
			parsed.Quiet = true
		case "-v", "--verbose":
			parsed.Verbose = true
		case "--base-url":
			if i+1 < len(args) {
				i++
				parsed.BaseURL = args[i]
			}
		default:
			remaining = append(remaining, args[i])
		}
	}
	return remaining, parsed
}

// parseLoginArgs parses login-specific flags.
func parseLoginArgs(parsed *Args, args []string) {
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--email":
			if i+1 < len(args) {
				i++
				parsed.Email = args[i]
			}
		case "--otp":
			parsed.OTP = true
		}
	}
}
