// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses command-line arguments and implements the non-TUI
// subcommands: login, logout, status, and the expense listing. It also
// assembles the shared application stack the TUI runs on.
package cli
