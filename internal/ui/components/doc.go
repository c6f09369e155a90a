// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides shared UI components for the Nest TUI:
// the loading spinner, the error panel with its retry affordance, and the
// bottom status bar.
package components
