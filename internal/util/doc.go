// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the nest-tui application:
// atomic file writes, width-aware string truncation, input normalization,
// and money formatting.
package util
