// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for nest-tui.
//
// Configuration is read from ~/.nest-tui/config.toml with built-in defaults
// and environment variable overrides (NEST_*). The config directory also
// holds the sealed session token and the request log, so its permissions are
// enforced to 0700.
package config
