// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package secrets provides durable, encrypted-at-rest storage for the
// session token. It is a small key-value store: one opaque string per key,
// surviving restarts, with absence meaning "logged out".
//
// The file-backed implementation seals values with AES-256-GCM under a key
// derived (PBKDF2-SHA-256) from a per-install random master key. Files are
// written atomically with 0600 permissions inside a 0700 directory; both are
// verified before use.
package secrets
