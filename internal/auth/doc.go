// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package auth owns the client's authentication lifecycle: the session state
// manager (the single source of truth for status and token) and the
// credential acquisition flows (password login and two-step OTP login).
//
// The manager hydrates from the secure token store, serializes all mutations
// so readers never observe a partial write, and pushes change notifications
// to subscribers (the route guard and any interested screen) synchronously
// after each committed change.
package auth
