// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model defines the domain types exchanged with the Nest backend:
// users, groups, members, expenses, and expense shares. The backend owns all
// business logic (split computation, debt calculation); these types only
// mirror its wire shapes and provide presentation helpers.
package model
