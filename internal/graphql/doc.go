// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package graphql implements the GraphQL client for the Nest backend:
// the dashboard query, group membership and group expense queries, and the
// addExpense / payExpenseShares mutations.
//
// The transport mirrors the REST client: bearer token read from a
// TokenSource at dispatch time, request IDs on every call, and the same
// error taxonomy. A GraphQL errors array is mapped to an api.APIError
// carrying the first message, so screens surface server messages verbatim
// through one code path.
package graphql
