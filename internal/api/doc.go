// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the REST client for the Nest backend: password and
// OTP login, and the authenticated expense listing.
//
// The client attaches the current bearer token to every request by reading
// it from a TokenSource at dispatch time, so a committed token change is
// always observed by the next request. Errors fall into three kinds: typed
// APIError for non-2xx statuses (RequestFailed), ErrUnexpectedResponse for
// bodies missing their success marker, and ErrNetwork for transport
// failures. None are retried here; screens convert them into a single
// user-facing message.
package api
