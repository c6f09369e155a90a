// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package guard decides where the UI is allowed to be for a given session
// status. It is a pure function of (status, current area): no redirect is
// ever issued while the session is still hydrating, guests are sent to the
// login area, and an authenticated user sitting on a login screen is sent
// into the app. Applying a decision and deciding again yields no further
// redirect.
package guard

import (
	"fmt"

	"github.com/nestapp/nest-tui/internal/auth"
)

// Area classifies where in the UI the user currently is.
type Area int

const (
	// AreaLogin covers the credential screens (login, OTP verify).
	AreaLogin Area = iota
	// AreaAuthed covers the protected screens (home, expenses, groups).
	AreaAuthed
	// AreaOther covers neutral surfaces (loading, help) that neither
	// require nor forbid a session.
	AreaOther
)

// String returns the area name.
func (a Area) String() string {
	switch a {
	case AreaLogin:
		return "login"
	case AreaAuthed:
		return "authed"
	case AreaOther:
		return "other"
	default:
		return fmt.Sprintf("Area(%d)", int(a))
	}
}

// Decision is the guard's verdict: stay put, or redirect to Target.
type Decision struct {
	Redirect bool
	Target   Area
}

// Decide returns the routing decision for the given session status and
// current area.
func Decide(status auth.Status, current Area) Decision {
	switch status {
	case auth.StatusLoading:
		// Hydration pending: never move the user on a provisional state.
		return Decision{}
	case auth.StatusGuest:
		if current != AreaLogin {
			return Decision{Redirect: true, Target: AreaLogin}
		}
		return Decision{}
	case auth.StatusAuthed:
		if current == AreaLogin {
			return Decision{Redirect: true, Target: AreaAuthed}
		}
		return Decision{}
	default:
		return Decision{}
	}
}
