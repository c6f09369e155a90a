// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/nestapp/nest-tui/internal/secrets"
)

// =============================================================================
// SESSION STATUS
// =============================================================================

// Status classifies the authentication lifecycle.
type Status int

const (
	// StatusLoading means hydration from the token store has not finished.
	StatusLoading Status = iota
	// StatusAuthed means a session token is held.
	StatusAuthed
	// StatusGuest means no session token is held.
	StatusGuest
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthed:
		return "authed"
	case StatusGuest:
		return "guest"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Snapshot is an immutable view of the session state. The invariant
// Status == StatusAuthed ⇔ Token != "" holds for every published snapshot.
type Snapshot struct {
	Status Status
	Token  string
}

// Authed reports whether the snapshot carries a live session.
func (s Snapshot) Authed() bool { return s.Status == StatusAuthed }

// ErrStorage indicates the secure token store failed during a session
// mutation. The in-memory state is left untouched when it is returned.
var ErrStorage = errors.New("auth: secure storage failure")

// =============================================================================
// SESSION MANAGER
// =============================================================================

// Manager is the authoritative in-memory view of the session, kept
// consistent with the secure token store.
//
// Initialize, Refresh, SetToken, and Clear are serialized: only one mutation
// is in flight at a time, so the final observed state always matches the
// last completed call, never an interleaving of two partial writes.
type Manager struct {
	// mu serializes mutations (initialize/refresh/set/clear).
	mu sync.Mutex

	// stateMu guards the published state for concurrent readers.
	stateMu sync.RWMutex
	status  Status
	token   string

	store secrets.Store

	subsMu  sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// NewManager creates a session manager over the given store. The manager
// starts in StatusLoading; call Initialize to hydrate.
func NewManager(store secrets.Store) *Manager {
	return &Manager{
		status: StatusLoading,
		store:  store,
		subs:   make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return Snapshot{Status: m.status, Token: m.token}
}

// Status returns the current session status.
func (m *Manager) Status() Status { return m.Snapshot().Status }

// Token returns the current session token, or "" when there is none.
// This is the read-only credential reference used by the network clients.
func (m *Manager) Token() string { return m.Snapshot().Token }

// Subscribe registers fn to be called synchronously after every committed
// state change, and returns a function that removes the subscription.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	m.subsMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subsMu.Unlock()

	return func() {
		m.subsMu.Lock()
		delete(m.subs, id)
		m.subsMu.Unlock()
	}
}

// commit publishes a new state and notifies subscribers. Callers must hold
// m.mu so notifications arrive in mutation order.
func (m *Manager) commit(status Status, token string) {
	m.stateMu.Lock()
	m.status = status
	m.token = token
	m.stateMu.Unlock()

	snap := Snapshot{Status: status, Token: token}
	m.subsMu.Lock()
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.subsMu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

// Initialize hydrates the session from the token store: a stored token
// yields StatusAuthed, absence yields StatusGuest. A read failure commits
// StatusGuest (so the UI is not stuck loading) and returns a wrapped
// ErrStorage.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.store.Get(secrets.TokenKey)
	if err != nil {
		m.commit(StatusGuest, "")
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if token != "" {
		m.commit(StatusAuthed, token)
	} else {
		m.commit(StatusGuest, "")
	}
	return nil
}

// Refresh re-runs Initialize's read-and-reconcile on demand, e.g. after an
// external token invalidation.
func (m *Manager) Refresh() error { return m.Initialize() }

// SetToken persists token (or deletes it when empty) and then updates the
// in-memory state. Persistence success gates the memory update: on a store
// failure the session state is unchanged and ErrStorage is returned, so
// memory and disk never disagree.
func (m *Manager) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if token != "" {
		if err := m.store.Set(secrets.TokenKey, token); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
		m.commit(StatusAuthed, token)
		return nil
	}

	if err := m.store.Delete(secrets.TokenKey); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	m.commit(StatusGuest, "")
	return nil
}

// Clear logs out: it deletes the stored token and publishes StatusGuest.
func (m *Manager) Clear() error { return m.SetToken("") }
