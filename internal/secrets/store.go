// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package secrets

import "sync"

// TokenKey is the single durable key used for the session token.
const TokenKey = "token"

// Store is the secure persistence primitive for session credentials.
//
// Get returns the empty string (and no error) for an absent key; errors are
// reserved for storage failures. Implementations must be safe for use from
// multiple goroutines.
type Store interface {
	// Get retrieves the value for key, or "" if the key is absent.
	Get(key string) (string, error)
	// Set durably stores value under key, replacing any previous value.
	Set(key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error
	// Exists reports whether key currently holds a value.
	Exists(key string) bool
}

// =============================================================================
// IN-MEMORY STORE
// =============================================================================

// MemoryStore is a volatile Store used in tests and when durable storage is
// explicitly disabled (--no-store). Values do not survive process exit.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get retrieves the value for key, or "" if absent.
func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete removes key.
func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Exists reports whether key holds a value.
func (m *MemoryStore) Exists(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.values[key]
	return ok
}
