// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()

	v, err := s.Get(TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "", v, "absent key should read as empty")
	assert.False(t, s.Exists(TokenKey))

	require.NoError(t, s.Set(TokenKey, "tok-123"))
	v, err = s.Get(TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", v)
	assert.True(t, s.Exists(TokenKey))

	require.NoError(t, s.Delete(TokenKey))
	assert.False(t, s.Exists(TokenKey))
	require.NoError(t, s.Delete(TokenKey), "deleting absent key is not an error")
}

// secureDir returns a test directory locked down to the owner. t.TempDir
// is created as 0777 minus the umask, which the store rejects.
func secureDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0700))
	return dir
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := secureDir(t)
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	v, err := s.Get(TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, s.Set(TokenKey, "bearer-token-value"))

	v, err = s.Get(TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "bearer-token-value", v)

	require.NoError(t, s.Delete(TokenKey))
	v, err = s.Get(TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestFileStore_ValueNotPlaintextOnDisk(t *testing.T) {
	dir := secureDir(t)
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	const token = "super-secret-session-token"
	require.NoError(t, s.Set(TokenKey, token))

	blob, err := os.ReadFile(filepath.Join(dir, TokenKey+sealedExt))
	require.NoError(t, err)
	assert.NotContains(t, string(blob), token, "token must be sealed on disk")
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := secureDir(t)

	s1, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Set(TokenKey, "persisted"))

	// A fresh store over the same directory reuses the master key.
	s2, err := NewFileStore(dir)
	require.NoError(t, err)
	v, err := s2.Get(TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "persisted", v)
}

func TestFileStore_CorruptBlob(t *testing.T) {
	dir := secureDir(t)
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	path := filepath.Join(dir, TokenKey+sealedExt)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))

	_, err = s.Get(TokenKey)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileStore_RejectsBadKeys(t *testing.T) {
	dir := secureDir(t)
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", "dotted.key"} {
		if err := s.Set(key, "v"); err == nil {
			t.Errorf("Set(%q) should reject unsafe key", key)
		}
	}
}

func TestFileStore_RejectsGroupAccessibleDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0755))

	_, err := NewFileStore(dir)
	require.Error(t, err, "a group/world accessible directory must be refused")
}

func TestFileStore_FilePermissions(t *testing.T) {
	dir := secureDir(t)
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s.Set(TokenKey, "v"))

	for _, name := range []string{masterKeyFile, TokenKey + sealedExt} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0), info.Mode().Perm()&0077,
			"%s must not be group/world accessible", name)
	}
}
