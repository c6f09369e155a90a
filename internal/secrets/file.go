// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/pbkdf2"

	"github.com/nestapp/nest-tui/internal/util"
)

const (
	// keySize is the AES-256 key size in bytes.
	keySize = 32

	// saltSize is the per-value KDF salt size in bytes.
	saltSize = 16

	// nonceSize is the AES-GCM nonce size in bytes.
	nonceSize = 12

	// kdfIterations is the PBKDF2-SHA-256 iteration count.
	kdfIterations = 600000

	// masterKeyFile holds the per-install random master key.
	masterKeyFile = "master.key"

	// sealedExt is the file extension for sealed values.
	sealedExt = ".sealed"
)

// ErrCorrupt indicates a sealed file that cannot be parsed or authenticated.
var ErrCorrupt = errors.New("secrets: sealed value is corrupt")

// FileStore is a Store backed by sealed files under a private directory.
type FileStore struct {
	mu     sync.Mutex
	dir    string
	master []byte
}

// NewFileStore opens (or initializes) a file-backed store rooted at dir.
// The directory is created with 0700 permissions; a random master key is
// generated on first use.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("secrets: failed to create store directory: %w", err)
	}
	if err := checkPerms(dir, 0077); err != nil {
		return nil, err
	}

	s := &FileStore{dir: dir}
	if err := s.loadOrCreateMasterKey(); err != nil {
		return nil, err
	}
	return s, nil
}

// loadOrCreateMasterKey reads the master key file, generating it on first use.
func (s *FileStore) loadOrCreateMasterKey() error {
	path := filepath.Join(s.dir, masterKeyFile)

	key, err := os.ReadFile(path)
	if err == nil {
		if len(key) != keySize {
			return fmt.Errorf("secrets: master key file has wrong size (%d bytes)", len(key))
		}
		if err := checkPerms(path, 0077); err != nil {
			return err
		}
		s.master = key
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("secrets: failed to read master key: %w", err)
	}

	key = make([]byte, keySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return fmt.Errorf("secrets: failed to generate master key: %w", err)
	}
	if err := util.AtomicWriteFile(path, key, 0600); err != nil {
		return fmt.Errorf("secrets: failed to write master key: %w", err)
	}
	s.master = key
	return nil
}

// checkPerms rejects paths readable by group or world.
func checkPerms(path string, forbidden os.FileMode) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("secrets: failed to stat %s: %w", path, err)
	}
	if mode := info.Mode().Perm(); mode&forbidden != 0 {
		return fmt.Errorf("secrets: %s has insecure permissions (%o)", path, mode)
	}
	return nil
}

// path returns the sealed file path for a key. Key names are restricted to
// a safe character set so they cannot escape the store directory.
func (s *FileStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\.") {
		return "", fmt.Errorf("secrets: invalid key %q", key)
	}
	return filepath.Join(s.dir, key+sealedExt), nil
}

// Get retrieves and unseals the value for key, or "" if the key is absent.
func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.path(key)
	if err != nil {
		return "", err
	}

	blob, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("secrets: failed to read %s: %w", key, err)
	}

	value, err := s.unseal(blob)
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set seals value and writes it atomically under key.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.path(key)
	if err != nil {
		return err
	}

	blob, err := s.seal(value)
	if err != nil {
		return err
	}
	if err := util.AtomicWriteFile(path, blob, 0600); err != nil {
		return fmt.Errorf("secrets: failed to write %s: %w", key, err)
	}
	return nil
}

// Delete removes the sealed file for key. Absent keys are not an error.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("secrets: failed to delete %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key holds a sealed value.
func (s *FileStore) Exists(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.path(key)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// =============================================================================
// SEALING
// =============================================================================

// seal encrypts value as salt || nonce || ciphertext.
func (s *FileStore) seal(value string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("secrets: failed to generate salt: %w", err)
	}

	aead, err := s.aead(salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("secrets: failed to generate nonce: %w", err)
	}

	blob := make([]byte, 0, saltSize+nonceSize+len(value)+aead.Overhead())
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = aead.Seal(blob, nonce, []byte(value), nil)
	return blob, nil
}

// unseal reverses seal. Any parse or authentication failure is ErrCorrupt.
func (s *FileStore) unseal(blob []byte) (string, error) {
	if len(blob) < saltSize+nonceSize {
		return "", ErrCorrupt
	}
	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+nonceSize]
	ciphertext := blob[saltSize+nonceSize:]

	aead, err := s.aead(salt)
	if err != nil {
		return "", err
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", ErrCorrupt
	}
	return string(plaintext), nil
}

// aead builds the AES-256-GCM cipher for a given salt.
func (s *FileStore) aead(salt []byte) (cipher.AEAD, error) {
	derived := pbkdf2.Key(s.master, salt, kdfIterations, keySize, sha256.New)
	block, err := aes.NewCipher(derived)
	if err != nil {
		return nil, fmt.Errorf("secrets: failed to init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("secrets: failed to init GCM: %w", err)
	}
	return aead, nil
}
