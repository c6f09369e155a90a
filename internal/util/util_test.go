// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.txt")
	data := []byte("hello, world!")

	if err := AtomicWriteFile(path, data, 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", string(content), string(data))
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "test.txt")

	if err := AtomicWriteFile(path, []byte("initial"), 0600); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("replaced"), 0600); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "replaced" {
		t.Errorf("Content mismatch: got %q, want %q", string(content), "replaced")
	}
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"tiny", "hello", 2, "he"},
		{"zero", "hello", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateWidth(tt.in, tt.width); got != tt.want {
				t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestInitial(t *testing.T) {
	if got := Initial("groceries"); got != "G" {
		t.Errorf("Initial = %q, want G", got)
	}
	if got := Initial("  trip"); got != "T" {
		t.Errorf("Initial = %q, want T", got)
	}
	if got := Initial(""); got != "?" {
		t.Errorf("Initial = %q, want ?", got)
	}
}

// =============================================================================
// INPUT NORMALIZATION TESTS
// =============================================================================

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail(" A@B.COM "); got != "a@b.com" {
		t.Errorf("NormalizeEmail = %q, want a@b.com", got)
	}
	if got := NormalizeEmail("user@example.com"); got != "user@example.com" {
		t.Errorf("NormalizeEmail = %q, want user@example.com", got)
	}
}

func TestDigitsOnly(t *testing.T) {
	tests := []struct{ in, want string }{
		{"123456", "123456"},
		{"12 34-56", "123456"},
		{"abc", ""},
		{"1a2b3c", "123"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := DigitsOnly(tt.in); got != tt.want {
			t.Errorf("DigitsOnly(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"12.50", 12.50, true},
		{"$12.50", 12.50, true},
		{"1,200", 1200, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseAmount(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// =============================================================================
// FORMATTING TESTS
// =============================================================================

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{12.5, "$12.50"},
		{1234.56, "$1,234.56"},
		{-3.4, "-$3.40"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatAmountString(t *testing.T) {
	if got := FormatAmountString("42.10"); got != "$42.10" {
		t.Errorf("FormatAmountString = %q, want $42.10", got)
	}
	// Unparseable amounts pass through with the raw figure visible.
	if got := FormatAmountString("n/a"); got != "$n/a" {
		t.Errorf("FormatAmountString = %q, want $n/a", got)
	}
}
