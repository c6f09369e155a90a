// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strconv"
	"strings"
)

// NormalizeEmail returns the canonical form of an email address used on the
// wire: trimmed and lower-cased. The server compares emails in this form, so
// every request that carries an email must pass through here first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DigitsOnly strips every non-digit rune from s. OTP codes are entered
// through this filter so pasted values like "123 456" still verify.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount parses a user-entered monetary amount. It accepts an optional
// leading "$" and a comma thousands separator. Returns the parsed value and
// whether it is a usable expense amount (finite and > 0).
func ParseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
