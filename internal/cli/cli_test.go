// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import "testing"

func TestParseDefaultsToTUI(t *testing.T) {
	cmd, _ := parse(nil)
	if cmd != CmdTUI {
		t.Errorf("parse() = %v, want CmdTUI", cmd)
	}
}

func TestParseCommands(t *testing.T) {
	tests := []struct {
		args []string
		want Command
	}{
		{[]string{"tui"}, CmdTUI},
		{[]string{"login"}, CmdLogin},
		{[]string{"logout"}, CmdLogout},
		{[]string{"status"}, CmdStatus},
		{[]string{"s"}, CmdStatus},
		{[]string{"expenses"}, CmdExpenses},
		{[]string{"e"}, CmdExpenses},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"bogus"}, CmdHelp},
	}
	for _, tt := range tests {
		cmd, _ := parse(tt.args)
		if cmd != tt.want {
			t.Errorf("parse(%v) = %v, want %v", tt.args, cmd, tt.want)
		}
	}
}

func TestParseGlobalFlags(t *testing.T) {
	cmd, args := parse([]string{"--base-url", "http://example.com", "-v", "status"})
	if cmd != CmdStatus {
		t.Errorf("cmd = %v, want CmdStatus", cmd)
	}
	if args.BaseURL != "http://example.com" {
		t.Errorf("BaseURL = %q", args.BaseURL)
	}
	if !args.Verbose {
		t.Error("Verbose should be set")
	}
}

func TestParseLoginFlags(t *testing.T) {
	cmd, args := parse([]string{"login", "--email", "a@b.com", "--otp"})
	if cmd != CmdLogin {
		t.Fatalf("cmd = %v, want CmdLogin", cmd)
	}
	if args.Email != "a@b.com" {
		t.Errorf("Email = %q", args.Email)
	}
	if !args.OTP {
		t.Error("OTP should be set")
	}
}
