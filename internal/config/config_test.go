// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.API.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL = %q, want http://localhost:3000", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want 30", cfg.API.TimeoutSecs)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGraphQLEndpoint(t *testing.T) {
	cfg := Default()
	if got := cfg.GraphQLEndpoint(); got != "http://localhost:3000/api/graphql" {
		t.Errorf("GraphQLEndpoint = %q", got)
	}

	cfg.API.BaseURL = "http://localhost:3000/"
	if got := cfg.GraphQLEndpoint(); got != "http://localhost:3000/api/graphql" {
		t.Errorf("GraphQLEndpoint with trailing slash = %q", got)
	}

	cfg.API.GraphQLURL = "http://10.0.2.2:3001/api/graphql"
	if got := cfg.GraphQLEndpoint(); got != "http://10.0.2.2:3001/api/graphql" {
		t.Errorf("GraphQLEndpoint override = %q", got)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[api]
base_url = "http://192.168.1.10:3000"
timeout_secs = 5

[ui]
group_limit = 25
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if cfg.API.BaseURL != "http://192.168.1.10:3000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSecs != 5 {
		t.Errorf("TimeoutSecs = %d, want 5", cfg.API.TimeoutSecs)
	}
	if cfg.UI.GroupLimit != 25 {
		t.Errorf("GroupLimit = %d, want 25", cfg.UI.GroupLimit)
	}
}

func TestSaveThenLoad(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Default()
	cfg.API.BaseURL = "http://10.1.1.1:3000"
	cfg.UI.GroupLimit = 20
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file permissions = %o, want 600", perm)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.API.BaseURL != "http://10.1.1.1:3000" {
		t.Errorf("BaseURL = %q", loaded.API.BaseURL)
	}
	if loaded.UI.GroupLimit != 20 {
		t.Errorf("GroupLimit = %d, want 20", loaded.UI.GroupLimit)
	}
}

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if _, err := Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	path, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("first run should materialize the config file: %v", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("NEST_API_BASE", "http://example.test:9999")
	t.Setenv("NEST_TIMEOUT_SECS", "7")
	t.Setenv("NEST_RATE_LIMIT", "2.5")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.API.BaseURL != "http://example.test:9999" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSecs != 7 {
		t.Errorf("TimeoutSecs = %d, want 7", cfg.API.TimeoutSecs)
	}
	if cfg.API.RateLimitPerSec != 2.5 {
		t.Errorf("RateLimitPerSec = %v, want 2.5", cfg.API.RateLimitPerSec)
	}
}

func TestApplyEnvOverrides_IgnoresInvalid(t *testing.T) {
	t.Setenv("NEST_TIMEOUT_SECS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	if cfg.API.TimeoutSecs != 30 {
		t.Errorf("TimeoutSecs = %d, want default 30", cfg.API.TimeoutSecs)
	}
}

func TestValidate_Errors(t *testing.T) {
	cfg := Default()
	cfg.API.BaseURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for bad base URL")
	}

	cfg = Default()
	cfg.API.TimeoutSecs = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero timeout")
	}
}
