// Copyright (c) 2025 Nest App
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/nestapp/nest-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config is the complete nest-tui configuration.
type Config struct {
	// API settings
	API APIConfig `toml:"api"`

	// UI settings
	UI UIConfig `toml:"ui"`
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	// BaseURL is the Nest backend base URL. REST endpoints hang off it
	// directly; the GraphQL endpoint is BaseURL + "/api/graphql" unless
	// GraphQLURL overrides it.
	BaseURL string `toml:"base_url"`
	// GraphQLURL overrides the derived GraphQL endpoint (optional).
	GraphQLURL string `toml:"graphql_url"`
	// TimeoutSecs is the per-request timeout in seconds.
	TimeoutSecs int `toml:"timeout_secs"`
	// RateLimitPerSec caps outgoing requests per second (0 = unlimited).
	RateLimitPerSec float64 `toml:"rate_limit_per_sec"`
	// LogRequests enables the request log (method, path, status, duration)
	// under the config directory. Credentials are never written to it.
	LogRequests bool `toml:"log_requests"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	// GroupLimit is the page size for group and group-expense queries.
	GroupLimit int `toml:"group_limit"`
	// AltScreen runs the TUI in the terminal's alternate screen buffer.
	AltScreen bool `toml:"alt_screen"`
}

// =============================================================================
// DEFAULTS AND PATHS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:         "http://localhost:3000",
			TimeoutSecs:     30,
			RateLimitPerSec: 10,
			LogRequests:     false,
		},
		UI: UIConfig{
			GroupLimit: 50,
			AltScreen:  true,
		},
	}
}

// Dir returns the nest-tui configuration directory (~/.nest-tui).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".nest-tui"), nil
}

// Path returns the path to the TOML config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// EnsureDir creates the config directory with restricted permissions.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to stat config directory: %w", err)
	}
	if mode := info.Mode().Perm(); mode&0077 != 0 {
		return fmt.Errorf("config directory has insecure permissions (%o); fix with: chmod 700 %s", mode, dir)
	}
	return nil
}

// =============================================================================
// LOADING AND SAVING
// =============================================================================

// Load reads the configuration: defaults, then the TOML file if present,
// then environment overrides, then validation.
func Load() (*Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr == nil {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(statErr) {
		// First run: write the defaults so there is a file to edit.
		if err := Save(cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTOML decodes a TOML config file over the given config.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to the TOML config file with 0600
// permissions.
func Save(cfg *Config) error {
	if err := EnsureDir(); err != nil {
		return err
	}
	path, err := Path()
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("# nest-tui configuration\n\n")
	if err := toml.NewEncoder(&sb).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fillDefaults replaces zero values with defaults after decoding.
func (c *Config) fillDefaults() {
	def := Default()
	if c.API.BaseURL == "" {
		c.API.BaseURL = def.API.BaseURL
	}
	if c.API.TimeoutSecs <= 0 {
		c.API.TimeoutSecs = def.API.TimeoutSecs
	}
	if c.API.RateLimitPerSec < 0 {
		c.API.RateLimitPerSec = def.API.RateLimitPerSec
	}
	if c.UI.GroupLimit <= 0 {
		c.UI.GroupLimit = def.UI.GroupLimit
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies NEST_* environment variables on top of the
// loaded configuration. Invalid values are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("NEST_API_BASE"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("NEST_GRAPHQL_URL"); v != "" {
		c.API.GraphQLURL = v
	}
	if v := os.Getenv("NEST_TIMEOUT_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.API.TimeoutSecs = n
		}
	}
	if v := os.Getenv("NEST_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			c.API.RateLimitPerSec = f
		}
	}
	if v := os.Getenv("NEST_LOG_REQUESTS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.API.LogRequests = b
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	var errs []string

	if c.API.BaseURL == "" {
		errs = append(errs, "api.base_url must not be empty")
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Sprintf("api.base_url is not a valid URL: %q", c.API.BaseURL))
	}
	if c.API.GraphQLURL != "" {
		if u, err := url.Parse(c.API.GraphQLURL); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("api.graphql_url is not a valid URL: %q", c.API.GraphQLURL))
		}
	}
	if c.API.TimeoutSecs <= 0 {
		errs = append(errs, "api.timeout_secs must be positive")
	}
	if c.UI.GroupLimit <= 0 {
		errs = append(errs, "ui.group_limit must be positive")
	}

	if len(errs) > 0 {
		return errors.New("invalid configuration: " + strings.Join(errs, "; "))
	}
	return nil
}

// Timeout returns the per-request timeout as a duration.
func (c *APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// GraphQLEndpoint returns the effective GraphQL URL: the explicit override
// when set, otherwise BaseURL + "/api/graphql".
func (c *Config) GraphQLEndpoint() string {
	if c.API.GraphQLURL != "" {
		return c.API.GraphQLURL
	}
	return strings.TrimSuffix(c.API.BaseURL, "/") + "/api/graphql"
}
