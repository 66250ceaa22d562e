// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// newsbot console.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - ~/.newsbot-console/config.toml
//   - ~/.newsbot-console/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/newsbot-console/internal/util"
)

// Surface overwrite policies for shared connectivity-test result surfaces.
const (
	// PolicyLastSettled renders whichever request settles last.
	PolicyLastSettled = "last_settled"
	// PolicyLatestDispatched drops responses older than the newest rendered dispatch.
	PolicyLatestDispatched = "latest_dispatched"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete console configuration.
type Config struct {
	Server    ServerConfig    `toml:"server" json:"server"`
	Dashboard DashboardConfig `toml:"dashboard" json:"dashboard"`
	Tests     TestsConfig     `toml:"tests" json:"tests"`
	Actions   ActionsConfig   `toml:"actions" json:"actions"`
	UI        UIConfig        `toml:"ui" json:"ui"`
	Audit     AuditConfig     `toml:"audit" json:"audit"`
}

// ServerConfig locates the bot's admin backend.
type ServerConfig struct {
	// BaseURL is the root of the admin web app (e.g. http://127.0.0.1:5000)
	BaseURL string `toml:"base_url" json:"base_url"`
}

// DashboardConfig controls the stats poller.
type DashboardConfig struct {
	// PollIntervalSecs is the auto-refresh period while the dashboard is open
	PollIntervalSecs int `toml:"poll_interval_secs" json:"poll_interval_secs"`
	// HighlightMs is how long an updated stat card stays highlighted
	HighlightMs int `toml:"highlight_ms" json:"highlight_ms"`
	// SingleFlight skips a tick while the previous stats request is in flight
	SingleFlight bool `toml:"single_flight" json:"single_flight"`
	// AutoRefresh disables polling entirely when false
	AutoRefresh bool `toml:"auto_refresh" json:"auto_refresh"`
}

// TestsConfig controls the connectivity-test controls.
type TestsConfig struct {
	// SurfacePolicy is "last_settled" or "latest_dispatched"
	SurfacePolicy string `toml:"surface_policy" json:"surface_policy"`
	// ButtonRevertSecs is how long a settled button shows its result icon
	ButtonRevertSecs int `toml:"button_revert_secs" json:"button_revert_secs"`
	// ResultHideSecs is how long auto-hiding result panels stay visible
	ResultHideSecs int `toml:"result_hide_secs" json:"result_hide_secs"`
}

// ActionsConfig controls side-effecting commands (post, regenerate, delete...).
type ActionsConfig struct {
	// NavigateAfterSubmit switches to the redirect target after a command completes
	NavigateAfterSubmit bool `toml:"navigate_after_submit" json:"navigate_after_submit"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// ToastSecs is the lifetime of a notification toast
	ToastSecs int `toml:"toast_secs" json:"toast_secs"`
	// Theme is "dark" or "light"
	Theme string `toml:"theme" json:"theme"`
}

// AuditConfig controls the local operator journal.
type AuditConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path to the sqlite journal (empty = ~/.newsbot-console/audit.db)
	Path string `toml:"path" json:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL: "http://127.0.0.1:5000",
		},
		Dashboard: DashboardConfig{
			PollIntervalSecs: 60,
			HighlightMs:      800,
			SingleFlight:     false,
			AutoRefresh:      true,
		},
		Tests: TestsConfig{
			SurfacePolicy:    PolicyLastSettled,
			ButtonRevertSecs: 5,
			ResultHideSecs:   5,
		},
		Actions: ActionsConfig{
			NavigateAfterSubmit: true,
		},
		UI: UIConfig{
			ToastSecs: 3,
			Theme:     "dark",
		},
		Audit: AuditConfig{
			Enabled: true,
		},
	}
}

// PollInterval returns the dashboard refresh period.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Dashboard.PollIntervalSecs) * time.Second
}

// HighlightDuration returns how long a refreshed stat stays highlighted.
func (c *Config) HighlightDuration() time.Duration {
	return time.Duration(c.Dashboard.HighlightMs) * time.Millisecond
}

// ButtonRevertDelay returns the Settled -> Idle delay for test buttons.
func (c *Config) ButtonRevertDelay() time.Duration {
	return time.Duration(c.Tests.ButtonRevertSecs) * time.Second
}

// ResultHideDelay returns the auto-hide delay for result panels.
func (c *Config) ResultHideDelay() time.Duration {
	return time.Duration(c.Tests.ResultHideSecs) * time.Second
}

// ToastDuration returns the toast lifetime.
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.UI.ToastSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the console configuration directory path.
// NEWSBOT_CONSOLE_HOME overrides the default ~/.newsbot-console.
func ConfigDir() (string, error) {
	if dir := os.Getenv("NEWSBOT_CONSOLE_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".newsbot-console"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// AuditPath returns the journal location, honoring audit.path.
func (c *Config) AuditPath() (string, error) {
	if c.Audit.Path != "" {
		return c.Audit.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "audit.db"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			return LoadFromPath(tomlPath)
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			return LoadFromPath(jsonPath)
		}
	}

	cfg := Default()
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
// Missing keys keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read JSON config %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode JSON config %s: %w", path, err)
		}
	} else {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML config %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes the configuration to path atomically with 0600 permissions.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# newsbot-console configuration file\n")
	buf.WriteString("# Generated by newsbot-console - edit with care\n\n")

	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, ValidationError{
			Field:   "server.base_url",
			Message: fmt.Sprintf("invalid URL %q, expected e.g. http://127.0.0.1:5000", c.Server.BaseURL),
		})
	} else if u.Scheme != "http" && u.Scheme != "https" {
		errs = append(errs, ValidationError{
			Field:   "server.base_url",
			Message: fmt.Sprintf("unsupported scheme %q, must be http or https", u.Scheme),
		})
	}

	if c.Dashboard.PollIntervalSecs < 5 || c.Dashboard.PollIntervalSecs > 3600 {
		errs = append(errs, ValidationError{
			Field:   "dashboard.poll_interval_secs",
			Message: fmt.Sprintf("must be 5-3600, got %d", c.Dashboard.PollIntervalSecs),
		})
	}
	if c.Dashboard.HighlightMs < 0 {
		errs = append(errs, ValidationError{
			Field:   "dashboard.highlight_ms",
			Message: "cannot be negative",
		})
	}

	switch c.Tests.SurfacePolicy {
	case PolicyLastSettled, PolicyLatestDispatched:
	default:
		errs = append(errs, ValidationError{
			Field:   "tests.surface_policy",
			Message: fmt.Sprintf("invalid policy '%s', must be one of: %s, %s", c.Tests.SurfacePolicy, PolicyLastSettled, PolicyLatestDispatched),
		})
	}
	if c.Tests.ButtonRevertSecs < 1 {
		errs = append(errs, ValidationError{
			Field:   "tests.button_revert_secs",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Tests.ButtonRevertSecs),
		})
	}
	if c.Tests.ResultHideSecs < 1 {
		errs = append(errs, ValidationError{
			Field:   "tests.result_hide_secs",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Tests.ResultHideSecs),
		})
	}

	if c.UI.ToastSecs < 1 {
		errs = append(errs, ValidationError{
			Field:   "ui.toast_secs",
			Message: fmt.Sprintf("must be at least 1, got %d", c.UI.ToastSecs),
		})
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be dark or light", c.UI.Theme),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SetDefaults fills zero-valued fields that have no meaningful zero.
func (c *Config) SetDefaults() {
	defaults := Default()

	if c.Server.BaseURL == "" {
		c.Server.BaseURL = defaults.Server.BaseURL
	}
	c.Server.BaseURL = strings.TrimRight(c.Server.BaseURL, "/")

	if c.Dashboard.PollIntervalSecs == 0 {
		c.Dashboard.PollIntervalSecs = defaults.Dashboard.PollIntervalSecs
	}
	if c.Tests.SurfacePolicy == "" {
		c.Tests.SurfacePolicy = defaults.Tests.SurfacePolicy
	}
	if c.Tests.ButtonRevertSecs == 0 {
		c.Tests.ButtonRevertSecs = defaults.Tests.ButtonRevertSecs
	}
	if c.Tests.ResultHideSecs == 0 {
		c.Tests.ResultHideSecs = defaults.Tests.ResultHideSecs
	}
	if c.UI.ToastSecs == 0 {
		c.UI.ToastSecs = defaults.UI.ToastSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - NEWSBOT_URL: overrides server.base_url
//   - NEWSBOT_POLL_SECS: overrides dashboard.poll_interval_secs
//   - NEWSBOT_SURFACE_POLICY: overrides tests.surface_policy
//   - NEWSBOT_AUDIT: "0"/"false" disables the audit journal
func (c *Config) ApplyEnvOverrides() {
	if u := os.Getenv("NEWSBOT_URL"); u != "" {
		c.Server.BaseURL = u
	}

	if secs := os.Getenv("NEWSBOT_POLL_SECS"); secs != "" {
		if n, err := strconv.Atoi(secs); err == nil {
			c.Dashboard.PollIntervalSecs = n
		}
	}

	if policy := os.Getenv("NEWSBOT_SURFACE_POLICY"); policy != "" {
		c.Tests.SurfacePolicy = strings.ToLower(policy)
	}

	if audit := os.Getenv("NEWSBOT_AUDIT"); audit != "" {
		c.Audit.Enabled = audit == "1" || strings.ToLower(audit) == "true"
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns the configuration as indented JSON.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfigMu.Lock()
		globalConfig = cfg
		globalConfigMu.Unlock()
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
