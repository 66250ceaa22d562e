// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 60*time.Second, cfg.PollInterval())
	assert.Equal(t, 5*time.Second, cfg.ButtonRevertDelay())
	assert.Equal(t, 5*time.Second, cfg.ResultHideDelay())
	assert.Equal(t, 3*time.Second, cfg.ToastDuration())
	assert.Equal(t, PolicyLastSettled, cfg.Tests.SurfacePolicy)
	assert.True(t, cfg.Actions.NavigateAfterSubmit)
}

func TestLoadFromPath_TOMLKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
base_url = "http://bot.internal:8080/"

[tests]
surface_policy = "latest_dispatched"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "http://bot.internal:8080", cfg.Server.BaseURL, "trailing slash trimmed")
	assert.Equal(t, PolicyLatestDispatched, cfg.Tests.SurfacePolicy)
	assert.Equal(t, 60, cfg.Dashboard.PollIntervalSecs)
	assert.True(t, cfg.Dashboard.AutoRefresh)
	assert.Equal(t, 3, cfg.UI.ToastSecs)
}

func TestLoadFromPath_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"dashboard": {"poll_interval_secs": 30}, "actions": {"navigate_after_submit": false}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.PollInterval())
	assert.False(t, cfg.Actions.NavigateAfterSubmit)
}

func TestLoadFromPath_InvalidPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[tests]\nsurface_policy = \"first_wins\"\n"), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "tests.surface_policy", verrs[0].Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad url", func(c *Config) { c.Server.BaseURL = "not a url" }, "server.base_url"},
		{"ftp scheme", func(c *Config) { c.Server.BaseURL = "ftp://host" }, "server.base_url"},
		{"poll too fast", func(c *Config) { c.Dashboard.PollIntervalSecs = 1 }, "dashboard.poll_interval_secs"},
		{"negative highlight", func(c *Config) { c.Dashboard.HighlightMs = -1 }, "dashboard.highlight_ms"},
		{"zero revert", func(c *Config) { c.Tests.ButtonRevertSecs = 0 }, "tests.button_revert_secs"},
		{"zero hide", func(c *Config) { c.Tests.ResultHideSecs = 0 }, "tests.result_hide_secs"},
		{"zero toast", func(c *Config) { c.UI.ToastSecs = 0 }, "ui.toast_secs"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)

			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs))
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("NEWSBOT_URL", "https://admin.example.org")
	t.Setenv("NEWSBOT_POLL_SECS", "15")
	t.Setenv("NEWSBOT_SURFACE_POLICY", "LATEST_DISPATCHED")
	t.Setenv("NEWSBOT_AUDIT", "false")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	assert.Equal(t, "https://admin.example.org", cfg.Server.BaseURL)
	assert.Equal(t, 15, cfg.Dashboard.PollIntervalSecs)
	assert.Equal(t, PolicyLatestDispatched, cfg.Tests.SurfacePolicy)
	assert.False(t, cfg.Audit.Enabled)
}

func TestLoad_FallsBackToDefaults(t *testing.T) {
	t.Setenv("NEWSBOT_CONSOLE_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Server.BaseURL, cfg.Server.BaseURL)
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Server.BaseURL = "http://10.0.0.5:5000"
	cfg.Dashboard.PollIntervalSecs = 120
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if info.Mode().Perm()&0077 != 0 && os.Getenv("GOOS") != "windows" {
		t.Errorf("config file should not be group/world accessible, got %o", info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server.BaseURL, loaded.Server.BaseURL)
	assert.Equal(t, 120, loaded.Dashboard.PollIntervalSecs)
}

func TestAuditPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("NEWSBOT_CONSOLE_HOME", home)

	cfg := Default()
	p, err := cfg.AuditPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "audit.db"), p)

	cfg.Audit.Path = "/var/lib/console/audit.db"
	p, err = cfg.AuditPath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/console/audit.db", p)
}

// TestConfig_ConcurrentAccess tests that Global() and SetGlobal() can be
// called concurrently. Run with -race.
func TestConfig_ConcurrentAccess(t *testing.T) {
	t.Setenv("NEWSBOT_CONSOLE_HOME", t.TempDir())
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			if Global() == nil {
				t.Error("Global() returned nil")
			}
		}()
	}
	wg.Wait()
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dashboard]\npoll_interval_secs = 60\n"), 0600))

	w, err := NewWatcher(path, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[dashboard]\npoll_interval_secs = 90\n"), 0600))

	select {
	case cfg := <-w.Changes():
		assert.Equal(t, 90, cfg.Dashboard.PollIntervalSecs)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
}

func TestWatcher_SkipsInvalidEdit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[dashboard]\npoll_interval_secs = 60\n"), 0600))

	w, err := NewWatcher(path, 50*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("[dashboard]\npoll_interval_secs = 1\n"), 0600))

	select {
	case cfg := <-w.Changes():
		t.Fatalf("invalid config should not be published, got %+v", cfg.Dashboard)
	case <-time.After(500 * time.Millisecond):
	}
}
