// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for the
// newsbot console.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - DashboardConfig: Stats poller interval and highlight settings
//   - TestsConfig: Connectivity-test surface policy and timers
//   - Watcher: fsnotify-based live reload of the config file
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (--url, --config)
//   - Environment variables (NEWSBOT_*)
//   - ~/.newsbot-console/config.toml
//   - ~/.newsbot-console/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	interval := cfg.PollInterval()
package config
