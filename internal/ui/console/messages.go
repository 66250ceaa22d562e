// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"github.com/jeranaias/newsbot-console/internal/config"
	"github.com/jeranaias/newsbot-console/internal/confirm"
	"github.com/jeranaias/newsbot-console/internal/conntest"
	"github.com/jeranaias/newsbot-console/internal/dashboard"
	"github.com/jeranaias/newsbot-console/internal/formguard"
)

// =============================================================================
// CONNECTIVITY TEST MESSAGES
// =============================================================================

// TestResultMsg delivers the outcome of a dispatched test.
type TestResultMsg struct {
	Request conntest.Request
	Outcome conntest.Outcome
}

// RevertTickMsg asks a settled control to return to Idle.
type RevertTickMsg struct {
	Target     conntest.Target
	Generation uint64
}

// HideTickMsg asks an auto-hiding surface to hide.
type HideTickMsg struct {
	Surface    string
	Generation uint64
}

// =============================================================================
// DASHBOARD MESSAGES
// =============================================================================

// PollTickMsg is one link of the stats tick chain.
type PollTickMsg struct {
	Epoch uint64
}

// StatsMsg delivers a stats fetch result.
type StatsMsg struct {
	Stats dashboard.Stats
	Err   error
}

// HighlightEndMsg redraws the dashboard once updated cards stop being
// highlighted.
type HighlightEndMsg struct{}

// =============================================================================
// ACTION MESSAGES
// =============================================================================

// CommandResultMsg delivers the outcome of a submitted command.
type CommandResultMsg struct {
	Result confirm.Result
	Err    error
}

// =============================================================================
// MISC MESSAGES
// =============================================================================

// ConfigReloadedMsg carries a configuration re-read from disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// SettingsLoadedMsg carries the settings read from the server.
type SettingsLoadedMsg struct {
	Values formguard.Values
	Err    error
}
