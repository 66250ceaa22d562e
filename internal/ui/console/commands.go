// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/newsbot-console/internal/audit"
	"github.com/jeranaias/newsbot-console/internal/backend"
	"github.com/jeranaias/newsbot-console/internal/confirm"
	"github.com/jeranaias/newsbot-console/internal/conntest"
	"github.com/jeranaias/newsbot-console/internal/dashboard"
	"github.com/jeranaias/newsbot-console/internal/formguard"
	"github.com/jeranaias/newsbot-console/internal/ui/components"
)

// =============================================================================
// BACKEND COMMANDS
// =============================================================================

// runTest sends req and reports its outcome. The request is not bounded by a
// timeout; a request that never returns leaves its control Pending.
func (m Model) runTest(req conntest.Request) tea.Cmd {
	client := m.client
	journal := m.journal
	return func() tea.Msg {
		out := conntest.Execute(context.Background(), client, req)
		record(journal, audit.Entry{
			Kind:    audit.KindTest,
			Target:  req.Target.String(),
			Success: out.Success && !out.Transport,
			Detail:  conntest.RenderText(req.Target, out, req.ChannelID()),
		})
		return TestResultMsg{Request: req, Outcome: out}
	}
}

// fetchStats requests the dashboard counters.
func (m Model) fetchStats() tea.Cmd {
	client := m.client
	journal := m.journal
	return func() tea.Msg {
		stats, err := dashboard.Fetch(context.Background(), client)
		if err != nil {
			record(journal, audit.Entry{Kind: audit.KindStats, Target: "stats", Detail: err.Error()})
		}
		return StatsMsg{Stats: stats, Err: err}
	}
}

// submit sends a confirmed or ungated command.
func (m Model) submit(cmd confirm.Command) tea.Cmd {
	client := m.client
	journal := m.journal
	return func() tea.Msg {
		res, err := confirm.Submit(context.Background(), client, cmd)
		detail := res.Location
		if err != nil {
			detail = err.Error()
		}
		record(journal, audit.Entry{
			Kind:    audit.KindAction,
			Target:  cmd.Kind.String(),
			Success: err == nil,
			Detail:  detail,
		})
		return CommandResultMsg{Result: res, Err: err}
	}
}

// record appends to the journal when one is configured. Failures are logged
// and never reach the UI.
func record(j *audit.Journal, e audit.Entry) {
	if j == nil {
		return
	}
	if _, err := j.Record(context.Background(), e); err != nil {
		log.Printf("AUDIT_RECORD_FAILED | kind=%s target=%s error=%v", e.Kind, e.Target, err)
	}
}

// =============================================================================
// TIMERS
// =============================================================================

func pollTick(d time.Duration, epoch uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return PollTickMsg{Epoch: epoch}
	})
}

func revertTick(d time.Duration, t conntest.Target, generation uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return RevertTickMsg{Target: t, Generation: generation}
	})
}

func hideTick(d time.Duration, surface string, generation uint64) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return HideTickMsg{Surface: surface, Generation: generation}
	})
}

// =============================================================================
// MISC COMMANDS
// =============================================================================

// watchConfig waits for the next reloaded config. It is re-issued after
// every delivery and returns nil when there is no watcher.
func (m Model) watchConfig() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	changes := m.watcher.Changes()
	return func() tea.Msg {
		cfg, ok := <-changes
		if !ok {
			return nil
		}
		return ConfigReloadedMsg{Config: cfg}
	}
}

// copyText writes text to the clipboard and reports the result as a toast.
func (m Model) copyText(text string) tea.Cmd {
	copyFn := m.copyFn
	return func() tea.Msg {
		if err := copyFn(text); err != nil {
			log.Printf("CLIPBOARD_FAILED | error=%v", err)
			return components.NotifyMsg{Message: "Copy failed", Kind: components.ToastKindError}
		}
		return components.NotifyMsg{Message: "Copied to clipboard", Kind: components.ToastKindSuccess}
	}
}

// loadSettings reads the stored settings from the settings page.
func (m Model) loadSettings() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		form, err := client.FetchForm(context.Background(), backend.PathSettings)
		if err != nil {
			return SettingsLoadedMsg{Err: err}
		}
		values, err := formguard.Load(formguard.SettingsFields, form)
		return SettingsLoadedMsg{Values: values, Err: err}
	}
}

// requestSettings starts a settings load unless one is already running.
func (m *Model) requestSettings() tea.Cmd {
	if m.settings.loading {
		return nil
	}
	m.settings.loading = true
	m.settings.loadErr = nil
	log.Printf("SETTINGS_LOAD_START")
	return m.loadSettings()
}

// highlightEnd fires when the highlight started by a merge runs out.
func highlightEnd(d time.Duration) tea.Cmd {
	if d <= 0 {
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return HighlightEndMsg{}
	})
}
