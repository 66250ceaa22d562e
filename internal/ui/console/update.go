// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"errors"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/newsbot-console/internal/backend"
	"github.com/jeranaias/newsbot-console/internal/confirm"
	"github.com/jeranaias/newsbot-console/internal/conntest"
	"github.com/jeranaias/newsbot-console/internal/ui/components"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The modal sees every message while open: huh advances its form
	// through internal messages, not only key presses.
	var modalCmd tea.Cmd
	if m.modal.IsVisible() {
		var consumed bool
		modalCmd, consumed = m.modal.Update(msg)
		if consumed {
			return m, modalCmd
		}
	}

	next, cmd := m.handle(msg)
	if modalCmd == nil {
		return next, cmd
	}
	return next, tea.Batch(modalCmd, cmd)
}

func (m Model) handle(msg tea.Msg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.notifier.Update(msg); ok {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TestResultMsg:
		return m.handleTestResult(msg)

	case RevertTickMsg:
		m.runner.Revert(msg.Target, msg.Generation)
		return m, nil

	case HideTickMsg:
		m.runner.Hide(msg.Surface, msg.Generation)
		return m, nil

	case PollTickMsg:
		return m.handlePollTick(msg)

	case StatsMsg:
		return m.handleStats(msg)

	case components.ConfirmedMsg:
		return m, m.submit(msg.Command)

	case CommandResultMsg:
		return m.handleCommandResult(msg)

	case ConfigReloadedMsg:
		return m.handleConfigReloaded(msg)

	case SettingsLoadedMsg:
		return m.handleSettingsLoaded(msg)

	case HighlightEndMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		return m.forwardToInput(msg)
	}
}

// =============================================================================
// VIEW SWITCHING
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)
	m.header.SetWidth(msg.Width)
	m.status.SetWidth(msg.Width)
	m.modal.SetSize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	return m, nil
}

// enterView switches to v. Leaving the dashboard ends the tick chain;
// entering it starts a new chain and fetches once immediately.
func (m Model) enterView(v View, articleID int) (Model, tea.Cmd) {
	if m.view == ViewDashboard && v != ViewDashboard {
		m.poller.Stop()
	}

	m.view = v
	m.header.SetActive(int(v))
	m.settings.blur()
	m.article.input.Blur()

	var cmds []tea.Cmd
	switch v {
	case ViewDashboard:
		if m.poller.BeginFetch() {
			cmds = append(cmds, m.fetchStats())
		}
		if !m.noRefresh && !m.poller.Active() {
			epoch := m.poller.Start()
			cmds = append(cmds, pollTick(m.poller.Interval(), epoch))
		}
	case ViewSettings:
		cmds = append(cmds, m.settings.setFocus(m.settings.focus))
		if !m.settings.guard.Dirty() {
			cmds = append(cmds, m.requestSettings())
		}
	case ViewArticle:
		if articleID > 0 {
			m.article.setID(articleID)
		}
		cmds = append(cmds, m.article.input.Focus())
	}

	log.Printf("VIEW_ENTERED | view=%s", v)
	return m, tea.Batch(cmds...)
}

// =============================================================================
// KEY HANDLING
// =============================================================================

// typing reports whether rune keys belong to a text input.
func (m Model) typing() bool {
	switch m.view {
	case ViewSettings:
		return m.settings.typing()
	case ViewArticle:
		return true
	}
	return false
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.poller.Stop()
		return m, tea.Quit
	}

	runes := msg.Type == tea.KeyRunes
	typing := m.typing()

	if !(runes && typing) || m.articleAction(msg) {
		switch {
		case key.Matches(msg, m.keys.Dismiss):
			m.notifier.DismissNewest()
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Dashboard):
			return m.enterView(ViewDashboard, 0)
		case key.Matches(msg, m.keys.Articles):
			return m.enterView(ViewArticle, 0)
		case key.Matches(msg, m.keys.Settings):
			return m.enterView(ViewSettings, 0)
		case key.Matches(msg, m.keys.QuitAlt):
			m.poller.Stop()
			return m, tea.Quit
		}
	}

	switch m.view {
	case ViewDashboard:
		return m.handleDashboardKey(msg)
	case ViewSettings:
		return m.handleSettingsKey(msg)
	case ViewArticle:
		return m.handleArticleKey(msg)
	}
	return m, nil
}

// articleAction reports whether msg is an article action letter, which takes
// precedence over the numeric ID input.
func (m Model) articleAction(msg tea.KeyMsg) bool {
	if m.view != ViewArticle {
		return false
	}
	return key.Matches(msg, m.keys.Regenerate, m.keys.Post, m.keys.Delete, m.keys.Copy)
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Refresh):
		if m.poller.BeginFetch() {
			return m, m.fetchStats()
		}
		return m, nil
	case key.Matches(msg, m.keys.Scrape):
		return m.gate(confirm.ManualScrape())
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.TestChannel):
		return m.beginTest(conntest.ChannelLookup)
	case key.Matches(msg, m.keys.TestA):
		return m.beginTest(conntest.ProviderA)
	case key.Matches(msg, m.keys.TestB):
		return m.beginTest(conntest.ProviderB)
	case key.Matches(msg, m.keys.TestMessage):
		return m.beginTest(conntest.MessagingTest)
	case key.Matches(msg, m.keys.Save):
		return m.saveSettings()
	case key.Matches(msg, m.keys.Reset):
		if !m.settings.loaded {
			load := m.requestSettings()
			return m, load
		}
		m.settings.reset()
		log.Printf("SETTINGS_RESET")
		return m, nil
	case key.Matches(msg, m.keys.Next):
		cmd := m.settings.setFocus(m.settings.focus + 1)
		return m, cmd
	case key.Matches(msg, m.keys.Prev):
		cmd := m.settings.setFocus(m.settings.focus - 1)
		return m, cmd
	}

	if !m.settings.typing() && key.Matches(msg, m.keys.Toggle) {
		dir := 1
		if msg.String() == "left" {
			dir = -1
		}
		m.settings.change(dir)
		return m, nil
	}

	return m, m.settings.updateInput(msg)
}

func (m Model) handleArticleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.articleAction(msg) {
		if m.article.id <= 0 {
			return m, m.toast("Enter an article ID", components.ToastKindWarning)
		}
		switch {
		case key.Matches(msg, m.keys.Regenerate):
			return m.gate(confirm.RegenerateSummary(m.article.id))
		case key.Matches(msg, m.keys.Post):
			return m.gate(confirm.PostArticle(m.article.id, m.settings.channelID()))
		case key.Matches(msg, m.keys.Delete):
			return m.gate(confirm.DeleteArticle(m.article.id))
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyText(m.article.link(m.client.BaseURL()))
		}
	}
	cmd := m.article.update(msg)
	return m, cmd
}

// forwardToInput passes unhandled messages (cursor blinks) to the focused
// input.
func (m Model) forwardToInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.view {
	case ViewSettings:
		return m, m.settings.updateInput(msg)
	case ViewArticle:
		cmd := m.article.update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// CONNECTIVITY TESTS
// =============================================================================

// beginTest starts a test unless its control is Pending. An empty channel ID
// renders its validation failure locally and sends nothing.
func (m Model) beginTest(t conntest.Target) (tea.Model, tea.Cmd) {
	req, err := m.runner.Begin(t, m.settings.channelID())
	switch {
	case errors.Is(err, conntest.ErrPending):
		return m, nil
	case errors.Is(err, conntest.ErrEmptyChannelID):
		log.Printf("CONNTEST_VALIDATION_FAILED | target=%s", t)
		return m, m.scheduleHide(t.Surface())
	case err != nil:
		log.Printf("CONNTEST_BEGIN_FAILED | target=%s error=%v", t, err)
		return m, nil
	}

	log.Printf("CONNTEST_DISPATCHED | target=%s token=%d", t, req.Token)
	spin := m.spinner.Start()
	return m, tea.Batch(m.runTest(req), spin)
}

func (m Model) handleTestResult(msg TestResultMsg) (tea.Model, tea.Cmd) {
	if !m.runner.Settle(msg.Request, msg.Outcome) {
		ctrl := m.runner.Control(msg.Request.Target)
		if ctrl.State != conntest.Settled || ctrl.Cell == nil || ctrl.Cell.Token != msg.Request.Token {
			return m, nil
		}
		log.Printf("CONNTEST_SURFACE_SKIPPED | target=%s token=%d", msg.Request.Target, msg.Request.Token)
	}

	if !m.anyPending() {
		m.spinner.Stop()
	}

	ctrl := m.runner.Control(msg.Request.Target)
	cmds := []tea.Cmd{revertTick(m.cfg.ButtonRevertDelay(), ctrl.Target, ctrl.Generation)}
	if hide := m.scheduleHide(msg.Request.Target.Surface()); hide != nil {
		cmds = append(cmds, hide)
	}
	return m, tea.Batch(cmds...)
}

// scheduleHide arms the auto-hide timer of an auto-hiding surface for its
// current generation.
func (m Model) scheduleHide(surface string) tea.Cmd {
	s := m.runner.Surface(surface)
	if !s.AutoHide || !s.Visible || s.InProgress != nil {
		return nil
	}
	return hideTick(m.cfg.ResultHideDelay(), surface, s.Generation)
}

func (m Model) anyPending() bool {
	for _, t := range conntest.Targets() {
		if m.runner.Control(t).State == conntest.Pending {
			return true
		}
	}
	return false
}

// =============================================================================
// DASHBOARD
// =============================================================================

func (m Model) handlePollTick(msg PollTickMsg) (tea.Model, tea.Cmd) {
	fetch, cont := m.poller.Tick(msg.Epoch)
	if !cont {
		return m, nil
	}
	cmds := []tea.Cmd{pollTick(m.poller.Interval(), msg.Epoch)}
	if fetch {
		cmds = append(cmds, m.fetchStats())
	}
	return m, tea.Batch(cmds...)
}

// handleStats merges a successful fetch. Failures only reach the log.
func (m Model) handleStats(msg StatsMsg) (tea.Model, tea.Cmd) {
	now := m.now()
	m.poller.Done(msg.Err, now)
	if msg.Err != nil {
		return m, nil
	}
	updated := m.board.Merge(msg.Stats, now)
	log.Printf("STATS_REFRESHED | updated=%v", updated)
	if len(updated) == 0 {
		return m, nil
	}
	return m, highlightEnd(m.board.Highlight())
}

// =============================================================================
// ACTIONS
// =============================================================================

// gate opens the confirmation modal for cmd, or submits it directly when it
// needs no confirmation.
func (m Model) gate(cmd confirm.Command) (tea.Model, tea.Cmd) {
	cmd = cmd.WithNavigate(m.cfg.Actions.NavigateAfterSubmit)
	if !cmd.NeedsConfirm {
		return m, m.submit(cmd)
	}
	return m, m.modal.Show(cmd)
}

func (m Model) saveSettings() (tea.Model, tea.Cmd) {
	if !m.settings.loaded {
		log.Printf("SETTINGS_SAVE_REFUSED | reason=not_loaded")
		load := m.requestSettings()
		return m, tea.Batch(m.toast("Settings not loaded yet", components.ToastKindWarning), load)
	}
	if err := m.settings.guard.Validate(); err != nil {
		log.Printf("SETTINGS_INVALID | error=%v", err)
		return m, m.toast("Please fill in all required fields", components.ToastKindWarning)
	}
	return m.gate(confirm.SaveSettings(m.settings.guard.Form()))
}

func (m Model) handleCommandResult(msg CommandResultMsg) (tea.Model, tea.Cmd) {
	cmd := msg.Result.Command
	if msg.Err != nil {
		text := cmd.Kind.String() + " failed"
		if errors.Is(msg.Err, backend.ErrConnection) {
			text = "Connection error"
		}
		return m, m.toast(text, components.ToastKindError)
	}

	var cmds []tea.Cmd
	cmds = append(cmds, m.toast(successText(cmd.Kind), components.ToastKindSuccess))

	if cmd.Kind == confirm.KindSaveSettings {
		// The server answers with a redirect, not the stored values. Show
		// what was just saved until the settings view reads them back.
		focus := m.settings.focus
		m.settings = newSettingsForm(m.settings.guard.Values())
		m.settings.loaded = true
		m.settings.focus = focus
	}

	if msg.Result.ShouldNavigate() {
		v, id := ParseRoute(msg.Result.Location)
		if v == m.view && v == ViewDashboard {
			if m.poller.BeginFetch() {
				cmds = append(cmds, m.fetchStats())
			}
			return m, tea.Batch(cmds...)
		}
		var navCmd tea.Cmd
		m, navCmd = m.enterView(v, id)
		cmds = append(cmds, navCmd)
	}
	return m, tea.Batch(cmds...)
}

func successText(k confirm.Kind) string {
	switch k {
	case confirm.KindRegenerate:
		return "Summary regenerated"
	case confirm.KindPost:
		return "Article published"
	case confirm.KindDelete:
		return "Article deleted"
	case confirm.KindScrape:
		return "News scrape started"
	case confirm.KindSaveSettings:
		return "Settings saved"
	}
	return "Done"
}

// handleSettingsLoaded replaces the form with the stored settings. Unsaved
// edits are never overwritten by a background reload.
func (m Model) handleSettingsLoaded(msg SettingsLoadedMsg) (tea.Model, tea.Cmd) {
	m.settings.loading = false
	if msg.Err != nil {
		m.settings.loadErr = msg.Err
		log.Printf("SETTINGS_LOAD_FAILED | error=%v", msg.Err)
		return m, m.toast("Could not load settings", components.ToastKindWarning)
	}
	if m.settings.guard.Dirty() {
		log.Printf("SETTINGS_LOAD_SKIPPED | reason=unsaved")
		return m, nil
	}

	focus := m.settings.focus
	m.settings = newSettingsForm(msg.Values)
	m.settings.loaded = true
	log.Printf("SETTINGS_LOADED")
	if m.view != ViewSettings {
		m.settings.focus = focus
		return m, nil
	}
	cmd := m.settings.setFocus(focus)
	return m, cmd
}

// =============================================================================
// CONFIG RELOAD
// =============================================================================

// handleConfigReloaded applies timing and policy changes without a restart.
// In-flight requests and running timers keep the values they started with.
func (m Model) handleConfigReloaded(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	cfg := msg.Config
	if cfg == nil {
		return m, m.watchConfig()
	}

	if policy, err := conntest.ParsePolicy(cfg.Tests.SurfacePolicy); err == nil {
		m.runner.SetPolicy(policy)
	}
	m.poller.Configure(cfg.PollInterval(), cfg.Dashboard.SingleFlight)
	m.board.SetHighlight(cfg.HighlightDuration())
	m.notifier.SetDuration(cfg.ToastDuration())
	m.cfg = cfg

	log.Printf("CONFIG_APPLIED | policy=%s poll=%v", cfg.Tests.SurfacePolicy, cfg.PollInterval())
	return m, tea.Batch(m.watchConfig(), m.toast("Configuration reloaded", components.ToastKindInfo))
}

// toast shows a notification and returns its expiry command.
func (m Model) toast(message string, kind components.ToastKind) tea.Cmd {
	_, cmd := m.notifier.Notify(message, kind)
	return cmd
}
