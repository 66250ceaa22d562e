// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/newsbot-console/internal/conntest"
	"github.com/jeranaias/newsbot-console/internal/formguard"
	"github.com/jeranaias/newsbot-console/internal/ui/components"
	"github.com/jeranaias/newsbot-console/internal/util"
)

// View renders the console.
func (m Model) View() string {
	now := m.now()
	width := m.width
	if width <= 0 {
		width = 80
	}

	top := m.header.View()
	if toasts := components.RenderToastStack(m.notifier.Toasts(), width, now); toasts != "" {
		top = lipgloss.JoinVertical(lipgloss.Left, top, toasts)
	}

	var body string
	if m.modal.IsVisible() {
		body = m.modal.View()
	} else {
		switch m.view {
		case ViewDashboard:
			body = m.renderDashboard()
		case ViewSettings:
			body = m.renderSettings(width)
		case ViewArticle:
			body = m.renderArticle()
		}
	}

	m.status.Polling = m.poller.Active()
	m.status.Interval = m.poller.Interval()
	m.status.LastRefresh = m.poller.LastSuccess()
	m.status.Unsaved = m.settings.guard.Dirty()
	m.status.Hint = m.help.View(m.keys.helpFor(m.view))

	return m.theme.App.Render(lipgloss.JoinVertical(lipgloss.Left,
		top,
		body,
		"",
		m.status.View(now),
	))
}

// =============================================================================
// DASHBOARD
// =============================================================================

func (m Model) renderDashboard() string {
	return m.theme.Section.Render(components.RenderStatGrid(m.theme, m.board.Slots(), m.now()))
}

// =============================================================================
// SETTINGS
// =============================================================================

func (m Model) renderSettings(width int) string {
	var rows []string
	labelWidth := 24

	if !m.settings.loaded {
		switch {
		case m.settings.loading:
			rows = append(rows, m.theme.Muted.Render("Loading settings..."))
		case m.settings.loadErr != nil:
			rows = append(rows, m.theme.FieldInvalid.Render("Could not load settings: "+m.settings.loadErr.Error()),
				m.theme.Muted.Render("[C-r] retry"))
		default:
			rows = append(rows, m.theme.Muted.Render("Settings not loaded. [C-r] load"))
		}
		rows = append(rows, "", m.renderTests(width))
		return m.theme.Section.Render(strings.Join(rows, "\n"))
	}

	for i, f := range m.settings.guard.Fields() {
		label := util.PadRight(f.Label, labelWidth)
		if i == m.settings.focus {
			label = m.theme.FieldFocused.Render(label)
		} else {
			label = m.theme.FieldLabel.Render(label)
		}

		row := label + " " + m.renderFieldValue(f, i == m.settings.focus)
		if msg, ok := m.settings.guard.Invalid(f.Name); ok {
			row += " " + m.theme.FieldInvalid.Render(msg)
		}
		rows = append(rows, row)
	}

	rows = append(rows, "", components.RenderSaveButton(m.theme, m.settings.guard, "[C-s]"))
	rows = append(rows, "", m.renderTests(width))

	return m.theme.Section.Render(strings.Join(rows, "\n"))
}

func (m Model) renderFieldValue(f formguard.Field, focused bool) string {
	v := m.settings.guard.Get(f.Name)
	switch f.Kind {
	case formguard.KindBool:
		if v == "on" {
			return "[x]"
		}
		return "[ ]"
	case formguard.KindChoice:
		if focused {
			return "< " + v + " >"
		}
		return v
	}
	if ti, ok := m.settings.inputs[f.Name]; ok {
		return ti.View()
	}
	return v
}

var testKeyHints = map[conntest.Target]string{
	conntest.ChannelLookup: "[C-l]",
	conntest.ProviderA:     "[C-o]",
	conntest.ProviderB:     "[C-g]",
	conntest.MessagingTest: "[C-t]",
}

// renderTests draws the test controls grouped by the surface they share.
func (m Model) renderTests(width int) string {
	spin := m.spinner.View()
	cellWidth := width - 40
	if cellWidth < 16 {
		cellWidth = 16
	}

	var rows []string
	for _, surface := range []string{conntest.SurfaceChannel, conntest.SurfaceAPI} {
		for _, t := range conntest.Targets() {
			if t.Surface() != surface {
				continue
			}
			ctrl := m.runner.Control(t)
			rows = append(rows, components.RenderTestButton(m.theme, ctrl, testKeyHints[t], spin)+"  "+
				components.RenderCell(m.theme, ctrl, cellWidth))
		}
		if out := components.RenderSurface(m.theme, m.runner.Surface(surface), spin, width); out != "" {
			rows = append(rows, out)
		}
		rows = append(rows, "")
	}
	return strings.TrimRight(strings.Join(rows, "\n"), "\n")
}

// =============================================================================
// ARTICLE
// =============================================================================

func (m Model) renderArticle() string {
	rows := []string{
		m.theme.FieldLabel.Render("Article") + " " + m.article.input.View(),
	}
	if link := m.article.link(m.client.BaseURL()); link != "" {
		rows = append(rows, m.theme.Muted.Render(link))
	} else {
		rows = append(rows, m.theme.Muted.Render("Type an article ID to act on it."))
	}
	return m.theme.Section.Render(strings.Join(rows, "\n"))
}
