// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/newsbot-console/internal/dashboard"
	"github.com/jeranaias/newsbot-console/internal/ui/styles"
)

// RenderStatCard renders one dashboard counter. A recently updated slot is
// drawn with the highlight style.
func RenderStatCard(theme *styles.Theme, slot dashboard.Slot, now time.Time) string {
	style := theme.StatCard
	if slot.Highlighted(now) {
		style = theme.StatCardHighlight
	}
	return style.Render(
		theme.StatLabel.Render(slot.Label) + "\n" + theme.StatValue.Render(slot.Text()),
	)
}

// RenderStatGrid lays the cards out in one row on wide terminals and two
// rows otherwise.
func RenderStatGrid(theme *styles.Theme, slots []dashboard.Slot, now time.Time) string {
	cards := make([]string, len(slots))
	for i, s := range slots {
		cards[i] = RenderStatCard(theme, s, now)
	}

	if theme.GetLayoutMode() == styles.LayoutWide || len(cards) <= 2 {
		return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
	}

	half := (len(cards) + 1) / 2
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cards[:half]...),
		lipgloss.JoinHorizontal(lipgloss.Top, cards[half:]...),
	)
}
