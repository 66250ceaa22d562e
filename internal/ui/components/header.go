// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/newsbot-console/internal/ui/styles"
	"github.com/jeranaias/newsbot-console/internal/util"
)

// =============================================================================
// HEADER COMPONENT
// =============================================================================

// Header is the title bar: brand, backend address and the page tabs.
type Header struct {
	Title   string
	BaseURL string
	Tabs    []string
	Active  int
	Width   int
	theme   *styles.Theme
}

// NewHeader creates a header for the given tabs.
func NewHeader(theme *styles.Theme, baseURL string, tabs ...string) *Header {
	return &Header{
		Title:   "newsbot",
		BaseURL: baseURL,
		Tabs:    tabs,
		Width:   80,
		theme:   theme,
	}
}

// SetWidth updates the header width.
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetActive selects the highlighted tab. Out-of-range values are ignored.
func (h *Header) SetActive(i int) {
	if i >= 0 && i < len(h.Tabs) {
		h.Active = i
	}
}

// View renders the two-line header.
func (h *Header) View() string {
	brand := h.theme.HeaderBrand.Render(h.Title)

	urlWidth := h.Width - lipgloss.Width(brand) - 4
	if urlWidth < 10 {
		urlWidth = 10
	}
	url := h.theme.HeaderURL.Render(util.Truncate(h.BaseURL, urlWidth))

	gap := h.Width - lipgloss.Width(brand) - lipgloss.Width(url)
	if gap < 1 {
		gap = 1
	}
	top := brand + strings.Repeat(" ", gap) + url

	tabs := make([]string, len(h.Tabs))
	for i, t := range h.Tabs {
		label := toStr(i+1) + " " + t
		if i == h.Active {
			tabs[i] = h.theme.TabActive.Render(label)
		} else {
			tabs[i] = h.theme.Tab.Render(label)
		}
	}

	return h.theme.Header.Width(h.Width).Render(
		lipgloss.JoinVertical(lipgloss.Left, top, lipgloss.JoinHorizontal(lipgloss.Top, tabs...)),
	)
}
