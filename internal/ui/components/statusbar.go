// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/newsbot-console/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar is the bottom line: refresh state on the left, hints on the right.
type StatusBar struct {
	Width       int
	Polling     bool
	Interval    time.Duration
	LastRefresh time.Time
	Unsaved     bool
	Hint        string
	theme       *styles.Theme
}

// NewStatusBar creates an empty status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{Width: 80, theme: theme}
}

// SetWidth updates the bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// View renders the bar as of now.
func (s *StatusBar) View(now time.Time) string {
	var left []string

	if s.Polling {
		left = append(left, "auto "+s.Interval.String())
	} else {
		left = append(left, "auto off")
	}
	left = append(left, "updated "+fmtAge(s.LastRefresh, now))

	if s.Unsaved {
		left = append(left, s.theme.ButtonWarning.UnsetPadding().Render(styles.StatusIndicators.Warning+" unsaved"))
	}

	l := s.theme.Muted.Render(strings.Join(left, "  "))
	r := s.theme.Help.Render(s.Hint)

	gap := s.Width - lipgloss.Width(l) - lipgloss.Width(r)
	if gap < 1 {
		return l
	}
	return l + strings.Repeat(" ", gap) + r
}
