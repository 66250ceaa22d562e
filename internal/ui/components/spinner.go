// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/newsbot-console/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is the indeterminate progress indicator shown next to in-flight
// tests. One spinner is shared by every surface; it only ticks while at
// least one request is outstanding.
type Spinner struct {
	spinner spinner.Model
	active  bool
}

// NewSpinner creates a stopped spinner with the ASCII line frames.
func NewSpinner() Spinner {
	s := spinner.New()
	s.Spinner = styles.LineSpinner.Bubbles()
	s.Style = lipgloss.NewStyle().Foreground(styles.Cyan)
	return Spinner{spinner: s}
}

// Start activates the spinner. It returns the first tick only when the
// spinner was not already running, so ticks never double up.
func (s *Spinner) Start() tea.Cmd {
	if s.active {
		return nil
	}
	s.active = true
	return s.spinner.Tick
}

// Stop deactivates the spinner; its pending tick is dropped on arrival.
func (s *Spinner) Stop() {
	s.active = false
}

// IsActive returns whether the spinner is currently running.
func (s *Spinner) IsActive() bool {
	return s.active
}

// Update advances the animation on its own tick messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	if !s.active {
		return s, nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the current frame, or nothing when stopped.
func (s Spinner) View() string {
	if !s.active {
		return ""
	}
	return s.spinner.View()
}
