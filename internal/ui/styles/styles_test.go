// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestThemeInitStyles(t *testing.T) {
	theme := NewTheme()

	styles := []struct {
		name  string
		style lipgloss.Style
	}{
		{"Header", theme.Header},
		{"StatCard", theme.StatCard},
		{"StatCardHighlight", theme.StatCardHighlight},
		{"ResultSuccess", theme.ResultSuccess},
		{"ResultFailure", theme.ResultFailure},
		{"ButtonWarning", theme.ButtonWarning},
		{"Modal", theme.Modal},
	}

	for _, s := range styles {
		if s.style.Render("test") == "" {
			t.Errorf("%s style should be initialized", s.name)
		}
	}
}

func TestGetLayoutMode(t *testing.T) {
	tests := []struct {
		width int
		want  LayoutMode
	}{
		{40, LayoutNarrow},
		{59, LayoutNarrow},
		{60, LayoutMedium},
		{99, LayoutMedium},
		{100, LayoutWide},
	}

	theme := NewTheme()
	for _, tt := range tests {
		theme.SetSize(tt.width, 30)
		if got := theme.GetLayoutMode(); got != tt.want {
			t.Errorf("width %d: GetLayoutMode() = %v, want %v", tt.width, got, tt.want)
		}
	}
}

func TestSpinnerConfig(t *testing.T) {
	if d := LineSpinner.Duration(); d != 100*time.Millisecond {
		t.Errorf("LineSpinner.Duration() = %v, want 100ms", d)
	}
	if d := (SpinnerConfig{}).Duration(); d != time.Second {
		t.Errorf("zero FPS Duration() = %v, want 1s", d)
	}

	s := DotsSpinner.Bubbles()
	if len(s.Frames) != len(DotsSpinner.Frames) {
		t.Errorf("Bubbles() frames = %d, want %d", len(s.Frames), len(DotsSpinner.Frames))
	}
}

func TestApplyThemeName(t *testing.T) {
	defer lipgloss.SetHasDarkBackground(lipgloss.HasDarkBackground())

	ApplyThemeName("light")
	if lipgloss.HasDarkBackground() {
		t.Error("light theme should clear dark background")
	}
	ApplyThemeName("DARK")
	if !lipgloss.HasDarkBackground() {
		t.Error("dark theme should set dark background")
	}
}
