// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the console.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// FRAME STYLES
	// ==========================================================================

	App         lipgloss.Style
	Header      lipgloss.Style
	HeaderBrand lipgloss.Style
	HeaderURL   lipgloss.Style
	Tab         lipgloss.Style
	TabActive   lipgloss.Style
	Section     lipgloss.Style
	Help        lipgloss.Style
	Muted       lipgloss.Style

	// ==========================================================================
	// DASHBOARD STYLES
	// ==========================================================================

	StatCard          lipgloss.Style
	StatCardHighlight lipgloss.Style
	StatLabel         lipgloss.Style
	StatValue         lipgloss.Style

	// ==========================================================================
	// RESULT SURFACE STYLES
	// ==========================================================================

	ResultInfo    lipgloss.Style
	ResultSuccess lipgloss.Style
	ResultFailure lipgloss.Style

	// ==========================================================================
	// CONTROL STYLES
	// ==========================================================================

	Button        lipgloss.Style
	ButtonPending lipgloss.Style
	ButtonWarning lipgloss.Style
	FieldLabel    lipgloss.Style
	FieldFocused  lipgloss.Style
	FieldInvalid  lipgloss.Style

	// ==========================================================================
	// OVERLAY STYLES
	// ==========================================================================

	Modal lipgloss.Style
}

// NewTheme creates a new theme with all styles configured.
func NewTheme() *Theme {
	colorProfile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       lipgloss.HasDarkBackground(),
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// ApplyThemeName forces the light or dark palette regardless of what the
// terminal reports. Unknown names leave detection in place.
func ApplyThemeName(name string) {
	switch strings.ToLower(name) {
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	case "light":
		lipgloss.SetHasDarkBackground(false)
	}
}

func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle().Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 1)

	t.HeaderBrand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.HeaderURL = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Tab = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.TabActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextInverse).
		Background(Purple).
		Padding(0, 1)

	t.Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		MarginTop(1)

	t.Help = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	// Stat cards
	t.StatCard = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 2).
		Width(20)

	t.StatCardHighlight = t.StatCard.
		BorderForeground(Cyan).
		Background(CyanDeep)

	t.StatLabel = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.StatValue = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	// Result surfaces
	t.ResultInfo = lipgloss.NewStyle().
		Foreground(Cyan).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(Cyan).
		PaddingLeft(1)

	t.ResultSuccess = t.ResultInfo.
		Foreground(Emerald).
		BorderForeground(Emerald)

	t.ResultFailure = t.ResultInfo.
		Foreground(Rose).
		BorderForeground(Rose)

	// Controls
	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(SurfaceBright).
		Padding(0, 1)

	t.ButtonPending = t.Button.
		Foreground(TextMuted)

	t.ButtonWarning = t.Button.
		Bold(true).
		Foreground(TextInverse).
		Background(Amber)

	t.FieldLabel = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Width(26)

	t.FieldFocused = lipgloss.NewStyle().
		Foreground(FocusRing).
		Bold(true)

	t.FieldInvalid = lipgloss.NewStyle().
		Foreground(Rose)

	t.Modal = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Amber).
		Padding(1, 2)
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
