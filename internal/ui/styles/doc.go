// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the newsbot console.
//
// # Key Types
//
//   - Theme: Lip Gloss styles for every console element
//   - SpinnerConfig: Frame sets for the in-progress indicators
//   - StatusIndicatorSet: ASCII shapes shown next to colored states
//
// # Usage
//
//	theme := styles.NewTheme()
//	line := theme.ResultSuccess.Render(styles.StatusIndicators.Success + " Gemini API is reachable")
//
// Colors are AdaptiveColor values; ApplyThemeName pins the palette when the
// config asks for "light" or "dark" explicitly.
package styles
