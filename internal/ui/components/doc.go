// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable UI pieces of the console.

Display components render from snapshots and hold no request state:

	RenderSurface (result_panel.go) - shared test result surface
	RenderTestButton (test_button.go) - connectivity-test control
	RenderSaveButton (test_button.go) - settings save button with unsaved state
	RenderStatGrid (stat_card.go) - dashboard counters
	Header (header.go) - brand, backend address and page tabs
	StatusBar (statusbar.go) - refresh state and key hints

Interactive components follow the Bubble Tea message flow. Their Update
methods return (tea.Cmd, bool), where the bool reports whether the message
was consumed:

	Notifier (toast.go) - auto-expiring toasts
	ConfirmModal (confirm_modal.go) - yes/no gate before side effects
	Spinner (spinner.go) - in-flight indicator

All components take a *styles.Theme:

	theme := styles.NewTheme()
	header := components.NewHeader(theme, cfg.Server.BaseURL, "Dashboard", "Articles", "Settings")
	header.SetWidth(80)
	view := header.View()
*/
package components
