// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/newsbot-console/internal/conntest"
	"github.com/jeranaias/newsbot-console/internal/formguard"
	"github.com/jeranaias/newsbot-console/internal/ui/styles"
)

// RenderTestButton renders a test control with its key hint. A pending
// control is drawn disabled with the spinner frame before its label.
func RenderTestButton(theme *styles.Theme, c conntest.Control, keyHint, spinnerView string) string {
	label := c.Label()
	if c.State == conntest.Pending {
		if spinnerView != "" {
			label = spinnerView + " " + label
		}
		return theme.ButtonPending.Render(label) + " " + theme.Muted.Render(keyHint)
	}
	return theme.Button.Render(label) + " " + theme.Help.Render(keyHint)
}

// RenderSaveButton renders the settings save button; the unsaved-changes
// state uses the warning style.
func RenderSaveButton(theme *styles.Theme, g *formguard.Guard, keyHint string) string {
	if g.Dirty() {
		return theme.ButtonWarning.Render(styles.StatusIndicators.Warning+" "+g.SaveLabel()) + " " + theme.Help.Render(keyHint)
	}
	return theme.Button.Render(g.SaveLabel()) + " " + theme.Help.Render(keyHint)
}
