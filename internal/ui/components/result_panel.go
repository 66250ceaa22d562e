// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/jeranaias/newsbot-console/internal/conntest"
	"github.com/jeranaias/newsbot-console/internal/ui/styles"
	"github.com/jeranaias/newsbot-console/internal/util"
)

// RenderSurface renders a shared result surface: the in-progress line while
// a request is outstanding, otherwise the last rendered result. A hidden
// surface renders as an empty string.
func RenderSurface(theme *styles.Theme, s conntest.Surface, spinnerView string, width int) string {
	if !s.Visible {
		return ""
	}

	maxText := width - 8
	if maxText < 20 {
		maxText = 20
	}

	if s.InProgress != nil {
		line := s.InProgress.ProgressText()
		if spinnerView != "" {
			line = spinnerView + " " + line
		}
		return theme.ResultInfo.Render(util.Truncate(line, maxText))
	}

	if s.Result == nil {
		return ""
	}
	return RenderResult(theme, *s.Result, maxText)
}

// RenderResult renders one outcome with success or failure styling.
func RenderResult(theme *styles.Theme, r conntest.Result, maxText int) string {
	if r.Success {
		return theme.ResultSuccess.Render(styles.StatusIndicators.Success + " " + util.Truncate(r.Text, maxText))
	}
	return theme.ResultFailure.Render(styles.StatusIndicators.Error + " " + util.Truncate(r.Text, maxText))
}

// RenderCell renders a control's own result cell in a single muted line.
func RenderCell(theme *styles.Theme, c conntest.Control, maxText int) string {
	if c.Cell == nil {
		return theme.Muted.Render("not run")
	}
	indicator := styles.StatusIndicators.Error
	style := theme.FieldInvalid
	if c.Cell.Success {
		indicator = styles.StatusIndicators.Success
		style = theme.ResultSuccess.UnsetBorderStyle().UnsetPaddingLeft()
	}
	return style.Render(indicator + " " + util.Truncate(c.Cell.Text, maxText))
}
