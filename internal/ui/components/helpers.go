// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strconv"
	"time"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

func toStr(n int) string {
	return strconv.Itoa(n)
}

// fmtAge renders how long ago t was, in whole seconds or minutes.
func fmtAge(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	switch {
	case d < time.Second:
		return "just now"
	case d < time.Minute:
		return toStr(int(d/time.Second)) + "s ago"
	case d < time.Hour:
		return toStr(int(d/time.Minute)) + "m ago"
	default:
		return t.Format("15:04")
	}
}
