// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console is the root Bubble Tea model of the admin console.
//
// All presentation state (test controls, result surfaces, stat slots, the
// settings form and toasts) is mutated only in Update. Backend calls run
// inside tea.Cmd closures and report back as messages; timers are tea.Tick
// commands carrying the generation or epoch they were scheduled for, so a
// timer that outlives its state is dropped on arrival.
package console
