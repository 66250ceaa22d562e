// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conntest implements the connectivity-test state machine behind
// the console's four "test this service" controls.
//
// A Runner owns one Control per Target and one result Surface per surface
// name. The caller drives it in two steps: Begin validates input, marks the
// control Pending and returns the immutable Request to send; Settle applies
// the Outcome once the request resolves. Between the two the caller performs
// the HTTP call (see Execute).
//
// # Surfaces
//
// Channel lookup renders into SurfaceChannel, which auto-hides. The two AI
// provider checks and the messaging test share SurfaceAPI. Every control also
// keeps its latest result in its own cell, which is never overwritten by
// another control.
//
// # Timers
//
// Settle bumps the control generation and, when it renders, the surface
// generation. Revert and Hide take the generation observed when the timer
// was scheduled and do nothing if it has moved on, so a late timer never
// disturbs a newer state.
//
// Runner is not safe for concurrent use; the console mutates it only from
// its Update loop.
package conntest
