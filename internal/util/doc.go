// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across the console.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file writing with fsync (config save)
//   - Truncate: display-width aware truncation with ellipsis
//   - FormatCount: counter formatting for dashboard cards
//
// # Usage
//
//	label := util.Truncate(title, 40)
//	err := util.AtomicWriteFile(path, data, 0600)
package util
