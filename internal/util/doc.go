// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared across certbadge.
//
// # Key Functions
//
// String Utilities (column aware, via go-runewidth):
//   - TruncateWidth, TruncateRunes: safe truncation with ellipsis
//   - StringWidth, PadRight, MaxWidth: alignment of label columns
//   - Wrap: line breaking for long values such as fingerprints
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	label := util.PadRight("Protocol", util.MaxWidth(labels...))
//	err := util.AtomicWriteFile(path, data, 0644)
package util
