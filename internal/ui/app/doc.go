// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the interactive certbadge terminal UI.
//
// Each open page is a tab. Page events are Bubble Tea messages handled by
// an events.Dispatcher; acquisitions run as commands, so their results
// come back through Update like any other message. The status bar shows
// the focused page's badge and enter opens the detail panel in a
// scrollable viewport.
package app
