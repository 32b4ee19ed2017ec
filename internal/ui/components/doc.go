// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable UI pieces of the certbadge TUI.

Components are built on Bubble Tea and Lip Gloss and take a *styles.Theme
for consistent styling.

# Components

Badge (badge.go) - The security badge: glyph on the level's background
color, or the default icon when no level is shown.

Header (header.go) - One tab per open page with its compact badge.

StatusBar (statusbar.go) - The focused page's badge, capture activity,
messages and key hints.

DetailView (detail_view.go) - The connection detail panel with its
collapsible certificate chain.

Spinner (spinner.go) - Shown while the focused page is being captured.

# Usage

	theme := styles.NewTheme()
	bar := components.NewStatusBar(theme)
	bar.SetWidth(80)
	bar.Badge.SetDescriptor(dispatcher.ActiveBadge())
	view := bar.View()
*/
package components
