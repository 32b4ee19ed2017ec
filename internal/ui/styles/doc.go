// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the certbadge TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. Trust level colors come from the trust package so the badge
looks the same in every view.

# Color System (colors.go)

  - Purple - Titles and selections
  - Cyan - Brand color and key hints
  - Amber - Notices
  - Rose - Errors

LevelIndicator pairs each trust level with an ASCII marker so a badge can
be read without color.

# Theme System (theme.go)

Theme detects terminal capabilities through termenv and holds the styles
for tabs, the detail panel and the status bar:

	theme := styles.NewTheme()
	theme.SetSize(width, height)
	title := theme.DetailTitle.Render("Connection")
*/
package styles
