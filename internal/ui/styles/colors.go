// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/certbadge/internal/trust"
)

// =============================================================================
// PRIMARY ACCENT COLORS
// =============================================================================

// Purple - Primary accent, selections
var Purple = lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A78BFA"}

// Cyan - Brand color, info, key hints
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - Success states
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Rose - Errors and insecure connections
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - Warnings and notices
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// SURFACE COLORS
// =============================================================================

// SurfaceDim - Headers and footers
var SurfaceDim = lipgloss.AdaptiveColor{Light: "#F5F5F5", Dark: "#181825"}

// SurfaceBright - Highlights such as the active tab
var SurfaceBright = lipgloss.AdaptiveColor{Light: "#FAFAFA", Dark: "#313244"}

// Overlay - Borders, separators
var Overlay = lipgloss.AdaptiveColor{Light: "#E5E5E5", Dark: "#313244"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - Main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#CDD6F4"}

// TextSecondary - Labels, less prominent text
var TextSecondary = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#A6ADC8"}

// TextMuted - Hints, very subtle text
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6C7086"}

// =============================================================================
// TRUST LEVEL COLORS
// =============================================================================

// LevelIndicators are ASCII markers shown next to a level so the badge
// reads without color.
var LevelIndicators = map[trust.Level]string{
	trust.LevelSecure:   "[OK]",
	trust.LevelWeak:     "[!]",
	trust.LevelBroken:   "[X]",
	trust.LevelInsecure: "[X]",
}

// LevelColor returns the badge background of level.
func LevelColor(level trust.Level) lipgloss.Color {
	return level.Color()
}

// LevelIndicator returns the ASCII marker of level.
func LevelIndicator(level trust.Level) string {
	if s, ok := LevelIndicators[level]; ok {
		return s
	}
	return "[?]"
}

// =============================================================================
// STATUS HELPERS
// =============================================================================

// RenderError renders an error message with an X mark.
func RenderError(message string) string {
	return lipgloss.NewStyle().
		Foreground(Rose).
		Bold(true).
		Render("[X] " + message)
}

// RenderNotice renders an informational notice.
func RenderNotice(message string) string {
	return lipgloss.NewStyle().
		Foreground(Amber).
		Render("[i] " + message)
}
