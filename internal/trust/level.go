// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package trust

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Level is the trust level of a connection.
type Level int

const (
	LevelSecure Level = iota
	LevelWeak
	LevelBroken
	LevelInsecure
)

// Levels lists every level, most trusted first.
var Levels = []Level{LevelSecure, LevelWeak, LevelBroken, LevelInsecure}

// Badge colors. The values are fixed and must not follow the terminal theme.
const (
	ColorSecure   = lipgloss.Color("#30d158") // Green
	ColorWeak     = lipgloss.Color("#ffcc00") // Yellow
	ColorBroken   = lipgloss.Color("#ff453a") // Red
	ColorInsecure = lipgloss.Color("#ff453a") // Red
)

// GlyphVariant selects the foreground glyph drawn on a colored badge.
type GlyphVariant int

const (
	GlyphDark GlyphVariant = iota
	GlyphLight
)

// String returns the asset name of the variant.
func (g GlyphVariant) String() string {
	if g == GlyphLight {
		return "light"
	}
	return "dark"
}

// String returns the display name of the level.
func (l Level) String() string {
	switch l {
	case LevelSecure:
		return "Secure"
	case LevelWeak:
		return "Weak"
	case LevelBroken:
		return "Broken"
	default:
		return "Insecure"
	}
}

// ParseLevel parses a level name case-insensitively. Unknown names
// return LevelInsecure and false.
func ParseLevel(s string) (Level, bool) {
	for _, l := range Levels {
		if strings.EqualFold(strings.TrimSpace(s), l.String()) {
			return l, true
		}
	}
	return LevelInsecure, false
}

// MarshalText implements encoding.TextMarshaler.
func (l Level) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(l.String())), nil
}

// Color returns the badge background for the level.
func (l Level) Color() lipgloss.Color {
	switch l {
	case LevelSecure:
		return ColorSecure
	case LevelWeak:
		return ColorWeak
	case LevelBroken:
		return ColorBroken
	default:
		return ColorInsecure
	}
}

// Glyph returns the glyph variant readable on the level's background.
func (l Level) Glyph() GlyphVariant {
	switch l {
	case LevelSecure, LevelWeak:
		return GlyphDark
	default:
		return GlyphLight
	}
}
