// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package icon

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/certbadge/internal/trust"
)

// =============================================================================
// THEME
// =============================================================================

// Theme selects the default outline icon.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

// Default icon paths, relative to the asset directory.
const (
	DefaultIconDark  = "icons/outline-light.svg" // light outline for dark themes
	DefaultIconLight = "icons/outline-dark.svg"
)

// DetectTheme inspects the terminal background.
func DetectTheme() Theme {
	if termenv.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// ParseTheme maps "dark" and "light" to a theme; anything else detects.
func ParseTheme(s string) Theme {
	switch s {
	case "dark":
		return ThemeDark
	case "light":
		return ThemeLight
	default:
		return DetectTheme()
	}
}

// DefaultIcon returns the outline icon path for the theme.
func (t Theme) DefaultIcon() string {
	if t == ThemeLight {
		return DefaultIconLight
	}
	return DefaultIconDark
}

// =============================================================================
// DESCRIPTOR
// =============================================================================

// Descriptor describes one badge. When Default is set only DefaultIcon is
// meaningful.
type Descriptor struct {
	Default     bool   `json:"default"`
	DefaultIcon string `json:"default_icon,omitempty"`

	Level      trust.Level        `json:"level"`
	Background lipgloss.Color     `json:"background,omitempty"`
	Variant    trust.GlyphVariant `json:"-"`
	Glyph      Glyph              `json:"glyph"`
}

// AssetSource provides loaded glyphs. Glyph reports false while the
// variant is still loading or failed to load.
type AssetSource interface {
	Glyph(v trust.GlyphVariant) (Glyph, bool)
}

// =============================================================================
// RENDERER
// =============================================================================

// Renderer turns trust levels into badge descriptors.
type Renderer struct {
	assets AssetSource
	theme  Theme
}

// NewRenderer creates a renderer. A nil asset source always falls back to
// the default icon.
func NewRenderer(assets AssetSource, theme Theme) *Renderer {
	return &Renderer{assets: assets, theme: theme}
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() Theme {
	return r.theme
}

// Default returns the theme's default descriptor.
func (r *Renderer) Default() Descriptor {
	return Descriptor{Default: true, DefaultIcon: r.theme.DefaultIcon()}
}

// Render returns the badge for level. ok=false means no level is known.
func (r *Renderer) Render(level trust.Level, ok bool) Descriptor {
	if !ok || r.assets == nil {
		return r.Default()
	}

	variant := level.Glyph()
	glyph, loaded := r.assets.Glyph(variant)
	if !loaded {
		return r.Default()
	}

	return Descriptor{
		Level:      level,
		Background: level.Color(),
		Variant:    variant,
		Glyph:      glyph,
	}
}
