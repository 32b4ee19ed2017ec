// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"path"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/certbadge/internal/icon"
	"github.com/jeranaias/certbadge/internal/ui/styles"
)

// =============================================================================
// BADGE COMPONENT - Trust level badge of the focused page
// =============================================================================

// DefaultLabel is shown when no trust level is known.
const DefaultLabel = "No security info"

// defaultSymbol stands in for the default outline icon in a terminal.
const defaultSymbol = "○"

// Badge renders an icon.Descriptor: the glyph on the level's background
// color, or a muted outline when the descriptor is the default.
type Badge struct {
	desc  icon.Descriptor
	width int
}

// NewBadge creates a badge showing the dark-theme default.
func NewBadge() *Badge {
	return &Badge{
		desc:  icon.Descriptor{Default: true, DefaultIcon: icon.DefaultIconDark},
		width: 0,
	}
}

// SetDescriptor updates the badge.
func (b *Badge) SetDescriptor(d icon.Descriptor) {
	b.desc = d
}

// Descriptor returns the current descriptor.
func (b *Badge) Descriptor() icon.Descriptor {
	return b.desc
}

// SetWidth sets a fixed render width. Zero renders at natural width.
func (b *Badge) SetWidth(width int) {
	b.width = width
}

// Label returns the plain text of the badge, e.g. "Weak [!]".
func (b *Badge) Label() string {
	if b.desc.Default {
		return DefaultLabel
	}
	return b.desc.Level.String() + " " + styles.LevelIndicator(b.desc.Level)
}

// Symbol returns the glyph symbol, or the outline stand-in for the
// default icon.
func (b *Badge) Symbol() string {
	if b.desc.Default || b.desc.Glyph.Symbol == "" {
		return defaultSymbol
	}
	return b.desc.Glyph.Symbol
}

// View renders the badge as a single line:
//
//	 <glyph> Secure [OK]
func (b *Badge) View() string {
	content := " " + b.Symbol() + " " + b.Label() + " "
	return b.style().Render(content)
}

// ViewCompact renders only the glyph, for tab labels.
func (b *Badge) ViewCompact() string {
	return b.style().Render(" " + b.Symbol() + " ")
}

// DefaultIconName returns the asset name of the default icon, or "".
func (b *Badge) DefaultIconName() string {
	if !b.desc.Default {
		return ""
	}
	return path.Base(b.desc.DefaultIcon)
}

func (b *Badge) style() lipgloss.Style {
	var style lipgloss.Style
	if b.desc.Default {
		style = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
	} else {
		style = lipgloss.NewStyle().
			Background(b.desc.Background).
			Foreground(b.desc.Glyph.Foreground).
			Bold(true)
	}
	if b.width > 0 {
		style = style.Width(b.width).MaxWidth(b.width)
	}
	return style
}

// Height returns the height of the badge (always 1 line).
func (b *Badge) Height() int {
	return 1
}

// =============================================================================
// BADGE CHANGED MESSAGE
// =============================================================================

// BadgeChangedMsg is sent when the focused page's badge changes.
type BadgeChangedMsg struct {
	PageID     string
	Descriptor icon.Descriptor
}
