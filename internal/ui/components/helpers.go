// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"net/url"
	"strconv"

	"github.com/jeranaias/certbadge/internal/icon"
	"github.com/jeranaias/certbadge/internal/trust"
)

// =============================================================================
// SHARED HELPER FUNCTIONS
// =============================================================================

func toStr(n int) string {
	return strconv.Itoa(n)
}

// hostOf returns the host of rawURL, or rawURL itself when it does not
// parse.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

// levelDescriptor is a glyph-less badge for level, used where a level is
// known but no glyph asset is involved.
func levelDescriptor(level trust.Level) icon.Descriptor {
	variant := level.Glyph()
	return icon.Descriptor{
		Level:      level,
		Background: level.Color(),
		Variant:    variant,
		Glyph:      icon.NewGlyph(variant, "●"),
	}
}
