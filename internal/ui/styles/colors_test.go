// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/jeranaias/certbadge/internal/trust"
)

func TestLevelIndicator(t *testing.T) {
	for _, level := range trust.Levels {
		if got := LevelIndicator(level); got == "[?]" {
			t.Errorf("LevelIndicator(%s) has no marker", level)
		}
	}
	if got := LevelIndicator(trust.Level(99)); got != "[?]" {
		t.Errorf("LevelIndicator(unknown) = %q, want [?]", got)
	}
}

func TestLevelColor(t *testing.T) {
	if LevelColor(trust.LevelSecure) != trust.ColorSecure {
		t.Error("secure color mismatch")
	}
	if LevelColor(trust.LevelInsecure) != LevelColor(trust.LevelBroken) {
		t.Error("broken and insecure share a color")
	}
}

func TestRenderHelpers(t *testing.T) {
	if got := RenderError("boom"); !strings.Contains(got, "[X] boom") {
		t.Errorf("RenderError() = %q", got)
	}
	if got := RenderNotice("hello"); !strings.Contains(got, "[i] hello") {
		t.Errorf("RenderNotice() = %q", got)
	}
}
