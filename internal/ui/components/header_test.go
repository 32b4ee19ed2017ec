// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/certbadge/internal/icon"
	"github.com/jeranaias/certbadge/internal/trust"
	"github.com/jeranaias/certbadge/internal/ui/styles"
)

func TestHeaderEmpty(t *testing.T) {
	h := NewHeader(styles.NewTheme())
	if h.Title != "certbadge" {
		t.Errorf("Title = %q", h.Title)
	}
	if !strings.Contains(h.View(), "no pages open") {
		t.Errorf("View() = %q", h.View())
	}
}

func TestHeaderTabs(t *testing.T) {
	r := icon.NewRenderer(staticGlyphs{}, icon.ThemeDark)
	h := NewHeader(styles.NewTheme())
	h.SetWidth(100)
	h.SetTabs([]Tab{
		{PageID: "1", URL: "https://a.example/path", Badge: r.Render(trust.LevelSecure, true)},
		{PageID: "2", URL: "", Badge: r.Default()},
	}, "1")

	view := h.View()
	if !strings.Contains(view, "a.example") {
		t.Errorf("View() missing host: %q", view)
	}
	if strings.Contains(view, "/path") {
		t.Errorf("View() should show hosts only: %q", view)
	}
	if !strings.Contains(view, "page 2") {
		t.Errorf("View() missing fallback label: %q", view)
	}
	if w := lipgloss.Width(view); w > 100 {
		t.Errorf("View() width %d exceeds 100", w)
	}
}

func TestHostOf_HeaderCases(t *testing.T) {
	tests := map[string]string{
		"https://a.example:8443/x": "a.example:8443",
		"not a url":                "not a url",
		"":                         "",
	}
	for in, want := range tests {
		if got := hostOf(in); got != want {
			t.Errorf("hostOf(%q) = %q, want %q", in, got, want)
		}
	}
}
