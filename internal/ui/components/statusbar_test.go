// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/certbadge/internal/ui/styles"
)

func TestStatusBarView(t *testing.T) {
	s := NewStatusBar(styles.NewTheme())
	s.SetWidth(120)

	view := s.View()
	if !strings.Contains(view, DefaultLabel) {
		t.Errorf("View() missing badge: %q", view)
	}
	if !strings.Contains(view, "details") {
		t.Errorf("View() missing shortcuts: %q", view)
	}

	s.SetMessage("dial failed", true)
	if !strings.Contains(s.View(), "dial failed") {
		t.Error("View() missing message")
	}
	s.ClearMessage()
	if strings.Contains(s.View(), "dial failed") {
		t.Error("ClearMessage() should remove the message")
	}
}

func TestStatusBarNarrow(t *testing.T) {
	s := NewStatusBar(styles.NewTheme())
	s.SetWidth(30)
	view := s.View()
	if strings.Contains(view, "quit") {
		t.Errorf("narrow View() should drop shortcuts: %q", view)
	}
	if w := lipgloss.Width(view); w > 30 {
		t.Errorf("View() width %d exceeds 30", w)
	}
}
