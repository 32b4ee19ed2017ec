// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/certbadge/internal/ui/styles"
)

// =============================================================================
// STATUS BAR COMPONENT - Bottom bar with the badge, messages and shortcuts
// =============================================================================

// Shortcut is a key hint.
type Shortcut struct {
	Key  string
	Desc string
}

// DefaultShortcuts are the key hints of the main view.
var DefaultShortcuts = []Shortcut{
	{Key: "tab", Desc: "next page"},
	{Key: "r", Desc: "reload"},
	{Key: "x", Desc: "close"},
	{Key: "enter", Desc: "details"},
	{Key: "q", Desc: "quit"},
}

// StatusBar renders the focused page's badge on the left and key hints
// on the right, with an optional message in between.
type StatusBar struct {
	Width     int
	Badge     *Badge
	Activity  string
	Message   string
	IsError   bool
	Shortcuts []Shortcut
	theme     *styles.Theme
}

// NewStatusBar creates a status bar with the default shortcuts.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{
		Width:     80,
		Badge:     NewBadge(),
		Shortcuts: DefaultShortcuts,
		theme:     theme,
	}
}

// SetWidth updates the status bar width.
func (s *StatusBar) SetWidth(width int) {
	s.Width = width
}

// SetMessage sets a transient message.
func (s *StatusBar) SetMessage(msg string, isError bool) {
	s.Message = msg
	s.IsError = isError
}

// ClearMessage removes the message.
func (s *StatusBar) ClearMessage() {
	s.Message = ""
	s.IsError = false
}

// View renders the status bar.
func (s *StatusBar) View() string {
	left := s.Badge.View()
	if s.Activity != "" {
		left += " " + s.Activity
	}
	if s.Message != "" {
		msgStyle := s.theme.Notice
		if s.IsError {
			msgStyle = s.theme.Error
		}
		left += " " + msgStyle.Render(s.Message)
	}

	hints := make([]string, 0, len(s.Shortcuts))
	for _, sc := range s.Shortcuts {
		hints = append(hints, s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	right := strings.Join(hints, "  ")

	inner := s.Width - s.theme.StatusBar.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// Not enough room; drop the hints.
		right = ""
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	return s.theme.StatusBar.
		Width(s.Width).
		MaxWidth(s.Width).
		Render(lipgloss.NewStyle().MaxWidth(inner).Render(line))
}
