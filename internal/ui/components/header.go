// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/certbadge/internal/icon"
	"github.com/jeranaias/certbadge/internal/ui/styles"
	"github.com/jeranaias/certbadge/internal/util"
)

// =============================================================================
// HEADER COMPONENT - Title and page tabs
// =============================================================================

// maxTabHost caps the host shown in a tab label.
const maxTabHost = 24

// Tab is one open page.
type Tab struct {
	PageID string
	URL    string
	Badge  icon.Descriptor
}

// Header renders the title followed by one tab per open page.
type Header struct {
	Title  string
	Tabs   []Tab
	Active string
	Width  int
	theme  *styles.Theme
}

// NewHeader creates a header with default values.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		Title: "certbadge",
		Width: 80,
		theme: theme,
	}
}

// SetWidth updates the header width
func (h *Header) SetWidth(width int) {
	h.Width = width
}

// SetTabs replaces the tab list.
func (h *Header) SetTabs(tabs []Tab, active string) {
	h.Tabs = tabs
	h.Active = active
}

// View renders the header on one line, truncated to Width.
func (h *Header) View() string {
	parts := []string{h.theme.HeaderTitle.Render(h.Title)}

	if len(h.Tabs) == 0 {
		parts = append(parts, h.theme.Muted.Render("no pages open"))
	}
	for _, tab := range h.Tabs {
		badge := NewBadge()
		badge.SetDescriptor(tab.Badge)

		label := util.TruncateWidth(hostOf(tab.URL), maxTabHost)
		if label == "" {
			label = "page " + tab.PageID
		}

		style := h.theme.Tab
		if tab.PageID == h.Active {
			style = h.theme.TabActive
		}
		parts = append(parts, badge.ViewCompact()+style.Render(label))
	}

	line := strings.Join(parts, " ")
	return h.theme.Header.
		Width(h.Width).
		MaxWidth(h.Width).
		Render(lipgloss.NewStyle().MaxWidth(h.Width - h.theme.Header.GetHorizontalFrameSize()).Render(line))
}
