// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/certbadge/internal/ui/components"
	"github.com/jeranaias/certbadge/internal/util"
)

// emptyHint is shown when no page is open.
const emptyHint = "No pages open. Pass URLs on the command line: certbadge tui https://example.com"

// View renders the app.
func (m Model) View() string {
	var body string
	if m.showDetail {
		body = m.viewport.View()
	} else {
		body = m.summary()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.statusBar.View())
}

// summary lists every page with its badge.
func (m Model) summary() string {
	height := m.height - 2
	if height < 1 {
		height = 1
	}

	var lines []string
	if len(m.pages) == 0 {
		lines = append(lines, m.theme.Muted.Render(util.TruncateWidth(emptyHint, m.width)))
	}
	for _, p := range m.pages {
		badge := components.NewBadge()
		badge.SetDescriptor(m.disp.Badge(p.id))

		marker := "  "
		if p.id == m.disp.Active() {
			marker = "> "
		}
		label := badge.Label()
		width := m.width - lipgloss.Width(badge.ViewCompact()) - len(marker) - util.StringWidth(label) - 3
		line := marker + badge.ViewCompact() + " " + util.TruncateWidth(p.url, width) + "  " + m.theme.Muted.Render(label)
		lines = append(lines, line)
	}
	if len(m.pages) > 0 {
		lines = append(lines, "", m.theme.Muted.Render("enter: inspect the focused page"))
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
