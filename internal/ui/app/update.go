// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/certbadge/internal/events"
	"github.com/jeranaias/certbadge/internal/util"
)

// maxErrorWidth caps acquisition errors shown in the status bar.
const maxErrorWidth = 60

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tick, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(tick)
		m.statusBar.Activity = m.spinner.View()
		return m, cmd
	}

	next, cmd := m.update(msg)
	updated := next.(Model)
	start := updated.syncSpinner()
	if start == nil {
		return updated, cmd
	}
	return updated, tea.Batch(cmd, start)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case OpenMsg:
		cmds := make([]tea.Cmd, 0, len(msg.URLs))
		for _, url := range msg.URLs {
			cmds = append(cmds, m.open(url))
		}
		m.refresh("")
		return m, tea.Batch(cmds...)

	case AssetsChangedMsg:
		m.refresh("")
		return m, nil

	case events.AcquiredMsg:
		cmd := m.disp.Handle(msg)
		if msg.PageID == m.disp.Active() {
			m.statusBar.ClearMessage()
		}
		m.refresh(msg.PageID)
		return m, cmd

	case events.AcquireFailedMsg:
		cmd := m.disp.Handle(msg)
		if msg.PageID == m.disp.Active() {
			m.statusBar.SetMessage(util.TruncateWidth(msg.Err.Error(), maxErrorWidth), true)
		}
		m.refresh(msg.PageID)
		return m, cmd

	case events.NavigationMsg:
		if idx := m.indexOf(msg.PageID); idx >= 0 {
			m.pages[idx].url = msg.URL
		}
		cmd := m.disp.Handle(msg)
		m.refresh(msg.PageID)
		return m, cmd

	case events.HeadersReceivedMsg:
		cmd := m.disp.Handle(msg)
		m.refresh(msg.PageID)
		return m, cmd

	case events.ActivatedMsg:
		// Pages the app never opened, or already closed, cannot take focus.
		if m.disp.Store().Tracked(msg.PageID) {
			m.disp.Handle(msg)
		}
		m.refresh("")
		return m, nil

	case events.ClosedMsg:
		m.closePage(msg.PageID)
		m.refresh("")
		return m, nil
	}

	if m.showDetail {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(msg.Width, msg.Height)

	m.header.SetWidth(msg.Width)
	m.statusBar.SetWidth(msg.Width)
	m.detail.SetWidth(m.theme.ContentWidth())

	// Layout: header + body + status bar, one line each for the bars.
	bodyHeight := msg.Height - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.viewport.Width = msg.Width
	m.viewport.Height = bodyHeight

	if m.showDetail {
		m.viewport.SetContent(m.detail.Render())
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextPage):
		m.activate(1)
		m.refresh("")
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		m.activate(-1)
		m.refresh("")
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		active := m.disp.Active()
		if active == "" {
			return m, nil
		}
		log.Printf("RELOAD | page=%s url=%s", active, m.activeURL())
		cmd := m.load(active, m.activeURL())
		m.refresh(active)
		return m, cmd

	case key.Matches(msg, m.keys.Duplicate):
		url := m.activeURL()
		if url == "" {
			return m, nil
		}
		cmd := m.open(url)
		m.refresh("")
		return m, cmd

	case key.Matches(msg, m.keys.Close):
		if active := m.disp.Active(); active != "" {
			m.closePage(active)
			m.refresh("")
		}
		return m, nil

	case key.Matches(msg, m.keys.Detail):
		m.showDetail = !m.showDetail
		if m.showDetail {
			m.refreshDetail()
		}
		return m, nil
	}

	if !m.showDetail {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Toggle):
		idx := int(msg.String()[0] - '1')
		m.detail.ToggleCertificate(idx)
		m.viewport.SetContent(m.detail.Render())
	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
	}
	return m, nil
}
