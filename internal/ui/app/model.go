// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strconv"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/certbadge/internal/events"
	"github.com/jeranaias/certbadge/internal/ui/components"
	"github.com/jeranaias/certbadge/internal/ui/styles"
)

// =============================================================================
// MESSAGES
// =============================================================================

// OpenMsg opens each URL in a new page, in order. The first page opened
// while nothing is focused becomes the focused page.
type OpenMsg struct {
	URLs []string
}

// Open returns a command that opens urls.
func Open(urls ...string) tea.Cmd {
	return func() tea.Msg { return OpenMsg{URLs: urls} }
}

// AssetsChangedMsg reports that badge glyph assets were reloaded.
type AssetsChangedMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

type page struct {
	id  string
	url string
}

// Model is the root Bubble Tea model.
type Model struct {
	disp  *events.Dispatcher
	theme *styles.Theme
	keys  KeyMap

	header    *components.Header
	statusBar *components.StatusBar
	detail    *components.DetailView
	viewport  viewport.Model
	spinner   components.Spinner

	initial    []string
	pages      []page
	nextID     int
	showDetail bool

	width  int
	height int
}

// New creates the app around disp. urls are opened by Init.
func New(disp *events.Dispatcher, urls []string, theme *styles.Theme) Model {
	if theme == nil {
		theme = styles.NewTheme()
	}
	vp := viewport.New(80, 20)

	m := Model{
		disp:      disp,
		theme:     theme,
		keys:      DefaultKeyMap(),
		header:    components.NewHeader(theme),
		statusBar: components.NewStatusBar(theme),
		detail:    components.NewDetailView(theme),
		viewport:  vp,
		spinner:   components.NewSpinner(),
		initial:   urls,
		width:     80,
		height:    24,
	}
	m.refresh("")
	return m
}

// Init opens the initial URLs.
func (m Model) Init() tea.Cmd {
	if len(m.initial) == 0 {
		return nil
	}
	return Open(m.initial...)
}

// Pages returns the open page ids in tab order.
func (m Model) Pages() []string {
	ids := make([]string, len(m.pages))
	for i, p := range m.pages {
		ids[i] = p.id
	}
	return ids
}

// ShowingDetail reports whether the detail panel is open.
func (m Model) ShowingDetail() bool {
	return m.showDetail
}

// =============================================================================
// PAGE OPERATIONS
// =============================================================================

// open adds a page for url and starts loading it.
func (m *Model) open(url string) tea.Cmd {
	m.nextID++
	id := strconv.Itoa(m.nextID)
	m.pages = append(m.pages, page{id: id, url: url})
	m.disp.Store().Track(id)

	if m.disp.Active() == "" {
		m.disp.Handle(events.ActivatedMsg{PageID: id})
	}
	return m.load(id, url)
}

// load navigates pageID to url and returns the acquisition command. A
// page has no network layer of its own, so every load is a fresh
// main-frame response.
func (m *Model) load(pageID, url string) tea.Cmd {
	m.disp.Handle(events.NavigationMsg{PageID: pageID, URL: url, State: events.NavigationLoading})
	return m.disp.Handle(events.HeadersReceivedMsg{PageID: pageID, MainFrame: true, URL: url})
}

// activate focuses the page delta tabs away from the focused one.
func (m *Model) activate(delta int) {
	if len(m.pages) == 0 {
		return
	}
	idx := m.indexOf(m.disp.Active())
	if idx < 0 {
		idx = 0
	} else {
		idx = (idx + delta + len(m.pages)) % len(m.pages)
	}
	m.disp.Handle(events.ActivatedMsg{PageID: m.pages[idx].id})
	m.statusBar.ClearMessage()
}

// closePage closes pageID and focuses its neighbour.
func (m *Model) closePage(pageID string) {
	idx := m.indexOf(pageID)
	if idx < 0 {
		return
	}
	wasActive := m.disp.Active() == pageID
	m.disp.Handle(events.ClosedMsg{PageID: pageID})
	m.pages = append(m.pages[:idx], m.pages[idx+1:]...)

	if wasActive && len(m.pages) > 0 {
		if idx >= len(m.pages) {
			idx = len(m.pages) - 1
		}
		m.disp.Handle(events.ActivatedMsg{PageID: m.pages[idx].id})
	}
	if len(m.pages) == 0 {
		m.showDetail = false
	}
	m.statusBar.ClearMessage()
}

func (m *Model) indexOf(pageID string) int {
	for i, p := range m.pages {
		if p.id == pageID {
			return i
		}
	}
	return -1
}

func (m *Model) activeURL() string {
	if idx := m.indexOf(m.disp.Active()); idx >= 0 {
		return m.pages[idx].url
	}
	return ""
}

// =============================================================================
// DISPLAY STATE
// =============================================================================

// refresh recomputes tabs and badges. The detail panel is recomposed when
// pageID is the focused page or "".
func (m *Model) refresh(pageID string) {
	tabs := make([]components.Tab, 0, len(m.pages))
	for _, p := range m.pages {
		tabs = append(tabs, components.Tab{PageID: p.id, URL: p.url, Badge: m.disp.Badge(p.id)})
	}
	m.header.SetTabs(tabs, m.disp.Active())
	m.statusBar.Badge.SetDescriptor(m.disp.ActiveBadge())

	if m.showDetail && (pageID == "" || pageID == m.disp.Active()) {
		m.refreshDetail()
	}
}

// syncSpinner shows the capture spinner while the focused page loads and
// returns the first tick when it starts.
func (m *Model) syncSpinner() tea.Cmd {
	var cmd tea.Cmd
	if active := m.disp.Active(); active != "" && m.disp.Loading(active) {
		cmd = m.spinner.Start(m.activeURL())
	} else {
		m.spinner.Stop()
	}
	m.statusBar.Activity = m.spinner.View()
	return cmd
}

func (m *Model) refreshDetail() {
	dm, notice := m.disp.OpenDetail()
	m.detail.SetModel(dm, notice)
	m.viewport.SetContent(m.detail.Render())
	m.viewport.GotoTop()
}
