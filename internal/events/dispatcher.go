// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package events

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/jeranaias/certbadge/internal/detail"
	"github.com/jeranaias/certbadge/internal/icon"
	"github.com/jeranaias/certbadge/internal/store"
	"github.com/jeranaias/certbadge/internal/trust"
)

// =============================================================================
// DISPATCHER
// =============================================================================

// Dispatcher applies page events to a Store and answers badge and detail
// queries for the pages it knows about.
type Dispatcher struct {
	store    *store.Store
	provider Provider
	renderer *icon.Renderer

	ctx     context.Context
	timeout time.Duration

	active  string
	loading map[string]bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTimeout bounds each acquisition. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(disp *Dispatcher) { disp.timeout = d }
}

// WithContext sets the parent context of acquisitions.
func WithContext(ctx context.Context) Option {
	return func(disp *Dispatcher) { disp.ctx = ctx }
}

// NewDispatcher creates a dispatcher around st.
func NewDispatcher(st *store.Store, provider Provider, renderer *icon.Renderer, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		store:    st,
		provider: provider,
		renderer: renderer,
		ctx:      context.Background(),
		loading:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Store returns the dispatcher's store.
func (d *Dispatcher) Store() *store.Store {
	return d.store
}

// Active returns the focused page id, or "".
func (d *Dispatcher) Active() string {
	return d.active
}

// Loading reports whether pageID is between a navigation start and the
// outcome of its capture.
func (d *Dispatcher) Loading(pageID string) bool {
	return d.loading[pageID]
}

// Handle applies msg and returns the follow-up command, if any. Messages
// of other types are ignored.
func (d *Dispatcher) Handle(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case HeadersReceivedMsg:
		return d.headersReceived(msg)

	case AcquiredMsg:
		// Only the result of the pending request ends the load.
		if d.store.CaptureRequest(msg.PageID, msg.RequestID, msg.Record, msg.StatusLine, msg.URL) {
			delete(d.loading, msg.PageID)
			log.Printf("CAPTURE | page=%s request=%s url=%s level=%s", msg.PageID, msg.RequestID, msg.URL, trust.Classify(msg.Record))
		} else {
			log.Printf("CAPTURE_DISCARDED | page=%s request=%s url=%s", msg.PageID, msg.RequestID, msg.URL)
		}

	case AcquireFailedMsg:
		log.Printf("ACQUIRE_ERROR | page=%s request=%s url=%s error=%v", msg.PageID, msg.RequestID, msg.URL, msg.Err)
		if d.store.FailRequest(msg.PageID, msg.RequestID, msg.Err) {
			delete(d.loading, msg.PageID)
		}

	case NavigationMsg:
		if !d.store.Navigate(msg.PageID, msg.URL) {
			log.Printf("NAVIGATION_IGNORED | page=%s url=%s", msg.PageID, msg.URL)
			break
		}
		d.loading[msg.PageID] = msg.State == NavigationLoading

	case ActivatedMsg:
		d.store.Track(msg.PageID)
		d.active = msg.PageID

	case ClosedMsg:
		d.store.Evict(msg.PageID)
		delete(d.loading, msg.PageID)
		if d.active == msg.PageID {
			d.active = ""
		}
		log.Printf("EVICT | page=%s", msg.PageID)
	}
	return nil
}

func (d *Dispatcher) headersReceived(msg HeadersReceivedMsg) tea.Cmd {
	if !msg.MainFrame {
		return nil
	}
	if msg.RequestID == "" {
		msg.RequestID = uuid.New().String()
	}

	d.store.Begin(msg.PageID, msg.RequestID, msg.URL)
	req := Request{ID: msg.RequestID, PageID: msg.PageID, URL: msg.URL}
	return d.acquire(req, msg.StatusLine)
}

// acquire returns the command that fetches handshake data for req.
func (d *Dispatcher) acquire(req Request, statusLine string) tea.Cmd {
	provider := d.provider
	parent := d.ctx
	timeout := d.timeout

	return func() tea.Msg {
		ctx := parent
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(parent, timeout)
			defer cancel()
		}

		rec, err := provider.Acquire(ctx, req)
		if err != nil {
			return AcquireFailedMsg{PageID: req.PageID, RequestID: req.ID, URL: req.URL, Err: err}
		}
		return AcquiredMsg{PageID: req.PageID, RequestID: req.ID, URL: req.URL, StatusLine: statusLine, Record: rec}
	}
}

// Dispatch handles msg and runs every resulting command inline until the
// event settles. Use it where no Bubble Tea program drives the loop.
func (d *Dispatcher) Dispatch(msg tea.Msg) {
	queue := []tea.Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if batch, ok := next.(tea.BatchMsg); ok {
			for _, cmd := range batch {
				if cmd != nil {
					queue = append(queue, cmd())
				}
			}
			continue
		}
		if cmd := d.Handle(next); cmd != nil {
			queue = append(queue, cmd())
		}
	}
}

// =============================================================================
// QUERIES
// =============================================================================

// Level returns the trust level to display for pageID. It reports false
// while the page is loading, before anything is captured, and when the
// capture belongs to a different origin than the page now shows.
func (d *Dispatcher) Level(pageID string) (trust.Level, bool) {
	if pageID == "" || d.loading[pageID] {
		return trust.LevelInsecure, false
	}

	entry, ok := d.store.Get(pageID)
	if !ok || !entry.HasRecord() {
		return trust.LevelInsecure, false
	}

	current, ok := d.store.CurrentURL(pageID)
	if !ok {
		current = entry.OriginURL
	}
	if !d.store.IsFresh(pageID, current) {
		return trust.LevelInsecure, false
	}
	return trust.Classify(*entry.Record), true
}

// Badge returns the badge for pageID.
func (d *Dispatcher) Badge(pageID string) icon.Descriptor {
	level, ok := d.Level(pageID)
	return d.renderer.Render(level, ok)
}

// ActiveBadge returns the badge for the focused page.
func (d *Dispatcher) ActiveBadge() icon.Descriptor {
	return d.Badge(d.active)
}

// OpenDetail composes the detail view of the focused page.
func (d *Dispatcher) OpenDetail() (detail.Model, detail.Notice) {
	return d.OpenDetailFor(d.active)
}

// OpenDetailFor composes the detail view of pageID at its current URL.
func (d *Dispatcher) OpenDetailFor(pageID string) (detail.Model, detail.Notice) {
	current, _ := d.store.CurrentURL(pageID)
	return detail.Open(d.store, pageID, current)
}
