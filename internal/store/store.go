// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"sort"
	"sync"
	"time"

	"github.com/jeranaias/certbadge/internal/model"
)

// =============================================================================
// LIFECYCLE EVENTS
// =============================================================================

// EventKind identifies a store lifecycle change.
type EventKind string

const (
	EventCaptured  EventKind = "capture"
	EventFailed    EventKind = "capture_failed"
	EventDiscarded EventKind = "discarded"
	EventEvicted   EventKind = "evict"
)

// Event describes a change applied to (or rejected by) the store.
type Event struct {
	Kind      EventKind
	PageID    string
	RequestID string
	URL       string
	Entry     *model.PageSecurityEntry
	Err       error
}

// Observer is notified after every lifecycle change. It is called outside
// the store lock.
type Observer func(Event)

// =============================================================================
// STORE
// =============================================================================

// page tracks an open page and the acquisition it is waiting on.
type page struct {
	requestID string
	url       string
}

// Store is the per-page security record cache.
type Store struct {
	mu sync.Mutex

	entries map[string]model.PageSecurityEntry
	pages   map[string]*page

	observer Observer
	now      func() time.Time
}

// New creates an empty store.
func New() *Store {
	return &Store{
		entries: make(map[string]model.PageSecurityEntry),
		pages:   make(map[string]*page),
		now:     time.Now,
	}
}

// SetObserver installs the lifecycle observer. Pass nil to remove it.
func (s *Store) SetObserver(fn Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observer = fn
}

// =============================================================================
// PAGE TRACKING
// =============================================================================

// Track registers pageID as an open page. Captures for untracked pages are
// discarded.
func (s *Store) Track(pageID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pages[pageID]; !ok {
		s.pages[pageID] = &page{}
	}
}

// Tracked reports whether pageID is an open page.
func (s *Store) Tracked(pageID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pages[pageID]
	return ok
}

// Pages returns the ids of all open pages in sorted order.
func (s *Store) Pages() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.pages))
	for id := range s.pages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Begin records that pageID started a main document load for url and is
// now waiting on requestID. Results of earlier requests for the page are
// rejected from now on.
func (s *Store) Begin(pageID, requestID, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[pageID] = &page{requestID: requestID, url: url}
}

// Navigate records that pageID now shows url without a new main document
// load (for example a client side route change). The stored entry is left
// untouched; IsFresh decides whether it still applies. Navigation of an
// untracked page is ignored and reported as false.
func (s *Store) Navigate(pageID, url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[pageID]
	if !ok {
		return false
	}
	p.url = url
	return true
}

// CurrentURL returns the last URL seen for pageID.
func (s *Store) CurrentURL(pageID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[pageID]
	if !ok || p.url == "" {
		return "", false
	}
	return p.url, true
}

// Pending returns the request pageID is waiting on.
func (s *Store) Pending(pageID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pages[pageID]
	if !ok || p.requestID == "" {
		return "", false
	}
	return p.requestID, true
}

// =============================================================================
// CAPTURE
// =============================================================================

// Capture replaces the entry for pageID with a new one built from rec.
// Nothing is merged from the previous entry. The capture is dropped, and
// false returned, when the page is not tracked.
func (s *Store) Capture(pageID string, rec model.ConnectionRecord, statusLine, originURL string) bool {
	return s.capture(pageID, "", rec, statusLine, originURL)
}

// CaptureRequest is Capture for the result of requestID. It is dropped
// when the page was closed or a newer request was begun for it.
func (s *Store) CaptureRequest(pageID, requestID string, rec model.ConnectionRecord, statusLine, originURL string) bool {
	return s.capture(pageID, requestID, rec, statusLine, originURL)
}

func (s *Store) capture(pageID, requestID string, rec model.ConnectionRecord, statusLine, originURL string) bool {
	s.mu.Lock()
	if !s.acceptsLocked(pageID, requestID) {
		obs := s.observer
		s.mu.Unlock()
		notify(obs, Event{Kind: EventDiscarded, PageID: pageID, RequestID: requestID, URL: originURL})
		return false
	}

	r := rec.Clone()
	entry := model.PageSecurityEntry{
		PageID:         pageID,
		Record:         &r,
		HTTPStatusLine: statusLine,
		OriginURL:      originURL,
		CapturedAt:     s.now(),
	}
	s.entries[pageID] = entry
	obs := s.observer
	s.mu.Unlock()

	snapshot := entry.Clone()
	notify(obs, Event{Kind: EventCaptured, PageID: pageID, RequestID: requestID, URL: originURL, Entry: &snapshot})
	return true
}

// CaptureFailed removes any entry for pageID so a failed acquisition never
// leaves a stale record behind. It is a no-op when there is no entry.
func (s *Store) CaptureFailed(pageID string) {
	s.fail(pageID, "", nil)
}

// FailRequest is CaptureFailed for the failure of requestID. It is ignored
// when the page was closed or a newer request was begun for it. cause is
// passed on to the observer.
func (s *Store) FailRequest(pageID, requestID string, cause error) bool {
	return s.fail(pageID, requestID, cause)
}

func (s *Store) fail(pageID, requestID string, cause error) bool {
	s.mu.Lock()
	var url string
	if p, ok := s.pages[pageID]; ok {
		url = p.url
	}
	if requestID != "" && !s.acceptsLocked(pageID, requestID) {
		obs := s.observer
		s.mu.Unlock()
		notify(obs, Event{Kind: EventDiscarded, PageID: pageID, RequestID: requestID, URL: url, Err: cause})
		return false
	}
	delete(s.entries, pageID)
	obs := s.observer
	s.mu.Unlock()

	notify(obs, Event{Kind: EventFailed, PageID: pageID, RequestID: requestID, URL: url, Err: cause})
	return true
}

// acceptsLocked reports whether a result for requestID may be applied to
// pageID. An empty requestID only requires the page to be open.
func (s *Store) acceptsLocked(pageID, requestID string) bool {
	p, ok := s.pages[pageID]
	if !ok {
		return false
	}
	return requestID == "" || p.requestID == requestID
}

// =============================================================================
// QUERIES
// =============================================================================

// Get returns a copy of the entry for pageID.
func (s *Store) Get(pageID string) (model.PageSecurityEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[pageID]
	if !ok {
		return model.PageSecurityEntry{}, false
	}
	return entry.Clone(), true
}

// IsFresh reports whether pageID has a captured record whose origin
// matches currentURL.
func (s *Store) IsFresh(pageID, currentURL string) bool {
	s.mu.Lock()
	entry, ok := s.entries[pageID]
	s.mu.Unlock()

	if !ok || !entry.HasRecord() {
		return false
	}
	return SameOrigin(entry.OriginURL, currentURL)
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// =============================================================================
// EVICTION
// =============================================================================

// Evict forgets pageID entirely. Evicting an unknown page is a no-op.
func (s *Store) Evict(pageID string) {
	s.mu.Lock()
	_, hadEntry := s.entries[pageID]
	_, hadPage := s.pages[pageID]
	delete(s.entries, pageID)
	delete(s.pages, pageID)
	obs := s.observer
	s.mu.Unlock()

	if hadEntry || hadPage {
		notify(obs, Event{Kind: EventEvicted, PageID: pageID})
	}
}

func notify(obs Observer, ev Event) {
	if obs != nil {
		obs(ev)
	}
}
