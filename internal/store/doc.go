// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store keeps the captured connection record of every open page.
//
// One Store is built per process and handed to whoever needs it. It keeps
// at most one entry per page id; entries are replaced whole on each main
// document capture, removed when a capture fails and removed when the page
// closes.
//
// # Key Types
//
//   - Store: Page id keyed record cache with lifecycle methods
//   - Event: Lifecycle notification passed to an optional observer
//
// # Late Results
//
// Handshake data arrives asynchronously. A page may have been closed or
// navigated again by the time it lands, so the store remembers the request
// each page is waiting on:
//
//	st := store.New()
//	st.Begin("tab-1", "req-7", "https://a.example/")
//	// ... later, from the acquisition callback
//	st.CaptureRequest("tab-1", "req-7", rec, "HTTP/1.1 200 OK", "https://a.example/")
//
// Results for closed pages or superseded requests are dropped silently.
//
// # Staleness
//
// IsFresh compares origins (scheme, host, port) so a record captured for
// one site is never shown for another site later loaded in the same page.
package store
