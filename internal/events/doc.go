// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package events routes page lifecycle events to the record store.
//
// Every platform event is a Bubble Tea message. The Dispatcher handles one
// message at a time; the only suspension point is handshake acquisition,
// which Handle returns as a tea.Cmd whose completion comes back as an
// AcquiredMsg or AcquireFailedMsg.
//
// # Key Types
//
//   - HeadersReceivedMsg: Response headers arrived for a request
//   - NavigationMsg: A page started or finished loading, or changed URL
//   - ActivatedMsg: The user switched to a page
//   - ClosedMsg: A page was closed
//   - Dispatcher: Applies messages to the store
//   - Provider: Source of ConnectionRecords
//
// # Usage
//
// Inside a Bubble Tea program, forward messages from Update:
//
//	cmd := dispatcher.Handle(msg)
//
// Outside of one, Dispatch runs returned commands inline:
//
//	dispatcher.Dispatch(events.HeadersReceivedMsg{PageID: "1", MainFrame: true, URL: u})
package events
