// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package events

import (
	"context"

	"github.com/jeranaias/certbadge/internal/model"
)

// =============================================================================
// PLATFORM EVENTS
// =============================================================================

// HeadersReceivedMsg is sent when response headers arrive for a request.
// Only main document loads (MainFrame) are captured.
type HeadersReceivedMsg struct {
	RequestID  string
	PageID     string
	MainFrame  bool
	URL        string
	StatusLine string
}

// NavigationState is the loading state of a page.
type NavigationState int

const (
	NavigationLoading NavigationState = iota
	NavigationComplete
)

// String returns the state name.
func (s NavigationState) String() string {
	if s == NavigationComplete {
		return "complete"
	}
	return "loading"
}

// NavigationMsg is sent when a page starts or finishes loading, or changes
// URL without a new document load.
type NavigationMsg struct {
	PageID string
	URL    string
	State  NavigationState
}

// ActivatedMsg is sent when the user switches focus to a page.
type ActivatedMsg struct {
	PageID string
}

// ClosedMsg is sent when a page is closed.
type ClosedMsg struct {
	PageID string
}

// =============================================================================
// ACQUISITION RESULTS
// =============================================================================

// AcquiredMsg carries a successfully acquired record.
type AcquiredMsg struct {
	PageID     string
	RequestID  string
	URL        string
	StatusLine string
	Record     model.ConnectionRecord
}

// AcquireFailedMsg reports a failed acquisition.
type AcquireFailedMsg struct {
	PageID    string
	RequestID string
	URL       string
	Err       error
}

// =============================================================================
// PROVIDER
// =============================================================================

// Request identifies the load whose handshake data is wanted.
type Request struct {
	ID     string
	PageID string
	URL    string
}

// Provider acquires handshake data for a request.
type Provider interface {
	Acquire(ctx context.Context, req Request) (model.ConnectionRecord, error)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context, req Request) (model.ConnectionRecord, error)

// Acquire calls f.
func (f ProviderFunc) Acquire(ctx context.Context, req Request) (model.ConnectionRecord, error) {
	return f(ctx, req)
}
