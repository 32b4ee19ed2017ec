// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jeranaias/certbadge/internal/events"
	"github.com/jeranaias/certbadge/internal/model"
)

// ErrNotFound is returned when Static has nothing for a request.
var ErrNotFound = errors.New("no security info for request")

type result struct {
	rec model.ConnectionRecord
	err error
}

// Static serves preconfigured results, looked up by request id first and
// then by URL.
type Static struct {
	mu        sync.RWMutex
	byRequest map[string]result
	byURL     map[string]result
}

// NewStatic creates an empty static provider.
func NewStatic() *Static {
	return &Static{
		byRequest: make(map[string]result),
		byURL:     make(map[string]result),
	}
}

// SetURL serves rec for every request of url.
func (s *Static) SetURL(url string, rec model.ConnectionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byURL[url] = result{rec: rec.Clone()}
}

// SetRequest serves rec for requestID.
func (s *Static) SetRequest(requestID string, rec model.ConnectionRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byRequest[requestID] = result{rec: rec.Clone()}
}

// FailRequest makes requestID fail with err.
func (s *Static) FailRequest(requestID string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byRequest[requestID] = result{err: err}
}

// FailURL makes every request of url fail with err.
func (s *Static) FailURL(url string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byURL[url] = result{err: err}
}

// Acquire implements events.Provider.
func (s *Static) Acquire(ctx context.Context, req events.Request) (model.ConnectionRecord, error) {
	if err := ctx.Err(); err != nil {
		return model.ConnectionRecord{}, err
	}

	s.mu.RLock()
	r, ok := s.byRequest[req.ID]
	if !ok {
		r, ok = s.byURL[req.URL]
	}
	s.mu.RUnlock()

	if !ok {
		return model.ConnectionRecord{}, fmt.Errorf("%w: %s", ErrNotFound, req.URL)
	}
	if r.err != nil {
		return model.ConnectionRecord{}, r.err
	}
	return r.rec.Clone(), nil
}
