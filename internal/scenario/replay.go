// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scenario

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/jeranaias/certbadge/internal/detail"
	"github.com/jeranaias/certbadge/internal/events"
	"github.com/jeranaias/certbadge/internal/icon"
	"github.com/jeranaias/certbadge/internal/provider"
	"github.com/jeranaias/certbadge/internal/store"
)

// Result is the observable state after one replayed event.
type Result struct {
	Index  int             `json:"index"`
	Step   Step            `json:"step"`
	Active string          `json:"active,omitempty"`
	Pages  []string        `json:"pages"`
	Badge  icon.Descriptor `json:"badge"`

	// Detail and Notice are set for open_detail events only.
	Detail *detail.Model `json:"detail,omitempty"`
	Notice detail.Notice `json:"notice,omitempty"`
}

// Opened reports whether the step opened a detail view with content.
func (r Result) Opened() bool {
	return r.Detail != nil && r.Notice == detail.NoticeNone
}

// Replayer feeds a scenario through a dispatcher.
type Replayer struct {
	sc     *Scenario
	static *provider.Static
	disp   *events.Dispatcher
}

// NewReplayer prepares sc for replay against st. Pass a fresh store.
func NewReplayer(sc *Scenario, st *store.Store, renderer *icon.Renderer) *Replayer {
	static := provider.NewStatic()
	for url, name := range sc.URLs {
		static.SetURL(url, sc.Records[name])
	}
	return &Replayer{
		sc:     sc,
		static: static,
		disp:   events.NewDispatcher(st, static, renderer, events.WithContext(context.Background())),
	}
}

// Dispatcher returns the dispatcher the scenario runs on.
func (r *Replayer) Dispatcher() *events.Dispatcher {
	return r.disp
}

// Run replays every event and returns one result per event. fn, when not
// nil, is called after each event.
func (r *Replayer) Run(fn func(Result)) ([]Result, error) {
	results := make([]Result, 0, len(r.sc.Events))
	for i, step := range r.sc.Events {
		res, err := r.Step(i, step)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		if fn != nil {
			fn(res)
		}
	}
	return results, nil
}

// Step replays a single event.
func (r *Replayer) Step(i int, step Step) (Result, error) {
	switch step.Type {
	case EventHeaders:
		if step.Request == "" {
			step.Request = uuid.New().String()
		}
		if step.Status == "" {
			step.Status = DefaultStatusLine
		}
		switch {
		case step.Error != "":
			r.static.FailRequest(step.Request, errors.New(step.Error))
		case step.Record != "":
			r.static.SetRequest(step.Request, r.sc.Records[step.Record])
		}
		r.disp.Dispatch(events.HeadersReceivedMsg{
			RequestID:  step.Request,
			PageID:     step.Page,
			MainFrame:  !step.Subresource,
			URL:        step.URL,
			StatusLine: step.Status,
		})

	case EventNavigate:
		state := events.NavigationComplete
		if step.Loading {
			state = events.NavigationLoading
		}
		r.disp.Dispatch(events.NavigationMsg{PageID: step.Page, URL: step.URL, State: state})

	case EventActivate:
		r.disp.Dispatch(events.ActivatedMsg{PageID: step.Page})

	case EventClose:
		r.disp.Dispatch(events.ClosedMsg{PageID: step.Page})

	case EventOpenDetail:

	default:
		return Result{}, fmt.Errorf("events[%d]: %w: %q", i, ErrUnknownEvent, step.Type)
	}

	page := step.Page
	if page == "" {
		page = r.disp.Active()
	}
	res := Result{
		Index:  i,
		Step:   step,
		Active: r.disp.Active(),
		Pages:  r.disp.Store().Pages(),
		Badge:  r.disp.Badge(page),
	}
	if step.Type == EventOpenDetail {
		m, notice := r.disp.OpenDetailFor(page)
		res.Detail = &m
		res.Notice = notice
	}

	level := "default"
	if !res.Badge.Default {
		level = res.Badge.Level.String()
	}
	log.Printf("REPLAY | step=%d type=%s page=%s badge=%s", i, step.Type, page, level)
	return res, nil
}
