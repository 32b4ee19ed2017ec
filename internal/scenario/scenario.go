// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jeranaias/certbadge/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrUnsupportedFormat = errors.New("unsupported scenario format")
	ErrUnknownEvent      = errors.New("unknown event type")
	ErrUnknownRecord     = errors.New("unknown record")
	ErrMissingPage       = errors.New("event has no page")
	ErrMissingURL        = errors.New("event has no url")
)

// =============================================================================
// TYPES
// =============================================================================

// EventType names a scripted event.
type EventType string

const (
	EventHeaders    EventType = "headers"
	EventNavigate   EventType = "navigate"
	EventActivate   EventType = "activate"
	EventClose      EventType = "close"
	EventOpenDetail EventType = "open_detail"
)

// DefaultStatusLine is used for headers events without a status.
const DefaultStatusLine = "HTTP/1.1 200 OK"

// Step is one scripted event.
type Step struct {
	Type EventType `toml:"type" yaml:"type" json:"type,omitempty"`
	Page string    `toml:"page" yaml:"page" json:"page,omitempty"`
	URL  string    `toml:"url" yaml:"url" json:"url,omitempty"`

	// Request is the request id of a headers event. Empty ids are generated.
	Request string `toml:"request" yaml:"request" json:"request,omitempty"`
	// Record names the record served for this request.
	Record string `toml:"record" yaml:"record" json:"record,omitempty"`
	// Error makes the acquisition for this request fail.
	Error string `toml:"error" yaml:"error" json:"error,omitempty"`
	// Subresource marks a non main-frame response.
	Subresource bool   `toml:"subresource" yaml:"subresource" json:"subresource,omitempty"`
	Status      string `toml:"status" yaml:"status" json:"status,omitempty"`

	// Loading marks a navigate event as started rather than complete.
	Loading bool `toml:"loading" yaml:"loading" json:"loading,omitempty"`
}

// Scenario is a parsed scenario file.
type Scenario struct {
	Name        string `toml:"name" yaml:"name" json:"name,omitempty"`
	Description string `toml:"description" yaml:"description" json:"description,omitempty"`

	Records map[string]model.ConnectionRecord `toml:"records" yaml:"records" json:"records,omitempty"`
	// URLs serves a named record for every request of a URL.
	URLs map[string]string `toml:"urls" yaml:"urls" json:"urls,omitempty"`

	Events []Step `toml:"events" yaml:"events" json:"events,omitempty"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads a scenario file. The format follows the extension:
// .toml, .yaml or .yml.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}

	sc, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return sc, nil
}

// Parse decodes a scenario in the format named by ext and validates it.
func Parse(data []byte, ext string) (*Scenario, error) {
	var sc Scenario
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &sc); err != nil {
			return nil, fmt.Errorf("failed to decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&sc); err != nil {
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Validate checks every event and record reference.
func (sc *Scenario) Validate() error {
	for url, name := range sc.URLs {
		if _, ok := sc.Records[name]; !ok {
			return fmt.Errorf("urls[%s]: %w: %q", url, ErrUnknownRecord, name)
		}
	}

	for i, step := range sc.Events {
		prefix := fmt.Sprintf("events[%d] (%s)", i, step.Type)
		switch step.Type {
		case EventHeaders, EventNavigate:
			if step.URL == "" {
				return fmt.Errorf("%s: %w", prefix, ErrMissingURL)
			}
		case EventActivate, EventClose, EventOpenDetail:
		default:
			return fmt.Errorf("%s: %w", prefix, ErrUnknownEvent)
		}

		if step.Page == "" && step.Type != EventOpenDetail {
			return fmt.Errorf("%s: %w", prefix, ErrMissingPage)
		}
		if step.Record != "" {
			if _, ok := sc.Records[step.Record]; !ok {
				return fmt.Errorf("%s: %w: %q", prefix, ErrUnknownRecord, step.Record)
			}
		}
	}
	return nil
}
