// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for captured TLS connections.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownState is returned when a raw state token is not recognized.
var ErrUnknownState = errors.New("unknown connection state")

// =============================================================================
// RAW STATE
// =============================================================================

// RawState is the platform's coarse judgment of a connection.
type RawState int

const (
	StateInsecure RawState = iota
	StateSecure
	StateWeak
	StateBroken
)

// String returns the lowercase token used by the platform.
func (s RawState) String() string {
	switch s {
	case StateSecure:
		return "secure"
	case StateWeak:
		return "weak"
	case StateBroken:
		return "broken"
	default:
		return "insecure"
	}
}

// ParseRawState parses a state token case-insensitively.
func ParseRawState(s string) (RawState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "secure":
		return StateSecure, nil
	case "weak":
		return StateWeak, nil
	case "broken":
		return StateBroken, nil
	case "insecure":
		return StateInsecure, nil
	default:
		return StateInsecure, fmt.Errorf("%w: %q", ErrUnknownState, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s RawState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler so records can be
// decoded from TOML, YAML and JSON scenario files.
func (s *RawState) UnmarshalText(text []byte) error {
	parsed, err := ParseRawState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// =============================================================================
// CERTIFICATE
// =============================================================================

// Validity is the certificate's period of validity.
type Validity struct {
	NotBefore time.Time `json:"not_before" toml:"not_before" yaml:"not_before"`
	NotAfter  time.Time `json:"not_after" toml:"not_after" yaml:"not_after"`
}

// Fingerprint holds hex encoded certificate digests.
type Fingerprint struct {
	SHA256 string `json:"sha256" toml:"sha256" yaml:"sha256"`
	SHA1   string `json:"sha1" toml:"sha1" yaml:"sha1"`
}

// Certificate is a single entry of a certificate chain.
type Certificate struct {
	Subject      string      `json:"subject" toml:"subject" yaml:"subject"`
	Issuer       string      `json:"issuer" toml:"issuer" yaml:"issuer"`
	Validity     Validity    `json:"validity" toml:"validity" yaml:"validity"`
	SerialNumber string      `json:"serial_number" toml:"serial_number" yaml:"serial_number"`
	Fingerprint  Fingerprint `json:"fingerprint" toml:"fingerprint" yaml:"fingerprint"`
}

// =============================================================================
// CONNECTION RECORD
// =============================================================================

// ConnectionRecord is the raw handshake data captured for a main document
// load. Empty strings, a zero key length and nil booleans mean "absent".
type ConnectionRecord struct {
	ProtocolVersion  string `json:"protocol_version,omitempty" toml:"protocol_version" yaml:"protocol_version"`
	CipherSuite      string `json:"cipher_suite,omitempty" toml:"cipher_suite" yaml:"cipher_suite"`
	SecretKeyLength  int    `json:"secret_key_length,omitempty" toml:"secret_key_length" yaml:"secret_key_length"`
	KeyExchangeGroup string `json:"key_exchange_group,omitempty" toml:"key_exchange_group" yaml:"key_exchange_group"`
	SignatureScheme  string `json:"signature_scheme,omitempty" toml:"signature_scheme" yaml:"signature_scheme"`

	RawState     RawState      `json:"state" toml:"state" yaml:"state"`
	Certificates []Certificate `json:"certificates" toml:"certificates" yaml:"certificates"`

	HSTS               *bool `json:"hsts,omitempty" toml:"hsts" yaml:"hsts"`
	ExtendedValidation *bool `json:"extended_validation,omitempty" toml:"extended_validation" yaml:"extended_validation"`
	UsedEncryptedHello *bool `json:"used_ech,omitempty" toml:"used_ech" yaml:"used_ech"`
	UsedPrivateDNS     *bool `json:"used_private_dns,omitempty" toml:"used_private_dns" yaml:"used_private_dns"`

	CertificateTransparencyStatus string `json:"certificate_transparency_status,omitempty" toml:"certificate_transparency_status" yaml:"certificate_transparency_status"`
}

// Clone returns a deep copy of the record.
func (r ConnectionRecord) Clone() ConnectionRecord {
	out := r
	if r.Certificates != nil {
		out.Certificates = make([]Certificate, len(r.Certificates))
		copy(out.Certificates, r.Certificates)
	}
	out.HSTS = cloneBool(r.HSTS)
	out.ExtendedValidation = cloneBool(r.ExtendedValidation)
	out.UsedEncryptedHello = cloneBool(r.UsedEncryptedHello)
	out.UsedPrivateDNS = cloneBool(r.UsedPrivateDNS)
	return out
}

// Leaf returns the first certificate of the chain, if any.
func (r ConnectionRecord) Leaf() (Certificate, bool) {
	if len(r.Certificates) == 0 {
		return Certificate{}, false
	}
	return r.Certificates[0], true
}

// Bool returns a pointer to b, for populating optional flags.
func Bool(b bool) *bool {
	return &b
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

// =============================================================================
// PAGE SECURITY ENTRY
// =============================================================================

// PageSecurityEntry is the record store's per-page value.
type PageSecurityEntry struct {
	PageID         string            `json:"page_id"`
	Record         *ConnectionRecord `json:"record,omitempty"`
	HTTPStatusLine string            `json:"http_status_line,omitempty"`
	OriginURL      string            `json:"origin_url"`
	CapturedAt     time.Time         `json:"captured_at"`
}

// HasRecord reports whether a connection record was captured.
func (e PageSecurityEntry) HasRecord() bool {
	return e.Record != nil
}

// Clone returns a deep copy of the entry.
func (e PageSecurityEntry) Clone() PageSecurityEntry {
	out := e
	if e.Record != nil {
		rec := e.Record.Clone()
		out.Record = &rec
	}
	return out
}
