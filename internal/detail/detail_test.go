// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detail

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/certbadge/internal/model"
	"github.com/jeranaias/certbadge/internal/store"
	"github.com/jeranaias/certbadge/internal/trust"
)

// =============================================================================
// DISTINGUISHED NAME TESTS
// =============================================================================

func TestParseDN_QuotedAndEscapedCommas(t *testing.T) {
	attrs := ParseDN(`CN=Example\, Inc.,O="Ex, Corp",C=US`)

	assert.Equal(t, []Attribute{
		{Key: "CN", Value: "Example, Inc."},
		{Key: "O", Value: "Ex, Corp"},
		{Key: "C", Value: "US"},
	}, attrs)
}

func TestParseDN_Whitespace(t *testing.T) {
	attrs := ParseDN(" CN = a.example , O = Org ")
	assert.Equal(t, []Attribute{{"CN", "a.example"}, {"O", "Org"}}, attrs)
}

func TestParseDN_DropsSegmentsWithoutEquals(t *testing.T) {
	attrs := ParseDN("CN=a.example,garbage,O=Org")
	assert.Equal(t, []Attribute{{"CN", "a.example"}, {"O", "Org"}}, attrs)
}

func TestParseDN_KeepsEmptyKey(t *testing.T) {
	attrs := ParseDN("CN=a.example,=novalue")
	assert.Equal(t, []Attribute{{"CN", "a.example"}, {"", "novalue"}}, attrs)
}

func TestParseDN_ValueContainsEquals(t *testing.T) {
	attrs := ParseDN("CN=a=b,O=Org")
	assert.Equal(t, []Attribute{{"CN", "a=b"}, {"O", "Org"}}, attrs)
}

func TestParseDN_Empty(t *testing.T) {
	assert.Empty(t, ParseDN(""))
}

func TestCommonName(t *testing.T) {
	assert.Equal(t, "www.example.com", CommonName("CN=www.example.com,O=Example"))
	assert.Equal(t, "Ex, Corp", CommonName(`O=Org,CN="Ex, Corp"`))
	assert.Equal(t, FallbackLabel, CommonName("O=No CN Here"))
	assert.Equal(t, FallbackLabel, CommonName(""))
}

// =============================================================================
// COMPOSE TESTS
// =============================================================================

func fullRecord() model.ConnectionRecord {
	return model.ConnectionRecord{
		ProtocolVersion:    "TLSv1.3",
		CipherSuite:        "TLS_AES_128_GCM_SHA256",
		SecretKeyLength:    128,
		KeyExchangeGroup:   "x25519",
		SignatureScheme:    "ecdsa_secp256r1_sha256",
		RawState:           model.StateSecure,
		HSTS:               model.Bool(true),
		ExtendedValidation: model.Bool(false),
		UsedEncryptedHello: model.Bool(false),
		UsedPrivateDNS:     model.Bool(true),

		CertificateTransparencyStatus: "policy_compliant",
		Certificates: []model.Certificate{
			{
				Subject:      "CN=a.example",
				Issuer:       "CN=Example CA,O=Example Trust,C=US",
				Validity:     model.Validity{NotBefore: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), NotAfter: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)},
				SerialNumber: "01:02",
				Fingerprint:  model.Fingerprint{SHA256: "AA:BB", SHA1: "CC:DD"},
			},
			{Subject: "O=Example Trust,C=US", Issuer: "O=Example Trust,C=US"},
		},
	}
}

func TestCompose_ConnectionRowsOrder(t *testing.T) {
	rec := fullRecord()
	m := Compose(model.PageSecurityEntry{PageID: "1", Record: &rec, OriginURL: "https://a.example/"})

	assert.Equal(t, trust.LevelSecure, m.Level)
	assert.Empty(t, m.Reason)

	labels := make([]string, 0, len(m.Connection))
	for _, r := range m.Connection {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{
		"Protocol", "Cipher Suite", "Key Exchange", "Signature",
		"Encrypted Client Hello", "Private DNS", "HSTS Active", "EV Cert", "Transparency",
	}, labels)

	assert.Equal(t, "TLS_AES_128_GCM_SHA256 (128 bit keys)", m.Connection[1].Value)
	assert.Equal(t, "No", m.Connection[4].Value)
	assert.Equal(t, "Yes", m.Connection[6].Value)
	assert.Equal(t, "Policy Compliant", m.Connection[8].Value)
}

func TestCompose_OmitsAbsentAttributes(t *testing.T) {
	rec := model.ConnectionRecord{
		RawState:     model.StateSecure,
		CipherSuite:  "TLS_AES_256_GCM_SHA384",
		Certificates: []model.Certificate{{Subject: "CN=a"}},
	}
	rows := ConnectionRows(rec)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{Label: "Cipher Suite", Value: "TLS_AES_256_GCM_SHA384"}, rows[0])
}

func TestCompose_Certificates(t *testing.T) {
	rec := fullRecord()
	m := Compose(model.PageSecurityEntry{Record: &rec})

	require.Len(t, m.Certificates, 2)
	assert.Equal(t, "a.example", m.Certificates[0].Label)
	assert.True(t, m.Certificates[0].Expanded)
	assert.Equal(t, FallbackLabel, m.Certificates[1].Label)
	assert.False(t, m.Certificates[1].Expanded)
	assert.Len(t, m.Certificates[0].Issuer, 3)
	assert.Equal(t, "AA:BB", m.Certificates[0].SHA256)
}

func TestCompose_Reasons(t *testing.T) {
	tests := []struct {
		name   string
		rec    model.ConnectionRecord
		level  trust.Level
		reason string
	}{
		{"insecure", model.ConnectionRecord{RawState: model.StateInsecure}, trust.LevelInsecure, trust.ReasonInsecure},
		{"broken", model.ConnectionRecord{RawState: model.StateSecure}, trust.LevelBroken, trust.ReasonBroken},
		{
			"cipher weak",
			model.ConnectionRecord{RawState: model.StateSecure, CipherSuite: "TLS_ECDHE_RSA_WITH_RC4_128_SHA", Certificates: []model.Certificate{{}}},
			trust.LevelWeak, string(trust.WeaknessRC4),
		},
		{
			"state weak",
			model.ConnectionRecord{RawState: model.StateWeak, Certificates: []model.Certificate{{}}},
			trust.LevelWeak, trust.ReasonWeak,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.rec
			m := Compose(model.PageSecurityEntry{Record: &rec})
			assert.Equal(t, tt.level, m.Level)
			assert.Equal(t, tt.reason, m.Reason)
		})
	}
}

func TestCompose_NoRecord(t *testing.T) {
	m := Compose(model.PageSecurityEntry{PageID: "1"})
	assert.Equal(t, trust.LevelInsecure, m.Level)
	assert.Empty(t, m.Connection)
	assert.Empty(t, m.Certificates)
}

func TestTransparencyStatus(t *testing.T) {
	assert.Equal(t, "Policy Not Enough Scts", TransparencyStatus("policy_not_enough_scts"))
	assert.Equal(t, "Not Applicable", TransparencyStatus("not_applicable"))
	assert.Equal(t, "", TransparencyStatus(""))
}

// =============================================================================
// OPEN TESTS
// =============================================================================

func TestOpen_StaleCaptureShowsNotice(t *testing.T) {
	st := store.New()
	st.Begin("tab", "r1", "https://a.example/")
	rec := model.ConnectionRecord{
		RawState:     model.StateSecure,
		CipherSuite:  "TLS_AES_256_GCM_SHA384",
		Certificates: []model.Certificate{{Subject: "CN=a.example"}},
	}
	require.True(t, st.CaptureRequest("tab", "r1", rec, "", "https://a.example/"))

	m, notice := Open(st, "tab", "https://a.example/")
	assert.Equal(t, NoticeNone, notice)
	assert.Equal(t, trust.LevelSecure, m.Level)
	assert.Equal(t, "a.example", m.Certificates[0].Label)

	_, notice = Open(st, "tab", "https://b.example/")
	assert.Equal(t, NoticeNotCaptured, notice)
}

func TestOpen_Notices(t *testing.T) {
	st := store.New()

	_, notice := Open(st, "", "https://a.example/")
	assert.Equal(t, NoticeNoPage, notice)

	_, notice = Open(st, "1", "http://a.example/")
	assert.Equal(t, NoticeNotHTTPS, notice)

	_, notice = Open(st, "1", "https://a.example/")
	assert.Equal(t, NoticeNotCaptured, notice)
}

// =============================================================================
// MARKDOWN TESTS
// =============================================================================

func TestMarkdown(t *testing.T) {
	rec := fullRecord()
	rec.CipherSuite = "TLS_RSA_WITH_AES_128_CBC_SHA"
	m := Compose(model.PageSecurityEntry{Record: &rec, OriginURL: "https://a.example/", HTTPStatusLine: "HTTP/2 200"})

	md := Markdown(m)
	assert.True(t, strings.HasPrefix(md, "# https://a.example/"))
	assert.Contains(t, md, "**Trust:** Weak - lacks forward secrecy")
	assert.Contains(t, md, "| HSTS Active | Yes |")
	assert.Contains(t, md, "### a.example")
	assert.Contains(t, md, "- **Not After:** 2026-12-31")
	assert.Contains(t, md, "- **Not Before:** N/A")
}
