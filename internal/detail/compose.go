// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detail

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jeranaias/certbadge/internal/model"
	"github.com/jeranaias/certbadge/internal/trust"
)

// =============================================================================
// DETAIL MODEL
// =============================================================================

// Row is a labeled connection attribute.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// CertificateView is one certificate of the chain, ready for display.
type CertificateView struct {
	Label    string      `json:"label"`
	Expanded bool        `json:"expanded"`
	Subject  []Attribute `json:"subject"`
	Issuer   []Attribute `json:"issuer"`

	NotBefore time.Time `json:"not_before"`
	NotAfter  time.Time `json:"not_after"`

	SerialNumber string `json:"serial_number"`
	SHA256       string `json:"sha256"`
	SHA1         string `json:"sha1"`
}

// Model is the complete inspection view of a page.
type Model struct {
	PageID     string `json:"page_id"`
	URL        string `json:"url"`
	StatusLine string `json:"status_line,omitempty"`

	Level  trust.Level `json:"level"`
	Reason string      `json:"reason,omitempty"`

	Connection   []Row             `json:"connection"`
	Certificates []CertificateView `json:"certificates"`
}

// =============================================================================
// COMPOSITION
// =============================================================================

// Compose builds the inspection model for entry. An entry without a record
// yields an Insecure model with no rows.
func Compose(entry model.PageSecurityEntry) Model {
	m := Model{
		PageID:     entry.PageID,
		URL:        entry.OriginURL,
		StatusLine: entry.HTTPStatusLine,
		Level:      trust.LevelInsecure,
		Reason:     trust.ReasonInsecure,
	}
	if entry.Record == nil {
		return m
	}

	rec := *entry.Record
	a := trust.Assess(rec)
	m.Level = a.Level
	m.Reason = a.Reason
	m.Connection = ConnectionRows(rec)

	m.Certificates = make([]CertificateView, 0, len(rec.Certificates))
	for i, cert := range rec.Certificates {
		m.Certificates = append(m.Certificates, certificateView(cert, i == 0))
	}
	return m
}

// ConnectionRows lists the record's connection attributes in display
// order. Attributes with no value are omitted.
func ConnectionRows(rec model.ConnectionRecord) []Row {
	var rows []Row
	add := func(label, value string) {
		if value != "" {
			rows = append(rows, Row{Label: label, Value: value})
		}
	}
	flag := func(label string, v *bool) {
		if v != nil {
			add(label, yesNo(*v))
		}
	}

	add("Protocol", rec.ProtocolVersion)
	add("Cipher Suite", cipherValue(rec.CipherSuite, rec.SecretKeyLength))
	add("Key Exchange", rec.KeyExchangeGroup)
	add("Signature", rec.SignatureScheme)
	flag("Encrypted Client Hello", rec.UsedEncryptedHello)
	flag("Private DNS", rec.UsedPrivateDNS)
	flag("HSTS Active", rec.HSTS)
	flag("EV Cert", rec.ExtendedValidation)
	add("Transparency", TransparencyStatus(rec.CertificateTransparencyStatus))
	return rows
}

var titleCaser = cases.Title(language.Und, cases.NoLower)

// TransparencyStatus normalizes a certificate transparency token, e.g.
// "policy_compliant" becomes "Policy Compliant".
func TransparencyStatus(token string) string {
	token = strings.TrimSpace(strings.ReplaceAll(token, "_", " "))
	if token == "" {
		return ""
	}
	return titleCaser.String(token)
}

func cipherValue(suite string, keyLength int) string {
	if suite == "" {
		return ""
	}
	if keyLength > 0 {
		return fmt.Sprintf("%s (%d bit keys)", suite, keyLength)
	}
	return suite
}

func certificateView(cert model.Certificate, expanded bool) CertificateView {
	return CertificateView{
		Label:        CommonName(cert.Subject),
		Expanded:     expanded,
		Subject:      ParseDN(cert.Subject),
		Issuer:       ParseDN(cert.Issuer),
		NotBefore:    cert.Validity.NotBefore,
		NotAfter:     cert.Validity.NotAfter,
		SerialNumber: cert.SerialNumber,
		SHA256:       cert.Fingerprint.SHA256,
		SHA1:         cert.Fingerprint.SHA1,
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
