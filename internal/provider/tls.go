// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package provider

import (
	"bufio"
	"context"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/asn1"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/certbadge/internal/events"
	"github.com/jeranaias/certbadge/internal/model"
)

var (
	// ErrUnsupportedScheme is returned for URLs that are neither http nor https.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")
	// ErrNoHost is returned for URLs without a host.
	ErrNoHost = errors.New("URL has no host")
	// ErrNoCertificates is returned when the server presented no chain.
	ErrNoCertificates = errors.New("no certificates presented")
)

// oidSCTList is the embedded signed certificate timestamp extension.
var oidSCTList = asn1.ObjectIdentifier{1, 3, 6, 1, 4, 1, 11129, 2, 4, 2}

// =============================================================================
// TLS PROVIDER
// =============================================================================

// TLSConfig configures the live provider.
type TLSConfig struct {
	// DialTimeout bounds the TCP connect and handshake.
	DialTimeout time.Duration
	// DialsPerSecond limits new connections (0 = unlimited).
	DialsPerSecond float64
	// InsecureHTTP reports http:// URLs as unencrypted instead of failing.
	InsecureHTTP bool
	// Roots overrides the system roots used for chain verification.
	Roots *x509.CertPool
}

// DefaultTLSConfig returns the provider defaults.
func DefaultTLSConfig() TLSConfig {
	return TLSConfig{
		DialTimeout:    10 * time.Second,
		DialsPerSecond: 5,
		InsecureHTTP:   true,
	}
}

// TLS acquires records by connecting to the server.
type TLS struct {
	cfg     TLSConfig
	limiter *rate.Limiter
}

// NewTLS creates a live provider.
func NewTLS(cfg TLSConfig) *TLS {
	limit := rate.Inf
	if cfg.DialsPerSecond > 0 {
		limit = rate.Limit(cfg.DialsPerSecond)
	}
	return &TLS{cfg: cfg, limiter: rate.NewLimiter(limit, 1)}
}

// Probe is the result of one live connection.
type Probe struct {
	Record     model.ConnectionRecord
	StatusLine string
}

// Acquire implements events.Provider.
func (p *TLS) Acquire(ctx context.Context, req events.Request) (model.ConnectionRecord, error) {
	probe, err := p.Probe(ctx, req.URL)
	if err != nil {
		return model.ConnectionRecord{}, err
	}
	return probe.Record, nil
}

// Probe connects to rawURL's host and captures the handshake and the
// response status line of a HEAD request for the URL's path.
func (p *TLS) Probe(ctx context.Context, rawURL string) (Probe, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Probe{}, fmt.Errorf("parse %q: %w", rawURL, err)
	}
	if u.Hostname() == "" {
		return Probe{}, fmt.Errorf("%q: %w", rawURL, ErrNoHost)
	}

	switch strings.ToLower(u.Scheme) {
	case "https":
	case "http":
		if p.cfg.InsecureHTTP {
			return Probe{Record: model.ConnectionRecord{RawState: model.StateInsecure}}, nil
		}
		fallthrough
	default:
		return Probe{}, fmt.Errorf("%q: %w", u.Scheme, ErrUnsupportedScheme)
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return Probe{}, err
	}

	host := u.Hostname()
	addr := u.Host
	if u.Port() == "" {
		addr = net.JoinHostPort(host, "443")
	}

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: p.cfg.DialTimeout},
		Config: &tls.Config{
			ServerName: host,
			// Verification is done below so broken chains can still be
			// captured and classified.
			InsecureSkipVerify: true,
			MinVersion:         tls.VersionTLS10,
			NextProtos:         []string{"http/1.1"},
		},
	}
	raw, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return Probe{}, fmt.Errorf("error connecting: %w", err)
	}
	conn := raw.(*tls.Conn)
	defer conn.Close()

	state := conn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return Probe{}, ErrNoCertificates
	}

	rec := RecordFromState(state, p.verify(state.PeerCertificates, host))

	status, hsts := p.head(ctx, conn, u)
	rec.HSTS = hsts
	return Probe{Record: rec, StatusLine: status}, nil
}

// verify checks the presented chain against the configured roots.
func (p *TLS) verify(certs []*x509.Certificate, host string) error {
	opts := x509.VerifyOptions{
		Roots:         p.cfg.Roots,
		DNSName:       host,
		Intermediates: x509.NewCertPool(),
	}
	for _, c := range certs[1:] {
		opts.Intermediates.AddCert(c)
	}
	_, err := certs[0].Verify(opts)
	return err
}

// head sends a HEAD request over conn. Failures are not fatal; the
// handshake data is already captured.
func (p *TLS) head(ctx context.Context, conn *tls.Conn, u *url.URL) (string, *bool) {
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	} else if p.cfg.DialTimeout > 0 {
		conn.SetDeadline(time.Now().Add(p.cfg.DialTimeout))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, u.String(), nil)
	if err != nil {
		return "", nil
	}
	req.Close = true
	req.Header.Set("User-Agent", "certbadge")
	if err := req.Write(conn); err != nil {
		return "", nil
	}

	resp, err := http.ReadResponse(bufio.NewReader(conn), req)
	if err != nil {
		return "", nil
	}
	defer resp.Body.Close()

	hsts := resp.Header.Get("Strict-Transport-Security") != ""
	return fmt.Sprintf("%s %s", resp.Proto, resp.Status), model.Bool(hsts)
}

// =============================================================================
// RECORD CONSTRUCTION
// =============================================================================

// RecordFromState builds a record from a completed handshake. verifyErr is
// the result of chain verification.
func RecordFromState(state tls.ConnectionState, verifyErr error) model.ConnectionRecord {
	suite := tls.CipherSuiteName(state.CipherSuite)

	rec := model.ConnectionRecord{
		ProtocolVersion:    ProtocolName(state.Version),
		CipherSuite:        suite,
		SecretKeyLength:    KeyLength(suite),
		UsedEncryptedHello: model.Bool(state.ECHAccepted),
		RawState:           rawState(state.Version, verifyErr),
	}

	for _, c := range state.PeerCertificates {
		rec.Certificates = append(rec.Certificates, CertificateFromX509(c))
	}

	scts := len(state.SignedCertificateTimestamps) > 0
	if leaf := state.PeerCertificates; len(leaf) > 0 && hasExtension(leaf[0], oidSCTList) {
		scts = true
	}
	if scts {
		rec.CertificateTransparencyStatus = "scts_present"
	} else {
		rec.CertificateTransparencyStatus = "no_scts"
	}
	return rec
}

func rawState(version uint16, verifyErr error) model.RawState {
	switch {
	case verifyErr != nil:
		return model.StateBroken
	case version < tls.VersionTLS12:
		return model.StateWeak
	default:
		return model.StateSecure
	}
}

// CertificateFromX509 converts a parsed certificate.
func CertificateFromX509(c *x509.Certificate) model.Certificate {
	sum256 := sha256.Sum256(c.Raw)
	sum1 := sha1.Sum(c.Raw)
	return model.Certificate{
		Subject: c.Subject.String(),
		Issuer:  c.Issuer.String(),
		Validity: model.Validity{
			NotBefore: c.NotBefore,
			NotAfter:  c.NotAfter,
		},
		SerialNumber: colonHex(c.SerialNumber.Bytes()),
		Fingerprint: model.Fingerprint{
			SHA256: colonHex(sum256[:]),
			SHA1:   colonHex(sum1[:]),
		},
	}
}

// ProtocolName returns the TLSvX.Y name of a protocol version.
func ProtocolName(v uint16) string {
	switch v {
	case tls.VersionTLS10:
		return "TLSv1"
	case tls.VersionTLS11:
		return "TLSv1.1"
	case tls.VersionTLS12:
		return "TLSv1.2"
	case tls.VersionTLS13:
		return "TLSv1.3"
	default:
		return ""
	}
}

// KeyLength derives the symmetric key length in bits from a suite name.
func KeyLength(suite string) int {
	switch {
	case strings.Contains(suite, "AES_128"), strings.Contains(suite, "RC4_128"):
		return 128
	case strings.Contains(suite, "AES_256"), strings.Contains(suite, "CHACHA20"):
		return 256
	case strings.Contains(suite, "3DES"):
		return 168
	default:
		return 0
	}
}

func colonHex(b []byte) string {
	parts := make([]string, len(b))
	for i, c := range b {
		parts[i] = fmt.Sprintf("%02X", c)
	}
	return strings.Join(parts, ":")
}

func hasExtension(c *x509.Certificate, oid asn1.ObjectIdentifier) bool {
	for _, ext := range c.Extensions {
		if ext.Id.Equal(oid) {
			return true
		}
	}
	return false
}
