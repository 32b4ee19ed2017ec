// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package trust

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jeranaias/certbadge/internal/model"
)

// =============================================================================
// WEAKNESS DETECTION TESTS
// =============================================================================

func TestDetectWeakness(t *testing.T) {
	tests := []struct {
		name  string
		suite string
		want  Weakness
		found bool
	}{
		{"empty", "", "", false},
		{"openssl style name", "ECDHE-RSA-AES128-SHA", "", false},
		{"lowercase prefix", "tls_rsa_with_rc4_128_sha", "", false},
		{"tls13", "TLS_AES_256_GCM_SHA384", "", false},
		{"ecdhe gcm", "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256", "", false},
		{"rsa cbc prefers pfs", "TLS_RSA_WITH_AES_128_CBC_SHA", WeaknessNoForwardSecrecy, true},
		{"rsa gcm", "TLS_RSA_WITH_AES_256_GCM_SHA384", WeaknessNoForwardSecrecy, true},
		{"ecdhe cbc", "TLS_ECDHE_ECDSA_WITH_AES_256_CBC_SHA", WeaknessCBC, true},
		{"ecdhe rc4", "TLS_ECDHE_RSA_WITH_RC4_128_SHA", WeaknessRC4, true},
		{"ecdhe 3des cbc", "TLS_ECDHE_RSA_WITH_3DES_EDE_CBC_SHA", WeaknessCBC, true},
		{"dhe 3des", "TLS_DHE_RSA_WITH_3DES_EDE_SHA", Weakness3DES, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := DetectWeakness(tt.suite)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

// =============================================================================
// CLASSIFIER TESTS
// =============================================================================

func chain(n int) []model.Certificate {
	certs := make([]model.Certificate, n)
	for i := range certs {
		certs[i].Subject = "CN=cert"
	}
	return certs
}

func TestClassify_InsecureWins(t *testing.T) {
	for _, suite := range []string{"", "TLS_RSA_WITH_AES_128_CBC_SHA", "TLS_AES_128_GCM_SHA256"} {
		for _, n := range []int{0, 1, 3} {
			rec := model.ConnectionRecord{RawState: model.StateInsecure, CipherSuite: suite, Certificates: chain(n)}
			assert.Equal(t, LevelInsecure, Classify(rec))
		}
	}
}

func TestClassify_SecureWithoutCertificatesIsBroken(t *testing.T) {
	rec := model.ConnectionRecord{RawState: model.StateSecure, CipherSuite: "TLS_AES_256_GCM_SHA384"}
	assert.Equal(t, LevelBroken, Classify(rec))

	a := Assess(rec)
	assert.Equal(t, ReasonBroken, a.Reason)
}

func TestClassify_BrokenBeatsWeakCipher(t *testing.T) {
	rec := model.ConnectionRecord{
		RawState:     model.StateBroken,
		CipherSuite:  "TLS_RSA_WITH_RC4_128_SHA",
		Certificates: chain(1),
	}
	assert.Equal(t, LevelBroken, Classify(rec))
}

func TestClassify_WeakCipherOverridesSecureState(t *testing.T) {
	rec := model.ConnectionRecord{
		RawState:     model.StateSecure,
		CipherSuite:  "TLS_RSA_WITH_AES_128_CBC_SHA",
		Certificates: chain(2),
	}

	a := Assess(rec)
	assert.Equal(t, LevelWeak, a.Level)
	assert.Equal(t, string(WeaknessNoForwardSecrecy), a.Reason)
	assert.Equal(t, WeaknessNoForwardSecrecy, a.Weakness)
}

func TestClassify_WeakStateGenericReason(t *testing.T) {
	rec := model.ConnectionRecord{
		RawState:     model.StateWeak,
		CipherSuite:  "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256",
		Certificates: chain(1),
	}

	a := Assess(rec)
	assert.Equal(t, LevelWeak, a.Level)
	assert.Equal(t, ReasonWeak, a.Reason)
	assert.Empty(t, a.Weakness)
}

func TestClassify_Secure(t *testing.T) {
	rec := model.ConnectionRecord{
		RawState:     model.StateSecure,
		CipherSuite:  "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256",
		Certificates: chain(1),
	}

	a := Assess(rec)
	assert.Equal(t, LevelSecure, a.Level)
	assert.Empty(t, a.Reason)
}

func TestClassify_TotalAndDeterministic(t *testing.T) {
	states := []model.RawState{model.StateSecure, model.StateWeak, model.StateBroken, model.StateInsecure}
	suites := []string{"", "garbage", "TLS_AES_128_GCM_SHA256", "TLS_RSA_WITH_AES_128_CBC_SHA", "TLS_ECDHE_RSA_WITH_RC4_128_SHA"}

	for _, st := range states {
		for _, suite := range suites {
			for _, n := range []int{0, 1} {
				rec := model.ConnectionRecord{RawState: st, CipherSuite: suite, Certificates: chain(n)}
				first := Classify(rec)
				assert.Contains(t, Levels, first)
				assert.Equal(t, first, Classify(rec))
			}
		}
	}
}

// =============================================================================
// LEVEL TESTS
// =============================================================================

func TestLevel_Palette(t *testing.T) {
	assert.Equal(t, "#30d158", string(LevelSecure.Color()))
	assert.Equal(t, "#ffcc00", string(LevelWeak.Color()))
	assert.Equal(t, "#ff453a", string(LevelBroken.Color()))
	assert.Equal(t, "#ff453a", string(LevelInsecure.Color()))

	assert.Equal(t, GlyphDark, LevelSecure.Glyph())
	assert.Equal(t, GlyphDark, LevelWeak.Glyph())
	assert.Equal(t, GlyphLight, LevelBroken.Glyph())
	assert.Equal(t, GlyphLight, LevelInsecure.Glyph())
}

func TestParseLevel(t *testing.T) {
	l, ok := ParseLevel("weak")
	assert.True(t, ok)
	assert.Equal(t, LevelWeak, l)

	_, ok = ParseLevel("unknown")
	assert.False(t, ok)
}
