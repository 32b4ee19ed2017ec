// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/certbadge/internal/detail"
	"github.com/jeranaias/certbadge/internal/icon"
	"github.com/jeranaias/certbadge/internal/model"
	"github.com/jeranaias/certbadge/internal/store"
	"github.com/jeranaias/certbadge/internal/trust"
)

func builtinRenderer(theme icon.Theme) *icon.Renderer {
	loader := icon.NewLoader(icon.BuiltinGlyphs)
	loader.Start(context.Background())
	loader.Wait()
	return icon.NewRenderer(loader, theme)
}

func replay(t *testing.T, path string) ([]Result, *store.Store) {
	t.Helper()
	sc, err := Load(path)
	require.NoError(t, err)

	st := store.New()
	r := NewReplayer(sc, st, builtinRenderer(icon.ThemeDark))
	results, err := r.Run(nil)
	require.NoError(t, err)
	require.Len(t, results, len(sc.Events))
	return results, st
}

// =============================================================================
// LOADING TESTS
// =============================================================================

func TestLoad_TOML(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "navigation.toml"))
	require.NoError(t, err)

	assert.Equal(t, "navigation", sc.Name)
	require.Contains(t, sc.Records, "secure")
	rec := sc.Records["secure"]
	assert.Equal(t, model.StateSecure, rec.RawState)
	require.NotNil(t, rec.HSTS)
	assert.True(t, *rec.HSTS)
	require.Len(t, rec.Certificates, 1)
	assert.Equal(t, 2026, rec.Certificates[0].Validity.NotAfter.Year())
	assert.Equal(t, "AA:BB", rec.Certificates[0].Fingerprint.SHA256)
	assert.Len(t, sc.Events, 9)
}

func TestLoad_YAML(t *testing.T) {
	sc, err := Load(filepath.Join("testdata", "failure.yaml"))
	require.NoError(t, err)
	assert.Equal(t, model.StateBroken, sc.Records["broken"].RawState)
	assert.Equal(t, "broken", sc.URLs["https://expired.example/"])
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
		want error
	}{
		{"format", "", ".json", ErrUnsupportedFormat},
		{"event type", "[[events]]\ntype = \"reload\"\npage = \"1\"\n", ".toml", ErrUnknownEvent},
		{"record", "[[events]]\ntype = \"headers\"\npage = \"1\"\nurl = \"https://a/\"\nrecord = \"nope\"\n", ".toml", ErrUnknownRecord},
		{"page", "events:\n  - type: close\n", ".yml", ErrMissingPage},
		{"url", "events:\n  - type: navigate\n    page: \"1\"\n", ".yaml", ErrMissingURL},
		{"url record", "[urls]\n\"https://a/\" = \"nope\"\n", ".toml", ErrUnknownRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.ext)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_YAMLUnknownField(t *testing.T) {
	_, err := Parse([]byte("events:\n  - type: close\n    page: \"1\"\n    colour: red\n"), ".yaml")
	assert.Error(t, err)
}

func TestLoad_DefaultsNameFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty-run.toml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0644))
	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "empty-run", sc.Name)
}

// =============================================================================
// REPLAY TESTS
// =============================================================================

func TestReplay_Navigation(t *testing.T) {
	results, st := replay(t, filepath.Join("testdata", "navigation.toml"))

	// activate, loading navigation: nothing captured yet.
	assert.Equal(t, []string{"tab"}, results[0].Pages)
	assert.True(t, results[0].Badge.Default)
	assert.True(t, results[1].Badge.Default)

	// The capture lands on the loading origin.
	require.False(t, results[2].Badge.Default)
	assert.Equal(t, trust.LevelSecure, results[2].Badge.Level)

	// Navigation completes on the captured origin.
	require.False(t, results[3].Badge.Default)
	assert.Equal(t, trust.LevelSecure, results[3].Badge.Level)
	assert.Equal(t, trust.ColorSecure, results[3].Badge.Background)

	open := results[4]
	require.True(t, open.Opened())
	assert.Equal(t, "tab", open.Active)
	assert.Equal(t, "https://a.example/", open.Detail.URL)
	assert.Equal(t, "a.example", open.Detail.Certificates[0].Label)

	// Client side route change to a different origin.
	assert.True(t, results[5].Badge.Default)
	assert.Equal(t, detail.NoticeNotCaptured, results[6].Notice)
	assert.False(t, results[6].Opened())

	// A new main-frame response on a weak configuration.
	require.False(t, results[7].Badge.Default)
	assert.Equal(t, trust.LevelWeak, results[7].Badge.Level)

	// Close evicts the page.
	assert.True(t, results[8].Badge.Default)
	assert.Empty(t, results[8].Active)
	assert.Empty(t, results[8].Pages)
	assert.Equal(t, 0, st.Len())
}

func TestReplay_Failure(t *testing.T) {
	results, st := replay(t, filepath.Join("testdata", "failure.yaml"))

	require.False(t, results[1].Badge.Default)
	assert.Equal(t, trust.LevelBroken, results[1].Badge.Level)
	assert.NotEmpty(t, results[1].Step.Request, "request ids are generated")

	// The failed acquisition removes the earlier capture.
	assert.True(t, results[2].Badge.Default)
	_, ok := st.Get("1")
	assert.False(t, ok)

	assert.Equal(t, detail.NoticeNotHTTPS, results[4].Notice)
}

func TestReplay_CallbackAndSubresource(t *testing.T) {
	sc := &Scenario{
		Records: map[string]model.ConnectionRecord{
			"ok": {RawState: model.StateSecure, CipherSuite: "TLS_AES_128_GCM_SHA256", Certificates: []model.Certificate{{Subject: "CN=x"}}},
		},
		Events: []Step{
			{Type: EventActivate, Page: "p"},
			{Type: EventHeaders, Page: "p", URL: "https://x.example/img.png", Record: "ok", Subresource: true},
		},
	}
	require.NoError(t, sc.Validate())

	st := store.New()
	var seen []int
	_, err := NewReplayer(sc, st, builtinRenderer(icon.ThemeLight)).Run(func(r Result) {
		seen = append(seen, r.Index)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, seen)
	assert.Equal(t, 0, st.Len())
}

func TestReplay_StepRejectsUnknownEvent(t *testing.T) {
	r := NewReplayer(&Scenario{}, store.New(), icon.NewRenderer(nil, icon.ThemeDark))
	_, err := r.Step(0, Step{Type: "reload", Page: "1"})
	assert.ErrorIs(t, err, ErrUnknownEvent)
}
