// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Second, cfg.DialTimeout())
	assert.Equal(t, time.Duration(0), cfg.AcquireTimeout())
	assert.True(t, cfg.Provider.InsecureHTTP)
	assert.True(t, cfg.Journal.Enabled)
	assert.Equal(t, ":memory:", cfg.Journal.Path)
	assert.Equal(t, "auto", cfg.Icon.Theme)
}

func TestLoadFromPath_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[provider]
dial_timeout_secs = 3
acquire_timeout_secs = 7
max_dials_per_sec = 2.5

[icon]
theme = "light"

[journal]
enabled = false

[ui]
markdown = true
width = 100
`)
	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.DialTimeout())
	assert.Equal(t, 7*time.Second, cfg.AcquireTimeout())
	assert.Equal(t, 2.5, cfg.Provider.MaxDialsPerSec)
	assert.True(t, cfg.Provider.InsecureHTTP, "unset keys keep defaults")
	assert.Equal(t, "light", cfg.Icon.Theme)
	assert.False(t, cfg.Journal.Enabled)
	assert.Equal(t, ":memory:", cfg.Journal.Path)
	assert.True(t, cfg.UI.Markdown)
	assert.Equal(t, 100, cfg.UI.Width)
}

func TestLoadFromPath_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"icon": {"theme": "dark"}, "ui": {"log_path": "/tmp/cb.log"}}`)
	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Icon.Theme)
	assert.Equal(t, "/tmp/cb.log", cfg.UI.LogPath)
	assert.Equal(t, DefaultDialTimeoutSecs, cfg.Provider.DialTimeoutSecs)
}

func TestLoadFromPath_UnknownKey(t *testing.T) {
	path := writeFile(t, "config.toml", "[icon]\ncolour = \"red\"\n")
	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "icon.colour")
}

func TestLoadFromPath_Invalid(t *testing.T) {
	path := writeFile(t, "config.toml", "[icon]\ntheme = \"sepia\"\n")
	_, err := LoadFromPath(path)
	require.Error(t, err)

	var verrs ValidateErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	assert.Equal(t, "icon.theme", verrs[0].Field)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		apply func(*Config)
		field string
	}{
		{"negative dial timeout", func(c *Config) { c.Provider.DialTimeoutSecs = -1 }, "provider.dial_timeout_secs"},
		{"negative acquire timeout", func(c *Config) { c.Provider.AcquireTimeoutSecs = -5 }, "provider.acquire_timeout_secs"},
		{"negative rate", func(c *Config) { c.Provider.MaxDialsPerSec = -1 }, "provider.max_dials_per_sec"},
		{"missing asset dir", func(c *Config) { c.Icon.AssetDir = filepath.Join(os.TempDir(), "certbadge-missing-dir") }, "icon.asset_dir"},
		{"empty journal path", func(c *Config) { c.Journal.Path = " " }, "journal.path"},
		{"wide", func(c *Config) { c.UI.Width = MaxWidth + 1 }, "ui.width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.apply(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("CERTBADGE_DIAL_TIMEOUT", "4")
	t.Setenv("CERTBADGE_MAX_DIALS", "1.5")
	t.Setenv("CERTBADGE_THEME", "dark")
	t.Setenv("CERTBADGE_JOURNAL", "false")
	t.Setenv("CERTBADGE_MARKDOWN", "yes")

	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, 4, cfg.Provider.DialTimeoutSecs)
	assert.Equal(t, 1.5, cfg.Provider.MaxDialsPerSec)
	assert.Equal(t, "dark", cfg.Icon.Theme)
	assert.False(t, cfg.Journal.Enabled)
	assert.True(t, cfg.UI.Markdown)
}

func TestApplyEnvOverrides_IgnoresGarbage(t *testing.T) {
	t.Setenv("CERTBADGE_DIAL_TIMEOUT", "soon")
	cfg := Default()
	cfg.ApplyEnvOverrides()
	assert.Equal(t, DefaultDialTimeoutSecs, cfg.Provider.DialTimeoutSecs)
}

func TestSaveTOML_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Icon.Theme = "light"
	cfg.UI.Width = 80
	path := filepath.Join(t.TempDir(), "out", "config.toml")

	require.NoError(t, SaveTOML(cfg, path))
	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Icon, loaded.Icon)
	assert.Equal(t, cfg.UI, loaded.UI)
	assert.Equal(t, cfg.Provider, loaded.Provider)
}

func TestGetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("icon.theme", "dark"))
	require.NoError(t, cfg.Set("provider.dial_timeout_secs", "12"))
	require.NoError(t, cfg.Set("ui.markdown", "true"))
	require.NoError(t, cfg.Set("provider.max_dials_per_sec", 3))

	v, err := cfg.Get("icon.theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
	assert.Equal(t, 12, cfg.Provider.DialTimeoutSecs)
	assert.True(t, cfg.UI.Markdown)
	assert.Equal(t, 3.0, cfg.Provider.MaxDialsPerSec)

	_, err = cfg.Get("icon.nope")
	assert.Error(t, err)
	_, err = cfg.Get("version.inner")
	assert.Error(t, err)
	assert.Error(t, cfg.Set("", "x"))
}

func TestGetAllKeys_Resolve(t *testing.T) {
	cfg := Default()
	for _, key := range GetAllKeys() {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

// TestConfig_ConcurrentAccess checks Global and SetGlobal under the race detector.
func TestConfig_ConcurrentAccess(t *testing.T) {
	ResetGlobalForTesting()
	defer ResetGlobalForTesting()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetGlobal(Default())
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, Global())
		}()
	}
	wg.Wait()
}
