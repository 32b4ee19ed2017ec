// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/jeranaias/certbadge/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete certbadge configuration.
type Config struct {
	Version string `toml:"version" json:"version"`

	// Provider controls live certificate acquisition.
	Provider ProviderConfig `toml:"provider" json:"provider"`

	// Icon controls badge glyph assets and theme.
	Icon IconConfig `toml:"icon" json:"icon"`

	// Journal controls the lifecycle event journal.
	Journal JournalConfig `toml:"journal" json:"journal"`

	UI UIConfig `toml:"ui" json:"ui"`
}

// ProviderConfig contains TLS acquisition settings.
type ProviderConfig struct {
	// DialTimeoutSecs bounds each TLS handshake.
	DialTimeoutSecs int `toml:"dial_timeout_secs" json:"dial_timeout_secs"`
	// AcquireTimeoutSecs bounds a whole acquisition (0 = no timeout).
	AcquireTimeoutSecs int `toml:"acquire_timeout_secs" json:"acquire_timeout_secs"`
	// MaxDialsPerSec rate limits outbound handshakes.
	MaxDialsPerSec float64 `toml:"max_dials_per_sec" json:"max_dials_per_sec"`
	// InsecureHTTP reports http:// URLs as insecure records instead of failing.
	InsecureHTTP bool `toml:"insecure_http" json:"insecure_http"`
}

// IconConfig contains badge asset settings.
type IconConfig struct {
	// AssetDir holds dark.txt / light.txt glyph files. Empty uses built-ins.
	AssetDir string `toml:"asset_dir" json:"asset_dir"`
	// Theme is the default glyph theme: "auto", "dark" or "light".
	Theme string `toml:"theme" json:"theme"`
}

// JournalConfig contains lifecycle journal settings.
type JournalConfig struct {
	Enabled bool `toml:"enabled" json:"enabled"`
	// Path is the SQLite DSN. ":memory:" keeps the journal for the process lifetime.
	Path string `toml:"path" json:"path"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Markdown renders detail views through glamour.
	Markdown bool `toml:"markdown" json:"markdown"`
	// Width is the render width in columns (0 = terminal width).
	Width int `toml:"width" json:"width"`
	// LogPath receives log output while the TUI owns the terminal.
	LogPath string `toml:"log_path" json:"log_path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	// CurrentVersion is the config file format version.
	CurrentVersion = "1"

	// DefaultDialTimeoutSecs is the handshake timeout.
	DefaultDialTimeoutSecs = 10

	// DefaultMaxDialsPerSec is the handshake rate limit.
	DefaultMaxDialsPerSec = 5

	// DefaultJournalPath keeps the journal in memory.
	DefaultJournalPath = ":memory:"

	// MaxWidth caps the configured render width.
	MaxWidth = 1000
)

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Provider: ProviderConfig{
			DialTimeoutSecs:    DefaultDialTimeoutSecs,
			AcquireTimeoutSecs: 0,
			MaxDialsPerSec:     DefaultMaxDialsPerSec,
			InsecureHTTP:       true,
		},
		Icon: IconConfig{
			AssetDir: "",
			Theme:    "auto",
		},
		Journal: JournalConfig{
			Enabled: true,
			Path:    DefaultJournalPath,
		},
		UI: UIConfig{
			Markdown: false,
			Width:    0,
			LogPath:  "",
		},
	}
}

// DialTimeout returns the handshake timeout as a duration.
func (c *Config) DialTimeout() time.Duration {
	return time.Duration(c.Provider.DialTimeoutSecs) * time.Second
}

// AcquireTimeout returns the acquisition timeout (0 = none).
func (c *Config) AcquireTimeout() time.Duration {
	return time.Duration(c.Provider.AcquireTimeoutSecs) * time.Second
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the certbadge configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".certbadge"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from the config file(s).
// Tries TOML first, then JSON, and falls back to defaults.
// Environment overrides are applied last.
func Load() (*Config, error) {
	var loadErr error

	if tomlPath, err := ConfigPathTOML(); err == nil {
		if _, statErr := os.Stat(tomlPath); statErr == nil {
			cfg := Default()
			if err := LoadTOML(cfg, tomlPath); err != nil {
				loadErr = fmt.Errorf("failed to load TOML config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	if jsonPath, err := ConfigPathJSON(); err == nil {
		if _, statErr := os.Stat(jsonPath); statErr == nil {
			cfg := Default()
			if err := LoadJSON(cfg, jsonPath); err != nil {
				loadErr = fmt.Errorf("failed to load JSON config: %w", err)
			} else {
				return finish(cfg)
			}
		}
	}

	cfg, err := finish(Default())
	if err != nil {
		return nil, err
	}
	// Defaults are returned alongside any load error for informational purposes.
	return cfg, loadErr
}

// finish applies env overrides, defaults and validation.
func finish(cfg *Config) (*Config, error) {
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// LoadJSON loads configuration from a JSON file.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

// LoadFromPath loads configuration from a specific file path with full validation.
// Keys missing from the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	if strings.HasSuffix(path, ".json") {
		if err := LoadJSON(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load JSON config from %s: %w", path, err)
		}
	} else {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load TOML config from %s: %w", path, err)
		}
	}

	return finish(cfg)
}

// SetDefaults fills zero values that have no meaningful zero.
func (c *Config) SetDefaults() {
	defaults := Default()
	if c.Version == "" {
		c.Version = defaults.Version
	}
	if c.Provider.DialTimeoutSecs == 0 {
		c.Provider.DialTimeoutSecs = defaults.Provider.DialTimeoutSecs
	}
	if c.Provider.MaxDialsPerSec == 0 {
		c.Provider.MaxDialsPerSec = defaults.Provider.MaxDialsPerSec
	}
	if c.Icon.Theme == "" {
		c.Icon.Theme = defaults.Icon.Theme
	}
	if c.Journal.Path == "" {
		c.Journal.Path = defaults.Journal.Path
	}
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save saves the configuration to the default TOML file.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file.
func SaveTOML(cfg *Config, path string) error {
	var b strings.Builder
	b.WriteString("# certbadge configuration file\n")
	b.WriteString("# Generated by certbadge - edit with care\n\n")

	if err := toml.NewEncoder(&b).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := util.AtomicWriteFileWithDir(path, []byte(b.String()), 0644, 0755); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SaveJSON saves the configuration to a JSON file.
func SaveJSON(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFileWithDir(path, data, 0644, 0755); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// Provider
	if c.Provider.DialTimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "provider.dial_timeout_secs",
			Message: fmt.Sprintf("must be positive, got %d", c.Provider.DialTimeoutSecs),
		})
	}
	if c.Provider.AcquireTimeoutSecs < 0 {
		errs = append(errs, ValidationError{
			Field:   "provider.acquire_timeout_secs",
			Message: fmt.Sprintf("must be 0 or positive, got %d", c.Provider.AcquireTimeoutSecs),
		})
	}
	if c.Provider.MaxDialsPerSec < 0 {
		errs = append(errs, ValidationError{
			Field:   "provider.max_dials_per_sec",
			Message: fmt.Sprintf("must be positive, got %g", c.Provider.MaxDialsPerSec),
		})
	}

	// Icon
	validThemes := map[string]bool{"auto": true, "dark": true, "light": true}
	if !validThemes[strings.ToLower(c.Icon.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "icon.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.Icon.Theme),
		})
	}
	if c.Icon.AssetDir != "" {
		if info, err := os.Stat(c.Icon.AssetDir); err != nil {
			errs = append(errs, ValidationError{
				Field:   "icon.asset_dir",
				Message: fmt.Sprintf("cannot access '%s': %v", c.Icon.AssetDir, err),
			})
		} else if !info.IsDir() {
			errs = append(errs, ValidationError{
				Field:   "icon.asset_dir",
				Message: fmt.Sprintf("'%s' is not a directory", c.Icon.AssetDir),
			})
		}
	}

	// Journal
	if c.Journal.Enabled && strings.TrimSpace(c.Journal.Path) == "" {
		errs = append(errs, ValidationError{
			Field:   "journal.path",
			Message: "must not be empty when the journal is enabled",
		})
	}

	// UI
	if c.UI.Width < 0 || c.UI.Width > MaxWidth {
		errs = append(errs, ValidationError{
			Field:   "ui.width",
			Message: fmt.Sprintf("must be between 0 and %d, got %d", MaxWidth, c.UI.Width),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - CERTBADGE_DIAL_TIMEOUT: overrides provider.dial_timeout_secs
//   - CERTBADGE_ACQUIRE_TIMEOUT: overrides provider.acquire_timeout_secs
//   - CERTBADGE_MAX_DIALS: overrides provider.max_dials_per_sec
//   - CERTBADGE_ASSET_DIR: overrides icon.asset_dir
//   - CERTBADGE_THEME: overrides icon.theme
//   - CERTBADGE_JOURNAL: set to "0" or "false" to disable the journal
//   - CERTBADGE_JOURNAL_PATH: overrides journal.path
//   - CERTBADGE_MARKDOWN: set to "1" or "true" to render detail as markdown
//   - CERTBADGE_LOG: overrides ui.log_path
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CERTBADGE_DIAL_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Provider.DialTimeoutSecs = n
		}
	}
	if v := os.Getenv("CERTBADGE_ACQUIRE_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Provider.AcquireTimeoutSecs = n
		}
	}
	if v := os.Getenv("CERTBADGE_MAX_DIALS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Provider.MaxDialsPerSec = f
		}
	}
	if v := os.Getenv("CERTBADGE_ASSET_DIR"); v != "" {
		c.Icon.AssetDir = v
	}
	if v := os.Getenv("CERTBADGE_THEME"); v != "" {
		c.Icon.Theme = v
	}
	if v := os.Getenv("CERTBADGE_JOURNAL"); v != "" {
		c.Journal.Enabled = parseBool(v)
	}
	if v := os.Getenv("CERTBADGE_JOURNAL_PATH"); v != "" {
		c.Journal.Path = v
	}
	if v := os.Getenv("CERTBADGE_MARKDOWN"); v != "" {
		c.UI.Markdown = parseBool(v)
	}
	if v := os.Getenv("CERTBADGE_LOG"); v != "" {
		c.UI.LogPath = v
	}
}

func parseBool(v string) bool {
	v = strings.ToLower(v)
	return v == "1" || v == "true" || v == "yes"
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "icon.theme").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "icon.theme").
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field equivalent.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			field.SetBool(parseBool(strVal))
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// GetAllKeys returns all configuration keys in dot notation.
func GetAllKeys() []string {
	return []string{
		"version",
		"provider.dial_timeout_secs",
		"provider.acquire_timeout_secs",
		"provider.max_dials_per_sec",
		"provider.insecure_http",
		"icon.asset_dir",
		"icon.theme",
		"journal.enabled",
		"journal.path",
		"ui.markdown",
		"ui.width",
		"ui.log_path",
	}
}

// Clone creates a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// String returns a string representation of the config for debugging.
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}
