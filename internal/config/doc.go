// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for certbadge.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ProviderConfig: TLS acquisition timeouts and rate limits
//   - IconConfig: Badge glyph assets and theme
//   - JournalConfig: Lifecycle event journal location
//   - UIConfig: Presentation settings
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CERTBADGE_*)
//   - ~/.certbadge/config.toml
//   - ~/.certbadge/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	timeout := cfg.DialTimeout()
package config
