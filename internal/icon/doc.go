// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package icon maps trust levels to badge descriptors.
//
// A badge is either the theme's default outline icon (nothing captured,
// load in progress) or a colored background with a light or dark glyph.
// Glyph assets load asynchronously; until the glyph a badge needs is
// available the renderer falls back to the default icon instead of
// drawing a blank badge.
//
// # Key Types
//
//   - Renderer: Level to Descriptor mapping with asset fallback
//   - Descriptor: What a badge surface draws
//   - Loader: Asynchronous glyph loader implementing AssetSource
//   - DirWatcher: Reloads glyph files from a directory on change
//
// # Usage
//
//	assets := icon.NewLoader(icon.BuiltinGlyphs)
//	assets.Start(ctx)
//	r := icon.NewRenderer(assets, icon.DetectTheme())
//	desc := r.Render(trust.LevelSecure, true)
package icon
