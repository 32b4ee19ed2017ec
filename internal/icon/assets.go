// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package icon

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/certbadge/internal/trust"
)

// ErrEmptyGlyph is returned for glyph files with no symbol.
var ErrEmptyGlyph = errors.New("empty glyph asset")

// =============================================================================
// GLYPH
// =============================================================================

// Glyph is a loaded foreground asset.
type Glyph struct {
	Variant    trust.GlyphVariant `json:"variant"`
	Symbol     string             `json:"symbol"`
	Foreground lipgloss.Color     `json:"foreground"`
}

// Foreground colors for the two variants.
const (
	ForegroundDark  = lipgloss.Color("#1c1c1e")
	ForegroundLight = lipgloss.Color("#ffffff")
)

// NewGlyph builds a glyph for variant with the variant's foreground.
func NewGlyph(v trust.GlyphVariant, symbol string) Glyph {
	fg := ForegroundDark
	if v == trust.GlyphLight {
		fg = ForegroundLight
	}
	return Glyph{Variant: v, Symbol: symbol, Foreground: fg}
}

// FetchFunc loads one glyph variant.
type FetchFunc func(ctx context.Context, v trust.GlyphVariant) (Glyph, error)

// BuiltinGlyphs serves the compiled-in lock glyphs.
func BuiltinGlyphs(_ context.Context, v trust.GlyphVariant) (Glyph, error) {
	return NewGlyph(v, "\U0001F512"), nil
}

// DirGlyphs returns a FetchFunc reading <dir>/<variant>.txt.
func DirGlyphs(dir string) FetchFunc {
	return func(_ context.Context, v trust.GlyphVariant) (Glyph, error) {
		path := GlyphPath(dir, v)
		data, err := os.ReadFile(path)
		if err != nil {
			return Glyph{}, fmt.Errorf("read glyph %s: %w", path, err)
		}
		symbol := strings.TrimSpace(string(data))
		if symbol == "" {
			return Glyph{}, fmt.Errorf("%s: %w", path, ErrEmptyGlyph)
		}
		return NewGlyph(v, symbol), nil
	}
}

// GlyphPath returns the file a variant is read from.
func GlyphPath(dir string, v trust.GlyphVariant) string {
	return filepath.Join(dir, v.String()+".txt")
}

// =============================================================================
// LOADER
// =============================================================================

// Loader loads glyph variants in the background and serves whatever has
// finished loading. It implements AssetSource.
type Loader struct {
	mu       sync.RWMutex
	glyphs   map[trust.GlyphVariant]Glyph
	fetch    FetchFunc
	onChange func(trust.GlyphVariant)

	wg sync.WaitGroup
}

// NewLoader creates a loader that fetches glyphs with fetch.
func NewLoader(fetch FetchFunc) *Loader {
	return &Loader{
		glyphs: make(map[trust.GlyphVariant]Glyph),
		fetch:  fetch,
	}
}

// OnChange sets a callback run after a variant is loaded or dropped.
func (l *Loader) OnChange(fn func(trust.GlyphVariant)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
}

// Start loads every variant concurrently without blocking the caller.
func (l *Loader) Start(ctx context.Context) {
	for _, v := range []trust.GlyphVariant{trust.GlyphDark, trust.GlyphLight} {
		l.wg.Add(1)
		go func(v trust.GlyphVariant) {
			defer l.wg.Done()
			if err := l.Load(ctx, v); err != nil {
				log.Printf("ICON_LOAD_ERROR | variant=%s error=%v", v, err)
			}
		}(v)
	}
}

// Wait blocks until loads started by Start have finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Load fetches v synchronously. On failure the variant becomes
// unavailable.
func (l *Loader) Load(ctx context.Context, v trust.GlyphVariant) error {
	g, err := l.fetch(ctx, v)
	if err != nil {
		l.Drop(v)
		return err
	}

	l.mu.Lock()
	l.glyphs[v] = g
	fn := l.onChange
	l.mu.Unlock()

	if fn != nil {
		fn(v)
	}
	return nil
}

// Drop marks v as not loaded.
func (l *Loader) Drop(v trust.GlyphVariant) {
	l.mu.Lock()
	_, had := l.glyphs[v]
	delete(l.glyphs, v)
	fn := l.onChange
	l.mu.Unlock()

	if had && fn != nil {
		fn(v)
	}
}

// Glyph returns v if it has finished loading.
func (l *Loader) Glyph(v trust.GlyphVariant) (Glyph, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	g, ok := l.glyphs[v]
	return g, ok
}

// Ready reports whether both variants are loaded.
func (l *Loader) Ready() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.glyphs) == 2
}
