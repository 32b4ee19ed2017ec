// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// runtime.go - Shared state of the commands that classify pages.

package cli

import (
	"context"
	"log"

	"github.com/jeranaias/certbadge/internal/config"
	"github.com/jeranaias/certbadge/internal/events"
	"github.com/jeranaias/certbadge/internal/icon"
	"github.com/jeranaias/certbadge/internal/journal"
	"github.com/jeranaias/certbadge/internal/provider"
	"github.com/jeranaias/certbadge/internal/store"
)

// Runtime wires a store, glyph assets and the journal from a config.
type Runtime struct {
	Config   *config.Config
	Store    *store.Store
	Loader   *icon.Loader
	Renderer *icon.Renderer
	// Journal is nil when disabled or when it failed to open.
	Journal *journal.Journal

	watcher *icon.DirWatcher
	cancel  context.CancelFunc
}

// NewRuntime builds the runtime for cfg. Glyphs load in the background;
// a journal that cannot be opened is disabled with a log line.
func NewRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	ctx, cancel := context.WithCancel(ctx)

	rt := &Runtime{
		Config: cfg,
		Store:  store.New(),
		cancel: cancel,
	}

	fetch := icon.FetchFunc(icon.BuiltinGlyphs)
	if cfg.Icon.AssetDir != "" {
		fetch = icon.DirGlyphs(cfg.Icon.AssetDir)
	}
	rt.Loader = icon.NewLoader(fetch)
	rt.Loader.Start(ctx)
	rt.Renderer = icon.NewRenderer(rt.Loader, icon.ParseTheme(cfg.Icon.Theme))

	if cfg.Icon.AssetDir != "" {
		w, err := icon.NewDirWatcher(cfg.Icon.AssetDir, rt.Loader)
		if err != nil {
			log.Printf("ICON_WATCH_ERROR | dir=%s error=%v", cfg.Icon.AssetDir, err)
		} else {
			rt.watcher = w
			w.Watch()
		}
	}

	if cfg.Journal.Enabled {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			log.Printf("JOURNAL_DISABLED | path=%s error=%v", cfg.Journal.Path, err)
		} else {
			rt.Journal = j
			rt.Store.SetObserver(j.Observe)
		}
	}

	log.Printf("RUNTIME_READY | theme=%s assets=%q journal=%t", cfg.Icon.Theme, cfg.Icon.AssetDir, rt.Journal != nil)
	return rt, nil
}

// Provider returns the live TLS provider configured by the runtime.
func (rt *Runtime) Provider() *provider.TLS {
	return provider.NewTLS(provider.TLSConfig{
		DialTimeout:    rt.Config.DialTimeout(),
		DialsPerSecond: rt.Config.Provider.MaxDialsPerSec,
		InsecureHTTP:   rt.Config.Provider.InsecureHTTP,
	})
}

// Dispatcher returns a dispatcher over the runtime's store.
func (rt *Runtime) Dispatcher(ctx context.Context, p events.Provider) *events.Dispatcher {
	return events.NewDispatcher(rt.Store, p, rt.Renderer,
		events.WithContext(ctx),
		events.WithTimeout(rt.Config.AcquireTimeout()))
}

// Close stops the watcher and closes the journal.
func (rt *Runtime) Close() error {
	rt.cancel()
	if rt.watcher != nil {
		rt.watcher.Close()
	}
	if rt.Journal != nil {
		return rt.Journal.Close()
	}
	return nil
}
