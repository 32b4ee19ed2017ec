// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package icon

import (
	"context"
	"log"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/certbadge/internal/trust"
)

// =============================================================================
// DIRECTORY WATCHER
// =============================================================================

// DirWatcher reloads glyph files into a Loader when they change on disk.
// Removing a glyph file makes that variant unavailable again, so badges
// that need it fall back to the default icon.
type DirWatcher struct {
	dir     string
	loader  *Loader
	watcher *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// NewDirWatcher watches dir and feeds changes into loader.
func NewDirWatcher(dir string, loader *Loader) (*DirWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &DirWatcher{
		dir:     dir,
		loader:  loader,
		watcher: w,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}, nil
}

// Watch starts processing file events in the background.
func (dw *DirWatcher) Watch() {
	go dw.processEvents()
}

// Close stops watching and releases resources.
func (dw *DirWatcher) Close() error {
	var err error
	dw.once.Do(func() {
		dw.cancel()
		err = dw.watcher.Close()
	})
	return err
}

// Done is closed once the event loop has exited.
func (dw *DirWatcher) Done() <-chan struct{} {
	return dw.done
}

func (dw *DirWatcher) processEvents() {
	defer close(dw.done)
	for {
		select {
		case <-dw.ctx.Done():
			return
		case event, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			dw.handle(event)
		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("ICON_WATCH_ERROR | dir=%s error=%v", dw.dir, err)
		}
	}
}

func (dw *DirWatcher) handle(event fsnotify.Event) {
	v, ok := variantForFile(filepath.Base(event.Name))
	if !ok {
		return
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		dw.loader.Drop(v)
	case event.Has(fsnotify.Write), event.Has(fsnotify.Create):
		if err := dw.loader.Load(dw.ctx, v); err != nil {
			log.Printf("ICON_LOAD_ERROR | variant=%s error=%v", v, err)
		}
	}
}

func variantForFile(name string) (trust.GlyphVariant, bool) {
	switch name {
	case trust.GlyphDark.String() + ".txt":
		return trust.GlyphDark, true
	case trust.GlyphLight.String() + ".txt":
		return trust.GlyphLight, true
	default:
		return trust.GlyphDark, false
	}
}
