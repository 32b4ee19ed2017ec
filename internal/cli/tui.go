// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - The default command: run the Bubble Tea app.

package cli

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/certbadge/internal/icon"
	"github.com/jeranaias/certbadge/internal/trust"
	"github.com/jeranaias/certbadge/internal/ui/app"
	"github.com/jeranaias/certbadge/internal/ui/styles"
)

// HandleTUI opens one page per URL argument and runs the app until quit.
func HandleTUI(ctx context.Context, args Args, rt *Runtime) error {
	theme := styles.NewTheme()
	disp := rt.Dispatcher(ctx, rt.Provider())
	m := app.New(disp, args.Raw, theme)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithContext(ctx),
	)

	watchAssets(rt.Loader, p.Send)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running certbadge: %w", err)
	}
	return nil
}

// watchAssets refreshes the app when glyphs change on disk, and once
// after the initial loads started by NewRuntime have finished, since
// those may complete before the callback is installed.
func watchAssets(loader *icon.Loader, send func(tea.Msg)) {
	loader.OnChange(func(v trust.GlyphVariant) {
		log.Printf("ICON_CHANGED | variant=%s", v)
		send(app.AssetsChangedMsg{})
	})
	go func() {
		loader.Wait()
		send(app.AssetsChangedMsg{})
	}()
}
