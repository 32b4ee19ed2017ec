// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// replay.go - The "replay" command: run a scenario file offline.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/certbadge/internal/detail"
	"github.com/jeranaias/certbadge/internal/journal"
	"github.com/jeranaias/certbadge/internal/scenario"
	"github.com/jeranaias/certbadge/internal/ui/components"
	"github.com/jeranaias/certbadge/internal/ui/styles"
	"github.com/jeranaias/certbadge/internal/util"
)

const replayUsage = "certbadge replay testdata/navigation.toml [--json] [--journal]"

// HandleReplay handles "certbadge replay <scenario>".
func HandleReplay(ctx context.Context, args Args, rt *Runtime) error {
	return runReplay(ctx, args, rt, os.Stdout)
}

func runReplay(ctx context.Context, args Args, rt *Runtime, out io.Writer) error {
	parser := NewArgParser(args.Raw, "json", "journal", "markdown")
	path := parser.Positional(0)
	if path == "" {
		return ErrMissingArgument("scenario", replayUsage)
	}
	jsonMode := args.JSON || parser.BoolFlag("json")
	markdown := rt.Config.UI.Markdown || parser.BoolFlag("markdown")
	withJournal := parser.BoolFlag("journal")

	if withJournal && rt.Journal == nil {
		return NewCommandError("replay", "journal", "journal is disabled", nil)
	}

	sc, err := scenario.Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &NotFoundError{Resource: "scenario", ID: path}
		}
		return NewCommandError("replay", "load", path, err)
	}

	// Replays are deterministic: badges never race the glyph loader.
	rt.Loader.Wait()

	if !jsonMode {
		fmt.Fprintln(out, TitleStyle.Render("Scenario: "+sc.Name))
		if sc.Description != "" {
			fmt.Fprintln(out, DimStyle.Render(sc.Description))
		}
		fmt.Fprintln(out, RenderSeparator())
	}

	rep := scenario.NewReplayer(sc, rt.Store, rt.Renderer)
	results, err := rep.Run(func(res scenario.Result) {
		if !jsonMode {
			printReplayResult(out, res, markdown, rt.Config.UI.Width)
		}
	})
	if err != nil {
		return NewCommandError("replay", "run", sc.Name, err)
	}

	data := ReplayData{Scenario: sc.Name, Description: sc.Description, Results: results}
	if withJournal {
		entries, err := rt.Journal.List(ctx, journal.Filter{})
		if err != nil {
			return NewCommandError("replay", "journal", "list entries", err)
		}
		data.Journal = entries
		if !jsonMode {
			fmt.Fprintln(out, SectionStyle.Render("Journal"))
			printJournal(out, entries)
		}
	}

	if jsonMode {
		return NewJSONResponse("replay", data).Print()
	}
	return nil
}

func printReplayResult(out io.Writer, res scenario.Result, markdown bool, width int) {
	badge := components.NewBadge()
	badge.SetDescriptor(res.Badge)

	page := res.Step.Page
	if page == "" {
		page = res.Active
	}
	fmt.Fprintf(out, "%s %s %s %s\n",
		DimStyle.Render(fmt.Sprintf("[%2d]", res.Index)),
		util.PadRight(string(res.Step.Type), 11),
		util.PadRight("page="+page, 10),
		badge.ViewCompact()+" "+badge.Label())

	if res.Step.Type != scenario.EventOpenDetail {
		return
	}
	if res.Notice != detail.NoticeNone || res.Detail == nil {
		fmt.Fprintf(out, "     %s\n", styles.RenderNotice(string(res.Notice)))
		return
	}
	if markdown {
		fmt.Fprintln(out, renderMarkdown(detail.Markdown(*res.Detail), width))
		return
	}

	view := components.NewDetailView(styles.DefaultTheme)
	if width <= 0 {
		width = GetTerminalWidth()
	}
	view.SetWidth(width - 6)
	view.SetModel(*res.Detail, detail.NoticeNone)
	for _, line := range strings.Split(view.Render(), "\n") {
		fmt.Fprintf(out, "     %s\n", line)
	}
}

// printJournal writes entries as aligned columns.
func printJournal(out io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, DimStyle.Render("  (no entries)"))
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("  %4d  %s  %s %s %s %s",
			e.ID,
			e.At.Format("15:04:05.000"),
			util.PadRight(string(e.Kind), 14),
			util.PadRight("page="+e.PageID, 10),
			util.PadRight(e.Level, 8),
			e.URL)
		if e.Error != "" {
			line += "  " + ErrorStyle.Render(util.TruncateRunes(e.Error, 80))
		}
		fmt.Fprintln(out, line)
	}
}
