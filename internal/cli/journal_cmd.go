// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// journal_cmd.go - The "journal" command: query a journal database.

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/jeranaias/certbadge/internal/config"
	"github.com/jeranaias/certbadge/internal/journal"
	"github.com/jeranaias/certbadge/internal/store"
	"github.com/jeranaias/certbadge/internal/util"
)

// HandleJournal handles "certbadge journal [list|stats]".
func HandleJournal(ctx context.Context, args Args, cfg *config.Config) error {
	return runJournal(ctx, args, cfg, os.Stdout)
}

func runJournal(ctx context.Context, args Args, cfg *config.Config, out io.Writer) error {
	parser := NewArgParser(args.Raw, "json")
	jsonMode := args.JSON || parser.BoolFlag("json")

	path := cfg.Journal.Path
	if path == "" || path == journal.MemoryPath {
		return &ValidationError{
			Field:   "journal.path",
			Value:   path,
			Reason:  "an in-memory journal only lives as long as the process",
			Example: "certbadge config set journal.path ~/.certbadge/journal.db",
		}
	}
	if _, err := os.Stat(path); err != nil {
		return &NotFoundError{Resource: "journal", ID: path}
	}

	j, err := journal.Open(path)
	if err != nil {
		return NewCommandError("journal", "open", path, err)
	}
	defer j.Close()

	sub := parser.Subcommand()
	switch sub {
	case "", "list":
		limit := 50
		if v := parser.Flag("limit"); v != "" {
			if limit, err = ParseIntWithValidation(v, "limit"); err != nil {
				return err
			}
		}
		entries, err := j.List(ctx, journal.Filter{
			PageID: parser.Flag("page"),
			Kind:   store.EventKind(parser.Flag("kind")),
			Limit:  limit,
		})
		if err != nil {
			return NewCommandError("journal", "list", path, err)
		}
		if jsonMode {
			return NewJSONResponse("journal", JournalData{Path: path, Entries: entries}).Print()
		}
		fmt.Fprintln(out, TitleStyle.Render("Journal: "+path))
		printJournal(out, entries)
		return nil

	case "stats":
		counts, err := j.Counts(ctx)
		if err != nil {
			return NewCommandError("journal", "stats", path, err)
		}
		if jsonMode {
			return NewJSONResponse("journal", JournalData{Path: path, Counts: counts}).Print()
		}
		fmt.Fprintln(out, TitleStyle.Render("Journal: "+path))
		kinds := make([]string, 0, len(counts))
		for k := range counts {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fmt.Fprintf(out, "  %s %d\n", util.PadRight(k, 16), counts[store.EventKind(k)])
		}
		return nil

	default:
		return ErrUnknownSubcommand("journal", sub, []string{"list", "stats"})
	}
}
