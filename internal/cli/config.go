// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config.go - Config command implementation for certbadge.
//
// Command: config [subcommand]
//
// Subcommands:
//   show (default)      Display current configuration
//   get <key>           Print one value
//   set <key> <value>   Set a value and save
//   reset               Reset to default configuration
//   path                Show configuration file path
//
// Examples:
//   certbadge config set icon.theme light
//   certbadge config set journal.path ~/.certbadge/journal.db
//   certbadge config show --json
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jeranaias/certbadge/internal/config"
	"github.com/jeranaias/certbadge/internal/util"
)

// HandleConfig handles the "config" command.
func HandleConfig(args Args, cfg *config.Config) error {
	return runConfig(args, cfg, os.Stdout)
}

func runConfig(args Args, cfg *config.Config, out io.Writer) error {
	parser := NewArgParser(args.Raw, "json")
	jsonMode := args.JSON || parser.BoolFlag("json")

	path, err := configPath(args)
	if err != nil {
		return err
	}

	switch sub := parser.Subcommand(); sub {
	case "", "show":
		if jsonMode {
			return NewJSONResponse("config", ConfigData{Path: path, Config: cfg}).Print()
		}
		showConfig(out, cfg, path)
		return nil

	case "get":
		key := parser.Positional(1)
		if key == "" {
			return ErrMissingArgument("key", "certbadge config get icon.theme")
		}
		val, err := cfg.Get(key)
		if err != nil {
			return &ValidationError{Field: "key", Value: key, Reason: err.Error()}
		}
		if jsonMode {
			return NewJSONResponse("config", map[string]interface{}{key: val}).Print()
		}
		fmt.Fprintln(out, val)
		return nil

	case "set":
		key, value := parser.Positional(1), parser.Positional(2)
		if key == "" || parser.PositionalCount() < 3 {
			return ErrMissingArgument("key and value", "certbadge config set icon.theme dark")
		}
		updated := cfg.Clone()
		if err := updated.Set(key, value); err != nil {
			return &ValidationError{Field: key, Value: value, Reason: err.Error()}
		}
		if err := updated.Validate(); err != nil {
			return err
		}
		if err := saveConfig(updated, path); err != nil {
			return err
		}
		*cfg = *updated
		fmt.Fprintf(out, "%s %s = %s\n", SuccessStyle.Render("[OK]"), key, value)
		return nil

	case "reset":
		if err := saveConfig(config.Default(), path); err != nil {
			return err
		}
		*cfg = *config.Default()
		fmt.Fprintf(out, "%s configuration reset: %s\n", SuccessStyle.Render("[OK]"), path)
		return nil

	case "path":
		if jsonMode {
			return NewJSONResponse("config", map[string]string{"path": path}).Print()
		}
		fmt.Fprintln(out, path)
		return nil

	default:
		return ErrUnknownSubcommand("config", sub, []string{"show", "get", "set", "reset", "path"})
	}
}

// configPath returns the file config commands read and write.
func configPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}

func saveConfig(cfg *config.Config, path string) error {
	if strings.HasSuffix(path, ".json") {
		return config.SaveJSON(cfg, path)
	}
	if path == "" {
		return config.Save(cfg)
	}
	return config.SaveTOML(cfg, path)
}

func showConfig(out io.Writer, cfg *config.Config, path string) {
	fmt.Fprintln(out, TitleStyle.Render("certbadge configuration"))
	fmt.Fprintln(out, DimStyle.Render(path))

	keys := config.GetAllKeys()
	width := util.MaxWidth(keys...) + 1

	section := ""
	for _, key := range keys {
		val, err := cfg.Get(key)
		if err != nil {
			continue
		}
		if i := strings.IndexByte(key, '.'); i > 0 && key[:i] != section {
			section = key[:i]
			fmt.Fprintln(out, SectionStyle.Render("["+section+"]"))
		}
		fmt.Fprintf(out, "  %s %s\n", RenderLabel(key, width), ValueStyle.Render(fmt.Sprint(val)))
	}
}
