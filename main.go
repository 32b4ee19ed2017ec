// certbadge - Connection security badges for browsed pages, in the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jeranaias/certbadge/internal/cli"
	"github.com/jeranaias/certbadge/internal/config"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func init() {
	// Sync version info with cli package
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args := cli.Parse()

	cfg, err := loadConfig(args)
	if err != nil {
		// A broken config must not block repairing it.
		repairing := cmd == cli.CmdConfig || cmd == cli.CmdDoctor || cmd == cli.CmdHelp || cmd == cli.CmdVersion
		if cfg == nil && !repairing {
			cli.HandleErrorAndExit(err, args.JSON)
		}
		if !args.Quiet {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		if cfg == nil {
			cfg = config.Default()
		}
	}

	closeLog := setupLogging(cmd, args, cfg)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, cmd, args, cfg); err != nil {
		closeLog()
		stop()
		cli.HandleErrorAndExit(err, args.JSON)
	}
}

func loadConfig(args cli.Args) (*config.Config, error) {
	if args.ConfigPath != "" {
		// "config set" may create the file.
		if _, err := os.Stat(args.ConfigPath); os.IsNotExist(err) {
			return config.Default(), nil
		}
		return config.LoadFromPath(args.ConfigPath)
	}
	return config.Load()
}

// setupLogging routes the standard logger. The TUI owns the terminal, so its
// log output goes to a file or nowhere.
func setupLogging(cmd cli.Command, args cli.Args, cfg *config.Config) func() {
	path := args.LogPath
	if path == "" {
		path = cfg.UI.LogPath
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			log.SetOutput(f)
			return func() { f.Close() }
		}
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file %s: %v\n", path, err)
	}

	if cmd == cli.CmdTUI || !args.Verbose {
		log.SetOutput(io.Discard)
	}
	return func() {}
}
