// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the certbadge commands.
//
// # Key Types
//
//   - Command: Enumeration of the CLI commands
//   - Args: Parsed global flags and the remaining arguments
//   - Runtime: Store, glyph loader, renderer and journal built from config
//   - JSONResponse: Envelope of every --json output
//
// # Usage
//
//	cmd, args := cli.Parse()
//	cfg, err := config.Load()
//	...
//	if err := cli.Run(ctx, cmd, args, cfg); err != nil {
//	    cli.HandleErrorAndExit(err, args.JSON)
//	}
//
// # Commands
//
//   - tui (default): one tab per URL, live badges and detail panel
//   - inspect: capture, classify and print live connections
//   - replay: run a TOML or YAML scenario through the dispatcher
//   - journal: query a file-backed journal
//   - config, doctor, version, help
package cli
