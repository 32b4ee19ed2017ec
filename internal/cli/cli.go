// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for certbadge.
package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/jeranaias/certbadge/internal/config"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdInspect
	CmdReplay
	CmdJournal
	CmdConfig
	CmdDoctor
	CmdVersion
	CmdHelp
)

// String returns the command name used in JSON responses.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdInspect:
		return "inspect"
	case CmdReplay:
		return "replay"
	case CmdJournal:
		return "journal"
	case CmdConfig:
		return "config"
	case CmdDoctor:
		return "doctor"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	Quiet      bool
	Verbose    bool
	JSON       bool   // Output in JSON format
	ConfigPath string // --config, overrides ~/.certbadge/config.toml
	LogPath    string // --log, overrides ui.log_path

	// Command-specific
	Subcommand string

	// Raw args (remaining after global flag parsing)
	Raw []string
}

const usageText = `certbadge - connection security badges for web pages

certbadge classifies the TLS connection behind each page into Secure,
Weak, Broken or Insecure, caches the result per page and shows it as a
colored badge with a detail view of the connection and certificate chain.

Usage:
  certbadge [url...]                  Start the TUI (default)
  certbadge tui [url...]              Start the TUI with one page per URL
  certbadge inspect <url>...          Capture and classify live connections
    --json                            Output JSON
    --markdown                        Render the detail view as markdown
  certbadge replay <scenario>         Replay a TOML or YAML scenario
    --json                            Output JSON
    --journal                         Print the lifecycle journal afterwards
  certbadge journal [list|stats]      Query the journal database
    --page ID                         Only entries of page ID
    --kind KIND                       capture|capture_failed|discarded|evict
    --limit N                         Newest N entries
  certbadge config [show|get|set|path|reset]
                                      Configuration
  certbadge doctor                    Check configuration and assets
  certbadge version                   Show version
  certbadge help                      Show this help

Global flags:
  --config PATH                       Config file (TOML or JSON)
  --log PATH                          Append log lines to PATH
  --json                              Output JSON where supported
  -q, --quiet                         Less output
  -v, --verbose                       More output

TUI keys:
  tab / shift+tab   switch page       r   reload page
  n                 duplicate page    x   close page
  enter             toggle details    1-9 expand certificate
  up/down, PgUp/PgDn scroll details   q   quit

Environment:
  CERTBADGE_DIAL_TIMEOUT, CERTBADGE_ACQUIRE_TIMEOUT, CERTBADGE_MAX_DIALS,
  CERTBADGE_ASSET_DIR, CERTBADGE_THEME, CERTBADGE_JOURNAL,
  CERTBADGE_JOURNAL_PATH, CERTBADGE_MARKDOWN, CERTBADGE_LOG

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage() {
	fmt.Printf(usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion() {
	fmt.Printf("certbadge version %s\n", Version)
	fmt.Printf("  Git commit: %s\n", GitCommit)
	fmt.Printf("  Build date: %s\n", BuildDate)
}

// Parse parses os.Args.
func Parse() (Command, Args) {
	return ParseArgs(os.Args[1:])
}

// ParseArgs parses args and returns the command and its arguments.
func ParseArgs(args []string) (Command, Args) {
	remaining, parsedArgs := parseGlobalFlags(args)

	if len(remaining) == 0 {
		return CmdTUI, parsedArgs
	}

	name := remaining[0]
	cmd := strings.ToLower(name)
	remaining = remaining[1:]
	parsedArgs.Raw = remaining
	if len(remaining) > 0 {
		parsedArgs.Subcommand = remaining[0]
	}

	switch cmd {
	case "tui":
		return CmdTUI, parsedArgs
	case "inspect", "i":
		return CmdInspect, parsedArgs
	case "replay":
		return CmdReplay, parsedArgs
	case "journal":
		return CmdJournal, parsedArgs
	case "config":
		return CmdConfig, parsedArgs
	case "doctor":
		return CmdDoctor, parsedArgs
	case "version", "--version":
		return CmdVersion, parsedArgs
	case "help", "-h", "--help":
		return CmdHelp, parsedArgs
	default:
		// Anything else is a URL for the TUI.
		parsedArgs.Subcommand = ""
		parsedArgs.Raw = append([]string{name}, remaining...)
		return CmdTUI, parsedArgs
	}
}

// parseGlobalFlags extracts global flags from args and returns remaining args.
func parseGlobalFlags(args []string) ([]string, Args) {
	var remaining []string
	var parsedArgs Args

	i := 0
	for i < len(args) {
		arg := args[i]

		switch arg {
		case "-q", "--quiet":
			parsedArgs.Quiet = true
		case "-v", "--verbose":
			parsedArgs.Verbose = true
		case "--json":
			parsedArgs.JSON = true
		case "--config":
			if i+1 < len(args) {
				i++
				parsedArgs.ConfigPath = args[i]
			}
		case "--log":
			if i+1 < len(args) {
				i++
				parsedArgs.LogPath = args[i]
			}
		default:
			switch {
			case strings.HasPrefix(arg, "--config="):
				parsedArgs.ConfigPath = strings.TrimPrefix(arg, "--config=")
			case strings.HasPrefix(arg, "--log="):
				parsedArgs.LogPath = strings.TrimPrefix(arg, "--log=")
			default:
				remaining = append(remaining, arg)
			}
		}
		i++
	}

	return remaining, parsedArgs
}

// =============================================================================
// COMMAND DISPATCH
// =============================================================================

// Run executes cmd with cfg. Commands that need live state build a
// Runtime; version and help do not.
func Run(ctx context.Context, cmd Command, args Args, cfg *config.Config) error {
	switch cmd {
	case CmdVersion:
		return HandleVersion(args)
	case CmdHelp:
		PrintUsage()
		return nil
	case CmdConfig:
		return HandleConfig(args, cfg)
	case CmdDoctor:
		return HandleDoctor(args, cfg)
	case CmdJournal:
		return HandleJournal(ctx, args, cfg)
	}

	rt, err := NewRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	switch cmd {
	case CmdInspect:
		return HandleInspect(ctx, args, rt)
	case CmdReplay:
		return HandleReplay(ctx, args, rt)
	default:
		return HandleTUI(ctx, args, rt)
	}
}

// HandleVersion handles the "version" command with JSON output support.
func HandleVersion(args Args) error {
	if args.JSON {
		data := VersionData{
			Version:   Version,
			GitCommit: GitCommit,
			BuildDate: BuildDate,
			GoVersion: runtime.Version(),
		}
		return NewJSONResponse("version", data).Print()
	}
	PrintVersion()
	return nil
}
