// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/certbadge/internal/config"
	"github.com/jeranaias/certbadge/internal/icon"
	"github.com/jeranaias/certbadge/internal/journal"
	"github.com/jeranaias/certbadge/internal/model"
	"github.com/jeranaias/certbadge/internal/provider"
	"github.com/jeranaias/certbadge/internal/store"
	"github.com/jeranaias/certbadge/internal/trust"
	"github.com/jeranaias/certbadge/internal/ui/app"
)

// =============================================================================
// ARG PARSER TESTS (args.go)
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		switches []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"list"},
			wantSub: "list",
		},
		{
			name:    "subcommand with flag",
			args:    []string{"list", "--limit", "50"},
			wantSub: "list",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("limit") != "50" {
					t.Errorf("Flag(limit) = %q, want %q", p.Flag("limit"), "50")
				}
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"list", "--kind=capture"},
			wantSub: "list",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("kind") != "capture" {
					t.Errorf("Flag(kind) = %q, want %q", p.Flag("kind"), "capture")
				}
			},
		},
		{
			name:     "switch does not consume url",
			args:     []string{"--json", "https://a.example/", "https://b.example/"},
			switches: []string{"json"},
			wantSub:  "https://a.example/",
			validate: func(t *testing.T, p *ArgParser) {
				if !p.BoolFlag("json") {
					t.Error("BoolFlag(json) should be true")
				}
				if p.PositionalCount() != 2 {
					t.Errorf("PositionalCount() = %d, want 2", p.PositionalCount())
				}
			},
		},
		{
			name:    "unknown flag consumes value",
			args:    []string{"--json", "https://a.example/"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				if p.Flag("json") != "https://a.example/" {
					t.Errorf("Flag(json) = %q", p.Flag("json"))
				}
			},
		},
		{
			name:    "explicit boolean",
			args:    []string{"x", "--journal=false"},
			wantSub: "x",
			validate: func(t *testing.T, p *ArgParser) {
				if p.BoolFlag("journal") {
					t.Error("BoolFlag(journal) should be false")
				}
				if !p.HasFlag("journal") {
					t.Error("HasFlag(journal) should be true")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.switches...)
			if got := p.Subcommand(); got != tt.wantSub {
				t.Errorf("Subcommand() = %q, want %q", got, tt.wantSub)
			}
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestArgParser_FlagIntOrDefault(t *testing.T) {
	p := NewArgParser([]string{"--limit", "20", "--bad", "x"})
	if got := p.FlagIntOrDefault("limit", 5); got != 20 {
		t.Errorf("FlagIntOrDefault(limit) = %d, want 20", got)
	}
	if got := p.FlagIntOrDefault("bad", 5); got != 5 {
		t.Errorf("FlagIntOrDefault(bad) = %d, want 5", got)
	}
	if got := p.FlagIntOrDefault("missing", 7); got != 7 {
		t.Errorf("FlagIntOrDefault(missing) = %d, want 7", got)
	}
}

func TestArgParser_EmptyArgs(t *testing.T) {
	parser := NewArgParser([]string{})
	if parser.Subcommand() != "" {
		t.Errorf("Subcommand() = %q, want empty", parser.Subcommand())
	}
	if len(parser.PositionalFrom(0)) != 0 {
		t.Error("PositionalFrom(0) should be empty")
	}
	if parser.Positional(3) != "" {
		t.Error("Positional(3) should be empty")
	}
}

func TestArgParser_FlagOrDefault(t *testing.T) {
	parser := NewArgParser([]string{"cmd", "--present", "value"})

	if parser.FlagOrDefault("present", "default") != "value" {
		t.Error("FlagOrDefault should return actual value when present")
	}
	if parser.FlagOrDefault("missing", "default") != "default" {
		t.Error("FlagOrDefault should return default when missing")
	}
}

func TestParseIntWithValidation(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"10", 10, false},
		{"", 0, true},
		{"abc", 0, true},
		{"0", 0, true},
		{"-3", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseIntWithValidation(tt.input, "limit")
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseIntWithValidation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseIntWithValidation(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

// =============================================================================
// COMMAND PARSING TESTS (cli.go)
// =============================================================================

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantCommand Command
		validate    func(*testing.T, Args)
	}{
		{
			name:        "no args starts tui",
			args:        nil,
			wantCommand: CmdTUI,
		},
		{
			name:        "bare urls start tui",
			args:        []string{"https://A.example/", "http://b.example/"},
			wantCommand: CmdTUI,
			validate: func(t *testing.T, a Args) {
				if len(a.Raw) != 2 || a.Raw[0] != "https://A.example/" {
					t.Errorf("Raw = %v", a.Raw)
				}
			},
		},
		{
			name:        "tui with urls",
			args:        []string{"tui", "https://a.example/"},
			wantCommand: CmdTUI,
			validate: func(t *testing.T, a Args) {
				if len(a.Raw) != 1 {
					t.Errorf("Raw = %v", a.Raw)
				}
			},
		},
		{
			name:        "inspect with global json",
			args:        []string{"--json", "inspect", "https://a.example/"},
			wantCommand: CmdInspect,
			validate: func(t *testing.T, a Args) {
				if !a.JSON {
					t.Error("JSON should be true")
				}
				if a.Subcommand != "https://a.example/" {
					t.Errorf("Subcommand = %q", a.Subcommand)
				}
			},
		},
		{
			name:        "replay with config",
			args:        []string{"--config=/tmp/c.toml", "replay", "s.yaml", "--journal"},
			wantCommand: CmdReplay,
			validate: func(t *testing.T, a Args) {
				if a.ConfigPath != "/tmp/c.toml" {
					t.Errorf("ConfigPath = %q", a.ConfigPath)
				}
				if len(a.Raw) != 2 {
					t.Errorf("Raw = %v", a.Raw)
				}
			},
		},
		{
			name:        "log flag",
			args:        []string{"--log", "/tmp/cb.log", "doctor"},
			wantCommand: CmdDoctor,
			validate: func(t *testing.T, a Args) {
				if a.LogPath != "/tmp/cb.log" {
					t.Errorf("LogPath = %q", a.LogPath)
				}
			},
		},
		{name: "journal", args: []string{"journal", "stats"}, wantCommand: CmdJournal},
		{name: "config", args: []string{"config", "show"}, wantCommand: CmdConfig},
		{name: "version", args: []string{"version"}, wantCommand: CmdVersion},
		{name: "version flag", args: []string{"--version"}, wantCommand: CmdVersion},
		{name: "help", args: []string{"-h"}, wantCommand: CmdHelp},
		{name: "case insensitive", args: []string{"INSPECT", "x"}, wantCommand: CmdInspect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, args := ParseArgs(tt.args)
			if cmd != tt.wantCommand {
				t.Errorf("command = %v, want %v", cmd, tt.wantCommand)
			}
			if tt.validate != nil {
				tt.validate(t, args)
			}
		})
	}
}

// =============================================================================
// ERROR TESTS (errors.go)
// =============================================================================

func TestGetExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"missing argument", ErrMissingArgument("url", inspectUsage), ExitUsageError},
		{"unsupported scheme", fmt.Errorf("probe: %w", provider.ErrUnsupportedScheme), ExitUsageError},
		{"not found", &NotFoundError{Resource: "scenario", ID: "x"}, ExitNotFoundError},
		{"missing file", fmt.Errorf("read: %w", os.ErrNotExist), ExitNotFoundError},
		{"config", config.ValidateErrors{{Field: "icon.theme", Message: "bad"}}, ExitConfigError},
		{"deadline", NewCommandError("inspect", "x", "timeout", context.DeadlineExceeded), ExitTimeoutError},
		{"other", errors.New("boom"), ExitGeneralError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetExitCode(tt.err); got != tt.want {
				t.Errorf("GetExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCommandError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewCommandError("inspect", "https://a.example/", "probe", cause)
	if !errors.Is(err, cause) {
		t.Error("CommandError should unwrap to its cause")
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q", err.Error())
	}
}

// =============================================================================
// COMMAND TESTS
// =============================================================================

func testRuntime(t *testing.T) *Runtime {
	t.Helper()
	cfg := config.Default()
	cfg.Icon.Theme = "dark"
	rt, err := NewRuntime(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewRuntime() error = %v", err)
	}
	t.Cleanup(func() { rt.Close() })
	return rt
}

func secureRecord() model.ConnectionRecord {
	return model.ConnectionRecord{
		RawState:        model.StateSecure,
		ProtocolVersion: "TLS 1.3",
		CipherSuite:     "TLS_AES_128_GCM_SHA256",
		Certificates: []model.Certificate{
			{Subject: "CN=a.example,O=Example Org", Issuer: "CN=Example CA"},
		},
	}
}

func TestRunReplay(t *testing.T) {
	rt := testRuntime(t)
	var out bytes.Buffer

	args := Args{Raw: []string{filepath.Join("..", "scenario", "testdata", "navigation.toml"), "--journal"}}
	if err := runReplay(context.Background(), args, rt, &out); err != nil {
		t.Fatalf("runReplay() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"Scenario: navigation", "Secure", "Weak", "No security info", "Journal", "capture", "evict"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestRunReplay_Errors(t *testing.T) {
	rt := testRuntime(t)
	var out bytes.Buffer

	err := runReplay(context.Background(), Args{}, rt, &out)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("missing path error = %v, want ValidationError", err)
	}

	err = runReplay(context.Background(), Args{Raw: []string{"does-not-exist.toml"}}, rt, &out)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("missing file error = %v, want NotFoundError", err)
	}
}

func TestRunInspect(t *testing.T) {
	rt := testRuntime(t)
	var out bytes.Buffer

	prober := proberFunc(func(ctx context.Context, url string) (ProbeResult, error) {
		return ProbeResult{Record: secureRecord(), StatusLine: "HTTP/1.1 200 OK"}, nil
	})
	args := Args{Raw: []string{"https://a.example/"}}
	if err := runInspect(context.Background(), args, rt, prober, &out); err != nil {
		t.Fatalf("runInspect() error = %v", err)
	}

	got := out.String()
	for _, want := range []string{"https://a.example/", "Secure", "Certificate Chain", "a.example"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	// The page was closed after inspection and the journal saw it all.
	if rt.Store.Len() != 0 {
		t.Errorf("store Len() = %d, want 0", rt.Store.Len())
	}
	entries, err := rt.Journal.List(context.Background(), journal.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	kinds := map[store.EventKind]bool{}
	for _, e := range entries {
		kinds[e.Kind] = true
	}
	if !kinds[store.EventCaptured] || !kinds[store.EventEvicted] {
		t.Errorf("journal kinds = %v, want capture and evict", kinds)
	}
}

func TestRunInspect_ConnectFailure(t *testing.T) {
	rt := testRuntime(t)
	var out bytes.Buffer

	cause := errors.New("connection refused")
	prober := proberFunc(func(ctx context.Context, url string) (ProbeResult, error) {
		return ProbeResult{}, cause
	})
	err := runInspect(context.Background(), Args{Raw: []string{"https://down.example/"}}, rt, prober, &out)
	if !errors.Is(err, cause) {
		t.Fatalf("runInspect() error = %v, want %v", err, cause)
	}
	if !strings.Contains(out.String(), "connection refused") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunInspect_NoURL(t *testing.T) {
	rt := testRuntime(t)
	err := runInspect(context.Background(), Args{}, rt, nil, &bytes.Buffer{})
	if GetExitCode(err) != ExitUsageError {
		t.Errorf("exit code = %d, want %d", GetExitCode(err), ExitUsageError)
	}
}

func TestRunConfig_SetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	var out bytes.Buffer

	if err := runConfig(Args{ConfigPath: path, Raw: []string{"set", "icon.theme", "light"}}, cfg, &out); err != nil {
		t.Fatalf("config set error = %v", err)
	}
	if cfg.Icon.Theme != "light" {
		t.Errorf("Icon.Theme = %q, want light", cfg.Icon.Theme)
	}

	loaded, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath() error = %v", err)
	}
	if loaded.Icon.Theme != "light" {
		t.Errorf("saved Icon.Theme = %q, want light", loaded.Icon.Theme)
	}

	out.Reset()
	if err := runConfig(Args{ConfigPath: path, Raw: []string{"get", "icon.theme"}}, cfg, &out); err != nil {
		t.Fatalf("config get error = %v", err)
	}
	if strings.TrimSpace(out.String()) != "light" {
		t.Errorf("config get = %q", out.String())
	}
}

func TestRunConfig_SetInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()

	err := runConfig(Args{ConfigPath: path, Raw: []string{"set", "icon.theme", "neon"}}, cfg, &bytes.Buffer{})
	if GetExitCode(err) != ExitConfigError {
		t.Errorf("exit code = %d, want %d (err %v)", GetExitCode(err), ExitConfigError, err)
	}
	if cfg.Icon.Theme != "auto" {
		t.Errorf("config changed on invalid set: %q", cfg.Icon.Theme)
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("invalid config should not be saved")
	}
}

func TestRunJournal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	ctx := context.Background()
	j.Record(ctx, journal.Entry{Kind: store.EventCaptured, PageID: "1", URL: "https://a.example/", Level: "Secure"})
	j.Record(ctx, journal.Entry{Kind: store.EventEvicted, PageID: "1"})
	j.Close()

	cfg := config.Default()
	cfg.Journal.Path = path

	var out bytes.Buffer
	if err := runJournal(ctx, Args{Raw: []string{"list", "--kind", "capture"}}, cfg, &out); err != nil {
		t.Fatalf("journal list error = %v", err)
	}
	if !strings.Contains(out.String(), "https://a.example/") || strings.Contains(out.String(), "evict") {
		t.Errorf("journal list output = %q", out.String())
	}

	out.Reset()
	if err := runJournal(ctx, Args{Raw: []string{"stats"}}, cfg, &out); err != nil {
		t.Fatalf("journal stats error = %v", err)
	}
	if !strings.Contains(out.String(), "evict") {
		t.Errorf("journal stats output = %q", out.String())
	}
}

func TestRunJournal_InMemoryRejected(t *testing.T) {
	err := runJournal(context.Background(), Args{}, config.Default(), &bytes.Buffer{})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestRunDoctor(t *testing.T) {
	var out bytes.Buffer
	if err := runDoctor(Args{}, config.Default(), &out); err != nil {
		t.Fatalf("runDoctor() error = %v\n%s", err, out.String())
	}
	for _, want := range []string{"Config valid", "built-in glyphs", "Journal opens"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunDoctor_BrokenAssets(t *testing.T) {
	cfg := config.Default()
	cfg.Icon.AssetDir = t.TempDir()

	var out bytes.Buffer
	if err := runDoctor(Args{}, cfg, &out); err != nil {
		t.Fatalf("missing glyphs should only warn, got %v", err)
	}
	if !strings.Contains(out.String(), "default icon") {
		t.Errorf("output = %q", out.String())
	}
}

func TestWatchAssets_RefreshesAfterEarlyLoad(t *testing.T) {
	loader := icon.NewLoader(icon.BuiltinGlyphs)
	loader.Start(context.Background())
	// Loads finish before the app installs its callback.
	loader.Wait()

	sent := make(chan tea.Msg, 4)
	watchAssets(loader, func(msg tea.Msg) { sent <- msg })

	select {
	case msg := <-sent:
		if _, ok := msg.(app.AssetsChangedMsg); !ok {
			t.Errorf("sent %T, want app.AssetsChangedMsg", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no refresh after glyphs loaded")
	}
}

func TestWatchAssets_ForwardsChanges(t *testing.T) {
	loader := icon.NewLoader(icon.BuiltinGlyphs)
	sent := make(chan tea.Msg, 4)
	watchAssets(loader, func(msg tea.Msg) { sent <- msg })

	if err := loader.Load(context.Background(), trust.GlyphDark); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// One refresh for the (empty) initial load, one for the change.
	for i := 0; i < 2; i++ {
		select {
		case <-sent:
		case <-time.After(2 * time.Second):
			t.Fatalf("got %d refreshes, want 2", i)
		}
	}
}

// =============================================================================
// BENCHMARKS
// =============================================================================

func BenchmarkArgParser_Simple(b *testing.B) {
	args := []string{"inspect", "https://a.example/"}
	for i := 0; i < b.N; i++ {
		NewArgParser(args, "json", "markdown")
	}
}
