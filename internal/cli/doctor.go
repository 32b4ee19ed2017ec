// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// doctor.go - The "doctor" command: check the local setup.
//
// Checks:
//   - configuration validates
//   - glyph assets load (asset_dir or built-in)
//   - journal opens
//   - log file is writable
//   - system roots are available for chain verification
//   - terminal color support

package cli

import (
	"context"
	"crypto/x509"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/certbadge/internal/config"
	"github.com/jeranaias/certbadge/internal/icon"
	"github.com/jeranaias/certbadge/internal/journal"
	"github.com/jeranaias/certbadge/internal/trust"
)

var (
	checkMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	fixStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true).
			PaddingLeft(2)
)

// =============================================================================
// HEALTH CHECK TYPES
// =============================================================================

// CheckStatus represents the status of a health check.
type CheckStatus int

const (
	// CheckPass indicates the check passed successfully.
	CheckPass CheckStatus = iota
	// CheckWarn indicates the check passed with warnings.
	CheckWarn
	// CheckFail indicates the check failed.
	CheckFail
)

// String returns the JSON name of the status.
func (s CheckStatus) String() string {
	switch s {
	case CheckPass:
		return "pass"
	case CheckWarn:
		return "warn"
	default:
		return "fail"
	}
}

// HealthCheck represents a single health check result.
type HealthCheck struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string // Suggested fix
}

// Render returns the check as one or two lines.
func (c *HealthCheck) Render() string {
	result := fmt.Sprintf("%s %s", RenderStatus(c.Status.String()), checkMsgStyle.Render(c.Message))
	if c.Status != CheckPass && c.Fix != "" {
		result += "\n" + fixStyle.Render("-> "+c.Fix)
	}
	return result
}

// =============================================================================
// HANDLE DOCTOR
// =============================================================================

// HandleDoctor handles the "doctor" command.
func HandleDoctor(args Args, cfg *config.Config) error {
	return runDoctor(args, cfg, os.Stdout)
}

func runDoctor(args Args, cfg *config.Config, out io.Writer) error {
	checks := runAllChecks(cfg)

	passed, warned, failed := 0, 0, 0
	for _, check := range checks {
		switch check.Status {
		case CheckPass:
			passed++
		case CheckWarn:
			warned++
		case CheckFail:
			failed++
		}
	}

	var result error
	if failed > 0 {
		result = fmt.Errorf("%d health check(s) failed", failed)
	}

	if args.JSON || NewArgParser(args.Raw, "json").BoolFlag("json") {
		jsonChecks := make([]DoctorCheck, 0, len(checks))
		for _, check := range checks {
			jsonChecks = append(jsonChecks, DoctorCheck{
				Name:    check.Name,
				Status:  check.Status.String(),
				Message: check.Message,
				Fix:     check.Fix,
			})
		}
		resp := NewJSONResponse("doctor", DoctorData{
			Checks:  jsonChecks,
			Summary: DoctorSummary{Passed: passed, Warned: warned, Failed: failed, Healthy: failed == 0},
		})
		if result != nil {
			msg := result.Error()
			resp.Success = false
			resp.Error = &msg
		}
		if err := resp.Print(); err != nil {
			return err
		}
		return result
	}

	fmt.Fprintln(out, TitleStyle.Render("certbadge doctor"))
	fmt.Fprintln(out, RenderSeparator(41))
	for _, check := range checks {
		fmt.Fprintln(out, check.Render())
	}
	fmt.Fprintln(out, RenderSeparator(41))

	summary := []string{fmt.Sprintf("%d passed", passed)}
	if warned > 0 {
		summary = append(summary, WarningStyle.Render(fmt.Sprintf("%d warning", warned)))
	}
	if failed > 0 {
		summary = append(summary, ErrorStyle.Render(fmt.Sprintf("%d failed", failed)))
	}
	fmt.Fprintln(out, DimStyle.Render(strings.Join(summary, ", ")))
	return result
}

// =============================================================================
// HEALTH CHECK FUNCTIONS
// =============================================================================

func runAllChecks(cfg *config.Config) []*HealthCheck {
	return []*HealthCheck{
		checkConfigValid(cfg),
		checkGlyphAssets(cfg),
		checkJournal(cfg),
		checkLogPath(cfg),
		checkSystemRoots(),
		checkTerminal(),
	}
}

func checkConfigValid(cfg *config.Config) *HealthCheck {
	check := &HealthCheck{Name: "config"}
	if err := cfg.Validate(); err != nil {
		check.Status = CheckFail
		check.Message = "Config invalid: " + err.Error()
		check.Fix = "certbadge config reset"
		return check
	}
	check.Message = "Config valid"
	return check
}

func checkGlyphAssets(cfg *config.Config) *HealthCheck {
	check := &HealthCheck{Name: "glyphs"}
	if cfg.Icon.AssetDir == "" {
		check.Message = "Using built-in glyphs"
		return check
	}

	fetch := icon.DirGlyphs(cfg.Icon.AssetDir)
	var missing []string
	for _, v := range []trust.GlyphVariant{trust.GlyphDark, trust.GlyphLight} {
		if _, err := fetch(context.Background(), v); err != nil {
			missing = append(missing, icon.GlyphPath(cfg.Icon.AssetDir, v))
		}
	}
	if len(missing) > 0 {
		check.Status = CheckWarn
		check.Message = "Glyphs not loadable, badges fall back to the default icon: " + strings.Join(missing, ", ")
		check.Fix = "create the glyph files, one symbol each"
		return check
	}
	check.Message = "Glyphs load from " + cfg.Icon.AssetDir
	return check
}

func checkJournal(cfg *config.Config) *HealthCheck {
	check := &HealthCheck{Name: "journal"}
	if !cfg.Journal.Enabled {
		check.Status = CheckWarn
		check.Message = "Journal disabled"
		check.Fix = "certbadge config set journal.enabled true"
		return check
	}
	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		check.Status = CheckFail
		check.Message = "Journal cannot be opened: " + err.Error()
		check.Fix = "certbadge config set journal.path :memory:"
		return check
	}
	j.Close()
	check.Message = "Journal opens at " + cfg.Journal.Path
	return check
}

func checkLogPath(cfg *config.Config) *HealthCheck {
	check := &HealthCheck{Name: "log"}
	if cfg.UI.LogPath == "" {
		check.Message = "Logging discarded (ui.log_path unset)"
		return check
	}
	f, err := os.OpenFile(cfg.UI.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		check.Status = CheckFail
		check.Message = "Log file not writable: " + err.Error()
		check.Fix = "certbadge config set ui.log_path \"\""
		return check
	}
	f.Close()
	check.Message = "Logging to " + cfg.UI.LogPath
	return check
}

func checkSystemRoots() *HealthCheck {
	check := &HealthCheck{Name: "roots"}
	if _, err := x509.SystemCertPool(); err != nil {
		check.Status = CheckWarn
		check.Message = "System roots unavailable, every chain will classify as Broken: " + err.Error()
		return check
	}
	check.Message = "System roots available"
	return check
}

func checkTerminal() *HealthCheck {
	check := &HealthCheck{Name: "terminal"}
	theme := "light"
	if icon.DetectTheme() == icon.ThemeDark {
		theme = "dark"
	}
	if GetColorProfile() == termenv.Ascii {
		check.Status = CheckWarn
		check.Message = "No color output; badges show indicators only"
		check.Fix = "unset NO_COLOR or set FORCE_COLOR=1"
		return check
	}
	check.Message = "Color output enabled, " + theme + " background"
	return check
}
