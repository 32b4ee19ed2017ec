// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/certbadge/internal/trust"
)

// DateLayout is used for certificate validity dates.
const DateLayout = "2006-01-02"

// Markdown renders the model as a markdown document.
func Markdown(m Model) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", m.URL)
	fmt.Fprintf(&b, "**Trust:** %s", m.Level)
	if m.Level != trust.LevelSecure && m.Reason != "" {
		fmt.Fprintf(&b, " - %s", m.Reason)
	}
	b.WriteString("\n\n")
	if m.StatusLine != "" {
		fmt.Fprintf(&b, "`%s`\n\n", m.StatusLine)
	}

	b.WriteString("## Connection Details\n\n")
	if len(m.Connection) == 0 {
		b.WriteString("_No connection attributes reported._\n\n")
	} else {
		b.WriteString("| Attribute | Value |\n|---|---|\n")
		for _, row := range m.Connection {
			fmt.Fprintf(&b, "| %s | %s |\n", row.Label, escapeCell(row.Value))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Certificate Chain\n")
	for _, cert := range m.Certificates {
		fmt.Fprintf(&b, "\n### %s\n\n", cert.Label)
		writeAttributes(&b, "Subject", cert.Subject)
		writeAttributes(&b, "Issuer", cert.Issuer)
		fmt.Fprintf(&b, "- **Not Before:** %s\n", FormatDate(cert.NotBefore))
		fmt.Fprintf(&b, "- **Not After:** %s\n", FormatDate(cert.NotAfter))
		fmt.Fprintf(&b, "- **Serial:** `%s`\n", cert.SerialNumber)
		fmt.Fprintf(&b, "- **SHA-256:** `%s`\n", cert.SHA256)
		fmt.Fprintf(&b, "- **SHA-1:** `%s`\n", cert.SHA1)
	}
	return b.String()
}

func writeAttributes(b *strings.Builder, title string, attrs []Attribute) {
	fmt.Fprintf(b, "**%s**\n\n", title)
	for _, a := range attrs {
		fmt.Fprintf(b, "- %s: %s\n", a.Key, a.Value)
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

// FormatDate renders a validity bound, or "N/A" when unknown.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(DateLayout)
}
