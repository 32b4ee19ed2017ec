// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/jeranaias/certbadge/internal/detail"
	"github.com/jeranaias/certbadge/internal/trust"
	"github.com/jeranaias/certbadge/internal/ui/styles"
	"github.com/jeranaias/certbadge/internal/util"
)

// =============================================================================
// DETAIL VIEW COMPONENT - Connection and certificate chain inspection
// =============================================================================

const (
	markerExpanded  = "v"
	markerCollapsed = ">"
)

// DetailView renders a detail.Model as aligned text for a viewport.
type DetailView struct {
	theme    *styles.Theme
	width    int
	model    *detail.Model
	notice   detail.Notice
	expanded map[int]bool
}

// NewDetailView creates an empty detail view.
func NewDetailView(theme *styles.Theme) *DetailView {
	return &DetailView{
		theme:    theme,
		width:    80,
		expanded: make(map[int]bool),
	}
}

// SetWidth sets the wrap width.
func (v *DetailView) SetWidth(width int) {
	v.width = width
}

// SetModel shows m, or notice when it is not NoticeNone. Expansion state
// resets to the model's defaults (leaf certificate open).
func (v *DetailView) SetModel(m detail.Model, notice detail.Notice) {
	v.notice = notice
	v.expanded = make(map[int]bool)
	if notice != detail.NoticeNone {
		v.model = nil
		return
	}
	v.model = &m
	for i, c := range m.Certificates {
		v.expanded[i] = c.Expanded
	}
}

// Clear empties the view.
func (v *DetailView) Clear() {
	v.model = nil
	v.notice = detail.NoticeNone
	v.expanded = make(map[int]bool)
}

// HasContent reports whether a model or notice is set.
func (v *DetailView) HasContent() bool {
	return v.model != nil || v.notice != detail.NoticeNone
}

// Notice returns the current notice.
func (v *DetailView) Notice() detail.Notice {
	return v.notice
}

// CertificateCount returns the length of the shown chain.
func (v *DetailView) CertificateCount() int {
	if v.model == nil {
		return 0
	}
	return len(v.model.Certificates)
}

// ToggleCertificate expands or collapses certificate i and reports the
// new state. Out of range indexes are ignored.
func (v *DetailView) ToggleCertificate(i int) bool {
	if i < 0 || i >= v.CertificateCount() {
		return false
	}
	v.expanded[i] = !v.expanded[i]
	return v.expanded[i]
}

// Expanded reports whether certificate i is expanded.
func (v *DetailView) Expanded(i int) bool {
	return v.expanded[i]
}

// Render returns the view content.
func (v *DetailView) Render() string {
	if v.notice != detail.NoticeNone {
		return styles.RenderNotice(string(v.notice))
	}
	if v.model == nil {
		return ""
	}
	m := v.model
	t := v.theme

	var b strings.Builder
	b.WriteString(t.DetailTitle.Render(util.TruncateWidth(m.URL, v.width)))
	b.WriteString("\n")

	badge := NewBadge()
	badge.SetDescriptor(levelDescriptor(m.Level))
	b.WriteString(badge.View())
	if m.Level != trust.LevelSecure && m.Reason != "" {
		b.WriteString(" ")
		b.WriteString(t.DetailReason.Render(m.Reason))
	}
	b.WriteString("\n")
	if m.StatusLine != "" {
		b.WriteString(t.Muted.Render(m.StatusLine))
		b.WriteString("\n")
	}

	b.WriteString(t.DetailSection.Render("Connection"))
	b.WriteString("\n")
	if len(m.Connection) == 0 {
		b.WriteString(t.Muted.Render("  No connection attributes reported."))
		b.WriteString("\n")
	}
	pairs := make([][2]string, 0, len(m.Connection))
	for _, row := range m.Connection {
		pairs = append(pairs, [2]string{row.Label, row.Value})
	}
	v.writeRows(&b, "  ", pairs)

	b.WriteString(t.DetailSection.Render("Certificate Chain"))
	b.WriteString("\n")
	for i, cert := range m.Certificates {
		marker := markerCollapsed
		if v.expanded[i] {
			marker = markerExpanded
		}
		b.WriteString("  ")
		b.WriteString(t.DetailValue.Render(marker + " " + toStr(i+1) + ". " + cert.Label))
		b.WriteString("\n")
		if !v.expanded[i] {
			continue
		}
		v.writeCertificate(&b, cert)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *DetailView) writeCertificate(b *strings.Builder, cert detail.CertificateView) {
	const indent = "      "
	t := v.theme

	b.WriteString("    " + t.DetailLabel.Render("Subject") + "\n")
	v.writeRows(b, indent, attributePairs(cert.Subject))
	b.WriteString("    " + t.DetailLabel.Render("Issuer") + "\n")
	v.writeRows(b, indent, attributePairs(cert.Issuer))

	v.writeRows(b, "    ", [][2]string{
		{"Not Before", detail.FormatDate(cert.NotBefore)},
		{"Not After", detail.FormatDate(cert.NotAfter)},
		{"Serial", cert.SerialNumber},
		{"SHA-256", cert.SHA256},
		{"SHA-1", cert.SHA1},
	})
}

// writeRows writes label/value pairs with labels padded to a common
// column and long values wrapped under the value column.
func (v *DetailView) writeRows(b *strings.Builder, indent string, pairs [][2]string) {
	labels := make([]string, len(pairs))
	for i, p := range pairs {
		labels[i] = p[0]
	}
	labelWidth := util.MaxWidth(labels...)
	valueWidth := v.width - util.StringWidth(indent) - labelWidth - 2
	if valueWidth < 16 {
		valueWidth = 16
	}
	continuation := strings.Repeat(" ", util.StringWidth(indent)+labelWidth+2)

	for _, p := range pairs {
		b.WriteString(indent)
		b.WriteString(v.theme.DetailLabel.Render(util.PadRight(p[0], labelWidth)))
		b.WriteString("  ")
		for j, line := range util.Wrap(p[1], valueWidth) {
			if j > 0 {
				b.WriteString("\n")
				b.WriteString(continuation)
			}
			b.WriteString(v.theme.DetailValue.Render(line))
		}
		b.WriteString("\n")
	}
}

func attributePairs(attrs []detail.Attribute) [][2]string {
	pairs := make([][2]string, 0, len(attrs))
	for _, a := range attrs {
		pairs = append(pairs, [2]string{a.Key, a.Value})
	}
	return pairs
}
