// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detail

import (
	"strings"

	"github.com/jeranaias/certbadge/internal/model"
)

// Notice is shown instead of a detail model.
type Notice string

const (
	NoticeNone        Notice = ""
	NoticeNoPage      Notice = "No active page found."
	NoticeNotHTTPS    Notice = "This page is not secure (HTTP). No certificate to show."
	NoticeNotCaptured Notice = "No certificate information captured yet. Please reload the page and try again."
)

// Source is the read side of the record store.
type Source interface {
	Get(pageID string) (model.PageSecurityEntry, bool)
	IsFresh(pageID, currentURL string) bool
}

// Open composes the detail view for the page currently showing currentURL.
// A stale capture (one made for a different origin) is treated as missing.
func Open(src Source, pageID, currentURL string) (Model, Notice) {
	if pageID == "" {
		return Model{}, NoticeNoPage
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(currentURL)), "https:") {
		return Model{}, NoticeNotHTTPS
	}
	if !src.IsFresh(pageID, currentURL) {
		return Model{}, NoticeNotCaptured
	}
	entry, ok := src.Get(pageID)
	if !ok || !entry.HasRecord() {
		return Model{}, NoticeNotCaptured
	}
	return Compose(entry), NoticeNone
}
