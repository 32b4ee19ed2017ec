// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package journal records page security lifecycle events in SQLite.
//
// A Journal is installed as a store observer and keeps one row per
// capture, failed capture, discarded result and eviction. The default
// database is in memory and lives as long as the process.
//
//	j, err := journal.Open(":memory:")
//	st.SetObserver(j.Observe)
//	rows, err := j.List(ctx, journal.Filter{PageID: "1"})
package journal
