// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package detail turns a captured page entry into a presentation agnostic
// inspection model: connection attribute rows, certificate chain entries
// and decomposed distinguished names.
//
// # Usage
//
//	m := detail.Compose(entry)
//	for _, row := range m.Connection {
//	    fmt.Printf("%s: %s\n", row.Label, row.Value)
//	}
//
// Open adds the checks a detail view performs before composing: non HTTPS
// pages and stale or missing captures produce a Notice instead of a model.
package detail
