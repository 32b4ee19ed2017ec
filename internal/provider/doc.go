// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package provider implements handshake data providers.
//
// TLS dials the request's host, records what the handshake negotiated and
// verifies the chain against the system roots. Static serves canned records
// for scenario replay and tests.
package provider
