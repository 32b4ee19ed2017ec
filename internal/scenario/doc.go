// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scenario loads scripted page event sequences and replays them
// through an events.Dispatcher.
//
// A scenario file (TOML or YAML, chosen by extension) names a set of
// connection records and lists events in order:
//
//	[records.good]
//	state = "secure"
//	protocol_version = "TLS 1.3"
//	cipher_suite = "TLS_AES_128_GCM_SHA256"
//	[[records.good.certificates]]
//	subject = "CN=a.example"
//
//	[[events]]
//	type = "headers"
//	page = "1"
//	url = "https://a.example/"
//	record = "good"
//
// Supported event types are headers, navigate, activate, close and
// open_detail. Replay serves records through a provider.Static and runs
// every acquisition inline, so results are deterministic.
package scenario
