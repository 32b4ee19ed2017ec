// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for captured TLS connections.
//
// This package defines the core domain types shared by the classifier, the
// record store and the detail composer. Records are plain values: the store
// clones them on the way in and on the way out so no caller can mutate a
// captured record field by field.
//
// # Key Types
//
//   - ConnectionRecord: Handshake attributes reported for a main document load
//   - Certificate: One entry of the certificate chain (leaf first)
//   - RawState: The platform's own coarse judgment of the connection
//   - PageSecurityEntry: What the store keeps per page
//
// # Usage
//
//	rec := model.ConnectionRecord{
//	    RawState:    model.StateSecure,
//	    CipherSuite: "TLS_AES_128_GCM_SHA256",
//	}
//	rec.HSTS = model.Bool(true)
package model
