// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package trust classifies captured TLS connections into trust levels.
//
// # Trust Levels
//
// Supported levels (most to least trusted):
//   - Secure: Encrypted, verified chain, modern cipher
//   - Weak: Encrypted but with a weak protocol or cipher suite
//   - Broken: Certificate problem (expired, self-signed, mismatch, no chain)
//   - Insecure: Not encrypted at all
//
// # Classification
//
// Classify is the single source of truth for the level of a record. The
// badge renderer and the detail composer both call it; nothing caches the
// result on the record:
//
//	level := trust.Classify(rec)
//	a := trust.Assess(rec)
//	fmt.Println(a.Level, a.Reason)
//
// # Cipher Weakness
//
// DetectWeakness inspects IANA style suite names (TLS_...):
//
//	w, ok := trust.DetectWeakness("TLS_RSA_WITH_AES_128_CBC_SHA")
//	// ok == true, w == trust.WeaknessNoForwardSecrecy
package trust
