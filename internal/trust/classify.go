// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package trust

import "github.com/jeranaias/certbadge/internal/model"

// Reason texts shown for non-secure levels.
const (
	ReasonInsecure = "connection is not encrypted"
	ReasonBroken   = "certificate has an issue (expired, self-signed, hostname mismatch, etc.)"
	ReasonWeak     = "uses a weak protocol or configuration"
)

// Assessment is a level together with the reason it was assigned.
// Reason is empty for LevelSecure.
type Assessment struct {
	Level    Level    `json:"level"`
	Reason   string   `json:"reason,omitempty"`
	Weakness Weakness `json:"weakness,omitempty"`
}

// Classify maps a record to its trust level. The first matching rule wins:
//
//  1. insecure raw state
//  2. broken raw state, or a "secure" state with an empty chain
//  3. weak raw state, or a weak cipher suite
//  4. secure
func Classify(rec model.ConnectionRecord) Level {
	return Assess(rec).Level
}

// Assess classifies a record and explains the result.
func Assess(rec model.ConnectionRecord) Assessment {
	switch {
	case rec.RawState == model.StateInsecure:
		return Assessment{Level: LevelInsecure, Reason: ReasonInsecure}
	case rec.RawState == model.StateBroken,
		rec.RawState == model.StateSecure && len(rec.Certificates) == 0:
		return Assessment{Level: LevelBroken, Reason: ReasonBroken}
	}

	weakness, cipherWeak := DetectWeakness(rec.CipherSuite)
	if cipherWeak {
		return Assessment{Level: LevelWeak, Reason: string(weakness), Weakness: weakness}
	}
	if rec.RawState == model.StateWeak {
		return Assessment{Level: LevelWeak, Reason: ReasonWeak}
	}
	return Assessment{Level: LevelSecure}
}
