// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package trust

import "strings"

// SuitePrefix is the prefix of IANA cipher suite names. Names without it
// cannot be evaluated.
const SuitePrefix = "TLS_"

// Weakness is a cipher suite weakness reason.
type Weakness string

const (
	WeaknessNoForwardSecrecy Weakness = "lacks forward secrecy"
	WeaknessCBC              Weakness = "uses outdated CBC mode"
	WeaknessRC4              Weakness = "uses insecure RC4 cipher"
	Weakness3DES             Weakness = "uses outdated 3DES cipher"
)

// weaknessRule matches a suite name.
type weaknessRule struct {
	reason Weakness
	match  func(name string) bool
}

// Order matters: static RSA is reported ahead of mode based weaknesses.
var weaknessRules = []weaknessRule{
	{WeaknessNoForwardSecrecy, func(n string) bool { return strings.HasPrefix(n, "TLS_RSA_") }},
	{WeaknessCBC, func(n string) bool { return strings.Contains(n, "_CBC_") }},
	{WeaknessRC4, func(n string) bool { return strings.Contains(n, "_RC4_") }},
	{Weakness3DES, func(n string) bool { return strings.Contains(n, "_3DES_") }},
}

// DetectWeakness returns the first weakness of the named cipher suite.
// The second result is false when the name is empty, not in IANA form, or
// has no known weakness.
func DetectWeakness(name string) (Weakness, bool) {
	if !strings.HasPrefix(name, SuitePrefix) {
		return "", false
	}
	for _, rule := range weaknessRules {
		if rule.match(name) {
			return rule.reason, true
		}
	}
	return "", false
}
