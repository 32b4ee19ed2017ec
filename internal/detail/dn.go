// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package detail

import "strings"

// FallbackLabel is shown for certificates whose subject has no CN.
const FallbackLabel = "Details"

// Attribute is one KEY=value component of a distinguished name.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// commaSentinel stands in for commas that must not split the name.
const commaSentinel = "\x00"

// ParseDN decomposes a distinguished name such as
//
//	CN=Example\, Inc.,O="Ex, Corp",C=US
//
// into its attributes. Commas inside double quotes or escaped with a
// backslash do not separate attributes. Segments without '=' are dropped.
func ParseDN(dn string) []Attribute {
	protected := protectCommas(dn)

	var attrs []Attribute
	for _, segment := range strings.Split(protected, ",") {
		key, value, ok := strings.Cut(segment, "=")
		if !ok {
			continue
		}
		attrs = append(attrs, Attribute{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(strings.ReplaceAll(value, commaSentinel, ",")),
		})
	}
	return attrs
}

// protectCommas strips quotes and escapes, replacing every comma that is
// part of a value with commaSentinel.
func protectCommas(dn string) string {
	var b strings.Builder
	b.Grow(len(dn))

	inQuotes := false
	escaped := false
	for _, r := range dn {
		switch {
		case escaped:
			escaped = false
			if r == ',' {
				b.WriteString(commaSentinel)
				continue
			}
			b.WriteRune(r)
		case r == '\\':
			escaped = true
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && inQuotes:
			b.WriteString(commaSentinel)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Lookup returns the value of the first attribute named key.
func Lookup(attrs []Attribute, key string) (string, bool) {
	for _, a := range attrs {
		if strings.EqualFold(a.Key, key) {
			return a.Value, true
		}
	}
	return "", false
}

// CommonName returns the CN of subject, or FallbackLabel.
func CommonName(subject string) string {
	if cn, ok := Lookup(ParseDN(subject), "CN"); ok && cn != "" {
		return cn
	}
	return FallbackLabel
}
