// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package store

import (
	"net"
	"net/url"
	"strings"
)

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
	"ws":    "80",
	"wss":   "443",
}

// Origin returns the scheme://host:port origin of rawURL. Default ports are
// made explicit so "https://a.example" and "https://a.example:443" match.
// The second result is false when the URL has no host.
func Origin(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", false
	}

	scheme := strings.ToLower(u.Scheme)
	host := strings.ToLower(u.Hostname())
	if scheme == "" || host == "" {
		return "", false
	}

	port := u.Port()
	if port == "" {
		port = defaultPorts[scheme]
	}
	return scheme + "://" + net.JoinHostPort(host, port), true
}

// SameOrigin reports whether both URLs have the same origin.
func SameOrigin(a, b string) bool {
	oa, ok := Origin(a)
	if !ok {
		return false
	}
	ob, ok := Origin(b)
	return ok && oa == ob
}
