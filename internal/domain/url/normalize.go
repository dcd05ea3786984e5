// Package url provides URL manipulation utilities for the preview session.
package url

import (
	"errors"
	"net/url"
	"strings"
)

// Normalize adds https:// to typed addresses such as "example.com".
// Input that already has a scheme or does not look like an address is
// returned trimmed but otherwise unchanged.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return ""
	}

	if hasExplicitScheme(input) {
		return input
	}

	if looksLikeURL(input) {
		return "https://" + input
	}

	return input
}

// looksLikeURL reports whether input reads as an address rather than words.
func looksLikeURL(input string) bool {
	if input == "" {
		return false
	}

	if hasExplicitScheme(input) {
		return true
	}

	// Contains a dot and no spaces = likely a URL
	return strings.Contains(input, ".") && !strings.Contains(input, " ")
}

func hasExplicitScheme(input string) bool {
	switch {
	case strings.HasPrefix(input, "http://"):
		return true
	case strings.HasPrefix(input, "https://"):
		return true
	case strings.HasPrefix(input, "file://"):
		return true
	case strings.HasPrefix(input, "about:"):
		return true
	}
	return false
}

// ParseAbsolute parses raw and requires a scheme and a host.
func ParseAbsolute(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, &url.Error{Op: "parse", URL: raw, Err: errNotAbsolute}
	}
	return u, nil
}

var errNotAbsolute = errors.New("not an absolute URL")

// Hostname returns the host without port for an absolute URL string, or "".
func Hostname(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// FaviconURL builds a favicon-service URL keyed by hostname.
func FaviconURL(serviceBase, hostname string) string {
	return serviceBase + hostname
}
