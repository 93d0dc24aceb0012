// SPDX-License-Identifier: AGPL-3.0-or-later
package robots

import (
	"regexp"
	"strings"
)

// MatchesPattern reports whether path is covered by a single Allow/Disallow
// pattern. Supported syntax is the informal robots.txt convention:
//
//   - "/" matches every path
//   - a trailing "$" anchors the pattern at the end of the path
//   - "*" matches any sequence of characters
//   - anything else is a plain prefix match
//
// An empty pattern matches nothing, the same way an empty "Disallow:" does.
func MatchesPattern(path, pattern string) bool {
	if pattern == "" {
		return false
	}
	if pattern == "/" {
		return true
	}

	if strings.HasSuffix(pattern, "$") {
		re, err := wildcardRegexp(strings.TrimSuffix(pattern, "$"), true)
		return err == nil && re.MatchString(path)
	}
	if strings.Contains(pattern, "*") {
		re, err := wildcardRegexp(pattern, false)
		return err == nil && re.MatchString(path)
	}
	return strings.HasPrefix(path, pattern)
}

// IsPathDisallowed reports whether path matches any of the patterns.
func IsPathDisallowed(path string, patterns []string) bool {
	for _, p := range patterns {
		if MatchesPattern(path, p) {
			return true
		}
	}
	return false
}

// wildcardRegexp translates a robots pattern into a regexp anchored at the
// start of the path. Everything except "*" is matched literally; the only
// compile failure left is invalid UTF-8 in the pattern.
func wildcardRegexp(pattern string, anchorEnd bool) (*regexp.Regexp, error) {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}

	expr := "^" + strings.Join(parts, ".*")
	if anchorEnd {
		expr += "$"
	}
	return regexp.Compile("(?s)" + expr)
}
