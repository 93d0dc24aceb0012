// SPDX-License-Identifier: AGPL-3.0-or-later

// Package checks holds the validation rules for generated site files.
package checks

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bartekus/robotsgen/internal/runner"
)

// Kinds of documents that can be validated.
const (
	KindRobots   = "robots"
	KindHumans   = "humans"
	KindSecurity = "security"
)

// Robots returns the robots.txt checks in their canonical order.
func Robots() []runner.Check {
	return []runner.Check{
		NewSize("robots:size", "robots.txt"),
		NewUserAgent(),
		NewSitemaps(),
		NewOrder(),
		NewCrawlDelay(),
		NewRequireSitemap(),
		NewCanonical(),
	}
}

// Humans returns the humans.txt checks.
func Humans() []runner.Check {
	return []runner.Check{
		NewSize("humans:size", "humans.txt"),
		NewHumansSections(),
		NewHumansFields(),
		NewHumansEncoding(),
	}
}

// Security returns the RFC 9116 security.txt checks.
func Security() []runner.Check {
	return []runner.Check{
		NewSize("security:size", "security.txt"),
		NewSecurityContact(),
		NewSecurityExpires(),
		NewSecuritySingleFields(),
		NewSecurityHTTPS(),
		NewSecuritySignature(),
	}
}

// ForKind returns the check set for a document kind.
func ForKind(kind string) ([]runner.Check, error) {
	switch kind {
	case KindRobots:
		return Robots(), nil
	case KindHumans:
		return Humans(), nil
	case KindSecurity:
		return Security(), nil
	default:
		return nil, fmt.Errorf("unknown document kind %q (want %s, %s or %s)", kind, KindRobots, KindHumans, KindSecurity)
	}
}

// KindOf guesses the document kind from a file name.
func KindOf(path string) (string, bool) {
	base := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasPrefix(base, "humans"):
		return KindHumans, true
	case strings.HasPrefix(base, "security"):
		return KindSecurity, true
	case strings.HasPrefix(base, "robots"):
		return KindRobots, true
	}
	return "", false
}
