// SPDX-License-Identifier: AGPL-3.0-or-later
package runner

import (
	"context"
	"time"
)

// Input is what every check sees: the document text plus the limits and
// context that shape the findings.
type Input struct {
	Text string

	// Strict promotes structural warnings to errors.
	Strict         bool
	MaxSizeKB      int
	RequireSitemap bool

	// PublicDir and SiteURL enable the checks that look at the built site.
	// Either may be empty.
	PublicDir string
	SiteURL   string

	// Now is used by date checks; nil means time.Now.
	Now func() time.Time
}

// Problem is the severity of a structural issue under the current policy.
func (in *Input) Problem() Severity {
	if in.Strict {
		return SeverityError
	}
	return SeverityWarning
}

// Time returns the current time as seen by checks.
func (in *Input) Time() time.Time {
	if in.Now != nil {
		return in.Now()
	}
	return time.Now()
}

// Check is one independent validation rule.
type Check interface {
	// ID returns the unique identifier (e.g. "robots:size").
	ID() string

	// Run inspects the input and returns zero or more findings.
	Run(ctx context.Context, in *Input) []Finding
}
