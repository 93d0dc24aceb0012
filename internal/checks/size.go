// SPDX-License-Identifier: AGPL-3.0-or-later
package checks

import (
	"context"
	"fmt"

	"github.com/bartekus/robotsgen/internal/config"
	"github.com/bartekus/robotsgen/internal/runner"
)

// Size compares the document size against the configured limit.
type Size struct {
	id    string
	label string
}

func NewSize(id, label string) runner.Check {
	return &Size{id: id, label: label}
}

func (s *Size) ID() string { return s.id }

func (s *Size) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	limitKB := in.MaxSizeKB
	if limitKB <= 0 {
		limitKB = config.DefaultMaxSizeKB
	}
	size := len(in.Text)

	if size > limitKB*1024 {
		return []runner.Finding{{
			Check:    s.id,
			Severity: in.Problem(),
			Message:  fmt.Sprintf("%s is %d bytes, above the %d KB limit", s.label, size, limitKB),
		}}
	}
	return []runner.Finding{{
		Check:    s.id,
		Severity: runner.SeverityInfo,
		Message:  fmt.Sprintf("%s is %d bytes (limit %d KB)", s.label, size, limitKB),
	}}
}
