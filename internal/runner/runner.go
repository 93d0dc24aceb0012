// SPDX-License-Identifier: AGPL-3.0-or-later

// Package runner executes an ordered set of independent checks against one
// document and keeps the summary of the last run.
package runner

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Runner executes an ordered set of checks against one document.
type Runner struct {
	checks []Check
	logger *zap.Logger
}

// NewRunner creates a runner over the given checks. A nil logger discards.
func NewRunner(checks []Check, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		checks: checks,
		logger: logger,
	}
}

// Checks returns the registered check IDs in execution order.
func (r *Runner) Checks() []string {
	ids := make([]string, 0, len(r.checks))
	for _, c := range r.checks {
		ids = append(ids, c.ID())
	}
	return ids
}

// RunAll executes every check in order. No check short-circuits another.
// The only error is context cancellation.
func (r *Runner) RunAll(ctx context.Context, in *Input) (Report, error) {
	return r.executeSequence(ctx, in, r.checks)
}

// RunList executes a specific list of check IDs.
func (r *Runner) RunList(ctx context.Context, in *Input, ids []string) (Report, error) {
	var toRun []Check
	for _, id := range ids {
		c := r.findCheck(id)
		if c == nil {
			return Report{}, fmt.Errorf("check not found: %s", id)
		}
		toRun = append(toRun, c)
	}
	return r.executeSequence(ctx, in, toRun)
}

func (r *Runner) findCheck(id string) Check {
	for _, c := range r.checks {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

func (r *Runner) executeSequence(ctx context.Context, in *Input, checks []Check) (Report, error) {
	rep := Report{Findings: []Finding{}}

	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return rep, fmt.Errorf("validation interrupted before %s: %w", c.ID(), err)
		}

		found := r.runOne(ctx, c, in)
		r.logger.Debug("check finished",
			zap.String("check", c.ID()),
			zap.Int("findings", len(found)))

		rep.Findings = append(rep.Findings, found...)
	}

	return rep, nil
}

// runOne converts a panicking check into a single finding so one broken
// rule cannot take the whole run down.
func (r *Runner) runOne(ctx context.Context, c Check, in *Input) (found []Finding) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("check panicked",
				zap.String("check", c.ID()),
				zap.Any("panic", rec))
			found = []Finding{{
				Check:    c.ID(),
				Severity: in.Problem(),
				Message:  fmt.Sprintf("validation failed unexpectedly: %v", rec),
			}}
		}
	}()
	return c.Run(ctx, in)
}
