// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bartekus/robotsgen/cmd/robotsgen/internal/clierr"
	"github.com/bartekus/robotsgen/internal/action"
	"github.com/bartekus/robotsgen/internal/artifact"
	"github.com/bartekus/robotsgen/internal/checks"
	"github.com/bartekus/robotsgen/internal/config"
	"github.com/bartekus/robotsgen/internal/projection"
	"github.com/bartekus/robotsgen/internal/report"
	"github.com/bartekus/robotsgen/internal/runner"
)

// target is one generated file on its way to disk.
type target struct {
	kind   string
	title  string
	path   string
	output string // step output carrying the written path
	text   string
}

// publish validates t, writes it unless strict validation failed, and then
// reports through every channel available: console, annotations, step
// outputs, job summary, run state and the artifact uploader.
func (a *app) publish(cmd *cobra.Command, cfg *config.Config, t target) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	rep, err := a.validate(ctx, cfg, t.kind, t.text, nil)
	if err != nil {
		return err
	}
	a.show(out, t.path, rep)

	written := false
	if !cfg.Strict || !rep.HasErrors() {
		if err := projection.AtomicWrite(t.path, []byte(t.text)); err != nil {
			return fmt.Errorf("writing %s: %w", t.path, err)
		}
		written = true
		_, _ = fmt.Fprintf(out, "wrote %s (%d bytes)\n", t.path, len(t.text))
		a.log.Info("file written", zap.String("path", t.path), zap.Int("size", len(t.text)))
	}

	a.record(cfg, t.kind, t.path, len(t.text), written, rep)
	if err := a.opts.Env.AppendSummary(report.Markdown(report.Summary{
		Title:   t.title,
		Path:    t.path,
		Size:    len(t.text),
		Written: written,
		Report:  rep,
	})); err != nil {
		a.log.Warn("could not append job summary", zap.Error(err))
	}

	if !written {
		return clierr.Newf(clierr.ExitValidation, "%s failed strict validation: %s", t.path, report.Counts(rep))
	}

	if err := a.opts.Env.SetOutput(t.output, t.path); err != nil {
		a.log.Warn("could not set step output", zap.String("output", t.output), zap.Error(err))
	}

	if cfg.Upload {
		a.upload(ctx, out, cfg, t.path)
	}
	return nil
}

// validate runs the checks for kind, or only the listed check IDs.
func (a *app) validate(ctx context.Context, cfg *config.Config, kind, text string, ids []string) (runner.Report, error) {
	r, err := a.runnerFor(kind)
	if err != nil {
		return runner.Report{}, err
	}

	in := &runner.Input{
		Text:           text,
		Strict:         cfg.Strict,
		MaxSizeKB:      cfg.MaxSizeKB,
		RequireSitemap: cfg.RequireSitemap,
		PublicDir:      cfg.PublicDir,
		SiteURL:        cfg.SiteURL,
		Now:            a.opts.Now,
	}
	if len(ids) == 0 {
		return r.RunAll(ctx, in)
	}
	rep, err := r.RunList(ctx, in, ids)
	if err != nil && ctx.Err() == nil {
		return rep, clierr.Wrapf(clierr.ExitConfig, err, "available %s checks: %s", kind, strings.Join(r.Checks(), ", "))
	}
	return rep, err
}

func (a *app) runnerFor(kind string) (*runner.Runner, error) {
	cs, err := checks.ForKind(kind)
	if err != nil {
		return nil, clierr.WithCode(clierr.ExitConfig, err)
	}
	return runner.NewRunner(cs, a.log), nil
}

// show prints the console report and, inside Actions, one annotation per
// warning or error.
func (a *app) show(w io.Writer, path string, rep runner.Report) {
	report.Console(w, path, rep)
	if !a.opts.Env.InActions {
		return
	}
	for _, f := range rep.Findings {
		action.Annotate(w, path, f)
	}
}

// record stores the run summary. Failing to do so never fails the run.
func (a *app) record(cfg *config.Config, kind, path string, size int, written bool, rep runner.Report) {
	status := "pass"
	if rep.HasErrors() {
		status = "fail"
	}

	last := runner.LastRun{
		ID:       uuid.NewString(),
		Kind:     kind,
		Status:   status,
		File:     path,
		Size:     size,
		Written:  written,
		Findings: rep.Findings,
	}
	if err := runner.NewStateStore(cfg.StateDir).WriteLastRun(last); err != nil {
		a.log.Warn("could not save run state", zap.String("dir", cfg.StateDir), zap.Error(err))
		return
	}
	a.log.Debug("run state saved", zap.String("id", last.ID), zap.String("status", status))
}

// upload is best effort: a failure is logged and reported, never returned.
func (a *app) upload(ctx context.Context, out io.Writer, cfg *config.Config, path string) {
	rel, err := filepath.Rel(cfg.OutputDir, path)
	if err != nil {
		a.log.Warn("artifact upload skipped", zap.String("path", path), zap.Error(err))
		return
	}

	res, err := a.uploader.Upload(ctx, artifact.Request{
		Name:          cfg.ArtifactName,
		RootDir:       cfg.OutputDir,
		Files:         []string{rel},
		RetentionDays: cfg.RetentionDays,
	})
	if err != nil {
		a.log.Warn("artifact upload failed", zap.String("artifact", cfg.ArtifactName), zap.Error(err))
		if a.opts.Env.InActions {
			action.Annotate(out, "", runner.Finding{
				Check:    "artifact",
				Severity: runner.SeverityWarning,
				Message:  fmt.Sprintf("artifact upload failed: %v", err),
			})
		}
		return
	}
	if res.Dir == "" {
		a.log.Debug("artifact upload is a no-op outside GitHub Actions")
		return
	}

	a.log.Info("artifact staged", zap.String("artifact", cfg.ArtifactName), zap.String("dir", res.Dir))
	if err := a.opts.Env.SetOutput("artifact-dir", res.Dir); err != nil {
		a.log.Warn("could not set step output", zap.String("output", "artifact-dir"), zap.Error(err))
	}
}
