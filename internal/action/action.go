// SPDX-License-Identifier: AGPL-3.0-or-later

// Package action talks to the GitHub Actions runner through its workflow
// command protocol and the files it exposes via environment variables.
package action

import (
	"fmt"
	"io"
	"os"

	"github.com/sethvargo/go-githubactions"

	"github.com/bartekus/robotsgen/internal/runner"
)

// Env is the subset of the runner environment robotsgen uses.
type Env struct {
	InActions   bool
	OutputFile  string
	SummaryFile string
}

// FromEnv reads the runner environment of the current process.
func FromEnv() Env {
	return Env{
		InActions:   os.Getenv("GITHUB_ACTIONS") == "true",
		OutputFile:  os.Getenv("GITHUB_OUTPUT"),
		SummaryFile: os.Getenv("GITHUB_STEP_SUMMARY"),
	}
}

func (e Env) getenv(key string) string {
	switch key {
	case "GITHUB_OUTPUT":
		return e.OutputFile
	case "GITHUB_STEP_SUMMARY":
		return e.SummaryFile
	}
	return os.Getenv(key)
}

func (e Env) client(w io.Writer) *githubactions.Action {
	return githubactions.New(
		githubactions.WithWriter(w),
		githubactions.WithGetenv(e.getenv),
	)
}

// SetOutput appends a step output. It is a no-op when $GITHUB_OUTPUT is unset.
func (e Env) SetOutput(name, value string) error {
	if e.OutputFile == "" {
		return nil
	}
	return guard("setting output "+name, func() {
		e.client(io.Discard).SetOutput(name, value)
	})
}

// AppendSummary appends Markdown to the job summary. It is a no-op when
// $GITHUB_STEP_SUMMARY is unset.
func (e Env) AppendSummary(md string) error {
	if e.SummaryFile == "" {
		return nil
	}
	return guard("appending job summary", func() {
		e.client(io.Discard).AddStepSummary(md)
	})
}

// guard turns the panics githubactions raises on file errors into errors.
func guard(what string, fn func()) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%s: %v", what, rec)
		}
	}()
	fn()
	return nil
}

// Annotate writes f as a workflow command so it shows up on the run page.
// Info findings are not annotated.
func Annotate(w io.Writer, file string, f runner.Finding) {
	fields := map[string]string{"title": f.Check}
	if file != "" {
		fields["file"] = file
	}
	a := Env{}.client(w).WithFieldsMap(fields)

	switch f.Severity {
	case runner.SeverityWarning:
		a.Warningf("%s", f.Message)
	case runner.SeverityError:
		a.Errorf("%s", f.Message)
	}
}
