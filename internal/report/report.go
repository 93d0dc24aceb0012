// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report renders validation results for the console and for the
// GitHub job summary.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bartekus/robotsgen/internal/projection"
	"github.com/bartekus/robotsgen/internal/runner"
)

const rule = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"

var labels = map[runner.Severity]string{
	runner.SeverityInfo:    "INFO",
	runner.SeverityWarning: "WARN",
	runner.SeverityError:   "ERROR",
}

// Console prints the findings of one document, one line each, followed by
// a count line.
func Console(w io.Writer, title string, rep runner.Report) {
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, rule)
	_, _ = fmt.Fprintf(w, "VALIDATE: %s\n", title)
	_, _ = fmt.Fprintln(w, rule)

	for _, f := range rep.Findings {
		_, _ = fmt.Fprintf(w, "%-6s %-24s %s\n", labels[f.Severity], f.Check, f.Message)
	}

	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, Counts(rep))
}

// Counts summarizes a report as "E error(s), W warning(s), I info".
func Counts(rep runner.Report) string {
	return fmt.Sprintf("%d error(s), %d warning(s), %d info",
		rep.Count(runner.SeverityError),
		rep.Count(runner.SeverityWarning),
		rep.Count(runner.SeverityInfo))
}

// Summary describes the outcome of writing one file.
type Summary struct {
	Title   string
	Path    string
	Size    int
	Written bool
	Report  runner.Report
}

// Markdown renders s for $GITHUB_STEP_SUMMARY.
func Markdown(s Summary) string {
	var b strings.Builder

	b.WriteString(projection.RenderHeader(2, s.Title))

	status := "written"
	if !s.Written {
		status = "not written"
	}
	b.WriteString(projection.RenderList([]string{
		fmt.Sprintf("**File**: `%s` (%s)", s.Path, status),
		fmt.Sprintf("**Size**: %s bytes", strconv.Itoa(s.Size)),
		fmt.Sprintf("**Findings**: %s", Counts(s.Report)),
	}))
	b.WriteString("\n")

	if len(s.Report.Findings) == 0 {
		return b.String()
	}

	rows := make([][]string, 0, len(s.Report.Findings))
	for _, f := range s.Report.Findings {
		rows = append(rows, []string{string(f.Severity), "`" + f.Check + "`", f.Message})
	}
	b.WriteString(projection.RenderTable([]string{"Severity", "Check", "Message"}, rows))
	b.WriteString("\n")

	return b.String()
}
