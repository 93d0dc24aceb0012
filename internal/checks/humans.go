// SPDX-License-Identifier: AGPL-3.0-or-later
package checks

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/bartekus/robotsgen/internal/runner"
)

var (
	humansSectionRe = regexp.MustCompile(`(?i)/\*\s*(TEAM|SITE|THANKS)\s*\*/`)
	humansFieldRe   = regexp.MustCompile(`(?im)^\s*(Name|Contact|Twitter|From|Location|Last update|Language|Doctype|Standards|Components|Software|IDE)\s*:`)
)

var humansSections = []string{"TEAM", "THANKS", "SITE"}

// HumansSections looks for the standard comment-delimited sections.
type HumansSections struct{ id string }

func NewHumansSections() runner.Check { return &HumansSections{id: "humans:sections"} }

func (c *HumansSections) ID() string { return c.id }

func (c *HumansSections) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	found := map[string]bool{}
	for _, m := range humansSectionRe.FindAllStringSubmatch(in.Text, -1) {
		found[strings.ToUpper(m[1])] = true
	}

	if len(found) == 0 {
		return []runner.Finding{{
			Check:    c.id,
			Severity: in.Problem(),
			Message:  "no standard sections found (expected /* TEAM */, /* THANKS */ or /* SITE */)",
		}}
	}

	var out []runner.Finding
	for _, s := range humansSections {
		if !found[s] {
			out = append(out, runner.Finding{
				Check:    c.id,
				Severity: runner.SeverityInfo,
				Message:  fmt.Sprintf("section /* %s */ is missing", s),
			})
		}
	}
	return out
}

// HumansFields counts the well-known humanstxt.org fields.
type HumansFields struct{ id string }

func NewHumansFields() runner.Check { return &HumansFields{id: "humans:fields"} }

func (c *HumansFields) ID() string { return c.id }

func (c *HumansFields) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	n := len(humansFieldRe.FindAllStringIndex(in.Text, -1))
	if n == 0 {
		return []runner.Finding{{
			Check:    c.id,
			Severity: runner.SeverityWarning,
			Message:  "no known humans.txt fields found (Name, Contact, Last update, Language, ...)",
		}}
	}
	return []runner.Finding{{
		Check:    c.id,
		Severity: runner.SeverityInfo,
		Message:  fmt.Sprintf("%d known field%s", n, plural(n, "", "s")),
	}}
}

// HumansEncoding hints at serving non-ASCII content as UTF-8.
type HumansEncoding struct{ id string }

func NewHumansEncoding() runner.Check { return &HumansEncoding{id: "humans:encoding"} }

func (c *HumansEncoding) ID() string { return c.id }

func (c *HumansEncoding) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	if !utf8.ValidString(in.Text) {
		return []runner.Finding{{
			Check:    c.id,
			Severity: runner.SeverityWarning,
			Message:  "humans.txt is not valid UTF-8",
		}}
	}
	for _, r := range in.Text {
		if r > 127 {
			return []runner.Finding{{
				Check:    c.id,
				Severity: runner.SeverityInfo,
				Message:  "humans.txt contains non-ASCII characters; serve it with charset=utf-8",
			}}
		}
	}
	return nil
}
