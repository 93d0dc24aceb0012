// SPDX-License-Identifier: AGPL-3.0-or-later
package checks

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/bartekus/robotsgen/internal/canonical"
	"github.com/bartekus/robotsgen/internal/robots"
	"github.com/bartekus/robotsgen/internal/runner"
	"github.com/bartekus/robotsgen/internal/scanner"
)

// Canonical cross-checks the built pages against the rules: a page that
// declares itself canonical but is disallowed is almost always a mistake.
// Allow rules count as exceptions to Disallow rules.
type Canonical struct{ id string }

func NewCanonical() runner.Check { return &Canonical{id: "robots:canonical"} }

func (c *Canonical) ID() string { return c.id }

func (c *Canonical) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	if in.PublicDir == "" {
		return nil
	}
	if info, err := os.Stat(in.PublicDir); err != nil || !info.IsDir() {
		return nil
	}

	pages, err := canonical.Discover(ctx, scanner.New(in.PublicDir))
	if err != nil {
		return []runner.Finding{{
			Check:    c.id,
			Severity: runner.SeverityWarning,
			Message:  fmt.Sprintf("could not scan %s for canonical links: %v", in.PublicDir, err),
		}}
	}
	if len(pages) == 0 {
		return nil
	}

	lines := robots.ParseLines(in.Text)
	disallow := nonEmpty(robots.Values(lines, "disallow"))
	allow := nonEmpty(robots.Values(lines, "allow"))

	var siteHost string
	if u, err := url.Parse(in.SiteURL); err == nil {
		siteHost = strings.ToLower(u.Host)
	}

	var out []runner.Finding
	foreign := 0
	for _, p := range pages {
		u, err := url.Parse(p.Canonical)
		if err != nil {
			out = append(out, runner.Finding{
				Check:    c.id,
				Severity: runner.SeverityWarning,
				Message:  fmt.Sprintf("%s: canonical URL %q does not parse", p.File, p.Canonical),
			})
			continue
		}
		if u.Host != "" && siteHost != "" && strings.ToLower(u.Host) != siteHost {
			foreign++
			continue
		}

		path := u.EscapedPath()
		if path == "" {
			path = "/"
		}
		if robots.IsPathDisallowed(path, disallow) && !robots.IsPathDisallowed(path, allow) {
			out = append(out, runner.Finding{
				Check:    c.id,
				Severity: runner.SeverityWarning,
				Message:  fmt.Sprintf("%s: canonical page %s is disallowed", p.File, path),
			})
		}
	}

	if foreign > 0 {
		out = append(out, runner.Finding{
			Check:    c.id,
			Severity: runner.SeverityInfo,
			Message:  fmt.Sprintf("pages with a canonical URL outside %s: %d", siteHost, foreign),
		})
	}
	return out
}

func nonEmpty(values []string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
