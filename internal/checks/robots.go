// SPDX-License-Identifier: AGPL-3.0-or-later
package checks

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bartekus/robotsgen/internal/robots"
	"github.com/bartekus/robotsgen/internal/runner"
)

// UserAgent requires at least one User-agent line.
type UserAgent struct{ id string }

func NewUserAgent() runner.Check { return &UserAgent{id: "robots:user-agent"} }

func (c *UserAgent) ID() string { return c.id }

func (c *UserAgent) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	if len(robots.Values(robots.ParseLines(in.Text), "user-agent")) > 0 {
		return nil
	}
	return []runner.Finding{{
		Check:    c.id,
		Severity: in.Problem(),
		Message:  "no User-agent directive found",
	}}
}

// Sitemaps inspects the Sitemap lines: duplicates, scheme and, when the
// public directory is known, whether the referenced file was built.
type Sitemaps struct{ id string }

func NewSitemaps() runner.Check { return &Sitemaps{id: "robots:sitemaps"} }

func (c *Sitemaps) ID() string { return c.id }

func (c *Sitemaps) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	urls := robots.Values(robots.ParseLines(in.Text), "sitemap")
	if len(urls) == 0 {
		return nil
	}

	var unique []string
	seen := make(map[string]bool, len(urls))
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			unique = append(unique, u)
		}
	}

	var out []runner.Finding
	if dup := len(urls) - len(unique); dup > 0 {
		out = append(out, runner.Finding{
			Check:    c.id,
			Severity: runner.SeverityWarning,
			Message:  fmt.Sprintf("%d duplicate sitemap entr%s", dup, plural(dup, "y", "ies")),
		})
	}
	out = append(out, runner.Finding{
		Check:    c.id,
		Severity: runner.SeverityInfo,
		Message:  fmt.Sprintf("%d unique sitemap%s declared", len(unique), plural(len(unique), "", "s")),
	})

	for _, u := range unique {
		if !robots.IsAbsoluteHTTP(u) {
			out = append(out, runner.Finding{
				Check:    c.id,
				Severity: runner.SeverityWarning,
				Message:  fmt.Sprintf("sitemap %q is not an absolute http(s) URL", u),
			})
			continue
		}
		if local, ok := localPath(in.PublicDir, in.SiteURL, u); ok {
			if _, err := os.Stat(local); err != nil {
				out = append(out, runner.Finding{
					Check:    c.id,
					Severity: runner.SeverityWarning,
					Message:  fmt.Sprintf("sitemap %s not found in public directory (expected %s)", u, local),
				})
			}
		}
	}
	return out
}

// localPath maps a URL under siteURL to a file under publicDir.
func localPath(publicDir, siteURL, u string) (string, bool) {
	if publicDir == "" || siteURL == "" {
		return "", false
	}
	site := strings.TrimSuffix(siteURL, "/")
	if !strings.HasPrefix(strings.ToLower(u), strings.ToLower(site)) {
		return "", false
	}
	rest := u[len(site):]
	if rest != "" && !strings.HasPrefix(rest, "/") {
		return "", false
	}
	if i := strings.IndexAny(rest, "?#"); i >= 0 {
		rest = rest[:i]
	}
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		return "", false
	}
	return filepath.Join(publicDir, filepath.FromSlash(rest)), true
}

// Order flags group directives that appear before any User-agent line.
type Order struct{ id string }

func NewOrder() runner.Check { return &Order{id: "robots:order"} }

func (c *Order) ID() string { return c.id }

func (c *Order) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	var out []runner.Finding
	for _, l := range robots.ParseLines(in.Text) {
		if l.Field == "user-agent" {
			break
		}
		switch l.Field {
		case "allow", "disallow", "crawl-delay":
			out = append(out, runner.Finding{
				Check:    c.id,
				Severity: runner.SeverityWarning,
				Message:  fmt.Sprintf("line %d: %s appears before any User-agent line", l.Number, l.Field),
			})
		}
	}
	return out
}

// CrawlDelay requires every Crawl-delay to be a finite, non-negative number.
type CrawlDelay struct{ id string }

func NewCrawlDelay() runner.Check { return &CrawlDelay{id: "robots:crawl-delay"} }

func (c *CrawlDelay) ID() string { return c.id }

func (c *CrawlDelay) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	var out []runner.Finding
	for _, l := range robots.ParseLines(in.Text) {
		if l.Field != "crawl-delay" {
			continue
		}
		v, err := strconv.ParseFloat(l.Value, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			out = append(out, runner.Finding{
				Check:    c.id,
				Severity: runner.SeverityWarning,
				Message:  fmt.Sprintf("line %d: Crawl-delay %q is not a non-negative number", l.Number, l.Value),
			})
		}
	}
	return out
}

// RequireSitemap fails when a sitemap is mandatory but none is declared.
type RequireSitemap struct{ id string }

func NewRequireSitemap() runner.Check { return &RequireSitemap{id: "robots:require-sitemap"} }

func (c *RequireSitemap) ID() string { return c.id }

func (c *RequireSitemap) Run(ctx context.Context, in *runner.Input) []runner.Finding {
	if !in.RequireSitemap {
		return nil
	}
	if len(robots.Values(robots.ParseLines(in.Text), "sitemap")) > 0 {
		return nil
	}
	return []runner.Finding{{
		Check:    c.id,
		Severity: in.Problem(),
		Message:  "a Sitemap directive is required but none was found",
	}}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
