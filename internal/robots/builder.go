// SPDX-License-Identifier: AGPL-3.0-or-later

// Package robots builds robots.txt documents and evaluates their
// Allow/Disallow patterns.
package robots

import (
	"net/url"
	"strings"

	"github.com/bartekus/robotsgen/internal/config"
)

// Banner is prepended when comments are enabled.
const Banner = "# robots.txt generated by robotsgen\n# https://www.robotstxt.org/robotstxt.html\n"

// Document is a generated robots.txt.
type Document struct {
	Text string
	Size int
}

// Build assembles the robots.txt text for cfg. It never fails; anything
// questionable (an odd Crawl-delay, a relative sitemap that cannot be
// resolved) is left for validation to report.
//
// Allow lines are emitted before Disallow lines so they read as exceptions.
// Crawlers that apply longest-match semantics are unaffected by the order.
func Build(cfg *config.Config) Document {
	var b strings.Builder

	if cfg.Comments {
		b.WriteString(Banner)
		b.WriteString("\n")
	}

	agent := strings.TrimSpace(cfg.UserAgent)
	if agent == "" {
		agent = config.DefaultUserAgent
	}
	b.WriteString("User-agent: " + agent + "\n")

	if len(cfg.Allow) == 0 && len(cfg.Disallow) == 0 {
		b.WriteString("Disallow:\n")
	} else {
		for _, p := range cfg.Allow {
			b.WriteString("Allow: " + config.NormalizePath(p) + "\n")
		}
		for _, p := range cfg.Disallow {
			b.WriteString("Disallow: " + config.NormalizePath(p) + "\n")
		}
	}

	if cfg.CrawlDelay != "" {
		b.WriteString("Crawl-delay: " + cfg.CrawlDelay + "\n")
	}

	if len(cfg.Sitemaps) > 0 {
		b.WriteString("\n")
		for _, s := range cfg.Sitemaps {
			b.WriteString("Sitemap: " + ResolveSitemap(cfg.SiteURL, s) + "\n")
		}
	}

	text := b.String()
	return Document{Text: text, Size: len(text)}
}

// IsAbsoluteHTTP reports whether s is an http or https URL.
func IsAbsoluteHTTP(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// ResolveSitemap returns entry unchanged when it is already an absolute
// http(s) URL, otherwise it is treated as a root-relative path on the site.
func ResolveSitemap(siteURL, entry string) string {
	entry = strings.TrimSpace(entry)
	if IsAbsoluteHTTP(entry) {
		return entry
	}

	rel := "/" + strings.TrimLeft(entry, "/")
	base, err := url.Parse(siteURL)
	if err != nil || base.Host == "" {
		return strings.TrimSuffix(siteURL, "/") + rel
	}
	ref, err := url.Parse(rel)
	if err != nil {
		return strings.TrimSuffix(siteURL, "/") + rel
	}
	return base.ResolveReference(ref).String()
}
