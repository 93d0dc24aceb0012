// SPDX-License-Identifier: AGPL-3.0-or-later

// Package canonical discovers the canonical URLs declared by the pages of a
// built site.
package canonical

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/bartekus/robotsgen/internal/scanner"
)

// Page is an HTML file and the canonical URL it declares.
type Page struct {
	// File is slash-separated and relative to the site root.
	File      string
	Canonical string
}

// Extract returns the canonical URL of an HTML document. It prefers
// <link rel="canonical"> and falls back to <meta property="og:url">.
// An empty string means the page declares none.
func Extract(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	if href, ok := doc.Find(`link[rel~="canonical"]`).First().Attr("href"); ok {
		if href = strings.TrimSpace(href); href != "" {
			return href, nil
		}
	}
	if content, ok := doc.Find(`meta[property="og:url"]`).First().Attr("content"); ok {
		return strings.TrimSpace(content), nil
	}
	return "", nil
}

// Discover reads every HTML page found by s and returns the pages that
// declare a canonical URL, in file order. Unreadable pages are skipped.
func Discover(ctx context.Context, s *scanner.Scanner) ([]Page, error) {
	files, err := s.HTMLFiles(ctx)
	if err != nil {
		return nil, err
	}

	var pages []Page
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		href, err := extractFile(filepath.Join(s.Root(), filepath.FromSlash(rel)))
		if err != nil || href == "" {
			continue
		}
		pages = append(pages, Page{File: rel, Canonical: href})
	}
	return pages, nil
}

func extractFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from walking the public directory
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()
	return Extract(f)
}
