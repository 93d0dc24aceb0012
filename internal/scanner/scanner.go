// SPDX-License-Identifier: AGPL-3.0-or-later

// Package scanner lists the pages of a built site.
package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// Scanner lists the files of a built site directory.
type Scanner struct {
	root string
	fsys fs.FS

	mu        sync.Mutex
	htmlCache []string
}

// New creates a new Scanner rooted at the public directory.
func New(root string) *Scanner {
	return &Scanner{
		root: root,
		fsys: os.DirFS(root),
	}
}

// Root returns the directory the scanner walks.
func (s *Scanner) Root() string { return s.root }

// Glob returns the slash-separated paths under the root matching a
// doublestar pattern (e.g. "**/*.html"), filtered and sorted.
func (s *Scanner) Glob(ctx context.Context, pattern string, opts FilterOptions) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matches, err := doublestar.Glob(s.fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s in %s: %w", pattern, s.root, err)
	}
	return FilterFiles(matches, opts), nil
}

// HTMLFiles returns every HTML page of the site. Hidden directories and
// DefaultExcludeDirs are skipped. The result is cached for the instance
// lifetime.
func (s *Scanner) HTMLFiles(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.htmlCache != nil {
		return s.htmlCache, nil
	}

	files, err := s.Glob(ctx, "**/*", FilterOptions{
		ExcludeDirs: DefaultExcludeDirs(),
		Extensions:  PageExtensions,
		SkipHidden:  true,
	})
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []string{}
	}
	s.htmlCache = files
	return s.htmlCache, nil
}
