// SPDX-License-Identifier: AGPL-3.0-or-later
package scanner

import (
	"path"
	"sort"
	"strings"
)

// PageExtensions are the file extensions served as HTML pages.
var PageExtensions = []string{".html", ".htm", ".xhtml"}

// FilterOptions selects which site files take part in a scan.
type FilterOptions struct {
	// ExcludeDirs drops any path with a matching directory segment.
	// "drafts" excludes "drafts/a.html" and "blog/drafts/b.html" but not
	// "drafts-2024/c.html".
	ExcludeDirs []string

	// Extensions keeps only files with one of these extensions, compared
	// case-insensitively. Empty keeps everything.
	Extensions []string

	// SkipHidden drops files inside directories whose name starts with a dot.
	SkipHidden bool
}

// DefaultExcludeDirs returns the directories never treated as site content.
func DefaultExcludeDirs() []string {
	return []string{
		"node_modules",
		".well-known",
		".robotsgen",
	}
}

// FilterFiles applies opts to slash-separated paths and returns the
// survivors sorted.
func FilterFiles(paths []string, opts FilterOptions) []string {
	if len(paths) == 0 {
		return nil
	}

	var filtered []string
	for _, p := range paths {
		if excludedDir(p, opts) || !hasExtension(p, opts.Extensions) {
			continue
		}
		filtered = append(filtered, p)
	}

	sort.Strings(filtered)
	return filtered
}

func excludedDir(p string, opts FilterOptions) bool {
	dir := path.Dir(p)
	if dir == "." {
		return false
	}
	for _, seg := range strings.Split(dir, "/") {
		if opts.SkipHidden && strings.HasPrefix(seg, ".") {
			return true
		}
		for _, ex := range opts.ExcludeDirs {
			if seg == ex {
				return true
			}
		}
	}
	return false
}

func hasExtension(p string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(path.Ext(p))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
