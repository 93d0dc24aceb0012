// SPDX-License-Identifier: AGPL-3.0-or-later
package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFiles(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		opts     FilterOptions
		expected []string
	}{
		{
			name:  "exclude node_modules",
			paths: []string{"index.html", "node_modules/pkg/readme.html", "blog/post.html"},
			opts: FilterOptions{
				ExcludeDirs: []string{"node_modules"},
			},
			expected: []string{"blog/post.html", "index.html"},
		},
		{
			name:  "segment matching only",
			paths: []string{"well-known/a.html", ".well-known/b.html"},
			opts: FilterOptions{
				ExcludeDirs: []string{".well-known"},
			},
			expected: []string{"well-known/a.html"},
		},
		{
			name:  "extension filter ignores case",
			paths: []string{"a.html", "b.css", "c.htm", "D.HTML", "e.html.bak"},
			opts: FilterOptions{
				Extensions: PageExtensions,
			},
			expected: []string{"D.HTML", "a.html", "c.htm"},
		},
		{
			name:  "hidden directories",
			paths: []string{".hidden.html", ".cache/a.html", "blog/.drafts/b.html", "blog/c.html"},
			opts: FilterOptions{
				SkipHidden: true,
			},
			expected: []string{".hidden.html", "blog/c.html"},
		},
		{
			name:     "empty input",
			paths:    nil,
			opts:     FilterOptions{},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterFiles(tt.paths, tt.opts)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestScanner_HTMLFiles(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	createFile(t, dir, "index.html")
	createFile(t, dir, "about/index.html")
	createFile(t, dir, "legacy/page.htm")
	createFile(t, dir, "styles/site.css")
	createFile(t, dir, "node_modules/x/index.html")
	createFile(t, dir, ".well-known/security.html")
	createFile(t, dir, ".git/info.html")
	createFile(t, dir, "drafts/UPPER.HTML")

	s := New(dir)

	files, err := s.HTMLFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"about/index.html", "drafts/UPPER.HTML", "index.html", "legacy/page.htm"}, files)

	// Cached result survives new files.
	createFile(t, dir, "late.html")
	again, err := s.HTMLFiles(ctx)
	require.NoError(t, err)
	assert.Equal(t, files, again)
}

func TestScanner_Glob(t *testing.T) {
	dir := t.TempDir()
	createFile(t, dir, "sitemap.xml")
	createFile(t, dir, "sitemaps/news.xml")
	createFile(t, dir, "index.html")

	files, err := New(dir).Glob(context.Background(), "**/*.xml", FilterOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"sitemap.xml", "sitemaps/news.xml"}, files)
}

func createFile(t *testing.T, dir, path string, content ...string) {
	fullPath := filepath.Join(dir, path)
	err := os.MkdirAll(filepath.Dir(fullPath), 0755)
	require.NoError(t, err)

	data := ""
	if len(content) > 0 {
		data = content[0]
	}
	err = os.WriteFile(fullPath, []byte(data), 0644)
	require.NoError(t, err)
}
