// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/robotsgen/cmd/robotsgen/internal/clierr"
)

const siteConfig = `site-url: https://example.com
humans:
  team:
    - name: Ada Lovelace
      role: Developer
      contact: ada [at] example.com
  site:
    language: English
    standards: [HTML5, CSS3]
security:
  contact:
    - mailto:security@example.com
  preferred-languages: [en, pl]
  policy:
    - http://example.com/security-policy
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "robotsgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestHumans(t *testing.T) {
	h := newHarness(t)
	h.inActions(t)

	_, err := h.run("humans", "--config", writeConfig(t, siteConfig), "--public-dir", h.public, "--strict")
	require.NoError(t, err)

	path := filepath.Join(h.public, "humans.txt")
	assert.Equal(t,
		"/* TEAM */\n\tDeveloper: Ada Lovelace\n\tContact: ada [at] example.com\n\n"+
			"/* SITE */\n\tLast update: 2026/03/01\n\tLanguage: English\n\tStandards: HTML5, CSS3\n",
		readFile(t, path))
	outputs := readFile(t, h.env.OutputFile)
	assert.Contains(t, outputs, "humans-path<<")
	assert.Contains(t, outputs, "\n"+path+"\n")
}

func TestHumans_RequiresConfigBlock(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("humans", "--public-dir", h.public)
	assert.Equal(t, clierr.ExitConfig, clierr.ExitCodeOf(err))

	_, err = h.run("humans", "--public-dir", h.public, "--config", writeConfig(t, "site-url: https://example.com\n"))
	assert.Equal(t, clierr.ExitConfig, clierr.ExitCodeOf(err))
}

func TestSecurity(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("security", "--config", writeConfig(t, siteConfig), "--public-dir", h.public, "--comments=false")
	require.NoError(t, err)

	assert.Equal(t,
		"Contact: mailto:security@example.com\n"+
			"Expires: 2027-03-01T12:00:00Z\n"+
			"Preferred-Languages: en, pl\n"+
			"Canonical: https://example.com/.well-known/security.txt\n"+
			"Policy: http://example.com/security-policy\n",
		readFile(t, filepath.Join(h.public, ".well-known", "security.txt")))
	assert.Contains(t, out, "Policy http://example.com/security-policy should use https")
}

func TestSecurity_StrictFailsWithoutContact(t *testing.T) {
	h := newHarness(t)
	cfg := writeConfig(t, "security:\n  expires-in-days: 30\n")

	_, err := h.run("security", "--config", cfg, "--public-dir", h.public, "--strict")
	assert.Equal(t, clierr.ExitValidation, clierr.ExitCodeOf(err))
	assert.NoFileExists(t, filepath.Join(h.public, ".well-known", "security.txt"))
}

func TestValidate(t *testing.T) {
	h := newHarness(t)
	dir := t.TempDir()

	robotsPath := filepath.Join(dir, "robots.txt")
	require.NoError(t, os.WriteFile(robotsPath, []byte("Disallow: /x\nUser-agent: *\nSitemap: https://e.com/s.xml\nSitemap: https://e.com/s.xml\n"), 0o644))

	out, err := h.run("validate", robotsPath)
	require.NoError(t, err)
	assert.Contains(t, out, "line 1: disallow appears before any User-agent line")
	assert.Contains(t, out, "1 duplicate sitemap entry")

	secPath := filepath.Join(dir, "security.txt")
	require.NoError(t, os.WriteFile(secPath, []byte("Expires: 2020-01-01T00:00:00Z\n"), 0o644))

	out, err = h.run("validate", secPath, "--strict")
	assert.Equal(t, clierr.ExitValidation, clierr.ExitCodeOf(err))
	assert.Contains(t, out, "missing required Contact field")
	assert.Contains(t, out, "file expired on 2020-01-01")
}

func TestValidate_Kind(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "team.txt")
	require.NoError(t, os.WriteFile(path, []byte("/* TEAM */\n\tName: Ada\n"), 0o644))

	_, err := h.run("validate", path)
	assert.Equal(t, clierr.ExitConfig, clierr.ExitCodeOf(err), "kind cannot be guessed")

	out, err := h.run("validate", path, "--kind", "humans")
	require.NoError(t, err)
	assert.Contains(t, out, "humans:sections")

	_, err = h.run("validate", path, "--kind", "sitemap")
	assert.Equal(t, clierr.ExitConfig, clierr.ExitCodeOf(err))

	_, err = h.run("validate", filepath.Join(t.TempDir(), "robots.txt"))
	assert.Equal(t, clierr.ExitConfig, clierr.ExitCodeOf(err), "missing file")
}

func TestCheck(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("check", "--disallow", "/admin/,/*.pdf$", "--allow", "/admin/public/", "/admin/users", "admin/public/logo.png", "/docs/a.pdf", "/docs/a.pdf?x=1", "/")
	require.NoError(t, err)
	assert.Equal(t,
		"disallowed /admin/users\n"+
			"allowed    /admin/public/logo.png\n"+
			"disallowed /docs/a.pdf\n"+
			"allowed    /docs/a.pdf?x=1\n"+
			"allowed    /\n",
		out)
}

func TestCheck_FromFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "robots.txt")
	require.NoError(t, os.WriteFile(path, []byte("User-agent: *\nDisallow: /private\n"), 0o644))

	out, err := h.run("check", "--from", path, "/private/x", "/public")
	require.NoError(t, err)
	assert.Equal(t, "disallowed /private/x\nallowed    /public\n", out)
}

func TestValidate_OnlySelectedChecks(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "robots.txt")
	require.NoError(t, os.WriteFile(path, []byte("Disallow: /x\nCrawl-delay: soon\n"), 0o644))

	out, err := h.run("validate", path, "--check", "robots:crawl-delay", "--strict")
	require.NoError(t, err, "user-agent check is not selected")
	assert.Contains(t, out, "robots:crawl-delay")
	assert.NotContains(t, out, "robots:user-agent")
	assert.NotContains(t, out, "robots:size")

	_, err = h.run("validate", path, "--check", "robots:user-agent,robots:size", "--strict")
	assert.Equal(t, clierr.ExitValidation, clierr.ExitCodeOf(err))

	_, err = h.run("validate", path, "--check", "robots:nope")
	require.Error(t, err)
	assert.Equal(t, clierr.ExitConfig, clierr.ExitCodeOf(err))
	assert.Contains(t, err.Error(), "robots:sitemaps")
}

func TestValidate_ListChecks(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("validate", "--list-checks", "--kind", "security")
	require.NoError(t, err)
	assert.Equal(t,
		"security:size\nsecurity:contact\nsecurity:expires\nsecurity:single-fields\nsecurity:https\nsecurity:signature\n",
		out)

	_, err = h.run("validate", "--list-checks")
	assert.Equal(t, clierr.ExitConfig, clierr.ExitCodeOf(err))
}
