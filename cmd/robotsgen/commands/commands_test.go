// SPDX-License-Identifier: AGPL-3.0-or-later
package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bartekus/robotsgen/cmd/robotsgen/internal/clierr"
	"github.com/bartekus/robotsgen/internal/action"
	"github.com/bartekus/robotsgen/internal/artifact"
	"github.com/bartekus/robotsgen/internal/runner"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeUploader struct {
	requests []artifact.Request
	err      error
}

func (f *fakeUploader) Upload(_ context.Context, req artifact.Request) (artifact.Result, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return artifact.Result{}, f.err
	}
	return artifact.Result{Dir: "/staged/" + req.Name, Files: req.Files}, nil
}

type harness struct {
	public   string
	stateDir string
	env      action.Env
	uploader *fakeUploader
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	root := t.TempDir()
	h := &harness{
		public:   filepath.Join(root, "dist"),
		stateDir: filepath.Join(root, "state"),
		uploader: &fakeUploader{},
	}
	require.NoError(t, os.MkdirAll(h.public, 0o755))
	return h
}

func (h *harness) inActions(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	h.env = action.Env{
		InActions:   true,
		OutputFile:  filepath.Join(dir, "output"),
		SummaryFile: filepath.Join(dir, "summary.md"),
	}
}

func (h *harness) run(args ...string) (string, error) {
	cmd := New(Options{
		Env:      h.env,
		Uploader: h.uploader,
		Logger:   zap.NewNop(),
		Now:      func() time.Time { return fixedNow },
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--state-dir", h.stateDir))
	err := cmd.Execute()
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestCLIContract(t *testing.T) {
	cmd := NewRootCmd()
	b := bytes.NewBufferString("")
	cmd.SetOut(b)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	out := b.String()
	for _, c := range []string{"generate", "humans", "security", "validate", "check", "report", "version", "help"} {
		assert.Contains(t, out, c, "expected top-level command %q in root help", c)
	}
	for _, f := range []string{"--config", "--debug", "--state-dir"} {
		assert.Contains(t, out, f)
	}
}

func TestGenerateHelp_ListsInputs(t *testing.T) {
	out, err := newHarness(t).run("generate", "--help")
	require.NoError(t, err)

	for _, f := range []string{"--site-url", "--public-dir", "--disallow", "--allow", "--crawl-delay", "--sitemaps", "--strict", "--upload", "--artifact-retention-days", "--max-size-kb", "--require-sitemap"} {
		assert.Contains(t, out, f)
	}
}

func TestVersion(t *testing.T) {
	t.Setenv("ROBOTSGEN_VERSION", "1.2.3")
	out, err := newHarness(t).run("version")
	require.NoError(t, err)
	assert.Equal(t, "robotsgen version 1.2.3\n", out)
}

func TestGenerate_WritesFile(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("generate",
		"--site-url", "https://example.com",
		"--public-dir", h.public,
		"--disallow", "/admin/,private/",
		"--sitemaps", "sitemap.xml",
		"--comments=false",
	)
	require.NoError(t, err)

	assert.Equal(t,
		"User-agent: *\nDisallow: /admin/\nDisallow: /private/\n\nSitemap: https://example.com/sitemap.xml\n",
		readFile(t, filepath.Join(h.public, "robots.txt")))
	assert.Contains(t, out, "VALIDATE: "+filepath.Join(h.public, "robots.txt"))
	assert.Contains(t, out, "sitemap https://example.com/sitemap.xml not found in public directory")
	assert.Contains(t, out, "wrote ")
	assert.NotContains(t, out, "::warning", "no annotations outside Actions")
	assert.Empty(t, h.uploader.requests, "upload is opt-in")
}

func TestGenerate_OutputDirAndFilename(t *testing.T) {
	h := newHarness(t)
	outDir := filepath.Join(t.TempDir(), "nested", "out")

	_, err := h.run("generate",
		"--site-url", "https://example.com",
		"--public-dir", h.public,
		"--output-dir", outDir,
		"--filename", "robots-staging.txt",
	)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "robots-staging.txt"))
	assert.NoFileExists(t, filepath.Join(h.public, "robots.txt"))
}

func TestGenerate_ConfigErrors(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing site url", []string{"generate", "--public-dir", h.public}},
		{"bad scheme", []string{"generate", "--site-url", "example.com", "--public-dir", h.public}},
		{"missing public dir", []string{"generate", "--site-url", "https://example.com", "--public-dir", filepath.Join(h.public, "nope")}},
		{"retention out of range", []string{"generate", "--site-url", "https://example.com", "--public-dir", h.public, "--artifact-retention-days", "120"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.run(tt.args...)
			require.Error(t, err)
			assert.Equal(t, clierr.ExitConfig, clierr.ExitCodeOf(err))
			assert.NoFileExists(t, filepath.Join(h.public, "robots.txt"))
		})
	}
}

func TestGenerate_StrictFailureDoesNotWrite(t *testing.T) {
	h := newHarness(t)
	h.inActions(t)

	out, err := h.run("generate",
		"--site-url", "https://example.com",
		"--public-dir", h.public,
		"--require-sitemap",
		"--strict",
		"--upload",
	)
	require.Error(t, err)
	assert.Equal(t, clierr.ExitValidation, clierr.ExitCodeOf(err))
	assert.NoFileExists(t, filepath.Join(h.public, "robots.txt"))
	assert.Contains(t, out, "title=robots%3Arequire-sitemap::a Sitemap directive is required")
	assert.Contains(t, out, "::error ")
	assert.Empty(t, h.uploader.requests)
	assert.NoFileExists(t, h.env.OutputFile, "no step output for an unwritten file")
	assert.Contains(t, readFile(t, h.env.SummaryFile), "(not written)")

	last, err := runner.NewStateStore(h.stateDir).ReadLastRun()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "fail", last.Status)
	assert.False(t, last.Written)
}

func TestGenerate_LenientWritesDespiteWarnings(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("generate",
		"--site-url", "https://example.com",
		"--public-dir", h.public,
		"--require-sitemap",
		"--crawl-delay", "soon",
	)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(h.public, "robots.txt"))
	assert.Contains(t, out, "0 error(s), 2 warning(s)")
}

func TestGenerate_InActions(t *testing.T) {
	h := newHarness(t)
	h.inActions(t)

	_, err := h.run("generate",
		"--site-url", "https://example.com",
		"--public-dir", h.public,
		"--crawl-delay", "-1",
		"--upload",
		"--artifact-name", "site-robots",
		"--artifact-retention-days", "14",
	)
	require.NoError(t, err)

	path := filepath.Join(h.public, "robots.txt")
	outputs := readFile(t, h.env.OutputFile)
	assert.Contains(t, outputs, "robots-path<<")
	assert.Contains(t, outputs, "\n"+path+"\n")
	assert.Contains(t, outputs, "artifact-dir<<")
	assert.Contains(t, outputs, "\n/staged/site-robots\n")

	summary := readFile(t, h.env.SummaryFile)
	assert.True(t, strings.HasPrefix(summary, "## robots.txt\n"))
	assert.Contains(t, summary, "`robots:crawl-delay`")

	require.Len(t, h.uploader.requests, 1)
	assert.Equal(t, artifact.Request{
		Name:          "site-robots",
		RootDir:       h.public,
		Files:         []string{"robots.txt"},
		RetentionDays: 14,
	}, h.uploader.requests[0])
}

func TestGenerate_UploadFailureIsNotFatal(t *testing.T) {
	h := newHarness(t)
	h.inActions(t)
	h.uploader.err = errors.New("disk full")

	out, err := h.run("generate", "--site-url", "https://example.com", "--public-dir", h.public, "--upload")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(h.public, "robots.txt"))
	assert.Contains(t, out, "::warning title=artifact::artifact upload failed: disk full")
}

func TestGenerate_ActionInputsFromEnv(t *testing.T) {
	h := newHarness(t)
	t.Setenv("INPUT_SITE_URL", "https://env.example.com")
	t.Setenv("INPUT_PUBLIC_DIR", h.public)
	t.Setenv("INPUT_DISALLOW", "/tmp/\n/drafts/")
	t.Setenv("INPUT_COMMENTS", "false")

	_, err := h.run("generate")
	require.NoError(t, err)
	assert.Equal(t, "User-agent: *\nDisallow: /tmp/\nDisallow: /drafts/\n", readFile(t, filepath.Join(h.public, "robots.txt")))
}

func TestGenerate_CanonicalPageDisallowed(t *testing.T) {
	h := newHarness(t)
	page := `<html><head><link rel="canonical" href="https://example.com/admin/panel"></head></html>`
	require.NoError(t, os.MkdirAll(filepath.Join(h.public, "admin"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(h.public, "admin", "panel.html"), []byte(page), 0o644))

	out, err := h.run("generate", "--site-url", "https://example.com", "--public-dir", h.public, "--disallow", "/admin/")
	require.NoError(t, err)
	assert.Contains(t, out, "canonical page /admin/panel is disallowed")
}

func TestReport(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("report")
	require.NoError(t, err)
	assert.Equal(t, "No run state found.\n", out)

	_, err = h.run("generate", "--site-url", "https://example.com", "--public-dir", h.public)
	require.NoError(t, err)

	out, err = h.run("report", "--json")
	require.NoError(t, err)
	var last runner.LastRun
	require.NoError(t, json.Unmarshal([]byte(out), &last))
	assert.NotEmpty(t, last.ID)
	assert.Equal(t, "robots", last.Kind)
	assert.Equal(t, "pass", last.Status)
	assert.True(t, last.Written)

	out, err = h.run("report")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: pass")
	assert.Contains(t, out, "robots:size")

	_, err = h.run("report", "--reset")
	require.NoError(t, err)
	out, err = h.run("report")
	require.NoError(t, err)
	assert.Equal(t, "No run state found.\n", out)
}
