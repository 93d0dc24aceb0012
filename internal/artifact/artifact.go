// SPDX-License-Identifier: AGPL-3.0-or-later

// Package artifact hands generated files over for publication as a CI
// artifact.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bartekus/robotsgen/internal/projection"
)

// ManifestName is written next to the staged files.
const ManifestName = "manifest.yaml"

var ErrInvalidRequest = errors.New("invalid artifact request")

// Request names the files to publish. Files are paths under RootDir.
type Request struct {
	Name          string
	RootDir       string
	Files         []string
	RetentionDays int
}

// Result reports where the files ended up. Dir is empty for the no-op uploader.
type Result struct {
	Dir      string
	Manifest string
	Files    []string
}

// Uploader publishes generated files.
type Uploader interface {
	Upload(ctx context.Context, req Request) (Result, error)
}

// Noop discards uploads. It is used outside GitHub Actions.
type Noop struct{}

func (Noop) Upload(_ context.Context, _ Request) (Result, error) {
	return Result{}, nil
}

// Staging copies files into BaseDir/<name>/ and writes a manifest carrying
// the retention period, for a later actions/upload-artifact step.
type Staging struct {
	BaseDir string
	Now     func() time.Time
}

// Manifest is the YAML document written alongside staged files.
type Manifest struct {
	Name          string    `yaml:"name"`
	RetentionDays int       `yaml:"retention-days"`
	Created       time.Time `yaml:"created"`
	Files         []string  `yaml:"files"`
}

func (s Staging) Upload(ctx context.Context, req Request) (Result, error) {
	if req.Name == "" || strings.ContainsAny(req.Name, `/\`) || req.Name == "." || req.Name == ".." {
		return Result{}, fmt.Errorf("%w: artifact name %q", ErrInvalidRequest, req.Name)
	}
	if len(req.Files) == 0 {
		return Result{}, fmt.Errorf("%w: no files", ErrInvalidRequest)
	}

	dir := filepath.Join(s.BaseDir, req.Name)
	res := Result{Dir: dir}

	for _, f := range req.Files {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		rel := filepath.ToSlash(filepath.Clean(f))
		if filepath.IsAbs(f) || rel == ".." || strings.HasPrefix(rel, "../") {
			return res, fmt.Errorf("%w: %s is outside %s", ErrInvalidRequest, f, req.RootDir)
		}

		data, err := os.ReadFile(filepath.Join(req.RootDir, rel))
		if err != nil {
			return res, fmt.Errorf("reading %s: %w", f, err)
		}
		if err := projection.AtomicWrite(filepath.Join(dir, filepath.FromSlash(rel)), data); err != nil {
			return res, fmt.Errorf("staging %s: %w", f, err)
		}
		res.Files = append(res.Files, rel)
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	data, err := yaml.Marshal(Manifest{
		Name:          req.Name,
		RetentionDays: req.RetentionDays,
		Created:       now().UTC(),
		Files:         res.Files,
	})
	if err != nil {
		return res, fmt.Errorf("encoding manifest: %w", err)
	}

	res.Manifest = filepath.Join(dir, ManifestName)
	if err := projection.AtomicWrite(res.Manifest, data); err != nil {
		return res, fmt.Errorf("writing manifest: %w", err)
	}
	return res, nil
}

// FromEnv picks the staging uploader inside GitHub Actions and Noop
// everywhere else.
func FromEnv(inActions bool) Uploader {
	tmp := os.Getenv("RUNNER_TEMP")
	if !inActions || tmp == "" {
		return Noop{}
	}
	return Staging{BaseDir: filepath.Join(tmp, "robotsgen-artifacts")}
}
