// SPDX-License-Identifier: AGPL-3.0-or-later
package runner

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bartekus/robotsgen/internal/projection"
)

const lastRunFile = "last-run.json"

// StateStore keeps the summary of the most recent run on disk.
type StateStore struct {
	baseDir string
}

// NewStateStore creates a store at the given base directory (e.g. .robotsgen/run).
func NewStateStore(baseDir string) *StateStore {
	return &StateStore{baseDir: baseDir}
}

// Dir returns the state directory.
func (s *StateStore) Dir() string { return s.baseDir }

// ReadLastRun loads the last run summary. A missing file yields nil, nil.
func (s *StateStore) ReadLastRun() (*LastRun, error) {
	path := filepath.Join(s.baseDir, lastRunFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var last LastRun
	if err := json.Unmarshal(data, &last); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return &last, nil
}

// WriteLastRun replaces the stored summary. Readers never see a partial file.
func (s *StateStore) WriteLastRun(last LastRun) error {
	if last.Findings == nil {
		last.Findings = []Finding{}
	}
	data, err := json.MarshalIndent(last, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding last run: %w", err)
	}
	return projection.AtomicWrite(filepath.Join(s.baseDir, lastRunFile), append(data, '\n'))
}

// Reset clears the state directory.
func (s *StateStore) Reset() error {
	return os.RemoveAll(s.baseDir)
}
