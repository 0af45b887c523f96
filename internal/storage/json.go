// Package storage persists run reports: one JSON file per run plus a
// SQLite history index serving the history and stats commands.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"importfix/pkg/types"
)

// StateDirName is the tool's state directory under the project root.
const StateDirName = ".importfix"

// RunStore handles JSON report storage under <root>/.importfix/runs.
type RunStore struct {
	basePath string
	mu       sync.RWMutex
}

// NewRunStore creates a store rooted at the project's state dir.
func NewRunStore(projectRoot string) *RunStore {
	return &RunStore{basePath: filepath.Join(projectRoot, StateDirName)}
}

// BasePath returns the state directory of the store.
func (s *RunStore) BasePath() string {
	return s.basePath
}

// SaveRun writes one run report.
func (s *RunStore) SaveRun(r *types.RunReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.basePath, "runs", r.ID+".json")
	return writeJSON(path, r)
}

// GetRun reads one run report by ID.
func (s *RunStore) GetRun(id string) (*types.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := filepath.Join(s.basePath, "runs", id+".json")
	return readJSON[types.RunReport](path)
}

// ListRuns returns all stored reports, newest first.
func (s *RunStore) ListRuns() ([]types.RunReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Join(s.basePath, "runs")
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []types.RunReport
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		r, err := readJSON[types.RunReport](filepath.Join(dir, e.Name()))
		if err != nil {
			continue // a corrupt report is skipped, not fatal
		}
		runs = append(runs, *r)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}

func readJSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func writeJSON(path string, v any) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	// Trailing newline for clean git diffs
	data = append(data, '\n')

	// Atomic write: write to temp file then rename to prevent corruption
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
