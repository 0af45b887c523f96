package storage

import (
	"os"
	"testing"
	"time"
)

func setupTestHistory(t *testing.T) (*HistoryIndex, string, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "importfix-history-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	idx, err := NewHistoryIndex(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("NewHistoryIndex failed: %v", err)
	}

	cleanup := func() {
		idx.Close()
		os.RemoveAll(tmpDir)
	}
	return idx, tmpDir, cleanup
}

func TestIndexRunAndRecentRuns(t *testing.T) {
	idx, _, cleanup := setupTestHistory(t)
	defer cleanup()

	base := time.Now().Truncate(time.Second)
	for i, id := range []string{"a", "b", "c"} {
		r := sampleReport(id, base.Add(time.Duration(i)*time.Minute))
		if err := idx.IndexRun(r); err != nil {
			t.Fatalf("IndexRun(%s) failed: %v", id, err)
		}
	}

	runs, err := idx.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs with limit 2, got %d", len(runs))
	}
	if runs[0].ID != "c" || runs[1].ID != "b" {
		t.Errorf("Expected newest-first [c b], got [%s %s]", runs[0].ID, runs[1].ID)
	}
	if runs[0].Fixes != 2 {
		t.Errorf("Expected 2 fixes recorded, got %d", runs[0].Fixes)
	}
	if !runs[0].StartedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("Expected started_at round trip, got %v", runs[0].StartedAt)
	}
}

func TestIndexRunIsIdempotent(t *testing.T) {
	idx, _, cleanup := setupTestHistory(t)
	defer cleanup()

	r := sampleReport("a", time.Now())
	if err := idx.IndexRun(r); err != nil {
		t.Fatalf("First IndexRun failed: %v", err)
	}
	if err := idx.IndexRun(r); err != nil {
		t.Fatalf("Second IndexRun failed: %v", err)
	}

	stats, err := idx.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats["runs"] != 1 {
		t.Errorf("Expected 1 run after re-index, got %d", stats["runs"])
	}
	if stats["fix:add-import"] != 1 {
		t.Errorf("Expected 1 add-import fix after re-index, got %d", stats["fix:add-import"])
	}
}

func TestGetStats(t *testing.T) {
	idx, _, cleanup := setupTestHistory(t)
	defer cleanup()

	base := time.Now()
	if err := idx.IndexRun(sampleReport("a", base)); err != nil {
		t.Fatalf("IndexRun failed: %v", err)
	}
	if err := idx.IndexRun(sampleReport("b", base.Add(time.Minute))); err != nil {
		t.Fatalf("IndexRun failed: %v", err)
	}

	stats, err := idx.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats["runs"] != 2 {
		t.Errorf("Expected 2 runs, got %d", stats["runs"])
	}
	if stats["fixes"] != 4 {
		t.Errorf("Expected 4 total fixes, got %d", stats["fixes"])
	}
	if stats["files_written"] != 2 {
		t.Errorf("Expected 2 files written, got %d", stats["files_written"])
	}
	if stats["fix:to-named"] != 2 {
		t.Errorf("Expected 2 to-named fixes, got %d", stats["fix:to-named"])
	}
}

func TestRebuildFromJSON(t *testing.T) {
	idx, root, cleanup := setupTestHistory(t)
	defer cleanup()

	store := NewRunStore(root)
	base := time.Now()
	for i, id := range []string{"a", "b"} {
		if err := store.SaveRun(sampleReport(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("SaveRun(%s) failed: %v", id, err)
		}
	}

	if err := idx.RebuildFromJSON(store); err != nil {
		t.Fatalf("RebuildFromJSON failed: %v", err)
	}

	runs, err := idx.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("Expected 2 rebuilt runs, got %d", len(runs))
	}
}
