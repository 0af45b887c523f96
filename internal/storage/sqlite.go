package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"importfix/pkg/types"
)

// HistoryIndex keeps run summaries queryable without reading every
// report file.
type HistoryIndex struct {
	db       *sql.DB
	basePath string
}

// RunSummary is one row of the history listing.
type RunSummary struct {
	ID           string
	StartedAt    time.Time
	DurationMS   int64
	DryRun       bool
	Fixes        int
	FilesWritten int
}

// NewHistoryIndex opens (creating if needed) the history database
// under the project's state dir.
func NewHistoryIndex(projectRoot string) (*HistoryIndex, error) {
	basePath := filepath.Join(projectRoot, StateDirName)
	dbPath := filepath.Join(basePath, "history.db")

	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, err
	}

	// Connection parameters for better concurrency
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=10000", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // Keep it simple to avoid locks

	idx := &HistoryIndex{db: db, basePath: basePath}
	if err := idx.createTables(); err != nil {
		return nil, err
	}
	return idx, nil
}

func (idx *HistoryIndex) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		project TEXT,
		started_at INTEGER,
		duration_ms INTEGER,
		dry_run INTEGER,
		modules_loaded INTEGER,
		index_size INTEGER,
		fixes INTEGER,
		files_written INTEGER
	);

	CREATE TABLE IF NOT EXISTS fixes (
		run_id TEXT,
		kind TEXT,
		path TEXT,
		symbol TEXT,
		specifier TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_fixes_run ON fixes(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := idx.db.Exec(schema)
	return err
}

// Close closes the underlying database.
func (idx *HistoryIndex) Close() error {
	return idx.db.Close()
}

// IndexRun records one run and its fixes in a single transaction.
func (idx *HistoryIndex) IndexRun(r *types.RunReport) error {
	tx, err := idx.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	dryRun := 0
	if r.DryRun {
		dryRun = 1
	}
	_, err = tx.Exec(`
		INSERT OR REPLACE INTO runs
		(id, project, started_at, duration_ms, dry_run, modules_loaded, index_size, fixes, files_written)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.ProjectPath, r.StartedAt.Unix(), r.DurationMS, dryRun,
		r.ModulesLoaded, r.IndexSize, len(r.Fixes), len(r.FilesWritten))
	if err != nil {
		tx.Rollback()
		return err
	}

	if _, err := tx.Exec(`DELETE FROM fixes WHERE run_id = ?`, r.ID); err != nil {
		tx.Rollback()
		return err
	}
	for _, f := range r.Fixes {
		_, err := tx.Exec(`
			INSERT INTO fixes (run_id, kind, path, symbol, specifier)
			VALUES (?, ?, ?, ?, ?)
		`, r.ID, f.Kind, f.Path, f.Symbol, f.Specifier)
		if err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// RecentRuns lists the latest runs, newest first.
func (idx *HistoryIndex) RecentRuns(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := idx.db.Query(`
		SELECT id, started_at, duration_ms, dry_run, fixes, files_written
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		var started int64
		var dryRun int
		if err := rows.Scan(&s.ID, &started, &s.DurationMS, &dryRun, &s.Fixes, &s.FilesWritten); err != nil {
			return nil, err
		}
		s.StartedAt = time.Unix(started, 0)
		s.DryRun = dryRun != 0
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetStats aggregates counters across all recorded runs.
func (idx *HistoryIndex) GetStats() (map[string]int, error) {
	stats := make(map[string]int)

	var runs, fixes, files int
	err := idx.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(fixes), 0), COALESCE(SUM(files_written), 0) FROM runs
	`).Scan(&runs, &fixes, &files)
	if err != nil {
		return nil, err
	}
	stats["runs"] = runs
	stats["fixes"] = fixes
	stats["files_written"] = files

	rows, err := idx.db.Query(`SELECT kind, COUNT(*) FROM fixes GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		stats["fix:"+kind] = n
	}
	return stats, rows.Err()
}

// RebuildFromJSON re-indexes every stored report, for recovery after
// a deleted or corrupted history database.
func (idx *HistoryIndex) RebuildFromJSON(store *RunStore) error {
	runs, err := store.ListRuns()
	if err != nil {
		return err
	}
	for i := range runs {
		if err := idx.IndexRun(&runs[i]); err != nil {
			return err
		}
	}
	return nil
}
