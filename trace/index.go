package trace

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/cogmesh/core"
)

// Index maintains a sqlite secondary index over the tick stream for cheap
// run-level queries. It is synchronous and append-only; the JSONL stream
// stays the source of truth and the index can be rebuilt from it.
type Index struct {
	mu sync.Mutex
	db *sql.DB
}

var _ core.Recorder = (*Index)(nil)

// OpenIndex opens (or creates) the index database at path.
func OpenIndex(path string) (*Index, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Index{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	// WAL is much faster for append-style workloads.
	// NORMAL is a decent durability/perf tradeoff for a secondary index.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ticks (
			run_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			ports INTEGER NOT NULL,
			entries INTEGER NOT NULL,
			recorded_at TEXT NOT NULL,
			raw_json TEXT NOT NULL,
			PRIMARY KEY (run_id, tick)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_ticks_run ON ticks(run_id);`,
		`CREATE TABLE IF NOT EXISTS ports (
			run_id TEXT NOT NULL,
			port TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			entries INTEGER NOT NULL,
			PRIMARY KEY (run_id, port)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// RecordTick indexes one record inside a single transaction.
func (ix *Index) RecordTick(ctx context.Context, rec core.TickRecord) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	tx, err := ix.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	recordedAt := rec.RecordedAt.UTC().Format(time.RFC3339Nano)

	// The first record of a run pins its start time.
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO runs(run_id,started_at) VALUES(?,?)`, rec.RunID, recordedAt); err != nil {
		return err
	}

	entries := 0
	for _, sig := range rec.Signals {
		entries += len(sig.Entries)
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO ticks(run_id,tick,ports,entries,recorded_at,raw_json) VALUES(?,?,?,?,?,?)`,
		rec.RunID, rec.Tick, len(rec.Signals), entries, recordedAt, string(raw)); err != nil {
		return err
	}

	for port, sig := range rec.Signals {
		if _, err := tx.ExecContext(ctx, `INSERT INTO ports(run_id,port,ticks,entries) VALUES(?,?,1,?)
			ON CONFLICT(run_id,port) DO UPDATE SET ticks = ticks + 1, entries = entries + excluded.entries`,
			rec.RunID, port, len(sig.Entries)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Close closes the database.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.db.Close()
}

// Runs lists recorded run IDs, oldest first.
func (ix *Index) Runs(ctx context.Context) ([]string, error) {
	rows, err := ix.db.QueryContext(ctx, `SELECT run_id FROM runs ORDER BY started_at, run_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		runs = append(runs, id)
	}
	return runs, rows.Err()
}

// TickCount reports how many ticks a run recorded.
func (ix *Index) TickCount(ctx context.Context, runID string) (int, error) {
	var n int
	err := ix.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ticks WHERE run_id = ?`, runID).Scan(&n)
	return n, err
}

// PortEntryTotals reports, per port, the total number of explicit entries
// the run pushed through it.
func (ix *Index) PortEntryTotals(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := ix.db.QueryContext(ctx, `SELECT port, entries FROM ports WHERE run_id = ? ORDER BY port`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := map[string]int{}
	for rows.Next() {
		var (
			port string
			n    int
		)
		if err := rows.Scan(&port, &n); err != nil {
			return nil, err
		}
		totals[port] = n
	}
	return totals, rows.Err()
}
