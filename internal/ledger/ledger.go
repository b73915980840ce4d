// Package ledger records bootstrap and extension-install runs in a local
// SQLite database so past outcomes can be inspected after the fact.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Register the pure-Go SQLite driver (no CGO required).
	_ "modernc.org/sqlite"
)

// Run kinds recorded in the ledger.
const (
	KindBootstrap  = "bootstrap"
	KindExtensions = "extensions"
)

// schema creates the two ledger tables. Times are unix seconds (UTC).
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	kind        TEXT    NOT NULL,
	started_at  INTEGER NOT NULL,
	finished_at INTEGER NOT NULL,
	ok          INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS items (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	name   TEXT    NOT NULL,
	ok     INTEGER NOT NULL,
	detail TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS items_run_id ON items(run_id);
`

// Run is one recorded procedure execution.
type Run struct {
	ID         int64
	Kind       string
	StartedAt  time.Time
	FinishedAt time.Time
	OK         bool
}

// Item is one per-entry outcome (a package, extension, or resource).
type Item struct {
	RunID  int64
	Name   string
	OK     bool
	Detail string
}

// Store is an open ledger database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger database at path. The
// connection uses WAL mode and a generous busy timeout so a ledger write
// racing a concurrent `history` read does not fail spuriously. A single
// connection is used: this is a short-lived session, not a pool.
func Open(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(30000)&_pragma=synchronous(NORMAL)",
		path,
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create ledger schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run and its items in one transaction and returns
// the run ID.
func (s *Store) RecordRun(ctx context.Context, kind string, started, finished time.Time, ok bool, items []Item) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin ledger transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (kind, started_at, finished_at, ok) VALUES (?, ?, ?, ?)`,
		kind, started.Unix(), finished.Unix(), boolInt(ok),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	for _, item := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO items (run_id, name, ok, detail) VALUES (?, ?, ?, ?)`,
			runID, item.Name, boolInt(item.OK), item.Detail,
		); err != nil {
			return 0, fmt.Errorf("insert item %s: %w", item.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit ledger transaction: %w", err)
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first, up to limit.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, started_at, finished_at, ok FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows.Err() below catches read errors; Close error is redundant

	var runs []Run
	for rows.Next() {
		var (
			r                 Run
			started, finished int64
			ok                int
		)
		if err := rows.Scan(&r.ID, &r.Kind, &started, &finished, &ok); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		r.StartedAt = time.Unix(started, 0).UTC()
		r.FinishedAt = time.Unix(finished, 0).UTC()
		r.OK = ok != 0
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}
	return runs, nil
}

// Items returns the per-entry outcomes of a run in insertion order.
func (s *Store) Items(ctx context.Context, runID int64) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, name, ok, detail FROM items WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close() //nolint:errcheck // rows.Err() below catches read errors; Close error is redundant

	var items []Item
	for rows.Next() {
		var (
			item Item
			ok   int
		)
		if err := rows.Scan(&item.RunID, &item.Name, &ok, &item.Detail); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		item.OK = ok != 0
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate item rows: %w", err)
	}
	return items, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
