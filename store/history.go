// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/orssa/bench"
	_ "modernc.org/sqlite"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS bench_rows (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT NOT NULL UNIQUE,
	batch        TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	n            INTEGER NOT NULL,
	l            INTEGER NOT NULL,
	rank         INTEGER NOT NULL,
	decomp_sec   REAL NOT NULL,
	baseline_sec REAL NOT NULL,
	or_sec       REAL NOT NULL,
	solver_sec   REAL NOT NULL,
	objective    REAL NOT NULL,
	status       TEXT NOT NULL,
	kept         INTEGER NOT NULL,
	baseline_r   INTEGER NOT NULL,
	mse_baseline REAL NOT NULL,
	mse_or       REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bench_rows_batch ON bench_rows(batch);
`

const rowColumns = `id, batch, created_at, n, l, rank, decomp_sec, baseline_sec, or_sec,
	solver_sec, objective, status, kept, baseline_r, mse_baseline, mse_or`

// Entry is one stored benchmark row.
type Entry struct {
	ID        uuid.UUID
	Batch     uuid.UUID
	CreatedAt time.Time
	Row       bench.Row
}

// History is an sqlite-backed log of benchmark rows.
type History struct {
	db *sql.DB
}

// OpenHistory opens (creating if needed) the database at path.
// ":memory:" gives a private in-memory database.
func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open history: %w", err)
	}
	// One connection keeps ":memory:" a single database.
	db.SetMaxOpenConns(1)
	if _, err = db.Exec(historySchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close releases the database.
func (h *History) Close() error { return h.db.Close() }

// Record stores row under batch and returns the new entry ID.
func (h *History) Record(ctx context.Context, batch uuid.UUID, row bench.Row) (uuid.UUID, error) {
	id := uuid.New()
	_, err := h.db.ExecContext(ctx,
		`INSERT INTO bench_rows (`+rowColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id.String(), batch.String(), time.Now().UTC().Format(time.RFC3339Nano),
		row.N, row.L, row.Rank, row.DecompSec, row.BaselineSec, row.ORSec,
		row.SolverSec, row.Objective, row.Status, row.Kept, row.BaselineR,
		row.MSEBaseline, row.MSEOR,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("store: record: %w", err)
	}

	return id, nil
}

// List returns up to limit entries, newest first. limit <= 0 means all.
func (h *History) List(ctx context.Context, limit int) ([]Entry, error) {
	q := `SELECT ` + rowColumns + ` FROM bench_rows ORDER BY seq DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	return h.query(ctx, q, args...)
}

// Batch returns the entries of one sweep in recording order.
func (h *History) Batch(ctx context.Context, batch uuid.UUID) ([]Entry, error) {
	return h.query(ctx,
		`SELECT `+rowColumns+` FROM bench_rows WHERE batch = ? ORDER BY seq ASC`,
		batch.String())
}

func (h *History) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := h.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}

	return out, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		e                Entry
		id, batch, stamp string
		r                = &e.Row
	)
	err := rows.Scan(&id, &batch, &stamp,
		&r.N, &r.L, &r.Rank, &r.DecompSec, &r.BaselineSec, &r.ORSec,
		&r.SolverSec, &r.Objective, &r.Status, &r.Kept, &r.BaselineR,
		&r.MSEBaseline, &r.MSEOR)
	if err != nil {
		return Entry{}, fmt.Errorf("store: scan: %w", err)
	}
	if e.ID, err = uuid.Parse(id); err != nil {
		return Entry{}, fmt.Errorf("store: scan id: %w", err)
	}
	if e.Batch, err = uuid.Parse(batch); err != nil {
		return Entry{}, fmt.Errorf("store: scan batch: %w", err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, stamp); err != nil {
		return Entry{}, fmt.Errorf("store: scan created_at: %w", err)
	}

	return e, nil
}
