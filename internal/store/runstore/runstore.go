// Package runstore keeps a SQLite history of cleaning runs for the
// dashboard API.
package runstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"listlens/internal/model"
)

// ErrNoRuns means the store holds no run yet.
var ErrNoRuns = errors.New("no runs stored")

// DB wraps the SQLite database holding run history.
type DB struct{ sql *sql.DB }

func Open(path string) (*DB, error) {
	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := d.Exec(`PRAGMA journal_mode=WAL; PRAGMA synchronous=NORMAL;`); err != nil {
		return nil, err
	}
	db := &DB{sql: d}
	if err := db.migrate(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error { return d.sql.Close() }

func (d *DB) migrate() error {
	_, err := d.sql.Exec(`
	CREATE TABLE IF NOT EXISTS runs (
	  id TEXT PRIMARY KEY,
	  list_id TEXT NOT NULL,
	  mode TEXT NOT NULL,
	  total_posts INTEGER NOT NULL,
	  cleaned_at INTEGER NOT NULL,
	  payload TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_cleaned_at ON runs(cleaned_at);
	`)
	return err
}

// Run is one stored cleaning run. Payload holds the batch's wire-shape JSON.
type Run struct {
	ID         string          `json:"id"`
	ListID     string          `json:"listId"`
	Mode       model.Mode      `json:"mode"`
	TotalPosts int             `json:"totalPosts"`
	CleanedAt  time.Time       `json:"cleanedAt"`
	Payload    json.RawMessage `json:"payload"`
}

// SaveRun stores one finished run. The payload is serialized once here; runs
// are never updated afterwards.
func (d *DB) SaveRun(ctx context.Context, listID string, data model.CleanedData) (Run, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return Run{}, err
	}
	cleanedAt, err := time.Parse(time.RFC3339, data.CleanedAt)
	if err != nil {
		cleanedAt = time.Now().UTC()
	}
	run := Run{
		ID:         uuid.NewString(),
		ListID:     listID,
		Mode:       data.Mode,
		TotalPosts: len(data.Posts),
		CleanedAt:  cleanedAt,
		Payload:    payload,
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO runs(id, list_id, mode, total_posts, cleaned_at, payload) VALUES(?,?,?,?,?,?)`,
		run.ID, run.ListID, string(run.Mode), run.TotalPosts, run.CleanedAt.Unix(), string(payload))
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// Latest returns the most recent run.
func (d *DB) Latest(ctx context.Context) (Run, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT id, list_id, mode, total_posts, cleaned_at, payload FROM runs ORDER BY cleaned_at DESC, id DESC LIMIT 1`)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	return run, err
}

// List returns up to limit runs, newest first, without payloads.
func (d *DB) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, list_id, mode, total_posts, cleaned_at FROM runs ORDER BY cleaned_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var r Run
		var mode string
		var cleanedAt int64
		if err := rows.Scan(&r.ID, &r.ListID, &mode, &r.TotalPosts, &cleanedAt); err != nil {
			return nil, err
		}
		r.Mode = model.Mode(mode)
		r.CleanedAt = time.Unix(cleanedAt, 0).UTC()
		out = append(out, r)
	}
	return out, rows.Err()
}

type rowScanner interface{ Scan(dest ...any) error }

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var mode, payload string
	var cleanedAt int64
	if err := row.Scan(&r.ID, &r.ListID, &mode, &r.TotalPosts, &cleanedAt, &payload); err != nil {
		return Run{}, err
	}
	r.Mode = model.Mode(mode)
	r.CleanedAt = time.Unix(cleanedAt, 0).UTC()
	r.Payload = json.RawMessage(payload)
	return r, nil
}
