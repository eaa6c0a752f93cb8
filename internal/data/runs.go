package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anthropics/slack-export-forge/internal/biz/domain"
	"github.com/anthropics/slack-export-forge/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// runRepo implements the Run repository
type runRepo struct {
	db *sql.DB
}

// NewRunRepo creates a new Run repository
func NewRunRepo(dbPath string) (repo.RunRepo, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at INTEGER NOT NULL,
			conversations INTEGER NOT NULL,
			days INTEGER NOT NULL,
			messages_per_date INTEGER NOT NULL,
			status TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &runRepo{db: db}, nil
}

// Save records a finished run
func (r *runRepo) Save(ctx context.Context, run *domain.Run) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (id, created_at, conversations, days, messages_per_date, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.CreatedAt.Unix(), run.Conversations, run.Days, run.MessagesPerDate, run.Status, run.Error)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// ListRecent lists the most recent runs, newest first
func (r *runRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, conversations, days, messages_per_date, status, error
		FROM runs ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []*domain.Run
	for rows.Next() {
		var run domain.Run
		var createdAt int64
		if err := rows.Scan(&run.ID, &createdAt, &run.Conversations, &run.Days, &run.MessagesPerDate, &run.Status, &run.Error); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.CreatedAt = time.Unix(createdAt, 0)
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// Close releases the underlying store
func (r *runRepo) Close() error {
	return r.db.Close()
}
