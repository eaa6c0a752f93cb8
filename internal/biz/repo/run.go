package repo

import (
	"context"

	"github.com/anthropics/slack-export-forge/internal/biz/domain"
)

// RunRepo is the generation-run history repository interface.
// Responsible for run persistence (SQLite).
type RunRepo interface {
	// Save records a finished run
	Save(ctx context.Context, run *domain.Run) error

	// ListRecent lists the most recent runs, newest first
	ListRecent(ctx context.Context, limit int) ([]*domain.Run, error)

	// Close releases the underlying store
	Close() error
}
