package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/types"
)

// IncrementDownloads records one export of a resume.
func (db *DB) IncrementDownloads(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE resumes SET downloads = downloads + 1, last_downloaded_at = NOW() WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to record download: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetUserStats aggregates a user's resumes. A user without resumes gets zeros.
func (db *DB) GetUserStats(ctx context.Context, userID uuid.UUID) (*types.UserStats, error) {
	var stats types.UserStats
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(downloads), 0),
		        COALESCE(AVG(score), 0)::float8,
		        MAX(created_at),
		        MAX(last_downloaded_at)
		 FROM resumes WHERE user_id = $1`,
		userID,
	).Scan(&stats.TotalResumes, &stats.TotalDownloads, &stats.AverageScore, &stats.LastCreated, &stats.LastDownloaded)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}
	return &stats, nil
}
