package server

import (
	"context"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

// Store is the persistence the API needs. *db.DB satisfies it.
type Store interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	CreateResume(ctx context.Context, userID uuid.UUID, resume *types.Resume, score int) (*types.Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error)
	ListResumesByUser(ctx context.Context, userID uuid.UUID) ([]types.Resume, error)
	UpdateResume(ctx context.Context, id uuid.UUID, resume *types.Resume, score int) (*types.Resume, error)
	DeleteResume(ctx context.Context, id uuid.UUID) error

	IncrementDownloads(ctx context.Context, id uuid.UUID) error
	GetUserStats(ctx context.Context, userID uuid.UUID) (*types.UserStats, error)
}

var _ Store = (*db.DB)(nil)

// JobFetcher retrieves the text of a job posting by URL. *fetch.Fetcher satisfies it.
type JobFetcher interface {
	JobPostingText(ctx context.Context, url string) (string, error)
}
