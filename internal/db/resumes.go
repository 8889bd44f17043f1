package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-builder/internal/types"
)

const resumeColumns = `id, user_id, title, template_id, document, score, created_at, updated_at`

// encodeDocument serializes the editable content of a resume. Row-owned
// fields (ids, timestamps, cached score) live in columns and are cleared.
func encodeDocument(resume *types.Resume) ([]byte, error) {
	doc := *resume
	doc.ID = ""
	doc.UserID = ""
	doc.CreatedAt = ""
	doc.UpdatedAt = ""
	doc.Score = nil

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume document: %w", err)
	}
	return data, nil
}

// resumeRow holds the raw column values of a resumes row.
type resumeRow struct {
	id         uuid.UUID
	userID     uuid.UUID
	title      string
	templateID string
	document   []byte
	score      int
	createdAt  time.Time
	updatedAt  time.Time
}

func (r *resumeRow) scanTargets() []any {
	return []any{&r.id, &r.userID, &r.title, &r.templateID, &r.document, &r.score, &r.createdAt, &r.updatedAt}
}

// toResume decodes the document and overlays the column values.
func (r *resumeRow) toResume() (*types.Resume, error) {
	var resume types.Resume
	if len(r.document) > 0 {
		if err := json.Unmarshal(r.document, &resume); err != nil {
			return nil, fmt.Errorf("failed to decode resume %s: %w", r.id, err)
		}
	}

	score := r.score
	resume.ID = r.id.String()
	resume.UserID = r.userID.String()
	resume.Title = r.title
	resume.TemplateID = r.templateID
	resume.Score = &score
	resume.CreatedAt = r.createdAt.UTC().Format(time.RFC3339)
	resume.UpdatedAt = r.updatedAt.UTC().Format(time.RFC3339)
	return &resume, nil
}

// CreateResume stores a new resume for userID with its cached score.
func (db *DB) CreateResume(ctx context.Context, userID uuid.UUID, resume *types.Resume, score int) (*types.Resume, error) {
	doc, err := encodeDocument(resume)
	if err != nil {
		return nil, err
	}

	var row resumeRow
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, title, template_id, document, score)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+resumeColumns,
		userID, resume.Title, resume.TemplateID, doc, score,
	).Scan(row.scanTargets()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return row.toResume()
}

// GetResume retrieves a resume by ID. Returns nil, nil when it does not exist.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*types.Resume, error) {
	var row resumeRow
	err := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`,
		id,
	).Scan(row.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return row.toResume()
}

// ListResumesByUser returns a user's resumes, most recently updated first.
func (db *DB) ListResumesByUser(ctx context.Context, userID uuid.UUID) ([]types.Resume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE user_id = $1 ORDER BY updated_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	resumes := []types.Resume{}
	for rows.Next() {
		var row resumeRow
		if err := rows.Scan(row.scanTargets()...); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resume, err := row.toResume()
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, *resume)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// UpdateResume replaces the content of a resume and its cached score.
// Returns nil, nil when it does not exist.
func (db *DB) UpdateResume(ctx context.Context, id uuid.UUID, resume *types.Resume, score int) (*types.Resume, error) {
	doc, err := encodeDocument(resume)
	if err != nil {
		return nil, err
	}

	var row resumeRow
	err = db.pool.QueryRow(ctx,
		`UPDATE resumes
		 SET title = $1, template_id = $2, document = $3, score = $4, updated_at = NOW()
		 WHERE id = $5
		 RETURNING `+resumeColumns,
		resume.Title, resume.TemplateID, doc, score, id,
	).Scan(row.scanTargets()...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update resume: %w", err)
	}
	return row.toResume()
}

// DeleteResume deletes a resume.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
