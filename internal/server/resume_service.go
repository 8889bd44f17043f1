package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeService owns resume persistence rules: ownership, template checks
// and refreshing the cached score on every save.
type ResumeService struct {
	store Store
}

// NewResumeService creates a ResumeService.
func NewResumeService(store Store) *ResumeService {
	return &ResumeService{store: store}
}

// List returns the user's resumes.
func (s *ResumeService) List(ctx context.Context, userID uuid.UUID) ([]types.Resume, error) {
	resumes, err := s.store.ListResumesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

// Create stores resume for userID. A nil resume creates an empty one.
func (s *ResumeService) Create(ctx context.Context, userID uuid.UUID, resume *types.Resume) (*types.Resume, types.ResumeScore, error) {
	if resume == nil {
		resume = types.NewResume(userID.String())
	}
	if err := prepare(resume); err != nil {
		return nil, types.ResumeScore{}, err
	}

	score := scoring.ScoreResume(resume)
	created, err := s.store.CreateResume(ctx, userID, resume, score.Total)
	if err != nil {
		return nil, types.ResumeScore{}, fmt.Errorf("failed to create resume: %w", err)
	}
	return created, score, nil
}

// Get returns a resume the user owns.
func (s *ResumeService) Get(ctx context.Context, userID uuid.UUID, resumeID string) (*types.Resume, error) {
	id, err := uuid.Parse(resumeID)
	if err != nil {
		return nil, &ErrResumeNotFound{ResumeID: resumeID}
	}

	resume, err := s.store.GetResume(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if resume == nil {
		return nil, &ErrResumeNotFound{ResumeID: resumeID}
	}
	if resume.UserID != userID.String() {
		return nil, &ErrForbidden{ResumeID: resumeID}
	}
	return resume, nil
}

// Update replaces a resume's content and re-scores it.
func (s *ResumeService) Update(ctx context.Context, userID uuid.UUID, resumeID string, resume *types.Resume) (*types.Resume, types.ResumeScore, error) {
	existing, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return nil, types.ResumeScore{}, err
	}
	if resume == nil {
		return nil, types.ResumeScore{}, &ErrValidation{Message: "resume document is required"}
	}
	if err := prepare(resume); err != nil {
		return nil, types.ResumeScore{}, err
	}

	score := scoring.ScoreResume(resume)
	id := uuid.MustParse(existing.ID)
	updated, err := s.store.UpdateResume(ctx, id, resume, score.Total)
	if err != nil {
		return nil, types.ResumeScore{}, fmt.Errorf("failed to update resume: %w", err)
	}
	if updated == nil {
		return nil, types.ResumeScore{}, &ErrResumeNotFound{ResumeID: resumeID}
	}
	return updated, score, nil
}

// Delete removes a resume the user owns.
func (s *ResumeService) Delete(ctx context.Context, userID uuid.UUID, resumeID string) error {
	existing, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteResume(ctx, uuid.MustParse(existing.ID)); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &ErrResumeNotFound{ResumeID: resumeID}
		}
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

// Score recomputes the structural score of a stored resume.
func (s *ResumeService) Score(ctx context.Context, userID uuid.UUID, resumeID string) (types.ResumeScore, error) {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return types.ResumeScore{}, err
	}
	return scoring.ScoreResume(resume), nil
}

// Analyze matches a stored resume against a job description.
func (s *ResumeService) Analyze(ctx context.Context, userID uuid.UUID, resumeID, jobDescription string) (types.ATSScore, error) {
	resume, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return types.ATSScore{}, err
	}
	return ats.AnalyzeResume(jobDescription, resume), nil
}

// RecordDownload counts one export of a resume the user owns.
func (s *ResumeService) RecordDownload(ctx context.Context, userID uuid.UUID, resumeID string) error {
	existing, err := s.Get(ctx, userID, resumeID)
	if err != nil {
		return err
	}
	if err := s.store.IncrementDownloads(ctx, uuid.MustParse(existing.ID)); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return &ErrResumeNotFound{ResumeID: resumeID}
		}
		return fmt.Errorf("failed to record download: %w", err)
	}
	return nil
}

// Stats returns the user's resume statistics.
func (s *ResumeService) Stats(ctx context.Context, userID uuid.UUID) (*types.UserStats, error) {
	stats, err := s.store.GetUserStats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return stats, nil
}

// prepare defaults the template and rejects unknown templates or invalid fields.
func prepare(resume *types.Resume) error {
	if resume.TemplateID == "" {
		resume.TemplateID = types.DefaultTemplateID
	}
	if types.TemplateByID(resume.TemplateID) == nil {
		return &ErrValidation{Field: "template_id", Message: fmt.Sprintf("unknown template %q", resume.TemplateID)}
	}
	if err := resume.Validate(); err != nil {
		return validationError(err)
	}
	return nil
}
