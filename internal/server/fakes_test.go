package server

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/types"
)

const testJWTSecret = "test-secret-key-for-jwt-signing-minimum-32-bytes"

type storedResume struct {
	resume    types.Resume
	userID    uuid.UUID
	downloads int
}

// fakeStore is an in-memory Store with the same not-found conventions as db.DB.
type fakeStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*db.User
	resumes map[uuid.UUID]*storedResume
	order   []uuid.UUID
	now     time.Time

	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:   make(map[uuid.UUID]*db.User),
		resumes: make(map[uuid.UUID]*storedResume),
		now:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (f *fakeStore) tick() time.Time {
	f.now = f.now.Add(time.Minute)
	return f.now
}

func (f *fakeStore) CreateUser(_ context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return uuid.Nil, f.failWith
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.users {
		if u.Email == email {
			return uuid.Nil, db.ErrEmailTaken
		}
	}
	id := uuid.New()
	now := f.tick()
	f.users[id] = &db.User{ID: id, Name: name, Email: email, PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	return id, nil
}

func (f *fakeStore) GetUser(_ context.Context, id uuid.UUID) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range f.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	u, err := f.GetUserByEmail(ctx, email)
	return u != nil, err
}

func (f *fakeStore) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return db.ErrNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = f.tick()
	return nil
}

func (f *fakeStore) CreateResume(_ context.Context, userID uuid.UUID, resume *types.Resume, score int) (*types.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	id := uuid.New()
	now := f.tick().Format(time.RFC3339)
	stored := *resume
	stored.ID = id.String()
	stored.UserID = userID.String()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	stored.Score = &score
	f.resumes[id] = &storedResume{resume: stored, userID: userID}
	f.order = append(f.order, id)
	out := stored
	return &out, nil
}

func (f *fakeStore) GetResume(_ context.Context, id uuid.UUID) (*types.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	r, ok := f.resumes[id]
	if !ok {
		return nil, nil
	}
	out := r.resume
	return &out, nil
}

func (f *fakeStore) ListResumesByUser(_ context.Context, userID uuid.UUID) ([]types.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := []types.Resume{}
	for _, id := range slices.Backward(f.order) {
		if r, ok := f.resumes[id]; ok && r.userID == userID {
			out = append(out, r.resume)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateResume(_ context.Context, id uuid.UUID, resume *types.Resume, score int) (*types.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resumes[id]
	if !ok {
		return nil, nil
	}
	updated := *resume
	updated.ID = r.resume.ID
	updated.UserID = r.resume.UserID
	updated.CreatedAt = r.resume.CreatedAt
	updated.UpdatedAt = f.tick().Format(time.RFC3339)
	updated.Score = &score
	r.resume = updated
	out := updated
	return &out, nil
}

func (f *fakeStore) DeleteResume(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.resumes[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.resumes, id)
	return nil
}

func (f *fakeStore) IncrementDownloads(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.resumes[id]
	if !ok {
		return db.ErrNotFound
	}
	r.downloads++
	return nil
}

func (f *fakeStore) GetUserStats(_ context.Context, userID uuid.UUID) (*types.UserStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	stats := &types.UserStats{}
	total := 0
	for _, r := range f.resumes {
		if r.userID != userID {
			continue
		}
		stats.TotalResumes++
		stats.TotalDownloads += r.downloads
		if r.resume.Score != nil {
			total += *r.resume.Score
		}
	}
	if stats.TotalResumes > 0 {
		stats.AverageScore = float64(total) / float64(stats.TotalResumes)
	}
	return stats, nil
}

// fakeFetcher returns a fixed posting or error.
type fakeFetcher struct {
	text  string
	err   error
	calls int
}

func (f *fakeFetcher) JobPostingText(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.text, f.err
}

var errStoreDown = errors.New("connection refused")

func testPasswordConfig() *config.PasswordConfig {
	return &config.PasswordConfig{BcryptCost: 10}
}

func testJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{
		Secret:          testJWTSecret,
		ExpirationHours: 24,
		Issuer:          "resume-builder",
	})
}
