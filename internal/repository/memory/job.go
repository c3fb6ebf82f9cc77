// Package memory provides in-memory implementations of the repository
// interfaces for tests and single-node development. All stores are safe
// for concurrent use and return deep copies so callers never alias
// internal state.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// JobStore is an in-memory repository.JobStore with the same
// compare-and-swap transition semantics as the Postgres implementation
type JobStore struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*domain.IngestionJob
	byHash map[string]uuid.UUID
}

// NewJobStore creates an empty job store
func NewJobStore() *JobStore {
	return &JobStore{
		byID:   make(map[uuid.UUID]*domain.IngestionJob),
		byHash: make(map[string]uuid.UUID),
	}
}

// Create stores a new job
func (s *JobStore) Create(ctx context.Context, job *domain.IngestionJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *job
	s.byID[job.JobID] = &stored
	s.byHash[job.ContentHash] = job.JobID
	return nil
}

// GetByID returns the job with the given id, or (nil, nil) if absent
func (s *JobStore) GetByID(ctx context.Context, jobID uuid.UUID) (*domain.IngestionJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.byID[jobID]
	if !ok {
		return nil, nil
	}
	copied := *job
	return &copied, nil
}

// GetByContentHash returns the job for the given content hash, or (nil, nil)
func (s *JobStore) GetByContentHash(ctx context.Context, contentHash string) (*domain.IngestionJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobID, ok := s.byHash[contentHash]
	if !ok {
		return nil, nil
	}
	copied := *s.byID[jobID]
	return &copied, nil
}

// Transition performs a compare-and-swap state change under the store lock
func (s *JobStore) Transition(ctx context.Context, jobID uuid.UUID, from []domain.JobStatus, to domain.JobStatus) (*domain.IngestionJob, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.byID[jobID]
	if !ok {
		return nil, false, domain.ErrJobNotFound
	}

	for _, status := range from {
		if job.Status == status {
			job.Status = to
			job.UpdatedAt = time.Now().UTC()
			copied := *job
			return &copied, true, nil
		}
	}

	copied := *job
	return &copied, false, nil
}

// Update overwrites bookkeeping fields of an existing job
func (s *JobStore) Update(ctx context.Context, job *domain.IngestionJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.byID[job.JobID]
	if !ok {
		return domain.ErrJobNotFound
	}
	stored.Attempts = job.Attempts
	stored.LastError = job.LastError
	stored.NextRunAt = job.NextRunAt
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

// ListDue returns pending jobs eligible to run at or before now
func (s *JobStore) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.IngestionJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var due []domain.IngestionJob
	for _, job := range s.byID {
		if job.Status == domain.JobStatusPending && !job.NextRunAt.After(now) {
			due = append(due, *job)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].NextRunAt.Before(due[j].NextRunAt) })
	if limit > 0 && len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}
