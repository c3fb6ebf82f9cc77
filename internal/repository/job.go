// Package repository defines the data access interfaces the recipe core
// depends on. Implementations live in internal/repository/memory (tests,
// single-node dev) and internal/database/postgres (production).
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// JobStore persists ingestion job state. Lookups return (nil, nil) when no
// job exists; absence is an answer, not an error.
type JobStore interface {
	Create(ctx context.Context, job *domain.IngestionJob) error
	GetByID(ctx context.Context, jobID uuid.UUID) (*domain.IngestionJob, error)
	GetByContentHash(ctx context.Context, contentHash string) (*domain.IngestionJob, error)

	// Transition atomically moves the job from any of the listed states to
	// the target state. Returns the updated job and true on success, or the
	// current job and false when another worker won the race. Losing is not
	// an error.
	Transition(ctx context.Context, jobID uuid.UUID, from []domain.JobStatus, to domain.JobStatus) (*domain.IngestionJob, bool, error)

	// Update overwrites mutable bookkeeping fields (attempts, lastError,
	// nextRunAt, updatedAt) without changing status
	Update(ctx context.Context, job *domain.IngestionJob) error

	// ListDue returns pending jobs whose NextRunAt is at or before now,
	// oldest first, for the retry scheduler
	ListDue(ctx context.Context, now time.Time, limit int) ([]domain.IngestionJob, error)
}
