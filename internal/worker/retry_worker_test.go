package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RecipeVault_Go/internal/domain"
	"github.com/osse101/RecipeVault_Go/internal/repository/memory"
)

type recordingRunner struct {
	mu  sync.Mutex
	ran []uuid.UUID
}

func (r *recordingRunner) Run(ctx context.Context, jobID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ran = append(r.ran, jobID)
	return nil
}

func (r *recordingRunner) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ran)
}

func TestRetryWorkerEnqueuesDueJobs(t *testing.T) {
	ctx := context.Background()
	jobs := memory.NewJobStore()
	now := time.Now().UTC()

	due := &domain.IngestionJob{
		JobID: uuid.New(), ContentHash: "due", Status: domain.JobStatusPending,
		NextRunAt: now.Add(-time.Minute), CreatedAt: now, UpdatedAt: now,
	}
	future := &domain.IngestionJob{
		JobID: uuid.New(), ContentHash: "future", Status: domain.JobStatusPending,
		NextRunAt: now.Add(time.Hour), CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, jobs.Create(ctx, due))
	require.NoError(t, jobs.Create(ctx, future))

	runner := &recordingRunner{}
	pool := NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	w := NewRetryWorker(jobs, runner, pool, 10)
	require.NoError(t, w.Process(ctx))

	assert.Eventually(t, func() bool { return runner.count() == 1 }, time.Second, 10*time.Millisecond)
	runner.mu.Lock()
	defer runner.mu.Unlock()
	assert.Equal(t, due.JobID, runner.ran[0])
}

func TestRetryWorkerStopsWhenQueueFull(t *testing.T) {
	ctx := context.Background()
	jobs := memory.NewJobStore()
	now := time.Now().UTC()

	for i := 0; i < 3; i++ {
		job := &domain.IngestionJob{
			JobID: uuid.New(), ContentHash: string(rune('a' + i)), Status: domain.JobStatusPending,
			NextRunAt: now.Add(-time.Minute), CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, jobs.Create(ctx, job))
	}

	// One slot, no workers draining: only one job fits this poll
	pool := NewPool(0, 1)
	w := NewRetryWorker(jobs, &recordingRunner{}, pool, 10)

	require.NoError(t, w.Process(ctx))
	assert.Len(t, pool.jobQueue, 1)
}
