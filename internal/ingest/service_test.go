package ingest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RecipeVault_Go/internal/domain"
	"github.com/osse101/RecipeVault_Go/internal/parser"
	"github.com/osse101/RecipeVault_Go/internal/repository/memory"
)

// fakeOCR returns scripted text or errors per call
type fakeOCR struct {
	mu    sync.Mutex
	text  string
	errs  []error // consumed one per call; nil entries mean success
	calls int
}

func (f *fakeOCR) ExtractText(ctx context.Context, image []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return "", err
		}
	}
	return f.text, nil
}

const testRecipeText = "2 cups flour\n1 tsp salt\nMix and bake."

// runJob executes one attempt and returns the job state the run left behind
func runJob(ctx context.Context, t *testing.T, svc Service, jobID uuid.UUID) *domain.IngestionJob {
	t.Helper()
	job, err := svc.Run(ctx, jobID)
	require.NoError(t, err)
	return job
}

func newTestService(t *testing.T, ocr *fakeOCR, cfg Config) (Service, *memory.JobStore, *memory.RecipeStore) {
	t.Helper()
	jobs := memory.NewJobStore()
	images := memory.NewObjectStore()
	recipes := memory.NewRecipeStore()
	require.NoError(t, images.Put(context.Background(), "hash-1", []byte("image-bytes")))
	svc := NewService(jobs, images, recipes, ocr, parser.New(), cfg)
	return svc, jobs, recipes
}

func TestSubmitIdempotentByContentHash(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t, &fakeOCR{text: testRecipeText}, Config{})

	first, err := svc.Submit(ctx, "hash-1")
	require.NoError(t, err)
	second, err := svc.Submit(ctx, "hash-1")
	require.NoError(t, err)

	assert.Equal(t, first.JobID, second.JobID)
	assert.Equal(t, domain.JobStatusPending, second.Status)
}

func TestRunHappyPath(t *testing.T) {
	ctx := context.Background()
	ocr := &fakeOCR{text: testRecipeText}
	svc, _, recipes := newTestService(t, ocr, Config{})

	job, err := svc.Submit(ctx, "hash-1")
	require.NoError(t, err)
	ran := runJob(ctx, t, svc, job.JobID)
	require.NotNil(t, ran)
	assert.Equal(t, domain.JobStatusSucceeded, ran.Status)

	got, err := svc.Status(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusSucceeded, got.Status)
	assert.Equal(t, 0, got.Attempts)

	stored, err := recipes.GetByKey(ctx, "hash-1", parser.Version)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "hash-1", stored.SourceImageHash)
	require.Len(t, stored.Ingredients, 2)
	assert.Equal(t, "flour", stored.Ingredients[0].Name)
}

func TestRunRetriesThenFailsTerminally(t *testing.T) {
	ctx := context.Background()
	transient := errors.New("ocr service unavailable")
	ocr := &fakeOCR{text: testRecipeText, errs: []error{transient, transient, transient}}
	svc, _, _ := newTestService(t, ocr, Config{MaxAttempts: 3, BackoffBase: time.Millisecond})

	job, err := svc.Submit(ctx, "hash-1")
	require.NoError(t, err)

	// First two failures reschedule
	for attempt := 1; attempt <= 2; attempt++ {
		runJob(ctx, t, svc, job.JobID)
		got, err := svc.Status(ctx, job.JobID)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusPending, got.Status, "attempt %d", attempt)
		assert.Equal(t, attempt, got.Attempts)
		assert.Contains(t, got.LastError, "ocr service unavailable")
	}

	// Third failure exhausts attempts
	runJob(ctx, t, svc, job.JobID)
	got, err := svc.Status(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Equal(t, 3, got.Attempts)

	// Terminal jobs never re-enter Running without explicit resubmission
	rerun, err := svc.Run(ctx, job.JobID)
	require.NoError(t, err)
	assert.Nil(t, rerun)
	got, err = svc.Status(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Equal(t, 3, got.Attempts)
}

func TestResubmitFailedJob(t *testing.T) {
	ctx := context.Background()
	transient := errors.New("timeout")
	ocr := &fakeOCR{text: testRecipeText, errs: []error{transient}}
	svc, _, _ := newTestService(t, ocr, Config{MaxAttempts: 1})

	job, err := svc.Submit(ctx, "hash-1")
	require.NoError(t, err)
	runJob(ctx, t, svc, job.JobID)

	got, err := svc.Status(ctx, job.JobID)
	require.NoError(t, err)
	require.Equal(t, domain.JobStatusFailed, got.Status)

	resubmitted, err := svc.Submit(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, job.JobID, resubmitted.JobID)
	assert.Equal(t, domain.JobStatusPending, resubmitted.Status)
}

func TestRunEmptyDocumentIsTerminal(t *testing.T) {
	ctx := context.Background()
	ocr := &fakeOCR{text: "\n\n"}
	svc, _, _ := newTestService(t, ocr, Config{MaxAttempts: 3})

	job, err := svc.Submit(ctx, "hash-1")
	require.NoError(t, err)
	runJob(ctx, t, svc, job.JobID)

	got, err := svc.Status(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusFailed, got.Status)
	assert.Equal(t, 1, got.Attempts, "empty document must not burn retries")
	assert.Contains(t, got.LastError, domain.ErrMsgEmptyDocument)
}

func TestRunSkipsWhenClaimLost(t *testing.T) {
	ctx := context.Background()
	ocr := &fakeOCR{text: testRecipeText}
	svc, jobs, _ := newTestService(t, ocr, Config{})

	job, err := svc.Submit(ctx, "hash-1")
	require.NoError(t, err)

	// Simulate another worker holding the claim
	_, claimed, err := jobs.Transition(ctx, job.JobID, []domain.JobStatus{domain.JobStatusPending}, domain.JobStatusRunning)
	require.NoError(t, err)
	require.True(t, claimed)

	lost, err := svc.Run(ctx, job.JobID)
	require.NoError(t, err)
	assert.Nil(t, lost, "losing worker must not report an outcome")
	assert.Equal(t, 0, ocr.calls, "losing worker must not touch collaborators")
}

func TestRunRerunWithExistingOutputIsNoOp(t *testing.T) {
	ctx := context.Background()
	ocr := &fakeOCR{text: testRecipeText}
	svc, jobs, _ := newTestService(t, ocr, Config{})

	job, err := svc.Submit(ctx, "hash-1")
	require.NoError(t, err)
	runJob(ctx, t, svc, job.JobID)
	require.Equal(t, 1, ocr.calls)

	// Force the job back to pending as if a stale retry fired
	_, ok, err := jobs.Transition(ctx, job.JobID, []domain.JobStatus{domain.JobStatusSucceeded}, domain.JobStatusPending)
	require.NoError(t, err)
	require.True(t, ok)

	runJob(ctx, t, svc, job.JobID)
	assert.Equal(t, 1, ocr.calls, "rerun with existing output must skip OCR")

	got, err := svc.Status(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusSucceeded, got.Status)
}

func TestStatusUnknownJob(t *testing.T) {
	svc, _, _ := newTestService(t, &fakeOCR{}, Config{})
	_, err := svc.Status(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrJobNotFound)
}
