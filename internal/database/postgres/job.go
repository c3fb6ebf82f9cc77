package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/RecipeVault_Go/internal/domain"
)

// JobRepository implements repository.JobStore for PostgreSQL
type JobRepository struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{db: db}
}

const jobColumns = "job_id, content_hash, status, attempts, last_error, next_run_at, created_at, updated_at"

// Create inserts a new ingestion job
func (r *JobRepository) Create(ctx context.Context, job *domain.IngestionJob) error {
	query := `
		INSERT INTO ingestion_jobs (job_id, content_hash, status, attempts, last_error, next_run_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		job.JobID,
		job.ContentHash,
		string(job.Status),
		job.Attempts,
		job.LastError,
		job.NextRunAt,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertJob, err)
	}
	return nil
}

// GetByID retrieves a job by id, or (nil, nil) when absent
func (r *JobRepository) GetByID(ctx context.Context, jobID uuid.UUID) (*domain.IngestionJob, error) {
	query := `SELECT ` + jobColumns + ` FROM ingestion_jobs WHERE job_id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, jobID))
}

// GetByContentHash retrieves the job tracking an image, or (nil, nil)
func (r *JobRepository) GetByContentHash(ctx context.Context, contentHash string) (*domain.IngestionJob, error) {
	query := `SELECT ` + jobColumns + ` FROM ingestion_jobs WHERE content_hash = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, contentHash))
}

// Transition atomically moves the job between states via a conditional
// update. The WHERE clause is the compare half of the compare-and-swap;
// zero rows updated means another worker got there first.
func (r *JobRepository) Transition(ctx context.Context, jobID uuid.UUID, from []domain.JobStatus, to domain.JobStatus) (*domain.IngestionJob, bool, error) {
	fromStates := make([]string, len(from))
	for i, s := range from {
		fromStates[i] = string(s)
	}

	query := `
		UPDATE ingestion_jobs
		SET status = $1, updated_at = $2
		WHERE job_id = $3 AND status = ANY($4)
		RETURNING ` + jobColumns

	job, err := r.scanOne(r.db.QueryRow(ctx, query, string(to), time.Now().UTC(), jobID, fromStates))
	if err != nil {
		return nil, false, err
	}
	if job != nil {
		return job, true, nil
	}

	// Lost the race or wrong state; report the current row
	current, err := r.GetByID(ctx, jobID)
	if err != nil {
		return nil, false, err
	}
	if current == nil {
		return nil, false, fmt.Errorf("%w: %s", domain.ErrJobNotFound, jobID)
	}
	return current, false, nil
}

// Update overwrites mutable bookkeeping fields without changing status
func (r *JobRepository) Update(ctx context.Context, job *domain.IngestionJob) error {
	query := `
		UPDATE ingestion_jobs
		SET attempts = $1, last_error = $2, next_run_at = $3, updated_at = $4
		WHERE job_id = $5
	`

	_, err := r.db.Exec(ctx, query,
		job.Attempts,
		job.LastError,
		job.NextRunAt,
		time.Now().UTC(),
		job.JobID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpdateJob, err)
	}
	return nil
}

// ListDue returns pending jobs whose next run time has passed, oldest first
func (r *JobRepository) ListDue(ctx context.Context, now time.Time, limit int) ([]domain.IngestionJob, error) {
	query := `
		SELECT ` + jobColumns + `
		FROM ingestion_jobs
		WHERE status = $1 AND next_run_at <= $2
		ORDER BY next_run_at
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, string(domain.JobStatusPending), now, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListJobs, err)
	}
	defer rows.Close()

	var jobs []domain.IngestionJob
	for rows.Next() {
		var job domain.IngestionJob
		var status string
		err := rows.Scan(
			&job.JobID,
			&job.ContentHash,
			&status,
			&job.Attempts,
			&job.LastError,
			&job.NextRunAt,
			&job.CreatedAt,
			&job.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanJob, err)
		}
		job.Status = domain.JobStatus(status)
		jobs = append(jobs, job)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgJobRowIterationFail, err)
	}
	return jobs, nil
}

func (r *JobRepository) scanOne(row pgx.Row) (*domain.IngestionJob, error) {
	var job domain.IngestionJob
	var status string
	err := row.Scan(
		&job.JobID,
		&job.ContentHash,
		&status,
		&job.Attempts,
		&job.LastError,
		&job.NextRunAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetJob, err)
	}
	job.Status = domain.JobStatus(status)
	return &job, nil
}
