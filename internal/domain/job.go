package domain

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the lifecycle state of an ingestion job
type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// IngestionJob tracks one image's trip through the pipeline. There is at
// most one job per content hash; re-submitting an image that already has a
// live or succeeded job returns the existing job unchanged.
type IngestionJob struct {
	JobID       uuid.UUID `json:"job_id"`
	ContentHash string    `json:"content_hash"`
	Status      JobStatus `json:"status"`
	Attempts    int       `json:"attempts"`
	LastError   string    `json:"last_error,omitempty"`
	NextRunAt   time.Time `json:"next_run_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsTerminal reports whether the job has finished for good. A failed job
// only leaves this state through explicit resubmission.
func (j *IngestionJob) IsTerminal() bool {
	return j.Status == JobStatusSucceeded || j.Status == JobStatusFailed
}
