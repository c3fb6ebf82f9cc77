package ingest

import "time"

// Defaults applied when the config leaves a field zero
const (
	// DefaultMaxAttempts bounds transient-failure retries per job
	DefaultMaxAttempts = 3

	// DefaultBackoffBase is the base delay for exponential retry backoff
	DefaultBackoffBase = 30 * time.Second

	// DefaultOperationTimeout bounds each external call (image fetch, OCR)
	DefaultOperationTimeout = 30 * time.Second

	// maxBackoffShift caps the exponential term so the delay cannot
	// overflow no matter how attempts is bookkept
	maxBackoffShift = 10
)

// Log messages used by the ingestion runner
const (
	LogMsgJobSubmitted       = "Ingestion job submitted"
	LogMsgJobResubmitted     = "Failed ingestion job resubmitted"
	LogMsgJobAlreadyTracked  = "Ingestion already tracked for content hash"
	LogMsgJobClaimLost       = "Job claim lost to another worker, skipping"
	LogMsgJobOutputExists    = "Parsed output already exists, marking succeeded"
	LogMsgJobSucceeded       = "Ingestion job succeeded"
	LogMsgJobFailedTerminal  = "Ingestion job failed terminally"
	LogMsgJobRetryScheduled  = "Ingestion job failed, retry scheduled"
	LogMsgJobEmptyDocument   = "Document produced no recipe content, failing without retry"
)
