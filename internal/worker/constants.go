package worker

// Log messages for the worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
)

// Log messages for the retry poller
const (
	LogMsgRetryPollFailed   = "Failed to poll for due ingestion jobs"
	LogMsgRetryJobEnqueued  = "Due ingestion job enqueued"
	LogMsgRetryQueueFull    = "Worker queue full, due job will be retried next poll"
	LogMsgRetryBatchSkipped = "No ingestion jobs due"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestWorkerProcessWaitTime = 100 // milliseconds
)
