package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Job Operations
const (
	ErrMsgFailedToInsertJob   = "failed to insert job"
	ErrMsgFailedToGetJob      = "failed to get job"
	ErrMsgFailedToUpdateJob   = "failed to update job"
	ErrMsgFailedToListJobs    = "failed to list due jobs"
	ErrMsgFailedToScanJob     = "failed to scan job"
	ErrMsgFailedToTransition  = "failed to transition job"
	ErrMsgJobRowIterationFail = "job row iteration error"
)

// Error Messages - Recipe Operations
const (
	ErrMsgFailedToInsertRecipe = "failed to insert recipe"
	ErrMsgFailedToGetRecipe    = "failed to get recipe"
	ErrMsgFailedToScanRecipe   = "failed to scan recipe"
)

// Error Messages - Pantry Operations
const (
	ErrMsgFailedToReadPantry  = "failed to read pantry"
	ErrMsgFailedToWritePantry = "failed to write pantry"
)
