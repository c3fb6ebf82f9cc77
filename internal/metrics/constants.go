package metrics

// Metric names
const (
	MetricNameHTTPRequestsTotal    = "recipevault_http_requests_total"
	MetricNameHTTPRequestDuration  = "recipevault_http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "recipevault_http_requests_in_flight"

	MetricNameJobsSubmitted = "recipevault_ingestion_jobs_submitted_total"
	MetricNameJobsStarted   = "recipevault_ingestion_jobs_started_total"
	MetricNameJobsSucceeded = "recipevault_ingestion_jobs_succeeded_total"
	MetricNameJobsFailed    = "recipevault_ingestion_jobs_failed_total"
	MetricNameJobRetries    = "recipevault_ingestion_job_retries_total"

	MetricNameParseDuration = "recipevault_parse_duration_seconds"

	MetricNameCooksTotal      = "recipevault_cooks_total"
	MetricNameCookCommits     = "recipevault_cook_commits_total"
	MetricNameCommitConflicts = "recipevault_cook_commit_conflicts_total"
)

// Help texts
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being served"

	HelpTextJobsSubmitted = "Total ingestion jobs submitted"
	HelpTextJobsStarted   = "Total ingestion job run attempts started"
	HelpTextJobsSucceeded = "Total ingestion jobs that succeeded"
	HelpTextJobsFailed    = "Total ingestion jobs that failed terminally"
	HelpTextJobRetries    = "Total ingestion job retries scheduled"

	HelpTextParseDuration = "Recipe parse latency in seconds"

	HelpTextCooksTotal      = "Total cook plans computed"
	HelpTextCookCommits     = "Total cook plans committed against a pantry"
	HelpTextCommitConflicts = "Total cook commits rejected for insufficient stock"
)

// Label names
const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelFeasible = "feasible"
)

// HTTPLatencyBuckets covers the latency range of this service's endpoints
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}
