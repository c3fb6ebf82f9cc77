package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Ingestion Metrics
var (
	IngestionJobsSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameJobsSubmitted,
			Help: HelpTextJobsSubmitted,
		},
	)

	IngestionJobsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameJobsStarted,
			Help: HelpTextJobsStarted,
		},
	)

	IngestionJobsSucceeded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameJobsSucceeded,
			Help: HelpTextJobsSucceeded,
		},
	)

	IngestionJobsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameJobsFailed,
			Help: HelpTextJobsFailed,
		},
	)

	IngestionJobRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameJobRetries,
			Help: HelpTextJobRetries,
		},
	)

	ParseDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameParseDuration,
			Help:    HelpTextParseDuration,
			Buckets: prometheus.DefBuckets,
		},
	)
)

// Cooking Metrics
var (
	CooksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCooksTotal,
			Help: HelpTextCooksTotal,
		},
		[]string{LabelFeasible},
	)

	CookCommits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCookCommits,
			Help: HelpTextCookCommits,
		},
	)

	CookCommitConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameCommitConflicts,
			Help: HelpTextCommitConflicts,
		},
	)
)
