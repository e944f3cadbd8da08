// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brand_audit_analyses_total",
			Help: "Total number of completed audit analyses",
		},
		[]string{"backend", "phase"},
	)

	AnalysisScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "brand_audit_score",
			Help:    "Distribution of brand health scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "brand_audit_analysis_duration_seconds",
			Help: "Duration of one analysis in seconds",
		},
		[]string{"backend"},
	)

	ValidationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brand_audit_validation_failures_total",
			Help: "Total number of failed record validation rules",
		},
		[]string{"code"},
	)

	RemoteFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "brand_audit_remote_failures_total",
			Help: "Total number of failed remote analyses",
		},
		[]string{"backend"},
	)
)
