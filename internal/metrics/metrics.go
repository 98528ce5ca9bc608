package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	CleanRuns = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "listlens_clean_runs_total",
		Help: "Total cleaning runs",
	})
	CleanErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "listlens_clean_errors_total",
		Help: "Total cleaning run errors",
	})
	CleanDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "listlens_clean_duration_seconds",
		Help:    "Cleaning run duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	PostsKept = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "listlens_posts_kept_total",
		Help: "Posts that survived the filter across all runs",
	})
	EntriesDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "listlens_entries_dropped_total",
		Help: "Timeline entries dropped, by reason",
	}, []string{"reason"})
	APIRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "listlens_api_retries_total",
		Help: "Total API retry attempts",
	}, []string{"endpoint"})
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "listlens_command_runs_total",
		Help: "CLI command invocations",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "listlens_command_errors_total",
		Help: "CLI command failures",
	}, []string{"command"})
)

func init() {
	prometheus.MustRegister(CleanRuns, CleanErrors, CleanDuration, PostsKept, EntriesDropped, APIRetries, CommandRuns, CommandErrors)
}

// ObserveCleanDuration records a run duration
func ObserveCleanDuration(start time.Time) {
	CleanDuration.Observe(time.Since(start).Seconds())
}

// IncAPIRetry increments the retry counter for an endpoint.
func IncAPIRetry(endpoint string) { APIRetries.WithLabelValues(endpoint).Inc() }

// IncDropped increments the dropped-entry counter for a reason.
func IncDropped(reason string, n int) {
	if n > 0 {
		EntriesDropped.WithLabelValues(reason).Add(float64(n))
	}
}

// IncCommandRun counts one CLI command invocation.
func IncCommandRun(cmd string) { CommandRuns.WithLabelValues(cmd).Inc() }

// IncCommandError counts one CLI command failure.
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }
