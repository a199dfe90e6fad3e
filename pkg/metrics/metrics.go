package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "video_submissions_total",
		Help: "Submission requests by outcome (accepted, duplicate, rejected, failed).",
	}, []string{"outcome"})

	processedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "video_processed_total",
		Help: "Finished background pipelines by terminal status.",
	}, []string{"status"})

	processingSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "video_processing_duration_seconds",
		Help:    "Wall-clock duration of successful pipelines.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	})
)

// RecordSubmission counts a submission request by outcome.
func RecordSubmission(outcome string) {
	submissionsTotal.WithLabelValues(outcome).Inc()
}

// RecordCompleted counts a successful pipeline and observes its duration.
func RecordCompleted(elapsed time.Duration) {
	processedTotal.WithLabelValues("completed").Inc()
	processingSeconds.Observe(elapsed.Seconds())
}

// RecordFailed counts a failed pipeline.
func RecordFailed() {
	processedTotal.WithLabelValues("failed").Inc()
}
