package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrderSubmitDuration tracks order submission latency by outcome.
	OrderSubmitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_submit_duration_seconds",
			Help:    "Duration of order submission attempts in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
		[]string{"outcome"}, // accepted, rejected_validation, rejected_stock, rejected_closed, locked, error
	)

	// LockoutsTriggered counts submission guard lockouts by escalation level.
	LockoutsTriggered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "submission_lockouts_total",
			Help: "Number of submission lockouts triggered",
		},
		[]string{"level"},
	)

	// ReceiptUploads counts receipt uploads by outcome.
	ReceiptUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receipt_uploads_total",
			Help: "Number of receipt upload attempts",
		},
		[]string{"outcome"}, // accepted, too_large, bad_type, error
	)
)

// ObserveOrderSubmit records one submission attempt.
func ObserveOrderSubmit(outcome string, seconds float64) {
	OrderSubmitDuration.WithLabelValues(outcome).Observe(seconds)
}
