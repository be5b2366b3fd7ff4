// Package metrics provides Prometheus collectors for quiz result submissions
// and an HTTP handler to expose them.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome is the terminal state of one request
type Outcome string

const (
	OutcomePreflight          Outcome = "preflight"
	OutcomeRejectedMethod     Outcome = "rejected_method"
	OutcomeRejectedValidation Outcome = "rejected_validation"
	OutcomeRejectedConfig     Outcome = "rejected_config"
	OutcomeDelivered          Outcome = "delivered"
	OutcomeDeliveryFailed     Outcome = "delivery_failed"
	OutcomeInternalFailure    Outcome = "internal_failure"
)

// Recorder records request outcomes and delivery timings.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	requests *prometheus.CounterVec
	delivery prometheus.Histogram
}

// NewRecorder creates the collectors and registers them with reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quiz_results_requests_total",
				Help: "Requests handled by the result notifier, by outcome",
			},
			[]string{"outcome"},
		),
		delivery: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name: "quiz_results_delivery_duration_seconds",
				Help: "Duration of Telegram sendMessage calls",
				Buckets: []float64{
					0.05,
					0.1,
					0.25,
					0.5,
					1,
					2.5,
					5,
					10,
				},
			},
		),
	}

	reg.MustRegister(r.requests, r.delivery)

	return r
}

// ObserveOutcome increments the counter for a terminal request state
func (r *Recorder) ObserveOutcome(o Outcome) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(string(o)).Inc()
}

// ObserveDelivery records how long one delivery attempt took
func (r *Recorder) ObserveDelivery(d time.Duration) {
	if r == nil {
		return
	}
	r.delivery.Observe(d.Seconds())
}

// Handler returns an HTTP handler that exposes the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
