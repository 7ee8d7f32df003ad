package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the eligibility engine.
type Metrics struct {
	// Evaluation outcomes by scheme code and verdict
	Evaluations *prometheus.CounterVec

	// Per-scheme evaluation latency
	EvaluationDuration *prometheus.HistogramVec
}

// New creates a Metrics instance with all eligibility metrics registered.
func New() *Metrics {
	return &Metrics{
		Evaluations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "govassist_eligibility_evaluations_total",
			Help: "Total eligibility evaluations by scheme code and verdict",
		}, []string{"scheme_code", "verdict"}),

		EvaluationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "govassist_eligibility_evaluation_duration_seconds",
			Help:    "Duration of a single scheme evaluation",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"scheme_code"}),
	}
}

// ObserveEvaluation records one evaluation's verdict and duration.
func (m *Metrics) ObserveEvaluation(schemeCode string, eligible bool, d time.Duration) {
	if m != nil {
		verdict := "ineligible"
		if eligible {
			verdict = "eligible"
		}
		m.Evaluations.WithLabelValues(schemeCode, verdict).Inc()
		m.EvaluationDuration.WithLabelValues(schemeCode).Observe(d.Seconds())
	}
}
