// Package metrics exposes the filing gateway's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the filing gateway. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	// Submissions by filing type and outcome (pending, invalid, duplicate, error)
	Submissions *prometheus.CounterVec

	// Violations reported to submitters, by code
	Violations *prometheus.CounterVec

	// Registry decisions applied, by status
	Decisions *prometheus.CounterVec

	DecodeFailures prometheus.Counter

	SubmitLatency prometheus.Histogram
}

// New registers the collectors with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors with reg.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Submissions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "efiling_submissions_total",
			Help: "Filings received by the gateway by filing type and outcome",
		}, []string{"filing_type", "outcome"}),

		Violations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "efiling_violations_total",
			Help: "Validation violations returned to submitters by code",
		}, []string{"code"}),

		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "efiling_decisions_total",
			Help: "Registry decisions applied to submissions by status",
		}, []string{"status"}),

		DecodeFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "efiling_decode_failures_total",
			Help: "Payloads that could not be decoded",
		}),

		SubmitLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "efiling_submit_duration_seconds",
			Help:    "Duration of Submit including decode, validation and persistence",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// IncrementSubmission records one submission outcome.
func (m *Metrics) IncrementSubmission(filingType, outcome string) {
	if m != nil {
		m.Submissions.WithLabelValues(filingType, outcome).Inc()
	}
}

// IncrementViolation records one violation returned to a submitter.
func (m *Metrics) IncrementViolation(code string) {
	if m != nil {
		m.Violations.WithLabelValues(code).Inc()
	}
}

// IncrementDecision records an applied registry decision.
func (m *Metrics) IncrementDecision(status string) {
	if m != nil {
		m.Decisions.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncrementDecodeFailure() {
	if m != nil {
		m.DecodeFailures.Inc()
	}
}

// ObserveSubmitLatency records the duration of a Submit call.
func (m *Metrics) ObserveSubmitLatency(d time.Duration) {
	if m != nil {
		m.SubmitLatency.Observe(d.Seconds())
	}
}
