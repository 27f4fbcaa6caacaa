package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry())

	m.IncrementSubmission("charge_registration", "pending")
	m.IncrementSubmission("charge_registration", "pending")
	m.IncrementSubmission("charge_registration", "invalid")
	m.IncrementViolation("missing_field")
	m.IncrementDecision("accepted")
	m.IncrementDecodeFailure()
	m.ObserveSubmitLatency(20 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues("charge_registration", "pending")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("charge_registration", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Violations.WithLabelValues("missing_field")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Decisions.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DecodeFailures))
	assert.Equal(t, 1, testutil.CollectAndCount(m.SubmitLatency))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementSubmission("charge_registration", "pending")
		m.IncrementViolation("missing_field")
		m.IncrementDecision("accepted")
		m.IncrementDecodeFailure()
		m.ObserveSubmitLatency(time.Second)
	})
}

func TestNewWithRegistry_Independent(t *testing.T) {
	assert.NotPanics(t, func() {
		NewWithRegistry(prometheus.NewRegistry())
		NewWithRegistry(prometheus.NewRegistry())
	})
}
