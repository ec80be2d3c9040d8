package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordGateDecision(OutcomeAdmitted)
	m.RecordGateDecision(OutcomeAdmitted)
	m.RecordGateDecision(OutcomeRateLimited)
	m.RecordThrottleRejection()
	m.RecordVaultOperation("register", nil)
	m.RecordVaultOperation("register", errors.New("boom"))
	m.ObserveModelCall("google", 300*time.Millisecond)
	m.ObserveHTTPRequest("GET", "/api/v1/keys", 200, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.GateDecisions.WithLabelValues(OutcomeAdmitted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GateDecisions.WithLabelValues(OutcomeRateLimited)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ThrottleRejections))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VaultOperations.WithLabelValues("register", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.VaultOperations.WithLabelValues("register", "error")))

	count, err := testutil.GatherAndCount(reg, "model_call_duration_seconds", "http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordGateDecision(OutcomeForbidden)
		m.RecordThrottleRejection()
		m.RecordVaultOperation("get", nil)
		m.ObserveModelCall("openai", time.Second)
		m.ObserveHTTPRequest("POST", "/", 500, time.Second)
	})
}
