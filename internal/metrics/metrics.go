// Package metrics defines the gateway's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Gate decision outcomes.
const (
	OutcomeAdmitted        = "admitted"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeForbidden       = "forbidden"
	OutcomeRateLimited     = "rate_limited"
)

// Metrics holds the registered collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	GateDecisions       *prometheus.CounterVec
	ThrottleRejections  prometheus.Counter
	VaultOperations     *prometheus.CounterVec
	ModelCallDuration   *prometheus.HistogramVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		GateDecisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gate_decisions_total",
				Help: "Access gate decisions by outcome.",
			},
			[]string{"outcome"},
		),
		ThrottleRejections: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "throttle_rejections_total",
				Help: "Requests rejected by the sliding-window throttle.",
			},
		),
		VaultOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vault_operations_total",
				Help: "Credential vault operations by operation and result.",
			},
			[]string{"op", "result"},
		),
		ModelCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "model_call_duration_seconds",
				Help:    "Latency of outbound model calls.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"service"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency by method, route template and status.",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "route", "status"},
		),
	}
}

// RecordGateDecision counts a gate decision.
func (m *Metrics) RecordGateDecision(outcome string) {
	if m == nil {
		return
	}
	m.GateDecisions.WithLabelValues(outcome).Inc()
}

// RecordThrottleRejection counts a throttled request.
func (m *Metrics) RecordThrottleRejection() {
	if m == nil {
		return
	}
	m.ThrottleRejections.Inc()
}

// RecordVaultOperation counts a vault operation; err decides the result label.
func (m *Metrics) RecordVaultOperation(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.VaultOperations.WithLabelValues(op, result).Inc()
}

// ObserveModelCall records the duration of an outbound model call.
func (m *Metrics) ObserveModelCall(service string, d time.Duration) {
	if m == nil {
		return
	}
	m.ModelCallDuration.WithLabelValues(service).Observe(d.Seconds())
}

// ObserveHTTPRequest records the duration of a served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
