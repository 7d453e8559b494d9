// Menu Roulette - Meal Decision Funnel
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/menuroulette

// Package metrics defines the Prometheus collectors for the service.
//
// Collectors register with the default registry at package init through
// promauto; /metrics exposes them via promhttp. Callers use the Record*
// helpers rather than touching collectors directly.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Funnel Metrics
	FunnelTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_transitions_total",
			Help: "Total number of funnel step transitions",
		},
		[]string{"from", "to"},
	)

	FunnelFinalized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_finalized_total",
			Help: "Total number of final picks by how they were reached",
		},
		[]string{"route", "category"},
	)

	FunnelRejectedEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_rejected_events_total",
			Help: "Total number of events rejected by the funnel",
		},
		[]string{"step", "reason"},
	)

	FilterCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "filter_candidates",
			Help:    "Number of candidates left after the filter pipeline",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 12, 17},
		},
	)

	RouletteSpins = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roulette_spin_slots",
			Help:    "Number of slots on the wheel for each roulette spin",
			Buckets: []float64{2, 3, 4, 5, 6, 8, 10},
		},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "funnel_active_sessions",
			Help: "Current number of live funnel sessions",
		},
	)

	SessionsEvicted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "funnel_sessions_evicted_total",
			Help: "Total number of sessions dropped from the registry",
		},
		[]string{"reason"}, // "expired", "capacity", "deleted"
	)

	// Preference Store Metrics
	PreferenceMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preference_mutations_total",
			Help: "Total number of preference store mutations",
		},
		[]string{"record", "op"},
	)

	PreferencePersistErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preference_persist_errors_total",
			Help: "Total number of failed preference record writes",
		},
		[]string{"record"},
	)

	PreferencePersistDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "preference_persist_duration_seconds",
			Help:    "Duration of preference record writes",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"record"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit counts a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordTransition counts a step change.
func RecordTransition(from, to string) {
	FunnelTransitions.WithLabelValues(from, to).Inc()
}

// RecordFinalized counts a final pick.
func RecordFinalized(route, categoryID string) {
	FunnelFinalized.WithLabelValues(route, categoryID).Inc()
}

// RecordRejectedEvent counts an event the funnel refused.
func RecordRejectedEvent(step, reason string) {
	FunnelRejectedEvents.WithLabelValues(step, reason).Inc()
}

// RecordCandidates observes the size of a candidate set.
func RecordCandidates(n int) {
	FilterCandidates.Observe(float64(n))
}

// RecordSpin observes the wheel size of a roulette spin.
func RecordSpin(slots int) {
	RouletteSpins.Observe(float64(slots))
}

// RecordSessionEvicted counts a registry removal and lowers the live gauge.
func RecordSessionEvicted(reason string) {
	SessionsEvicted.WithLabelValues(reason).Inc()
	ActiveSessions.Dec()
}

// RecordPreferenceWrite records a persisted mutation and its outcome.
func RecordPreferenceWrite(record, op string, duration time.Duration, err error) {
	PreferenceMutations.WithLabelValues(record, op).Inc()
	PreferencePersistDuration.WithLabelValues(record).Observe(duration.Seconds())
	if err != nil {
		PreferencePersistErrors.WithLabelValues(record).Inc()
	}
}

// RecordBreakerTransition updates breaker state gauges.
func RecordBreakerTransition(name, from, to string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}
