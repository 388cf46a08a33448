// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package observability provides metrics and instrumentation for the simulator.
//
// # Description
//
// This package implements Prometheus metrics for monitoring circuit
// evaluation. Metrics include:
//   - Evaluation counters (by endpoint, status, error type)
//   - Applied step counters (by operator kind and name)
//   - Latency histograms (evaluation duration, circuit length)
//   - Active session and stream gauges
//
// # Integration
//
// Metrics are exposed via /metrics endpoint. Use with Prometheus + Grafana
// for dashboards and alerting.
//
// # Thread Safety
//
// All metric operations are thread-safe via Prometheus's internal locking.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// =============================================================================
// Metric Definitions
// =============================================================================

// Namespace for all metrics
const metricsNamespace = "blochsim"

// Subsystem for simulator metrics
const simulatorSubsystem = "simulator"

// SimulatorMetrics holds all Prometheus metrics for circuit evaluation.
//
// # Description
//
// Provides counters, histograms, and gauges for monitoring evaluation
// throughput, latency, and session usage. Initialize once at startup via
// InitMetrics().
//
// # Fields
//
//   - EvaluationsTotal: Counter of circuit evaluations by endpoint and status
//   - StepsTotal: Counter of applied steps by operator kind and name
//   - EvaluationDurationSeconds: Histogram of evaluation duration
//   - CircuitLengthSteps: Histogram of circuit length per request
//   - ActiveSessions: Gauge of currently held sessions
//   - ActiveStreams: Gauge of currently open websocket streams
//   - SessionsTotal: Counter of session lifecycle events
//   - ErrorsTotal: Counter of errors by type and endpoint
//
// # Thread Safety
//
// All operations are thread-safe.
type SimulatorMetrics struct {
	// EvaluationsTotal counts circuit evaluations by endpoint and status.
	// Labels: endpoint (evolve, session_steps, stream, ...), status (success, error)
	EvaluationsTotal *prometheus.CounterVec

	// StepsTotal counts applied circuit steps by operator.
	// Labels: kind (gate, noise), operator (x, h, rz, amplitude_damping, ...)
	StepsTotal *prometheus.CounterVec

	// EvaluationDurationSeconds measures full-circuit evaluation latency.
	// Labels: endpoint
	EvaluationDurationSeconds *prometheus.HistogramVec

	// CircuitLengthSteps measures the number of steps per evaluated circuit.
	// Labels: endpoint
	CircuitLengthSteps *prometheus.HistogramVec

	// ActiveSessions tracks sessions currently held in the store.
	ActiveSessions prometheus.Gauge

	// ActiveStreams tracks currently open websocket connections.
	ActiveStreams prometheus.Gauge

	// SessionsTotal counts session lifecycle events.
	// Labels: event (created, deleted, expired)
	SessionsTotal *prometheus.CounterVec

	// ErrorsTotal counts errors by type and endpoint.
	// Labels: endpoint, error_code (validation, unknown_operator, ...)
	ErrorsTotal *prometheus.CounterVec
}

// DefaultMetrics is the singleton instance of SimulatorMetrics.
// Initialized by InitMetrics().
var DefaultMetrics *SimulatorMetrics

// InitMetrics initializes the default metrics instance.
//
// # Description
//
// Creates and registers all Prometheus metrics. Should be called once
// at application startup, after Prometheus registry is available.
//
// # Outputs
//
//   - *SimulatorMetrics: The initialized metrics instance.
//
// # Examples
//
//	func main() {
//	    observability.InitMetrics()
//	    // ... start server ...
//	}
//
// # Limitations
//
//   - Idempotent: repeated calls return the existing instance rather
//     than re-registering.
//
// # Assumptions
//
//   - Prometheus default registry is available.
func InitMetrics() *SimulatorMetrics {
	if DefaultMetrics != nil {
		return DefaultMetrics
	}

	DefaultMetrics = &SimulatorMetrics{
		EvaluationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: simulatorSubsystem,
				Name:      "evaluations_total",
				Help:      "Total number of circuit evaluations by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),

		StepsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: simulatorSubsystem,
				Name:      "steps_total",
				Help:      "Total applied circuit steps by operator kind and name",
			},
			[]string{"kind", "operator"},
		),

		EvaluationDurationSeconds: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: simulatorSubsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Full-circuit evaluation duration in seconds",
				Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.05, 0.25},
			},
			[]string{"endpoint"},
		),

		CircuitLengthSteps: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: simulatorSubsystem,
				Name:      "circuit_length_steps",
				Help:      "Number of steps per evaluated circuit",
				Buckets:   []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512, 1024},
			},
			[]string{"endpoint"},
		),

		ActiveSessions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: simulatorSubsystem,
				Name:      "active_sessions",
				Help:      "Number of sessions currently held in the store",
			},
		),

		ActiveStreams: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: simulatorSubsystem,
				Name:      "active_streams",
				Help:      "Number of currently open websocket connections",
			},
		),

		SessionsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: simulatorSubsystem,
				Name:      "sessions_total",
				Help:      "Total session lifecycle events",
			},
			[]string{"event"},
		),

		ErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: simulatorSubsystem,
				Name:      "errors_total",
				Help:      "Total evaluation errors by type and endpoint",
			},
			[]string{"endpoint", "error_code"},
		),
	}

	return DefaultMetrics
}

// =============================================================================
// Error Codes
// =============================================================================

// ErrorCode represents a categorized error type for metrics.
type ErrorCode string

const (
	// ErrorCodeValidation indicates request validation failure.
	ErrorCodeValidation ErrorCode = "validation"

	// ErrorCodeUnknownOperator indicates a step named no catalog operator.
	ErrorCodeUnknownOperator ErrorCode = "unknown_operator"

	// ErrorCodeMalformedStep indicates a structurally invalid step.
	ErrorCodeMalformedStep ErrorCode = "malformed_step"

	// ErrorCodeNonUnitary indicates the unitarity check rejected a gate.
	ErrorCodeNonUnitary ErrorCode = "non_unitary"

	// ErrorCodeSessionNotFound indicates a lookup for an absent session.
	ErrorCodeSessionNotFound ErrorCode = "session_not_found"

	// ErrorCodeSessionLimit indicates the session store is at capacity.
	ErrorCodeSessionLimit ErrorCode = "session_limit"

	// ErrorCodeInternal indicates internal server error.
	ErrorCodeInternal ErrorCode = "internal"
)

// =============================================================================
// Endpoint Names
// =============================================================================

// Endpoint represents a simulator endpoint for metrics labeling.
type Endpoint string

const (
	// EndpointEvolve is the one-shot circuit evaluation endpoint.
	EndpointEvolve Endpoint = "evolve"

	// EndpointLegacyRun is the legacy /run_circuit alias.
	EndpointLegacyRun Endpoint = "legacy_run"

	// EndpointOperators is the operator catalog endpoint.
	EndpointOperators Endpoint = "operators"

	// EndpointSessions is the session create/lookup/delete endpoint group.
	EndpointSessions Endpoint = "sessions"

	// EndpointSessionSteps is the incremental session evaluation endpoint.
	EndpointSessionSteps Endpoint = "session_steps"

	// EndpointStream is the websocket streaming endpoint.
	EndpointStream Endpoint = "stream"
)

// =============================================================================
// Helper Methods
// =============================================================================

// RecordEvaluation records a completed circuit evaluation.
//
// # Inputs
//
//   - endpoint: The endpoint that handled the evaluation.
//   - success: Whether the full circuit applied without error.
func (m *SimulatorMetrics) RecordEvaluation(endpoint Endpoint, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.EvaluationsTotal.WithLabelValues(string(endpoint), status).Inc()
}

// RecordError records an evaluation error.
//
// # Inputs
//
//   - endpoint: The endpoint where the error occurred.
//   - code: The error type code.
func (m *SimulatorMetrics) RecordError(endpoint Endpoint, code ErrorCode) {
	m.ErrorsTotal.WithLabelValues(string(endpoint), string(code)).Inc()
}

// RecordStep records one applied circuit step.
//
// # Inputs
//
//   - kind: Operator family ("gate" or "noise").
//   - operator: Canonical operator name.
func (m *SimulatorMetrics) RecordStep(kind, operator string) {
	m.StepsTotal.WithLabelValues(kind, operator).Inc()
}

// RecordDuration records the latency of a full-circuit evaluation.
//
// # Inputs
//
//   - endpoint: The endpoint that handled the evaluation.
//   - seconds: Evaluation duration in seconds.
func (m *SimulatorMetrics) RecordDuration(endpoint Endpoint, seconds float64) {
	m.EvaluationDurationSeconds.WithLabelValues(string(endpoint)).Observe(seconds)
}

// RecordCircuitLength records the step count of an evaluated circuit.
//
// # Inputs
//
//   - endpoint: The endpoint that handled the evaluation.
//   - steps: Number of steps in the circuit.
func (m *SimulatorMetrics) RecordCircuitLength(endpoint Endpoint, steps int) {
	m.CircuitLengthSteps.WithLabelValues(string(endpoint)).Observe(float64(steps))
}

// SessionOpened increments the active sessions gauge and records a
// creation event.
func (m *SimulatorMetrics) SessionOpened() {
	m.ActiveSessions.Inc()
	m.SessionsTotal.WithLabelValues("created").Inc()
}

// SessionClosed decrements the active sessions gauge.
//
// # Inputs
//
//   - expired: True when the TTL sweeper removed the session, false for
//     an explicit client delete.
func (m *SimulatorMetrics) SessionClosed(expired bool) {
	m.ActiveSessions.Dec()
	event := "deleted"
	if expired {
		event = "expired"
	}
	m.SessionsTotal.WithLabelValues(event).Inc()
}

// StreamOpened increments the active streams gauge.
func (m *SimulatorMetrics) StreamOpened() {
	m.ActiveStreams.Inc()
}

// StreamClosed decrements the active streams gauge.
func (m *SimulatorMetrics) StreamClosed() {
	m.ActiveStreams.Dec()
}
