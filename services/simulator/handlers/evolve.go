// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package handlers provides the HTTP and websocket handlers for the
// simulator service.
package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/AleutianAI/BlochSim/services/quantum"
	"github.com/AleutianAI/BlochSim/services/simulator/datatypes"
	"github.com/AleutianAI/BlochSim/services/simulator/middleware"
	"github.com/AleutianAI/BlochSim/services/simulator/observability"
)

// Create a new tracer
var evolveTracer = otel.Tracer("blochsim.simulator.handlers")

// HandleEvolve evaluates a circuit against a fresh ground state.
//
// # Description
//
// Serves both POST /v1/circuit/evolve and the legacy POST /run_circuit
// alias; the endpoint parameter only affects metric labels. Every
// request gets its own state instance, so concurrent requests never
// share mutable data and the handler needs no locking.
//
// Evaluation aborts on the first failing step. The applied prefix is
// discarded along with the state; the client receives the step error.
func HandleEvolve(endpoint observability.Endpoint) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := evolveTracer.Start(c.Request.Context(), "HandleEvolve")
		defer span.End()

		// 1. Bind and validate the request
		var req datatypes.EvolveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Error("Failed to bind evolve request", "error", err)
			span.RecordError(err)
			recordError(endpoint, observability.ErrorCodeValidation)
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      "invalid request body: " + err.Error(),
				"request_id": middleware.GetRequestID(c),
			})
			return
		}
		req.EnsureDefaults()
		if err := req.Validate(); err != nil {
			slog.Error("Evolve request failed validation", "request_id", req.RequestID, "error", err)
			span.RecordError(err)
			recordError(endpoint, observability.ErrorCodeValidation)
			c.JSON(http.StatusBadRequest, gin.H{
				"error":      err.Error(),
				"request_id": req.RequestID,
			})
			return
		}

		span.SetAttributes(
			attribute.String("request.id", req.RequestID),
			attribute.Int("request.step_count", len(req.Steps)),
		)

		// 2. Resolve wire steps against the operator catalog
		ops, err := parseSteps(req.Steps)
		if err != nil {
			slog.Error("Failed to resolve circuit steps", "request_id", req.RequestID, "error", err)
			span.RecordError(err)
			status, code := classifyError(err)
			recordError(endpoint, code)
			c.JSON(status, gin.H{
				"error":      err.Error(),
				"request_id": req.RequestID,
			})
			return
		}

		// 3. Evolve a fresh ground state through the circuit
		st := quantum.NewState(quantum.Config{})
		start := time.Now()
		observations, runErr := quantum.Run(st, ops)
		elapsed := time.Since(start)

		recordEvaluation(endpoint, ops, len(observations), elapsed, runErr == nil)

		if runErr != nil {
			slog.Error("Circuit evaluation aborted",
				"request_id", req.RequestID,
				"applied_steps", len(observations),
				"error", runErr,
			)
			span.RecordError(runErr)
			status, code := classifyError(runErr)
			recordError(endpoint, code)
			c.JSON(status, gin.H{
				"error":      runErr.Error(),
				"request_id": req.RequestID,
			})
			return
		}

		slog.Info("Circuit evaluated",
			"request_id", req.RequestID,
			"steps", len(ops),
			"duration_ms", elapsed.Milliseconds(),
		)
		c.JSON(http.StatusOK, datatypes.NewEvolveResponse(req.RequestID, observations, elapsed))
	}
}

// =============================================================================
// Shared Helpers
// =============================================================================

// parseSteps resolves wire steps into engine operations. The index of
// the offending step is prefixed so clients can locate it.
func parseSteps(steps []datatypes.StepRequest) ([]quantum.Operation, error) {
	ops := make([]quantum.Operation, len(steps))
	for i, s := range steps {
		op, err := quantum.ParseStep(s.Kind, s.Name, s.Params)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		ops[i] = op
	}
	return ops, nil
}

// classifyError maps engine errors to an HTTP status and metric code.
func classifyError(err error) (int, observability.ErrorCode) {
	var unknownOp *quantum.UnknownOperatorError
	var malformed *quantum.MalformedStepError
	var nonUnitary *quantum.NonUnitaryError

	switch {
	case errors.As(err, &unknownOp):
		return http.StatusBadRequest, observability.ErrorCodeUnknownOperator
	case errors.As(err, &malformed):
		return http.StatusBadRequest, observability.ErrorCodeMalformedStep
	case errors.As(err, &nonUnitary):
		return http.StatusUnprocessableEntity, observability.ErrorCodeNonUnitary
	case errors.Is(err, quantum.ErrEmptyKrausSet):
		return http.StatusBadRequest, observability.ErrorCodeMalformedStep
	default:
		return http.StatusInternalServerError, observability.ErrorCodeInternal
	}
}

// recordEvaluation emits the per-evaluation metrics. Only the applied
// prefix counts toward the step counters when a circuit aborts.
func recordEvaluation(endpoint observability.Endpoint, ops []quantum.Operation, applied int, elapsed time.Duration, success bool) {
	m := observability.DefaultMetrics
	if m == nil {
		return
	}

	m.RecordEvaluation(endpoint, success)
	m.RecordDuration(endpoint, elapsed.Seconds())
	m.RecordCircuitLength(endpoint, len(ops))
	for i := 0; i < applied && i < len(ops); i++ {
		m.RecordStep(string(ops[i].Kind()), ops[i].Name())
	}
}

// recordError emits an error metric when metrics are initialized.
func recordError(endpoint observability.Endpoint, code observability.ErrorCode) {
	if m := observability.DefaultMetrics; m != nil {
		m.RecordError(endpoint, code)
	}
}
