// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/AleutianAI/BlochSim/services/quantum"
	"github.com/AleutianAI/BlochSim/services/simulator/datatypes"
	"github.com/AleutianAI/BlochSim/services/simulator/observability"
	"github.com/AleutianAI/BlochSim/services/simulator/sessions"
)

var sessionTracer = otel.Tracer("blochsim.simulator.handlers")

// HandleCreateSession registers a new session in the store.
//
// The body is optional: an empty body creates a session with default
// retention. POST /v1/sessions returns 201 with the session's initial
// (ground) state, or 503 when the store is at capacity.
func HandleCreateSession(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.CreateSessionRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				slog.Error("Failed to bind session create request", "error", err)
				recordError(observability.EndpointSessions, observability.ErrorCodeValidation)
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
				return
			}
			if err := req.Validate(); err != nil {
				recordError(observability.EndpointSessions, observability.ErrorCodeValidation)
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}

		sess, err := store.Create(sessionConfig(req))
		if err != nil {
			slog.Error("Failed to create session", "error", err)
			recordError(observability.EndpointSessions, observability.ErrorCodeSessionLimit)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}

		slog.Info("Session created", "session_id", sess.ID, "retention", req.Retention)
		c.JSON(http.StatusCreated, sessionToResponse(sess))
	}
}

// HandleGetSession returns the current state of a session.
func HandleGetSession(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := resolveSession(c, store)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, sessionToResponse(sess))
	}
}

// HandleSessionSteps applies circuit steps to a session's state.
//
// # Description
//
// Unlike the one-shot evolve endpoint, the state persists between
// calls: each request continues where the previous one stopped. On a
// failing step the applied prefix remains in effect server-side and
// the client receives the step error.
func HandleSessionSteps(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, span := sessionTracer.Start(c.Request.Context(), "HandleSessionSteps")
		defer span.End()

		sess, ok := resolveSession(c, store)
		if !ok {
			return
		}
		span.SetAttributes(attribute.String("session.id", sess.ID))

		// 1. Bind and validate
		var req datatypes.EvolveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			slog.Error("Failed to bind session steps request", "session_id", sess.ID, "error", err)
			span.RecordError(err)
			recordError(observability.EndpointSessionSteps, observability.ErrorCodeValidation)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
		req.EnsureDefaults()
		if err := req.Validate(); err != nil {
			span.RecordError(err)
			recordError(observability.EndpointSessionSteps, observability.ErrorCodeValidation)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "request_id": req.RequestID})
			return
		}
		span.SetAttributes(
			attribute.String("request.id", req.RequestID),
			attribute.Int("request.step_count", len(req.Steps)),
		)

		// 2. Resolve steps
		ops, err := parseSteps(req.Steps)
		if err != nil {
			span.RecordError(err)
			status, code := classifyError(err)
			recordError(observability.EndpointSessionSteps, code)
			c.JSON(status, gin.H{"error": err.Error(), "request_id": req.RequestID})
			return
		}

		// 3. Continue the session's state
		start := time.Now()
		observations, runErr := sess.Apply(ops)
		elapsed := time.Since(start)

		recordEvaluation(observability.EndpointSessionSteps, ops, len(observations), elapsed, runErr == nil)

		if runErr != nil {
			slog.Error("Session evaluation aborted",
				"session_id", sess.ID,
				"request_id", req.RequestID,
				"applied_steps", len(observations),
				"error", runErr,
			)
			span.RecordError(runErr)
			status, code := classifyError(runErr)
			recordError(observability.EndpointSessionSteps, code)
			c.JSON(status, gin.H{"error": runErr.Error(), "request_id": req.RequestID})
			return
		}

		c.JSON(http.StatusOK, datatypes.SessionStepsResponse{
			SessionResponse: sessionToResponse(sess),
			Steps:           observations,
		})
	}
}

// HandleResetSession returns a session to the ground state and clears
// its history. The session keeps its identifier.
func HandleResetSession(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := resolveSession(c, store)
		if !ok {
			return
		}

		sess.Reset()

		slog.Info("Session reset", "session_id", sess.ID)
		c.JSON(http.StatusOK, sessionToResponse(sess))
	}
}

// HandleSessionHistory returns the retained per-step snapshots of a
// session, oldest first.
func HandleSessionHistory(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := resolveSession(c, store)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, datatypes.SessionHistoryResponse{
			SessionID: sess.ID,
			StepCount: sess.Steps(),
			Snapshots: sess.History(),
		})
	}
}

// HandleDeleteSession removes a session from the store.
func HandleDeleteSession(store *sessions.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("sessionId")

		if err := store.Delete(id); err != nil {
			if errors.Is(err, sessions.ErrNotFound) {
				recordError(observability.EndpointSessions, observability.ErrorCodeSessionNotFound)
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		slog.Info("Session deleted", "session_id", id)
		c.JSON(http.StatusOK, gin.H{"status": "success", "deleted_session_id": id})
	}
}

// =============================================================================
// Helpers
// =============================================================================

// resolveSession looks up the session named by the path parameter,
// writing the 404 response itself when the lookup fails.
func resolveSession(c *gin.Context, store *sessions.Store) (*sessions.Session, bool) {
	id := c.Param("sessionId")

	sess, err := store.Get(id)
	if err != nil {
		recordError(observability.EndpointSessions, observability.ErrorCodeSessionNotFound)
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return sess, true
}

// sessionConfig maps the wire request onto engine configuration.
// Retention strings are pre-validated, so the parse fallback to
// RetainAll only fires for the empty default.
func sessionConfig(req datatypes.CreateSessionRequest) quantum.Config {
	return quantum.Config{
		Retention:       quantum.ParseRetention(req.Retention),
		HistoryLimit:    req.HistoryLimit,
		VerifyUnitarity: req.VerifyUnitarity,
	}
}

// sessionToResponse snapshots a session for the wire.
func sessionToResponse(sess *sessions.Session) datatypes.SessionResponse {
	return datatypes.SessionResponse{
		SessionID: sess.ID,
		CreatedAt: sess.CreatedAt.UnixMilli(),
		StepCount: sess.Steps(),
		State:     sess.Observe(),
	}
}
