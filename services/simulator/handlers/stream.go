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
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/AleutianAI/BlochSim/services/quantum"
	"github.com/AleutianAI/BlochSim/services/simulator/datatypes"
	"github.com/AleutianAI/BlochSim/services/simulator/observability"
)

// WSRequest routes websocket messages by action.
type WSRequest struct {
	Action string                  `json:"action"` // "evolve", "reset", "observe"
	Steps  []datatypes.StepRequest `json:"steps,omitempty"`
}

// WSResponse is the reply for every websocket action.
type WSResponse struct {
	Type  string                `json:"type"`
	State *quantum.Observation  `json:"state,omitempty"`
	Steps []quantum.Observation `json:"steps,omitempty"`
	Error string                `json:"error,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  64 * 1024,
	WriteBufferSize: 64 * 1024,
}

func sendJSON(ws *websocket.Conn, v interface{}) error {
	err := ws.WriteJSON(v)
	if err != nil {
		slog.Warn("Failed to write WebSocket JSON", "error", err)
	}
	return err
}

// HandleStream drives a state interactively over a websocket.
//
// Each connection owns one state: "evolve" messages continue it,
// "reset" returns it to ground, "observe" reports it without change.
// The connection state is independent of the REST session store and
// dies with the socket.
func HandleStream() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			slog.Error("failed to upgrade the websocket", "error", err)
			return
		}
		defer ws.Close()

		if m := observability.DefaultMetrics; m != nil {
			m.StreamOpened()
			defer m.StreamClosed()
		}

		// --- WebSocket Connection State ---
		streamID := uuid.New().String()
		st := quantum.NewState(quantum.Config{})
		slog.Info("Websocket client connected", "stream_id", streamID)

		// --- Send stream ID and initial state immediately on connect ---
		initial := quantum.Observe(st.Density())
		if err := sendJSON(ws, map[string]interface{}{
			"action":    "stream_connected",
			"stream_id": streamID,
			"state":     initial,
		}); err != nil {
			return // Close if we can't even send the first message
		}

		for {
			var req WSRequest
			if err := ws.ReadJSON(&req); err != nil {
				slog.Info("Websocket client disconnected", "stream_id", streamID, "error", err.Error())
				break
			}

			switch req.Action {
			case "evolve":
				handleStreamEvolve(ws, st, req.Steps)

			case "reset":
				st.Reset()
				state := quantum.Observe(st.Density())
				if err := sendJSON(ws, WSResponse{Type: "reset", State: &state}); err != nil {
					return
				}

			case "observe":
				state := quantum.Observe(st.Density())
				if err := sendJSON(ws, WSResponse{Type: "state", State: &state}); err != nil {
					return
				}

			default:
				slog.Warn("Unknown websocket action", "stream_id", streamID, "action", req.Action)
				if err := sendJSON(ws, WSResponse{Type: "error", Error: "unknown action: " + req.Action}); err != nil {
					return
				}
			}
		}
	}
}

// handleStreamEvolve applies steps to the connection's state and
// reports the per-step observations. On a failing step the applied
// prefix is reported with the error and remains in effect.
func handleStreamEvolve(ws *websocket.Conn, st *quantum.State, steps []datatypes.StepRequest) {
	if len(steps) == 0 {
		_ = sendJSON(ws, WSResponse{Type: "error", Error: "evolve requires at least one step"})
		return
	}
	if len(steps) > datatypes.MaxStepsPerRequest {
		recordError(observability.EndpointStream, observability.ErrorCodeValidation)
		_ = sendJSON(ws, WSResponse{Type: "error", Error: "too many steps in one message"})
		return
	}

	ops, err := parseSteps(steps)
	if err != nil {
		_, code := classifyError(err)
		recordError(observability.EndpointStream, code)
		_ = sendJSON(ws, WSResponse{Type: "error", Error: err.Error()})
		return
	}

	start := time.Now()
	observations, runErr := quantum.Run(st, ops)
	elapsed := time.Since(start)

	recordEvaluation(observability.EndpointStream, ops, len(observations), elapsed, runErr == nil)

	if runErr != nil {
		_, code := classifyError(runErr)
		recordError(observability.EndpointStream, code)
		_ = sendJSON(ws, WSResponse{Type: "error", Error: runErr.Error(), Steps: observations})
		return
	}

	_ = sendJSON(ws, WSResponse{Type: "steps", Steps: observations})
}
