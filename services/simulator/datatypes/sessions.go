// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package datatypes

import (
	"github.com/AleutianAI/BlochSim/services/quantum"
)

// CreateSessionRequest is the optional body of POST /v1/sessions.
//
// All fields default to the engine's defaults when absent, so an empty
// body (or no body at all) creates a session with full history
// retention. Retention accepts "all", "none" or "bounded"; HistoryLimit
// only applies to bounded retention and falls back to the engine
// default when zero.
type CreateSessionRequest struct {
	Retention       string `json:"retention,omitempty" validate:"omitempty,oneof=all none bounded"`
	HistoryLimit    int    `json:"history_limit,omitempty" validate:"omitempty,gt=0,lte=4096"`
	VerifyUnitarity bool   `json:"verify_unitarity,omitempty"`
}

// Validate validates the request fields.
func (r *CreateSessionRequest) Validate() error {
	return stepValidate.Struct(r)
}

// SessionResponse describes one session. It is returned by session
// creation, lookup, step application, and reset.
type SessionResponse struct {
	SessionID string              `json:"session_id"`
	CreatedAt int64               `json:"created_at"`
	StepCount int                 `json:"step_count"`
	State     quantum.Observation `json:"state"`
}

// SessionStepsResponse extends SessionResponse with the per-step
// observations produced by POST /v1/sessions/:id/steps.
type SessionStepsResponse struct {
	SessionResponse
	Steps []quantum.Observation `json:"steps"`
}

// SessionHistoryResponse is the body of GET /v1/sessions/:id/history.
// Snapshots holds one observation per retained density matrix, oldest
// first, honoring the session's retention policy.
type SessionHistoryResponse struct {
	SessionID string                `json:"session_id"`
	StepCount int                   `json:"step_count"`
	Snapshots []quantum.Observation `json:"snapshots"`
}
