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
	"time"

	"github.com/AleutianAI/BlochSim/services/quantum"
)

// EvolveResponse is the body returned by POST /v1/circuit/evolve and by
// the legacy POST /run_circuit alias.
//
// Steps holds one observation per applied circuit step, in order. The
// field name and the shape of each element are wire-stable: existing
// clients index response["steps"][i]["bloch_vector"] and
// response["steps"][i]["density_matrix"] directly.
type EvolveResponse struct {
	RequestID        string                `json:"request_id"`
	Timestamp        int64                 `json:"timestamp"`
	Steps            []quantum.Observation `json:"steps"`
	ProcessingTimeMs int64                 `json:"processing_time_ms"`
}

// NewEvolveResponse builds a response for a completed evaluation.
func NewEvolveResponse(requestID string, steps []quantum.Observation, elapsed time.Duration) *EvolveResponse {
	return &EvolveResponse{
		RequestID:        requestID,
		Timestamp:        time.Now().UnixMilli(),
		Steps:            steps,
		ProcessingTimeMs: elapsed.Milliseconds(),
	}
}

// OperatorsResponse lists the operator catalog served by
// GET /v1/operators.
type OperatorsResponse struct {
	Gates    []quantum.CatalogEntry `json:"gates"`
	Channels []quantum.CatalogEntry `json:"channels"`
}
