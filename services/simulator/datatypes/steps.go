// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes provides request and response structures for the
// simulator service.
//
// This file contains the circuit step types shared by the one-shot
// evolve endpoint and the session step endpoint. For response types,
// see responses.go.
package datatypes

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// =============================================================================
// Limits
// =============================================================================

const (
	// MaxStepsPerRequest caps the circuit length of a single request.
	// Each step is a constant-cost 2x2 operation, so the cap bounds
	// both compute and the response payload size.
	MaxStepsPerRequest = 1024

	// MaxParamsPerStep caps the parameter map of a single step. The
	// catalog reads at most one parameter per operator; the slack
	// allows clients to send extras without failing validation.
	MaxParamsPerStep = 8
)

// =============================================================================
// Shared Validator Instance
// =============================================================================

// stepValidate is the validator instance for circuit datatypes.
var stepValidate *validator.Validate

func init() {
	stepValidate = validator.New()
}

// =============================================================================
// Circuit Request Types
// =============================================================================

// StepRequest is one step of a circuit as supplied by a client.
//
// # Description
//
// A step names exactly one operator: Kind selects the family ("gate" or
// "noise"), Name identifies the operator within it, and Params carries
// the optional named numeric parameters ("theta", "gamma", "lambda",
// "p"). Missing parameters fall back to the engine's documented
// defaults; unknown parameter keys are ignored.
//
// # Validation
//
//   - Kind: required, one of "gate"/"noise"
//   - Name: required, at most 64 bytes
//   - Params: at most 8 entries
//
// Operator names are NOT validated here: resolution against the catalog
// happens in the engine, so an unknown name surfaces as a 400 with the
// engine's error rather than a validation failure.
type StepRequest struct {
	Kind   string             `json:"kind" validate:"required,oneof=gate noise"`
	Name   string             `json:"name" validate:"required,max=64"`
	Params map[string]float64 `json:"params,omitempty" validate:"omitempty,max=8"`
}

// EvolveRequest is the body of POST /v1/circuit/evolve and of
// POST /v1/sessions/:id/steps.
//
// # Description
//
// An ordered list of steps to apply. For the one-shot endpoint the
// service constructs a fresh ground-state instance per request; for the
// session endpoint the steps continue the session's current state.
// Every request carries a UUID and a millisecond timestamp for tracing;
// both are stamped server-side by EnsureDefaults when absent, so legacy
// clients posting a bare {"steps": [...]} body remain valid.
//
// # Validation
//
//   - RequestID: required (after EnsureDefaults), UUID v4
//   - Timestamp: required, > 0
//   - Steps: required, 1 to 1024 elements, each element validated
type EvolveRequest struct {
	RequestID string        `json:"request_id" validate:"required,uuid4"`
	Timestamp int64         `json:"timestamp" validate:"required,gt=0"`
	Steps     []StepRequest `json:"steps" validate:"required,min=1,max=1024,dive"`
}

// Validate validates the request fields. Call after EnsureDefaults.
func (r *EvolveRequest) Validate() error {
	return stepValidate.Struct(r)
}

// EnsureDefaults stamps RequestID and Timestamp when the client did not
// provide them.
func (r *EvolveRequest) EnsureDefaults() {
	if r.RequestID == "" {
		r.RequestID = uuid.New().String()
	}
	if r.Timestamp == 0 {
		r.Timestamp = time.Now().UnixMilli()
	}
}
