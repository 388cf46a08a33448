// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/AleutianAI/BlochSim/services/quantum"
)

// TestCommandResultJSON tests that CommandResult serializes correctly.
func TestCommandResultJSON(t *testing.T) {
	result := CommandResult{
		APIVersion: "1.0",
		Command:    "run",
		Timestamp:  time.Now(),
		DurationMs: 12,
		Success:    true,
		Data:       map[string]string{"key": "value"},
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("Failed to marshal CommandResult: %v", err)
	}

	var decoded CommandResult
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal CommandResult: %v", err)
	}

	if decoded.APIVersion != result.APIVersion {
		t.Errorf("APIVersion = %s, want %s", decoded.APIVersion, result.APIVersion)
	}
	if decoded.Command != result.Command {
		t.Errorf("Command = %s, want %s", decoded.Command, result.Command)
	}
	if decoded.Success != result.Success {
		t.Errorf("Success = %v, want %v", decoded.Success, result.Success)
	}
}

// TestExitCodeConstants tests exit code constant values.
func TestExitCodeConstants(t *testing.T) {
	if CLIExitSuccess != 0 {
		t.Errorf("CLIExitSuccess = %d, want 0", CLIExitSuccess)
	}
	if CLIExitEvalFailed != 1 {
		t.Errorf("CLIExitEvalFailed = %d, want 1", CLIExitEvalFailed)
	}
	if CLIExitError != 2 {
		t.Errorf("CLIExitError = %d, want 2", CLIExitError)
	}
}

// TestClassifyExit tests the error to exit code mapping.
func TestClassifyExit(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "nil error",
			err:  nil,
			want: CLIExitSuccess,
		},
		{
			name: "unknown operator",
			err:  &quantum.UnknownOperatorError{Name: "warp", Kind: quantum.KindGate},
			want: CLIExitEvalFailed,
		},
		{
			name: "wrapped malformed step",
			err:  fmt.Errorf("step 2: %w", &quantum.MalformedStepError{Reason: "bad kind"}),
			want: CLIExitEvalFailed,
		},
		{
			name: "non-unitary gate",
			err:  &quantum.NonUnitaryError{Deviation: 0.5},
			want: CLIExitEvalFailed,
		},
		{
			name: "empty kraus set",
			err:  fmt.Errorf("step 0 (noise x): %w", quantum.ErrEmptyKrausSet),
			want: CLIExitEvalFailed,
		},
		{
			name: "operational error",
			err:  errors.New("read circuit missing.yaml: no such file"),
			want: CLIExitError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyExit(tt.err); got != tt.want {
				t.Errorf("classifyExit = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestOutputResult_QuietSuccess tests OutputResult with no error.
func TestOutputResult_QuietSuccess(t *testing.T) {
	cfg := OutputConfig{Quiet: true}

	exitCode := OutputResult(cfg, "run", time.Now(), map[string]string{"k": "v"}, nil)

	if exitCode != CLIExitSuccess {
		t.Errorf("Exit code = %d, want %d", exitCode, CLIExitSuccess)
	}
}

// TestOutputResult_QuietEngineError tests OutputResult with an engine rejection.
func TestOutputResult_QuietEngineError(t *testing.T) {
	cfg := OutputConfig{Quiet: true}
	err := &quantum.UnknownOperatorError{Name: "warp", Kind: quantum.KindNoise}

	exitCode := OutputResult(cfg, "run", time.Now(), nil, err)

	if exitCode != CLIExitEvalFailed {
		t.Errorf("Exit code = %d, want %d", exitCode, CLIExitEvalFailed)
	}
}

// TestOutputResult_QuietOperationalError tests OutputResult with a plain error.
func TestOutputResult_QuietOperationalError(t *testing.T) {
	cfg := OutputConfig{Quiet: true}

	exitCode := OutputResult(cfg, "run", time.Now(), nil, errors.New("boom"))

	if exitCode != CLIExitError {
		t.Errorf("Exit code = %d, want %d", exitCode, CLIExitError)
	}
}
