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
	"os"
	"time"

	"github.com/AleutianAI/BlochSim/services/quantum"
)

// Exit codes for CLI commands.
const (
	CLIExitSuccess    = 0 // Operation completed successfully
	CLIExitEvalFailed = 1 // Circuit was rejected by the engine
	CLIExitError      = 2 // Operation failed (I/O, config, usage)
)

// OutputConfig controls output behavior.
type OutputConfig struct {
	JSON    bool // Output as JSON
	Compact bool // No indentation
	Quiet   bool // No output, exit code only
}

// CommandResult wraps command output with metadata.
type CommandResult struct {
	APIVersion string      `json:"api_version"`
	Command    string      `json:"command"`
	Timestamp  time.Time   `json:"timestamp"`
	DurationMs int64       `json:"duration_ms"`
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// OutputJSON writes structured data as JSON to stdout.
func OutputJSON(data interface{}, compact bool) error {
	encoder := json.NewEncoder(os.Stdout)
	if !compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// OutputError writes an error in the appropriate format.
func OutputError(jsonMode bool, msg string, err error) {
	if jsonMode {
		result := CommandResult{
			APIVersion: "1.0",
			Timestamp:  time.Now(),
			Success:    false,
			Error:      fmt.Sprintf("%s: %v", msg, err),
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		encoder.Encode(result)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	}
}

// OutputResult handles the JSON and quiet output scenarios and maps the
// error to an exit code. Table rendering stays with the caller.
//
// Returns the exit code to use.
func OutputResult(cfg OutputConfig, cmd string, start time.Time, data interface{}, err error) int {
	if cfg.Quiet {
		return classifyExit(err)
	}

	if err != nil {
		OutputError(cfg.JSON, "Command failed", err)
		return classifyExit(err)
	}

	if cfg.JSON {
		result := CommandResult{
			APIVersion: "1.0",
			Command:    cmd,
			Timestamp:  time.Now(),
			DurationMs: time.Since(start).Milliseconds(),
			Success:    true,
			Data:       data,
		}
		if encErr := OutputJSON(result, cfg.Compact); encErr != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode JSON: %v\n", encErr)
			return CLIExitError
		}
	}

	return CLIExitSuccess
}

// classifyExit maps an error to an exit code.
//
// Engine rejections (unknown operator, malformed step, unitarity
// violation) are evaluation failures; everything else is an
// operational error. Same split the HTTP handlers use for 4xx vs 5xx.
func classifyExit(err error) int {
	if err == nil {
		return CLIExitSuccess
	}

	var unknownOp *quantum.UnknownOperatorError
	var malformed *quantum.MalformedStepError
	var nonUnitary *quantum.NonUnitaryError
	switch {
	case errors.As(err, &unknownOp),
		errors.As(err, &malformed),
		errors.As(err, &nonUnitary),
		errors.Is(err, quantum.ErrEmptyKrausSet):
		return CLIExitEvalFailed
	default:
		return CLIExitError
	}
}

// outputConfig assembles the effective output settings from flags and
// the config file. The --json flag and `format: json` are equivalent.
func outputConfig() OutputConfig {
	return OutputConfig{
		JSON:    jsonOutput || config.Format == "json",
		Compact: compactJSON,
		Quiet:   quietOutput,
	}
}
