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
	"fmt"
	"os"
	"time"

	"github.com/AleutianAI/BlochSim/pkg/ux"
	"github.com/AleutianAI/BlochSim/services/quantum"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// BatchEntry records the outcome of one circuit file in a batch run.
type BatchEntry struct {
	File       string               `json:"file"`
	Name       string               `json:"name,omitempty"`
	Steps      int                  `json:"steps"`
	Final      *quantum.Observation `json:"final,omitempty"`
	DurationMs int64                `json:"duration_ms"`
	Error      string               `json:"error,omitempty"`
}

// BatchResult aggregates every entry of a batch run.
type BatchResult struct {
	Entries []BatchEntry `json:"entries"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
}

// evaluateBatchEntry runs one circuit file on a fresh state. Failures
// land in the entry, never in an error return, so one bad circuit
// cannot stop the rest of the batch.
func evaluateBatchEntry(file string, cfg quantum.Config) BatchEntry {
	start := time.Now()
	entry := BatchEntry{File: file}

	circuit, err := LoadCircuit(file)
	if err != nil {
		entry.Error = err.Error()
		entry.DurationMs = time.Since(start).Milliseconds()
		return entry
	}

	entry.Name = circuit.Name
	result, err := EvaluateCircuit(circuit, cfg)
	if err != nil {
		entry.Error = err.Error()
		entry.DurationMs = time.Since(start).Milliseconds()
		return entry
	}

	final := result.Final()
	entry.Steps = len(result.Steps)
	entry.Final = &final
	entry.DurationMs = time.Since(start).Milliseconds()
	return entry
}

// runBatchCommand evaluates several circuit files concurrently with a
// bounded worker pool and prints a pass/fail summary.
//
// # Exit Codes
//
//   - 0: Every circuit evaluated cleanly
//   - 1: At least one circuit failed
func runBatchCommand(cmd *cobra.Command, args []string) {
	start := time.Now()
	out := outputConfig()
	cfg := engineConfig()

	entries := make([]BatchEntry, len(args))

	var progress *ux.ProgressSpinner
	if !out.JSON && !out.Quiet && ux.ShouldShowProgress() {
		progress = ux.NewProgressSpinner("evaluating circuits", len(args))
		progress.Start()
	}

	var g errgroup.Group
	g.SetLimit(batchLimit)
	for i, file := range args {
		i, file := i, file // Capture loop variables
		g.Go(func() error {
			entries[i] = evaluateBatchEntry(file, cfg)
			if progress != nil {
				progress.Increment()
			}
			return nil // Circuit failures stay in the entry, not the group
		})
	}
	_ = g.Wait()

	result := BatchResult{Entries: entries}
	for _, entry := range entries {
		if entry.Error == "" {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if progress != nil {
		if result.Failed == 0 {
			progress.StopWithSuccess(fmt.Sprintf("%d circuits evaluated", len(entries)))
		} else {
			progress.StopWithError(fmt.Sprintf("%d of %d circuits failed", result.Failed, len(entries)))
		}
	}

	if out.JSON || out.Quiet {
		code := OutputResult(out, "batch", start, result, nil)
		if code == CLIExitSuccess && result.Failed > 0 {
			code = CLIExitEvalFailed
		}
		os.Exit(code)
	}

	fmt.Print(formatBatchResult(result))
	if result.Failed > 0 {
		os.Exit(CLIExitEvalFailed)
	}
	os.Exit(CLIExitSuccess)
}
