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
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AleutianAI/BlochSim/services/quantum"
)

// ===== Batch Entry Tests =====

func TestEvaluateBatchEntry_Success(t *testing.T) {
	path := writeCircuitFile(t, validCircuitYAML)

	entry := evaluateBatchEntry(path, quantum.Config{})

	if entry.Error != "" {
		t.Fatalf("Entry.Error = %q, want empty", entry.Error)
	}
	if entry.Name != "damped superposition" {
		t.Errorf("Name = %q, want damped superposition", entry.Name)
	}
	if entry.Steps != 2 {
		t.Errorf("Steps = %d, want 2", entry.Steps)
	}
	if entry.Final == nil {
		t.Fatal("Final = nil, want observation")
	}
	// H then partial damping leaves a positive x component
	if entry.Final.Bloch.X <= 0 {
		t.Errorf("Final x = %v, want positive", entry.Final.Bloch.X)
	}
}

func TestEvaluateBatchEntry_MissingFile(t *testing.T) {
	entry := evaluateBatchEntry(filepath.Join(t.TempDir(), "absent.yaml"), quantum.Config{})

	if entry.Error == "" {
		t.Fatal("Entry.Error empty, want read failure")
	}
	if !strings.Contains(entry.Error, "read circuit") {
		t.Errorf("Entry.Error = %q, want read circuit prefix", entry.Error)
	}
	if entry.Final != nil {
		t.Error("Final set on failed entry")
	}
}

func TestEvaluateBatchEntry_BadStep(t *testing.T) {
	path := writeCircuitFile(t, "steps:\n  - kind: gate\n    name: warp\n")

	entry := evaluateBatchEntry(path, quantum.Config{})

	if !strings.Contains(entry.Error, "unknown gate operator") {
		t.Errorf("Entry.Error = %q, want unknown operator", entry.Error)
	}
}

func TestEvaluateBatchEntry_IsolatedStates(t *testing.T) {
	path := writeCircuitFile(t, "steps:\n  - kind: gate\n    name: x\n")
	cfg := quantum.Config{}

	first := evaluateBatchEntry(path, cfg)
	second := evaluateBatchEntry(path, cfg)

	if first.Error != "" || second.Error != "" {
		t.Fatalf("Unexpected errors: %q, %q", first.Error, second.Error)
	}
	// Both start from ground, so both end flipped
	if math.Abs(first.Final.Bloch.Z+1) > 1e-9 || math.Abs(second.Final.Bloch.Z+1) > 1e-9 {
		t.Errorf("Entries shared state: z = %v, %v", first.Final.Bloch.Z, second.Final.Bloch.Z)
	}
}
