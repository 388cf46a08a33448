// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package ux

import (
	"os"
	"testing"
)

// =============================================================================
// GetMode / SetMode Tests
// =============================================================================

func TestSetMode_AndGet(t *testing.T) {
	orig := GetMode()
	defer SetMode(orig)

	SetMode(ModeMachine)

	if GetMode() != ModeMachine {
		t.Errorf("expected ModeMachine, got %v", GetMode())
	}
}

// =============================================================================
// ParseMode Tests
// =============================================================================

func TestParseMode_Rich(t *testing.T) {
	inputs := []string{"rich", "Rich", "RICH", "r", "full"}
	for _, input := range inputs {
		result := ParseMode(input)
		if result != ModeRich {
			t.Errorf("ParseMode(%q) = %v, want ModeRich", input, result)
		}
	}
}

func TestParseMode_Plain(t *testing.T) {
	inputs := []string{"plain", "Plain", "p", "nocolor"}
	for _, input := range inputs {
		result := ParseMode(input)
		if result != ModePlain {
			t.Errorf("ParseMode(%q) = %v, want ModePlain", input, result)
		}
	}
}

func TestParseMode_Machine(t *testing.T) {
	inputs := []string{"machine", "m", "quiet", "q"}
	for _, input := range inputs {
		result := ParseMode(input)
		if result != ModeMachine {
			t.Errorf("ParseMode(%q) = %v, want ModeMachine", input, result)
		}
	}
}

func TestParseMode_UnknownDefaultsToRich(t *testing.T) {
	if ParseMode("disco") != ModeRich {
		t.Errorf("expected unknown mode to default to ModeRich")
	}
}

// =============================================================================
// InitMode Tests
// =============================================================================

func TestInitMode_EnvOverride(t *testing.T) {
	orig := GetMode()
	defer SetMode(orig)

	os.Setenv("BLOCH_OUTPUT", "machine")
	defer os.Unsetenv("BLOCH_OUTPUT")

	InitMode(false)

	if GetMode() != ModeMachine {
		t.Errorf("expected env var to force ModeMachine, got %v", GetMode())
	}
}

func TestInitMode_NoColorForcesPlain(t *testing.T) {
	orig := GetMode()
	defer SetMode(orig)

	os.Unsetenv("BLOCH_OUTPUT")

	InitMode(true)

	if GetMode() != ModePlain {
		t.Errorf("expected noColor to force ModePlain, got %v", GetMode())
	}
}

// =============================================================================
// Helper Tests
// =============================================================================

func TestShouldColor_OnlyInRichMode(t *testing.T) {
	orig := GetMode()
	defer SetMode(orig)

	SetMode(ModeRich)
	if !ShouldColor() {
		t.Error("expected ShouldColor true in rich mode")
	}

	SetMode(ModePlain)
	if ShouldColor() {
		t.Error("expected ShouldColor false in plain mode")
	}

	SetMode(ModeMachine)
	if ShouldColor() {
		t.Error("expected ShouldColor false in machine mode")
	}
}

func TestShouldShowProgress_NotInMachineMode(t *testing.T) {
	orig := GetMode()
	defer SetMode(orig)

	SetMode(ModePlain)
	if !ShouldShowProgress() {
		t.Error("expected progress indicators in plain mode")
	}

	SetMode(ModeMachine)
	if ShouldShowProgress() {
		t.Error("expected no progress indicators in machine mode")
	}
}
