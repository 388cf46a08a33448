// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"os"
	"strings"
	"sync"
)

// OutputMode defines the richness of CLI output
type OutputMode string

const (
	// ModeRich enables colors, icons, and styled tables
	ModeRich OutputMode = "rich"

	// ModePlain uses icons and basic formatting without colors
	ModePlain OutputMode = "plain"

	// ModeMachine outputs plain text suitable for scripting and parsing
	ModeMachine OutputMode = "machine"
)

var (
	currentMode = ModeRich
	modeMu      sync.RWMutex
)

// GetMode returns the current output mode
func GetMode() OutputMode {
	modeMu.RLock()
	defer modeMu.RUnlock()
	return currentMode
}

// SetMode updates the current output mode
func SetMode(mode OutputMode) {
	modeMu.Lock()
	defer modeMu.Unlock()
	currentMode = mode
}

// ParseMode converts a string to OutputMode
func ParseMode(s string) OutputMode {
	switch strings.ToLower(s) {
	case "rich", "r", "full":
		return ModeRich
	case "plain", "p", "nocolor":
		return ModePlain
	case "machine", "m", "quiet", "q":
		return ModeMachine
	default:
		return ModeRich
	}
}

// InitMode initializes the output mode from environment and terminal state.
//
// Precedence: BLOCH_OUTPUT env var, then noColor, then TTY detection.
// Non-interactive contexts (piped output, CI) fall back to plain.
func InitMode(noColor bool) {
	if envMode := os.Getenv("BLOCH_OUTPUT"); envMode != "" {
		SetMode(ParseMode(envMode))
		return
	}

	if noColor || !isTerminal() {
		SetMode(ModePlain)
		return
	}

	SetMode(ModeRich)
}

// isTerminal checks if stdout is a terminal
func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldColor returns true if styled output should be used
func ShouldColor() bool {
	return GetMode() == ModeRich
}

// ShouldShowProgress returns true if spinners and progress bars should render
func ShouldShowProgress() bool {
	return GetMode() != ModeMachine
}
