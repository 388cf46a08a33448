// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package quantum implements a single-qubit evolution engine in the 2x2
// density-matrix formalism: an operator catalog (unitary gates and Kraus
// noise channels), a mutable state with evolution history, and the
// observation primitives (Bloch vector, serialized matrix) the
// surrounding service reports after each step.
package quantum

// Tolerance is the numerical tolerance used by the engine's approximate
// comparisons (unitarity checking, test assertions).
const Tolerance = 1e-9

// RetentionPolicy controls how evolution history is kept on a State.
type RetentionPolicy int

const (
	// RetainAll keeps every post-step snapshot. Memory grows linearly
	// with step count; acceptable for interactive circuits, callers
	// running very long circuits should pick a bounded policy.
	RetainAll RetentionPolicy = iota
	// RetainNone keeps no history.
	RetainNone
	// RetainBounded keeps only the most recent HistoryLimit snapshots.
	RetainBounded
)

// String returns the policy name used in configuration.
func (p RetentionPolicy) String() string {
	switch p {
	case RetainNone:
		return "none"
	case RetainBounded:
		return "bounded"
	}
	return "all"
}

// ParseRetention maps a configuration string to a RetentionPolicy.
// Unrecognized values fall back to RetainAll.
func ParseRetention(s string) RetentionPolicy {
	switch s {
	case "none":
		return RetainNone
	case "bounded":
		return RetainBounded
	}
	return RetainAll
}

// DefaultHistoryLimit is the ring size for RetainBounded when the
// configuration does not set one.
const DefaultHistoryLimit = 64

// Config tunes a State instance.
type Config struct {
	// Retention selects the history policy. Zero value is RetainAll,
	// matching the engine's original always-on history.
	Retention RetentionPolicy
	// HistoryLimit is the number of snapshots kept under RetainBounded.
	HistoryLimit int
	// VerifyUnitarity makes ApplyGate reject matrices whose U·U†
	// deviates from the identity beyond Tolerance. Off by default;
	// catalog-produced gates always pass, the check exists to catch
	// hand-built matrices in debugging setups.
	VerifyUnitarity bool
}

func applyStateDefaults(cfg *Config) {
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = DefaultHistoryLimit
	}
}

// State holds one qubit's density matrix and its evolution history.
//
// A State belongs to exactly one logical session or evaluation. It has
// no internal locking and is not safe for concurrent mutation; a server
// handling concurrent requests must construct one State per request or
// serialize access itself.
type State struct {
	rho     Matrix
	history []Matrix
	steps   int
	config  Config
}

// Ground returns the |0><0| ground-state density matrix.
func Ground() Matrix {
	return Matrix{{1, 0}, {0, 0}}
}

// NewState constructs a State at the ground state.
func NewState(cfg Config) *State {
	applyStateDefaults(&cfg)
	return &State{rho: Ground(), config: cfg}
}

// ApplyGate conjugates the state by a unitary: rho -> U·rho·U†.
//
// Unitarity of U is the caller's responsibility unless VerifyUnitarity
// is set, in which case a non-unitary matrix is rejected with
// *NonUnitaryError and the state is left untouched.
func (s *State) ApplyGate(u Matrix) error {
	if s.config.VerifyUnitarity {
		if dev := maxDeviation(u.Mul(u.Dagger()), Identity()); dev > Tolerance {
			return &NonUnitaryError{Deviation: dev}
		}
	}
	s.rho = u.Mul(s.rho).Mul(u.Dagger())
	s.record()
	return nil
}

// ApplyKraus applies a noise channel: rho -> sum K·rho·K†.
//
// The operator set must be non-empty; CPTP validity (sum K†·K = I) is
// the catalog's responsibility and is not re-verified here.
func (s *State) ApplyKraus(ops []Matrix) error {
	if len(ops) == 0 {
		return ErrEmptyKrausSet
	}
	var next Matrix
	for _, k := range ops {
		next = next.Add(k.Mul(s.rho).Mul(k.Dagger()))
	}
	s.rho = next
	s.record()
	return nil
}

// record appends a post-step snapshot according to the retention policy
// and advances the step counter. Matrix is a value type, so the appended
// entry is already an independent copy.
func (s *State) record() {
	s.steps++
	switch s.config.Retention {
	case RetainNone:
	case RetainBounded:
		if len(s.history) == s.config.HistoryLimit {
			copy(s.history, s.history[1:])
			s.history[len(s.history)-1] = s.rho
		} else {
			s.history = append(s.history, s.rho)
		}
	default:
		s.history = append(s.history, s.rho)
	}
}

// Reset restores the ground state and clears both the history and the
// step counter. A reset session is indistinguishable from a fresh one.
func (s *State) Reset() {
	s.rho = Ground()
	s.history = nil
	s.steps = 0
}

// Density returns the current density matrix.
func (s *State) Density() Matrix {
	return s.rho
}

// History returns a copy of the retained snapshots, oldest first.
func (s *State) History() []Matrix {
	out := make([]Matrix, len(s.history))
	copy(out, s.history)
	return out
}

// Steps returns the number of operations applied since construction or
// the last Reset.
func (s *State) Steps() int {
	return s.steps
}
