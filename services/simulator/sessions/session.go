// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package sessions

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/AleutianAI/BlochSim/services/quantum"
)

// Session binds one quantum state to an identifier and serializes all
// access to it.
//
// # Description
//
// The engine's State is not safe for concurrent use, so the session is
// the concurrency unit: every operation takes the session mutex,
// giving clients sequential consistency for interleaved requests
// against the same session. Operations on different sessions never
// contend.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
type Session struct {
	// ID is the immutable session identifier (UUID).
	ID string

	// CreatedAt is the immutable creation time.
	CreatedAt time.Time

	mu       sync.Mutex
	state    *quantum.State
	lastUsed atomic.Int64
}

// newSession wraps a fresh ground-state instance.
func newSession(id string, cfg quantum.Config) *Session {
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		state:     quantum.NewState(cfg),
	}
	s.touch()
	return s
}

// touch records the session as recently used.
func (s *Session) touch() {
	s.lastUsed.Store(time.Now().UnixNano())
}

// lastTouched returns the time of the most recent operation.
func (s *Session) lastTouched() time.Time {
	return time.Unix(0, s.lastUsed.Load())
}

// Apply evolves the session state through ops in order.
//
// On error the already-applied prefix remains in effect and its
// observations are returned alongside the error, matching the engine's
// abort semantics.
func (s *Session) Apply(ops []quantum.Operation) ([]quantum.Observation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	return quantum.Run(s.state, ops)
}

// Reset returns the session state to the ground state and clears its
// history. The session identifier and creation time are unchanged.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	s.state.Reset()
}

// Observe returns the current state as a wire observation.
func (s *Session) Observe() quantum.Observation {
	s.mu.Lock()
	defer s.mu.Unlock()

	return quantum.Observe(s.state.Density())
}

// Steps returns the number of operations applied since the last reset.
func (s *Session) Steps() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Steps()
}

// History returns one observation per retained snapshot, oldest first.
// The slice length honors the session's retention policy.
func (s *Session) History() []quantum.Observation {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshots := s.state.History()
	out := make([]quantum.Observation, len(snapshots))
	for i, rho := range snapshots {
		out[i] = quantum.Observe(rho)
	}
	return out
}
