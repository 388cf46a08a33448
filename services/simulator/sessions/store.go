// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package sessions provides the in-memory session registry for the
// simulator service.
//
// # Description
//
// A session holds one evolving quantum state between requests. The
// store keys sessions by UUID, caps the number held at once, and
// expires idle sessions with a background sweeper using the ticker +
// done channel pattern.
//
// # Lifecycle
//
//	store := sessions.NewStore(sessions.DefaultConfig())
//	if err := store.Start(ctx); err != nil { ... }
//	defer store.Stop()
//
// Eviction only removes a session from the registry. A handler that
// resolved the session before eviction finishes its request against
// the detached state.
package sessions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/AleutianAI/BlochSim/services/quantum"
	"github.com/AleutianAI/BlochSim/services/simulator/observability"
)

// =============================================================================
// Errors
// =============================================================================

// ErrNotFound is returned when a session ID resolves to nothing,
// either because it never existed or because the sweeper expired it.
var ErrNotFound = errors.New("session not found")

// ErrLimitExceeded is returned when the store is at capacity.
var ErrLimitExceeded = errors.New("session limit exceeded")

// =============================================================================
// Configuration
// =============================================================================

// Config holds configuration for the session store.
//
// # Fields
//
//   - Capacity: Maximum sessions held at once. Default: 256.
//   - TTL: Idle time after which a session expires. Default: 30 minutes.
//   - SweepInterval: How often the sweeper runs. Default: 1 minute.
type Config struct {
	Capacity      int
	TTL           time.Duration
	SweepInterval time.Duration
}

// DefaultConfig returns production-ready store defaults.
func DefaultConfig() Config {
	return Config{
		Capacity:      256,
		TTL:           30 * time.Minute,
		SweepInterval: 1 * time.Minute,
	}
}

// =============================================================================
// Store
// =============================================================================

// Store is the UUID-keyed session registry.
//
// # Thread Safety
//
// All public methods are thread-safe. The registry lock is held only
// for map operations; state evolution locks the individual session.
type Store struct {
	config Config

	mu       sync.RWMutex
	sessions map[string]*Session

	runMu   sync.Mutex
	running bool
	done    chan struct{}
}

// NewStore creates a session store. Zero config fields fall back to
// DefaultConfig values.
func NewStore(cfg Config) *Store {
	defaults := DefaultConfig()
	if cfg.Capacity <= 0 {
		cfg.Capacity = defaults.Capacity
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaults.TTL
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = defaults.SweepInterval
	}

	return &Store{
		config:   cfg,
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}
}

// Create registers a new session around a fresh ground-state instance.
//
// # Inputs
//
//   - cfg: Engine configuration for the session's state (retention
//     policy, history limit, unitarity checking).
//
// # Outputs
//
//   - *Session: The registered session.
//   - error: ErrLimitExceeded when the store is at capacity.
func (s *Store) Create(cfg quantum.Config) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.config.Capacity {
		return nil, fmt.Errorf("%w: %d sessions held", ErrLimitExceeded, len(s.sessions))
	}

	sess := newSession(uuid.New().String(), cfg)
	s.sessions[sess.ID] = sess

	if m := observability.DefaultMetrics; m != nil {
		m.SessionOpened()
	}

	return sess, nil
}

// Get resolves a session by ID.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, nil
}

// Delete removes a session from the registry.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.sessions, id)

	if m := observability.DefaultMetrics; m != nil {
		m.SessionClosed(false)
	}

	return nil
}

// Len returns the number of sessions currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// =============================================================================
// Sweeper
// =============================================================================

// Start begins the background expiry sweeper.
//
// # Description
//
// Starts a goroutine that evicts idle sessions at the configured
// interval. The sweeper runs until Stop() is called or the context is
// cancelled.
//
// # Outputs
//
//   - error: Non-nil if the sweeper is already running.
func (s *Store) Start(ctx context.Context) error {
	s.runMu.Lock()
	if s.running {
		s.runMu.Unlock()
		return fmt.Errorf("session sweeper is already running")
	}
	s.running = true
	s.done = make(chan struct{}) // Reset done channel for potential restart
	s.runMu.Unlock()

	slog.Info("session sweeper starting",
		"ttl", s.config.TTL.String(),
		"interval", s.config.SweepInterval.String(),
		"capacity", s.config.Capacity,
	)

	go s.runLoop(ctx)
	return nil
}

// Stop signals the sweeper to stop. Safe to call multiple times.
func (s *Store) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	if !s.running {
		return
	}

	slog.Info("session sweeper stopping")
	close(s.done)
	s.running = false
}

// runLoop is the sweeper goroutine.
func (s *Store) runLoop(ctx context.Context) {
	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped (context cancelled)")
			return
		case <-s.done:
			slog.Info("session sweeper stopped (stop requested)")
			return
		case <-ticker.C:
			if evicted := s.sweep(time.Now()); evicted > 0 {
				slog.Info("expired idle sessions", "evicted", evicted, "remaining", s.Len())
			} else {
				slog.Debug("sweep cycle completed (no idle sessions)")
			}
		}
	}
}

// sweep evicts sessions idle longer than the TTL as of now. Returns
// the number evicted.
func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	evicted := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastTouched()) > s.config.TTL {
			delete(s.sessions, id)
			evicted++

			if m := observability.DefaultMetrics; m != nil {
				m.SessionClosed(true)
			}
		}
	}
	return evicted
}
