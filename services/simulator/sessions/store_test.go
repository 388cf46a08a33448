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
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AleutianAI/BlochSim/services/quantum"
)

// =============================================================================
// Registry Tests
// =============================================================================

func TestStore_CreateAndGet(t *testing.T) {
	store := NewStore(DefaultConfig())

	created, err := store.Create(quantum.Config{})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := store.Get(created.ID)
	require.NoError(t, err)
	assert.Same(t, created, got)
	assert.Equal(t, 1, store.Len())
}

func TestStore_GetMissing(t *testing.T) {
	store := NewStore(DefaultConfig())

	_, err := store.Get("11111111-2222-4333-8444-555555555555")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(DefaultConfig())

	sess, err := store.Create(quantum.Config{})
	require.NoError(t, err)

	require.NoError(t, store.Delete(sess.ID))
	assert.Equal(t, 0, store.Len())

	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.Delete(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_CapacityLimit(t *testing.T) {
	store := NewStore(Config{Capacity: 2})

	_, err := store.Create(quantum.Config{})
	require.NoError(t, err)
	_, err = store.Create(quantum.Config{})
	require.NoError(t, err)

	_, err = store.Create(quantum.Config{})
	assert.ErrorIs(t, err, ErrLimitExceeded)

	// Deleting frees a slot.
	sess, err := store.Get(firstKey(store))
	require.NoError(t, err)
	require.NoError(t, store.Delete(sess.ID))

	_, err = store.Create(quantum.Config{})
	assert.NoError(t, err)
}

func TestStore_SweepEvictsOnlyIdleSessions(t *testing.T) {
	store := NewStore(Config{TTL: time.Hour})

	idle, err := store.Create(quantum.Config{})
	require.NoError(t, err)
	fresh, err := store.Create(quantum.Config{})
	require.NoError(t, err)

	idle.lastUsed.Store(time.Now().Add(-2 * time.Hour).UnixNano())

	evicted := store.sweep(time.Now())

	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, store.Len())

	_, err = store.Get(idle.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(fresh.ID)
	assert.NoError(t, err)
}

func TestStore_SweeperLifecycle(t *testing.T) {
	store := NewStore(Config{SweepInterval: 10 * time.Millisecond})
	ctx := context.Background()

	require.NoError(t, store.Start(ctx))
	assert.Error(t, store.Start(ctx), "second start should fail")

	store.Stop()
	store.Stop() // Safe to call twice.

	// Restart after stop is allowed.
	require.NoError(t, store.Start(ctx))
	store.Stop()
}

// =============================================================================
// Session Tests
// =============================================================================

func TestSession_ApplyAndObserve(t *testing.T) {
	store := NewStore(DefaultConfig())
	sess, err := store.Create(quantum.Config{})
	require.NoError(t, err)

	obs, err := sess.Apply([]quantum.Operation{quantum.GateOp(quantum.Gate{Kind: quantum.GateX})})
	require.NoError(t, err)
	require.Len(t, obs, 1)

	current := sess.Observe()
	assert.InDelta(t, -1, current.Bloch.Z, quantum.Tolerance)
	assert.Equal(t, 1, sess.Steps())
}

func TestSession_Reset(t *testing.T) {
	store := NewStore(DefaultConfig())
	sess, err := store.Create(quantum.Config{})
	require.NoError(t, err)

	_, err = sess.Apply([]quantum.Operation{quantum.GateOp(quantum.Gate{Kind: quantum.GateX})})
	require.NoError(t, err)

	sess.Reset()

	assert.InDelta(t, 1, sess.Observe().Bloch.Z, quantum.Tolerance)
	assert.Equal(t, 0, sess.Steps())
	assert.Empty(t, sess.History())
}

func TestSession_HistoryTracksSteps(t *testing.T) {
	store := NewStore(DefaultConfig())
	sess, err := store.Create(quantum.Config{})
	require.NoError(t, err)

	circuit := []quantum.Operation{
		quantum.GateOp(quantum.Gate{Kind: quantum.GateH}),
		quantum.GateOp(quantum.Gate{Kind: quantum.GateZ}),
		quantum.ChannelOp(quantum.Channel{Kind: quantum.PhaseDamping, Param: 0.1}),
	}
	_, err = sess.Apply(circuit)
	require.NoError(t, err)

	history := sess.History()
	require.Len(t, history, 3)
	// First snapshot is the state after H: on the +x axis.
	assert.InDelta(t, 1, history[0].Bloch.X, quantum.Tolerance)
}

func TestSession_ApplyErrorKeepsPrefix(t *testing.T) {
	store := NewStore(DefaultConfig())
	sess, err := store.Create(quantum.Config{})
	require.NoError(t, err)

	ops := []quantum.Operation{
		quantum.GateOp(quantum.Gate{Kind: quantum.GateX}),
		{}, // Zero operation fails as malformed.
	}

	obs, err := sess.Apply(ops)
	require.Error(t, err)
	assert.Len(t, obs, 1)

	// The applied prefix remains in effect.
	assert.InDelta(t, -1, sess.Observe().Bloch.Z, quantum.Tolerance)
	assert.Equal(t, 1, sess.Steps())
}

func TestSession_ConcurrentAppliesSerialize(t *testing.T) {
	store := NewStore(DefaultConfig())
	sess, err := store.Create(quantum.Config{})
	require.NoError(t, err)

	flip := []quantum.Operation{quantum.GateOp(quantum.Gate{Kind: quantum.GateX})}

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				if _, applyErr := sess.Apply(flip); applyErr != nil {
					t.Error(applyErr)
					return
				}
			}
		}()
	}
	wg.Wait()

	// 100 flips in total: back at the ground state regardless of order.
	assert.Equal(t, 100, sess.Steps())
	assert.InDelta(t, 1, sess.Observe().Bloch.Z, quantum.Tolerance)
}

func TestSessions_AreIsolated(t *testing.T) {
	store := NewStore(DefaultConfig())

	a, err := store.Create(quantum.Config{})
	require.NoError(t, err)
	b, err := store.Create(quantum.Config{})
	require.NoError(t, err)

	_, err = a.Apply([]quantum.Operation{quantum.GateOp(quantum.Gate{Kind: quantum.GateX})})
	require.NoError(t, err)

	assert.InDelta(t, -1, a.Observe().Bloch.Z, quantum.Tolerance)
	assert.InDelta(t, 1, b.Observe().Bloch.Z, quantum.Tolerance, "second session must stay at ground")
}

// =============================================================================
// Test Helpers
// =============================================================================

// firstKey returns an arbitrary session ID held by the store.
func firstKey(s *Store) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for id := range s.sessions {
		return id
	}
	return ""
}
