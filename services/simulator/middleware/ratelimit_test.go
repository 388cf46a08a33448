// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// RateLimiter Tests
// =============================================================================

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(1, 3)

	router := gin.New()
	router.Use(rl.Middleware())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// httptest requests share a RemoteAddr, so they count as one client.
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
		require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/test", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit")
}

func TestRateLimiter_IsolatesClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	require.True(t, rl.allow("10.0.0.1"))
	require.False(t, rl.allow("10.0.0.1"), "first client should be exhausted")

	assert.True(t, rl.allow("10.0.0.2"), "second client has its own bucket")
}

func TestRateLimiter_PruneEvictsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	rl.allow("10.0.0.1")
	rl.allow("10.0.0.2")

	rl.mu.Lock()
	rl.clients["10.0.0.1"].lastSeen = time.Now().Add(-2 * clientIdleTimeout)
	rl.pruneLocked(time.Now())
	remaining := len(rl.clients)
	rl.mu.Unlock()

	assert.Equal(t, 1, remaining, "only the idle client should be evicted")
}
