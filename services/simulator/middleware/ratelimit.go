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
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// =============================================================================
// Rate Limiter
// =============================================================================

// maxTrackedClients bounds the limiter map. When exceeded, entries idle
// longer than clientIdleTimeout are pruned inline under the lock.
const maxTrackedClients = 4096

// clientIdleTimeout is how long a client entry may sit unused before it
// becomes eligible for pruning.
const clientIdleTimeout = 5 * time.Minute

// clientLimiter pairs a token bucket with its last access time.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter applies a per-client token bucket to incoming requests.
//
// # Description
//
// Each client IP gets an independent rate.Limiter with the configured
// sustained rate and burst. Requests that exceed the budget receive a
// 429 response immediately; there is no queueing. The client map is
// pruned lazily when it grows past maxTrackedClients, so the limiter
// needs no background goroutine and no shutdown hook.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]*clientLimiter
	rps     rate.Limit
	burst   int
}

// NewRateLimiter creates a RateLimiter allowing rps sustained requests
// per second with the given burst per client.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*clientLimiter),
		rps:     rate.Limit(rps),
		burst:   burst,
	}
}

// Middleware returns the Gin middleware enforcing the limit.
//
// Clients are keyed by ClientIP, which respects Gin's trusted proxy
// configuration.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// allow reports whether the client identified by key may proceed.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	cl, ok := rl.clients[key]
	if !ok {
		if len(rl.clients) >= maxTrackedClients {
			rl.pruneLocked(now)
		}
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.clients[key] = cl
	}
	cl.lastSeen = now

	return cl.limiter.Allow()
}

// pruneLocked removes idle client entries. Caller must hold rl.mu.
func (rl *RateLimiter) pruneLocked(now time.Time) {
	for key, cl := range rl.clients {
		if now.Sub(cl.lastSeen) > clientIdleTimeout {
			delete(rl.clients, key)
		}
	}
}
