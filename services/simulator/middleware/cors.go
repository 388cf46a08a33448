// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package middleware provides HTTP middleware for the simulator service.
//
// This package contains middleware for cross-origin access, request
// identification, and rate limiting. All middleware is Gin-native and
// applied in routes.SetupRoutes.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware creates a Gin middleware that permits cross-origin
// requests from any origin.
//
// # Description
//
// The simulator is typically driven by a browser-based visualization
// front end served from a different origin, so the policy is
// deliberately open. The middleware echoes the request's Origin header
// rather than sending a literal "*" because browsers reject the
// wildcard when credentials are allowed.
//
// Preflight OPTIONS requests are answered directly with 204 and do not
// reach route handlers.
//
// # Outputs
//
//   - gin.HandlerFunc: Middleware function ready for use with Gin
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			origin = "*"
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
