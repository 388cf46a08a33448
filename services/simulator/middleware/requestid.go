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
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// =============================================================================
// Context Keys
// =============================================================================

// requestIDKey is the context key for storing the request ID.
// Using a typed key prevents collisions with other context values.
const requestIDKey = "blochsim_request_id"

// RequestIDHeader is the header carrying the request ID in both
// directions.
const RequestIDHeader = "X-Request-ID"

// =============================================================================
// Context Helpers
// =============================================================================

// GetRequestID retrieves the request ID from the Gin context.
//
// Returns the empty string when RequestIDMiddleware has not processed
// the request.
func GetRequestID(c *gin.Context) string {
	if v, exists := c.Get(requestIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// =============================================================================
// Request ID Middleware
// =============================================================================

// RequestIDMiddleware creates a Gin middleware that assigns every
// request a stable identifier.
//
// # Description
//
// An inbound X-Request-ID header is honored so callers can correlate
// across services; otherwise a fresh UUID is generated. The ID is
// stored in the Gin context for handlers and logging, and echoed on
// the response header.
//
// # Outputs
//
//   - gin.HandlerFunc: Middleware function ready for use with Gin
//
// # Examples
//
//	router.Use(middleware.RequestIDMiddleware())
//
//	func handler(c *gin.Context) {
//	    logger.Info("handling", "request_id", middleware.GetRequestID(c))
//	}
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}
