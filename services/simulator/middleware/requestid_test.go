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

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// RequestIDMiddleware Tests
// =============================================================================

func TestRequestIDMiddleware_GeneratesID(t *testing.T) {
	var seenID string

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/test", func(c *gin.Context) {
		seenID = GetRequestID(c)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)

	require.NotEmpty(t, seenID)
	_, err := uuid.Parse(seenID)
	assert.NoError(t, err, "generated request ID should be a UUID")
	assert.Equal(t, seenID, w.Header().Get(RequestIDHeader))
}

func TestRequestIDMiddleware_HonorsInboundHeader(t *testing.T) {
	var seenID string

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/test", func(c *gin.Context) {
		seenID = GetRequestID(c)
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set(RequestIDHeader, "caller-supplied-id")
	router.ServeHTTP(w, req)

	assert.Equal(t, "caller-supplied-id", seenID)
	assert.Equal(t, "caller-supplied-id", w.Header().Get(RequestIDHeader))
}

// =============================================================================
// Context Helper Tests
// =============================================================================

func TestGetRequestID_NotSet(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))
}

func TestGetRequestID_WrongType(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(requestIDKey, 42)

	assert.Empty(t, GetRequestID(c))
}
