// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package simulator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Setup
// =============================================================================

func init() {
	// Set Gin to test mode to reduce noise in test output
	gin.SetMode(gin.TestMode)
}

// newTestService builds a service that needs no collector or network.
func newTestService(t *testing.T, cfg Config) Service {
	t.Helper()
	cfg.GinMode = gin.TestMode
	cfg.TraceExporter = "none"
	svc, err := New(cfg)
	require.NoError(t, err)
	return svc
}

// =============================================================================
// Config Tests
// =============================================================================

// TestApplyConfigDefaults_AllDefaults verifies default values are applied.
func TestApplyConfigDefaults_AllDefaults(t *testing.T) {
	result := applyConfigDefaults(Config{})

	assert.Equal(t, 12240, result.Port, "default port should be 12240")
	assert.Equal(t, "otlp", result.TraceExporter, "default trace exporter should be otlp")
	assert.Equal(t, "blochsim-otel-collector:4317", result.OTelEndpoint,
		"default OTel endpoint should be blochsim-otel-collector:4317")
	assert.Equal(t, 256, result.SessionCapacity, "default session capacity should be 256")
	assert.Equal(t, 30*time.Minute, result.SessionTTL, "default session TTL should be 30m")
	assert.Equal(t, time.Minute, result.SweepInterval, "default sweep interval should be 1m")
	assert.Equal(t, 50.0, result.RateLimitRPS, "default rate limit should be 50 rps")
	assert.Equal(t, 100, result.RateLimitBurst, "default burst should be 100")
	assert.False(t, result.DisableMetrics, "metrics should be enabled by default")
	assert.False(t, result.DisableRateLimit, "rate limiting should be enabled by default")
}

// TestApplyConfigDefaults_PreservesCustomValues verifies custom values are not overwritten.
func TestApplyConfigDefaults_PreservesCustomValues(t *testing.T) {
	cfg := Config{
		Host:            "127.0.0.1",
		Port:            8080,
		TraceExporter:   "stdout",
		OTelEndpoint:    "custom-collector:4317",
		SessionCapacity: 16,
		SessionTTL:      time.Minute,
		RateLimitRPS:    5,
		RateLimitBurst:  10,
	}

	result := applyConfigDefaults(cfg)

	assert.Equal(t, "127.0.0.1", result.Host, "custom host should be preserved")
	assert.Equal(t, 8080, result.Port, "custom port should be preserved")
	assert.Equal(t, "stdout", result.TraceExporter, "custom trace exporter should be preserved")
	assert.Equal(t, "custom-collector:4317", result.OTelEndpoint,
		"custom OTel endpoint should be preserved")
	assert.Equal(t, 16, result.SessionCapacity, "custom session capacity should be preserved")
	assert.Equal(t, time.Minute, result.SessionTTL, "custom session TTL should be preserved")
	assert.Equal(t, 5.0, result.RateLimitRPS, "custom rate limit should be preserved")
	assert.Equal(t, 10, result.RateLimitBurst, "custom burst should be preserved")
}

// TestApplyConfigDefaults_PartialConfig verifies partial configs are handled.
func TestApplyConfigDefaults_PartialConfig(t *testing.T) {
	cfg := Config{
		Port: 9999,
		// Everything else left at zero value
	}

	result := applyConfigDefaults(cfg)

	assert.Equal(t, 9999, result.Port, "custom port should be preserved")
	assert.Equal(t, "otlp", result.TraceExporter, "default trace exporter should be applied")
	assert.Equal(t, 256, result.SessionCapacity, "default session capacity should be applied")
}

// =============================================================================
// Constructor Tests
// =============================================================================

// TestNew_UnknownTraceExporter verifies an unrecognized exporter fails fast.
func TestNew_UnknownTraceExporter(t *testing.T) {
	_, err := New(Config{TraceExporter: "plasma"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown trace exporter")
}

// TestNew_AssemblesWorkingRouter verifies the constructed service
// serves its routes end to end.
func TestNew_AssemblesWorkingRouter(t *testing.T) {
	svc := newTestService(t, Config{})
	require.NotNil(t, svc.Router())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	svc.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

// TestNew_EvolveEndToEnd evaluates a circuit through the fully
// assembled service, middleware included.
func TestNew_EvolveEndToEnd(t *testing.T) {
	svc := newTestService(t, Config{})

	body := strings.NewReader(`{"steps":[{"kind":"gate","name":"h"},{"kind":"noise","name":"phase_damping"}]}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/circuit/evolve", body)
	req.Header.Set("Content-Type", "application/json")
	svc.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "bloch_vector")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"), "request id middleware should be wired")
}

// TestNew_RateLimitDisabled verifies DisableRateLimit leaves no
// limiter in the middleware chain.
func TestNew_RateLimitDisabled(t *testing.T) {
	svc := newTestService(t, Config{DisableRateLimit: true, RateLimitRPS: 0.001, RateLimitBurst: 1})

	// With the limiter disabled the tight rps/burst values are inert
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/health", nil)
		req.RemoteAddr = "10.1.1.1:1000"
		svc.Router().ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, "request %d should pass", i)
	}
}

// =============================================================================
// Interface Compliance Tests
// =============================================================================

// TestServiceImplementsInterface documents the compile-time check
// declared in simulator.go: var _ Service = (*service)(nil).
func TestServiceImplementsInterface(t *testing.T) {
	var svc Service = &service{}
	assert.NotNil(t, svc)
}
