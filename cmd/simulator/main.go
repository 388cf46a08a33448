// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command simulator starts the BlochSim HTTP server.
//
// This is the main entry point for the containerized simulator service.
// It reads configuration from environment variables and starts the server.
//
// # Environment Variables
//
//   - SIMULATOR_HOST: bind interface (default: all interfaces)
//   - SIMULATOR_PORT: HTTP server port (default: 12240)
//   - SIMULATOR_GIN_MODE: gin mode - debug, release, test (default: GIN_MODE or debug)
//   - SIMULATOR_TRACE_EXPORTER: trace exporter - otlp, stdout, none (default: otlp)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OpenTelemetry collector (default: blochsim-otel-collector:4317)
//   - SIMULATOR_MAX_SESSIONS: session store capacity (default: 256)
//   - SIMULATOR_SESSION_TTL_SECONDS: idle session expiry (default: 1800)
//   - SIMULATOR_SWEEP_INTERVAL_SECONDS: expiry sweeper cadence (default: 60)
//   - SIMULATOR_RATE_LIMIT_RPS: per-client sustained rate (default: 50)
//   - SIMULATOR_RATE_LIMIT_BURST: per-client burst (default: 100)
//   - SIMULATOR_DISABLE_RATE_LIMIT: set to "true" to disable rate limiting
//
// # Usage
//
//	# Build
//	go build -o simulator ./cmd/simulator
//
//	# Run
//	./simulator
//
//	# Or via container
//	podman-compose up simulator
package main

import (
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/AleutianAI/BlochSim/services/simulator"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Build configuration from environment variables
	cfg := simulator.Config{
		Host:             os.Getenv("SIMULATOR_HOST"),
		Port:             getEnvInt("SIMULATOR_PORT", 12240),
		GinMode:          os.Getenv("SIMULATOR_GIN_MODE"),
		TraceExporter:    getEnvString("SIMULATOR_TRACE_EXPORTER", "otlp"),
		OTelEndpoint:     getEnvString("OTEL_EXPORTER_OTLP_ENDPOINT", "blochsim-otel-collector:4317"),
		SessionCapacity:  getEnvInt("SIMULATOR_MAX_SESSIONS", 0),
		SessionTTL:       time.Duration(getEnvInt("SIMULATOR_SESSION_TTL_SECONDS", 0)) * time.Second,
		SweepInterval:    time.Duration(getEnvInt("SIMULATOR_SWEEP_INTERVAL_SECONDS", 0)) * time.Second,
		RateLimitRPS:     getEnvFloat("SIMULATOR_RATE_LIMIT_RPS", 0),
		RateLimitBurst:   getEnvInt("SIMULATOR_RATE_LIMIT_BURST", 0),
		DisableRateLimit: os.Getenv("SIMULATOR_DISABLE_RATE_LIMIT") == "true",
	}

	slog.Info("Starting simulator",
		"port", cfg.Port,
		"trace_exporter", cfg.TraceExporter,
	)

	svc, err := simulator.New(cfg)
	if err != nil {
		log.Fatalf("Failed to create simulator: %v", err)
	}

	// Run the server (blocks until shutdown)
	if err := svc.Run(); err != nil {
		log.Fatalf("Simulator error: %v", err)
	}
}

// getEnvString returns the environment variable value or a default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the environment variable as int or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat returns the environment variable as float64 or a default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
