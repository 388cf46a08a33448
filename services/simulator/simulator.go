// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package simulator provides the HTTP service around the quantum
// evolution engine.
//
// This package contains the Service type that assembles the moving
// parts: HTTP routing, the session store with its background sweeper,
// rate limiting, OpenTelemetry tracing, and Prometheus metrics. The
// quantum engine itself lives in services/quantum and carries no HTTP
// concerns.
//
// # Usage
//
//	cfg := simulator.Config{Port: 12240}
//	svc, err := simulator.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	log.Fatal(svc.Run())
package simulator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/AleutianAI/BlochSim/services/simulator/middleware"
	"github.com/AleutianAI/BlochSim/services/simulator/observability"
	"github.com/AleutianAI/BlochSim/services/simulator/routes"
	"github.com/AleutianAI/BlochSim/services/simulator/sessions"
)

// =============================================================================
// Interface Definition
// =============================================================================

// Service defines the contract for the simulator service.
//
// # Description
//
// Service abstracts the simulator lifecycle, enabling testing and
// alternative implementations. Only essential lifecycle methods are
// exposed.
//
// # Thread Safety
//
// Implementations must be safe for concurrent use. Run() blocks and
// should only be called once per instance.
//
// # Assumptions
//
//   - Service is fully initialized before Run() is called
//   - Run() is called at most once per Service instance
type Service interface {
	// Run starts the HTTP server and blocks until shutdown or error.
	//
	// # Outputs
	//
	//   - error: Non-nil if server fails to start or encounters fatal error
	Run() error

	// Router returns the underlying Gin engine for testing.
	//
	// # Outputs
	//
	//   - *gin.Engine: The configured router with all routes registered
	Router() *gin.Engine
}

// =============================================================================
// Configuration
// =============================================================================

// Config holds simulator configuration options.
//
// # Description
//
// Config centralizes all configuration for the simulator service.
// Values can be populated from environment variables, CLI flags, or
// programmatically for testing.
//
// # Required Fields
//
// None - all fields have sensible defaults.
//
// # Examples
//
//	// Minimal config (uses all defaults)
//	cfg := Config{}
//
//	// Custom port with local trace debugging
//	cfg := Config{
//	    Port:          8080,
//	    TraceExporter: "stdout",
//	}
type Config struct {
	// Host is the interface the HTTP server binds to.
	// Default: "" (all interfaces)
	Host string

	// Port is the HTTP server port. Default: 12240
	Port int

	// GinMode sets the Gin framework mode.
	// Valid values: "debug", "release", "test"
	// Default: uses GIN_MODE env var or "debug"
	GinMode string

	// TraceExporter selects the trace exporter.
	// Valid values: "otlp", "stdout", "none"
	// Default: "otlp"
	TraceExporter string

	// OTelEndpoint is the OpenTelemetry collector endpoint used by the
	// otlp exporter. Default: "blochsim-otel-collector:4317"
	OTelEndpoint string

	// DisableMetrics turns off Prometheus metric registration. The
	// /metrics endpoint stays mounted but reports only runtime metrics.
	DisableMetrics bool

	// SessionCapacity is the maximum number of concurrently held
	// sessions. Default: 256
	SessionCapacity int

	// SessionTTL is the idle time after which a session expires.
	// Default: 30 minutes
	SessionTTL time.Duration

	// SweepInterval is how often the expiry sweeper runs.
	// Default: 1 minute
	SweepInterval time.Duration

	// DisableRateLimit turns off per-client rate limiting.
	DisableRateLimit bool

	// RateLimitRPS is the sustained request rate allowed per client IP.
	// Default: 50
	RateLimitRPS float64

	// RateLimitBurst is the short-term burst allowed per client IP.
	// Default: 100
	RateLimitBurst int
}

// =============================================================================
// Implementation
// =============================================================================

// service implements Service for production use.
//
// # Thread Safety
//
// Thread-safe after construction. All fields are read-only after New()
// returns; mutable state lives inside the session store.
type service struct {
	config        Config
	router        *gin.Engine
	store         *sessions.Store
	limiter       *middleware.RateLimiter
	tracerCleanup func(context.Context)
	storeCancel   context.CancelFunc
}

// =============================================================================
// Constructor
// =============================================================================

// New creates a new simulator Service with the given configuration.
//
// # Description
//
// New initializes all simulator components:
//  1. Applies default configuration for missing values
//  2. Initializes OpenTelemetry tracing
//  3. Initializes Prometheus metrics
//  4. Creates the session store (sweeper starts in Run)
//  5. Creates the per-client rate limiter
//  6. Sets up HTTP routes
//
// # Inputs
//
//   - cfg: Service configuration. Zero values use defaults.
//
// # Outputs
//
//   - Service: Ready-to-run simulator service
//   - error: Non-nil if initialization fails
//
// # Limitations
//
//   - The otlp exporter connects lazily; an unreachable collector
//     surfaces as export errors at runtime, not here
func New(cfg Config) (Service, error) {
	s := &service{
		config: applyConfigDefaults(cfg),
	}

	// Initialize OpenTelemetry tracer
	cleanup, err := s.initTracer()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracer: %w", err)
	}
	s.tracerCleanup = cleanup

	// Initialize Prometheus metrics
	if !s.config.DisableMetrics {
		observability.InitMetrics()
		slog.Info("Initialized Prometheus metrics for the simulator")
	}

	// Session store; the sweeper goroutine starts in Run
	s.store = sessions.NewStore(sessions.Config{
		Capacity:      s.config.SessionCapacity,
		TTL:           s.config.SessionTTL,
		SweepInterval: s.config.SweepInterval,
	})

	if !s.config.DisableRateLimit {
		s.limiter = middleware.NewRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst)
	}

	// Setup HTTP router
	s.initRouter()

	return s, nil
}

// =============================================================================
// Service Interface Methods
// =============================================================================

// Run starts the session sweeper and the HTTP server, blocking until
// shutdown or error.
//
// # Outputs
//
//   - error: Non-nil if server fails to start or encounters fatal error
//
// # Limitations
//
//   - Blocks until server stops
//   - Cleanup is automatic on return
func (s *service) Run() error {
	defer s.cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	s.storeCancel = cancel
	if err := s.store.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session sweeper: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	slog.Info("Starting simulator server", "addr", addr)

	return s.router.Run(addr)
}

// Router returns the underlying Gin engine for testing.
//
// # Assumptions
//
//   - Caller will not modify the router
func (s *service) Router() *gin.Engine {
	return s.router
}

// =============================================================================
// Private Initialization Methods
// =============================================================================

// applyConfigDefaults fills in missing configuration values.
func applyConfigDefaults(cfg Config) Config {
	if cfg.Port == 0 {
		cfg.Port = 12240
	}
	if cfg.TraceExporter == "" {
		cfg.TraceExporter = "otlp"
	}
	if cfg.OTelEndpoint == "" {
		cfg.OTelEndpoint = "blochsim-otel-collector:4317"
	}
	if cfg.SessionCapacity == 0 {
		cfg.SessionCapacity = sessions.DefaultConfig().Capacity
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = sessions.DefaultConfig().TTL
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = sessions.DefaultConfig().SweepInterval
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = 50
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = 100
	}
	return cfg
}

// initTracer initializes OpenTelemetry distributed tracing.
//
// # Description
//
// Selects the span exporter named by TraceExporter: "otlp" ships spans
// to the configured collector over gRPC, "stdout" pretty-prints them
// for local debugging, "none" leaves the global no-op provider in
// place.
//
// # Outputs
//
//   - func(context.Context): Cleanup function to call on shutdown
//   - error: Non-nil if tracer setup fails
//
// # Limitations
//
//   - The otlp path uses an insecure gRPC connection (appropriate for
//     internal networks)
func (s *service) initTracer() (func(context.Context), error) {
	ctx := context.Background()

	var exporter sdktrace.SpanExporter
	switch s.config.TraceExporter {
	case "none":
		return func(context.Context) {}, nil

	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		exporter = exp

	case "otlp":
		conn, err := grpc.NewClient(s.config.OTelEndpoint,
			grpc.WithTransportCredentials(insecure.NewCredentials()))
		if err != nil {
			return nil, fmt.Errorf("failed to create gRPC connection: %w", err)
		}
		exp, err := otlptracegrpc.New(ctx, otlptracegrpc.WithGRPCConn(conn))
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		exporter = exp

	default:
		return nil, fmt.Errorf("unknown trace exporter %q", s.config.TraceExporter)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String("simulator-service")))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	bsp := sdktrace.NewBatchSpanProcessor(exporter)
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(bsp))

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{}, propagation.Baggage{}))

	cleanup := func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, time.Second*5)
		defer cancel()
		if err := traceProvider.Shutdown(ctx); err != nil {
			slog.Error("failed to shutdown trace provider", "error", err)
		}
	}

	return cleanup, nil
}

// initRouter sets up the Gin HTTP router with all routes.
func (s *service) initRouter() {
	if s.config.GinMode != "" {
		gin.SetMode(s.config.GinMode)
	}

	s.router = gin.Default()
	s.router.Use(otelgin.Middleware("simulator-service"))

	routes.SetupRoutes(s.router, s.store, s.limiter)
}

// cleanup releases all resources held by the service.
func (s *service) cleanup() {
	if s.storeCancel != nil {
		s.storeCancel()
	}
	s.store.Stop()

	if s.tracerCleanup != nil {
		s.tracerCleanup(context.Background())
	}
}

// =============================================================================
// Compile-time Interface Compliance
// =============================================================================

var _ Service = (*service)(nil)
