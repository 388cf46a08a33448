// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package logging provides structured logging for BlochSim components.
//
// The package wraps Go's standard library slog with a small surface
// tailored to CLI usage:
//
//   - Default: human-readable text on stderr (follows Unix conventions)
//   - Optional: JSON output for log aggregation
//   - Nop: discard everything, for tests and quiet commands
//
// # Basic Usage
//
//	logger := logging.Default()
//	logger.Info("circuit evaluated", "steps", len(steps))
//	logger.Error("evaluation failed", "error", err)
//
// # Custom Configuration
//
//	logger := logging.New(logging.Config{
//	    Level:   logging.LevelDebug,
//	    Service: "bloch",
//	    JSON:    true,
//	})
//
// # Log Levels
//
// Four levels are supported, matching slog conventions:
//
//   - Debug: Development troubleshooting, verbose output
//   - Info: Normal operations (evaluation start/end, state changes)
//   - Warn: Recoverable issues (fallback values, clamped parameters)
//   - Error: Operation failures (but the process continues)
//
// # Thread Safety
//
// Logger is safe for concurrent use. The underlying slog.Logger is
// thread-safe.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// =============================================================================
// Log Levels
// =============================================================================

// Level represents log severity levels.
//
// Levels follow the slog convention and are ordered by severity:
// Debug < Info < Warn < Error
//
// Setting a minimum level filters out all logs below that level.
type Level int

const (
	// LevelDebug is for development troubleshooting.
	LevelDebug Level = iota

	// LevelInfo is for normal operational messages.
	LevelInfo

	// LevelWarn is for potentially problematic situations.
	LevelWarn

	// LevelError is for error conditions.
	LevelError
)

// String returns the human-readable name of the level.
//
// Returns "DEBUG", "INFO", "WARN", "ERROR", or "UNKNOWN".
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// toSlogLevel converts our Level to slog.Level.
func (l Level) toSlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel converts a string to a Level.
//
// Unknown strings default to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug", "d":
		return LevelDebug
	case "info", "i":
		return LevelInfo
	case "warn", "warning", "w":
		return LevelWarn
	case "error", "err", "e":
		return LevelError
	default:
		return LevelInfo
	}
}

// =============================================================================
// Configuration
// =============================================================================

// Config configures the Logger behavior.
//
// All fields have sensible defaults. A zero-value Config creates
// a logger that writes Info+ messages to stderr in text format.
type Config struct {
	// Level sets the minimum log level.
	//
	// Messages below this level are discarded.
	// Default: LevelInfo
	Level Level

	// Service identifies the component generating logs.
	//
	// This value is included in every log entry as the "service"
	// attribute, making it easy to filter logs by component.
	//
	// Default: "" (no service attribute)
	Service string

	// JSON enables JSON output format.
	//
	// When true, logs are formatted as JSON objects (machine-parseable).
	// When false, logs are formatted as human-readable text.
	//
	// Default: false (text format)
	JSON bool

	// Output is the destination writer.
	//
	// Tests can inject a bytes.Buffer to capture log output.
	// Default: os.Stderr
	Output io.Writer
}

// =============================================================================
// Logger
// =============================================================================

// Logger wraps slog.Logger with level parsing and a Nop variant.
//
// Use With() to create a logger with additional attributes:
//
//	stepLogger := logger.With("circuit", name)
//	stepLogger.Info("applying operator")  // Includes circuit attribute
type Logger struct {
	// slog is the underlying structured logger
	slog *slog.Logger

	// config stores the configuration for reference
	config Config
}

// New creates a new Logger with the given configuration.
//
// Parameters:
//   - config: Logger configuration (see Config for options)
//
// Returns:
//   - *Logger: Configured logger ready for use
func New(config Config) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: config.Level.toSlogLevel(),
	}

	var handler slog.Handler
	if config.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	if config.Service != "" {
		handler = handler.WithAttrs([]slog.Attr{
			slog.String("service", config.Service),
		})
	}

	return &Logger{
		slog:   slog.New(handler),
		config: config,
	}
}

// Default returns a logger with default settings.
//
// The default configuration:
//   - Level: Info
//   - Output: stderr
//   - Format: text (human-readable)
//   - Service: "bloch"
func Default() *Logger {
	return New(Config{
		Level:   LevelInfo,
		Service: "bloch",
	})
}

// Nop returns a logger that discards everything.
//
// Useful for tests and for commands where log output would
// corrupt machine-readable stdout.
func Nop() *Logger {
	return New(Config{
		Level:  LevelError,
		Output: io.Discard,
	})
}

// Debug logs a message at Debug level.
//
// Arguments are slog-style key-value pairs:
//
//	logger.Debug("parsing step", "index", i, "name", name)
func (l *Logger) Debug(msg string, args ...any) {
	l.slog.Debug(msg, args...)
}

// Info logs a message at Info level.
func (l *Logger) Info(msg string, args ...any) {
	l.slog.Info(msg, args...)
}

// Warn logs a message at Warn level.
func (l *Logger) Warn(msg string, args ...any) {
	l.slog.Warn(msg, args...)
}

// Error logs a message at Error level.
func (l *Logger) Error(msg string, args ...any) {
	l.slog.Error(msg, args...)
}

// With returns a child logger with additional attributes.
//
// The attributes are included in every log entry from the child:
//
//	fileLogger := logger.With("file", path)
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		slog:   l.slog.With(args...),
		config: l.config,
	}
}

// Slog returns the underlying slog.Logger.
//
// This provides direct access to slog features not exposed
// by this wrapper, such as LogAttrs or custom Record handling.
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}
