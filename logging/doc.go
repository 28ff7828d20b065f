// Package logging provides a minimal logging interface and adapters for the
// sortable engine.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) the registry, delay gate and engine use for observability.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - ZerologAdapter wrapping a zerolog.Logger
//   - DragLogger with session/container context and drop helpers
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	eng := engine.New(func(o *engine.Options) { o.Logger = logger })
package logging
