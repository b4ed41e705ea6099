// Package logging provides structured logging utilities for asset discovery.
//
// # Overview
//
// This package wraps the standard library slog package with defaults shared by
// every binary: JSON output on stderr, module and version attributes on every
// record, source locations at debug level, and LOG_LEVEL based configuration.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: per-hit skip decisions, request tracing, with source location
//   - INFO: cycle and collector progress (default)
//   - WARN/WARNING: degraded but recoverable conditions
//   - ERROR: collector failures, lost bulk writes, rejected documents
//
// # Usage
//
// Setting the default logger early in main:
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("assetd", version)
//	    slog.Info("starting")
//	}
//
// Setting an explicit level from a flag:
//
//	logging.SetDefaultStructuredLoggerWithLevel("assetd", version, cmd.String("log-level"))
//
// # Environment Configuration
//
//	LOG_LEVEL=debug assetd collect --dry-run
//
// # Output Format
//
//	{
//	    "time": "2026-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "collector finished",
//	    "module": "assetd",
//	    "version": "v1.0.0",
//	    "runID": "0f0c5d1e-2a54-4d0f-9d9a-0f9a1c43b0f2",
//	    "collector": "containers",
//	    "assets": 42
//	}
package logging
