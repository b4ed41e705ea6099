// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeUnavailable,
//	    "telemetry search failed",
//	    err,
//	    map[string]any{
//	        "collector": "containers",
//	        "indices":   opts.Indices.List(),
//	    },
//	)
//
// CodeOf extracts the code for logging:
//
//	slog.Error("collector failed", "code", errors.CodeOf(err), "error", err)
package errors
