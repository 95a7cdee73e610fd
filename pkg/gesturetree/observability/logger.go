// Package observability provides production-grade observability features
// for gesturetree: structured logging, metrics, and distributed tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import "log/slog"

// EnrichLogger adds dispatch context to a logger.
// Returns a new logger with event_id and event_type fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, evt.ID(), evt.Type)
//	enriched.Info("walking") // includes event_id, event_type
func EnrichLogger(logger *slog.Logger, eventID, eventType string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("event_id", eventID),
		slog.String("event_type", eventType),
	)
}

// LogDispatchStart logs the start of an ancestor walk.
func LogDispatchStart(logger *slog.Logger, targetID string) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch starting",
		slog.String("target_id", targetID),
	)
}

// LogDispatchComplete logs a finished ancestor walk.
func LogDispatchComplete(logger *slog.Logger, durationMs float64, nodes, handled int, stopped bool, err error) {
	if logger == nil {
		return
	}
	attrs := []any{
		slog.Float64("duration_ms", durationMs),
		slog.Int("nodes_visited", nodes),
		slog.Int("handlers_invoked", handled),
		slog.Bool("stopped", stopped),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		logger.Warn("dispatch aborted", attrs...)
		return
	}
	logger.Debug("dispatch completed", attrs...)
}
