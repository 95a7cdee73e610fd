package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records gesturetree metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDispatch records one completed ancestor walk.
	RecordDispatch(ctx context.Context, eventType string, duration time.Duration, nodesVisited int, stopped bool, err error)

	// RecordHandler records a single handler invocation.
	RecordHandler(ctx context.Context, eventType, nodeID string, duration time.Duration, err error)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	dispatches      metric.Int64Counter
	dispatchLatency metric.Float64Histogram
	dispatchStopped metric.Int64Counter
	nodesVisited    metric.Int64Histogram
	handlerCalls    metric.Int64Counter
	handlerLatency  metric.Float64Histogram
	handlerErrors   metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("gesturetree")

	dispatches, err := meter.Int64Counter("gesturetree.dispatch.count",
		metric.WithDescription("Number of ancestor walks"),
	)
	if err != nil {
		return nil, err
	}

	dispatchLatency, err := meter.Float64Histogram("gesturetree.dispatch.latency_ms",
		metric.WithDescription("Ancestor walk latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	dispatchStopped, err := meter.Int64Counter("gesturetree.dispatch.stopped",
		metric.WithDescription("Number of walks ended by stopPropagation"),
	)
	if err != nil {
		return nil, err
	}

	nodesVisited, err := meter.Int64Histogram("gesturetree.dispatch.nodes",
		metric.WithDescription("Nodes with handlers visited per walk"),
	)
	if err != nil {
		return nil, err
	}

	handlerCalls, err := meter.Int64Counter("gesturetree.handler.invocations",
		metric.WithDescription("Number of handler invocations"),
	)
	if err != nil {
		return nil, err
	}

	handlerLatency, err := meter.Float64Histogram("gesturetree.handler.latency_ms",
		metric.WithDescription("Handler latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	handlerErrors, err := meter.Int64Counter("gesturetree.handler.errors",
		metric.WithDescription("Number of handler errors"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		dispatches:      dispatches,
		dispatchLatency: dispatchLatency,
		dispatchStopped: dispatchStopped,
		nodesVisited:    nodesVisited,
		handlerCalls:    handlerCalls,
		handlerLatency:  handlerLatency,
		handlerErrors:   handlerErrors,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordDispatch records one completed ancestor walk.
func (m *otelMetrics) RecordDispatch(ctx context.Context, eventType string, duration time.Duration, nodesVisited int, stopped bool, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("event_type", eventType),
	}

	m.dispatches.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.dispatchLatency.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))
	m.nodesVisited.Record(ctx, int64(nodesVisited), metric.WithAttributes(attrs...))

	if stopped {
		m.dispatchStopped.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if err != nil {
		m.handlerErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordHandler records a single handler invocation.
func (m *otelMetrics) RecordHandler(ctx context.Context, eventType, nodeID string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("event_type", eventType),
		attribute.String("node_id", nodeID),
	}

	m.handlerCalls.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.handlerLatency.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))

	if err != nil {
		m.handlerErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
