package gesturetree

import (
	"log/slog"

	"github.com/randalmurphal/gesturetree/pkg/gesturetree/journal"
	"github.com/randalmurphal/gesturetree/pkg/gesturetree/observability"
)

// managerConfig holds configuration applied at Wrap time.
type managerConfig struct {
	bindings   *Bindings
	logger     *slog.Logger
	spans      observability.SpanManager
	metrics    observability.MetricsRecorder
	journal    journal.Store
	onError    func(*Event, error)
	eventTypes map[string]struct{} // nil = all types allowed
}

// defaultManagerConfig returns the default wrap configuration.
func defaultManagerConfig() managerConfig {
	return managerConfig{
		bindings: DefaultBindings,
		spans:    observability.NoopSpanManager{},
		metrics:  observability.NoopMetrics{},
	}
}

// Option configures a manager at Wrap time.
type Option func(*managerConfig)

// WithBindings sets the binding table the manager registers in and the
// dispatcher walks through. Managers that should see each other's
// elements must share a table. Default: DefaultBindings.
func WithBindings(b *Bindings) Option {
	return func(c *managerConfig) {
		if b != nil {
			c.bindings = b
		}
	}
}

// WithLogger enables structured dispatch logging.
// Default: no logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *managerConfig) {
		c.logger = logger
	}
}

// WithSpans sets the span manager used to trace dispatches.
// Default: observability.NoopSpanManager.
func WithSpans(spans observability.SpanManager) Option {
	return func(c *managerConfig) {
		if spans != nil {
			c.spans = spans
		}
	}
}

// WithMetrics sets the metrics recorder for dispatch and handler
// measurements. Default: observability.NoopMetrics.
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(c *managerConfig) {
		if metrics != nil {
			c.metrics = metrics
		}
	}
}

// WithJournal records every completed ancestor walk to the given store.
// Journal append failures are logged, never surfaced to handlers.
// Default: no journal.
func WithJournal(store journal.Store) Option {
	return func(c *managerConfig) {
		c.journal = store
	}
}

// WithOnError observes handler errors that abort a walk. The error is
// still returned to the engine's emit caller.
func WithOnError(fn func(evt *Event, err error)) Option {
	return func(c *managerConfig) {
		c.onError = fn
	}
}

// WithEventTypes restricts which event types On() will register.
// Types outside the allowlist are silently skipped. Default: all types.
func WithEventTypes(types ...string) Option {
	return func(c *managerConfig) {
		if len(types) == 0 {
			return
		}
		c.eventTypes = make(map[string]struct{}, len(types))
		for _, t := range types {
			c.eventTypes[t] = struct{}{}
		}
	}
}
