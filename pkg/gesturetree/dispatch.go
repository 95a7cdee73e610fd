package gesturetree

import (
	"context"
	"log/slog"
	"time"

	"github.com/randalmurphal/gesturetree/pkg/gesturetree/journal"
	"github.com/randalmurphal/gesturetree/pkg/gesturetree/observability"
)

// dispatch runs the ancestor walk for one firing. It is the body of
// every listener the manager installs on the engine.
//
// The walk follows parent links from the event's target to the root,
// invoking each bound manager's handlers for the event type in
// registration order, until a handler stops propagation, a handler
// returns an error, or the root is reached. The walk crosses elements
// with no manager (or no handlers for the type) without effect.
//
// The source event's handled marker guarantees the walk runs at most
// once per physical input across every manager in the table: a second
// engine higher in the tree reacting to the same input finds the marker
// set and returns before walking.
func (m *Manager) dispatch(evt *Event) error {
	if evt == nil || m.destroyed.Load() {
		return nil
	}
	if evt.Source != nil && !evt.Source.markHandled() {
		return nil
	}

	ctx := context.Background()
	targetID := nodeID(evt.Target)

	ctx, span := m.cfg.spans.StartDispatchSpan(ctx, evt.Type, targetID)
	start := time.Now()

	logger := observability.EnrichLogger(m.cfg.logger, evt.ID(), evt.Type)
	observability.LogDispatchStart(logger, targetID)

	var stopped bool
	evt.setStop(func() { stopped = true })
	defer evt.setStop(nil)

	entry := &journal.Entry{
		EventID:   evt.ID(),
		EventType: evt.Type,
		TargetID:  targetID,
		Timestamp: start,
	}
	if evt.Source != nil {
		entry.SourceID = evt.Source.ID()
	}

	var walkErr error

walk:
	for node := evt.Target; node != nil && !stopped; node = node.Parent() {
		owner := m.cfg.bindings.Lookup(node)
		if owner == nil {
			continue
		}
		handlers := owner.handlersFor(evt.Type)
		if len(handlers) == 0 {
			continue
		}

		id := nodeID(node)
		entry.Path = append(entry.Path, id)
		nodeCtx, nodeSpan := m.cfg.spans.StartNodeSpan(ctx, id)

		for _, handler := range handlers {
			// A handler stopping propagation takes effect before the
			// next handler at the same node runs.
			if stopped {
				break
			}
			handlerStart := time.Now()
			err := handler(evt)
			m.cfg.metrics.RecordHandler(nodeCtx, evt.Type, id, time.Since(handlerStart), err)
			entry.Handled++
			if err != nil {
				walkErr = err
				m.cfg.spans.EndSpanWithError(nodeSpan, err)
				break walk
			}
		}
		m.cfg.spans.EndSpanWithError(nodeSpan, nil)
	}

	entry.Stopped = stopped
	duration := time.Since(start)

	if walkErr != nil {
		entry.Error = walkErr.Error()
		if m.cfg.onError != nil {
			m.cfg.onError(evt, walkErr)
		}
	}

	m.cfg.metrics.RecordDispatch(ctx, evt.Type, duration, len(entry.Path), stopped, walkErr)
	m.cfg.spans.EndSpanWithError(span, walkErr)
	observability.LogDispatchComplete(logger, float64(duration.Microseconds())/1000.0, len(entry.Path), entry.Handled, stopped, walkErr)

	if m.cfg.journal != nil {
		if err := m.cfg.journal.Append(ctx, entry); err != nil && logger != nil {
			logger.Warn("journal append failed", slog.String("error", err.Error()))
		}
	}

	return walkErr
}
