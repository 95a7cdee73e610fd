package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
)

func TestNoopMetrics_DoesNothing(t *testing.T) {
	m := NoopMetrics{}

	t.Run("does not panic with valid args", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordDispatch(context.Background(), "tap", time.Millisecond, 2, false, nil)
			m.RecordHandler(context.Background(), "tap", "button", time.Millisecond, nil)
		})
	})

	t.Run("does not panic with error", func(t *testing.T) {
		assert.NotPanics(t, func() {
			m.RecordDispatch(context.Background(), "tap", 0, 0, true, errors.New("test"))
			m.RecordHandler(context.Background(), "", "", 0, errors.New("test"))
		})
	})
}

func TestNoopSpanManager_DoesNothing(t *testing.T) {
	m := NoopSpanManager{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		spanCtx, span := m.StartDispatchSpan(ctx, "tap", "button")
		assert.Equal(t, ctx, spanCtx)

		nodeCtx, nodeSpan := m.StartNodeSpan(ctx, "button")
		assert.Equal(t, ctx, nodeCtx)

		m.EndSpanWithError(span, errors.New("ignored"))
		m.EndSpanWithError(nodeSpan, nil)
		m.AddSpanEvent(ctx, "ignored", attribute.String("k", "v"))
	})
}
