package engine_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/gesturetree/pkg/gesturetree"
	"github.com/randalmurphal/gesturetree/pkg/gesturetree/engine"
)

func TestEmitterDeliversInOrder(t *testing.T) {
	elem := gesturetree.NewElement("elem", nil)
	emitter := engine.NewEmitter(elem)

	var calls []string
	emitter.On("tap", func(*gesturetree.Event) error {
		calls = append(calls, "first")
		return nil
	})
	emitter.On("tap", func(*gesturetree.Event) error {
		calls = append(calls, "second")
		return nil
	})

	require.NoError(t, emitter.Emit("tap", elem, nil))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestEmitterTypeIsolation(t *testing.T) {
	elem := gesturetree.NewElement("elem", nil)
	emitter := engine.NewEmitter(elem)

	var calls int
	emitter.On("tap", func(*gesturetree.Event) error {
		calls++
		return nil
	})

	require.NoError(t, emitter.Emit("press", elem, nil))
	assert.Zero(t, calls)
}

func TestEmitterNilTargetDefaultsToElement(t *testing.T) {
	elem := gesturetree.NewElement("elem", nil)
	emitter := engine.NewEmitter(elem)

	var target gesturetree.Node
	emitter.On("tap", func(evt *gesturetree.Event) error {
		target = evt.Target
		return nil
	})

	require.NoError(t, emitter.Emit("tap", nil, nil))
	assert.Equal(t, gesturetree.Node(elem), target)
}

func TestEmitterErrorAbortsDelivery(t *testing.T) {
	elem := gesturetree.NewElement("elem", nil)
	emitter := engine.NewEmitter(elem)

	boom := errors.New("boom")
	var calls []string
	emitter.On("tap", func(*gesturetree.Event) error {
		calls = append(calls, "first")
		return boom
	})
	emitter.On("tap", func(*gesturetree.Event) error {
		calls = append(calls, "second")
		return nil
	})

	err := emitter.Emit("tap", elem, nil)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"first"}, calls)
}

func TestEmitterOffByIdentity(t *testing.T) {
	elem := gesturetree.NewElement("elem", nil)
	emitter := engine.NewEmitter(elem)

	var calls []string
	removed := gesturetree.ListenerFunc(func(*gesturetree.Event) error {
		calls = append(calls, "removed")
		return nil
	})
	kept := gesturetree.ListenerFunc(func(*gesturetree.Event) error {
		calls = append(calls, "kept")
		return nil
	})

	emitter.On("tap", removed)
	emitter.On("tap", kept)
	assert.Equal(t, 2, emitter.ListenerCount("tap"))

	emitter.Off("tap", removed)
	assert.Equal(t, 1, emitter.ListenerCount("tap"))

	require.NoError(t, emitter.Emit("tap", elem, nil))
	assert.Equal(t, []string{"kept"}, calls)

	// Removing an unknown listener is a no-op.
	assert.NotPanics(t, func() { emitter.Off("tap", removed) })
	assert.NotPanics(t, func() { emitter.Off("unknown", kept) })
}

func TestEmitterDestroy(t *testing.T) {
	elem := gesturetree.NewElement("elem", nil)
	emitter := engine.NewEmitter(elem)

	var calls int
	emitter.On("tap", func(*gesturetree.Event) error {
		calls++
		return nil
	})

	emitter.Destroy()
	assert.True(t, emitter.Destroyed())
	assert.Equal(t, 0, emitter.ListenerCount("tap"))

	// Registration and delivery after destroy are inert.
	emitter.On("tap", func(*gesturetree.Event) error {
		calls++
		return nil
	})
	require.NoError(t, emitter.Emit("tap", elem, nil))
	assert.Zero(t, calls)
}

func TestEmitterEmitNilEvent(t *testing.T) {
	emitter := engine.NewEmitter(gesturetree.NewElement("elem", nil))
	assert.NoError(t, emitter.EmitEvent(nil))
}
