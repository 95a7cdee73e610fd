package gesturetree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/gesturetree/pkg/gesturetree"
	"github.com/randalmurphal/gesturetree/pkg/gesturetree/engine"
)

func newWrapped(t *testing.T, opts ...gesturetree.Option) (*gesturetree.Manager, *engine.Emitter, *gesturetree.Element) {
	t.Helper()

	elem := gesturetree.NewElement("elem", nil)
	emitter := engine.NewEmitter(elem)
	opts = append([]gesturetree.Option{gesturetree.WithBindings(gesturetree.NewBindings())}, opts...)
	mgr, err := gesturetree.Wrap(emitter, opts...)
	require.NoError(t, err)
	return mgr, emitter, elem
}

func TestWrapValidation(t *testing.T) {
	t.Run("nil engine", func(t *testing.T) {
		_, err := gesturetree.Wrap(nil)
		assert.ErrorIs(t, err, gesturetree.ErrNilEngine)
	})

	t.Run("nil element", func(t *testing.T) {
		_, err := gesturetree.Wrap(engine.NewEmitter(nil))
		assert.ErrorIs(t, err, gesturetree.ErrNilElement)
	})

	t.Run("double wrap", func(t *testing.T) {
		bindings := gesturetree.NewBindings()
		elem := gesturetree.NewElement("elem", nil)
		emitter := engine.NewEmitter(elem)

		_, err := gesturetree.Wrap(emitter, gesturetree.WithBindings(bindings))
		require.NoError(t, err)

		_, err = gesturetree.Wrap(emitter, gesturetree.WithBindings(bindings))
		assert.ErrorIs(t, err, gesturetree.ErrAlreadyBound)
	})

	t.Run("element accessors", func(t *testing.T) {
		mgr, emitter, elem := newWrapped(t)
		assert.Same(t, elem, mgr.Element())
		assert.Same(t, emitter, mgr.Engine())
	})
}

func TestOnSplitsEventTypes(t *testing.T) {
	mgr, emitter, elem := newWrapped(t)

	var calls []string
	ret := mgr.On("  tap   press\tswipe  ", func(evt *gesturetree.Event) error {
		calls = append(calls, evt.Type)
		return nil
	})
	assert.Same(t, mgr, ret, "On returns the manager for chaining")

	for _, eventType := range []string{"tap", "press", "swipe"} {
		require.NoError(t, emitter.Emit(eventType, elem, gesturetree.NewSourceEvent("touch")))
	}
	assert.Equal(t, []string{"tap", "press", "swipe"}, calls)
}

func TestOnEmptyStringRegistersNothing(t *testing.T) {
	mgr, emitter, _ := newWrapped(t)

	mgr.On("", func(*gesturetree.Event) error { return nil })
	mgr.On("   \t  ", func(*gesturetree.Event) error { return nil })
	mgr.On("tap", nil)

	assert.Equal(t, 0, emitter.ListenerCount("tap"))
}

func TestOnInstallsSingleEngineListenerPerType(t *testing.T) {
	mgr, emitter, _ := newWrapped(t)

	noop := func(*gesturetree.Event) error { return nil }
	mgr.On("tap", noop)
	mgr.On("tap", noop)
	mgr.On("tap press", noop)

	// Fan-out to handlers is internal; the engine sees one listener per type.
	assert.Equal(t, 1, emitter.ListenerCount("tap"))
	assert.Equal(t, 1, emitter.ListenerCount("press"))
}

func TestOffRemovesOnlyGivenHandler(t *testing.T) {
	mgr, emitter, elem := newWrapped(t)

	var calls []string
	keep := record(&calls, "keep")
	drop := record(&calls, "drop")

	mgr.On("tap", drop).On("tap", keep).On("tap", drop)
	mgr.Off("tap", drop)

	require.NoError(t, emitter.Emit("tap", elem, gesturetree.NewSourceEvent("touch")))
	assert.Equal(t, []string{"keep"}, calls, "all occurrences of drop removed, keep still fires")
	assert.Equal(t, 1, emitter.ListenerCount("tap"))
}

func TestOffLastHandlerUninstallsListener(t *testing.T) {
	mgr, emitter, elem := newWrapped(t)

	var calls []string
	h := record(&calls, "h")
	mgr.On("tap", h)
	mgr.Off("tap", h)

	assert.Equal(t, 0, emitter.ListenerCount("tap"))

	require.NoError(t, emitter.Emit("tap", elem, gesturetree.NewSourceEvent("touch")))
	assert.Empty(t, calls)
}

func TestOffWithoutHandlerClearsType(t *testing.T) {
	mgr, emitter, elem := newWrapped(t)

	var calls []string
	mgr.On("tap", record(&calls, "a")).On("tap", record(&calls, "b"))
	mgr.On("press", record(&calls, "c"))

	mgr.Off("tap")

	assert.Equal(t, 0, emitter.ListenerCount("tap"))
	assert.Equal(t, 1, emitter.ListenerCount("press"))

	require.NoError(t, emitter.Emit("tap", elem, gesturetree.NewSourceEvent("touch")))
	require.NoError(t, emitter.Emit("press", elem, gesturetree.NewSourceEvent("touch")))
	assert.Equal(t, []string{"c"}, calls)
}

func TestOffUnknownTypeIsNoop(t *testing.T) {
	mgr, _, _ := newWrapped(t)

	assert.NotPanics(t, func() {
		mgr.Off("never-registered")
		mgr.Off("")
	})
}

func TestOffThenOnReinstallsListener(t *testing.T) {
	mgr, emitter, elem := newWrapped(t)

	var calls []string
	mgr.On("tap", record(&calls, "a"))
	mgr.Off("tap")
	mgr.On("tap", record(&calls, "b"))

	assert.Equal(t, 1, emitter.ListenerCount("tap"))

	require.NoError(t, emitter.Emit("tap", elem, gesturetree.NewSourceEvent("touch")))
	assert.Equal(t, []string{"b"}, calls)
}

func TestDestroy(t *testing.T) {
	bindings := gesturetree.NewBindings()
	root := gesturetree.NewElement("root", nil)
	child := gesturetree.NewElement("child", root)

	rootEmitter := engine.NewEmitter(root)
	childEmitter := engine.NewEmitter(child)

	rootMgr, err := gesturetree.Wrap(rootEmitter, gesturetree.WithBindings(bindings))
	require.NoError(t, err)
	childMgr, err := gesturetree.Wrap(childEmitter, gesturetree.WithBindings(bindings))
	require.NoError(t, err)

	var calls []string
	rootMgr.On("tap", record(&calls, "root"))
	childMgr.On("tap", record(&calls, "child"))

	rootMgr.Destroy()

	assert.True(t, rootEmitter.Destroyed())
	assert.Equal(t, 0, rootEmitter.ListenerCount("tap"))
	assert.Equal(t, 1, bindings.Len(), "root binding released")

	// A later event targeting a descendant no longer finds the
	// destroyed manager during its walk.
	require.NoError(t, childEmitter.Emit("tap", child, gesturetree.NewSourceEvent("touch")))
	assert.Equal(t, []string{"child"}, calls)

	// Idempotent; registration after destroy is inert.
	assert.NotPanics(t, rootMgr.Destroy)
	rootMgr.On("tap", record(&calls, "late"))
	assert.Equal(t, 0, rootEmitter.ListenerCount("tap"))
}

func TestEventTypeAllowlist(t *testing.T) {
	mgr, emitter, elem := newWrapped(t, gesturetree.WithEventTypes("tap"))

	var calls []string
	mgr.On("tap press", func(evt *gesturetree.Event) error {
		calls = append(calls, evt.Type)
		return nil
	})

	assert.Equal(t, 1, emitter.ListenerCount("tap"))
	assert.Equal(t, 0, emitter.ListenerCount("press"))

	require.NoError(t, emitter.Emit("tap", elem, gesturetree.NewSourceEvent("touch")))
	require.NoError(t, emitter.Emit("press", elem, gesturetree.NewSourceEvent("touch")))
	assert.Equal(t, []string{"tap"}, calls)
}
