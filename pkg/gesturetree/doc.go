/*
Package gesturetree adds tree-structured event propagation to gesture
engines that otherwise deliver recognized events only to the single
element they are bound to.

A gesture engine recognizes gestures on one element and fires typed
events there. Applications usually want those events to bubble from the
originating element up through its ancestors, the way native DOM events
do, including the ability for a handler to stop further propagation.
gesturetree wraps an engine instance and provides exactly that.

# Basic Usage

Wrap an engine bound to an element, then register handlers:

	root := gesturetree.NewElement("root", nil)
	panel := gesturetree.NewElement("panel", root)
	button := gesturetree.NewElement("button", panel)

	mgr, err := gesturetree.Wrap(engine) // engine bound to panel
	if err != nil {
	    log.Fatal(err)
	}
	defer mgr.Destroy()

	mgr.On("tap press", func(evt *gesturetree.Event) error {
	    fmt.Println("tapped", evt.Type)
	    return nil
	})

When the engine fires a "tap" whose target is button, the event walks
from button up through panel and root, invoking the handlers registered
for "tap" at each element along the way.

# Stopping Propagation

A handler can stop the walk:

	mgr.On("tap", func(evt *gesturetree.Event) error {
	    evt.StopPropagation()
	    return nil
	})

No handler at a farther ancestor runs, and no later handler at the same
element runs either. StopPropagation is scoped to the firing; calling it
after the walk has finished has no effect.

# De-duplication

Engines bound to different elements on the same ancestor path may all
observe the same physical input. Every fired event carries a
SourceEvent identifying that input occurrence; the first dispatcher to
process it marks it handled, and every later firing for the same source
returns without walking. The full handler chain runs exactly once per
physical input.

# Binding Table

Managers discover each other through a Bindings table mapping elements
to managers. By default all managers share DefaultBindings; pass
WithBindings to isolate a tree (useful in tests).

# Observability

Structured logging (log/slog), tracing, and metrics (OpenTelemetry) are
opt-in via options:

	mgr, err := gesturetree.Wrap(engine,
	    gesturetree.WithLogger(logger),
	    gesturetree.WithSpans(observability.NewSpanManager()),
	    gesturetree.WithJournal(store),
	)

All observability features default to no-ops.
*/
package gesturetree
