// Package event provides the synchronous callback plumbing shared by the
// buffer, editor, workspace and configuration layers.
//
// Every observable value exposes an Emitter. Registering a callback with On
// returns a Subscription; disposing the subscription detaches the callback.
// Callbacks run on the emitting goroutine, in registration order, and run to
// completion before Emit returns:
//
//	var changed event.Emitter[buffer.ChangeEvent]
//
//	sub := changed.On(func(ev buffer.ChangeEvent) {
//	    fmt.Println(len(ev.Changes), "edits")
//	})
//	defer sub.Dispose()
//
//	changed.Emit(ev)
//
// A CompositeDisposable collects the subscriptions owned by one component so
// they can be released together, typically when an editor is destroyed.
package event
