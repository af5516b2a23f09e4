package event

import "errors"

// ErrDisposed is returned when adding to a CompositeDisposable that has
// already been disposed.
var ErrDisposed = errors.New("event: already disposed")
