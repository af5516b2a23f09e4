package event

import (
	"sync"
	"sync/atomic"
)

// Emitter delivers values of type T to registered callbacks.
// The zero value is ready to use.
type Emitter[T any] struct {
	mu       sync.Mutex
	handlers []*handlerEntry[T]
}

type handlerEntry[T any] struct {
	fn     func(T)
	active atomic.Bool
}

// On registers fn and returns the Subscription that removes it.
func (e *Emitter[T]) On(fn func(T)) Subscription {
	entry := &handlerEntry[T]{fn: fn}
	entry.active.Store(true)

	e.mu.Lock()
	e.handlers = append(e.handlers, entry)
	e.mu.Unlock()

	return NewSubscription(func() {
		entry.active.Store(false)
		e.remove(entry)
	})
}

// Emit calls every registered callback with v, in registration order.
// Callbacks registered during Emit are not called for v; callbacks disposed
// during Emit are skipped if they have not run yet.
func (e *Emitter[T]) Emit(v T) {
	e.mu.Lock()
	handlers := make([]*handlerEntry[T], len(e.handlers))
	copy(handlers, e.handlers)
	e.mu.Unlock()

	for _, h := range handlers {
		if h.active.Load() {
			h.fn(v)
		}
	}
}

// Count returns the number of registered callbacks.
func (e *Emitter[T]) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}

// Clear removes every callback.
func (e *Emitter[T]) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, h := range e.handlers {
		h.active.Store(false)
	}
	e.handlers = nil
}

func (e *Emitter[T]) remove(entry *handlerEntry[T]) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, h := range e.handlers {
		if h == entry {
			e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
			return
		}
	}
}
