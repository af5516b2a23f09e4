package dispatcher

import (
	"cmp"
	"maps"
	"slices"
	"sync"
)

// Registry maps command names to their handlers, highest priority first.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string][]Handler)}
}

// Register adds h for name. Handlers of equal priority keep registration
// order.
func (r *Registry) Register(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handlers := append(r.handlers[name], h)
	slices.SortStableFunc(handlers, func(a, b Handler) int {
		return cmp.Compare(b.Priority(), a.Priority())
	})
	r.handlers[name] = handlers
}

// Unregister removes every handler for name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.handlers, name)
}

// UnregisterHandler removes h from name. The name is forgotten once its
// last handler is gone.
func (r *Registry) UnregisterHandler(name string, h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	handlers := slices.DeleteFunc(r.handlers[name], func(existing Handler) bool {
		return existing == h
	})
	if len(handlers) == 0 {
		delete(r.handlers, name)
		return
	}
	r.handlers[name] = handlers
}

// Get returns the handler that runs for name, or nil.
func (r *Registry) Get(name string) Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if handlers := r.handlers[name]; len(handlers) > 0 {
		return handlers[0]
	}
	return nil
}

// GetAll returns every handler for name in priority order.
func (r *Registry) GetAll(name string) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.handlers[name])
}

// Has reports whether name has a handler.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers[name]) > 0
}

// List returns the registered command names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.handlers))
}

// Count returns the number of registered command names.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

// Clear removes every handler.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.handlers)
}
