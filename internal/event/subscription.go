package event

import "sync"

// Subscription is a handle to a registered callback.
// Dispose detaches the callback; calling it more than once is harmless.
type Subscription interface {
	Dispose()
}

// SubscriptionFunc adapts a plain function into a Subscription.
// The function runs at most once.
type SubscriptionFunc struct {
	once sync.Once
	fn   func()
}

// NewSubscription returns a Subscription that runs fn on the first Dispose.
func NewSubscription(fn func()) *SubscriptionFunc {
	return &SubscriptionFunc{fn: fn}
}

// Dispose implements Subscription.
func (s *SubscriptionFunc) Dispose() {
	s.once.Do(func() {
		if s.fn != nil {
			s.fn()
		}
	})
}

// CompositeDisposable groups subscriptions that share a lifetime.
type CompositeDisposable struct {
	mu       sync.Mutex
	subs     []Subscription
	disposed bool
}

// NewCompositeDisposable creates a composite holding the given subscriptions.
func NewCompositeDisposable(subs ...Subscription) *CompositeDisposable {
	c := &CompositeDisposable{}
	for _, s := range subs {
		_ = c.Add(s)
	}
	return c
}

// Add appends subscriptions to the composite. Once the composite has been
// disposed, the subscriptions are disposed immediately and ErrDisposed is
// returned.
func (c *CompositeDisposable) Add(subs ...Subscription) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		for _, s := range subs {
			if s != nil {
				s.Dispose()
			}
		}
		return ErrDisposed
	}
	for _, s := range subs {
		if s != nil {
			c.subs = append(c.subs, s)
		}
	}
	c.mu.Unlock()
	return nil
}

// Remove detaches sub from the composite without disposing it.
// Reports whether sub was present.
func (c *CompositeDisposable) Remove(sub Subscription) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, s := range c.subs {
		if s == sub {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of held subscriptions.
func (c *CompositeDisposable) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Disposed reports whether Dispose has been called.
func (c *CompositeDisposable) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Dispose disposes every held subscription, most recent first.
func (c *CompositeDisposable) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].Dispose()
	}
}
