package rowtrack

import (
	"sync"

	"github.com/rs/zerolog"
)

// Cleaner is the view of an editor needed to clean a drained row.
type Cleaner interface {
	LineLengthForRow(row int) int
	IsRowBlank(row int) bool
	SetIndentationForBufferRow(row, level int) error
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for debug output.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Registry) {
		r.log = log
	}
}

// Registry maps editor identities to their tracked rows.
type Registry struct {
	mu       sync.Mutex
	trackers map[string]*RowSet
	draining int

	log zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		trackers: make(map[string]*RowSet),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Tracker returns the set for id, creating an empty one if needed.
func (r *Registry) Tracker(id string) *RowSet {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trackerLocked(id)
}

func (r *Registry) trackerLocked(id string) *RowSet {
	s, ok := r.trackers[id]
	if !ok {
		s = NewRowSet()
		r.trackers[id] = s
	}
	return s
}

// Add records row for id. Rows already tracked are ignored.
func (r *Registry) Add(id string, row int) {
	r.mu.Lock()
	added := r.trackerLocked(id).Add(row)
	r.mu.Unlock()

	if added {
		r.log.Debug().Str("editor", id).Int("row", row).Msg("track row")
	}
}

// Renumber shifts the rows of id greater than pivot by delta.
func (r *Registry) Renumber(id string, pivot, delta int) {
	r.mu.Lock()
	dropped := r.trackerLocked(id).Renumber(pivot, delta)
	r.mu.Unlock()

	if dropped > 0 {
		r.log.Debug().Str("editor", id).Int("pivot", pivot).Int("delta", delta).
			Int("dropped", dropped).Msg("renumber dropped rows")
	}
}

// Rows returns a snapshot of the rows tracked for id.
func (r *Registry) Rows(id string) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.trackers[id]; ok {
		return s.Rows()
	}
	return nil
}

// Len returns the number of editors with a tracker.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trackers)
}

// Remove drops the tracker for id. It is a no-op for unknown ids.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.trackers, id)
	r.mu.Unlock()
}

// Draining reports whether a DrainAndClean pass is running.
func (r *Registry) Draining() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draining > 0
}

// DrainAndClean empties the set for id, most recent row first, and resets
// the indentation of every row that still has content made only of
// whitespace. Empty rows, rows with other content and rows past the end of
// the buffer are skipped. Rows added while the pass runs stay tracked.
func (r *Registry) DrainAndClean(id string, c Cleaner) {
	r.mu.Lock()
	r.draining++
	rows := r.trackerLocked(id).take()
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		r.draining--
		r.mu.Unlock()
	}()

	for i := len(rows) - 1; i >= 0; i-- {
		row := rows[i]
		if c.LineLengthForRow(row) == 0 || !c.IsRowBlank(row) {
			continue
		}
		if err := c.SetIndentationForBufferRow(row, 0); err != nil {
			r.log.Warn().Err(err).Str("editor", id).Int("row", row).Msg("clean row")
			continue
		}
		r.log.Debug().Str("editor", id).Int("row", row).Msg("cleaned row")
	}
}
