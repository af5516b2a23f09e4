package rowtrack

// RowSet is an ordered set of row indices. Rows keep their insertion order
// and appear at most once.
type RowSet struct {
	rows []int
}

// NewRowSet returns a set holding rows, skipping duplicates and negatives.
func NewRowSet(rows ...int) *RowSet {
	s := &RowSet{}
	for _, r := range rows {
		s.Add(r)
	}
	return s
}

// Add appends row unless it is already present or negative.
// It reports whether the set changed.
func (s *RowSet) Add(row int) bool {
	if row < 0 || s.Contains(row) {
		return false
	}
	s.rows = append(s.rows, row)
	return true
}

// Contains reports whether row is in the set.
func (s *RowSet) Contains(row int) bool {
	for _, r := range s.rows {
		if r == row {
			return true
		}
	}
	return false
}

// Renumber shifts every row greater than pivot by delta. Rows that would
// become negative are dropped, and a row shifted onto one already kept is
// dropped as well. Order is preserved. It returns the number of rows dropped.
func (s *RowSet) Renumber(pivot, delta int) int {
	if delta == 0 || len(s.rows) == 0 {
		return 0
	}

	out := make([]int, 0, len(s.rows))
	seen := make(map[int]struct{}, len(s.rows))
	for _, r := range s.rows {
		if r > pivot {
			r += delta
		}
		if r < 0 {
			continue
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}

	dropped := len(s.rows) - len(out)
	s.rows = out
	return dropped
}

// Len returns the number of tracked rows.
func (s *RowSet) Len() int {
	return len(s.rows)
}

// Rows returns a copy of the tracked rows in insertion order.
func (s *RowSet) Rows() []int {
	out := make([]int, len(s.rows))
	copy(out, s.rows)
	return out
}

// take empties the set and returns its former contents.
func (s *RowSet) take() []int {
	rows := s.rows
	s.rows = nil
	return rows
}
