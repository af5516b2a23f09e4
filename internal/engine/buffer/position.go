package buffer

import "fmt"

// Point represents a row and column position.
// Both Row and Column are 0-indexed.
// Column is measured in bytes from the start of the row.
type Point struct {
	Row    int
	Column int
}

// NewPoint creates a Point.
func NewPoint(row, column int) Point {
	return Point{Row: row, Column: column}
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Row < other.Row {
		return -1
	}
	if p.Row > other.Row {
		return 1
	}
	if p.Column < other.Column {
		return -1
	}
	if p.Column > other.Column {
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// Range represents a span of the buffer.
// Start is inclusive, End is exclusive: [Start, End).
type Range struct {
	Start Point
	End   Point
}

// NewRange creates a new Range from two points, ordering them.
func NewRange(a, b Point) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// RowRange returns the single-row range [startColumn, endColumn) on row.
func RowRange(row, startColumn, endColumn int) Range {
	return Range{Start: Point{Row: row, Column: startColumn}, End: Point{Row: row, Column: endColumn}}
}

// String returns a human-readable representation of the range.
func (r Range) String() string {
	return fmt.Sprintf("[%s-%s)", r.Start, r.End)
}

// IsEmpty returns true if start equals end.
func (r Range) IsEmpty() bool {
	return r.Start.Compare(r.End) == 0
}

// RowSpan returns the number of line breaks inside the range.
func (r Range) RowSpan() int {
	return r.End.Row - r.Start.Row
}

// Contains returns true if the given point is within the range.
func (r Range) Contains(p Point) bool {
	return p.Compare(r.Start) >= 0 && p.Compare(r.End) < 0
}

// Normalize returns the range with Start <= End.
func (r Range) Normalize() Range {
	return NewRange(r.Start, r.End)
}
