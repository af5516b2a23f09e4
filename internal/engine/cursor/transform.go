package cursor

import "github.com/dshills/whitespace/internal/engine/buffer"

// TransformPoint returns where p ends up after change is applied.
//
// Transformation rules:
//   - Before the edit: unchanged
//   - At or after the edit's end: shifted by the edit, keeping its
//     distance from the end when on the same row
//   - Inside the edit: moved to the end of the new text
func TransformPoint(p Point, change buffer.Change) Point {
	old, cur := change.OldRange, change.NewRange

	if p.Before(old.Start) {
		return p
	}
	if !p.Before(old.End) {
		if p.Row == old.End.Row {
			return Point{Row: cur.End.Row, Column: cur.End.Column + p.Column - old.End.Column}
		}
		return Point{Row: p.Row + change.RowDelta(), Column: p.Column}
	}
	return cur.End
}

// TransformSelection updates a selection after an edit.
// Both anchor and head are transformed independently.
func TransformSelection(sel Selection, change buffer.Change) Selection {
	return Selection{
		Anchor: TransformPoint(sel.Anchor, change),
		Head:   TransformPoint(sel.Head, change),
	}
}

// TransformCursorSet updates every selection in cs after the changes of
// one batch, applied in order.
func TransformCursorSet(cs *CursorSet, changes ...buffer.Change) {
	cs.MapInPlace(func(sel Selection) Selection {
		for _, c := range changes {
			sel = TransformSelection(sel, c)
		}
		return sel
	})
}
