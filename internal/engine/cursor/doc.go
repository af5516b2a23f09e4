// Package cursor provides cursor and selection management for text editing.
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text. Positions are buffer.Point values (row and column).
//
// Multi-Cursor Support:
//
// CursorSet manages multiple selections that are:
//   - Kept sorted by position
//   - Automatically merged when overlapping
//   - Transformed together after edits
//
// Basic usage:
//
//	cs := cursor.NewCursorSetAt(buffer.Point{Row: 3})
//	cs.Add(cursor.NewCursorSelection(buffer.Point{Row: 7, Column: 2}))
//
//	// after the buffer reports a change
//	cursor.TransformCursorSet(cs, change)
//
// Thread Safety:
//
// Selection is an immutable value type and safe for concurrent use.
// CursorSet is not thread-safe and should be protected by external
// synchronization if accessed concurrently.
package cursor
