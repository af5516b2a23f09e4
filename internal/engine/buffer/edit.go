package buffer

import "fmt"

// Change describes one applied edit.
// OldRange is in the coordinates before the edit, NewRange in the
// coordinates after it.
type Change struct {
	OldRange Range
	NewRange Range
	OldText  string
	NewText  string
}

// String returns a human-readable representation of the change.
func (c Change) String() string {
	switch {
	case c.OldText == "":
		return fmt.Sprintf("Insert(%s, %q)", c.OldRange.Start, c.NewText)
	case c.NewText == "":
		return fmt.Sprintf("Delete%s", c.OldRange)
	default:
		return fmt.Sprintf("Replace%s with %q", c.OldRange, c.NewText)
	}
}

// RowDelta returns the number of rows the edit added (positive) or
// removed (negative).
func (c Change) RowDelta() int {
	return c.NewRange.RowSpan() - c.OldRange.RowSpan()
}

// Invert returns the change that undoes c.
func (c Change) Invert() Change {
	return Change{
		OldRange: c.NewRange,
		NewRange: c.OldRange,
		OldText:  c.NewText,
		NewText:  c.OldText,
	}
}

// ChangeEvent is delivered to OnDidChange callbacks.
// Changes are listed in the order they were applied.
type ChangeEvent struct {
	Changes []Change
}

// Write Operations

// SetTextInRange replaces the text in r with text and returns the range
// now covered by text. Points outside the buffer are clipped. Line breaks
// in text take the terminator of the row they are inserted on.
func (b *Buffer) SetTextInRange(r Range, text string) (Range, error) {
	return b.setTextInRange(r, text, true)
}

func (b *Buffer) setTextInRange(r Range, text string, normalize bool) (Range, error) {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return Range{}, ErrDestroyed
	}
	change := b.applyLocked(b.clipRangeLocked(r), text, normalize)
	b.recordLocked(change)
	b.mu.Unlock()

	b.flushIfIdle()
	return change.NewRange, nil
}

// Insert inserts text at p and returns the range covered by text.
func (b *Buffer) Insert(p Point, text string) (Range, error) {
	return b.SetTextInRange(Range{Start: p, End: p}, text)
}

// Delete removes the text in r.
func (b *Buffer) Delete(r Range) error {
	_, err := b.SetTextInRange(r, "")
	return err
}

// Append inserts text at the end of the buffer.
func (b *Buffer) Append(text string) (Range, error) {
	return b.Insert(b.EndPoint(), text)
}

// SetText replaces the whole content of the buffer.
func (b *Buffer) SetText(text string) error {
	_, err := b.SetTextInRange(Range{Start: Point{}, End: b.EndPoint()}, text)
	return err
}

// DeleteRow removes row together with its line break.
func (b *Buffer) DeleteRow(row int) error {
	return b.DeleteRows(row, row)
}

// DeleteRows removes rows start through end (inclusive) together with
// their line breaks. Deleting every row leaves a single empty row.
func (b *Buffer) DeleteRows(start, end int) error {
	if end < start {
		start, end = end, start
	}

	b.mu.RLock()
	last := len(b.lines) - 1
	b.mu.RUnlock()

	if start > last || end < 0 {
		return fmt.Errorf("delete rows %d-%d of %d: %w", start, end, last+1, ErrRangeInvalid)
	}
	if start < 0 {
		start = 0
	}
	if end > last {
		end = last
	}

	var r Range
	switch {
	case end < last:
		r = Range{Start: Point{Row: start}, End: Point{Row: end + 1}}
	case start > 0:
		r = Range{
			Start: Point{Row: start - 1, Column: b.LineLengthForRow(start - 1)},
			End:   Point{Row: end, Column: b.LineLengthForRow(end)},
		}
	default:
		r = Range{Start: Point{}, End: Point{Row: end, Column: b.LineLengthForRow(end)}}
	}
	return b.Delete(r)
}

// Transact runs fn with change notifications deferred. Every edit made by
// fn is delivered in a single ChangeEvent and undone as a single step. If
// fn returns an error, its edits are reverted and the error is returned.
// Transactions nest; only the outermost one delivers the event.
func (b *Buffer) Transact(fn func() error) error {
	b.mu.Lock()
	if b.destroyed {
		b.mu.Unlock()
		return ErrDestroyed
	}
	b.txDepth++
	mark := len(b.pending)
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	if err != nil {
		b.revertLocked(mark)
	}
	b.txDepth--
	b.mu.Unlock()

	b.flushIfIdle()
	return err
}

// applyLocked performs the edit and returns its description (must hold lock).
// With normalize set, line breaks in text are rewritten to the terminator
// of the start row; otherwise they are kept as given.
func (b *Buffer) applyLocked(r Range, text string, normalize bool) Change {
	oldText := b.textInRangeLocked(r)

	prefix := b.lines[r.Start.Row][:r.Start.Column]
	suffix := b.lines[r.End.Row][r.End.Column:]

	inserted, breaks := splitLines(text)
	if normalize && len(breaks) > 0 {
		eol := b.breakForRowLocked(r.Start.Row)
		for i := range breaks {
			breaks[i] = eol
		}
	}
	breaks = append(breaks, b.eols[r.End.Row])
	lastIdx := len(inserted) - 1

	endCol := len(inserted[lastIdx])
	if lastIdx == 0 {
		endCol += len(prefix)
	}

	inserted[0] = prefix + inserted[0]
	inserted[lastIdx] += suffix

	lines := make([]string, 0, len(b.lines)-r.RowSpan()+lastIdx)
	lines = append(lines, b.lines[:r.Start.Row]...)
	lines = append(lines, inserted...)
	lines = append(lines, b.lines[r.End.Row+1:]...)

	eols := make([]string, 0, len(lines))
	eols = append(eols, b.eols[:r.Start.Row]...)
	eols = append(eols, breaks...)
	eols = append(eols, b.eols[r.End.Row+1:]...)

	b.lines, b.eols = lines, eols
	b.version++

	newRange := Range{Start: r.Start, End: Point{Row: r.Start.Row + lastIdx, Column: endCol}}
	return Change{
		OldRange: r,
		NewRange: newRange,
		OldText:  oldText,
		NewText:  b.textInRangeLocked(newRange),
	}
}

// recordLocked queues a change for notification and history (must hold lock).
func (b *Buffer) recordLocked(c Change) {
	b.pending = append(b.pending, c)
}

// revertLocked undoes pending changes recorded after mark (must hold lock).
func (b *Buffer) revertLocked(mark int) {
	for i := len(b.pending) - 1; i >= mark; i-- {
		inv := b.pending[i].Invert()
		b.applyLocked(inv.OldRange, inv.NewText, false)
	}
	b.pending = b.pending[:mark]
}

// flushIfIdle delivers queued changes once no transaction is open.
func (b *Buffer) flushIfIdle() {
	b.mu.Lock()
	if b.txDepth > 0 || len(b.pending) == 0 {
		b.mu.Unlock()
		return
	}
	changes := b.pending
	b.pending = nil
	b.history.push(changes)
	b.mu.Unlock()

	b.didChange.Emit(ChangeEvent{Changes: changes})
}
