package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/whitespace/internal/engine/buffer"
)

func pt(row, col int) Point { return buffer.NewPoint(row, col) }

func TestSelection_Bounds(t *testing.T) {
	s := NewSelection(pt(3, 1), pt(1, 4))

	assert.True(t, s.IsBackward())
	assert.Equal(t, pt(1, 4), s.Start())
	assert.Equal(t, pt(3, 1), s.End())
	assert.Equal(t, Range{Start: pt(1, 4), End: pt(3, 1)}, s.Range())
	assert.False(t, s.IsEmpty())
	assert.True(t, s.Collapse().IsEmpty())
	assert.Equal(t, pt(1, 4), s.Collapse().Head)
}

func TestSelection_Merge(t *testing.T) {
	a := NewSelection(pt(0, 0), pt(0, 5))
	b := NewSelection(pt(0, 9), pt(0, 3))

	assert.True(t, a.Touches(b))
	assert.Equal(t, NewSelection(pt(0, 0), pt(0, 9)), a.Merge(b))
}

func TestCursorSet_SortsAndMerges(t *testing.T) {
	cs := NewCursorSetAt(pt(5, 0))
	cs.Add(NewCursorSelection(pt(1, 2)))
	cs.Add(NewCursorSelection(pt(5, 0)))
	cs.Add(NewSelection(pt(2, 0), pt(3, 0)))
	cs.Add(NewCursorSelection(pt(2, 4)))

	assert.Equal(t, 3, cs.Count())
	assert.Equal(t, []Point{pt(1, 2), pt(3, 0), pt(5, 0)}, cs.Heads())
	assert.Equal(t, pt(1, 2), cs.Primary().Head)
	assert.True(t, cs.HasSelection())

	cs.Clear()
	assert.Equal(t, 1, cs.Count())
	assert.Equal(t, Selection{}, cs.Get(4))
}

func TestTransformPoint(t *testing.T) {
	insertNewline := buffer.Change{
		OldRange: buffer.RowRange(2, 3, 3),
		NewRange: buffer.Range{Start: pt(2, 3), End: pt(3, 2)},
		NewText:  "\n  ",
	}
	joinRows := buffer.Change{
		OldRange: buffer.Range{Start: pt(1, 4), End: pt(3, 0)},
		NewRange: buffer.RowRange(1, 4, 4),
		OldText:  "\nfoo\n",
	}

	tests := []struct {
		name   string
		p      Point
		change buffer.Change
		want   Point
	}{
		{"before edit", pt(2, 1), insertNewline, pt(2, 1)},
		{"at insertion", pt(2, 3), insertNewline, pt(3, 2)},
		{"after on same row", pt(2, 7), insertNewline, pt(3, 6)},
		{"later row", pt(6, 1), insertNewline, pt(7, 1)},
		{"inside deletion", pt(2, 1), joinRows, pt(1, 4)},
		{"end row of deletion", pt(3, 2), joinRows, pt(1, 6)},
		{"below deletion", pt(5, 0), joinRows, pt(3, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TransformPoint(tt.p, tt.change))
		})
	}
}

func TestTransformCursorSet(t *testing.T) {
	cs := NewCursorSetAt(pt(4, 0))
	cs.Add(NewCursorSelection(pt(0, 0)))

	TransformCursorSet(cs,
		buffer.Change{
			OldRange: buffer.RowRange(1, 0, 0),
			NewRange: buffer.Range{Start: pt(1, 0), End: pt(3, 0)},
			NewText:  "\n\n",
		},
		buffer.Change{
			OldRange: buffer.Range{Start: pt(5, 0), End: pt(6, 0)},
			NewRange: buffer.RowRange(5, 0, 0),
			OldText:  "x\n",
		},
	)

	assert.Equal(t, []Point{pt(0, 0), pt(5, 0)}, cs.Heads())
}

func TestCursorSet_SetAll(t *testing.T) {
	cs := NewCursorSetAt(pt(0, 0))

	cs.SetAll([]Selection{NewCursorSelection(pt(4, 1)), NewCursorSelection(pt(2, 0))})
	assert.Equal(t, []Point{pt(2, 0), pt(4, 1)}, cs.Heads())

	cs.SetAll(nil)
	assert.Equal(t, []Point{pt(0, 0)}, cs.Heads())
}
