package rowtrack

import (
	"sort"

	"github.com/dshills/whitespace/internal/engine/buffer"
)

// Adjustment says that rows greater than Row shift by Delta.
type Adjustment struct {
	Row   int
	Delta int
}

// Classify converts a batch of changes into adjustments ordered from the
// highest row to the lowest. Changes with equal rows keep their batch order.
// Changes that leave the row count alone still produce an adjustment with a
// zero delta.
func Classify(changes []buffer.Change) []Adjustment {
	adjs := make([]Adjustment, 0, len(changes))
	for _, c := range changes {
		adjs = append(adjs, Adjustment{
			Row:   c.NewRange.Start.Row,
			Delta: c.RowDelta(),
		})
	}

	sort.SliceStable(adjs, func(i, j int) bool {
		return adjs[i].Row > adjs[j].Row
	})
	return adjs
}
