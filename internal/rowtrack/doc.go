// Package rowtrack remembers buffer rows that were blank when last observed
// and clears the indentation left on them once they are still blank after
// the next edit.
//
// # Components
//
//   - [RowSet]: ordered, duplicate-free set of row indices for one editor
//   - [Registry]: editor identity to RowSet, plus the drain latch
//   - [Classify]: turns a batch of buffer changes into row adjustments
//
// # Flow
//
// Rows are added while the user navigates or is about to type. After every
// buffer change the caller classifies the batch, renumbers the tracked rows
// (highest row first) and drains the set:
//
//	for _, adj := range rowtrack.Classify(ev.Changes) {
//	    reg.Renumber(id, adj.Row, adj.Delta)
//	}
//	reg.DrainAndClean(id, editor)
//
// Draining edits the buffer, which emits another change. Callers check
// [Registry.Draining] first and ignore changes made by the drain itself.
//
// Registry methods are safe for concurrent use. A RowSet obtained from
// [Registry.Tracker] is not, and must only be used from the goroutine that
// handles events for its editor.
package rowtrack
