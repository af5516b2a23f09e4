// Package buffer provides the row-addressed text buffer that backs every
// open editor.
//
// Text is stored as a slice of lines, each with the terminator it was read
// with, so files with mixed line endings are written back as they were.
// Line breaks inserted by an edit take the terminator of the row they land
// on. All positions are Points: a zero-based row and a zero-based byte
// column.
//
// The buffer package provides:
//
//   - Row queries: LineForRow, LineLengthForRow, IsRowBlank, LastRow
//   - Range edits: SetTextInRange, Insert, Delete, DeleteRow, Append
//   - Transactions that batch change notifications and form one undo step
//   - Line-based regular expression search (FindAll) and replace (Scan)
//   - Change, will-save, did-save and destroy notifications
//
// Basic usage:
//
//	buf := buffer.NewBufferFromString("hello  \nworld")
//
//	sub := buf.OnDidChange(func(ev buffer.ChangeEvent) {
//	    for _, c := range ev.Changes {
//	        fmt.Println(c.OldRange, "->", c.NewRange)
//	    }
//	})
//	defer sub.Dispose()
//
//	_ = buf.Transact(func() error {
//	    for _, r := range buf.FindAll(regexp.MustCompile(`[ \t]+$`)) {
//	        if err := buf.Delete(r); err != nil {
//	            return err
//	        }
//	    }
//	    return nil
//	})
//
// Change notifications are delivered synchronously. Edits made outside a
// transaction are reported one at a time; edits made inside Transact are
// reported together when the outermost transaction finishes.
//
// Thread Safety:
//
// Buffer methods are safe for concurrent use. Callbacks are invoked without
// any buffer lock held, so they may read and edit the buffer.
package buffer
