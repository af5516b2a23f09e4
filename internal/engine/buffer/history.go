package buffer

const defaultHistoryLimit = 1000

// history keeps undo and redo groups. Each group holds the changes of one
// transaction (or one standalone edit) in application order.
type history struct {
	undoStack  [][]Change
	redoStack  [][]Change
	maxEntries int
}

// push adds a group to the undo stack and clears the redo stack.
func (h *history) push(group []Change) {
	h.undoStack = append(h.undoStack, group)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// Undo reverts the most recent undo group and reports whether anything was
// undone. It is a no-op inside a transaction.
func (b *Buffer) Undo() bool {
	return b.replay(true)
}

// Redo reapplies the most recently undone group.
func (b *Buffer) Redo() bool {
	return b.replay(false)
}

func (b *Buffer) replay(undo bool) bool {
	b.mu.Lock()
	from, to := &b.history.redoStack, &b.history.undoStack
	if undo {
		from, to = to, from
	}
	if b.destroyed || b.txDepth > 0 || len(*from) == 0 {
		b.mu.Unlock()
		return false
	}

	group := (*from)[len(*from)-1]
	*from = (*from)[:len(*from)-1]

	var changes []Change
	if undo {
		for i := len(group) - 1; i >= 0; i-- {
			inv := group[i].Invert()
			changes = append(changes, b.applyLocked(inv.OldRange, inv.NewText, false))
		}
	} else {
		for _, c := range group {
			changes = append(changes, b.applyLocked(c.OldRange, c.NewText, false))
		}
	}
	*to = append(*to, group)
	b.mu.Unlock()

	b.didChange.Emit(ChangeEvent{Changes: changes})
	return true
}
