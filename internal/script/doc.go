// Package script runs Lua scripts against the workspace.
//
// Scripts see a restricted standard library (base, table, string, math)
// and a global ws module:
//
//	ws.open(path)            open a file and focus it; returns the editor id
//	ws.command(name, ...)    dispatch a command
//	ws.text()                active buffer text
//	ws.set_text(s)           replace the active buffer text
//	ws.line(row)             text of row
//	ws.line_count()          number of rows
//	ws.insert(text)          type text at every cursor
//	ws.move_to(row, col)     place the cursor
//	ws.move_up([n])          move cursors up
//	ws.move_down([n])        move cursors down
//	ws.tracked_rows()        rows awaiting cleanup in the active editor
//	ws.set_config(key, v)    set a session setting
//	ws.undo()                undo the last change
//	ws.redo()                reapply the last undone change
//	ws.save()                save the active editor
//
// Rows and columns are zero-based. Functions that need an editor raise a
// Lua error when none is open.
package script
