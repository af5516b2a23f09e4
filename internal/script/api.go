package script

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/whitespace/internal/engine"
	"github.com/dshills/whitespace/internal/engine/buffer"
)

func (r *Runner) api() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"open":         r.open,
		"command":      r.command,
		"text":         r.text,
		"set_text":     r.setText,
		"line":         r.line,
		"line_count":   r.lineCount,
		"insert":       r.insert,
		"move_to":      r.moveTo,
		"move_up":      r.moveUp,
		"move_down":    r.moveDown,
		"tracked_rows": r.trackedRows,
		"set_config":   r.setConfig,
		"undo":         r.undo,
		"redo":         r.redo,
		"save":         r.save,
	}
}

// active returns the focused editor or raises ErrNoEditor.
func (r *Runner) active(L *lua.LState) *engine.Editor {
	ed := r.deps.Workspace.ActiveEditor()
	if ed == nil {
		L.RaiseError("%s", ErrNoEditor)
	}
	return ed
}

// check raises err as a Lua error.
func check(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%s", err)
	}
}

func (r *Runner) open(L *lua.LState) int {
	ed, err := r.deps.Workspace.Open(L.CheckString(1))
	check(L, err)
	L.Push(lua.LString(ed.ID()))
	return 1
}

func (r *Runner) command(L *lua.LState) int {
	name := L.CheckString(1)
	args := make([]string, 0, L.GetTop()-1)
	for i := 2; i <= L.GetTop(); i++ {
		args = append(args, L.CheckString(i))
	}
	ctx := L.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	check(L, r.deps.Dispatcher.Dispatch(ctx, name, args...))
	return 0
}

func (r *Runner) text(L *lua.LState) int {
	L.Push(lua.LString(r.active(L).Buffer().Text()))
	return 1
}

func (r *Runner) setText(L *lua.LState) int {
	check(L, r.active(L).Buffer().SetText(L.CheckString(1)))
	return 0
}

func (r *Runner) line(L *lua.LState) int {
	buf := r.active(L).Buffer()
	row := L.CheckInt(1)
	if row < 0 || row > buf.LastRow() {
		L.ArgError(1, "row out of range")
	}
	L.Push(lua.LString(buf.LineForRow(row)))
	return 1
}

func (r *Runner) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(r.active(L).Buffer().LineCount()))
	return 1
}

func (r *Runner) insert(L *lua.LState) int {
	check(L, r.active(L).InsertText(L.CheckString(1)))
	return 0
}

func (r *Runner) moveTo(L *lua.LState) int {
	p := buffer.Point{Row: L.CheckInt(1), Column: L.OptInt(2, 0)}
	r.active(L).SetCursorBufferPosition(p)
	return 0
}

func (r *Runner) moveUp(L *lua.LState) int {
	r.active(L).MoveUp(L.OptInt(1, 1))
	return 0
}

func (r *Runner) moveDown(L *lua.LState) int {
	r.active(L).MoveDown(L.OptInt(1, 1))
	return 0
}

func (r *Runner) trackedRows(L *lua.LState) int {
	rows := r.deps.Whitespace.TrackedRows(r.active(L).ID())
	tbl := L.CreateTable(len(rows), 0)
	for _, row := range rows {
		tbl.Append(lua.LNumber(row))
	}
	L.Push(tbl)
	return 1
}

func (r *Runner) setConfig(L *lua.LState) int {
	key := L.CheckString(1)
	value, ok := toGo(L.CheckAny(2))
	if !ok {
		L.ArgError(2, "unsupported setting type "+L.Get(2).Type().String())
	}
	r.deps.Config.Set(key, value)
	return 0
}

func (r *Runner) undo(L *lua.LState) int {
	L.Push(lua.LBool(r.active(L).Buffer().Undo()))
	return 1
}

func (r *Runner) redo(L *lua.LState) int {
	L.Push(lua.LBool(r.active(L).Buffer().Redo()))
	return 1
}

func (r *Runner) save(L *lua.LState) int {
	check(L, r.active(L).Save())
	return 0
}

// toGo converts a Lua setting value. Integral numbers become int and
// array tables become []any of strings.
func toGo(v lua.LValue) (any, bool) {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val), true
	case lua.LString:
		return string(val), true
	case lua.LNumber:
		f := float64(val)
		if f == float64(int(f)) {
			return int(f), true
		}
		return f, true
	case *lua.LTable:
		out := make([]any, 0, val.Len())
		for i := 1; i <= val.Len(); i++ {
			s, ok := val.RawGetInt(i).(lua.LString)
			if !ok {
				return nil, false
			}
			out = append(out, string(s))
		}
		return out, true
	default:
		return nil, false
	}
}
