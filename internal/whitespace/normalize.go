package whitespace

import (
	"regexp"
	"slices"
	"strings"

	"github.com/dshills/whitespace/internal/config"
	"github.com/dshills/whitespace/internal/engine/buffer"
)

var (
	trailingWhitespace = regexp.MustCompile(`[ \t]+$`)
	leadingTabs        = regexp.MustCompile(`^\t+`)
	anyTab             = regexp.MustCompile(`\t`)
	leadingWhitespace  = regexp.MustCompile(`^[ \t]+`)
	spacesBeforeTab    = regexp.MustCompile(` +\t`)
)

// RemoveTrailingWhitespace deletes runs of spaces and tabs at the end of
// rows, in one transaction. A run is kept when any of these hold, checked
// in order:
//
//   - ignoreWhitespaceOnCurrentLine is on and a cursor of the active editor,
//     which shows the same buffer, is on the row
//   - ignoreWhitespaceOnlyLines is on and the run starts at column 0
//   - the grammar is a Markdown scope, keepMarkdownLineBreakWhitespace is on,
//     and the run starts past column 0 and is at least two characters long
func (w *Whitespace) RemoveTrailingWhitespace(ed Editor) error {
	buf := ed.Buffer()
	scope := ed.Grammar()

	ignoreCurrentLine := w.cfg.Bool(config.KeyIgnoreWhitespaceOnCurrentLine, scope)
	ignoreWhitespaceOnly := w.cfg.Bool(config.KeyIgnoreWhitespaceOnlyLines, scope)
	keepMarkdown := w.isMarkdown(scope) && w.cfg.Bool(config.KeyKeepMarkdownLineBreakWhitespace, scope)
	cursorRows := w.activeCursorRows(buf)

	return buf.Transact(func() error {
		for _, r := range buf.FindAll(trailingWhitespace) {
			start := r.Start.Column
			if ignoreCurrentLine && cursorRows[r.Start.Row] {
				continue
			}
			if ignoreWhitespaceOnly && start == 0 {
				continue
			}
			if keepMarkdown && start > 0 && r.End.Column-start >= 2 {
				continue
			}
			if err := buf.Delete(r); err != nil {
				return err
			}
		}
		return nil
	})
}

// isMarkdown reports whether scope is one of the configured Markdown scopes.
func (w *Whitespace) isMarkdown(scope string) bool {
	return slices.Contains(w.cfg.StringSlice(config.KeyMarkdownScopes, scope), scope)
}

// activeCursorRows returns the cursor rows of the active editor when it
// shows buf.
func (w *Whitespace) activeCursorRows(buf Buffer) map[int]bool {
	rows := make(map[int]bool)
	if w.workspace == nil {
		return rows
	}
	active := w.workspace.ActiveEditor()
	if active == nil || active.Buffer() != buf {
		return rows
	}
	for _, row := range active.CursorRows() {
		rows[row] = true
	}
	return rows
}

// EnsureSingleTrailingNewline leaves the buffer ending in exactly one line
// break. Extra empty rows at the end are deleted, never row 0; a missing
// line break is appended with the selections kept where they were.
func (w *Whitespace) EnsureSingleTrailingNewline(ed Editor) error {
	buf := ed.Buffer()

	return buf.Transact(func() error {
		last := buf.LastRow()
		if buf.LineForRow(last) == "" {
			for row := last - 1; row > 0 && buf.LineForRow(row) == ""; row-- {
				if err := buf.DeleteRow(row); err != nil {
					return err
				}
			}
			return nil
		}

		selected := ed.SelectedBufferRanges()
		if _, err := buf.Append("\n"); err != nil {
			return err
		}
		ed.SetSelectedBufferRanges(selected)
		return nil
	})
}

// ConvertTabsToSpaces replaces tabs with tab-length runs of spaces and
// switches the editor to soft tabs. Only leading tabs are replaced unless
// all is set.
func (w *Whitespace) ConvertTabsToSpaces(ed Editor, all bool) error {
	buf := ed.Buffer()
	spaces := strings.Repeat(" ", ed.TabLength())

	re := leadingTabs
	if all {
		re = anyTab
	}
	err := buf.Transact(func() error {
		return buf.Scan(re, func(m *buffer.ScanMatch) {
			m.Replace(strings.Repeat(spaces, len(m.MatchText)))
		})
	})
	if err != nil {
		return err
	}

	ed.SetSoftTabs(true)
	return nil
}

// ConvertSpacesToTabs replaces every tab-length run of spaces in leading
// whitespace with a tab, drops spaces left in front of a tab and switches
// the editor to hard tabs. When the configured tab length differs from the
// editor's, the editor takes the configured one afterwards.
func (w *Whitespace) ConvertSpacesToTabs(ed Editor) error {
	buf := ed.Buffer()
	fileTabLength := ed.TabLength()
	userTabLength := w.cfg.Int(config.KeyTabLength, ed.Grammar())
	tabRun := strings.Repeat(" ", fileTabLength)

	err := buf.Transact(func() error {
		return buf.Scan(leadingWhitespace, func(m *buffer.ScanMatch) {
			text := strings.ReplaceAll(m.MatchText, tabRun, "\t")
			m.Replace(spacesBeforeTab.ReplaceAllString(text, "\t"))
		})
	})
	if err != nil {
		return err
	}

	ed.SetSoftTabs(false)
	if userTabLength > 0 && fileTabLength != userTabLength {
		ed.SetTabLength(userTabLength)
	}
	return nil
}
