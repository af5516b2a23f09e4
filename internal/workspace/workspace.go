// Package workspace tracks the open editors and which one has focus.
package workspace

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dshills/whitespace/internal/engine"
	"github.com/dshills/whitespace/internal/engine/buffer"
	"github.com/dshills/whitespace/internal/event"
)

// Common errors.
var (
	ErrEditorNotFound  = errors.New("editor not open in workspace")
	ErrWorkspaceClosed = errors.New("workspace is closed")
)

// Option configures a Workspace.
type Option func(*Workspace)

// WithEditorOptions sets options applied to every editor the workspace
// creates.
func WithEditorOptions(opts ...engine.Option) Option {
	return func(w *Workspace) {
		w.editorOpts = append(w.editorOpts, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option {
	return func(w *Workspace) {
		w.log = log
	}
}

// Workspace holds the open editors in the order they were opened. Editors
// opened on the same path share one buffer.
type Workspace struct {
	mu      sync.RWMutex
	editors []*engine.Editor
	buffers map[string]*buffer.Buffer // abs path -> buffer
	active  *engine.Editor
	closed  bool

	editorOpts []engine.Option
	log        zerolog.Logger

	didAddEditor event.Emitter[*engine.Editor]
}

// New creates an empty workspace.
func New(opts ...Option) *Workspace {
	w := &Workspace{
		buffers: make(map[string]*buffer.Buffer),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Open returns the editor for path, reading the file if it is not open
// yet. The editor becomes active.
func (w *Workspace) Open(path string) (*engine.Editor, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil, ErrWorkspaceClosed
	}
	if ed := w.focusPathLocked(absPath); ed != nil {
		w.mu.Unlock()
		return ed, nil
	}
	w.mu.Unlock()

	buf, err := buffer.Open(absPath)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		buf.Destroy()
		return nil, ErrWorkspaceClosed
	}
	// Another Open may have loaded the file while it was read.
	if ed := w.focusPathLocked(absPath); ed != nil {
		w.mu.Unlock()
		buf.Destroy()
		return ed, nil
	}
	w.buffers[absPath] = buf
	ed := w.addLocked(buf)
	w.mu.Unlock()

	w.didAddEditor.Emit(ed)
	w.log.Debug().Str("path", absPath).Str("editor", ed.ID()).Msg("opened file")
	return ed, nil
}

// focusPathLocked focuses and returns an editor showing absPath, or nil
// when the file is not open (must hold lock).
func (w *Workspace) focusPathLocked(absPath string) *engine.Editor {
	buf, ok := w.buffers[absPath]
	if !ok {
		return nil
	}
	for _, ed := range w.editors {
		if ed.Buffer() == buf {
			w.active = ed
			return ed
		}
	}
	return nil
}

// OpenText opens an editor over an unsaved buffer holding text.
func (w *Workspace) OpenText(text string) *engine.Editor {
	return w.add(buffer.NewBufferFromString(text))
}

// Split opens another editor over the buffer of ed, as a split pane does.
func (w *Workspace) Split(ed *engine.Editor) (*engine.Editor, error) {
	if !w.contains(ed) {
		return nil, ErrEditorNotFound
	}
	return w.add(ed.Buffer()), nil
}

func (w *Workspace) add(buf *buffer.Buffer) *engine.Editor {
	w.mu.Lock()
	ed := w.addLocked(buf)
	w.mu.Unlock()

	w.didAddEditor.Emit(ed)
	return ed
}

// addLocked creates a focused editor over buf (must hold lock).
func (w *Workspace) addLocked(buf *buffer.Buffer) *engine.Editor {
	ed := engine.New(buf, w.editorOpts...)
	w.editors = append(w.editors, ed)
	w.active = ed
	return ed
}

func (w *Workspace) contains(ed *engine.Editor) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Contains(w.editors, ed)
}

// ActiveEditor returns the editor with focus, or nil when none is open.
func (w *Workspace) ActiveEditor() *engine.Editor {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.active
}

// SetActive gives focus to ed.
func (w *Workspace) SetActive(ed *engine.Editor) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !slices.Contains(w.editors, ed) {
		return ErrEditorNotFound
	}
	w.active = ed
	return nil
}

// Editors returns the open editors in open order.
func (w *Workspace) Editors() []*engine.Editor {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return slices.Clone(w.editors)
}

// Count returns the number of open editors.
func (w *Workspace) Count() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.editors)
}

// ObserveTextEditors calls fn for every open editor now and for every
// editor opened later, until the subscription is disposed.
func (w *Workspace) ObserveTextEditors(fn func(*engine.Editor)) event.Subscription {
	sub := w.didAddEditor.On(fn)
	for _, ed := range w.Editors() {
		fn(ed)
	}
	return sub
}

// Close destroys ed. The buffer is destroyed with its last editor. Focus
// moves to the most recently opened remaining editor.
func (w *Workspace) Close(ed *engine.Editor) error {
	w.mu.Lock()
	i := slices.Index(w.editors, ed)
	if i < 0 {
		w.mu.Unlock()
		return fmt.Errorf("close %s: %w", ed.ID(), ErrEditorNotFound)
	}
	w.editors = slices.Delete(w.editors, i, i+1)
	if w.active == ed {
		w.active = nil
		if n := len(w.editors); n > 0 {
			w.active = w.editors[n-1]
		}
	}

	buf := ed.Buffer()
	shared := slices.ContainsFunc(w.editors, func(other *engine.Editor) bool {
		return other.Buffer() == buf
	})
	if !shared {
		for path, b := range w.buffers {
			if b == buf {
				delete(w.buffers, path)
			}
		}
	}
	w.mu.Unlock()

	ed.Destroy()
	if !shared {
		buf.Destroy()
	}
	w.log.Debug().Str("editor", ed.ID()).Bool("buffer_destroyed", !shared).Msg("closed editor")
	return nil
}

// CloseAll closes every editor and rejects further opens.
func (w *Workspace) CloseAll() {
	for _, ed := range w.Editors() {
		_ = w.Close(ed)
	}

	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
	w.didAddEditor.Clear()
}
