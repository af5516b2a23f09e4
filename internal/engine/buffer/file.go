package buffer

import (
	"fmt"
	"os"
)

// Open reads the file at path into a new buffer bound to that path.
func Open(path string, opts ...Option) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	opts = append([]Option{WithPath(path)}, opts...)
	return NewBufferFromString(string(data), opts...), nil
}

// Save runs the will-save callbacks and writes the buffer to its path.
func (b *Buffer) Save() error {
	if b.IsDestroyed() {
		return ErrDestroyed
	}
	path := b.Path()
	if path == "" {
		return ErrNoPath
	}

	b.willSave.Emit(b)

	b.mu.Lock()
	text := b.textInRangeLocked(Range{End: b.endPointLocked()})
	version := b.version
	b.mu.Unlock()

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(text), mode); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	b.mu.Lock()
	b.savedVersion = version
	b.mu.Unlock()

	b.didSave.Emit(path)
	return nil
}

// Reload replaces the buffer content with the file on disk, as one undoable
// change that keeps the file's terminators. It is a no-op when the content
// is unchanged.
func (b *Buffer) Reload() error {
	path := b.Path()
	if path == "" {
		return ErrNoPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reload %s: %w", path, err)
	}

	text := string(data)
	if text == b.Text() {
		return nil
	}
	if _, err := b.setTextInRange(Range{End: b.EndPoint()}, text, false); err != nil {
		return err
	}

	b.mu.Lock()
	b.savedVersion = b.version
	b.mu.Unlock()
	return nil
}
