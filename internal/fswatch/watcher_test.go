package fswatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, opts ...Option) *Watcher {
	t.Helper()
	w, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestOp(t *testing.T) {
	op := OpWrite | OpRename
	assert.True(t, op.Has(OpWrite))
	assert.False(t, op.Has(OpCreate))
	assert.Equal(t, "WRITE", OpWrite.String())
	assert.Equal(t, "UNKNOWN", op.String())
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	w := newTestWatcher(t)
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	writeFile(t, a, "a")
	writeFile(t, b, "b")

	require.NoError(t, w.Watch(a))
	require.NoError(t, w.Watch(b))
	assert.ErrorIs(t, w.Watch(a), ErrAlreadyWatching)
	assert.ErrorIs(t, w.Watch(filepath.Join(dir, "missing")), ErrPathNotExist)

	assert.True(t, w.IsWatching(a))
	assert.Len(t, w.WatchedPaths(), 2)

	require.NoError(t, w.Unwatch(a))
	assert.ErrorIs(t, w.Unwatch(a), ErrNotWatching)
	assert.False(t, w.IsWatching(a))
	assert.True(t, w.IsWatching(b))
}

func TestWatcher_DeliversWrites(t *testing.T) {
	w := newTestWatcher(t, WithDebounce(0))
	dir := t.TempDir()
	watched := filepath.Join(dir, "watched.txt")
	other := filepath.Join(dir, "other.txt")
	writeFile(t, watched, "")
	writeFile(t, other, "")

	require.NoError(t, w.Watch(watched))
	writeFile(t, other, "ignored")
	writeFile(t, watched, "changed")

	abs, err := filepath.Abs(watched)
	require.NoError(t, err)

	select {
	case ev := <-w.Events():
		assert.Equal(t, abs, ev.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestWatcher_DebounceCoalesces(t *testing.T) {
	w := newTestWatcher(t, WithDebounce(time.Hour))

	w.queue(Event{Path: "/x", Op: OpWrite})
	w.queue(Event{Path: "/x", Op: OpChmod})
	w.queue(Event{Path: "/y", Op: OpCreate})

	assert.Empty(t, w.Events())
	w.Flush()

	got := map[string]Op{}
	for i := 0; i < 2; i++ {
		ev := <-w.Events()
		got[ev.Path] = ev.Op
	}
	assert.Equal(t, map[string]Op{"/x": OpWrite | OpChmod, "/y": OpCreate}, got)
}

func TestWatcher_Filter(t *testing.T) {
	w := newTestWatcher(t, WithDebounce(0), WithEventFilter(func(ev Event) bool {
		return ev.Op.Has(OpWrite)
	}))

	w.queue(Event{Path: "/x", Op: OpChmod})
	w.queue(Event{Path: "/x", Op: OpWrite})

	ev := <-w.Events()
	assert.Equal(t, OpWrite, ev.Op)
	assert.Empty(t, w.Events())
}

func TestWatcher_Close(t *testing.T) {
	w, err := New()
	require.NoError(t, err)

	w.queue(Event{Path: "/x", Op: OpWrite})
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, ok := <-w.Events()
	assert.False(t, ok)
	assert.ErrorIs(t, w.Watch("."), ErrWatcherClosed)
}

func TestRun(t *testing.T) {
	w := newTestWatcher(t, WithDebounce(0))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	var got []string
	go func() {
		defer close(done)
		Run(ctx, w, func(ev Event) {
			got = append(got, ev.Path)
			cancel()
		}, nil)
	}()

	w.queue(Event{Path: "/x", Op: OpWrite})
	<-done
	assert.Equal(t, []string{"/x"}, got)
}
