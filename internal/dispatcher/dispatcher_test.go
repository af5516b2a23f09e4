package dispatcher

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatch(t *testing.T) {
	d := New()
	var got Command
	d.RegisterFunc("test:echo", func(_ context.Context, cmd Command) error {
		got = cmd
		return nil
	})

	require.NoError(t, d.Dispatch(context.Background(), "test:echo", "a", "b"))
	assert.Equal(t, Command{Name: "test:echo", Args: []string{"a", "b"}}, got)
}

func TestDispatch_Unknown(t *testing.T) {
	d := New()
	err := d.Dispatch(context.Background(), "test:missing")
	assert.ErrorIs(t, err, ErrUnknownCommand)
	assert.Contains(t, err.Error(), "test:missing")
}

func TestDispatch_HandlerError(t *testing.T) {
	d := New()
	boom := errors.New("boom")
	d.RegisterFunc("test:fail", func(context.Context, Command) error { return boom })

	assert.ErrorIs(t, d.Dispatch(context.Background(), "test:fail"), boom)
}

func TestDispatch_Priority(t *testing.T) {
	d := New()
	var ran []string
	d.Register("test:cmd", NewHandlerFuncWithPriority(func(context.Context, Command) error {
		ran = append(ran, "low")
		return nil
	}, 0))
	d.Register("test:cmd", NewHandlerFuncWithPriority(func(context.Context, Command) error {
		ran = append(ran, "high")
		return nil
	}, 10))

	require.NoError(t, d.Dispatch(context.Background(), "test:cmd"))
	assert.Equal(t, []string{"high"}, ran)
}

func TestDispatch_PanicRecovery(t *testing.T) {
	d := New()
	d.RegisterFunc("test:panic", func(context.Context, Command) error { panic("bad") })

	err := d.Dispatch(context.Background(), "test:panic")
	assert.ErrorIs(t, err, ErrPanic)
	assert.Contains(t, err.Error(), "bad")

	strict := New(WithPanicRecovery(false))
	strict.RegisterFunc("test:panic", func(context.Context, Command) error { panic("bad") })
	assert.Panics(t, func() { _ = strict.Dispatch(context.Background(), "test:panic") })
}

func TestDispatch_PreHookCancels(t *testing.T) {
	d := New()
	ran := false
	d.RegisterFunc("test:cmd", func(context.Context, Command) error {
		ran = true
		return nil
	})
	d.RegisterPreHook(func(_ context.Context, cmd Command) bool {
		return cmd.Name != "test:cmd"
	})

	assert.ErrorIs(t, d.Dispatch(context.Background(), "test:cmd"), ErrCommandCancelled)
	assert.False(t, ran)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := NewHandlerFunc(nil)
	b := NewHandlerFuncWithPriority(nil, 5)

	r.Register("b:cmd", a)
	r.Register("a:cmd", a)
	r.Register("a:cmd", b)

	assert.Equal(t, []string{"a:cmd", "b:cmd"}, r.List())
	assert.Equal(t, 2, r.Count())
	assert.Same(t, b, r.Get("a:cmd"))
	assert.Len(t, r.GetAll("a:cmd"), 2)

	r.UnregisterHandler("a:cmd", b)
	assert.Same(t, a, r.Get("a:cmd"))
	r.UnregisterHandler("a:cmd", a)
	assert.False(t, r.Has("a:cmd"))
	assert.Equal(t, []string{"b:cmd"}, r.List())

	r.Unregister("b:cmd")
	assert.False(t, r.Has("b:cmd"))
	assert.Nil(t, r.Get("b:cmd"))

	r.Clear()
	assert.Zero(t, r.Count())
}

func TestHandlerFunc_Nil(t *testing.T) {
	assert.NoError(t, NewHandlerFunc(nil).Handle(context.Background(), Command{}))
}
