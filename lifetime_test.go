package rtcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLifetime_Idempotence(t *testing.T) {
	l := NewLifetime[string](nil)
	require.False(t, l.HasValue())

	l.Emplace("first")
	require.True(t, l.HasValue())
	require.Equal(t, "first", *l.Get())

	l.Destroy()
	l.Destroy() // idempotent
	require.False(t, l.HasValue())

	l.Emplace("second")
	require.Equal(t, "second", *l.Get())
}

func TestLifetime_EmplaceOnOccupiedPanics(t *testing.T) {
	l := NewLifetime[int](nil)
	l.Emplace(1)
	require.PanicsWithValue(t, &Fault{Tag: TagMemory, Message: "lifetime: emplace on occupied cell"}, func() {
		l.Emplace(2)
	})
}

func TestLifetime_GetOnEmptyPanics(t *testing.T) {
	l := NewLifetime[int](nil)
	require.PanicsWithValue(t, &Fault{Tag: TagMemory, Message: "lifetime: get on empty cell"}, func() {
		l.Get()
	})
}

func TestLifetime_DestroyOrPanic(t *testing.T) {
	l := NewLifetime[int](nil)
	require.PanicsWithValue(t, &Fault{Tag: TagMemory, Message: "lifetime: destroy-or-panic on empty cell"}, func() {
		l.DestroyOrPanic()
	})
	l.Emplace(1)
	l.DestroyOrPanic()
	require.False(t, l.HasValue())
}

func TestLifetime_Force(t *testing.T) {
	l := NewLifetime[int](nil)
	l.Force(1)
	require.Equal(t, 1, *l.Get())
	l.Force(2)
	require.Equal(t, 2, *l.Get())
}

func TestLifetime_Singleton(t *testing.T) {
	l := NewLifetime[int](nil)
	first := l.Singleton(1)
	second := l.Singleton(2)
	require.Same(t, first, second)
	require.Equal(t, 1, *first)
}

func TestWithLifetime_DestroysOnEveryExit(t *testing.T) {
	l := NewLifetime[int](nil)

	WithLifetime(l, 42, func(v *int) {
		require.Equal(t, 42, *v)
		require.True(t, l.HasValue())
	})
	require.False(t, l.HasValue())

	require.Panics(t, func() {
		WithLifetime(l, 1, func(v *int) {
			panic("boom")
		})
	})
	require.False(t, l.HasValue())
}
