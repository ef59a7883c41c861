package rtcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrampolinePool_BindOnceFiresOnceAndReleases(t *testing.T) {
	pool := NewTrampolinePool[int](2, nil, nil)
	require.Equal(t, 2, pool.Available())

	var got int
	d := pool.BindOnce(7, func(c *int) { got = *c })
	require.Equal(t, 1, pool.Available())

	d.Invoke()
	require.Equal(t, 7, got)
	require.Equal(t, 2, pool.Available(), "single-shot slot releases itself after firing")

	require.PanicsWithValue(t, &Fault{Tag: TagTrampoline, Message: "single-shot trampoline invoked more than once"}, d.Invoke)
}

func TestTrampolinePool_BindPersistsUntilExplicitRelease(t *testing.T) {
	pool := NewTrampolinePool[int](1, nil, nil)
	calls := 0
	d := pool.Bind(1, func(c *int) { calls++ })

	d.Invoke()
	d.Invoke()
	require.Equal(t, 2, calls)
	require.Equal(t, 0, pool.Available())

	pool.Release(d)
	require.Equal(t, 1, pool.Available())
}

func TestTrampolinePool_ExhaustionPanics(t *testing.T) {
	pool := NewTrampolinePool[int](1, nil, nil)
	pool.Bind(1, func(*int) {})

	require.PanicsWithValue(t, &Fault{Tag: TagTrampoline, Message: "trampoline pool exhausted (capacity 1)"}, func() {
		pool.Bind(2, func(*int) {})
	})
}

func TestTrampolinePool_ReentrantAllocationDuringSingleShot(t *testing.T) {
	pool := NewTrampolinePool[int](2, nil, nil)
	var inner int

	outer := pool.BindOnce(1, func(c *int) {
		d := pool.BindOnce(2, func(c2 *int) { inner = *c2 })
		d.Invoke()
	})
	outer.Invoke()
	require.Equal(t, 2, inner)
}
