package rtcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestList_PushAndPop(t *testing.T) {
	l := NewList()
	require.True(t, l.IsEmpty())

	var a, b, c Node
	l.PushBack(&a)
	l.PushBack(&b)
	l.PushBack(&c)
	require.Equal(t, 3, l.Len())
	require.Same(t, &a, l.Front())
	require.Same(t, &c, l.Back())

	require.Same(t, &a, l.PopFront())
	require.Same(t, &c, l.PopBack())
	require.Equal(t, 1, l.Len())
	require.Same(t, &b, l.Front())
	require.Same(t, &b, l.Back())

	require.Same(t, &b, l.PopFront())
	require.True(t, l.IsEmpty())
	require.Nil(t, l.PopFront())
	require.Nil(t, l.PopBack())
}

func TestList_RingClosure(t *testing.T) {
	// Testable property 2: after any sequence of insert/unlink, every
	// node's neighbors point back at it.
	l := NewList()
	var nodes [5]Node
	for i := range nodes {
		l.PushBack(&nodes[i])
	}
	l.Unlink(&nodes[2])
	l.InsertBefore(&nodes[0], &nodes[2])
	l.PushFront(&nodes[4])

	for cur := l.Front(); cur != nil; cur = l.Next(cur) {
		require.Same(t, cur, cur.next.prev)
		require.Same(t, cur, cur.prev.next)
	}
}

func TestList_InsertBeforeSelfIsNoop(t *testing.T) {
	l := NewList()
	var a, b Node
	l.PushBack(&a)
	l.PushBack(&b)
	l.InsertBefore(&a, &a)
	require.Equal(t, 2, l.Len())
	require.Same(t, &a, l.Front())
	require.Same(t, &b, l.Back())
}

func TestList_UnlinkIdempotent(t *testing.T) {
	l := NewList()
	var a Node
	l.PushBack(&a)
	l.Unlink(&a)
	l.Unlink(&a)
	require.True(t, l.IsEmpty())
}

func TestList_StealsFromPriorRing(t *testing.T) {
	l1, l2 := NewList(), NewList()
	var a Node
	l1.PushBack(&a)
	l2.PushBack(&a)
	require.True(t, l1.IsEmpty())
	require.Equal(t, 1, l2.Len())
}

func TestList_ForwardAndReverseIteration(t *testing.T) {
	l := NewList()
	var a, b, c Node
	l.PushBack(&a)
	l.PushBack(&b)
	l.PushBack(&c)

	var forward []*Node
	for n := range l.All() {
		forward = append(forward, n)
	}
	require.Equal(t, []*Node{&a, &b, &c}, forward)

	var backward []*Node
	for n := range l.Backward() {
		backward = append(backward, n)
	}
	require.Equal(t, []*Node{&c, &b, &a}, backward)
}

func TestAssertUnlinked(t *testing.T) {
	var n Node
	AssertUnlinked(&n, func(f *Fault) { t.Fatalf("unexpected fault: %v", f) })

	l := NewList()
	l.PushBack(&n)
	faulted := false
	AssertUnlinked(&n, func(f *Fault) {
		faulted = true
		require.Equal(t, TagList, f.Tag)
	})
	require.True(t, faulted)
}
