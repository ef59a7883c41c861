package rtcore

// Node is an intrusive chain link. A Node is either a singleton
// (prev == next == &self) or spliced into a ring with other nodes.
// Embed Node (or hold a pointer to one) in a payload type to chain it
// without any allocation.
type Node struct {
	prev, next *Node
}

// isSingleton reports whether n is unlinked: either it has never been
// touched (zero value, prev == nil) or it has been explicitly reset to
// point at itself.
func (n *Node) isSingleton() bool {
	return n.prev == nil || (n.prev == n && n.next == n)
}

func (n *Node) reset() {
	n.prev = n
	n.next = n
}

// unlinkFromCurrentRing detaches n from whatever ring it is currently
// in (closing the gap it leaves behind) and leaves n a singleton. A
// singleton unlink (including a never-linked zero-value Node) is a
// no-op, matching List.Unlink's idempotence requirement.
func (n *Node) unlinkFromCurrentRing() {
	if n.isSingleton() {
		n.reset()
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	n.reset()
}

// List is a circular doubly-linked list with a dummy head node. All
// operations are O(1) except Insert{Before,After}, which are O(1)
// given a node already in the list, and the iterators, which are
// O(n).
type List struct {
	head Node
}

// init makes a zero-value dummy head its own singleton. NewList and the
// List methods that start from the head (IsEmpty, Push*, Pop*, Front,
// Back, Len, All, Backward) call it themselves.
func (l *List) init() {
	if l.head.prev == nil {
		l.head.reset()
	}
}

// NewList returns an initialized empty List.
func NewList() *List {
	l := &List{}
	l.init()
	return l
}

// IsEmpty reports whether the list holds no real nodes.
func (l *List) IsEmpty() bool {
	l.init()
	return l.head.isSingleton()
}

// splice inserts new immediately after at, unlinking new from any
// prior ring first. Inserting a node immediately after itself is a
// no-op (covers "insert before itself" too, since that reduces to the
// same splice once the node is already detached-or-self).
func splice(at, new *Node) {
	if at == new {
		return
	}
	new.unlinkFromCurrentRing()
	new.prev = at
	new.next = at.next
	at.next.prev = new
	at.next = new
}

// PushFront links node as the new first element.
func (l *List) PushFront(node *Node) {
	l.init()
	splice(&l.head, node)
}

// PushBack links node as the new last element.
func (l *List) PushBack(node *Node) {
	l.init()
	splice(l.head.prev, node)
}

// PopFront unlinks and returns the first real node, or nil if empty.
func (l *List) PopFront() *Node {
	l.init()
	if l.IsEmpty() {
		return nil
	}
	n := l.head.next
	n.unlinkFromCurrentRing()
	return n
}

// PopBack unlinks and returns the last real node, or nil if empty.
func (l *List) PopBack() *Node {
	l.init()
	if l.IsEmpty() {
		return nil
	}
	n := l.head.prev
	n.unlinkFromCurrentRing()
	return n
}

// InsertBefore links new immediately before node, which must already
// be linked into this list (or be the list's own head sentinel).
// new is first unlinked from any ring it was already part of.
func (l *List) InsertBefore(node, new *Node) {
	splice(node.prev, new)
}

// InsertAfter links new immediately after node, which must already be
// linked into this list (or be the list's own head sentinel). new is
// first unlinked from any ring it was already part of.
func (l *List) InsertAfter(node, new *Node) {
	splice(node, new)
}

// Unlink detaches node from this (or any) list. Idempotent: unlinking
// an already-singleton node is a no-op.
func (l *List) Unlink(node *Node) {
	node.unlinkFromCurrentRing()
}

// Front returns the first real node, or nil if empty.
func (l *List) Front() *Node {
	l.init()
	if l.IsEmpty() {
		return nil
	}
	return l.head.next
}

// Back returns the last real node, or nil if empty.
func (l *List) Back() *Node {
	l.init()
	if l.IsEmpty() {
		return nil
	}
	return l.head.prev
}

// Next returns the node following n in its ring, or nil if that node
// is the list's own dummy head (i.e. n is the last node).
func (l *List) Next(n *Node) *Node {
	if n.next == &l.head {
		return nil
	}
	return n.next
}

// Prev returns the node preceding n in its ring, or nil if that node
// is the list's own dummy head (i.e. n is the first node).
func (l *List) Prev(n *Node) *Node {
	if n.prev == &l.head {
		return nil
	}
	return n.prev
}

// Len counts the nodes currently linked into the list. O(n); intended
// for tests and diagnostics, not hot-path use.
func (l *List) Len() int {
	l.init()
	n := 0
	for cur := l.head.next; cur != &l.head; cur = cur.next {
		n++
	}
	return n
}

// All returns an iterator (Go 1.23 range-over-func) walking from
// front to back. Mutating the list during iteration is not supported.
func (l *List) All() func(yield func(*Node) bool) {
	l.init()
	return func(yield func(*Node) bool) {
		for n := l.head.next; n != &l.head; n = n.next {
			if !yield(n) {
				return
			}
		}
	}
}

// Backward returns an iterator walking from back to front.
func (l *List) Backward() func(yield func(*Node) bool) {
	l.init()
	return func(yield func(*Node) bool) {
		for n := l.head.prev; n != &l.head; n = n.prev {
			if !yield(n) {
				return
			}
		}
	}
}

// AssertUnlinked panics (via handler) with TagList if node is still
// linked into a ring. Intended to be called from a payload's
// destructor-equivalent to enforce the specification's "destroying a
// still-linked node is a panic condition" invariant.
func AssertUnlinked(node *Node, handler PanicHandler) {
	if node.prev == nil {
		return // never linked
	}
	if !node.isSingleton() {
		if handler == nil {
			handler = defaultPanicHandler
		}
		handler(newFault(TagList, "node destroyed while still linked"))
	}
}
