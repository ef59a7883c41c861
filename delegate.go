package rtcore

import "unsafe"

// Delegate is a non-owning, polymorphic callable reference for the
// zero-argument, zero-return signature used by ActionNode and task
// resumption throughout this package. The specification models a
// delegate as a two-word {trampoline, payload} pair so that wrapping
// a functor, a free function, or a bound method all cost the same
// two words and the same one indirect call. fn alone (a pointer to a
// funcval containing a code pointer and its captured environment)
// already gives one word of that budget for any closure shape; the
// second word, fn2, is reserved for TrampolinePool's own bookkeeping
// rather than left idle, which is why it is declared as
// unsafe.Pointer instead of interface{} — an interface value is two
// words on its own and would blow the budget by a third word.
//
// The zero value is the null delegate (wraps a nil function), exactly
// as the specification requires "null" to be representable only as a
// delegate around a null free function.
type Delegate struct {
	fn func()
	// fn2 optionally points at the TrampolinePool slot backing fn, so
	// that pool can recognize and release its own delegates; set only
	// by TrampolinePool.Bind and nil for every other Delegate (including
	// those from TrampolinePool.BindOnce, which release themselves). The pool that
	// set it is always the one reading it back (TrampolinePool[C]'s
	// own methods), so the concrete type behind the pointer is never
	// ambiguous at the read site.
	fn2 unsafe.Pointer
}

// NewDelegate wraps fn, including a captureless temporary. Per the
// specification's "unstorable" convenience constructor, the result
// must not outlive the call if fn closes over stack-local state the
// caller does not otherwise keep alive.
func NewDelegate(fn func()) Delegate {
	return Delegate{fn: fn}
}

// DelegateFromMethod binds recv and method into a Delegate, matching
// the specification's (object, member-function) builder. recv is
// captured by pointer, so the binding observes later mutations of
// *recv.
func DelegateFromMethod[T any](recv *T, method func(*T)) Delegate {
	return Delegate{fn: func() { method(recv) }}
}

// IsNull reports whether this is the null delegate.
func (d Delegate) IsNull() bool { return d.fn == nil }

// Invoke calls the wrapped target; invoking the null delegate is a
// no-op rather than a fault, since a zero-value Delegate is a
// legitimate "no listener yet" state throughout this package.
func (d Delegate) Invoke() {
	if d.fn != nil {
		d.fn()
	}
}

// Equal reports whether d and other hold the same two words, per the
// specification's byte-wise equality requirement: the same func value
// (compared by its closure pointer, since Go forbids == on funcs) and
// the same fn2. Two delegates built from distinct closures over equal
// captured state compare unequal, matching the "normalize" choice
// documented for Delegate equality in SPEC_FULL.md; two delegates built from the
// same bound method on the same receiver by separate calls to
// DelegateFromMethod compare unequal too, since each call allocates a
// fresh closure — callers that need identity-stable delegates should
// keep and reuse the Delegate value itself rather than rebuilding it.
func (d Delegate) Equal(other Delegate) bool {
	return *(*unsafe.Pointer)(unsafe.Pointer(&d.fn)) == *(*unsafe.Pointer)(unsafe.Pointer(&other.fn)) &&
		d.fn2 == other.fn2
}

// Delegate1 is the one-argument, zero-return analogue of Delegate,
// used by Thenable consumers and single-value coroutine/task
// continuations.
type Delegate1[T any] struct {
	fn func(T)
}

// NewDelegate1 wraps fn.
func NewDelegate1[T any](fn func(T)) Delegate1[T] {
	return Delegate1[T]{fn: fn}
}

// DelegateFromMethod1 binds recv and a method taking one argument of
// type A into a Delegate1[A].
func DelegateFromMethod1[T, A any](recv *T, method func(*T, A)) Delegate1[A] {
	return Delegate1[A]{fn: func(a A) { method(recv, a) }}
}

// IsNull reports whether this is the null delegate.
func (d Delegate1[T]) IsNull() bool { return d.fn == nil }

// Invoke calls the wrapped target with v; a no-op if null.
func (d Delegate1[T]) Invoke(v T) {
	if d.fn != nil {
		d.fn(v)
	}
}
