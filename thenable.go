package rtcore

// thenableState tracks which side of the one-shot rendezvous is
// currently occupied: at most one of a stored result or a stored
// continuation may be present at a time.
type thenableState int

const (
	thenableEmpty thenableState = iota
	thenableHasResult
	thenableHasCallback
	thenableIgnored
)

// Thenable is a one-shot producer/consumer cell for a value of type T.
// Either side may arrive first: Resolve before Then stores the result
// until a consumer attaches; Then before Resolve stores the
// continuation until a producer arrives. This mirrors the
// specification's "tolerates either arrival order" thenable, and its
// locking discipline is lifted directly from the teacher's addHandler in
// promise.go: mutate state and pull out whatever needs to be called
// while holding the critical section, then invoke it after releasing,
// so a reentrant Resolve or Then from inside the callback never
// deadlocks against this cell's own lock.
//
// UntrackedCount answers the specification's open question on
// "resolved with nobody listening yet": it counts every Resolve call
// that found no attached consumer, even though only the most recent
// such value survives in storage (single-slot overwrite, per the
// specification's explicit "keep the overwrite" instruction). The
// count drops by exactly one — not to zero — the moment the stored
// result is finally consumed (by Then, Set, ExplicitlyIgnore, or
// Reset), matching the specification's testable property for N
// untracked resolves followed by one attach: count goes N, then
// N-1, not 0. See SPEC_FULL.md's Open Question Decisions.
type Thenable[T any] struct {
	crit      CriticalSection
	panicOn   PanicHandler
	state     thenableState
	result    T
	callback  Delegate1[T]
	untracked int
}

// NewThenable returns an empty Thenable. crit and handler may be nil.
func NewThenable[T any](crit CriticalSection, handler PanicHandler) *Thenable[T] {
	if crit == nil {
		crit = NoOpCriticalSection{}
	}
	if handler == nil {
		handler = defaultPanicHandler
	}
	return &Thenable[T]{crit: crit, panicOn: handler}
}

// Resolver is a producer-only handle on a Thenable: it exposes Resolve
// and nothing else, so a component that only produces values cannot
// accidentally attach or detach the consumer side.
type Resolver[T any] struct {
	t *Thenable[T]
}

// Resolver returns a producer-only handle on t.
func (t *Thenable[T]) Resolver() Resolver[T] { return Resolver[T]{t: t} }

// Resolve fulfills r's underlying Thenable with value.
func (r Resolver[T]) Resolve(value T) { r.t.Resolve(value) }

// Resolve delivers value to the cell. If a consumer is already
// attached (via Then), the stored callback is invoked with value and
// the cell returns to empty. If the cell was explicitly ignored, the
// value is dropped and the cell returns to empty. Otherwise the value
// is stored, overwriting any previously unconsumed result — the
// specification's "last write wins" choice for a resolve racing a
// stale, never-collected result, again per SPEC_FULL.md's Open
// Question Decisions — and the untracked counter is incremented every
// time a value lands with nobody listening.
func (t *Thenable[T]) Resolve(value T) {
	exit := t.crit.Enter()

	switch t.state {
	case thenableHasCallback:
		cb := t.callback
		t.callback = Delegate1[T]{}
		t.state = thenableEmpty
		exit()
		cb.Invoke(value)
		return

	case thenableIgnored:
		t.state = thenableEmpty
		exit()
		return

	case thenableHasResult:
		// Overwrite the single storage slot (per the specification's
		// "keep the overwrite" instruction) but still count this
		// arrival as untracked: untracked_count tallies resolves that
		// found nobody listening, independent of how many distinct
		// values survive to be consumed.
		t.result = value
		t.untracked++
		exit()
		return

	default: // thenableEmpty
		t.result = value
		t.state = thenableHasResult
		t.untracked++
		exit()
		return
	}
}

// Set discards any result currently stored in the cell and
// unconditionally registers callback as the consumer for the next
// Resolve, per the specification's "set" operation — distinct from
// Then, which delivers an already-stored result synchronously instead
// of discarding it.
func (t *Thenable[T]) Set(callback Delegate1[T]) {
	exit := t.crit.Enter()
	defer exit()

	if t.state == thenableHasResult {
		var zero T
		t.result = zero
		t.untracked--
	}
	t.callback = callback
	t.state = thenableHasCallback
}

// Then attaches callback as the consumer of the next (or already
// pending) result. If a result is already stored, callback is invoked
// immediately with it and the cell returns to empty. Otherwise
// callback is stored until Resolve arrives. Attaching a new callback
// while one is already attached replaces it, matching the
// single-consumer contract: only the most recently attached
// continuation is ever invoked.
func (t *Thenable[T]) Then(callback Delegate1[T]) {
	exit := t.crit.Enter()

	switch t.state {
	case thenableHasResult:
		v := t.result
		var zero T
		t.result = zero
		t.state = thenableEmpty
		t.untracked--
		exit()
		callback.Invoke(v)
		return

	default:
		t.callback = callback
		t.state = thenableHasCallback
		exit()
		return
	}
}

// ExplicitlyIgnore declares that no consumer will ever attach. A
// result already stored is discarded immediately (and un-counted from
// UntrackedCount, since it is no longer a leak candidate); a result
// arriving later via Resolve is discarded on arrival instead of being
// stored. Calling ExplicitlyIgnore while a callback is attached is a
// TagTask contract violation.
func (t *Thenable[T]) ExplicitlyIgnore() {
	exit := t.crit.Enter()
	defer exit()

	switch t.state {
	case thenableHasCallback:
		t.panicOn(newFault(TagTask, "thenable: explicitly-ignore with a consumer already attached"))
		return
	case thenableHasResult:
		var zero T
		t.result = zero
		t.state = thenableEmpty
		t.untracked--
		return
	default:
		t.state = thenableIgnored
		return
	}
}

// Reset forcibly returns the cell to empty, discarding any stored
// result or attached callback without invoking it. Used to recycle a
// Thenable embedded in a pooled or restarted task.
func (t *Thenable[T]) Reset() {
	exit := t.crit.Enter()
	defer exit()

	if t.state == thenableHasResult {
		t.untracked--
	}
	var zeroT T
	t.result = zeroT
	t.callback = Delegate1[T]{}
	t.state = thenableEmpty
}

// UntrackedCount returns the number of Resolve calls that have found
// nobody listening since the last consumption, which can exceed 1
// even though only the most recent value is actually retrievable.
// Intended for leak diagnostics in long-running schedulers, not for
// flow control.
func (t *Thenable[T]) UntrackedCount() int {
	exit := t.crit.Enter()
	defer exit()
	return t.untracked
}
