package rtcore

import "unsafe"

// TrampolinePool is a fixed-capacity pool of slots that turn a bound
// closure of type C into a Delegate usable by ActionNode/Scheduler
// APIs that only store a zero-argument callable. The specification's
// original need for this component is a C-ABI callback registration
// that only accepts a raw function pointer plus one opaque word; Go's
// func values already clear that bar for any single call site, so the
// one place this component still earns its keep is bounding how many
// *concurrently outstanding* closures of a given shape a caller may
// create, exactly like a fixed-size sync.Pool free list (see
// DESIGN.md: modeled on the corpus's hand-rolled free-list pool
// implementations) rather than letting an unbounded number escape to
// the heap.
//
// A slot is "single-shot" if its Delegate invokes the closure once and
// then automatically releases itself back to the pool (for a
// fire-once callback such as a timer's expiry handler); it is
// "extended" if the caller must call Release explicitly (for a
// callback that may be invoked many times, such as a multicast
// subscriber).
type TrampolinePool[C any] struct {
	crit    CriticalSection
	panicOn PanicHandler
	slots   []trampolineSlot[C]
	free    []*trampolineSlot[C]
}

type trampolineSlot[C any] struct {
	pool    *TrampolinePool[C]
	closure C
	invoke  func(*C)
	used    bool
}

// NewTrampolinePool reserves capacity slots for closures of type C.
func NewTrampolinePool[C any](capacity int, crit CriticalSection, handler PanicHandler) *TrampolinePool[C] {
	if capacity <= 0 {
		capacity = 1
	}
	if crit == nil {
		crit = NoOpCriticalSection{}
	}
	if handler == nil {
		handler = defaultPanicHandler
	}
	p := &TrampolinePool[C]{
		crit:    crit,
		panicOn: handler,
		slots:   make([]trampolineSlot[C], capacity),
		free:    make([]*trampolineSlot[C], capacity),
	}
	for i := range p.slots {
		p.slots[i].pool = p
		p.free[i] = &p.slots[i]
	}
	return p
}

// Capacity returns the fixed slot count.
func (p *TrampolinePool[C]) Capacity() int { return len(p.slots) }

// Available returns the number of unused slots.
func (p *TrampolinePool[C]) Available() int {
	exit := p.crit.Enter()
	defer exit()
	return len(p.free)
}

func (p *TrampolinePool[C]) acquire(closure C, invoke func(*C)) *trampolineSlot[C] {
	exit := p.crit.Enter()
	n := len(p.free)
	if n == 0 {
		exit()
		p.panicOn(newFault(TagTrampoline, "trampoline pool exhausted (capacity %d)", p.Capacity()))
		return nil
	}
	s := p.free[n-1]
	p.free = p.free[:n-1]
	exit()

	s.closure = closure
	s.invoke = invoke
	s.used = true
	return s
}

// Release returns d's slot to the pool without invoking it. Releasing
// a delegate not produced by this pool, or releasing the same
// delegate twice, is a TagTrampoline fault.
//
// d.fn2 is an untyped unsafe.Pointer, recovered here as *trampolineSlot[C]
// using the C this pool was instantiated with; the s.pool != p check
// below is what catches a delegate built by some other pool (including
// one over a different C, whose slot layout would otherwise make this
// an unsound reinterpretation) before anything reads further into s.
func (p *TrampolinePool[C]) Release(d Delegate) {
	s := (*trampolineSlot[C])(d.fn2)
	if s == nil || s.pool != p {
		p.panicOn(newFault(TagTrampoline, "release of delegate foreign to this trampoline pool"))
		return
	}
	p.releaseSlot(s)
}

func (p *TrampolinePool[C]) releaseSlot(s *trampolineSlot[C]) {
	exit := p.crit.Enter()
	defer exit()
	if !s.used {
		p.panicOn(newFault(TagTrampoline, "double release of trampoline slot"))
		return
	}
	s.used = false
	var zero C
	s.closure = zero
	s.invoke = nil
	p.free = append(p.free, s)
}

// Bind acquires a slot, stores closure in it, and returns a Delegate
// that calls invoke(&closure) every time it is invoked. The caller
// must call Release when done with it; use BindOnce for a callback
// that should free itself after firing once. Invoking the Delegate
// after Release, while its slot is still free, is a TagTrampoline
// fault; once the slot has been handed out again, the old Delegate
// runs the slot's new closure.
func (p *TrampolinePool[C]) Bind(closure C, invoke func(*C)) Delegate {
	s := p.acquire(closure, invoke)
	if s == nil {
		return Delegate{}
	}
	return Delegate{fn: func() {
		if !s.used {
			p.panicOn(newFault(TagTrampoline, "extended trampoline invoked after release"))
			return
		}
		s.invoke(&s.closure)
	}, fn2: unsafe.Pointer(s)}
}

// BindOnce acquires a slot and returns a Delegate that invokes the
// closure exactly once and releases the slot back to the pool
// immediately afterward, before returning to the caller of Invoke.
// Invoking it a second time is a TagTrampoline fault, since the slot
// is already back in circulation (and may already have been reused).
func (p *TrampolinePool[C]) BindOnce(closure C, invoke func(*C)) Delegate {
	s := p.acquire(closure, invoke)
	if s == nil {
		return Delegate{}
	}
	fired := false
	return Delegate{fn: func() {
		if fired {
			p.panicOn(newFault(TagTrampoline, "single-shot trampoline invoked more than once"))
			return
		}
		fired = true
		invoke(&s.closure)
		p.releaseSlot(s)
	}}
}
