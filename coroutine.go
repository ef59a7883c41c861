package rtcore

// CoroutineStatus is the outcome of one Coroutine step.
type CoroutineStatus int

const (
	// Yielded means the coroutine produced a value and remains runnable.
	Yielded CoroutineStatus = iota
	// Finished means the coroutine produced its final value and will
	// panic on further resumption.
	Finished
)

// Coroutine holds the resume state of a stackless coroutine yielding
// values of type Y: an integer resume label plus a finished flag. All
// other state that must survive a yield belongs in the user's own
// struct alongside a Coroutine field, never in a local variable of the
// step function, since nothing here saves an activation stack.
//
// Unlike the label+switch+goto technique the specification's source
// uses (which forbids a yield textually inside a switch, since the
// macro expands yield into a case label plus a return), this renders
// each resumption as a single call into an ordinary step function that
// inspects Label(), does one unit of work, and calls either Yield or
// Stop before returning. A generator loop is expressed by staying on
// the same label across resumes and mutating state fields, not by a
// Go for loop spanning multiple yields — the restriction the
// specification documents is eliminated rather than inherited, per
// its own design notes.
type Coroutine[Y any] struct {
	label    int
	finished bool
	panicOn  PanicHandler
}

// NewCoroutine returns a Coroutine at its initial label (0), using
// handler for the resume-after-finished contract violation (nil
// defaults to the package default panic handler).
func NewCoroutine[Y any](handler PanicHandler) *Coroutine[Y] {
	if handler == nil {
		handler = defaultPanicHandler
	}
	return &Coroutine[Y]{panicOn: handler}
}

// Label returns the resume label the step function should dispatch
// on.
func (c *Coroutine[Y]) Label() int {
	return c.label
}

// Finished reports whether Stop has been called.
func (c *Coroutine[Y]) Finished() bool {
	return c.finished
}

// Yield records nextLabel as the point to resume from and returns
// value with Yielded status. Called by a step function as its return
// statement: `return c.Yield(nextLabel, value)`.
func (c *Coroutine[Y]) Yield(nextLabel int, value Y) (Y, CoroutineStatus) {
	c.label = nextLabel
	return value, Yielded
}

// Stop marks the coroutine finished and returns value with Finished
// status. Called by a step function as its return statement.
func (c *Coroutine[Y]) Stop(value Y) (Y, CoroutineStatus) {
	c.finished = true
	return value, Finished
}

// Resume invokes step exactly once, unless the coroutine already
// finished, in which case it invokes the panic handler with
// TagCoroutine and returns the zero value, false. step is expected to
// switch on c.Label() and terminate with a call to c.Yield or c.Stop.
func (c *Coroutine[Y]) Resume(step func() (Y, CoroutineStatus)) (value Y, stillRunning bool) {
	if c.finished {
		handler := c.panicOn
		if handler == nil { // zero-value Coroutine embedded in a user struct
			handler = defaultPanicHandler
		}
		handler(newFault(TagCoroutine, "resume of finished coroutine"))
		var zero Y
		return zero, false
	}
	v, status := step()
	return v, status == Yielded
}
