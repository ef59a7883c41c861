package rtcore

import (
	"errors"
	"fmt"
)

// Tag identifies the component that raised a Fault, mirroring the
// single-character module tags of the panic taxonomy: every contract
// violation in this package surfaces through a PanicHandler tagged
// with one of these.
type Tag byte

const (
	// TagMemory covers corrupted-pool frees, double-emplace on a
	// Lifetime cell, destroy-or-panic on an empty cell, and dereference
	// of an empty cell.
	TagMemory Tag = 'M'
	// TagQueue is reserved; the queue module is out of scope.
	TagQueue Tag = 'Q'
	// TagTask covers resuming a task inside Guard, resuming a finished
	// task, explicitly ignoring a Thenable that already has a consumer,
	// and scheduling an ActionNode that is listening on a Multicast (or
	// the reverse). A nested Resume of a task that is already running
	// outside Guard is coalesced by the running call, not a fault.
	TagTask Tag = 'T'
	// TagCoroutine covers resuming a finished coroutine.
	TagCoroutine Tag = 'C'
	// TagTrampoline covers slot exhaustion and re-invoking a disposed
	// extended trampoline.
	TagTrampoline Tag = 'B'
	// TagList covers destroying a chain node that is still linked into
	// a ring (checked by AssertUnlinked). Unlinking never faults.
	TagList Tag = 'L'
)

// Fault is the error value passed to a PanicHandler and the value a
// default handler panics with. Fault implements Unwrap and Is so
// errors.Is(err, ErrMemoryFault) works against a recovered panic.
type Fault struct {
	Tag     Tag
	Message string
	Cause   error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Message == "" {
		return fmt.Sprintf("rtcore: fault [%c]", f.Tag)
	}
	return fmt.Sprintf("rtcore: fault [%c]: %s", f.Tag, f.Message)
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (f *Fault) Unwrap() error {
	return f.Cause
}

// Is matches any Fault with the same Tag, regardless of message or
// cause, so callers can test against the sentinels below.
func (f *Fault) Is(target error) bool {
	var other *Fault
	if errors.As(target, &other) {
		return other.Tag == f.Tag
	}
	return false
}

// Sentinel Faults for errors.Is matching against a specific tag
// without constructing one by hand.
var (
	ErrMemoryFault     = &Fault{Tag: TagMemory}
	ErrTaskFault       = &Fault{Tag: TagTask}
	ErrCoroutineFault  = &Fault{Tag: TagCoroutine}
	ErrTrampolineFault = &Fault{Tag: TagTrampoline}
	ErrListFault       = &Fault{Tag: TagList}
)

func newFault(tag Tag, format string, args ...any) *Fault {
	return &Fault{Tag: tag, Message: fmt.Sprintf(format, args...)}
}

// PanicHandler is invoked on any contract violation described by the
// error taxonomy. The default handler panics with the Fault as the Go
// panic value; a handler that returns normally resumes the caller at
// the point of the violated contract, which is almost never safe
// outside of tests that want to assert on the Fault without unwinding.
type PanicHandler func(fault *Fault)

func defaultPanicHandler(fault *Fault) {
	panic(fault)
}
