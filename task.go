package rtcore

// TaskState tracks re-entrancy around Resume, mirroring the
// teacher's ChainedPromise scheduleHandler/executeHandler split
// (promise.go): a synchronous callback chain must not grow the Go
// call stack by one frame per resume, since a long-lived cooperative
// task may be resumed this way thousands of times.
type TaskState int

const (
	// TaskReadyToResume is the idle state: no Resume call is currently
	// in progress.
	TaskReadyToResume TaskState = iota
	// TaskBusy means a Resume call is currently executing the
	// coroutine's step function.
	TaskBusy
	// TaskProtectFromRecursion means the task is inside a section of
	// code that must not be resumed re-entrantly; a Resume call that
	// arrives in this state is a contract violation and panics rather
	// than queuing.
	TaskProtectFromRecursion
	// TaskResumedByImmediateCallback means a Resume call arrived while
	// the task was TaskBusy, synchronously, from within the very step
	// function Resume is currently executing (for example, the
	// yielded continuation invoked a scheduler that dispatched
	// straight back into this same task). Resume turns this into a
	// loop iteration instead of a second stack frame.
	TaskResumedByImmediateCallback
)

// Task combines a Coroutine[Y] with a Thenable[Y] that resolves once
// the coroutine finishes, plus the re-entrancy state machine above.
// This is the specification's cooperative task: a single schedulable
// unit whose body can suspend at arbitrary points and whose
// completion other code can await via Then.
type Task[Y any] struct {
	co      *Coroutine[Y]
	done    *Thenable[Y]
	state   TaskState
	panicOn PanicHandler
}

// NewTask constructs a Task at its initial label, idle. handler may be
// nil.
func NewTask[Y any](handler PanicHandler) *Task[Y] {
	if handler == nil {
		handler = defaultPanicHandler
	}
	return &Task[Y]{
		co:      NewCoroutine[Y](handler),
		done:    NewThenable[Y](nil, handler),
		state:   TaskReadyToResume,
		panicOn: handler,
	}
}

// Finished reports whether the underlying coroutine has produced its
// final value.
func (t *Task[Y]) Finished() bool { return t.co.Finished() }

// Label exposes the coroutine's resume label, for step functions that
// need to dispatch on it.
func (t *Task[Y]) Label() int { return t.co.Label() }

// Yield is a passthrough to the underlying Coroutine's Yield, for use
// from a step function closing over this Task.
func (t *Task[Y]) Yield(nextLabel int, value Y) (Y, CoroutineStatus) {
	return t.co.Yield(nextLabel, value)
}

// Stop is a passthrough to the underlying Coroutine's Stop.
func (t *Task[Y]) Stop(value Y) (Y, CoroutineStatus) {
	return t.co.Stop(value)
}

// Then attaches callback to run once the task finishes, with its
// final yielded value — tolerating either arrival order, per
// Thenable's contract: if the task already finished, callback runs
// immediately.
func (t *Task[Y]) Then(callback Delegate1[Y]) {
	t.done.Then(callback)
}

// Resolver exposes a producer-only handle on the task's completion
// cell, for code that drives the task's final resolution
// independently of Resume (for example, a task cancelled from outside
// that must still complete its Thenable with a sentinel value).
func (t *Task[Y]) Resolver() Resolver[Y] { return t.done.Resolver() }

// Guard runs body with the task marked TaskProtectFromRecursion,
// restoring the previous state on return. Use this to bracket a
// section of a step function that must not be re-entered — any
// Resume call that arrives synchronously during body panics
// (TagTask) instead of being coalesced the way a normal nested
// Resume would be.
func (t *Task[Y]) Guard(body func()) {
	prev := t.state
	t.state = TaskProtectFromRecursion
	defer func() { t.state = prev }()
	body()
}

// Resume drives one step of the coroutine. If Resume is already
// executing (because step itself, synchronously, triggered another
// call to Resume on this same Task), the nested call is coalesced
// into one more loop iteration of the outer call instead of
// recursing, and returns immediately to its caller; the outer call
// keeps stepping until the coroutine finishes or a step completes
// with no nested resume pending. If the task is currently guarded
// (TaskProtectFromRecursion), any call — nested or not — panics.
func (t *Task[Y]) Resume(step func() (Y, CoroutineStatus)) {
	if t.co.Finished() {
		t.panicOn(newFault(TagTask, "resume of finished task"))
		return
	}
	switch t.state {
	case TaskProtectFromRecursion:
		t.panicOn(newFault(TagTask, "task resumed while protected from recursion"))
		return
	case TaskBusy:
		t.state = TaskResumedByImmediateCallback
		return
	}

	t.state = TaskBusy
	for {
		value, running := t.co.Resume(step)
		if !running {
			t.state = TaskReadyToResume
			t.done.Resolve(value)
			logEvent(LevelDebug, CategoryTask, "finished", nil)
			return
		}
		if t.state == TaskResumedByImmediateCallback {
			t.state = TaskBusy
			continue
		}
		t.state = TaskReadyToResume
		return
	}
}
