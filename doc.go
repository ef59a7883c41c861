// Package rtcore provides a cooperative, allocation-free real-time
// runtime core suitable for microcontroller firmware: stackless
// coroutines and tasks, a fixed-capacity block pool, a single-value
// lifetime cell, a two-word delegate, an intrusive circular list, a
// one-shot thenable, a tick-ordered scheduler with multicast dispatch,
// and closure-to-function-pointer trampolines.
//
// # Architecture
//
// Every primitive is non-owning of its payload: callers declare
// storage (on the stack or in static variables) and hand this package
// pointers into it. The [Pool] is the only component that owns bytes
// it vends; [Lifetime] owns the value constructed inside it. A
// [Scheduler] dispatches [ActionNode] values at absolute [Tick]
// deadlines; a [Multicast] dispatches a dynamic set of [ActionNode]
// values once per emission. Both build on [List], the zero-allocation
// intrusive ring used throughout.
//
// # Concurrency
//
// This is a single-threaded cooperative model: nothing here blocks,
// spawns a goroutine, or migrates work across threads. Execution
// advances only when the caller invokes [Scheduler.ExecuteOne],
// [Scheduler.ExecuteAll], [Multicast.Emit], or resumes a [Coroutine]
// or [Task] directly. A [CriticalSection] may be supplied to make a
// given instance safe for concurrent access from an interrupt handler
// or another goroutine; by default, none is used.
//
// # Time
//
// [Tick] is a user-supplied, wraparound-ordered counter with no fixed
// unit — the caller decides what a tick means and reads the current
// value however is appropriate for their platform (this package never
// touches a wall clock).
//
// # Usage
//
//	sched := rtcore.NewScheduler()
//	sched.Start(0)
//
//	node := rtcore.NewActionNode()
//	node.Then(rtcore.NewDelegate1(func(struct{}) {
//		fmt.Println("fired")
//	}))
//	sched.ScheduleAfter(node, 10, 0)
//
//	sched.ExecuteAll(10) // dispatches node
//
// # Errors
//
// Contract violations (corrupted pool frees, double-construction,
// resuming a finished coroutine or task, trampoline exhaustion, and
// similar) are not recoverable locally: they route through a
// [PanicHandler], tagged with a [Tag] identifying the offending
// component, and by default panic with a [*Fault] value. Use
// [WithPanicHandler] to install a different policy on a [Scheduler] or
// [Multicast]; the other constructors take a [PanicHandler] argument.
package rtcore
