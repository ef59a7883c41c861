package rtcore

import "sync"

// CriticalSection abstracts the mutual-exclusion primitive guarding a
// component's shared state, per the specification's "critical_section"
// configuration input. Enter must return a function that undoes
// exactly the exclusion it established; callers are expected to use
// it as:
//
//	exit := crit.Enter()
//	defer exit()
//
// Re-entering a section from the same execution context that is
// already inside it is safe only for NoOpCriticalSection (the
// disable-interrupts style, where nesting degrades to a no-op);
// MutexCriticalSection is NOT reentrant and must not be shared across
// goroutines that can recurse into the same instance.
//
// Code running inside a critical section must not suspend (yield,
// await, or block): there is no scheduler equivalent to a held lock
// being released during the scope's execution.
type CriticalSection interface {
	// Enter establishes exclusion and returns a function to end it.
	Enter() (exit func())
}

// NoOpCriticalSection is the zero-cost default, appropriate for a
// single-threaded, non-reentrant (interrupts-disabled-by-construction,
// or simply never interrupted) embedding. This is what every
// component in this package uses unless configured otherwise.
type NoOpCriticalSection struct{}

// Enter returns a no-op exit function.
func (NoOpCriticalSection) Enter() func() { return noopExit }

func noopExit() {}

// MutexCriticalSection wraps a sync.Mutex as a CriticalSection, for
// components shared between goroutines (standing in for a
// disable-interrupts primitive on a real MCU, which has no Go
// analogue — there is no way to mask interrupts in a hosted Go
// program, so a mutex is the closest available exclusion primitive
// when more than one execution context genuinely exists).
type MutexCriticalSection struct {
	mu sync.Mutex
}

// Enter locks the mutex and returns a function that unlocks it.
func (m *MutexCriticalSection) Enter() func() {
	m.mu.Lock()
	return m.mu.Unlock
}
