package rtcore

// Tick is an unsigned, wraparound-ordered time value. Its unit is a
// per-instance convention the caller chooses; this package never
// reads a wall clock. Arithmetic wraps modulo 2^64.
type Tick uint64

// maxComparableDelta is delta_max = (2^64 - 1) / 2, per the
// specification's tick-order precondition: two ticks separated by
// more than this are not meaningfully ordered by Precedes.
const maxComparableDelta Tick = (1<<64 - 1) / 2

// Precedes reports whether a precedes b in wraparound order: true iff
// (b - a) mod 2^64 <= delta_max. Values separated by more than
// delta_max are not comparable and Precedes' result is not meaningful
// for them (the specification places the burden of staying within
// delta_max on the caller, e.g. by calling SimpleTimer.Discover often
// enough).
func Precedes(a, b Tick) bool {
	return b-a <= maxComparableDelta
}

// SimpleTimer is a one-shot deadline check: (pending, deadline).
type SimpleTimer struct {
	deadline Tick
	pending  bool
}

// Start arms the timer for now+delta.
func (t *SimpleTimer) Start(now Tick, delta Tick) {
	t.deadline = now + delta
	t.pending = true
}

// Cancel disarms the timer.
func (t *SimpleTimer) Cancel() {
	t.pending = false
}

// IsPending reports whether the timer is armed and has not yet fired.
func (t *SimpleTimer) IsPending() bool {
	return t.pending
}

// Discover returns true exactly once, the first time it is called
// with a now that has reached or passed the deadline (using wraparound
// order); it returns false on every call before that and every call
// after, until Start is called again. The caller must invoke Discover
// at least once per delta_max ticks for the wraparound comparison to
// remain meaningful.
func (t *SimpleTimer) Discover(now Tick) bool {
	if !t.pending {
		return false
	}
	if Precedes(t.deadline, now) || t.deadline == now {
		t.pending = false
		return true
	}
	return false
}

// PeriodicTimer repeats Discover's true result every period ticks on a
// fixed absolute grid: each firing advances the previous deadline by
// period (drift-free), not the tick at which Discover happened to be
// called.
type PeriodicTimer struct {
	period       Tick
	nextDeadline Tick
}

// StartPeriod arms the timer with the given period, first firing at
// now+period. A period of 0 leaves the timer permanently inactive.
func (t *PeriodicTimer) StartPeriod(now Tick, period Tick) {
	t.period = period
	t.nextDeadline = now + period
}

// Period returns the configured period; 0 means inactive.
func (t *PeriodicTimer) Period() Tick {
	return t.period
}

// Discover returns true once per arrival of nextDeadline, advancing
// nextDeadline by period each time it fires. Always false when the
// timer is inactive (period == 0).
func (t *PeriodicTimer) Discover(now Tick) bool {
	if t.period == 0 {
		return false
	}
	if Precedes(t.nextDeadline, now) || t.nextDeadline == now {
		t.nextDeadline += t.period
		return true
	}
	return false
}
