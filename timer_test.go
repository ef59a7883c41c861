package rtcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPrecedes_TickOrderInvariant(t *testing.T) {
	// Testable property 1: for all a, d with d <= delta_max,
	// precedes(a, a+d) holds modulo wrap.
	for _, a := range []Tick{0, 1, 1 << 32, ^Tick(0)} {
		for _, d := range []Tick{0, 1, 100, maxComparableDelta} {
			require.True(t, Precedes(a, a+d), "a=%d d=%d", a, d)
		}
	}
}

func TestPrecedes_WrapsAroundZero(t *testing.T) {
	require.True(t, Precedes(^Tick(0), 0))
	require.True(t, Precedes(^Tick(0), 5))
}

func TestSimpleTimer_FiresOnceAtDeadline(t *testing.T) {
	var timer SimpleTimer
	require.False(t, timer.IsPending())

	timer.Start(100, 10)
	require.True(t, timer.IsPending())

	require.False(t, timer.Discover(105))
	require.True(t, timer.Discover(110))
	require.False(t, timer.Discover(111))
	require.False(t, timer.IsPending())
}

func TestSimpleTimer_Cancel(t *testing.T) {
	var timer SimpleTimer
	timer.Start(0, 10)
	timer.Cancel()
	require.False(t, timer.IsPending())
	require.False(t, timer.Discover(10))
}

func TestPeriodicTimer_DriftFreeAbsoluteSchedule(t *testing.T) {
	var timer PeriodicTimer
	timer.StartPeriod(0, 100)

	require.False(t, timer.Discover(99))
	require.True(t, timer.Discover(100))
	// PeriodicTimer keeps a fixed absolute grid (next_deadline +=
	// period on every fire), unlike the Scheduler's periodic
	// ActionNode reinsertion (§4.J), which deliberately re-anchors to
	// the dispatch tick instead (see scheduler_test.go); a late
	// Discover at 250 still advances from the missed grid point 200,
	// not from 250.
	require.True(t, timer.Discover(250))
	require.Equal(t, Tick(300), timer.nextDeadline)
}

func TestPeriodicTimer_InactiveWhenPeriodZero(t *testing.T) {
	var timer PeriodicTimer
	require.Equal(t, Tick(0), timer.Period())
	require.False(t, timer.Discover(1000))
}
