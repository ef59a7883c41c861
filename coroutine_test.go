package rtcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// squares is Scenario S1: a coroutine with field i=0 that yields i*i
// and increments i forever.
type squares struct {
	co Coroutine[int]
	i  int
}

func (s *squares) resume() (int, bool) {
	return s.co.Resume(func() (int, CoroutineStatus) {
		v := s.i * s.i
		s.i++
		return s.co.Yield(0, v)
	})
}

func TestCoroutine_SquareGeneratorScenarioS1(t *testing.T) {
	var gen squares
	var got []int
	for i := 0; i < 5; i++ {
		v, running := gen.resume()
		require.True(t, running)
		got = append(got, v)
	}
	require.Equal(t, []int{0, 1, 4, 9, 16}, got)
}

// boundedRange is Scenario S2: a coroutine parameterized with
// (begin, end) that yields begin..end-1 then stops with final value
// end.
type boundedRange struct {
	co         Coroutine[int]
	i          int
	begin, end int
}

func newBoundedRange(begin, end int) *boundedRange {
	return &boundedRange{begin: begin, end: end}
}

func (r *boundedRange) resume() (int, bool) {
	return r.co.Resume(func() (int, CoroutineStatus) {
		if r.co.Label() == 0 {
			r.i = r.begin
		}
		if r.i < r.end {
			v := r.i
			r.i++
			return r.co.Yield(1, v)
		}
		return r.co.Stop(r.end)
	})
}

func TestCoroutine_BoundedRangeScenarioS2(t *testing.T) {
	r := newBoundedRange(10, 13)

	var got []int
	for {
		v, running := r.resume()
		if !running {
			require.Equal(t, 13, v)
			break
		}
		got = append(got, v)
	}
	require.Equal(t, []int{10, 11, 12}, got)
	require.True(t, r.co.Finished())

	require.Panics(t, func() { r.resume() })
}

func TestCoroutine_ResumeAfterFinishedPanicsWithTagCoroutine(t *testing.T) {
	var caught *Fault
	co := NewCoroutine[int](func(f *Fault) { caught = f })
	co.Resume(func() (int, CoroutineStatus) { return co.Stop(0) })
	require.True(t, co.Finished())

	co.Resume(func() (int, CoroutineStatus) {
		t.Fatal("step must not run on a finished coroutine")
		return 0, Finished
	})
	require.NotNil(t, caught)
	require.Equal(t, TagCoroutine, caught.Tag)
}
