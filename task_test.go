package rtcore

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTask_RunsToCompletionAndResolvesThen(t *testing.T) {
	task := NewTask[int](nil)
	var got int
	task.Then(NewDelegate1(func(v int) { got = v }))

	step := func() (int, CoroutineStatus) {
		if task.Label() == 0 {
			return task.Yield(1, 10)
		}
		return task.Stop(20)
	}

	task.Resume(step)
	require.False(t, task.Finished())
	require.Zero(t, got, "Then must not fire before the task finishes")

	task.Resume(step)
	require.True(t, task.Finished())
	require.Equal(t, 20, got)
}

func TestTask_ThenAfterFinishDeliversImmediately(t *testing.T) {
	task := NewTask[string](nil)
	task.Resume(func() (string, CoroutineStatus) { return task.Stop("done") })
	require.True(t, task.Finished())

	var got string
	task.Then(NewDelegate1(func(v string) { got = v }))
	require.Equal(t, "done", got)
}

func TestTask_GuardPanicsOnReentrantResume(t *testing.T) {
	task := NewTask[int](nil)
	require.Panics(t, func() {
		task.Guard(func() {
			task.Resume(func() (int, CoroutineStatus) { return task.Stop(0) })
		})
	})
}

// TestTask_ReentrantResumeCoalescesInsteadOfRecursingProperty12 is
// Testable property 12: a task whose yield causes a consumer to
// resume the same task observes the nested call return immediately
// (it was already Busy), while the outer Resume call keeps stepping
// the coroutine in a loop rather than growing the call stack.
func TestTask_ReentrantResumeCoalescesInsteadOfRecursingProperty12(t *testing.T) {
	task := NewTask[int](nil)
	calls := 0
	var step func() (int, CoroutineStatus)
	step = func() (int, CoroutineStatus) {
		calls++
		switch task.Label() {
		case 0:
			// Simulate a consumer that, upon observing this yield,
			// turns around and resumes the same task again
			// synchronously and inline (no new goroutine, no trampoline
			// back through a scheduler tick).
			task.Resume(step)
			return task.Yield(1, 1)
		case 1:
			return task.Yield(2, 2)
		default:
			return task.Stop(3)
		}
	}

	task.Resume(step)
	require.Equal(t, 2, calls, "the nested Resume call must be coalesced into the outer call's loop")
	require.False(t, task.Finished())
	require.Equal(t, 2, task.Label())

	var final int
	task.Then(NewDelegate1(func(v int) { final = v }))
	task.Resume(step)
	require.Equal(t, 3, calls)
	require.True(t, task.Finished())
	require.Equal(t, 3, final)
}

func TestTask_ResolverDrivesCompletionIndependentlyOfResume(t *testing.T) {
	task := NewTask[int](nil)
	var got int
	task.Then(NewDelegate1(func(v int) { got = v }))

	// A task cancelled from outside still completes its Thenable, via
	// the producer-only Resolver handle, without ever stepping the
	// coroutine again.
	task.Resolver().Resolve(-1)
	require.Equal(t, -1, got)
}
