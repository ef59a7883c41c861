package rtcore

import "unsafe"

// actionNodeFromLink recovers the enclosing *ActionNode from a pointer
// to its embedded link field, using the same field-offset arithmetic
// as pool.go's slotFromValue — the intrusive list stores *Node values,
// and this is how an intrusive container recovers its element type
// without an interface vtable or a second allocation per entry.
func actionNodeFromLink(n *Node) *ActionNode {
	var zero ActionNode
	base := uintptr(unsafe.Pointer(n)) - unsafe.Offsetof(zero.link)
	return (*ActionNode)(unsafe.Pointer(base))
}

// Scheduler is the deadline-ordered dispatcher: a single intrusive
// list of ActionNodes kept sorted ascending by deadline, with a
// tie-break among equal deadlines that depends on which insertion
// call the caller used (FIFO for ScheduleAfter, LIFO for
// ScheduleBefore). This is a deliberate divergence from the teacher's
// container/heap-based timerHeap, which cannot express a stable,
// caller-chosen tie-break at equal priority — see DESIGN.md.
type Scheduler struct {
	crit         CriticalSection
	panicOn      PanicHandler
	list         List
	oneStats     *gapStats
	allStats     *gapStats
	knownTick    Tick
	hasKnownTick bool
}

// NewScheduler constructs a Scheduler. See WithCriticalSection,
// WithPanicHandler, WithStatistics, WithStatisticsWindow.
func NewScheduler(opts ...Option) *Scheduler {
	cfg := resolveOptions(opts)
	s := &Scheduler{
		crit:    cfg.crit,
		panicOn: cfg.panicHandler,
	}
	s.list.init()
	s.oneStats = newGapStats(cfg.statistics, cfg.statisticsWindow)
	s.allStats = newGapStats(cfg.statistics, cfg.statisticsWindow)
	return s
}

// Start initializes the scheduler's known tick without dispatching
// anything, for callers that want HasNextTick/ScheduleAfter's
// relative delays to be meaningful before the first ExecuteOne.
func (s *Scheduler) Start(now Tick) {
	exit := s.crit.Enter()
	defer exit()
	s.knownTick = now
	s.hasKnownTick = true
}

// Len returns the number of nodes currently scheduled.
func (s *Scheduler) Len() int {
	exit := s.crit.Enter()
	defer exit()
	return s.list.Len()
}

// unschedule removes node from the list if it is currently scheduled
// on this Scheduler. Must be called with the critical section held.
func (s *Scheduler) unschedule(node *ActionNode) {
	if node.kind == actionTimer && node.sched == s {
		s.list.Unlink(&node.link)
		node.sched = nil
		node.kind = actionNone
	}
}

// insertFIFO inserts node's link at the position that keeps the list
// sorted ascending by deadline, after every already-present node at
// an equal deadline.
func (s *Scheduler) insertFIFO(node *ActionNode) {
	for ln := range s.list.All() {
		existing := actionNodeFromLink(ln)
		if node.deadline != existing.deadline && Precedes(node.deadline, existing.deadline) {
			s.list.InsertBefore(ln, &node.link)
			return
		}
	}
	s.list.PushBack(&node.link)
}

// insertLIFO inserts node's link at the position that keeps the list
// sorted ascending by deadline, before every already-present node at
// an equal or later deadline.
func (s *Scheduler) insertLIFO(node *ActionNode) {
	for ln := range s.list.All() {
		existing := actionNodeFromLink(ln)
		if node.deadline == existing.deadline || Precedes(node.deadline, existing.deadline) {
			s.list.InsertBefore(ln, &node.link)
			return
		}
	}
	s.list.PushBack(&node.link)
}

func (s *Scheduler) armLocked(node *ActionNode, delay, period Tick, insert func(*ActionNode)) {
	if node.IsListening() {
		s.panicOn(newFault(TagTask, "schedule of an ActionNode currently listening on a multicast"))
		return
	}
	s.unschedule(node)
	node.deadline = s.knownTick + delay
	node.period = period
	node.sched = s
	node.kind = actionTimer
	insert(node)
	logEvent(LevelDebug, CategoryScheduler, "scheduled", map[string]any{"deadline": node.deadline, "period": period})
}

// ScheduleAfter arms node for sched.known_tick()+delay, with the
// given period (0 for one-shot). Among nodes sharing a deadline, node
// is placed after every node already present at that deadline (FIFO
// tie-break).
func (s *Scheduler) ScheduleAfter(node *ActionNode, delay, period Tick) {
	exit := s.crit.Enter()
	defer exit()
	s.armLocked(node, delay, period, s.insertFIFO)
}

// ScheduleBefore is ScheduleAfter with the opposite tie-break: node is
// placed before every node already present at its deadline (LIFO
// tie-break).
func (s *Scheduler) ScheduleBefore(node *ActionNode, delay, period Tick) {
	exit := s.crit.Enter()
	defer exit()
	s.armLocked(node, delay, period, s.insertLIFO)
}

// ScheduleLater is shorthand for ScheduleAfter(node, 1, 0).
func (s *Scheduler) ScheduleLater(node *ActionNode) {
	s.ScheduleAfter(node, 1, 0)
}

// ScheduleNow is shorthand for ScheduleAfter(node, 0, 0).
func (s *Scheduler) ScheduleNow(node *ActionNode) {
	s.ScheduleAfter(node, 0, 0)
}

// cancel removes node from this scheduler. Called by ActionNode.Cancel.
func (s *Scheduler) cancel(node *ActionNode) {
	exit := s.crit.Enter()
	defer exit()
	s.unschedule(node)
}

// HasNextTick reports the earliest scheduled deadline, if any.
func (s *Scheduler) HasNextTick() (Tick, bool) {
	exit := s.crit.Enter()
	defer exit()
	front := s.list.Front()
	if front == nil {
		return 0, false
	}
	return actionNodeFromLink(front).deadline, true
}

// KnownTick returns the most recent now passed to Start, ExecuteOne,
// or ExecuteAll, and whether one has ever been observed.
func (s *Scheduler) KnownTick() (Tick, bool) {
	exit := s.crit.Enter()
	defer exit()
	return s.knownTick, s.hasKnownTick
}

// ExecuteOne dispatches at most one due node (deadline <= now in
// wraparound order) and reports whether it did. The node's completion
// Thenable resolves outside the critical section, so its consumer may
// freely reschedule or cancel any ActionNode, including the one
// currently firing; a periodic node that was not relinked by its own
// consumer is automatically reinserted at known_tick+period using the
// FIFO tie-break: the next deadline is anchored to the dispatch tick,
// not to the previous deadline, so a late dispatch shifts every later
// one instead of causing catch-up firings.
func (s *Scheduler) ExecuteOne(now Tick) bool {
	exit := s.crit.Enter()
	s.knownTick = now
	s.hasKnownTick = true

	front := s.list.Front()
	if front == nil {
		exit()
		return false
	}
	node := actionNodeFromLink(front)
	if !(Precedes(node.deadline, now) || node.deadline == now) {
		exit()
		return false
	}
	s.list.Unlink(front)
	node.sched = nil
	node.kind = actionNone
	exit()

	s.oneStats.observe(now)
	node.done.Resolve(struct{}{})

	exit2 := s.crit.Enter()
	if node.kind == actionNone && node.period > 0 {
		node.deadline = s.knownTick + node.period
		node.sched = s
		node.kind = actionTimer
		s.insertFIFO(node)
	}
	exit2()
	return true
}

// ExecuteAll dispatches every currently due node, in order, and
// returns how many it dispatched. Nodes scheduled by a consumer while
// ExecuteAll is running are dispatched too if their deadline is also
// <= now, matching the specification's "drain everything ready at
// this instant" semantics.
func (s *Scheduler) ExecuteAll(now Tick) int {
	count := 0
	for s.ExecuteOne(now) {
		count++
	}
	if count > 0 {
		s.allStats.observe(now)
	}
	return count
}

// Stats returns the scheduler's gap statistics, zero-valued unless
// WithStatistics enabled tracking.
func (s *Scheduler) Stats() SchedulerStats {
	exit := s.crit.Enter()
	defer exit()
	return SchedulerStats{
		ExecuteOneWorstCase:       s.oneStats.WorstCase(),
		ExecuteOneWindowedAverage: s.oneStats.WindowedAverage(),
		ExecuteAllWorstCase:       s.allStats.WorstCase(),
		ExecuteAllWindowedAverage: s.allStats.WindowedAverage(),
	}
}
