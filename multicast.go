package rtcore

// Multicast is a broadcast dispatcher: zero or more ActionNode
// subscribers, notified in subscription order by Emit. It uses the
// specification's double-buffered protocol — swap which chain is
// active, then walk the snapshot and resolve each node's completion
// Thenable — so that a callback which resubscribes (itself, or a
// different node) during Emit lands on the chain that is now active
// rather than the one currently being walked. This swap-then-walk
// discipline plays the same role as the teacher's ring-buffer
// "scavenge batch" scheme in registry.go, adapted from an index-cursor
// ring to the intrusive list this package already has; the
// specification calls the buffer-swap load-bearing, and the dedicated
// batch list here is what keeps it from coalescing the two chains.
type Multicast struct {
	crit    CriticalSection
	panicOn PanicHandler
	active  List
}

// NewMulticast constructs a Multicast. See WithCriticalSection,
// WithPanicHandler.
func NewMulticast(opts ...Option) *Multicast {
	cfg := resolveOptions(opts)
	m := &Multicast{crit: cfg.crit, panicOn: cfg.panicHandler}
	m.active.init()
	return m
}

// Len returns the number of currently subscribed nodes.
func (m *Multicast) Len() int {
	exit := m.crit.Enter()
	defer exit()
	return m.active.Len()
}

func (m *Multicast) subscribe(node *ActionNode, persistent bool) {
	exit := m.crit.Enter()
	defer exit()

	if node.kind == actionTimer {
		m.panicOn(newFault(TagTask, "listen on an ActionNode currently scheduled on a scheduler"))
		return
	}
	if node.IsListening() {
		// node.listenOn's list is its own protected resource: an Emit
		// running concurrently on that instance walks and mutates the
		// same list, so the unlink must happen under that instance's
		// own critical section, not just m's.
		if prior := node.listenOn; prior != m {
			exitPrior := prior.crit.Enter()
			prior.active.Unlink(&node.link)
			exitPrior()
		} else {
			m.active.Unlink(&node.link)
		}
	}

	node.listenOn = m
	if persistent {
		node.kind = actionListenSubscribe
	} else {
		node.kind = actionListenOnce
	}
	m.active.PushBack(&node.link)
	logEvent(LevelDebug, CategoryMulticast, "subscribed", map[string]any{"persistent": persistent})
}

// ListenOnce subscribes node to m's next Emit only; it is
// automatically unsubscribed before its completion Thenable resolves.
func (a *ActionNode) ListenOnce(m *Multicast) {
	m.subscribe(a, false)
}

// ListenSubscribe subscribes node to every future Emit until Cancel
// is called, or the node relinks itself elsewhere during its own
// firing.
func (a *ActionNode) ListenSubscribe(m *Multicast) {
	m.subscribe(a, true)
}

// cancel removes node from this Multicast. Called by ActionNode.Cancel.
func (m *Multicast) cancel(node *ActionNode) {
	exit := m.crit.Enter()
	defer exit()
	if node.listenOn == m {
		m.active.Unlink(&node.link)
		node.listenOn = nil
		node.kind = actionNone
	}
}

// Emit dispatches to every currently subscribed node, in subscription
// order, and returns how many were notified. Each one-shot
// (ListenOnce) subscriber is fully detached before its completion
// Thenable resolves; each persistent (ListenSubscribe) subscriber is
// re-armed onto the live chain immediately after its Thenable
// resolves, unless that resolution's consumer itself cancelled or
// resubscribed the node, in which case the consumer's own decision
// wins and nothing further happens here.
func (m *Multicast) Emit() int {
	exit := m.crit.Enter()
	var batch List
	batch.init()
	for {
		front := m.active.PopFront()
		if front == nil {
			break
		}
		batch.PushBack(front)
	}
	exit()

	count := 0
	for {
		front := batch.PopFront()
		if front == nil {
			break
		}
		node := actionNodeFromLink(front)
		persistent := node.kind == actionListenSubscribe
		node.listenOn = nil
		node.kind = actionNone

		count++
		node.done.Resolve(struct{}{})

		if persistent && node.kind == actionNone {
			exit2 := m.crit.Enter()
			node.listenOn = m
			node.kind = actionListenSubscribe
			m.active.PushBack(&node.link)
			exit2()
		}
	}
	return count
}
