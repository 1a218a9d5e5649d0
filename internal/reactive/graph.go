package reactive

import (
	"container/heap"
	"log/slog"
)

// maxFlushRuns bounds the number of computation runs in a single flush so a
// computation that keeps invalidating itself cannot spin forever.
const maxFlushRuns = 1 << 20

// subscriber is notified when one of its sources changes.
type subscriber interface {
	notify()
}

// source is something a subscriber can read from.
type source interface {
	subscribe(s subscriber)
	unsubscribe(s subscriber)
}

// tracker is a subscriber that records the sources it reads.
type tracker interface {
	subscriber
	track(s source)
}

// Graph schedules recomputation for the values and computations created from it.
type Graph struct {
	seq      uint64
	current  tracker
	queue    computationQueue
	depth    int
	flushing bool
	log      *slog.Logger
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{log: slog.Default()}
}

// SetLogger sets the logger used to report runaway flushes.
func (g *Graph) SetLogger(l *slog.Logger) {
	if l != nil {
		g.log = l
	}
}

// Batch runs fn and defers flushing queued computations until the outermost
// batch returns.
func (g *Graph) Batch(fn func()) {
	g.depth++
	defer func() {
		g.depth--
		if g.depth == 0 {
			g.flush()
		}
	}()
	fn()
}

// Untracked runs fn without subscribing the running computation to anything
// fn reads.
func (g *Graph) Untracked(fn func()) {
	prev := g.current
	g.current = nil
	defer func() { g.current = prev }()
	fn()
}

// Observe creates a computation, runs it once immediately and re-runs it
// whenever a value it read changes.
func (g *Graph) Observe(fn func()) *Computation {
	g.seq++
	c := &Computation{g: g, seq: g.seq, fn: fn, deps: map[source]struct{}{}, index: -1}
	g.Batch(c.run)
	return c
}

// Pending returns the number of queued computations.
func (g *Graph) Pending() int {
	return g.queue.Len()
}

func (g *Graph) track(s source) {
	if g.current != nil {
		s.subscribe(g.current)
		g.current.track(s)
	}
}

func (g *Graph) enqueue(c *Computation) {
	heap.Push(&g.queue, c)
}

func (g *Graph) flush() {
	if g.flushing {
		return
	}
	g.flushing = true
	defer func() { g.flushing = false }()
	runs := 0
	for g.queue.Len() > 0 {
		c := heap.Pop(&g.queue).(*Computation)
		if c.stopped {
			continue
		}
		runs++
		if runs > maxFlushRuns {
			g.log.Warn("reactive flush aborted", "runs", runs, "pending", g.queue.Len())
			for g.queue.Len() > 0 {
				heap.Pop(&g.queue).(*Computation).index = -1
			}
			return
		}
		c.run()
	}
}

// notifyAll notifies every subscriber in subs.
func notifyAll(subs map[subscriber]struct{}) {
	if len(subs) == 0 {
		return
	}
	// Copy so that notifications may re-subscribe while we iterate.
	list := make([]subscriber, 0, len(subs))
	for s := range subs {
		list = append(list, s)
	}
	for _, s := range list {
		s.notify()
	}
}

// computationQueue orders queued computations by creation sequence.
type computationQueue []*Computation

func (q computationQueue) Len() int           { return len(q) }
func (q computationQueue) Less(i, j int) bool { return q[i].seq < q[j].seq }
func (q computationQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *computationQueue) Push(x any) {
	c := x.(*Computation)
	c.index = len(*q)
	*q = append(*q, c)
}

func (q *computationQueue) Pop() any {
	old := *q
	n := len(old)
	c := old[n-1]
	old[n-1] = nil
	c.index = -1
	*q = old[:n-1]
	return c
}
