package reactive

// Computation is an eager derivation created by [Graph.Observe].
type Computation struct {
	g       *Graph
	seq     uint64
	fn      func()
	deps    map[source]struct{}
	index   int // position in the graph queue, -1 when not queued
	stopped bool
	runs    int
}

// Stop unsubscribes the computation from everything it read. It will not run
// again.
func (c *Computation) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	c.clearDeps()
}

// Stopped reports whether Stop was called.
func (c *Computation) Stopped() bool {
	return c.stopped
}

// Runs returns how many times the computation ran.
func (c *Computation) Runs() int {
	return c.runs
}

func (c *Computation) notify() {
	if c.stopped || c.index >= 0 {
		return
	}
	c.g.enqueue(c)
}

func (c *Computation) track(s source) {
	c.deps[s] = struct{}{}
}

func (c *Computation) clearDeps() {
	for s := range c.deps {
		s.unsubscribe(c)
	}
	clear(c.deps)
}

func (c *Computation) run() {
	if c.stopped {
		return
	}
	c.clearDeps()
	prev := c.g.current
	c.g.current = c
	defer func() { c.g.current = prev }()
	c.runs++
	c.fn()
}
