package reactive

// Memo is a derived value recomputed on demand.
//
// A memo does not recompute when its inputs change; it only becomes dirty and
// passes the notification on to its own readers. The next Get recomputes it.
type Memo[T any] struct {
	g     *Graph
	fn    func() T
	v     T
	dirty bool
	runs  int
	deps  map[source]struct{}
	subs  map[subscriber]struct{}
}

// NewMemo returns a memo for fn. fn is not called until the first Get.
func NewMemo[T any](g *Graph, fn func() T) *Memo[T] {
	return &Memo[T]{
		g:     g,
		fn:    fn,
		dirty: true,
		deps:  map[source]struct{}{},
		subs:  map[subscriber]struct{}{},
	}
}

// Get returns the memoized value, recomputing it first when dirty, and
// subscribes the running computation.
func (m *Memo[T]) Get() T {
	if m.dirty {
		m.recompute()
	}
	m.g.track(m)
	return m.v
}

// Dirty reports whether the next Get recomputes.
func (m *Memo[T]) Dirty() bool {
	return m.dirty
}

// Runs returns how many times the memo recomputed.
func (m *Memo[T]) Runs() int {
	return m.runs
}

// Invalidate marks the memo dirty as if one of its inputs changed.
func (m *Memo[T]) Invalidate() {
	m.g.Batch(m.notify)
}

func (m *Memo[T]) recompute() {
	for s := range m.deps {
		s.unsubscribe(m)
	}
	clear(m.deps)
	prev := m.g.current
	m.g.current = m
	defer func() { m.g.current = prev }()
	m.dirty = false
	m.runs++
	m.v = m.fn()
}

func (m *Memo[T]) notify() {
	if m.dirty {
		return
	}
	m.dirty = true
	notifyAll(m.subs)
}

func (m *Memo[T]) track(s source) {
	m.deps[s] = struct{}{}
}

func (m *Memo[T]) subscribe(s subscriber) {
	m.subs[s] = struct{}{}
}

func (m *Memo[T]) unsubscribe(s subscriber) {
	delete(m.subs, s)
}
