package reactive

// Value is a mutable tracked cell.
type Value[T any] struct {
	g     *Graph
	v     T
	equal func(a, b T) bool
	subs  map[subscriber]struct{}
}

// NewValue returns a value that notifies its subscribers on every Set.
func NewValue[T any](g *Graph, v T) *Value[T] {
	return &Value[T]{g: g, v: v, subs: map[subscriber]struct{}{}}
}

// NewValueFunc returns a value that only notifies its subscribers when equal
// reports the new value differs from the current one.
func NewValueFunc[T any](g *Graph, v T, equal func(a, b T) bool) *Value[T] {
	x := NewValue(g, v)
	x.equal = equal
	return x
}

// NewComparableValue returns a value that skips notification when the new
// value is == to the current one.
func NewComparableValue[T comparable](g *Graph, v T) *Value[T] {
	return NewValueFunc(g, v, func(a, b T) bool { return a == b })
}

// Get returns the current value and subscribes the running computation.
func (v *Value[T]) Get() T {
	v.g.track(v)
	return v.v
}

// Peek returns the current value without subscribing.
func (v *Value[T]) Peek() T {
	return v.v
}

// Set replaces the value and notifies subscribers.
func (v *Value[T]) Set(x T) {
	if v.equal != nil && v.equal(v.v, x) {
		return
	}
	v.v = x
	if len(v.subs) == 0 {
		return
	}
	v.g.Batch(func() { notifyAll(v.subs) })
}

// Update replaces the value with fn applied to the current value.
func (v *Value[T]) Update(fn func(T) T) {
	v.Set(fn(v.v))
}

func (v *Value[T]) subscribe(s subscriber) {
	v.subs[s] = struct{}{}
}

func (v *Value[T]) unsubscribe(s subscriber) {
	delete(v.subs, s)
}
