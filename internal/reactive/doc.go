// Package reactive provides a small, explicit dependency-tracking graph.
//
// # Overview
//
// A [Graph] owns every tracked cell. [Value] is a mutable source; [Memo] is a
// lazily recomputed derived value; [Computation] is an eager side effect that
// re-runs when anything it read changes.
//
// Reading a [Value] or [Memo] while a computation or memo is running subscribes
// the running one to what was read. A later [Value.Set] queues every eager
// subscriber and marks every memo subscriber dirty.
//
// # Ordering
//
// Queued computations run in creation order. Register dependents after the
// computations they depend on and each one runs at most once per flush, after
// all of its inputs settled. Writes inside [Graph.Batch] are flushed once, when
// the outermost batch returns.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. All reads and writes happen on the
// caller's goroutine and recomputation is synchronous.
package reactive
