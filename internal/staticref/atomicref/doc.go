// Package atomicref implements lock-free holders for pointers to eternal values.
//
// An eternal value is one that is never freed, moved or mutated once it has
// been published: a package-level variable, an interned string, a captured
// call-site record. A holder keeps exactly one pointer to such a value in a
// single machine-word atomic slot and lets any number of goroutines read and
// replace it concurrently.
//
// Two variants share one mechanism:
//
//   - Ref[T]: always holds a non-nil pointer.
//   - Optional[T]: may be empty; emptiness is encoded as the nil pointer.
//
// Operations:
//
//	r := atomicref.New(&tag)
//	cur := r.Load(atomicref.Acquire)
//	r.Store(&other, atomicref.Release)
//	prev := r.Swap(&tag, atomicref.AcqRel)
//
// # Memory Ordering
//
// Every operation names an Ordering and there is no default: the right
// ordering depends on what the surrounding program publishes through the
// holder. Go's sync/atomic operations are sequentially consistent, so
// each requested ordering is honored by a SeqCst access, which satisfies
// every weaker contract. Orderings that are meaningless for an operation
// (Release loads, Acquire stores) are rejected with a panic.
//
// # Performance
//
//   - Load:  one atomic load, 0 allocs
//   - Store: one atomic store, 0 allocs
//   - Swap:  one atomic exchange, 0 allocs
//
// All three are wait-free.
package atomicref
