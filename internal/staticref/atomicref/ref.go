package atomicref

// Ref is an atomic holder for a pointer to an eternal T.
//
// A Ref never holds nil. Values stored in it must not be mutated after they
// are published; the holder does not own them and never frees them.
//
// The zero Ref is not usable; construct one with New.
//
// Thread Safety: all methods are safe for concurrent use and wait-free.
type Ref[T any] struct {
	s slot[T]
}

// New returns a Ref seeded with initial.
//
// New panics if initial is nil.
func New[T any](initial *T) *Ref[T] {
	r := &Ref[T]{}
	r.s.p.Store(mustRef(initial))
	return r
}

// Load returns the current pointer.
//
// Valid orderings: Relaxed, Acquire, SeqCst.
func (r *Ref[T]) Load(o Ordering) *T {
	return r.s.load(o)
}

// Store replaces the current pointer with v. The previous pointer is
// discarded.
//
// Valid orderings: Relaxed, Release, SeqCst. Store panics if v is nil.
func (r *Ref[T]) Store(v *T, o Ordering) {
	r.s.store(mustRef(v), o)
}

// Swap replaces the current pointer with v and returns the previous one as
// a single indivisible step. Each stored pointer is returned by at most one
// Swap.
//
// All orderings are valid. Swap panics if v is nil.
func (r *Ref[T]) Swap(v *T, o Ordering) *T {
	return r.s.swap(mustRef(v), o)
}

func mustRef[T any](v *T) *T {
	if v == nil {
		panic("staticref: nil reference stored in non-optional holder")
	}
	return v
}
