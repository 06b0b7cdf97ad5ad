package atomicref

// Optional is an atomic holder for an optional pointer to an eternal T.
//
// Absence is encoded as nil, which no live value can have. The zero
// Optional is a valid, empty holder.
//
// Thread Safety: all methods are safe for concurrent use and wait-free.
type Optional[T any] struct {
	s slot[T]
}

// NewOptional returns an Optional seeded with initial; nil yields an empty
// holder.
func NewOptional[T any](initial *T) *Optional[T] {
	r := &Optional[T]{}
	r.s.p.Store(initial)
	return r
}

// Load returns the current pointer and whether one is present.
//
// Valid orderings: Relaxed, Acquire, SeqCst.
func (r *Optional[T]) Load(o Ordering) (*T, bool) {
	v := r.s.load(o)
	return v, v != nil
}

// Store replaces the current pointer with v; nil empties the holder.
//
// Valid orderings: Relaxed, Release, SeqCst.
func (r *Optional[T]) Store(v *T, o Ordering) {
	r.s.store(v, o)
}

// Swap replaces the current pointer with v (nil empties the holder) and
// returns the previous pointer and whether one was present.
//
// All orderings are valid.
func (r *Optional[T]) Swap(v *T, o Ordering) (*T, bool) {
	old := r.s.swap(v, o)
	return old, old != nil
}
