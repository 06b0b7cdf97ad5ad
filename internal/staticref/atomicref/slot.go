package atomicref

import "sync/atomic"

// slot is the machine-word cell shared by Ref and Optional.
//
// It stores a *T in an atomic.Pointer and validates the requested ordering
// on every access. A nil pointer is the empty encoding; whether it may be
// stored is decided by the variant that embeds the slot.
//
// Memory layout: one pointer (8 bytes on 64-bit platforms).
type slot[T any] struct {
	p atomic.Pointer[T]
}

func (s *slot[T]) load(o Ordering) *T {
	o.check(opLoad)
	return s.p.Load()
}

func (s *slot[T]) store(v *T, o Ordering) {
	o.check(opStore)
	s.p.Store(v)
}

func (s *slot[T]) swap(v *T, o Ordering) *T {
	o.check(opSwap)
	return s.p.Swap(v)
}
