// Package staticref provides the public API for eternal-value holders.
//
// See doc.go for detailed documentation and examples.
package staticref

import (
	"github.com/kolkov/staticref/internal/staticref/atomicref"
	"github.com/kolkov/staticref/internal/staticref/depot"
	"github.com/kolkov/staticref/internal/staticref/location"
)

// Ordering is the memory ordering requested for a holder operation.
type Ordering = atomicref.Ordering

// Memory orderings. See the package documentation for which operations
// accept which ordering.
const (
	Relaxed = atomicref.Relaxed
	Acquire = atomicref.Acquire
	Release = atomicref.Release
	AcqRel  = atomicref.AcqRel
	SeqCst  = atomicref.SeqCst
)

// Ref is an atomic holder for a non-nil pointer to an eternal T.
//
// Methods:
//
//	Load(o Ordering) *T
//	Store(v *T, o Ordering)
//	Swap(v *T, o Ordering) *T
//
// Store and Swap panic on nil.
type Ref[T any] = atomicref.Ref[T]

// OptionalRef is an atomic holder for an optional pointer to an eternal T.
// The zero value is an empty holder.
//
// Methods:
//
//	Load(o Ordering) (*T, bool)
//	Store(v *T, o Ordering)          // nil empties the holder
//	Swap(v *T, o Ordering) (*T, bool)
type OptionalRef[T any] = atomicref.Optional[T]

// New returns a Ref seeded with initial. It panics if initial is nil.
//
// initial must point to data that is never mutated afterwards.
func New[T any](initial *T) *Ref[T] {
	return atomicref.New(initial)
}

// NewOptional returns an OptionalRef seeded with initial, or empty if
// initial is nil.
func NewOptional[T any](initial *T) *OptionalRef[T] {
	return atomicref.NewOptional(initial)
}

// Override swaps v into r and returns a function that puts the previous
// value back.
//
// Example:
//
//	restore := staticref.Override(tag, staticref.Intern("migration"))
//	defer restore()
//
// Overrides nest when restored in reverse order. restore uses a plain
// Store, so a value written by another goroutine in the meantime is
// overwritten.
func Override[T any](r *Ref[T], v *T) (restore func()) {
	prev := r.Swap(v, AcqRel)
	return func() {
		r.Store(prev, Release)
	}
}

// Text is an atomic holder for an eternal string.
type Text = Ref[string]

// OptionalText is an atomic holder for an optional eternal string.
type OptionalText = OptionalRef[string]

// NewText returns a Text seeded with initial. It panics if initial is nil.
func NewText(initial *string) *Text {
	return New(initial)
}

// NewOptionalText returns an OptionalText seeded with initial (nil for
// empty).
func NewOptionalText(initial *string) *OptionalText {
	return NewOptional(initial)
}

// Intern returns the canonical eternal pointer for s.
//
// Equal strings always yield the same pointer. Interned strings are never
// freed, so Intern should be used for a bounded set of values (tags,
// phases, component names), not for arbitrary user input.
func Intern(s string) *string {
	return depot.Text(s)
}

// Location is an immutable call-site record (file, line, column).
//
// Captured locations have Column == 0 because the Go runtime does not
// report columns.
type Location = location.Location

// AtomicLocation is an atomic holder for an eternal Location.
type AtomicLocation = Ref[Location]

// OptionalLocation is an atomic holder for an optional eternal Location.
type OptionalLocation = OptionalRef[Location]

// NewLocation returns an AtomicLocation seeded with initial. It panics if
// initial is nil.
func NewLocation(initial *Location) *AtomicLocation {
	return New(initial)
}

// NewOptionalLocation returns an OptionalLocation seeded with initial (nil
// for empty).
func NewOptionalLocation(initial *Location) *OptionalLocation {
	return NewOptional(initial)
}

// Here returns the eternal Location of the call to Here.
//
// The same call site always yields the same pointer.
func Here() *Location {
	return location.Caller(1)
}

// Caller returns the eternal Location of a call site on the current stack:
// skip 0 is the caller of Caller, 1 its caller, and so on. It returns nil
// if the frame does not exist.
func Caller(skip int) *Location {
	return location.Caller(skip + 1)
}
