package atomicref

import "fmt"

// Ordering is the memory ordering requested for a single holder operation.
type Ordering uint8

const (
	// Relaxed guarantees atomicity of the pointer only.
	Relaxed Ordering = iota

	// Acquire orders later accesses after the load that observes a value.
	Acquire

	// Release orders earlier accesses before the store that publishes a value.
	Release

	// AcqRel combines Acquire and Release; valid for Swap only.
	AcqRel

	// SeqCst adds a single total order over all SeqCst operations.
	SeqCst
)

var orderingNames = [...]string{
	Relaxed: "Relaxed",
	Acquire: "Acquire",
	Release: "Release",
	AcqRel:  "AcqRel",
	SeqCst:  "SeqCst",
}

// String returns the ordering name.
func (o Ordering) String() string {
	if int(o) < len(orderingNames) {
		return orderingNames[o]
	}
	return fmt.Sprintf("Ordering(%d)", uint8(o))
}

// op identifies a holder operation for ordering validation.
type op uint8

const (
	opLoad op = iota
	opStore
	opSwap
)

// validFor reports whether o is a legal ordering for the operation.
//
//	Load:  Relaxed, Acquire, SeqCst
//	Store: Relaxed, Release, SeqCst
//	Swap:  any
func (o Ordering) validFor(k op) bool {
	switch o {
	case Relaxed, SeqCst:
		return true
	case Acquire:
		return k != opStore
	case Release:
		return k != opLoad
	case AcqRel:
		return k == opSwap
	}
	return false
}

// check panics if o cannot be used for the operation.
func (o Ordering) check(k op) {
	if !o.validFor(k) {
		panic(fmt.Sprintf("staticref: %v ordering is not valid for %s", o, opNames[k]))
	}
}

var opNames = [...]string{
	opLoad:  "Load",
	opStore: "Store",
	opSwap:  "Swap",
}
