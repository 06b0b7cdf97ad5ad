// Package staticref provides lock-free holders for pointers to eternal values.
//
// An eternal value is data that is never freed, moved or mutated after it is
// published: a package-level variable, an interned string, a captured call
// site. Global metadata of this kind ("current diagnostic tag", "last
// recorded caller") is read far more often than it changes and must be
// replaceable from any goroutine without locks and without tearing. A
// holder keeps one pointer to such a value in a single atomic machine word.
//
// # Quick Start
//
//	var tag = staticref.NewText(staticref.Intern("boot"))
//
//	func handle() {
//		log.Printf("[%s] handling", *tag.Load(staticref.Acquire))
//	}
//
//	func enterMaintenance() {
//		restore := staticref.Override(tag, staticref.Intern("maintenance"))
//		defer restore()
//		// ...
//	}
//
// # API Overview
//
// The package provides:
//   - Generic holders: [Ref] (never empty) and [OptionalRef] (may be empty)
//   - Text holders: [Text], [OptionalText], [Intern]
//   - Location holders: [AtomicLocation], [OptionalLocation], [Here], [Caller]
//   - Scoped replacement: [Override]
//   - Version information: [GetInfo], [Version]
//
// Every holder supports exactly three operations: Load, Store and Swap.
// There is no compare-and-swap.
//
// # Memory Ordering
//
// Each operation takes an explicit [Ordering]; there is no default. Go's
// atomics are sequentially consistent, so every ordering is honored by a
// SeqCst access. Orderings that make no sense for an operation panic:
//
//	Load:  Relaxed, Acquire, SeqCst
//	Store: Relaxed, Release, SeqCst
//	Swap:  Relaxed, Acquire, Release, AcqRel, SeqCst
//
// Use Release for stores and Acquire for loads when the holder publishes
// data that other goroutines must see; Relaxed is enough when only the
// pointer itself matters.
//
// # Eternal Values
//
// Holders never own what they point to. Stored values must not be mutated
// once published. [Intern] and [Here] return canonical pointers from a
// process-wide depot that is never cleared, so equal inputs produce equal
// pointers and the pointers stay valid forever.
//
// # Performance Characteristics
//
//	Load:    one atomic load, 0 allocs, wait-free
//	Store:   one atomic store, 0 allocs, wait-free
//	Swap:    one atomic exchange, 0 allocs, wait-free
//	Intern:  ~20ns on a hit, one allocation on first sight
//	Here:    ~100ns on a hit, one allocation on first sight
//
// # Compatibility
//
//   - Go version: 1.24 or later
//   - CGO requirement: None
//   - Architecture: any platform with pointer-sized atomics
package staticref
