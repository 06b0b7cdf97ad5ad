// Package location captures eternal source-location records for call sites.
//
// A Location identifies a call site by file, line and column. Captured
// locations are interned in a process-wide depot keyed by their resolved
// file, line and function, so one call site always yields the same
// *Location, even when the function holding it is inlined into several
// callers, and that pointer stays valid forever. This makes them suitable for publishing through
// atomicref holders ("last recorded caller").
//
// Usage:
//
//	func record() {
//		last.Store(location.Caller(1), atomicref.Release) // caller of record
//	}
//
//	here := location.Here()
//	fmt.Println(here) // /path/to/file.go:42
//
// The Go runtime reports file and line only. Captured locations therefore
// have Column == 0; hand-built locations may carry a column.
package location

import (
	"fmt"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/kolkov/staticref/internal/staticref/depot"
)

// Location is an immutable call-site record.
type Location struct {
	// File is the absolute, slash-separated source file path.
	File string

	// Line is the 1-based line number.
	Line int

	// Column is the 1-based column, or 0 when unknown.
	Column int

	// Function is the fully qualified function containing the call site.
	// Empty for hand-built locations.
	Function string
}

// sites maps program counters to canonical locations. It is the fast path:
// an inlined call site has one PC per inlined copy, so several PCs may map
// to the same *Location.
var sites depot.Depot[uintptr, *Location]

// values holds the canonical Location for each resolved call site.
var values depot.Depot[Location, Location]

// Caller returns the eternal Location of a call site on the current stack.
//
// skip selects the frame: 0 is the caller of Caller, 1 its caller, and so
// on. Repeated captures of the same call site return the same pointer.
//
// Returns nil if the frame does not exist.
//
// Performance: ~300ns on first sight of a call site, ~100ns afterwards
// (runtime.Callers plus a depot hit on the PC).
//
// Thread Safety: Safe for concurrent calls.
func Caller(skip int) *Location {
	// Skip 2 frames:
	//   - runtime.Callers itself
	//   - Caller
	var pcs [1]uintptr
	if runtime.Callers(skip+2, pcs[:]) == 0 {
		return nil
	}

	pc := pcs[0]
	return *sites.Intern(pc, func() *Location {
		l := resolve(pcs[:])
		return values.Intern(l, func() Location { return l })
	})
}

// Here returns the eternal Location of the call to Here.
func Here() *Location {
	return Caller(1)
}

// resolve turns a single captured program counter into a Location.
//
// runtime.CallersFrames accounts for inlining and converts the return
// address into the call address.
func resolve(pcs []uintptr) Location {
	frame, _ := runtime.CallersFrames(pcs).Next()
	return Location{
		File:     frame.File,
		Line:     frame.Line,
		Function: frame.Function,
	}
}

// Stats returns statistics about captured call sites.
//
// Returns:
//   - uniqueSites: Number of distinct call sites captured so far
//   - totalMemory: Approximate memory pinned by them and their PC index
func Stats() (uniqueSites int, totalMemory int64) {
	uniqueSites, totalMemory = values.Stats()
	_, pcMemory := sites.Stats()
	totalMemory += pcMemory
	values.Range(func(_ Location, l *Location) bool {
		totalMemory += int64(len(l.File) + len(l.Function))
		return true
	})
	return uniqueSites, totalMemory
}

// String formats the location as "file:line:column", dropping the column
// when it is unknown.
//
// Returns "<unknown>" for a nil location.
func (l *Location) String() string {
	if l == nil {
		return "<unknown>"
	}
	return format(l.File, l.Line, l.Column)
}

// Rel formats the location like String, with File made relative to root
// when it lies beneath root.
func (l *Location) Rel(root string) string {
	if l == nil {
		return "<unknown>"
	}

	file := l.File
	prefix := strings.TrimSuffix(filepath.ToSlash(root), "/") + "/"
	if root != "" && strings.HasPrefix(file, prefix) {
		file = path.Clean(strings.TrimPrefix(file, prefix))
	}
	return format(file, l.Line, l.Column)
}

func format(file string, line, column int) string {
	if column > 0 {
		return fmt.Sprintf("%s:%d:%d", file, line, column)
	}
	return fmt.Sprintf("%s:%d", file, line)
}
