package staticref

import (
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// TestTextScenario tests the text instantiation end to end.
func TestTextScenario(t *testing.T) {
	hello := Intern("Hello, world!")
	next := Intern("New string!")

	tag := NewText(hello)
	if old := tag.Swap(next, Relaxed); old != hello {
		t.Errorf("Swap() = %q, want %q", *old, *hello)
	}
	if cur := tag.Load(Relaxed); cur != next {
		t.Errorf("Load() = %q, want %q", *cur, *next)
	}
}

// TestOptionalTextScenario tests the optional text instantiation.
func TestOptionalTextScenario(t *testing.T) {
	a, b := Intern("A"), Intern("B")

	tag := NewOptionalText(a)
	if old, ok := tag.Swap(b, AcqRel); !ok || old != a {
		t.Errorf("Swap(B) = (%v, %v), want (A, true)", old, ok)
	}
	if old, ok := tag.Swap(nil, AcqRel); !ok || old != b {
		t.Errorf("Swap(nil) = (%v, %v), want (B, true)", old, ok)
	}
	if cur, ok := tag.Load(Acquire); ok || cur != nil {
		t.Errorf("Load() = (%v, %v), want (nil, false)", cur, ok)
	}
}

// TestInternIdentity tests that equal texts share a pointer.
func TestInternIdentity(t *testing.T) {
	a := Intern("identity")
	b := Intern(strings.Repeat("identity", 1))
	if a != b {
		t.Error("Intern returned different pointers for equal strings")
	}
	if *a != "identity" {
		t.Errorf("Intern value = %q, want %q", *a, "identity")
	}
}

// getCallerLocation returns the location of the call to it.
//
//go:noinline
func getCallerLocation() *Location {
	return Caller(1)
}

// TestLocationScenario tests the location instantiation: two captures from
// different lines, swapped through one holder.
func TestLocationScenario(t *testing.T) {
	location1, line1 := getCallerLocation(), currentLine()
	location2, line2 := getCallerLocation(), currentLine()

	opts := cmpopts.IgnoreFields(Location{}, "Function")
	_, file, _, _ := runtime.Caller(0)
	if diff := cmp.Diff(Location{File: file, Line: line1}, *location1, opts); diff != "" {
		t.Errorf("location1 mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Location{File: file, Line: line2}, *location2, opts); diff != "" {
		t.Errorf("location2 mismatch (-want +got):\n%s", diff)
	}

	holder := NewLocation(location1)
	if old := holder.Swap(location2, Relaxed); old != location1 {
		t.Errorf("Swap() = %v, want %v", old, location1)
	}
	if cur := holder.Load(Relaxed); cur != location2 {
		t.Errorf("Load() = %v, want %v", cur, location2)
	}
}

func currentLine() int {
	_, _, line, _ := runtime.Caller(1)
	return line
}

// TestOptionalLocationScenario tests the optional location instantiation,
// including hand-built locations with a column.
func TestOptionalLocationScenario(t *testing.T) {
	built := &Location{File: "src/lib.rs", Line: 43, Column: 21}
	captured := Here()

	holder := NewOptionalLocation(nil)
	if _, ok := holder.Load(Relaxed); ok {
		t.Fatal("new empty holder reports a value")
	}

	holder.Store(built, Release)
	got, ok := holder.Load(Acquire)
	if !ok || got != built {
		t.Fatalf("Load() = (%v, %v), want (%v, true)", got, ok, built)
	}
	if got.String() != "src/lib.rs:43:21" {
		t.Errorf("String() = %q, want %q", got.String(), "src/lib.rs:43:21")
	}

	if old, ok := holder.Swap(captured, AcqRel); !ok || old != built {
		t.Errorf("Swap() = (%v, %v), want (%v, true)", old, ok, built)
	}
	if old, ok := holder.Swap(nil, AcqRel); !ok || old != captured {
		t.Errorf("Swap(nil) = (%v, %v), want (%v, true)", old, ok, captured)
	}
	if _, ok := holder.Load(SeqCst); ok {
		t.Error("Load() after Swap(nil) reports a value")
	}
}

// TestHereIdentity tests that one call site yields one pointer.
func TestHereIdentity(t *testing.T) {
	var locs [3]*Location
	for i := range locs {
		locs[i] = Here()
	}
	if locs[0] != locs[1] || locs[1] != locs[2] {
		t.Error("Here returned different pointers for the same call site")
	}
	if !strings.HasSuffix(locs[0].Function, ".TestHereIdentity") {
		t.Errorf("Function = %q, want suffix %q", locs[0].Function, ".TestHereIdentity")
	}
}

// TestOverrideNested tests that nested overrides unwind in order.
func TestOverrideNested(t *testing.T) {
	base, outer, inner := Intern("base"), Intern("outer"), Intern("inner")
	r := NewText(base)

	restoreOuter := Override(r, outer)
	restoreInner := Override(r, inner)
	if got := r.Load(Acquire); got != inner {
		t.Errorf("during inner override Load() = %q, want %q", *got, *inner)
	}

	restoreInner()
	if got := r.Load(Acquire); got != outer {
		t.Errorf("after inner restore Load() = %q, want %q", *got, *outer)
	}

	restoreOuter()
	if got := r.Load(Acquire); got != base {
		t.Errorf("after outer restore Load() = %q, want %q", *got, *base)
	}
}

// TestConcurrentTag tests a shared tag read and overridden from many
// goroutines.
func TestConcurrentTag(t *testing.T) {
	const numGoroutines = 50
	const iterations = 200

	tags := []*string{Intern("t0"), Intern("t1"), Intern("t2"), Intern("t3")}
	valid := map[*string]bool{}
	for _, p := range tags {
		valid[p] = true
	}

	r := NewText(tags[0])

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	errs := make(chan string, numGoroutines)

	for g := 0; g < numGoroutines; g++ {
		go func(g int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				if g%2 == 0 {
					r.Store(tags[(g+i)%len(tags)], Release)
					continue
				}
				if p := r.Load(Acquire); !valid[p] {
					errs <- *p
					return
				}
			}
		}(g)
	}
	wg.Wait()
	close(errs)

	for s := range errs {
		t.Errorf("Load() observed unexpected tag %q", s)
	}
}

// TestGetInfo tests version and depot statistics.
func TestGetInfo(t *testing.T) {
	Intern("info-sample")
	Here()

	info := GetInfo()
	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.InternedTexts < 1 {
		t.Errorf("InternedTexts = %d, want >= 1", info.InternedTexts)
	}
	if info.CapturedSites < 1 {
		t.Errorf("CapturedSites = %d, want >= 1", info.CapturedSites)
	}
	if info.PinnedBytes <= 0 {
		t.Errorf("PinnedBytes = %d, want > 0", info.PinnedBytes)
	}
}
