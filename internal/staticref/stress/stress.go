// Package stress checks holder guarantees under concurrent load.
//
// Run drives an atomicref.Ref of interned text with concurrent writers that
// Swap in unique values and readers that Load continuously, while writers
// also publish their call site through an atomicref.Optional of locations.
// Afterwards it verifies:
//
//  1. Atomicity: every value a reader observed was actually stored.
//  2. Swap linearizability: every stored value (including the initial one)
//     was returned by exactly one Swap or is the final value.
//
// It is used by the package tests and by `staticref stress`.
package stress

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kolkov/staticref/internal/staticref/atomicref"
	"github.com/kolkov/staticref/internal/staticref/depot"
	"github.com/kolkov/staticref/internal/staticref/location"
)

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("stress: invalid config")
	// ErrTornRead is returned when a reader observes a value that was never stored.
	ErrTornRead = errors.New("stress: load observed a value that was never stored")
	// ErrLinearizability is returned when swap results do not account for
	// every stored value exactly once.
	ErrLinearizability = errors.New("stress: swap results are not linearizable")
)

// Config controls a stress run.
type Config struct {
	// Writers is the number of goroutines calling Swap.
	Writers int

	// Readers is the number of goroutines calling Load.
	Readers int

	// Swaps is the number of Swap calls per writer.
	Swaps int

	// Timeout bounds the run. Zero means no bound. A run that hits the
	// timeout still verifies the swaps that completed.
	Timeout time.Duration
}

// DefaultConfig returns the configuration used when nothing is specified.
func DefaultConfig() Config {
	return Config{
		Writers: 8,
		Readers: 8,
		Swaps:   10000,
		Timeout: 30 * time.Second,
	}
}

// Validate reports whether c describes a runnable stress test.
func (c Config) Validate() error {
	switch {
	case c.Writers < 1:
		return fmt.Errorf("%w: writers must be at least 1, got %d", ErrInvalidConfig, c.Writers)
	case c.Readers < 0:
		return fmt.Errorf("%w: readers must not be negative, got %d", ErrInvalidConfig, c.Readers)
	case c.Swaps < 1:
		return fmt.Errorf("%w: swaps must be at least 1, got %d", ErrInvalidConfig, c.Swaps)
	case c.Timeout < 0:
		return fmt.Errorf("%w: timeout must not be negative, got %v", ErrInvalidConfig, c.Timeout)
	}
	return nil
}

// Report summarizes a completed run.
type Report struct {
	// Swaps is the number of Swap calls that completed.
	Swaps int64

	// Loads is the number of Load calls readers made.
	Loads int64

	// Values is the number of distinct values accounted for by the
	// linearizability check (initial value plus completed swaps).
	Values int

	// Final is the text held at the end of the run.
	Final string

	// LastWriter is the last call site published by a writer, or nil if
	// no writer got to publish one.
	LastWriter *location.Location

	// TimedOut is set when the run stopped at Config.Timeout.
	TimedOut bool

	// Elapsed is the wall time of the concurrent phase.
	Elapsed time.Duration
}

// initialText is the value the text holder starts with.
const initialText = "stress/initial"

// Run executes one stress test.
//
// Run returns ErrInvalidConfig, ErrTornRead or ErrLinearizability (wrapped)
// when the corresponding check fails, and ctx.Err() if ctx is cancelled by
// the caller.
func Run(ctx context.Context, cfg Config) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}

	// Interned values, built before any goroutine starts so that readers can
	// consult the lookup table without synchronization.
	initial := depot.Text(initialText)
	values := make([][]*string, cfg.Writers)
	known := make(map[*string]struct{}, cfg.Writers*cfg.Swaps+1)
	known[initial] = struct{}{}
	for w := range values {
		values[w] = make([]*string, cfg.Swaps)
		for i := range values[w] {
			p := depot.Text(fmt.Sprintf("stress/%d/%d", w, i))
			values[w][i] = p
			known[p] = struct{}{}
		}
	}

	text := atomicref.New(initial)
	var lastWriter atomicref.Optional[location.Location]

	runCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(runCtx)

	returned := make([][]*string, cfg.Writers)
	stop := make(chan struct{})
	var remaining atomic.Int32
	remaining.Store(int32(cfg.Writers))
	var swaps, loads atomic.Int64

	start := time.Now()

	for w := 0; w < cfg.Writers; w++ {
		returned[w] = make([]*string, 0, cfg.Swaps)
		g.Go(func() error {
			defer func() {
				if remaining.Add(-1) == 0 {
					close(stop)
				}
			}()
			for _, v := range values[w] {
				if gctx.Err() != nil {
					return nil
				}
				returned[w] = append(returned[w], text.Swap(v, atomicref.AcqRel))
				swaps.Add(1)
				lastWriter.Store(location.Here(), atomicref.Release)
			}
			return nil
		})
	}

	for r := 0; r < cfg.Readers; r++ {
		g.Go(func() error {
			for {
				select {
				case <-stop:
					return nil
				case <-gctx.Done():
					return nil
				default:
				}

				p := text.Load(atomicref.Acquire)
				loads.Add(1)
				if _, ok := known[p]; !ok {
					return fmt.Errorf("%w: reader %d loaded %p", ErrTornRead, r, p)
				}
				if loc, ok := lastWriter.Load(atomicref.Acquire); ok && loc.Line == 0 {
					return fmt.Errorf("%w: reader %d loaded location %v", ErrTornRead, r, loc)
				}
			}
		})
	}

	err := g.Wait()
	elapsed := time.Since(start)
	// A deadline passing after the last swap does not cut the run short.
	timedOut := runCtx.Err() != nil && swaps.Load() < int64(cfg.Writers)*int64(cfg.Swaps)
	if err != nil {
		return Report{}, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Report{}, ctxErr
	}

	final := text.Load(atomicref.Acquire)
	n, err := verifyLinearizable(initial, values, returned, final)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		Swaps:    swaps.Load(),
		Loads:    loads.Load(),
		Values:   n,
		Final:    *final,
		TimedOut: timedOut,
		Elapsed:  elapsed,
	}
	report.LastWriter, _ = lastWriter.Load(atomicref.Acquire)
	return report, nil
}

// verifyLinearizable checks that the previous values returned by Swap,
// together with the final value, are exactly the initial value plus every
// value swapped in, each once.
//
// Writer w completed len(returned[w]) swaps, storing values[w][:len(returned[w])].
func verifyLinearizable(initial *string, values, returned [][]*string, final *string) (int, error) {
	seen := make(map[*string]int)
	for _, rs := range returned {
		for _, p := range rs {
			seen[p]++
		}
	}
	seen[final]++

	expected := 1
	if seen[initial] != 1 {
		return 0, fmt.Errorf("%w: initial value observed %d times", ErrLinearizability, seen[initial])
	}
	for w := range returned {
		for i, p := range values[w][:len(returned[w])] {
			expected++
			if seen[p] != 1 {
				return 0, fmt.Errorf("%w: value %d of writer %d observed %d times",
					ErrLinearizability, i, w, seen[p])
			}
		}
	}
	if len(seen) != expected {
		return 0, fmt.Errorf("%w: %d distinct values observed, %d stored",
			ErrLinearizability, len(seen), expected)
	}
	return expected, nil
}
