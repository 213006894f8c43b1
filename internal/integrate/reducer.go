//go:generate mockgen -source=reducer.go -destination=mocks/mock_reducer.go -package=mocks

package integrate

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/trapcalc/internal/errors"
)

const tracerName = "github.com/agbru/trapcalc/internal/integrate"

// Reducer runs one parallel trapezoidal reduction.
//
// Reduce spawns a team of workers goroutines, each integrating the
// partition returned by PartitionFor, and adds every partial sum into
// *total. The team is joined before Reduce returns. Callers own *total and
// are responsible for resetting it between calls.
type Reducer interface {
	// Name returns a human-readable identifier for the reducer.
	Name() string

	// Reduce integrates iv with n trapezoids across workers goroutines and
	// accumulates the result into total. It fails only when the inputs are
	// out of domain or ctx is already done; the numerical kernel itself
	// never fails.
	Reduce(ctx context.Context, iv Interval, n, workers int, total *float64) error
}

// validateReduction rejects inputs for which the kernel is undefined.
func validateReduction(n, workers int) error {
	if workers < 1 {
		return apperrors.ValidationError{Field: "workers", Message: fmt.Sprintf("must be positive, got %d", workers)}
	}
	if n < 1 {
		return apperrors.ValidationError{Field: "n", Message: fmt.Sprintf("must be positive, got %d", n)}
	}
	return nil
}

func startReduceSpan(ctx context.Context, name string, n, workers int) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "integrate.Reduce",
		trace.WithAttributes(
			attribute.String("reducer", name),
			attribute.Int("n", n),
			attribute.Int("workers", workers),
		))
}

// ─────────────────────────────────────────────────────────────────────────────
// Synchronized reducer
// ─────────────────────────────────────────────────────────────────────────────

// SynchronizedReducer merges partial sums inside a mutex-guarded critical
// section. Every worker enters the section exactly once.
//
// Partials are committed in rank order, so the floating-point sum is the
// same on every run for fixed inputs.
type SynchronizedReducer struct {
	f Integrand
}

// NewSynchronizedReducer returns a race-free reducer integrating f.
// A nil f defaults to Square.
func NewSynchronizedReducer(f Integrand) *SynchronizedReducer {
	if f == nil {
		f = Square
	}
	return &SynchronizedReducer{f: f}
}

// Name returns the reducer identifier.
func (r *SynchronizedReducer) Name() string { return "Synchronized (critical section)" }

// Reduce implements Reducer.
func (r *SynchronizedReducer) Reduce(ctx context.Context, iv Interval, n, workers int, total *float64) error {
	if err := validateReduction(n, workers); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, span := startReduceSpan(ctx, r.Name(), n, workers)
	defer span.End()

	acc := newOrderedAccumulator(total)
	var g errgroup.Group
	for rank := 0; rank < workers; rank++ {
		g.Go(func() error {
			p := PartitionFor(iv, n, workers, rank)
			acc.add(rank, LocalTrap(r.f, p.LocalA, p.LocalB, p.LocalN, p.H))
			return nil
		})
	}
	err := g.Wait()
	span.SetAttributes(attribute.Float64("total", *total))
	return err
}

// orderedAccumulator is the critical section guarding the shared total.
// Workers block on cond until it is their rank's turn to commit.
type orderedAccumulator struct {
	mu    sync.Mutex
	cond  *sync.Cond
	next  int
	total *float64
}

func newOrderedAccumulator(total *float64) *orderedAccumulator {
	a := &orderedAccumulator{total: total}
	a.cond = sync.NewCond(&a.mu)
	return a
}

func (a *orderedAccumulator) add(rank int, partial float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for a.next != rank {
		a.cond.Wait()
	}
	*a.total += partial
	a.next++
	a.cond.Broadcast()
}

// ─────────────────────────────────────────────────────────────────────────────
// Unsynchronized reducer (hazard mode)
// ─────────────────────────────────────────────────────────────────────────────

// UnsynchronizedReducer is HAZARD MODE: workers add their partial sums into
// the shared total with no synchronization at all. Concurrent
// read-modify-write sequences can overwrite each other, so updates may be
// lost and results can vary between runs. The race is intentional and is
// what the sweep driver exists to expose. The race detector reports it
// whenever workers > 1.
type UnsynchronizedReducer struct {
	f Integrand
}

// NewUnsynchronizedReducer returns the hazard-mode reducer integrating f.
// A nil f defaults to Square.
func NewUnsynchronizedReducer(f Integrand) *UnsynchronizedReducer {
	if f == nil {
		f = Square
	}
	return &UnsynchronizedReducer{f: f}
}

// Name returns the reducer identifier.
func (r *UnsynchronizedReducer) Name() string { return "Unsynchronized (hazard)" }

// Reduce implements Reducer. See the type documentation for the hazard.
func (r *UnsynchronizedReducer) Reduce(ctx context.Context, iv Interval, n, workers int, total *float64) error {
	if err := validateReduction(n, workers); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	_, span := startReduceSpan(ctx, r.Name(), n, workers)
	defer span.End()

	var wg sync.WaitGroup
	wg.Add(workers)
	for rank := 0; rank < workers; rank++ {
		go func() {
			defer wg.Done()
			p := PartitionFor(iv, n, workers, rank)
			partial := LocalTrap(r.f, p.LocalA, p.LocalB, p.LocalN, p.H)
			*total += partial // RACE: unguarded shared write
		}()
	}
	wg.Wait()
	span.SetAttributes(attribute.Float64("total", *total))
	return nil
}
