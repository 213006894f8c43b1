package orchestration

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/agbru/trapcalc/internal/errors"
	"github.com/agbru/trapcalc/internal/integrate"
	"github.com/agbru/trapcalc/internal/logging"
)

// ProgressBufferSize is the capacity of the progress channel. Sends never
// block the driver; updates are dropped when the buffer is full.
const ProgressBufferSize = 16

// SweepConfig describes a subdivision sweep.
type SweepConfig struct {
	Interval integrate.Interval
	// NStart, NEnd and NStep define n ∈ {NStart, NStart+NStep, …, ≤ NEnd}.
	NStart, NEnd, NStep int
	// Workers is the team size for every reduction.
	Workers int
}

// DefaultSweep returns the fixed sweep over [0, 100] with n = 10..1000 step 10.
func DefaultSweep(workers int) SweepConfig {
	return SweepConfig{
		Interval: integrate.DefaultInterval,
		NStart:   10,
		NEnd:     1000,
		NStep:    10,
		Workers:  workers,
	}
}

// Iterations returns the number of n values the sweep visits.
func (c SweepConfig) Iterations() int {
	if c.NStep <= 0 || c.NEnd < c.NStart {
		return 0
	}
	return (c.NEnd-c.NStart)/c.NStep + 1
}

// Validate rejects sweeps the reducers cannot run.
func (c SweepConfig) Validate() error {
	switch {
	case c.Workers < 1:
		return apperrors.ValidationError{Field: "workers", Message: fmt.Sprintf("must be positive, got %d", c.Workers)}
	case c.NStart < 1:
		return apperrors.ValidationError{Field: "n_start", Message: fmt.Sprintf("must be positive, got %d", c.NStart)}
	case c.NStep < 1:
		return apperrors.ValidationError{Field: "n_step", Message: fmt.Sprintf("must be positive, got %d", c.NStep)}
	case c.NEnd < c.NStart:
		return apperrors.ValidationError{Field: "n_end", Message: fmt.Sprintf("must be >= %d, got %d", c.NStart, c.NEnd)}
	}
	return nil
}

// SweepResult summarizes a completed (or interrupted) sweep.
type SweepResult struct {
	// Iterations is the number of iterations that ran to completion.
	Iterations int
	// Discrepancies lists every mismatching iteration in sweep order.
	Discrepancies []Discrepancy
	// Duration is the wall-clock time of the sweep.
	Duration time.Duration
}

type sweepOptions struct {
	presenter   DiscrepancyPresenter
	reportOut   io.Writer
	progress    ProgressReporter
	progressOut io.Writer
	observer    SweepObserver
	logger      logging.Logger
}

// SweepOption configures RunSweep.
type SweepOption func(*sweepOptions)

// WithPresenter reports each discrepancy to p, writing to out.
func WithPresenter(p DiscrepancyPresenter, out io.Writer) SweepOption {
	return func(o *sweepOptions) { o.presenter, o.reportOut = p, out }
}

// WithProgressReporter displays progress through r, writing to out.
func WithProgressReporter(r ProgressReporter, out io.Writer) SweepOption {
	return func(o *sweepOptions) { o.progress, o.progressOut = r, out }
}

// WithObserver forwards every iteration result to obs.
func WithObserver(obs SweepObserver) SweepOption {
	return func(o *sweepOptions) { o.observer = obs }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l logging.Logger) SweepOption {
	return func(o *sweepOptions) { o.logger = l }
}

// RunSweep runs first and second over every n of cfg and compares their
// totals bit for bit. first is normally the hazard reducer and second the
// synchronized one.
//
// Both accumulators are reset to zero at the start of each iteration, and
// each reduction is fully joined before its total is read. Discrepancies
// are not errors: they are reported and the sweep continues. RunSweep
// returns early only if ctx is done or a reducer rejects its inputs.
//
// Parameters:
//   - ctx: The context for cancellation; checked before every iteration.
//   - cfg: The interval, subdivision range and team size of the sweep.
//   - first: The reducer whose total is reported on the left of a discrepancy.
//   - second: The reference reducer.
//   - opts: Optional presenter, progress reporter, observer and logger.
//
// Returns:
//   - SweepResult: The completed iteration count, every discrepancy, and the
//     elapsed time. It is partially filled when an error is returned.
//   - error: A wrapped context error on cancellation, or the reducer's
//     validation error, otherwise nil.
func RunSweep(ctx context.Context, cfg SweepConfig, first, second integrate.Reducer, opts ...SweepOption) (SweepResult, error) {
	o := sweepOptions{
		presenter:   nullPresenter{},
		reportOut:   io.Discard,
		progress:    NullProgressReporter{},
		progressOut: io.Discard,
		observer:    nullObserver{},
		logger:      logging.NewLogger(io.Discard, "sweep"),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return SweepResult{}, err
	}

	ctx, span := otel.Tracer("github.com/agbru/trapcalc/internal/orchestration").Start(ctx, "orchestration.RunSweep")
	defer span.End()
	span.SetAttributes(
		attribute.Int("workers", cfg.Workers),
		attribute.Int("n_start", cfg.NStart),
		attribute.Int("n_end", cfg.NEnd),
		attribute.String("first", first.Name()),
		attribute.String("second", second.Name()),
	)

	total := cfg.Iterations()
	progressChan := make(chan ProgressUpdate, ProgressBufferSize)
	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go o.progress.DisplayProgress(&displayWg, progressChan, total, o.progressOut)
	defer func() {
		close(progressChan)
		displayWg.Wait()
	}()

	start := time.Now()
	var result SweepResult
	var globalResult, globalResult2 float64

	for n := cfg.NStart; n <= cfg.NEnd; n += cfg.NStep {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			span.SetStatus(codes.Error, err.Error())
			return result, apperrors.WrapError(err, "sweep interrupted before n=%d", n)
		}

		globalResult, globalResult2 = 0, 0
		iter := IterationResult{
			N:             n,
			FirstReducer:  first.Name(),
			SecondReducer: second.Name(),
			Residual:      integrate.Residual(n, cfg.Workers),
		}

		t0 := time.Now()
		if err := first.Reduce(ctx, cfg.Interval, n, cfg.Workers, &globalResult); err != nil {
			result.Duration = time.Since(start)
			span.SetStatus(codes.Error, err.Error())
			return result, apperrors.WrapError(err, "%s at n=%d", first.Name(), n)
		}
		iter.UnsyncDuration = time.Since(t0)

		t1 := time.Now()
		if err := second.Reduce(ctx, cfg.Interval, n, cfg.Workers, &globalResult2); err != nil {
			result.Duration = time.Since(start)
			span.SetStatus(codes.Error, err.Error())
			return result, apperrors.WrapError(err, "%s at n=%d", second.Name(), n)
		}
		iter.SyncDuration = time.Since(t1)

		iter.Unsynchronized, iter.Synchronized = globalResult, globalResult2
		result.Iterations++

		if iter.Residual > 0 {
			o.logger.Debug("partition truncation drops trapezoids",
				logging.Int("n", n), logging.Int("workers", cfg.Workers), logging.Int("residual", iter.Residual))
		}
		if iter.Mismatch() {
			d := Discrepancy{
				N:              n,
				Unsynchronized: globalResult,
				Synchronized:   globalResult2,
				Difference:     globalResult - globalResult2,
			}
			result.Discrepancies = append(result.Discrepancies, d)
			o.presenter.PresentDiscrepancy(d, o.reportOut)
			o.logger.Debug("reducers disagree", logging.Int("n", n), logging.Float64("difference", d.Difference))
		}
		o.observer.ObserveIteration(iter)

		select {
		case progressChan <- ProgressUpdate{Iteration: result.Iterations, Total: total, N: n, Discrepancies: len(result.Discrepancies)}:
		default:
		}
	}

	result.Duration = time.Since(start)
	span.SetAttributes(
		attribute.Int("iterations", result.Iterations),
		attribute.Int("discrepancies", len(result.Discrepancies)),
	)
	return result, nil
}
