package orchestration

import (
	"io"
	"sync"
	"time"
)

// Discrepancy records an iteration where the two reducers disagreed.
type Discrepancy struct {
	// N is the subdivision count of the iteration.
	N int
	// Unsynchronized is the total produced by the first (hazard) reducer.
	Unsynchronized float64
	// Synchronized is the total produced by the critical-section reducer.
	Synchronized float64
	// Difference is Unsynchronized - Synchronized.
	Difference float64
}

// IterationResult is the outcome of one sweep iteration.
type IterationResult struct {
	N int
	// FirstReducer and SecondReducer are the Name of the reducer run in each
	// pass. Both are the synchronized reducer when the hazard is disabled.
	FirstReducer   string
	SecondReducer  string
	Unsynchronized float64
	Synchronized   float64
	// UnsyncDuration and SyncDuration are the wall-clock times of each reduction.
	UnsyncDuration time.Duration
	SyncDuration   time.Duration
	// Residual is the number of trapezoids dropped by partition truncation.
	Residual int
}

// Mismatch reports whether the two totals differ.
func (r IterationResult) Mismatch() bool {
	return r.Unsynchronized != r.Synchronized
}

// ProgressUpdate is sent after every completed iteration.
type ProgressUpdate struct {
	// Iteration is the 1-based index of the completed iteration.
	Iteration int
	// Total is the number of iterations in the sweep.
	Total int
	// N is the subdivision count just processed.
	N int
	// Discrepancies is the running discrepancy count.
	Discrepancies int
}

// Value returns the completed fraction in [0, 1].
func (u ProgressUpdate) Value() float64 {
	if u.Total <= 0 {
		return 0
	}
	return float64(u.Iteration) / float64(u.Total)
}

// ProgressReporter displays sweep progress.
//
// DisplayProgress is run in its own goroutine and must call wg.Done once
// progressChan has been closed and drained.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, total int, out io.Writer) {
	f(wg, progressChan, total, out)
}

// NullProgressReporter drains the progress channel without output.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// DiscrepancyPresenter reports a discrepancy as soon as it is detected.
type DiscrepancyPresenter interface {
	PresentDiscrepancy(d Discrepancy, out io.Writer)
}

// SweepObserver receives every iteration result, matching or not.
// Implementations must be cheap; they run on the driver goroutine.
type SweepObserver interface {
	ObserveIteration(res IterationResult)
}

// nullPresenter and nullObserver are the defaults when no option is given.
type nullPresenter struct{}

func (nullPresenter) PresentDiscrepancy(Discrepancy, io.Writer) {}

type nullObserver struct{}

func (nullObserver) ObserveIteration(IterationResult) {}
