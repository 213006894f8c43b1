//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/trapcalc/internal/orchestration"
)

const (
	// ProgressRefreshRate is the spinner frame interval.
	ProgressRefreshRate = 100 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, spinner.WithWriter(out))
	return &realSpinner{s}
}

// DisplayProgress renders a spinner with a progress bar until progressChan
// is closed, then stops the spinner and calls wg.Done.
// The spinner suffix shows the completed iteration count, the current n, and
// how many discrepancies have been reported so far. With a non-positive total
// nothing is drawn and the channel is only drained, so the sender never blocks.
//
// Parameters:
//   - wg: The WaitGroup to signal on return.
//   - progressChan: The channel of per-iteration updates; closed by the sweep.
//   - total: The number of iterations the sweep will run.
//   - out: The writer the spinner renders to, normally stderr.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	defer wg.Done()
	if total <= 0 {
		for range progressChan {
		}
		return
	}

	s := newSpinner(out)
	s.UpdateSuffix(formatProgress(orchestration.ProgressUpdate{Total: total}))
	s.Start()
	for update := range progressChan {
		s.UpdateSuffix(formatProgress(update))
	}
	s.Stop()
}

// CLIProgressReporter implements orchestration.ProgressReporter with a
// terminal spinner.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress implements orchestration.ProgressReporter.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan orchestration.ProgressUpdate, total int, out io.Writer) {
	DisplayProgress(wg, progressChan, total, out)
}

func formatProgress(u orchestration.ProgressUpdate) string {
	return fmt.Sprintf(" %s %3.0f%% n=%d (%d mismatches)",
		progressBar(u.Value(), ProgressBarWidth), u.Value()*100, u.N, u.Discrepancies)
}

// progressBar renders progress in [0, 1] as a bar of the given width.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}
