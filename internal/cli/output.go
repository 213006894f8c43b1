// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.

package cli

import (
	"fmt"
	"io"

	"github.com/agbru/trapcalc/internal/format"
	"github.com/agbru/trapcalc/internal/orchestration"
	"github.com/agbru/trapcalc/internal/ui"
)

// Prompt is the header line printed before the sweep starts.
const Prompt = "Enter a, b, and n"

// DisplayPrompt writes the header line.
func DisplayPrompt(out io.Writer) {
	fmt.Fprintln(out, Prompt)
}

// FormatDiscrepancy returns the two-line report for a discrepancy: the
// subdivision count, then both totals and their difference in scientific
// notation with 20 digits after the decimal point.
func FormatDiscrepancy(d orchestration.Discrepancy) string {
	return fmt.Sprintf("With n = %d trapezoids, we got different results\n", d.N) +
		fmt.Sprintf("  %.20e  - %.20e = %.20e \n", d.Unsynchronized, d.Synchronized, d.Difference)
}

// DisplayDiscrepancy writes FormatDiscrepancy(d) to out.
func DisplayDiscrepancy(out io.Writer, d orchestration.Discrepancy) {
	io.WriteString(out, FormatDiscrepancy(d))
}

// SparklineWidth caps the width of the discrepancy sparkline.
const SparklineWidth = 50

// SummaryInfo is what DisplaySummary needs to know about a run.
type SummaryInfo struct {
	Result  orchestration.SweepResult
	Workers int
	Hazard  bool
	// NStart and NStep locate each discrepancy in the sweep.
	NStart, NStep int
}

// FormatSummary returns the styled run summary. When discrepancies were
// found a second line plots their magnitude along the sweep.
func FormatSummary(s SummaryInfo) string {
	mode := ui.Info("synchronized only")
	if s.Hazard {
		mode = ui.Warning("hazard mode")
	}
	status := ui.Success("consistent")
	if n := len(s.Result.Discrepancies); n > 0 {
		status = ui.Error(format.Plural(n, "discrepancy"))
	}
	line := fmt.Sprintf("Sweep complete: %s, %s, %s, %s %s",
		format.Plural(s.Result.Iterations, "iteration"),
		format.Plural(s.Workers, "worker"),
		mode,
		status,
		ui.Dim("("+format.FormatExecutionDuration(s.Result.Duration)+")"))
	if spark := discrepancySparkline(s); spark != "" {
		line += "\n  |difference| by n: " + ui.Warning(spark)
	}
	return line
}

// discrepancySparkline plots |difference| per iteration, zero where the
// reducers agreed.
func discrepancySparkline(s SummaryInfo) string {
	if len(s.Result.Discrepancies) == 0 || s.Result.Iterations == 0 || s.NStep <= 0 {
		return ""
	}
	series := make([]float64, s.Result.Iterations)
	for _, d := range s.Result.Discrepancies {
		if i := (d.N - s.NStart) / s.NStep; i >= 0 && i < len(series) {
			series[i] = d.Difference
		}
	}
	return format.Sparkline(format.Downsample(series, SparklineWidth))
}

// DisplaySummary writes FormatSummary(s) followed by a newline.
func DisplaySummary(out io.Writer, s SummaryInfo) {
	fmt.Fprintln(out, FormatSummary(s))
}
