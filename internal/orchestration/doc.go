// Package orchestration drives the subdivision sweep: for each n it runs the
// hazard and synchronized reductions with the same inputs, compares the two
// totals bit for bit, and reports any discrepancy. Presentation, progress
// display and metrics are reached through interfaces so the driver stays
// independent of the CLI.
package orchestration
