// Package ui provides the lipgloss styles used by trapcalc's optional
// human-facing output (the sweep summary). The discrepancy report itself is
// plain text and never styled.
package ui
