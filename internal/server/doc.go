// Package server runs the optional HTTP endpoint that exposes sweep metrics.
// It is up for the duration of the sweep plus TRAPCALC_METRICS_LINGER, long
// enough for a scraper to read the final totals of a run.
package server
