// Package metrics exposes sweep counters and reduction timings as
// Prometheus metrics.
//
// SweepMetrics implements orchestration.SweepObserver and owns a private
// registry, so several instances can coexist in tests without colliding on
// the default registerer.
package metrics
