// Package integrate implements the composite trapezoidal rule as a parallel
// reduction. A fixed-size team of goroutines splits [a, b] into contiguous
// sub-ranges, each worker integrates its own slice, and the partial sums are
// merged into one shared accumulator.
//
// Two reducers are provided:
//
//   - [SynchronizedReducer] merges partials inside a mutex-guarded critical
//     section and is deterministic.
//   - [UnsynchronizedReducer] merges partials with a plain, unguarded write.
//     This is a deliberate data race (hazard mode) kept to demonstrate lost
//     updates. Never use it for real results.
package integrate
