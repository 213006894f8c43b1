package integrate

// Partition is the contiguous sub-range of trapezoids assigned to one worker.
type Partition struct {
	// Rank is the worker's 0-based ordinal within the team.
	Rank int
	// LocalN is the number of trapezoids this worker integrates.
	LocalN int
	// H is the global trapezoid width (B-A)/n.
	H float64
	// LocalA is the left endpoint of the worker's sub-range.
	LocalA float64
	// LocalB is the right endpoint of the worker's sub-range.
	LocalB float64
}

// PartitionFor computes the sub-range owned by worker rank in a team of
// workers splitting iv into n trapezoids.
//
// LocalN is n/workers with integer truncation. When workers does not divide
// n, the trailing n%workers trapezoids belong to nobody and the estimate
// silently loses that slice (see Residual).
func PartitionFor(iv Interval, n, workers, rank int) Partition {
	h := (iv.B - iv.A) / float64(n)
	localN := n / workers
	localA := iv.A + float64(rank*localN)*h
	return Partition{
		Rank:   rank,
		LocalN: localN,
		H:      h,
		LocalA: localA,
		LocalB: localA + float64(localN)*h,
	}
}

// Residual returns the number of trapezoids dropped by PartitionFor's
// truncation for the given n and team size.
func Residual(n, workers int) int {
	if workers <= 0 {
		return 0
	}
	return n % workers
}
