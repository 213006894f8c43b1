package format

import "math"

// sparklineChars maps levels 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as block elements scaled to the largest
// magnitude in the series. Signs are ignored. An all-zero series renders as
// a flat baseline.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	peak := 0.0
	for _, v := range values {
		if a := math.Abs(v); a > peak && !math.IsInf(a, 0) {
			peak = a
		}
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if peak > 0 {
			idx = int(math.Min(math.Abs(v), peak) * 7.0 / peak)
		}
		runes[i] = sparklineChars[idx]
	}
	return string(runes)
}

// Downsample reduces values to at most width buckets, keeping the largest
// magnitude of each bucket so isolated spikes stay visible.
func Downsample(values []float64, width int) []float64 {
	if width <= 0 || len(values) <= width {
		return values
	}
	out := make([]float64, width)
	for i := range width {
		lo := i * len(values) / width
		hi := (i + 1) * len(values) / width
		for _, v := range values[lo:hi] {
			if math.Abs(v) > math.Abs(out[i]) {
				out[i] = v
			}
		}
	}
	return out
}
