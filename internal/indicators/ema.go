// FILE: internal/indicators/ema.go
// Package indicators – Technical indicators used by the core.
//
// Only EMA is needed by the pipeline (trend filter, spec §4.3). Kept
// fast and allocation-light, in the style of the teacher's
// SMA/RSI/ZScore helpers: one pass, aligned output, NaN before warmup.
package indicators

import "math"

// EMA returns the exponential moving average of values with the given
// span, aligned to values. Indices before the first full window are
// NaN. The smoothing factor is the conventional alpha = 2/(span+1);
// the seed for index span-1 is the simple average of the first span
// values, matching common charting-package conventions.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if span <= 0 || len(values) < span {
		return out
	}

	var seed float64
	for i := 0; i < span; i++ {
		seed += values[i]
	}
	seed /= float64(span)
	out[span-1] = seed

	alpha := 2.0 / (float64(span) + 1.0)
	prev := seed
	for i := span; i < len(values); i++ {
		prev = alpha*values[i] + (1-alpha)*prev
		out[i] = prev
	}
	return out
}
