// FILE: internal/pipeline/gates.go
// ConfidenceGate (spec.md §4.7) and TrendAlignmentGate (spec.md §4.8).
package pipeline

import "github.com/ali1395/volarix4-sub000/internal/signal"

const trendBypassConfidence = 0.75

func confidenceGateOK(confidence, minConfidence float64) bool {
	return confidence >= minConfidence
}

func trendAlignmentBypass(confidence float64) bool {
	return confidence >= trendBypassConfidence
}

func trendAligned(trend signal.Trend, direction signal.Decision) bool {
	switch {
	case trend == signal.Uptrend && direction == signal.Buy:
		return true
	case trend == signal.Downtrend && direction == signal.Sell:
		return true
	case trend == signal.Ranging:
		return true
	default:
		return false
	}
}
