// FILE: internal/pipeline/trend.go
// TrendFilter (spec.md §4.3): EMA20/EMA50 regime classification. Never
// rejects; its output is consumed later by the alignment gate.
package pipeline

import (
	"github.com/ali1395/volarix4-sub000/internal/indicators"
	"github.com/ali1395/volarix4-sub000/internal/signal"
)

const (
	trendFastSpan = 20
	trendSlowSpan = 50
)

func computeTrend(closes []float64) signal.Trend {
	fast := indicators.EMA(closes, trendFastSpan)
	slow := indicators.EMA(closes, trendSlowSpan)
	i := len(closes) - 1
	switch {
	case fast[i] > slow[i]:
		return signal.Uptrend
	case fast[i] < slow[i]:
		return signal.Downtrend
	default:
		return signal.Ranging
	}
}
