// FILE: internal/sr/sr.go
// Package sr – Support/resistance detection (spec.md §4.4).
//
// Swing points are found over a symmetric radius, folded into price
// clusters, scored, and filtered to a 60-point floor. Grounded in the
// pivot-then-cluster-then-score shape of
// other_examples/.../JonBuhTrader__support_resistance.go
// (findPivots / consolidateLevels / calculateLevelConfidence), reworked
// to the exact formulas spec.md §4.4 specifies.
package sr

import (
	"sort"

	"github.com/ali1395/volarix4-sub000/internal/bar"
	"github.com/ali1395/volarix4-sub000/internal/signal"
)

const (
	// SwingRadius is the fixed number of bars checked on each side of
	// a candidate swing point.
	SwingRadius = 5
	// DefaultLookback is the number of bars preceding the decision bar
	// (inclusive) searched for swing points.
	DefaultLookback = 50
	// ClusterPips is the clustering tolerance between adjacent sorted
	// candidates.
	ClusterPips = 10.0
	// RecentTouchBars is the recency window for the +50 score bonus.
	RecentTouchBars = 20
	// WickBodyBonusRatio is the wick/body ratio above which a
	// contributing candle earns the level a +20 score bonus.
	WickBodyBonusRatio = 1.5
	// ScoreFloor drops any level scoring below this threshold.
	ScoreFloor = 60
)

type candidate struct {
	price      float64
	index      int
	kind       signal.Kind
	wickBodyOK bool
}

// Detect returns the filtered, score-ranked set of levels for the
// window using lookback bars preceding the decision bar (inclusive of
// the decision bar's own left window). An empty result means spec.md's
// "No significant S/R levels detected" HOLD.
func Detect(w *bar.BarWindow, lookback int) []signal.Level {
	candidates := findSwings(w, lookback)
	if len(candidates) == 0 {
		return nil
	}
	clusters := cluster(candidates, ClusterPips*w.PipValue())
	levels := make([]signal.Level, 0, len(clusters))
	for _, c := range clusters {
		lvl := score(c, w.DecisionIndex())
		if lvl.Score >= ScoreFloor {
			levels = append(levels, lvl)
		}
	}
	sort.SliceStable(levels, func(i, j int) bool {
		if levels[i].Score != levels[j].Score {
			return levels[i].Score > levels[j].Score
		}
		return levels[i].Price < levels[j].Price
	})
	return levels
}

// findSwings scans [decisionIndex-lookback, decisionIndex-1] (clamped
// to leave room for the SwingRadius window on both sides) for strict
// local extrema.
func findSwings(w *bar.BarWindow, lookback int) []candidate {
	decisionIdx := w.DecisionIndex()
	lo := decisionIdx - lookback
	if lo < SwingRadius {
		lo = SwingRadius
	}
	hi := decisionIdx - SwingRadius
	if hi > decisionIdx-1 {
		hi = decisionIdx - 1
	}

	var out []candidate
	bars := w.Bars()
	for i := lo; i <= hi; i++ {
		if i-SwingRadius < 0 || i+SwingRadius >= len(bars) {
			continue
		}
		if isSwingHigh(bars, i) {
			out = append(out, candidate{
				price:      bars[i].High,
				index:      i,
				kind:       signal.Resistance,
				wickBodyOK: wickBodyRatio(bars[i], signal.Resistance) > WickBodyBonusRatio,
			})
		}
		if isSwingLow(bars, i) {
			out = append(out, candidate{
				price:      bars[i].Low,
				index:      i,
				kind:       signal.Support,
				wickBodyOK: wickBodyRatio(bars[i], signal.Support) > WickBodyBonusRatio,
			})
		}
	}
	return out
}

func isSwingHigh(bars []bar.Bar, i int) bool {
	h := bars[i].High
	for j := i - SwingRadius; j < i; j++ {
		if bars[j].High >= h {
			return false
		}
	}
	for j := i + 1; j <= i+SwingRadius; j++ {
		if bars[j].High >= h {
			return false
		}
	}
	return true
}

func isSwingLow(bars []bar.Bar, i int) bool {
	l := bars[i].Low
	for j := i - SwingRadius; j < i; j++ {
		if bars[j].Low <= l {
			return false
		}
	}
	for j := i + 1; j <= i+SwingRadius; j++ {
		if bars[j].Low <= l {
			return false
		}
	}
	return true
}

// wickBodyRatio computes the ratio on the side relevant to kind: the
// lower wick for a support candidate, the upper wick for a resistance
// candidate. Zero-body candles return +Inf-safe large ratio via a
// guarded denominator, matching the rejection detector's epsilon guard.
func wickBodyRatio(b bar.Bar, kind signal.Kind) float64 {
	body := b.Close - b.Open
	if body < 0 {
		body = -body
	}
	const epsilon = 1e-9
	if body < epsilon {
		body = epsilon
	}
	if kind == signal.Support {
		lowerWick := minf(b.Open, b.Close) - b.Low
		return lowerWick / body
	}
	upperWick := b.High - maxf(b.Open, b.Close)
	return upperWick / body
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

type clusterBucket struct {
	points []candidate
}

// cluster sorts candidates by price and folds consecutive points into
// a cluster while the gap between adjacent points stays within
// tolerance (spec.md §4.4).
func cluster(candidates []candidate, tolerance float64) []clusterBucket {
	sorted := make([]candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].price < sorted[j].price })

	var clusters []clusterBucket
	var current clusterBucket
	for i, c := range sorted {
		if i == 0 {
			current = clusterBucket{points: []candidate{c}}
			continue
		}
		prev := sorted[i-1]
		if c.price-prev.price <= tolerance {
			current.points = append(current.points, c)
		} else {
			clusters = append(clusters, current)
			current = clusterBucket{points: []candidate{c}}
		}
	}
	clusters = append(clusters, current)
	return clusters
}

// score reduces a cluster to a scored Level (spec.md §4.4).
func score(c clusterBucket, decisionIdx int) signal.Level {
	var sum float64
	var supportN, resistN int
	lastTouch := -1
	wickBonus := false
	for _, p := range c.points {
		sum += p.price
		if p.kind == signal.Support {
			supportN++
		} else {
			resistN++
		}
		if p.index > lastTouch {
			lastTouch = p.index
		}
		if p.wickBodyOK {
			wickBonus = true
		}
	}
	mean := sum / float64(len(c.points))

	kind := signal.Resistance
	switch {
	case supportN > resistN:
		kind = signal.Support
	case resistN > supportN:
		kind = signal.Resistance
	default:
		// Tie: fall back to the first-folded point's origin (spec.md
		// §4.4's "resistance if originating from highs, support from
		// lows" resolved per-cluster by earliest contributor).
		kind = c.points[0].kind
	}

	s := 20 * len(c.points)
	if decisionIdx-lastTouch <= RecentTouchBars && decisionIdx-lastTouch >= 0 {
		s += 50
	}
	if wickBonus {
		s += 20
	}
	if s > 100 {
		s = 100
	}

	return signal.Level{
		Price:          mean,
		Kind:           kind,
		Score:          s,
		LastTouchIndex: lastTouch,
		Touches:        len(c.points),
	}
}
