// FILE: internal/rejection/rejection.go
// Package rejection – Pin-bar rejection search against surviving S/R
// levels (spec.md §4.6).
//
// Scans the last 5 bars newest-first; for each bar, scans levels
// highest-score-first; the first qualifying (bar, level) pair wins.
// This ordering mirrors other_examples/.../support_resistance.go's
// evaluateEntrySignal (first qualifying level wins) combined with the
// recency-first bar ordering spec.md calls out explicitly.
package rejection

import (
	"github.com/ali1395/volarix4-sub000/internal/bar"
	"github.com/ali1395/volarix4-sub000/internal/signal"
)

const (
	// TailBars is the number of most recent bars scanned, including
	// the decision bar.
	TailBars = 5
	// MaxDistancePips is how close the bar's extreme must be to the
	// level for a rejection candidate.
	MaxDistancePips = 10.0
	// WickBodyRatioMin is the minimum wick/body ratio for a pin bar.
	WickBodyRatioMin = 1.5
	// SupportClosePositionMin is the minimum close-position for a
	// support bounce (close in the upper part of the bar's range).
	SupportClosePositionMin = 0.60
	// ResistanceClosePositionMax is the maximum close-position for a
	// resistance rejection (close in the lower part of the bar's range).
	ResistanceClosePositionMax = 0.40

	epsilon = 1e-9
)

// Pattern is a detected pin-bar rejection (spec.md §3).
type Pattern struct {
	BarIndex      int
	Direction     signal.Decision
	Level         signal.Level
	WickBodyRatio float64
	ClosePosition float64
	Confidence    float64
}

// Detect scans w's tail bars against levels (any order; Detect sorts
// internally by score) and returns the first qualifying pattern, or
// nil if none. levels must already be the surviving set (post broken-
// level filtering).
func Detect(w *bar.BarWindow, levels []signal.Level) *Pattern {
	if len(levels) == 0 {
		return nil
	}
	ranked := rankByScoreDesc(levels)

	decisionIdx := w.DecisionIndex()
	firstTail := decisionIdx - TailBars + 1
	if firstTail < 0 {
		firstTail = 0
	}

	pip := w.PipValue()
	maxDist := MaxDistancePips * pip

	for i := decisionIdx; i >= firstTail; i-- {
		b := w.At(i)
		rangeHL := b.High - b.Low
		if rangeHL <= epsilon {
			continue // zero-range bar: no match by construction
		}
		body := b.Close - b.Open
		if body < 0 {
			body = -body
		}
		if body < epsilon {
			body = epsilon
		}
		upperWick := b.High - maxf(b.Open, b.Close)
		lowerWick := minf(b.Open, b.Close) - b.Low
		closePos := (b.Close - b.Low) / rangeHL

		for _, lvl := range ranked {
			switch lvl.Kind {
			case signal.Support:
				if absf(b.Low-lvl.Price) > maxDist {
					continue
				}
				ratio := lowerWick / body
				if ratio <= WickBodyRatioMin {
					continue
				}
				if lowerWick <= upperWick {
					continue
				}
				if closePos < SupportClosePositionMin {
					continue
				}
				return &Pattern{
					BarIndex:      i,
					Direction:     signal.Buy,
					Level:         lvl,
					WickBodyRatio: ratio,
					ClosePosition: closePos,
					Confidence:    confidence(lvl.Score, ratio),
				}
			case signal.Resistance:
				if absf(b.High-lvl.Price) > maxDist {
					continue
				}
				ratio := upperWick / body
				if ratio <= WickBodyRatioMin {
					continue
				}
				if upperWick <= lowerWick {
					continue
				}
				if closePos > ResistanceClosePositionMax {
					continue
				}
				return &Pattern{
					BarIndex:      i,
					Direction:     signal.Sell,
					Level:         lvl,
					WickBodyRatio: ratio,
					ClosePosition: closePos,
					Confidence:    confidence(lvl.Score, ratio),
				}
			}
		}
	}
	return nil
}

func confidence(score int, wickBodyRatio float64) float64 {
	c := (float64(score)/100.0 + wickBodyRatio/10.0) / 2.0
	if c > 1.0 {
		c = 1.0
	}
	return c
}

func rankByScoreDesc(levels []signal.Level) []signal.Level {
	ranked := make([]signal.Level, len(levels))
	copy(ranked, levels)
	// Simple insertion sort: input sets are small (post-filter S/R
	// counts rarely exceed a handful) and this keeps the ordering
	// stable for equal scores, preserving caller order as the
	// secondary key.
	for i := 1; i < len(ranked); i++ {
		j := i
		for j > 0 && ranked[j-1].Score < ranked[j].Score {
			ranked[j-1], ranked[j] = ranked[j], ranked[j-1]
			j--
		}
	}
	return ranked
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
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
