// FILE: internal/pipeline/pipeline.go
// Package pipeline – the ten-stage decision orchestrator (spec.md §2,
// §4.11). Sequences BarWindow (already validated by its caller) through
// SessionFilter, TrendFilter, SRDetector, BrokenLevelStore,
// RejectionDetector, ConfidenceGate, TrendAlignmentGate, CooldownStore,
// TradeSetupCalculator, and EdgeEvaluator, returning a signal.Signal.
//
// Grounded in the teacher's trader.go Step()/live.go run-loop shape: one
// function invoked once per bar, reading and updating process-wide state
// under a lock held for the call's duration, never retrying or looping
// internally.
package pipeline

import (
	"github.com/google/uuid"

	"github.com/ali1395/volarix4-sub000/internal/bar"
	"github.com/ali1395/volarix4-sub000/internal/rejection"
	"github.com/ali1395/volarix4-sub000/internal/signal"
	"github.com/ali1395/volarix4-sub000/internal/sr"
	"github.com/ali1395/volarix4-sub000/internal/store"
)

// Evaluate runs the full pipeline once for w against state using params,
// recording the outcome in stats when stats is non-nil. w must already
// be a validated *bar.BarWindow (bar.New never lets an invalid one
// exist), so this stage never returns an error: every outcome is either
// an accepted Signal or a HOLD Signal.
func Evaluate(w *bar.BarWindow, state *store.DecisionState, params signal.Params, stats *RunStats) signal.Signal {
	decisionBar := w.DecisionBar()
	decisionTime := decisionBar.Time

	if !sessionOK(decisionTime) {
		return holdAndRecord(stats, ReasonOutsideSession)
	}

	trend := computeTrend(w.Closes())

	levels := sr.Detect(w, sr.DefaultLookback)
	if len(levels) == 0 {
		return holdAndRecord(stats, ReasonNoLevels)
	}

	lock := state.Lock(w.Symbol())
	defer lock.Unlock()

	lock.PruneExpired(decisionTime)
	active := lock.ActiveBrokenPrices(decisionTime)
	surviving := filterBrokenLevels(levels, active, w.PipValue())
	if len(surviving) == 0 {
		return holdAndRecord(stats, reasonAllLevelsBroken(params.BrokenLevelCooldownHours))
	}

	updateBrokenLevels(lock, w, surviving, params.BrokenLevelBreakPips, params.BrokenLevelCooldownHours)

	pattern := rejection.Detect(w, surviving)
	if pattern == nil {
		return holdAndRecord(stats, ReasonNoRejection)
	}

	if !confidenceGateOK(pattern.Confidence, params.MinConfidence) {
		return holdAndRecord(stats, reasonConfidenceBelowThreshold(pattern.Confidence, params.MinConfidence))
	}

	bypassed := trendAlignmentBypass(pattern.Confidence)
	if !bypassed && !trendAligned(trend, pattern.Direction) {
		return holdAndRecord(stats, reasonTrendAlignmentFailed(pattern.Direction, trend))
	}

	if allowedAfter, blocked := lock.CooldownBlockedUntil(params.CooldownHours); blocked && decisionTime.Before(allowedAfter) {
		return holdAndRecord(stats, reasonCooldownActive(allowedAfter))
	}

	entry := decisionBar.Close
	setup, ok := buildTradeSetup(pattern.Direction, pattern.Level.Price, entry, w.PipValue())
	if !ok {
		return holdAndRecord(stats, ReasonInvalidGeometry)
	}

	tp1Pips, _, edgeIsOK := edgeOK(setup, w.PipValue(), params.Cost, params.MinEdgePips)
	if !edgeIsOK {
		return holdAndRecord(stats, reasonInsufficientEdge(tp1Pips, params.Cost.TotalCostPips(), params.MinEdgePips))
	}

	lock.RecordSignal(decisionTime)

	result := signal.Signal{
		EvaluationID: uuid.NewString(),
		Decision:     pattern.Direction,
		Confidence:   pattern.Confidence,
		Entry:        setup.Entry,
		SL:           setup.SL,
		TP1:          setup.TP1,
		TP2:          setup.TP2,
		TP3:          setup.TP3,
		TPFractions:  signal.TPFractions,
		Reason:       reasonAccepted(pattern.Level.Kind, pattern.Level.Price, pattern.Level.Score, bypassed),
	}
	stats.recordAccepted()
	return result
}

func holdAndRecord(stats *RunStats, reason string) signal.Signal {
	stats.record(reason)
	return signal.HoldSignal(reason)
}

// filterBrokenLevels drops any surviving candidate within clustering
// tolerance of an active broken price of the same kind (spec.md §4.5).
func filterBrokenLevels(levels []signal.Level, active []store.BrokenLevel, pipValue float64) []signal.Level {
	tol := sr.ClusterPips * pipValue
	var out []signal.Level
	for _, lvl := range levels {
		broken := false
		for _, bl := range active {
			if bl.Kind == lvl.Kind && absf(bl.Price-lvl.Price) <= tol {
				broken = true
				break
			}
		}
		if !broken {
			out = append(out, lvl)
		}
	}
	return out
}

// updateBrokenLevels scans each surviving level's window, strictly after
// its last contributing touch, for the first break event (spec.md §9
// Open Question 4's resolution), recording it if found.
func updateBrokenLevels(lock *store.SymbolLock, w *bar.BarWindow, levels []signal.Level, breakPips, cooldownHours float64) {
	threshold := breakPips * w.PipValue()
	bars := w.Bars()
	tol := sr.ClusterPips * w.PipValue()
	for _, lvl := range levels {
		start := lvl.LastTouchIndex + 1
		if start < 0 {
			start = 0
		}
		for i := start; i < len(bars); i++ {
			b := bars[i]
			var broke bool
			switch lvl.Kind {
			case signal.Support:
				broke = b.Low < lvl.Price-threshold
			case signal.Resistance:
				broke = b.High > lvl.Price+threshold
			}
			if broke {
				lock.RecordBreak(lvl.Price, lvl.Kind, b.Time, cooldownHours, tol)
				break
			}
		}
	}
}
