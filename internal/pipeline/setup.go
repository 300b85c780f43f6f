// FILE: internal/pipeline/setup.go
// TradeSetupCalculator & EdgeEvaluator (spec.md §4.10).
package pipeline

import "github.com/ali1395/volarix4-sub000/internal/signal"

// slPipsBeyond is fixed by spec.md §4.10; it is not a request override.
const slPipsBeyond = 10.0

// buildTradeSetup derives SL/TP from the candidate level, direction, and
// actual entry price, enforcing the strict geometry invariant of
// spec.md §3. ok is false if risk is non-positive or geometry fails.
func buildTradeSetup(direction signal.Decision, levelPrice, entry, pipValue float64) (signal.TradeSetup, bool) {
	switch direction {
	case signal.Buy:
		sl := levelPrice - slPipsBeyond*pipValue
		risk := entry - sl
		if risk <= 0 {
			return signal.TradeSetup{}, false
		}
		ts := signal.TradeSetup{Entry: entry, SL: sl, TP1: entry + risk, TP2: entry + 2*risk, TP3: entry + 3*risk}
		if !(ts.SL < ts.Entry && ts.Entry < ts.TP1 && ts.TP1 < ts.TP2 && ts.TP2 < ts.TP3) {
			return signal.TradeSetup{}, false
		}
		return ts, true
	case signal.Sell:
		sl := levelPrice + slPipsBeyond*pipValue
		risk := sl - entry
		if risk <= 0 {
			return signal.TradeSetup{}, false
		}
		ts := signal.TradeSetup{Entry: entry, SL: sl, TP1: entry - risk, TP2: entry - 2*risk, TP3: entry - 3*risk}
		if !(ts.TP3 < ts.TP2 && ts.TP2 < ts.TP1 && ts.TP1 < ts.Entry && ts.Entry < ts.SL) {
			return signal.TradeSetup{}, false
		}
		return ts, true
	default:
		return signal.TradeSetup{}, false
	}
}

// edgeOK applies the round-trip cost/edge check: tp1 distance in pips
// must strictly exceed total_cost_pips + min_edge_pips.
func edgeOK(ts signal.TradeSetup, pipValue float64, cost signal.CostModel, minEdgePips float64) (tp1DistancePips, requiredPips float64, ok bool) {
	tp1DistancePips = absf(ts.TP1-ts.Entry) / pipValue
	requiredPips = cost.TotalCostPips() + minEdgePips
	return tp1DistancePips, requiredPips, tp1DistancePips > requiredPips
}

func absf(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
