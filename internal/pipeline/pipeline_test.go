// FILE: internal/pipeline/pipeline_test.go
package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ali1395/volarix4-sub000/internal/bar"
	"github.com/ali1395/volarix4-sub000/internal/signal"
	"github.com/ali1395/volarix4-sub000/internal/sr"
	"github.com/ali1395/volarix4-sub000/internal/store"
)

// buildSupportBounceWindow returns a 400-bar H1 window ending at
// decisionTime with two planted swing lows clustering near 1.09502
// (touches=2, recent, wick-bonus eligible: score clamps to 100) and a
// genuine support-bounce pin bar as the decision bar: body=0.00005,
// lower_wick=0.00045 (ratio 9.0, > upper_wick), close_position=0.865.
func buildSupportBounceWindow(t *testing.T, symbol string, decisionTime time.Time) *bar.BarWindow {
	t.Helper()
	const n = 400
	start := decisionTime.Add(-time.Duration(n-1) * time.Hour)
	bars := make([]bar.Bar, n)
	base := 1.10000
	for i := 0; i < n; i++ {
		bars[i] = bar.Bar{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Open:  base,
			High:  base + 0.0020,
			Low:   base - 0.0005,
			Close: base,
		}
	}

	plantSwingLow(bars, n-1-10, 1.09500)
	plantSwingLow(bars, n-1-18, 1.09505)

	last := n - 1
	bars[last] = bar.Bar{Time: bars[last].Time, Open: 1.09520, High: 1.09522, Low: 1.09470, Close: 1.09515}

	w, err := bar.New(symbol, bar.H1, bars, 0)
	require.NoError(t, err)
	return w
}

func plantSwingLow(bars []bar.Bar, at int, low float64) {
	bars[at].Low = low
	bars[at].Open = low + 0.0010
	bars[at].Close = low + 0.0015
	bars[at].High = low + 0.0020
	for j := at - sr.SwingRadius; j < at; j++ {
		bars[j].Low = low + 0.0010
	}
	for j := at + 1; j <= at+sr.SwingRadius; j++ {
		bars[j].Low = low + 0.0010
	}
}

// decisionTimeInSession is 2025-02-10 15:00 UTC, Eastern 10:00 (EST),
// inside both the London [3,11) and NY [8,22) windows.
var decisionTimeInSession = time.Date(2025, 2, 10, 15, 0, 0, 0, time.UTC)

func TestEvaluateAcceptsSupportBounceWithBypass(t *testing.T) {
	w := buildSupportBounceWindow(t, "EURUSD", decisionTimeInSession)
	state := store.New()
	stats := NewRunStats()

	result := Evaluate(w, state, signal.DefaultParams(), stats)

	require.Equal(t, signal.Buy, result.Decision)
	require.GreaterOrEqual(t, result.Confidence, 0.75)
	require.Less(t, result.SL, result.Entry)
	require.Less(t, result.Entry, result.TP1)
	require.Less(t, result.TP1, result.TP2)
	require.Less(t, result.TP2, result.TP3)
	require.Contains(t, result.Reason, "Support bounce at")
	require.Contains(t, result.Reason, "bypassed")
	require.NotEmpty(t, result.EvaluationID)
	require.Equal(t, 1, stats.Total())
	require.Equal(t, 1, stats.Accepted())
}

func TestEvaluateEnforcesCooldown(t *testing.T) {
	state := store.New()
	params := signal.DefaultParams()

	w1 := buildSupportBounceWindow(t, "EURUSD", decisionTimeInSession)
	first := Evaluate(w1, state, params, nil)
	require.Equal(t, signal.Buy, first.Decision)

	// 1.5h later: same shape, shifted uniformly so inter-bar deltas
	// (and therefore alignment) are unchanged.
	secondDecisionTime := decisionTimeInSession.Add(90 * time.Minute)
	w2 := buildSupportBounceWindow(t, "EURUSD", secondDecisionTime)
	second := Evaluate(w2, state, params, nil)

	require.Equal(t, signal.Hold, second.Decision)
	require.Contains(t, second.Reason, "Signal cooldown active")
}

func TestEvaluateRejectsOutsideSession(t *testing.T) {
	// 2025-02-10 06:00 UTC is 01:00 Eastern (EST): outside both windows.
	offHour := time.Date(2025, 2, 10, 6, 0, 0, 0, time.UTC)
	w := buildSupportBounceWindow(t, "EURUSD", offHour)
	state := store.New()

	result := Evaluate(w, state, signal.DefaultParams(), nil)
	require.Equal(t, signal.Hold, result.Decision)
	require.Equal(t, ReasonOutsideSession, result.Reason)
}

func TestEvaluateRejectsOnFlatWindow(t *testing.T) {
	const n = 400
	start := decisionTimeInSession.Add(-time.Duration(n-1) * time.Hour)
	bars := make([]bar.Bar, n)
	for i := 0; i < n; i++ {
		bars[i] = bar.Bar{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Open:  1.1,
			High:  1.1001,
			Low:   1.0999,
			Close: 1.1,
		}
	}
	w, err := bar.New("EURUSD", bar.H1, bars, 0)
	require.NoError(t, err)

	result := Evaluate(w, store.New(), signal.DefaultParams(), nil)
	require.Equal(t, signal.Hold, result.Decision)
	require.Equal(t, ReasonNoLevels, result.Reason)
}

func TestConfidenceGateRejectsBelowThreshold(t *testing.T) {
	require.False(t, confidenceGateOK(0.38, 0.60))
	require.Equal(t, "Confidence below threshold (0.38 < 0.60)", reasonConfidenceBelowThreshold(0.38, 0.60))
}

func TestEdgeEvaluatorRejectsInsufficientEdge(t *testing.T) {
	ts := signal.TradeSetup{Entry: 1.08500, SL: 1.08470, TP1: 1.08530, TP2: 1.08560, TP3: 1.08590}
	cost := signal.DefaultParams().Cost
	tp1Pips, requiredPips, ok := edgeOK(ts, 0.0001, cost, 4.0)

	require.InDelta(t, 3.0, tp1Pips, 0.001)
	require.InDelta(t, 7.4, requiredPips, 0.001)
	require.False(t, ok)
	require.Equal(t,
		"Insufficient edge after costs (TP1 3.0 pips <= costs 3.4 + edge 4.0)",
		reasonInsufficientEdge(tp1Pips, cost.TotalCostPips(), 4.0))
}

func TestBuildTradeSetupBuyGeometry(t *testing.T) {
	// SL is the level minus the fixed 10-pip offset (slPipsBeyond in
	// setup.go): 1.08500 - 10*0.0001 = 1.08400.
	ts, ok := buildTradeSetup(signal.Buy, 1.08500, 1.08537, 0.0001)
	require.True(t, ok)
	require.InDelta(t, 1.08400, ts.SL, 1e-9)
	require.InDelta(t, ts.Entry-ts.SL, ts.TP1-ts.Entry, 1e-9)
}

func TestBuildTradeSetupSellGeometry(t *testing.T) {
	// SL is the level plus the fixed 10-pip offset: 1.08500 + 10*0.0001 = 1.08600.
	ts, ok := buildTradeSetup(signal.Sell, 1.08500, 1.08463, 0.0001)
	require.True(t, ok)
	require.InDelta(t, 1.08600, ts.SL, 1e-9)
	require.True(t, ts.TP3 < ts.TP2 && ts.TP2 < ts.TP1 && ts.TP1 < ts.Entry && ts.Entry < ts.SL)
}

func TestTrendAlignment(t *testing.T) {
	require.True(t, trendAligned(signal.Uptrend, signal.Buy))
	require.False(t, trendAligned(signal.Uptrend, signal.Sell))
	require.True(t, trendAligned(signal.Ranging, signal.Sell))
	require.True(t, trendAlignmentBypass(0.75))
	require.False(t, trendAlignmentBypass(0.749))
}

func TestSessionFilterHours(t *testing.T) {
	cases := []struct {
		utc  time.Time
		want bool
	}{
		{time.Date(2025, 2, 10, 15, 0, 0, 0, time.UTC), true},  // 10:00 ET
		{time.Date(2025, 2, 10, 6, 0, 0, 0, time.UTC), false},  // 01:00 ET
		{time.Date(2025, 2, 10, 17, 30, 0, 0, time.UTC), true}, // 12:30 ET
		{time.Date(2025, 2, 11, 3, 30, 0, 0, time.UTC), false}, // 22:30 ET prior day
	}
	for _, c := range cases {
		require.Equal(t, c.want, sessionOK(c.utc), c.utc.String())
	}
}

func TestComputeTrendDirections(t *testing.T) {
	n := 100
	rising := make([]float64, n)
	falling := make([]float64, n)
	for i := 0; i < n; i++ {
		rising[i] = 1.0 + float64(i)*0.001
		falling[i] = 1.0 - float64(i)*0.001
	}
	require.Equal(t, signal.Uptrend, computeTrend(rising))
	require.Equal(t, signal.Downtrend, computeTrend(falling))
}
