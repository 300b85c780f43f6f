// FILE: internal/rejection/rejection_test.go
package rejection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ali1395/volarix4-sub000/internal/bar"
	"github.com/ali1395/volarix4-sub000/internal/signal"
)

func baseWindow(t *testing.T) []bar.Bar {
	t.Helper()
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]bar.Bar, bar.MinLookback)
	for i := range bars {
		bars[i] = bar.Bar{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Open:  1.08500,
			High:  1.08520,
			Low:   1.08480,
			Close: 1.08500,
		}
	}
	return bars
}

func TestDetectSupportBounce(t *testing.T) {
	bars := baseWindow(t)
	last := len(bars) - 1
	// body=0.00005, lower_wick=0.00045 (ratio 9.0), upper_wick=0.00002,
	// close_position=(1.08515-1.08470)/(1.08522-1.08470)=0.865.
	bars[last] = bar.Bar{Time: bars[last].Time, Open: 1.08520, High: 1.08522, Low: 1.08470, Close: 1.08515}

	w, err := bar.New("EURUSD", bar.H1, bars, 0)
	require.NoError(t, err)

	levels := []signal.Level{{Price: 1.08500, Kind: signal.Support, Score: 85}}
	p := Detect(w, levels)
	require.NotNil(t, p)
	require.Equal(t, signal.Buy, p.Direction)
	require.Equal(t, last, p.BarIndex)
	require.InDelta(t, 9.0, p.WickBodyRatio, 0.01)
	require.InDelta(t, (0.85+9.0/10.0)/2.0, p.Confidence, 0.001)
}

func TestDetectResistanceRejection(t *testing.T) {
	bars := baseWindow(t)
	last := len(bars) - 1
	// body=0.00005, upper_wick=0.00045 (ratio 9.0), lower_wick=0.00002,
	// close_position=(1.08485-1.08478)/(1.08530-1.08478)=0.1346.
	bars[last] = bar.Bar{Time: bars[last].Time, Open: 1.08480, High: 1.08530, Low: 1.08478, Close: 1.08485}

	w, err := bar.New("EURUSD", bar.H1, bars, 0)
	require.NoError(t, err)

	levels := []signal.Level{{Price: 1.08500, Kind: signal.Resistance, Score: 80}}
	p := Detect(w, levels)
	require.NotNil(t, p)
	require.Equal(t, signal.Sell, p.Direction)
	require.InDelta(t, 9.0, p.WickBodyRatio, 0.01)
}

func TestDetectNoMatchOnZeroRangeBar(t *testing.T) {
	bars := baseWindow(t)
	last := len(bars) - 1
	bars[last] = bar.Bar{Time: bars[last].Time, Open: 1.0850, High: 1.0850, Low: 1.0850, Close: 1.0850}

	w, err := bar.New("EURUSD", bar.H1, bars, 0)
	require.NoError(t, err)

	levels := []signal.Level{{Price: 1.08500, Kind: signal.Support, Score: 85}}
	p := Detect(w, levels)
	require.Nil(t, p)
}

func TestDetectPrefersHigherScoreOnTie(t *testing.T) {
	bars := baseWindow(t)
	last := len(bars) - 1
	bars[last] = bar.Bar{Time: bars[last].Time, Open: 1.08520, High: 1.08522, Low: 1.08470, Close: 1.08515}

	w, err := bar.New("EURUSD", bar.H1, bars, 0)
	require.NoError(t, err)

	levels := []signal.Level{
		{Price: 1.08500, Kind: signal.Support, Score: 61},
		{Price: 1.08500, Kind: signal.Support, Score: 90},
	}
	p := Detect(w, levels)
	require.NotNil(t, p)
	require.Equal(t, 90, p.Level.Score)
}

func TestDetectNoLevels(t *testing.T) {
	bars := baseWindow(t)
	w, err := bar.New("EURUSD", bar.H1, bars, 0)
	require.NoError(t, err)
	require.Nil(t, Detect(w, nil))
}
