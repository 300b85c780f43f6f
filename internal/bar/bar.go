// FILE: internal/bar/bar.go
// Package bar – Validated OHLCV bar sequences for one (symbol, timeframe).
//
// A BarWindow is the only way the rest of the core ever sees market
// data: it cannot be constructed unless every invariant in the
// specification holds, so downstream stages never re-check bar shape.
package bar

import (
	"fmt"
	"time"
)

// Bar is one closed OHLCV candle.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume uint64
}

// Timeframe is the bar period, named the way the external MT5/backtest
// callers name it.
type Timeframe string

const (
	M1  Timeframe = "M1"
	M5  Timeframe = "M5"
	M15 Timeframe = "M15"
	M30 Timeframe = "M30"
	H1  Timeframe = "H1"
	H4  Timeframe = "H4"
	D1  Timeframe = "D1"
	W1  Timeframe = "W1"
)

// Period returns the timeframe's duration, used for gap/alignment checks.
func (tf Timeframe) Period() (time.Duration, error) {
	switch tf {
	case M1:
		return time.Minute, nil
	case M5:
		return 5 * time.Minute, nil
	case M15:
		return 15 * time.Minute, nil
	case M30:
		return 30 * time.Minute, nil
	case H1:
		return time.Hour, nil
	case H4:
		return 4 * time.Hour, nil
	case D1:
		return 24 * time.Hour, nil
	case W1:
		return 7 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("bar: unknown timeframe %q", tf)
	}
}

// MinLookback is the minimum window length required for EMA stability.
const MinLookback = 200

// MaxGapPeriods bounds an inter-bar gap before it is treated as a data
// error rather than a weekend/holiday closure.
const MaxGapPeriods = 168

// InvalidBarsError is the only error the core ever returns to a caller;
// it names exactly one failed invariant.
type InvalidBarsError struct {
	Reason string
}

func (e *InvalidBarsError) Error() string {
	return fmt.Sprintf("invalid bars: %s", e.Reason)
}

// BarWindow is an ordered, validated sequence of Bars for one symbol and
// timeframe. The last element is the decision bar.
type BarWindow struct {
	symbol    string
	timeframe Timeframe
	bars      []Bar
	pipValue  float64
	period    time.Duration
}

// New validates bars and constructs a BarWindow, or returns an
// *InvalidBarsError naming the single rule that failed. The pip value
// is looked up from the symbol via the core's pip-value table (§6
// item 3); pass pipValueOverride > 0 to bypass the table (used by
// tests and by callers quoting an instrument the table doesn't know).
func New(symbol string, timeframe Timeframe, bars []Bar, pipValueOverride float64) (*BarWindow, error) {
	period, err := timeframe.Period()
	if err != nil {
		return nil, &InvalidBarsError{Reason: err.Error()}
	}

	if len(bars) < MinLookback {
		return nil, &InvalidBarsError{Reason: "insufficient bars (< minimum lookback)"}
	}

	for i, b := range bars {
		if b.Time.IsZero() || b.Time.Unix() == 0 {
			return nil, &InvalidBarsError{Reason: "zero timestamp"}
		}
		if b.Low > min2(b.Open, b.Close) || max2(b.Open, b.Close) > b.High || b.Low > b.High {
			return nil, &InvalidBarsError{Reason: "bar OHLC invariant violated"}
		}
		if i == 0 {
			continue
		}
		delta := bars[i].Time.Sub(bars[i-1].Time)
		if delta <= 0 {
			return nil, &InvalidBarsError{Reason: "strictly increasing timestamps"}
		}
		if delta%period != 0 {
			return nil, &InvalidBarsError{Reason: "alignment to timeframe"}
		}
		periods := delta / period
		if periods > MaxGapPeriods {
			return nil, &InvalidBarsError{Reason: "gap exceeds 168 periods"}
		}
	}

	pipValue := pipValueOverride
	if pipValue <= 0 {
		pipValue = PipValue(symbol)
	}

	cp := make([]Bar, len(bars))
	copy(cp, bars)

	return &BarWindow{
		symbol:    symbol,
		timeframe: timeframe,
		bars:      cp,
		pipValue:  pipValue,
		period:    period,
	}, nil
}

func min2(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max2(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Len returns the number of bars in the window.
func (w *BarWindow) Len() int { return len(w.bars) }

// At returns the bar at index i.
func (w *BarWindow) At(i int) Bar { return w.bars[i] }

// Bars returns a read-only view of every bar, oldest first.
func (w *BarWindow) Bars() []Bar { return w.bars }

// DecisionIndex is the index of the last, fully-closed bar.
func (w *BarWindow) DecisionIndex() int { return len(w.bars) - 1 }

// DecisionBar returns the most recent closed bar.
func (w *BarWindow) DecisionBar() Bar { return w.bars[w.DecisionIndex()] }

// Symbol returns the instrument this window belongs to.
func (w *BarWindow) Symbol() string { return w.symbol }

// Timeframe returns the window's timeframe.
func (w *BarWindow) Timeframe() Timeframe { return w.timeframe }

// PipValue returns the instrument's pip unit (e.g. 0.0001 or 0.01).
func (w *BarWindow) PipValue() float64 { return w.pipValue }

// Period returns the timeframe's duration.
func (w *BarWindow) Period() time.Duration { return w.period }

// Closes returns the Close series, oldest first.
func (w *BarWindow) Closes() []float64 {
	out := make([]float64, len(w.bars))
	for i, b := range w.bars {
		out[i] = b.Close
	}
	return out
}
