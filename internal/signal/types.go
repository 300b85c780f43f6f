// FILE: internal/signal/types.go
// Package signal – Request-scoped value types the pipeline produces
// and consumes (spec.md §3), plus the typed Params override struct
// (spec.md §6, §9 Design Notes item "dictionaries of heterogeneous
// config").
//
// These types replace the teacher's dynamically-shaped Decision
// (strategy.go) with an explicit tagged union: Signal.Decision
// discriminates Buy/Sell/Hold, and only the fields meaningful for that
// decision are populated.
package signal

import "fmt"

// Decision is the pipeline's final verdict.
type Decision int

const (
	Hold Decision = iota
	Buy
	Sell
)

func (d Decision) String() string {
	switch d {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Kind identifies a support or resistance level.
type Kind int

const (
	Support Kind = iota
	Resistance
)

func (k Kind) String() string {
	if k == Support {
		return "support"
	}
	return "resistance"
}

// Trend is the regime the trend filter computes (spec.md §4.3). It
// never causes a rejection on its own.
type Trend int

const (
	Ranging Trend = iota
	Uptrend
	Downtrend
)

func (t Trend) String() string {
	switch t {
	case Uptrend:
		return "UPTREND"
	case Downtrend:
		return "DOWNTREND"
	default:
		return "RANGING"
	}
}

// Level is a clustered, scored support/resistance price (spec.md §3).
type Level struct {
	Price          float64
	Kind           Kind
	Score          int
	LastTouchIndex int
	Touches        int
}

// TPFractions is the fixed scaled take-profit split (spec.md §3).
var TPFractions = [3]float64{0.4, 0.4, 0.2}

// TradeSetup is the SL/TP geometry computed from the actual entry
// price (spec.md §4.10).
type TradeSetup struct {
	Entry float64
	SL    float64
	TP1   float64
	TP2   float64
	TP3   float64
}

// CostModel is the round-trip cost model (spec.md §3).
type CostModel struct {
	SpreadPips              float64
	SlippagePips            float64
	CommissionPerSidePerLot float64
	USDPerPipPerLot         float64
	LotSize                 float64
}

// TotalCostPips returns the round-trip cost in pips:
// spread + 2*slippage + (2*commission_per_side_per_lot*lot_size)/usd_per_pip_per_lot.
func (c CostModel) TotalCostPips() float64 {
	return c.SpreadPips + 2*c.SlippagePips + (2*c.CommissionPerSidePerLot*c.LotSize)/c.USDPerPipPerLot
}

// Params holds every overridable threshold from spec.md §6. Zero value
// for any field means "use the default" (the Go analogue of the
// specification's "passing null means use default"); construct via
// DefaultParams and overlay only what the caller set.
type Params struct {
	MinConfidence            float64
	BrokenLevelCooldownHours float64
	BrokenLevelBreakPips     float64
	MinEdgePips              float64
	CooldownHours            float64
	Cost                     CostModel
}

// DefaultParams returns the specification's strict defaults (spec.md §6).
func DefaultParams() Params {
	return Params{
		MinConfidence:            0.60,
		BrokenLevelCooldownHours: 48.0,
		BrokenLevelBreakPips:     15.0,
		MinEdgePips:              4.0,
		CooldownHours:            2.0,
		Cost: CostModel{
			SpreadPips:              1.0,
			SlippagePips:            0.5,
			CommissionPerSidePerLot: 7.0,
			USDPerPipPerLot:         10.0,
			LotSize:                 1.0,
		},
	}
}

// WithOverrides returns a copy of DefaultParams with every non-zero
// field of override applied on top.
func WithOverrides(override Params) Params {
	p := DefaultParams()
	if override.MinConfidence != 0 {
		p.MinConfidence = override.MinConfidence
	}
	if override.BrokenLevelCooldownHours != 0 {
		p.BrokenLevelCooldownHours = override.BrokenLevelCooldownHours
	}
	if override.BrokenLevelBreakPips != 0 {
		p.BrokenLevelBreakPips = override.BrokenLevelBreakPips
	}
	if override.MinEdgePips != 0 {
		p.MinEdgePips = override.MinEdgePips
	}
	if override.CooldownHours != 0 {
		p.CooldownHours = override.CooldownHours
	}
	if override.Cost.SpreadPips != 0 {
		p.Cost.SpreadPips = override.Cost.SpreadPips
	}
	if override.Cost.SlippagePips != 0 {
		p.Cost.SlippagePips = override.Cost.SlippagePips
	}
	if override.Cost.CommissionPerSidePerLot != 0 {
		p.Cost.CommissionPerSidePerLot = override.Cost.CommissionPerSidePerLot
	}
	if override.Cost.USDPerPipPerLot != 0 {
		p.Cost.USDPerPipPerLot = override.Cost.USDPerPipPerLot
	}
	if override.Cost.LotSize != 0 {
		p.Cost.LotSize = override.Cost.LotSize
	}
	return p
}

// Signal is the pipeline's result (spec.md §3/§6 item 2).
type Signal struct {
	EvaluationID string
	Decision     Decision
	Confidence   float64
	Entry        float64
	SL           float64
	TP1          float64
	TP2          float64
	TP3          float64
	TPFractions  [3]float64
	Reason       string
}

// HoldSignal builds a HOLD signal with the given canonical reason.
func HoldSignal(reason string) Signal {
	return Signal{Decision: Hold, Reason: reason}
}

// FormatPrice renders a price with the canonical five fractional
// digits (spec.md §6: "Canonical decimal formatting ... uses five
// fractional digits for prices").
func FormatPrice(p float64) string {
	return fmt.Sprintf("%.5f", p)
}
