// FILE: cmd/volarix/live.go
// runLive polls a BarSource on a fixed interval and feeds its current
// window to the pipeline, mirroring the teacher's live.go ticker loop
// (time.NewTicker, ctx.Done() shutdown). BarSource is the seam spec.md
// §1 calls external (the MT5 bridge); only a CSV-backed demo
// implementation lives here, for the same reason the teacher's live.go
// depends on an injected Broker rather than embedding exchange wiring
// in the loop itself.
package main

import (
	"context"
	"log"
	"time"

	"github.com/ali1395/volarix4-sub000/internal/bar"
	"github.com/ali1395/volarix4-sub000/internal/metrics"
	"github.com/ali1395/volarix4-sub000/internal/pipeline"
	"github.com/ali1395/volarix4-sub000/internal/signal"
	"github.com/ali1395/volarix4-sub000/internal/store"
)

// BarSource supplies the current closed-bar window for one symbol. A
// live deployment backs this with an MT5 bridge; csvBarSource below
// backs it with a growing slice read once at startup, for demos.
type BarSource interface {
	Window(ctx context.Context) (*bar.BarWindow, error)
}

// csvBarSource replays a CSV file as a growing window, advancing by one
// bar per call to Window, wrapping to the start once exhausted so a
// demo run can be left going indefinitely.
type csvBarSource struct {
	bars      []bar.Bar
	symbol    string
	timeframe bar.Timeframe
	cursor    int
}

func newCSVBarSource(path, symbol string, timeframe bar.Timeframe) (*csvBarSource, error) {
	bars, err := loadBarCSV(path)
	if err != nil {
		return nil, err
	}
	if len(bars) < bar.MinLookback {
		return nil, &bar.InvalidBarsError{Reason: "insufficient bars (< minimum lookback)"}
	}
	return &csvBarSource{bars: bars, symbol: symbol, timeframe: timeframe, cursor: bar.MinLookback - 1}, nil
}

func (s *csvBarSource) Window(ctx context.Context) (*bar.BarWindow, error) {
	if s.cursor >= len(s.bars) {
		s.cursor = bar.MinLookback - 1
	}
	w, err := bar.New(s.symbol, s.timeframe, s.bars[:s.cursor+1], 0)
	s.cursor++
	return w, err
}

func runLive(ctx context.Context, source BarSource, symbol string, params signal.Params, intervalSec int) {
	if intervalSec <= 0 {
		intervalSec = 60
	}
	log.Printf("Starting live loop — symbol=%s interval=%ds", symbol, intervalSec)

	state := store.New()
	stats := pipeline.NewRunStats()

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("shutdown")
			return
		case <-ticker.C:
			w, err := source.Window(ctx)
			if err != nil {
				log.Printf("bar source error: %v", err)
				continue
			}
			result := pipeline.Evaluate(w, state, params, stats)
			metrics.ObserveSignal(result.Decision.String(), result.Reason)
			metrics.SetBrokenLevelGauge(symbol, state.BrokenLevelCount(symbol))
			log.Printf("[%s] %s %s", w.DecisionBar().Time.Format(time.RFC3339), result.Decision, result.Reason)
		}
	}
}
