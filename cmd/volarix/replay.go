// FILE: cmd/volarix/replay.go
// runReplay walks a CSV of bars through the pipeline bar-by-bar, proving
// by construction that replay and a live bridge calling Evaluate once
// per bar produce the same decisions from the same DecisionState.
// Grounded in the teacher's backtest.go runBacktest: load once, warm up,
// step forward one bar at a time, log periodic progress, print a final
// tally — generalized from the teacher's win/loss count to RunStats'
// per-reason HOLD accounting.
package main

import (
	"context"
	"log"

	"github.com/ali1395/volarix4-sub000/internal/bar"
	"github.com/ali1395/volarix4-sub000/internal/metrics"
	"github.com/ali1395/volarix4-sub000/internal/pipeline"
	"github.com/ali1395/volarix4-sub000/internal/signal"
	"github.com/ali1395/volarix4-sub000/internal/store"
)

func runReplay(ctx context.Context, csvPath, symbol string, timeframe bar.Timeframe, params signal.Params) {
	bars, err := loadBarCSV(csvPath)
	if err != nil {
		log.Fatalf("replay load: %v", err)
	}
	if len(bars) < bar.MinLookback {
		log.Fatalf("replay: need >= %d bars, have %d", bar.MinLookback, len(bars))
	}

	state := store.New()
	stats := pipeline.NewRunStats()

	log.Printf("Replay: csv=%s rows=%d symbol=%s timeframe=%s", csvPath, len(bars), symbol, timeframe)

	for i := bar.MinLookback - 1; i < len(bars); i++ {
		select {
		case <-ctx.Done():
			log.Println("replay canceled")
			return
		default:
		}

		w, err := bar.New(symbol, timeframe, bars[:i+1], 0)
		if err != nil {
			log.Fatalf("replay: invalid bars at row %d: %v", i, err)
		}

		result := pipeline.Evaluate(w, state, params, stats)
		metrics.ObserveSignal(result.Decision.String(), result.Reason)
		metrics.SetBrokenLevelGauge(symbol, state.BrokenLevelCount(symbol))
		if deadline, blocked := state.NextCooldownDeadline(symbol, params.CooldownHours); blocked {
			remaining := deadline.Sub(w.DecisionBar().Time).Seconds()
			metrics.SetCooldownRemainingGauge(symbol, remaining)
		}

		if result.Decision != signal.Hold {
			log.Printf("[%s] %s entry=%s sl=%s tp1=%s reason=%s",
				w.DecisionBar().Time.Format("2006-01-02T15:04:05Z"), result.Decision,
				signal.FormatPrice(result.Entry), signal.FormatPrice(result.SL),
				signal.FormatPrice(result.TP1), result.Reason)
		}
		if i%500 == 0 {
			log.Printf("[replay] i=%d total=%d accepted=%d", i, stats.Total(), stats.Accepted())
		}
	}

	log.Printf("Replay complete. Total=%d Accepted=%d HoldReasons=%v",
		stats.Total(), stats.Accepted(), stats.Counts())
}
