// FILE: cmd/volarix/main.go
// Package main – Program entrypoint: CLI harness around the decision
// pipeline.
//
// Boot sequence (mirrors the teacher's main.go):
//   1) loadDotEnv()              – read .env (no shell exports required)
//   2) cfg := loadRunConfigFromEnv()
//   3) start Prometheus /healthz + /metrics server on cfg.Port if -serve
//   4) runReplay or runLive based on flags
//
// Flags:
//
//	-replay <csv>     Walk a CSV of bars through the pipeline bar-by-bar
//	-live <csv>       Run the interval loop against a CSV-backed demo source
//	-serve            Expose /healthz and /metrics
//	-interval <sec>   Live loop interval in seconds (default 60)
//	-symbol <sym>     Instrument symbol (default from VOLARIX_SYMBOL or EURUSD)
//	-timeframe <tf>   Bar timeframe (default from VOLARIX_TIMEFRAME or H1)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	osSignal "os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ali1395/volarix4-sub000/internal/bar"
	"github.com/ali1395/volarix4-sub000/internal/signal"
)

func main() {
	var replayCSV string
	var liveCSV string
	var serve bool
	var intervalSec int
	var symbolFlag string
	var timeframeFlag string
	flag.StringVar(&replayCSV, "replay", "", "Path to CSV (time,open,high,low,close,volume); walks bar-by-bar")
	flag.StringVar(&liveCSV, "live", "", "Path to CSV used as a demo BarSource for the interval loop")
	flag.BoolVar(&serve, "serve", false, "Expose /healthz and /metrics")
	flag.IntVar(&intervalSec, "interval", 60, "Live loop interval in seconds")
	flag.StringVar(&symbolFlag, "symbol", "", "Instrument symbol (overrides VOLARIX_SYMBOL)")
	flag.StringVar(&timeframeFlag, "timeframe", "", "Bar timeframe (overrides VOLARIX_TIMEFRAME)")
	flag.Parse()

	loadDotEnv()
	cfg := loadRunConfigFromEnv()
	if symbolFlag != "" {
		cfg.Symbol = symbolFlag
	}
	if timeframeFlag != "" {
		cfg.Timeframe = timeframeFlag
	}
	timeframe := bar.Timeframe(cfg.Timeframe)

	params := signal.WithOverrides(signal.Params{
		MinConfidence:            cfg.Params.MinConfidence,
		BrokenLevelCooldownHours: cfg.Params.BrokenLevelCooldownHours,
		BrokenLevelBreakPips:     cfg.Params.BrokenLevelBreakPips,
		MinEdgePips:              cfg.Params.MinEdgePips,
		CooldownHours:            cfg.Params.CooldownHours,
	})

	var srv *http.Server
	if serve {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("ok\n"))
		})
		mux.Handle("/metrics", promhttp.Handler())
		srv = &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: mux}
		go func() {
			log.Printf("serving metrics on :%d/metrics", cfg.Port)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("server: %v", err)
			}
		}()
	}

	ctx, cancel := osSignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch {
	case replayCSV != "":
		runReplay(ctx, replayCSV, cfg.Symbol, timeframe, params)
	case liveCSV != "":
		source, err := newCSVBarSource(liveCSV, cfg.Symbol, timeframe)
		if err != nil {
			log.Fatalf("live source init: %v", err)
		}
		runLive(ctx, source, cfg.Symbol, params, intervalSec)
	default:
		log.Fatalf("nothing to do: pass -replay <csv> or -live <csv>")
	}

	if srv != nil {
		shutdownCtx, c := context.WithTimeout(context.Background(), 2*time.Second)
		defer c()
		_ = srv.Shutdown(shutdownCtx)
	}
}
