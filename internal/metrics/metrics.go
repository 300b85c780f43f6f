// FILE: internal/metrics/metrics.go
// Package metrics – Prometheus observability for the decision pipeline.
//
// Registered in init() and served by the HTTP handler started in
// cmd/volarix/main.go at /metrics, the same shape as the teacher's
// metrics.go (CounterVec/GaugeVec registered at package init, small
// typed setter helpers called by the harness, never by the core).
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "volarix_decisions_total",
			Help: "Pipeline decisions by kind (BUY|SELL|HOLD)",
		},
		[]string{"decision"},
	)

	holdReasonsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "volarix_hold_reasons_total",
			Help: "HOLD outcomes by canonical reason",
		},
		[]string{"reason"},
	)

	brokenLevels = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "volarix_broken_levels",
			Help: "Current broken-level cardinality per symbol",
		},
		[]string{"symbol"},
	)

	cooldownSecondsRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "volarix_cooldown_seconds_remaining",
			Help: "Seconds until the next signal is allowed per symbol (0 if none active)",
		},
		[]string{"symbol"},
	)
)

func init() {
	prometheus.MustRegister(decisionsTotal, holdReasonsTotal, brokenLevels, cooldownSecondsRemaining)
}

// ObserveSignal increments the decision counter, and for HOLD outcomes,
// the matching reason counter.
func ObserveSignal(decision string, reason string) {
	decisionsTotal.WithLabelValues(decision).Inc()
	if decision == "HOLD" {
		holdReasonsTotal.WithLabelValues(reason).Inc()
	}
}

// SetBrokenLevelGauge reports a symbol's current broken-level count.
func SetBrokenLevelGauge(symbol string, count int) {
	brokenLevels.WithLabelValues(symbol).Set(float64(count))
}

// SetCooldownRemainingGauge reports the seconds remaining before symbol
// may signal again (0 when no cooldown is active).
func SetCooldownRemainingGauge(symbol string, seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	cooldownSecondsRemaining.WithLabelValues(symbol).Set(seconds)
}
