// FILE: internal/pipeline/reasons.go
// Canonical HOLD/acceptance reason strings (spec.md §4, §6: "five
// fractional digits for prices").
package pipeline

import (
	"fmt"
	"time"

	"github.com/ali1395/volarix4-sub000/internal/signal"
)

const (
	ReasonOutsideSession  = "Outside trading session (London/NY only)"
	ReasonNoLevels        = "No significant S/R levels detected"
	ReasonNoRejection     = "No rejection pattern at valid S/R levels"
	ReasonInvalidGeometry = "Invalid geometry"
)

func reasonAllLevelsBroken(cooldownHours float64) string {
	return fmt.Sprintf("All S/R levels broken or in cooldown period (%gh)", cooldownHours)
}

func reasonConfidenceBelowThreshold(confidence, minConfidence float64) string {
	return fmt.Sprintf("Confidence below threshold (%.2f < %.2f)", confidence, minConfidence)
}

func reasonTrendAlignmentFailed(direction signal.Decision, trend signal.Trend) string {
	return fmt.Sprintf("Trend alignment failed: %s in %s", direction, trend)
}

func reasonCooldownActive(allowedAfter time.Time) string {
	return fmt.Sprintf("Signal cooldown active: next signal allowed after %s", allowedAfter.UTC().Format(time.RFC3339))
}

func reasonInsufficientEdge(tp1Pips, costPips, minEdgePips float64) string {
	return fmt.Sprintf("Insufficient edge after costs (TP1 %.1f pips <= costs %.1f + edge %.1f)", tp1Pips, costPips, minEdgePips)
}

func reasonAccepted(kind signal.Kind, price float64, score int, bypassed bool) string {
	reason := fmt.Sprintf("%s bounce at %s, score %d", capitalize(kind.String()), signal.FormatPrice(price), score)
	if bypassed {
		reason += " (trend alignment bypassed: confidence >= 0.75)"
	}
	return reason
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
