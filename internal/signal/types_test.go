// FILE: internal/signal/types_test.go
package signal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCostModelTotal(t *testing.T) {
	p := DefaultParams()
	// 1 + 2*0.5 + 2*7*1/10 = 3.4
	require.InDelta(t, 3.4, p.Cost.TotalCostPips(), 1e-9)
}

func TestWithOverridesOnlyTouchesSetFields(t *testing.T) {
	p := WithOverrides(Params{MinConfidence: 0.75})
	require.InDelta(t, 0.75, p.MinConfidence, 1e-9)
	require.InDelta(t, 48.0, p.BrokenLevelCooldownHours, 1e-9)
	require.InDelta(t, 3.4, p.Cost.TotalCostPips(), 1e-9)
}

func TestFormatPriceFiveDigits(t *testing.T) {
	require.Equal(t, "1.08500", FormatPrice(1.085))
	require.Equal(t, "1.08537", FormatPrice(1.08537))
}

func TestHoldSignal(t *testing.T) {
	s := HoldSignal("No significant S/R levels detected")
	require.Equal(t, Hold, s.Decision)
	require.Equal(t, "No significant S/R levels detected", s.Reason)
}
