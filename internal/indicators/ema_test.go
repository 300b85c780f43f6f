// FILE: internal/indicators/ema_test.go
package indicators

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEMAWarmup(t *testing.T) {
	values := []float64{1, 2, 3, 4}
	out := EMA(values, 5)
	for _, v := range out {
		require.True(t, math.IsNaN(v))
	}
}

func TestEMASeedIsSimpleAverage(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	out := EMA(values, 5)
	require.InDelta(t, 3.0, out[4], 1e-9)
}

func TestEMATracksRisingSeries(t *testing.T) {
	values := make([]float64, 30)
	for i := range values {
		values[i] = float64(i)
	}
	out := EMA(values, 5)
	require.Less(t, out[10], values[10])
	require.Greater(t, out[len(out)-1], out[10])
}

func TestEMAEmptyInput(t *testing.T) {
	out := EMA(nil, 5)
	require.Len(t, out, 0)
}
