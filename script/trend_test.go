package script

import (
	"testing"

	_type "energyvis/type"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearRegression(t *testing.T) {
	fit := LinearRegression([]float64{1, 2, 3}, []float64{2, 4, 6})
	require.True(t, fit.IsSome())
	line := fit.Unwrap()
	assert.InDelta(t, 2, line.Slope, 1e-9)
	assert.InDelta(t, 0, line.Intercept, 1e-9)

	fit = LinearRegression([]float64{0, 1, 2, 3}, []float64{1, 3, 5, 7})
	require.True(t, fit.IsSome())
	assert.InDelta(t, 2, fit.Unwrap().Slope, 1e-9)
	assert.InDelta(t, 1, fit.Unwrap().Intercept, 1e-9)
}

func TestLinearRegressionNoisy(t *testing.T) {
	// y = 3x - 1 with symmetric noise
	fit := LinearRegression([]float64{1, 2, 3, 4}, []float64{2.5, 4.5, 8.5, 10.5})
	require.True(t, fit.IsSome())
	assert.InDelta(t, 2.8, fit.Unwrap().Slope, 1e-9)
	assert.InDelta(t, -0.5, fit.Unwrap().Intercept, 1e-9)
}

func TestLinearRegressionDegenerate(t *testing.T) {
	assert.True(t, LinearRegression(nil, nil).IsNone())
	assert.True(t, LinearRegression([]float64{1}, []float64{2}).IsNone())
	assert.True(t, LinearRegression([]float64{5, 5}, []float64{1, 9}).IsNone())
	assert.True(t, LinearRegression([]float64{1, 2, 3}, []float64{1, 2}).IsNone())

	// equal xs whose sums do not cancel exactly in floating point
	for _, x := range []float64{3.3, 0.7, 1.1, 2.3, 4.7, 6.1} {
		for n := 3; n <= 7; n++ {
			xs := make([]float64, n)
			ys := make([]float64, n)
			for i := range xs {
				xs[i], ys[i] = x, float64(1+4*i)
			}
			assert.True(t, LinearRegression(xs, ys).IsNone(), "x=%v n=%d", x, n)
		}
	}
}

func TestScatterTrend(t *testing.T) {
	points := []_type.ScatterPoint{{X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 6}}
	fit := ScatterTrend(points)
	require.True(t, fit.IsSome())

	seg := fit.Unwrap().Segment([2]float64{0, 10})
	assert.InDelta(t, 0, seg[0][1], 1e-9)
	assert.InDelta(t, 20, seg[1][1], 1e-9)
	assert.Equal(t, 0.0, seg[0][0])
	assert.Equal(t, 10.0, seg[1][0])
}
