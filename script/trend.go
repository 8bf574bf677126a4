package script

import (
	"math"

	_type "energyvis/type"

	"github.com/moznion/go-optional"
)

// LinearRegression fits y = slope*x + intercept by ordinary least squares.
// It returns None when fewer than two pairs are given, when the lengths
// differ, or when the fit is degenerate (every x equal).
func LinearRegression(xs, ys []float64) optional.Option[_type.TrendLine] {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return optional.None[_type.TrendLine]()
	}
	// rounding leaves the denominator slightly off zero for most equal xs
	if xd, _ := Extent(xs); xd[0] == xd[1] {
		return optional.None[_type.TrendLine]()
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumXX += xs[i] * xs[i]
	}

	fn := float64(n)
	denominator := fn*sumXX - sumX*sumX
	if denominator == 0 {
		return optional.None[_type.TrendLine]()
	}

	slope := (fn*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / fn
	if !isFinite(slope) || !isFinite(intercept) {
		return optional.None[_type.TrendLine]()
	}
	return optional.Some(_type.TrendLine{Slope: slope, Intercept: intercept})
}

// ScatterTrend fits the scatter points.
func ScatterTrend(points []_type.ScatterPoint) optional.Option[_type.TrendLine] {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	return LinearRegression(xs, ys)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
