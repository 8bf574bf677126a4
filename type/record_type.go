package _type

import "time"

// PricePoint is one row of the time series chart.
type PricePoint struct {
	Date  time.Time
	Price float64
}

// CategoryValue is one bar of the single series bar chart.
type CategoryValue struct {
	Category string
	Value    float64
}

// SeriesRecord is one group of the grouped bar chart. Series keeps the
// header order of the value columns.
type SeriesRecord struct {
	Category string
	Series   []string
	Values   map[string]float64
}

// ScatterPoint is one dot of the scatter chart.
type ScatterPoint struct {
	X          float64
	Y          float64
	Category   string
	Brand      string
	ScreenSize float64
}

// TrendLine is a least squares fit y = Slope*x + Intercept.
type TrendLine struct {
	Slope     float64
	Intercept float64
}

func (t TrendLine) At(x float64) float64 {
	return t.Slope*x + t.Intercept
}

// Segment evaluates the line at both ends of a displayed x domain.
func (t TrendLine) Segment(domain [2]float64) [2][2]float64 {
	return [2][2]float64{
		{domain[0], t.At(domain[0])},
		{domain[1], t.At(domain[1])},
	}
}
