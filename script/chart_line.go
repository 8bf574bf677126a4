package script

import (
	"math/big"

	"energyvis/html"
	"energyvis/logger"
	_type "energyvis/type"

	"github.com/shopspring/decimal"
)

// LineChart draws a price time series: a line with a dot per row.
type LineChart struct {
	chartBase
}

func NewLineChart(dataset string, schema Schema, opts InferOptions, log *logger.Logger) *LineChart {
	return &LineChart{chartBase{
		target:  _type.TargetLine,
		dataset: dataset,
		kind:    html.KindLine,
		title:   "ARE Spot Prices",
		xAxis:   "Date",
		yAxis:   "Price ($)",
		schema:  schema,
		opts:    opts,
		logger:  log,
	}}
}

func (c *LineChart) Render(ds *_type.Dataset, vp _type.Viewport) html.ChartPage {
	page, ok := c.precheck(ds, vp)
	if !ok {
		return page
	}

	points, inf, err := InferPricePoints(ds, c.schema, c.opts)
	if err != nil {
		return c.placeholder(page, inf, err)
	}
	c.logInference(inf)

	dates := make([]int64, len(points))
	prices := make([]float64, len(points))
	for i, p := range points {
		dates[i] = p.Date.UnixMilli()
		prices[i] = p.Price
	}

	xd, _ := Extent(int64sToFloats(dates))
	yd, _ := Extent(prices)
	yd = Nice(yd)

	page.TimeAxis = true
	page.TickFormat = "Jan 2006"
	page.XDomain = xd[:]
	page.YDomain = yd[:]

	series := html.Series{Name: "price", Color: lineColor, Marks: make([]html.Mark, 0, len(points))}
	for i, p := range points {
		series.Marks = append(series.Marks, html.Mark{
			X:       float64(dates[i]),
			Y:       p.Price,
			Label:   p.Date.Format(dateLayout),
			Color:   lineColor,
			Tooltip: "Date: " + p.Date.Format(dateLayout) + "\nPrice: $" + fixed2(p.Price),
		})
	}
	page.Series = []html.Series{series}
	return page
}

func int64sToFloats(in []int64) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// fixed2 rounds the exact binary value of v to two decimals, half away from
// zero, so 1.005 (stored just below) prints as 1.00.
func fixed2(v float64) string {
	exact := new(big.Float).SetFloat64(v).Text('f', 1074)
	return decimal.RequireFromString(exact).StringFixed(2)
}
