package script

import (
	"energyvis/html"
	"energyvis/logger"
	_type "energyvis/type"

	"go.uber.org/zap"
)

// ScatterChart plots star rating against energy use, coloured by screen
// technology, with a least squares trend line over the displayed x domain.
type ScatterChart struct {
	chartBase
}

func NewScatterChart(dataset string, schema Schema, opts InferOptions, log *logger.Logger) *ScatterChart {
	return &ScatterChart{chartBase{
		target:  _type.TargetScatter,
		dataset: dataset,
		kind:    html.KindScatter,
		title:   "TV Energy Consumption",
		xAxis:   "Star Rating",
		yAxis:   "Energy Consumption (kWh)",
		schema:  schema,
		opts:    opts,
		logger:  log,
	}}
}

// minTrendPoints is the number of points above which a trend is drawn.
const minTrendPoints = 2

func (c *ScatterChart) Render(ds *_type.Dataset, vp _type.Viewport) html.ChartPage {
	page, ok := c.precheck(ds, vp)
	if !ok {
		return page
	}

	points, inf, err := InferScatterPoints(ds, c.schema, c.opts)
	if err != nil {
		return c.placeholder(page, inf, err)
	}
	c.logInference(inf)

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	xd, _ := Extent(xs)
	yd, _ := Extent(ys)
	xd, yd = Nice(xd), Nice(yd)
	page.XDomain = xd[:]
	page.YDomain = yd[:]

	colors := newOrdinal(scatterPalette)
	bySeries := make(map[string]int)
	for _, p := range points {
		color := colors.color(p.Category)
		idx, ok := bySeries[p.Category]
		if !ok {
			idx = len(page.Series)
			bySeries[p.Category] = idx
			page.Series = append(page.Series, html.Series{Name: p.Category, Color: color})
		}
		page.Series[idx].Marks = append(page.Series[idx].Marks, html.Mark{
			X:        p.X,
			Y:        p.Y,
			Label:    p.Brand,
			Category: p.Category,
			Color:    color,
			Tooltip: "Star Rating: " + formatNumber(p.X) +
				"\nEnergy: " + formatNumber(p.Y) + " kWh" +
				"\nScreen Tech: " + p.Category +
				"\nBrand: " + p.Brand +
				"\nScreen Size: " + formatNumber(p.ScreenSize) + "\"",
		})
	}

	if len(points) > minTrendPoints {
		if trend := ScatterTrend(points); trend.IsSome() {
			seg := trend.Unwrap().Segment(xd)
			page.Trend = &html.Segment{
				X1: seg[0][0], Y1: seg[0][1],
				X2: seg[1][0], Y2: seg[1][1],
				Color: trendColor,
			}
		} else {
			c.logger.Debug("no trend line", zap.String("chart", c.target), zap.Int("points", len(points)))
		}
	}

	if n := len(colors.domain); n >= legendMin && n <= legendMax {
		for _, category := range colors.domain {
			page.Legend = append(page.Legend, html.LegendEntry{
				Label: category,
				Color: colors.color(category),
				Shape: "circle",
			})
		}
	}
	return page
}
