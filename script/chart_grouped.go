package script

import (
	"energyvis/html"
	"energyvis/logger"
	_type "energyvis/type"
)

// GroupedBarChart draws a group per category and a bar per series column.
type GroupedBarChart struct {
	chartBase
}

func NewGroupedBarChart(dataset string, schema Schema, opts InferOptions, log *logger.Logger) *GroupedBarChart {
	return &GroupedBarChart{chartBase{
		target:  _type.TargetGroupedBar,
		dataset: dataset,
		kind:    html.KindGroupedBar,
		title:   "TV Energy by Screen Type (All Sizes)",
		xAxis:   "Screen Type",
		yAxis:   "Energy Consumption (kWh)",
		schema:  schema,
		opts:    opts,
		logger:  log,
	}}
}

func (c *GroupedBarChart) Render(ds *_type.Dataset, vp _type.Viewport) html.ChartPage {
	page, ok := c.precheck(ds, vp)
	if !ok {
		return page
	}

	records, inf, err := InferSeriesRecords(ds, c.schema, c.opts)
	if err != nil {
		return c.placeholder(page, inf, err)
	}
	c.logInference(inf)

	names := records[0].Series
	colors := newOrdinal(seriesPalette)
	series := make([]html.Series, len(names))
	for i, name := range names {
		color := colors.color(name)
		series[i] = html.Series{Name: name, Color: color, Marks: make([]html.Mark, 0, len(records))}
		page.Legend = append(page.Legend, html.LegendEntry{Label: name, Color: color, Shape: "rect"})
	}

	var nums []float64
	for gi, rec := range records {
		page.Labels = appendUnique(page.Labels, rec.Category)
		for si, name := range names {
			v := rec.Values[name]
			nums = append(nums, v)
			series[si].Marks = append(series[si].Marks, html.Mark{
				X:        float64(gi),
				Y:        v,
				Label:    rec.Category,
				Category: name,
				Color:    series[si].Color,
				Tooltip:  "Type: " + rec.Category + "\nSize: " + name + "\nEnergy: " + formatNumber(v) + " kWh",
			})
		}
	}

	yd := ZeroMax(nums)
	page.YDomain = yd[:]
	page.Series = series
	return page
}
