package script

import (
	"energyvis/html"
	"energyvis/logger"
	_type "energyvis/type"
)

// BarChart draws one bar per category, coloured by category, with its value
// printed above the bar.
type BarChart struct {
	chartBase
}

func NewBarChart(dataset string, schema Schema, opts InferOptions, log *logger.Logger) *BarChart {
	return &BarChart{chartBase{
		target:  _type.TargetBar,
		dataset: dataset,
		kind:    html.KindBar,
		title:   "TV Energy by Screen Type (55 inch)",
		xAxis:   "Screen Type",
		yAxis:   "Energy Consumption (kWh)",
		schema:  schema,
		opts:    opts,
		logger:  log,
	}}
}

func (c *BarChart) Render(ds *_type.Dataset, vp _type.Viewport) html.ChartPage {
	page, ok := c.precheck(ds, vp)
	if !ok {
		return page
	}

	values, inf, err := InferCategoryValues(ds, c.schema, c.opts)
	if err != nil {
		return c.placeholder(page, inf, err)
	}
	c.logInference(inf)

	colors := newOrdinal(barPalette)
	nums := make([]float64, len(values))
	series := html.Series{Name: "energy", Color: barPalette[0], Marks: make([]html.Mark, 0, len(values))}
	for i, v := range values {
		nums[i] = v.Value
		page.Labels = appendUnique(page.Labels, v.Category)
		series.Marks = append(series.Marks, html.Mark{
			X:        float64(i),
			Y:        v.Value,
			Label:    v.Category,
			Text:     formatNumber(v.Value),
			Category: v.Category,
			Color:    colors.color(v.Category),
			Tooltip:  "Screen Type: " + v.Category + "\nEnergy: " + formatNumber(v.Value) + " kWh",
		})
	}

	yd := ZeroMax(nums)
	page.YDomain = yd[:]
	page.Series = []html.Series{series}
	return page
}

// appendUnique appends s unless it is already present; a band domain holds
// each label once.
func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
