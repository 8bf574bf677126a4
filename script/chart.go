package script

import (
	"strconv"

	"energyvis/html"
	"energyvis/logger"
	_type "energyvis/type"

	"go.uber.org/zap"
)

var (
	barPalette     = []string{"#e74c3c", "#3498db", "#2ecc71", "#f39c12", "#9b59b6"}
	seriesPalette  = []string{"#3498db", "#e74c3c", "#2ecc71", "#f39c12", "#9b59b6"}
	scatterPalette = []string{"#3498db", "#e74c3c", "#2ecc71", "#f39c12", "#9b59b6", "#1abc9c", "#34495e"}
)

const (
	lineColor  = "#3498db"
	trendColor = "#e74c3c"

	legendMin = 2
	legendMax = 7
)

// Chart turns one dataset into the drawing plan of one target.
type Chart interface {
	Target() string
	Dataset() string
	Render(ds *_type.Dataset, vp _type.Viewport) html.ChartPage
}

// ordinal hands out palette colours in first-seen order, cycling when the
// domain outgrows the palette.
type ordinal struct {
	palette []string
	index   map[string]int
	domain  []string
}

func newOrdinal(palette []string) *ordinal {
	return &ordinal{palette: palette, index: make(map[string]int)}
}

func (o *ordinal) color(key string) string {
	i, ok := o.index[key]
	if !ok {
		i = len(o.domain)
		o.index[key] = i
		o.domain = append(o.domain, key)
	}
	return o.palette[i%len(o.palette)]
}

// chartBase holds what every chart shares: identity, titles and logging.
type chartBase struct {
	target  string
	dataset string
	kind    string
	title   string
	xAxis   string
	yAxis   string
	schema  Schema
	opts    InferOptions
	logger  *logger.Logger
}

func (c *chartBase) Target() string  { return c.target }
func (c *chartBase) Dataset() string { return c.dataset }

func (c *chartBase) page(vp _type.Viewport) html.ChartPage {
	return html.ChartPage{
		Target: c.target,
		Kind:   c.kind,
		Title:  c.title,
		XAxis:  c.xAxis,
		YAxis:  c.yAxis,
		Width:  vp.Width,
		Height: vp.Height,
		Margin: html.Margin{
			Top:    vp.Margin.Top,
			Right:  vp.Margin.Right,
			Bottom: vp.Margin.Bottom,
			Left:   vp.Margin.Left,
		},
	}
}

// precheck returns a finished placeholder page when the chart cannot be
// drawn at all: no dataset or no room inside the margins.
func (c *chartBase) precheck(ds *_type.Dataset, vp _type.Viewport) (html.ChartPage, bool) {
	page := c.page(vp)
	if ds == nil {
		c.logger.Error("dataset not loaded", zap.String("chart", c.target), zap.String("dataset", c.dataset))
		page.Placeholder = &html.Placeholder{Kind: html.PlaceholderError, Message: html.LoadFailedMessage}
		return page, false
	}
	if w, h := vp.Inner(); w <= 0 || h <= 0 {
		c.logger.Error("invalid chart dimensions", zap.String("chart", c.target), zap.Int("width", w), zap.Int("height", h))
		page.Placeholder = &html.Placeholder{Kind: html.PlaceholderError, Message: "Invalid chart dimensions"}
		return page, false
	}
	return page, true
}

// placeholder turns an inference error into the notice shown instead of the chart.
func (c *chartBase) placeholder(page html.ChartPage, inf Inference, err error) html.ChartPage {
	if _type.HasCode(err, _type.ErrCodeEmptyDataset) {
		c.logger.Warn("empty dataset", zap.String("chart", c.target), zap.Int("rows", inf.Rows), zap.Int("dropped", inf.Dropped))
		page.Placeholder = &html.Placeholder{Kind: html.PlaceholderEmpty, Message: html.NoDataMessage}
		return page
	}
	c.logger.Error("cannot map dataset", zap.String("chart", c.target), zap.Error(err))
	page.Placeholder = &html.Placeholder{Kind: html.PlaceholderError, Message: err.Error()}
	return page
}

func (c *chartBase) logInference(inf Inference) {
	c.logger.Debug("rows mapped", zap.String("chart", c.target), zap.Int("rows", inf.Rows), zap.Int("dropped", inf.Dropped))
}

// formatNumber prints a value the shortest way that reads back exactly.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NewCharts builds the four dashboard charts from the configuration.
func NewCharts(cfg *_type.Config, log *logger.Logger) []Chart {
	opts := InferOptions{StrictNumbers: cfg.StrictNumbers}
	schema := func(s Schema, dataset string) Schema {
		if d, ok := cfg.Dataset(dataset); ok && len(d.Expect) > 0 {
			return s.WithExpect(d.Expect)
		}
		return s
	}

	return []Chart{
		NewLineChart(_type.DatasetSpotPrices, schema(LineSchema, _type.DatasetSpotPrices), opts, log),
		NewBarChart(_type.DatasetTV55Inch, schema(BarSchema, _type.DatasetTV55Inch), opts, log),
		NewGroupedBarChart(_type.DatasetTVAllSizes, schema(GroupedBarSchema, _type.DatasetTVAllSizes), opts, log),
		NewScatterChart(_type.DatasetTVEnergy, schema(ScatterSchema, _type.DatasetTVEnergy), opts, log),
	}
}
