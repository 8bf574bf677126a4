package script

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"energyvis/html"
	_type "energyvis/type"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RenderImage draws a chart plan as a PNG or SVG image. Placeholders become
// an image holding only the centered notice.
func RenderImage(w io.Writer, page html.ChartPage, format string) error {
	provider := chart.PNG
	if format == "svg" {
		provider = chart.SVG
	}

	if page.Placeholder != nil {
		return renderNotice(w, page, provider)
	}

	var err error
	switch page.Kind {
	case html.KindLine:
		err = renderLine(w, page, provider)
	case html.KindBar, html.KindGroupedBar:
		err = renderBars(w, page, provider)
	case html.KindScatter:
		err = renderScatter(w, page, provider)
	default:
		return _type.NewErrorf(_type.ErrCodeRenderFailure, "chart %s: unknown kind %q", page.Target, page.Kind)
	}
	if err != nil {
		return _type.WrapErrorf(_type.ErrCodeRenderFailure, err, "chart %s", page.Target)
	}
	return nil
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func background(page html.ChartPage) chart.Style {
	return chart.Style{Padding: chart.Box{
		Top:    page.Margin.Top,
		Left:   page.Margin.Left,
		Right:  page.Margin.Right,
		Bottom: page.Margin.Bottom,
	}}
}

// axisRange widens a zero-width domain so the renderer has something to
// scale. Without a domain the renderer picks the range from the data.
func axisRange(domain []float64, pad float64) chart.Range {
	if len(domain) != 2 {
		return nil
	}
	lo, hi := domain[0], domain[1]
	if lo == hi {
		lo, hi = lo-pad, hi+pad
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

func renderNotice(w io.Writer, page html.ChartPage, provider chart.RendererProvider) error {
	r, err := provider(page.Width, page.Height)
	if err != nil {
		return err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return err
	}

	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(page.Width, 0)
	r.LineTo(page.Width, page.Height)
	r.LineTo(0, page.Height)
	r.Close()
	r.Fill()

	r.SetFont(font)
	r.SetFontSize(16)
	if page.Placeholder.Kind == html.PlaceholderError {
		r.SetFontColor(color("#c0392b"))
	} else {
		r.SetFontColor(color("#666666"))
	}
	box := r.MeasureText(page.Placeholder.Message)
	r.Text(page.Placeholder.Message, (page.Width-box.Width())/2, (page.Height+box.Height())/2)
	return r.Save(w)
}

func renderLine(w io.Writer, page html.ChartPage, provider chart.RendererProvider) error {
	s := page.Series[0]
	times := make([]time.Time, 0, len(s.Marks))
	ys := make([]float64, 0, len(s.Marks))
	for _, m := range s.Marks {
		times = append(times, time.UnixMilli(int64(m.X)).UTC())
		ys = append(ys, m.Y)
	}
	// a single date has no x range; repeat the first point one day later
	if xd, _ := TimeExtent(times); !xd[0].Before(xd[1]) {
		times = append(times, times[0].Add(24*time.Hour))
		ys = append(ys, ys[0])
	}

	ch := chart.Chart{
		Title:      page.Title,
		Width:      page.Width,
		Height:     page.Height,
		Background: background(page),
		XAxis: chart.XAxis{
			Name:           page.XAxis,
			ValueFormatter: chart.TimeValueFormatterWithFormat(page.TickFormat),
		},
		YAxis: chart.YAxis{Name: page.YAxis, Range: axisRange(page.YDomain, 1)},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    s.Name,
				XValues: times,
				YValues: ys,
				Style: chart.Style{
					StrokeColor: color(s.Color),
					StrokeWidth: 2,
					DotWidth:    4,
					DotColor:    color(s.Color),
				},
			},
		},
	}
	return ch.Render(provider, w)
}

func renderBars(w io.Writer, page html.ChartPage, provider chart.RendererProvider) error {
	var bars []chart.Value
	if page.Kind == html.KindGroupedBar {
		// group by category, one bar per series inside a group
		for gi := range page.Labels {
			for _, s := range page.Series {
				if gi >= len(s.Marks) {
					continue
				}
				m := s.Marks[gi]
				bars = append(bars, chart.Value{
					Label: m.Label + " " + s.Name,
					Value: m.Y,
					Style: chart.Style{FillColor: color(s.Color), StrokeColor: color(s.Color)},
				})
			}
		}
	} else {
		for _, m := range page.Series[0].Marks {
			bars = append(bars, chart.Value{
				Label: m.Label,
				Value: m.Y,
				Style: chart.Style{FillColor: color(m.Color), StrokeColor: color(m.Color)},
			})
		}
	}

	inner := page.Width - page.Margin.Left - page.Margin.Right
	bw := inner / (len(bars) + 1)
	if bw < 4 {
		bw = 4
	}

	// bars start at zero; an all-zero chart still needs a non-empty range
	var yr chart.Range
	if len(page.YDomain) == 2 {
		hi := page.YDomain[1]
		if hi <= page.YDomain[0] {
			hi = page.YDomain[0] + 1
		}
		yr = &chart.ContinuousRange{Min: page.YDomain[0], Max: hi}
	}

	bc := chart.BarChart{
		Title:      page.Title,
		Width:      page.Width,
		Height:     page.Height,
		Background: background(page),
		BarWidth:   bw,
		XAxis:      chart.Style{FontSize: 8},
		YAxis:      chart.YAxis{Name: page.YAxis, Range: yr},
		Bars:       bars,
	}
	return bc.Render(provider, w)
}

func renderScatter(w io.Writer, page html.ChartPage, provider chart.RendererProvider) error {
	var series []chart.Series
	for _, s := range page.Series {
		xs := make([]float64, len(s.Marks))
		ys := make([]float64, len(s.Marks))
		for i, m := range s.Marks {
			xs[i], ys[i] = m.X, m.Y
		}
		series = append(series, chart.ContinuousSeries{
			Name:    s.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    5,
				DotColor:    color(s.Color),
			},
		})
	}
	if t := page.Trend; t != nil {
		series = append(series, chart.ContinuousSeries{
			Name:    "trend",
			XValues: []float64{t.X1, t.X2},
			YValues: []float64{t.Y1, t.Y2},
			Style: chart.Style{
				StrokeColor:     color(t.Color).WithAlpha(178),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
		})
	}

	ch := chart.Chart{
		Title:      page.Title,
		Width:      page.Width,
		Height:     page.Height,
		Background: background(page),
		XAxis:      chart.XAxis{Name: page.XAxis, Range: axisRange(page.XDomain, 0.5)},
		YAxis:      chart.YAxis{Name: page.YAxis, Range: axisRange(page.YDomain, 1)},
		Series:     series,
	}
	if len(page.Legend) > 0 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch.Render(provider, w)
}

// ExportImages writes one image per page into dir and returns the paths
// written. A failing chart does not stop the others.
func ExportImages(res *Result, dir, format string) ([]string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}

	var (
		paths []string
		errs  []error
	)
	for _, page := range res.Pages {
		path := filepath.Join(dir, page.Target+"."+format)
		if err := writeImage(path, page, format); err != nil {
			errs = append(errs, err)
			continue
		}
		paths = append(paths, path)
	}
	return paths, errors.Join(errs...)
}

func writeImage(path string, page html.ChartPage, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := RenderImage(file, page, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
