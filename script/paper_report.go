package script

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"energyvis/html"

	"github.com/jedib0t/go-pretty/v6/table"
)

const barWidth = 50

// PaperReportFile writes the text report of a load cycle to path, or to a
// timestamped file under dir when path is empty.
func PaperReportFile(res *Result, path, dir string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s/charts_%d.report", dir, time.Now().UnixMilli())
	}
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return "", err
	}

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := PaperReport(file, res); err != nil {
		return "", err
	}
	return path, nil
}

// PaperReport writes one section per chart: the plotted values with relative
// bars, then summary statistics.
func PaperReport(w io.Writer, res *Result) error {
	if _, err := fmt.Fprintf(w, "cycle %s\n\n", res.CycleID); err != nil {
		return err
	}
	for _, page := range res.Pages {
		labels, values := reportRows(page)
		report(w, page, labels, values)
	}
	return nil
}

// reportRows flattens a page into label/value pairs.
func reportRows(page html.ChartPage) (labels []string, values []float64) {
	for _, s := range page.Series {
		for _, m := range s.Marks {
			label := m.Label
			switch page.Kind {
			case html.KindGroupedBar:
				label = m.Label + " / " + s.Name
			case html.KindScatter:
				label = fmt.Sprintf("%s (%s, %s stars)", m.Label, s.Name, formatNumber(m.X))
			}
			labels = append(labels, label)
			values = append(values, m.Y)
		}
	}
	return labels, values
}

func getBar(v float64, sum float64) string {
	if sum <= 0 || v <= 0 {
		return ""
	}
	return strings.Repeat("*", int(v/sum*barWidth))
}

func report(w io.Writer, page html.ChartPage, labels []string, values []float64) {
	fmt.Fprintf(w, "%s [%s]\nx-axis: %s; y-axis: %s\n\n", page.Title, page.Target, page.XAxis, page.YAxis)

	if page.Placeholder != nil {
		fmt.Fprintf(w, "%s\n\n\n", page.Placeholder.Message)
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"label", "rate", "value"})

	sum := float64(0)
	for _, v := range values {
		sum += v
	}
	for i := range labels {
		t.AppendRow(table.Row{labels[i], getBar(values[i], sum), values[i]})
	}
	t.Render()

	if len(values) > 0 {
		fmt.Fprintln(w)
		summary(w, page, values, sum)
	}
	fmt.Fprint(w, "\n\n\n")
}

func summary(w io.Writer, page html.ChartPage, values []float64, sum float64) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"label", "val"})

	nVals := make([]float64, len(values))
	copy(nVals, values)
	sort.Float64s(nVals)

	t.AppendRow(table.Row{"total", len(nVals)})
	t.AppendRow(table.Row{"average", sum / float64(len(nVals))})
	t.AppendRow(table.Row{"median", nVals[len(nVals)/2]})
	t.AppendRow(table.Row{"maximum", nVals[len(nVals)-1]})
	t.AppendRow(table.Row{"minimum", nVals[0]})
	t.AppendRow(table.Row{"95-percent", nVals[len(nVals)*95/100]})

	step := (nVals[len(nVals)-1] - nVals[0]) / 20
	for i, j := 0, 0; i < len(nVals); {
		cnt := 0
		for j = i; j < len(nVals); j++ {
			if nVals[i]+step >= nVals[j] {
				cnt++
			} else {
				break
			}
		}
		t.AppendRow(table.Row{fmt.Sprintf("density_%02d", i),
			fmt.Sprintf("%6.3f%s: [%6.3f, %6.3f]", float64(cnt)/float64(len(nVals))*100, "%",
				nVals[i], nVals[j-1])})
		i = j
	}

	if tr := page.Trend; tr != nil && tr.X2 != tr.X1 {
		slope := (tr.Y2 - tr.Y1) / (tr.X2 - tr.X1)
		t.AppendRow(table.Row{"trend", fmt.Sprintf("y = %.4f x %+.4f", slope, tr.Y1-slope*tr.X1)})
	}
	if len(page.Legend) > 0 {
		names := make([]string, len(page.Legend))
		for i, l := range page.Legend {
			names[i] = l.Label
		}
		t.AppendRow(table.Row{"legend", strings.Join(names, ", ")})
	}

	t.Render()
}
