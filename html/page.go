package html

import (
	_ "embed"
	"html/template"
	"io"
)

//go:embed charts.html
var chartsTemplate string

var pageTmpl = template.Must(template.New("charts").Parse(chartsTemplate))

// RenderPage writes the dashboard page. The chart plans are embedded as JSON
// and drawn in the browser.
func RenderPage(w io.Writer, data PageData) error {
	if data.Title == "" {
		data.Title = "Energy Visualizations"
	}
	return pageTmpl.Execute(w, data)
}
