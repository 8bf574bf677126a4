package html

// Chart kinds.
const (
	KindLine       = "line"
	KindBar        = "bar"
	KindGroupedBar = "grouped-bar"
	KindScatter    = "scatter"
)

// Placeholder kinds.
const (
	PlaceholderEmpty = "empty"
	PlaceholderError = "error"
)

const (
	NoDataMessage     = "No valid data to display"
	LoadFailedMessage = "Failed to load data files"
)

// Placeholder replaces a chart with a centered notice.
type Placeholder struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Mark is one drawn element: a dot, a bar or a line vertex.
// X is a unix millisecond timestamp on time axes.
type Mark struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Label    string  `json:"label,omitempty"`
	Text     string  `json:"text,omitempty"`
	Category string  `json:"category,omitempty"`
	Color    string  `json:"color"`
	Tooltip  string  `json:"tooltip"`
}

// Series is a named group of marks sharing one colour.
type Series struct {
	Name   string `json:"name"`
	Color  string `json:"color"`
	Dashed bool   `json:"dashed,omitempty"`
	Marks  []Mark `json:"marks"`
}

type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Shape string `json:"shape"`
}

// Segment is a straight overlay line between two data coordinates.
type Segment struct {
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	X2    float64 `json:"x2"`
	Y2    float64 `json:"y2"`
	Color string  `json:"color"`
}

type Margin struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// ChartPage is the complete drawing plan of one chart target.
type ChartPage struct {
	Target      string        `json:"target"`
	Kind        string        `json:"kind"`
	Title       string        `json:"title"`
	XAxis       string        `json:"xAxis"`
	YAxis       string        `json:"yAxis"`
	TimeAxis    bool          `json:"timeAxis,omitempty"`
	TickFormat  string        `json:"tickFormat,omitempty"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Margin      Margin        `json:"margin"`
	XDomain     []float64     `json:"xDomain,omitempty"`
	YDomain     []float64     `json:"yDomain,omitempty"`
	Labels      []string      `json:"labels,omitempty"`
	Series      []Series      `json:"series,omitempty"`
	Trend       *Segment      `json:"trend,omitempty"`
	Legend      []LegendEntry `json:"legend,omitempty"`
	Placeholder *Placeholder  `json:"placeholder,omitempty"`
}

// MarkCount is the number of marks the plan draws.
func (p ChartPage) MarkCount() int {
	n := 0
	for _, s := range p.Series {
		n += len(s.Marks)
	}
	return n
}

// Drawn reports whether the plan draws anything besides a placeholder.
func (p ChartPage) Drawn() bool {
	return p.MarkCount() > 0 || p.Trend != nil || len(p.Legend) > 0
}

// PageData is the data of the dashboard template.
type PageData struct {
	Title   string      `json:"title"`
	CycleID string      `json:"cycleId"`
	Error   string      `json:"error,omitempty"`
	Charts  []ChartPage `json:"charts"`
}
