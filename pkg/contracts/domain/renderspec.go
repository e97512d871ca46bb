package domain

// Chart types understood by the frontend renderer. The server never computes
// pixel or layout details; it ships aggregated data plus field names and the
// renderer picks the plotting primitives.
const (
	ChartLine          = "line"
	ChartBar           = "bar"
	ChartHorizontalBar = "horizontal_bar"
	ChartScatter       = "scatter"
	ChartHistogram     = "histogram"
	ChartBox           = "box"
	ChartHeatmap       = "heatmap"
	ChartWordCloud     = "wordcloud"
)

// ViewPayload is the full render specification for one dashboard view.
type ViewPayload struct {
	View     string    `json:"view"`
	Title    string    `json:"title"`
	Empty    bool      `json:"empty,omitempty"`
	Warning  string    `json:"warning,omitempty"`
	Metrics  []Metric  `json:"metrics,omitempty"`
	Sections []Section `json:"sections"`
}

// Metric is a headline tile shown at the top of a view.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is one chart/table block within a view.
type Section struct {
	Title   string     `json:"title"`
	Note    string     `json:"note,omitempty"`
	Warning string     `json:"warning,omitempty"`
	Chart   *ChartSpec `json:"chart,omitempty"`
	Table   *TableSpec `json:"table,omitempty"`
}

// ChartSpec describes a single chart. Exactly one of the data slices is
// populated, matching Type.
type ChartSpec struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	XField     string         `json:"x_field,omitempty"`
	YField     string         `json:"y_field,omitempty"`
	ColorField string         `json:"color_field,omitempty"`
	SizeField  string         `json:"size_field,omitempty"`
	Series     []Series       `json:"series,omitempty"`
	Points     []ScatterPoint `json:"points,omitempty"`
	Bins       []HistogramBin `json:"bins,omitempty"`
	Boxes      []BoxStats     `json:"boxes,omitempty"`
	Heatmap    *HeatmapData   `json:"heatmap,omitempty"`
	Words      []WordWeight   `json:"words,omitempty"`
}

// Series is a named sequence of labelled values (line and bar charts).
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Point is one labelled value in a series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ScatterPoint is one marker in a scatter chart. Color and Size are optional
// encodings; nil leaves the marker at the renderer's default.
type ScatterPoint struct {
	X     float64  `json:"x"`
	Y     float64  `json:"y"`
	Color *float64 `json:"color,omitempty"`
	Size  *float64 `json:"size,omitempty"`
	Label string   `json:"label,omitempty"`
}

// HistogramBin is one bar of a histogram over [Lo, Hi).
type HistogramBin struct {
	Lo    float64 `json:"lo"`
	Hi    float64 `json:"hi"`
	Count int     `json:"count"`
}

// BoxStats carries the five-number summary for one box of a box plot.
type BoxStats struct {
	Group  string  `json:"group"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Count  int     `json:"count"`
}

// HeatmapData is a labelled square matrix (correlation heatmaps).
type HeatmapData struct {
	Labels []string    `json:"labels"`
	Values [][]float64 `json:"values"`
}

// WordWeight is one entry of a word cloud.
type WordWeight struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// TableSpec is a rendered data table. Cells are preformatted strings so the
// renderer never re-applies locale or unit formatting.
type TableSpec struct {
	Title   string     `json:"title,omitempty"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}
