package figure

// Trace is one plotly scatter trace. Edge traces carry a line, the node trace
// carries markers and labels.
type Trace struct {
	Type         string    `json:"type"`
	Name         string    `json:"name,omitempty"`
	X            []float64 `json:"x"`
	Y            []float64 `json:"y"`
	Mode         string    `json:"mode"`
	Line         *Line     `json:"line,omitempty"`
	Marker       *Marker   `json:"marker,omitempty"`
	Text         []string  `json:"text,omitempty"`
	HoverText    []string  `json:"hovertext,omitempty"`
	HoverInfo    string    `json:"hoverinfo,omitempty"`
	TextPosition string    `json:"textposition,omitempty"`
}

type Line struct {
	Width float64 `json:"width"`
	Color string  `json:"color,omitempty"`
}

type Marker struct {
	Size  []float64 `json:"size"`
	Color string    `json:"color,omitempty"`
	Line  *Line     `json:"line,omitempty"`
}

// Axis hides everything but the plotted points.
type Axis struct {
	ShowGrid       bool `json:"showgrid"`
	ZeroLine       bool `json:"zeroline"`
	ShowTickLabels bool `json:"showticklabels"`
}

type Layout struct {
	Title      string `json:"title"`
	ShowLegend bool   `json:"showlegend"`
	XAxis      Axis   `json:"xaxis"`
	YAxis      Axis   `json:"yaxis"`
}

// Figure is the payload consumed by the charting front end.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// BlankLayout returns the layout used for every network: titled, no legend, and
// both axes stripped of grid, zero line and tick labels.
func BlankLayout(title string) Layout {
	return Layout{
		Title:      title,
		ShowLegend: false,
		XAxis:      Axis{},
		YAxis:      Axis{},
	}
}

// Assemble combines the edge traces and the node trace into the single-figure list
// returned to callers. A nil node trace is skipped, so an empty network yields a
// figure with an empty data list.
func Assemble(edges []Trace, node *Trace, title string) []Figure {
	data := make([]Trace, 0, len(edges)+1)
	data = append(data, edges...)
	if node != nil {
		data = append(data, *node)
	}

	return []Figure{{
		Data:   data,
		Layout: BlankLayout(title),
	}}
}
