// Package chart models Plotly figures as plain data so handlers can return a
// chart without knowing how the browser draws it.
package chart

const (
	ModeLines   = "lines"
	ModeMarkers = "markers"
)

type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type   string     `json:"type"`
	Mode   string     `json:"mode"`
	Name   string     `json:"name"`
	X      []any      `json:"x"`
	Y      []*float64 `json:"y"`
	Line   *Line      `json:"line,omitempty"`
	Marker *Marker    `json:"marker,omitempty"`
}

type Line struct {
	Color string `json:"color,omitempty"`
}

type Marker struct {
	Size  int    `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

type Layout struct {
	XAxis      Axis `json:"xaxis"`
	YAxis      Axis `json:"yaxis"`
	ShowLegend bool `json:"showlegend"`
}

type Axis struct {
	Title AxisTitle `json:"title"`
}

type AxisTitle struct {
	Text string `json:"text"`
}

// Series is a pair of equally long coordinate slices.
type Series struct {
	X []any
	Y []*float64
}

// NewLine starts a figure with a single line trace and axis titles, the way
// a plain line chart over a two-column frame looks.
func NewLine(name, xTitle, yTitle string, s Series) *Figure {
	f := &Figure{
		Layout: Layout{
			XAxis:      Axis{Title: AxisTitle{Text: xTitle}},
			YAxis:      Axis{Title: AxisTitle{Text: yTitle}},
			ShowLegend: true,
		},
	}
	f.AddLine(name, "", s)
	return f
}

func (f *Figure) AddLine(name, color string, s Series) {
	t := newTrace(ModeLines, name, s)
	if color != "" {
		t.Line = &Line{Color: color}
	}
	f.Data = append(f.Data, t)
}

func (f *Figure) AddMarkers(name, color string, size int, s Series) {
	t := newTrace(ModeMarkers, name, s)
	t.Marker = &Marker{Size: size, Color: color}
	f.Data = append(f.Data, t)
}

// SetLineColor recolors trace i if it is a line. Out of range is a no-op.
func (f *Figure) SetLineColor(i int, color string) {
	if i < 0 || i >= len(f.Data) || f.Data[i].Mode != ModeLines {
		return
	}
	f.Data[i].Line = &Line{Color: color}
}

func newTrace(mode, name string, s Series) Trace {
	x, y := s.X, s.Y
	if x == nil {
		x = []any{}
	}
	if y == nil {
		y = []*float64{}
	}
	return Trace{Type: "scatter", Mode: mode, Name: name, X: x, Y: y}
}
