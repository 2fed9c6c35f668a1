package vgpaint

import (
	"math"

	"git.sr.ht/~whereswaldon/plot-wiser/graph"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Plotter draws the graphs of a graph.Plot as a gonum plotter. The graph
// plot's axes are fitted to the data area of the canvas on every draw.
type Plotter struct {
	Graphs *graph.Plot
}

var (
	_ plot.Plotter    = Plotter{}
	_ plot.DataRanger = Plotter{}
)

func (pl Plotter) Plot(c draw.Canvas, _ *plot.Plot) {
	horizontal, vertical := pl.Graphs.KeyAxis, pl.Graphs.ValueAxis
	if horizontal.Orientation() != graph.Horizontal {
		horizontal, vertical = vertical, horizontal
	}
	horizontal.SetPixelSpan(float64(c.Min.X), int(math.Round(float64(c.Max.X-c.Min.X))))
	vertical.SetPixelSpan(0, int(math.Round(float64(c.Max.Y-c.Min.Y))))
	pl.Graphs.Draw(New(&c))
}

// DataRange reports the current axis ranges, so that gonum's axes match
// the ones the graphs are drawn with.
func (pl Plotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	x, y := pl.Graphs.KeyAxis.Range(), pl.Graphs.ValueAxis.Range()
	if pl.Graphs.KeyAxis.Orientation() != graph.Horizontal {
		x, y = y, x
	}
	return x.Lower, x.Upper, y.Lower, y.Upper
}

// NewPlot returns a gonum plot drawing graphs, with axis scales and a
// legend entry for every named graph.
func NewPlot(graphs *graph.Plot, title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Add(Plotter{Graphs: graphs})
	configureAxis(&p.X, graphs.KeyAxis)
	configureAxis(&p.Y, graphs.ValueAxis)
	for _, g := range graphs.Graphs() {
		if g.Name() != "" && g.Visible() {
			p.Legend.Add(g.Name(), Thumbnail{Graph: g})
		}
	}
	p.Legend.Top = true
	return p
}

func configureAxis(a *plot.Axis, axis *graph.ScaleAxis) {
	if axis.ScaleType() == graph.ScaleLogarithmic {
		a.Scale = plot.LogScale{}
		a.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	if axis.Reversed() {
		a.Scale = plot.InvertedScale{Normalizer: a.Scale}
	}
}

// Thumbnail draws a graph's legend icon.
type Thumbnail struct {
	Graph *graph.Graph
}

var _ plot.Thumbnailer = Thumbnail{}

func (t Thumbnail) Thumbnail(c *draw.Canvas) {
	g := t.Graph
	if b := g.Brush(); !b.IsNone() {
		c.FillPolygon(b.Color, []vg.Point{
			c.Min,
			{X: c.Max.X, Y: c.Min.Y},
			c.Max,
			{X: c.Min.X, Y: c.Max.Y},
		})
	}
	mid := (c.Min.Y + c.Max.Y) / 2
	if pen := g.Pen(); !pen.IsNone() && g.LineStyle() != graph.LineStyleNone {
		c.StrokeLine2(lineStyle(pen), c.Min.X, mid, c.Max.X, mid)
	}
	if s := g.ScatterStyle(); !s.IsNone() {
		if s.Pen.IsNone() {
			s.Pen = g.Pen()
		}
		p := New(c)
		centre := graph.Pt(float64(c.Min.X+c.Max.X)/2, float64(c.Max.Y-mid))
		p.DrawMarkers([]graph.Point{centre}, s)
	}
}
