package graph

import (
	"image"
	"slices"

	"git.sr.ht/~whereswaldon/plot-wiser/backend"
)

// Plot owns a set of graphs sharing one key axis and one value axis.
type Plot struct {
	KeyAxis, ValueAxis *ScaleAxis
	graphs             []*Graph
}

// NewPlot returns a plot with a horizontal key axis and a vertical value
// axis.
func NewPlot() *Plot {
	return &Plot{
		KeyAxis:   NewAxis(Horizontal),
		ValueAxis: NewAxis(Vertical),
	}
}

// SetRect places the plot's axes on the pixel rectangle r.
func (p *Plot) SetRect(r image.Rectangle) {
	horizontal, vertical := p.KeyAxis, p.ValueAxis
	if horizontal.Orientation() != Horizontal {
		horizontal, vertical = vertical, horizontal
	}
	horizontal.SetPixelSpan(float64(r.Min.X), r.Dx())
	vertical.SetPixelSpan(float64(r.Min.Y), r.Dy())
}

// AddGraph creates a graph on the plot's axes.
func (p *Plot) AddGraph() (*Graph, error) {
	g, err := New(p.KeyAxis, p.ValueAxis)
	if err != nil {
		return nil, err
	}
	p.graphs = append(p.graphs, g)
	return g, nil
}

// Graphs returns the plot's graphs in drawing order.
func (p *Plot) Graphs() []*Graph {
	return p.graphs
}

// RemoveGraph drops g from the plot. Channel fills targeting g revert to
// the baseline. It reports whether g belonged to the plot.
func (p *Plot) RemoveGraph(g *Graph) bool {
	i := slices.Index(p.graphs, g)
	if i < 0 {
		return false
	}
	p.graphs = slices.Delete(p.graphs, i, i+1)
	g.removed = true
	for _, other := range p.graphs {
		if other.channelFill.Value() == g {
			other.SetChannelFillGraph(nil)
		}
	}
	return true
}

// Clear removes every graph from the plot.
func (p *Plot) Clear() {
	for len(p.graphs) > 0 {
		p.RemoveGraph(p.graphs[len(p.graphs)-1])
	}
}

// Draw renders the visible graphs in order.
func (p *Plot) Draw(painter Painter) {
	for _, g := range p.graphs {
		g.Draw(painter)
	}
}

// RescaleAxes fits the axes to the data of the graphs. If onlyVisible is
// set, hidden graphs are ignored. Axes are left alone when no graph has
// plottable data.
func (p *Plot) RescaleAxes(onlyVisible bool) {
	keyDomain := p.KeyAxis.SignDomain()
	valueDomain := p.ValueAxis.SignDomain()
	var keys, values backend.Range
	haveKeys, haveValues := false, false
	for _, g := range p.graphs {
		if onlyVisible && !g.visible {
			continue
		}
		if r, ok := g.KeyRange(keyDomain); ok {
			keys = unionRange(keys, r, haveKeys)
			haveKeys = true
		}
		if r, ok := g.ValueRange(valueDomain); ok {
			values = unionRange(values, r, haveValues)
			haveValues = true
		}
	}
	if haveKeys {
		p.KeyAxis.SetRange(keys)
	}
	if haveValues {
		p.ValueAxis.SetRange(values)
	}
}

// RescaleValueAxis fits the value axis to the data within the current key
// range.
func (p *Plot) RescaleValueAxis(onlyVisible bool) {
	domain := p.ValueAxis.SignDomain()
	var values backend.Range
	found := false
	for _, g := range p.graphs {
		if onlyVisible && !g.visible {
			continue
		}
		if r, ok := g.ValueRangeIn(domain, p.KeyAxis.Range()); ok {
			values = unionRange(values, r, found)
			found = true
		}
	}
	if found {
		p.ValueAxis.SetRange(values)
	}
}

func unionRange(acc, r backend.Range, have bool) backend.Range {
	if !have {
		return r
	}
	return acc.Union(r)
}

// GraphAt returns the selectable graph closest to pos within its selection
// tolerance, and the distance to it. It returns nil if no graph is hit.
func (p *Plot) GraphAt(pos Point) (*Graph, float64) {
	var hit *Graph
	best := 0.0
	for _, g := range p.graphs {
		d := g.SelectTest(pos, true, nil)
		if d < 0 || d > g.tolerance {
			continue
		}
		if hit == nil || d < best {
			hit, best = g, d
		}
	}
	return hit, best
}
