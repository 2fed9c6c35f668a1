package graph

// Frame is the pixel geometry of one redraw of a graph.
type Frame struct {
	// Lines are the polylines of the graph's line, split where the data
	// cannot be plotted.
	Lines [][]Point
	// Impulses are the segments of the impulse line style.
	Impulses [][2]Point
	// Fills are closed polygons.
	Fills [][]Point
	// Scatters are the centres of scatter markers.
	Scatters []Point
}

// Empty reports whether the frame draws nothing.
func (f Frame) Empty() bool {
	return len(f.Lines) == 0 && len(f.Impulses) == 0 && len(f.Fills) == 0 && len(f.Scatters) == 0
}

// Prepare computes the geometry of the graph for the current axis ranges.
func (g *Graph) Prepare() Frame {
	var f Frame
	if !g.visible || g.keyAxis.PixelExtent() <= 0 || g.valueAxis.PixelExtent() <= 0 {
		return f
	}
	if g.lineStyle != LineStyleNone {
		data := g.optimizedLineData()
		if g.lineStyle == LineStyleImpulse {
			f.Impulses = g.impulseSegments(data)
		} else {
			f.Lines = lineRuns(g.linePoints(data, g.lineStyle))
			f.Fills = g.fillPolygons(f.Lines)
		}
	}
	if !g.scatter.IsNone() {
		for _, d := range g.optimizedScatterData() {
			if p := g.coordsToPixels(d.Key, d.Value); p.Valid() {
				f.Scatters = append(f.Scatters, p)
			}
		}
	}
	return f
}

// Draw renders the graph onto p.
func (g *Graph) Draw(p Painter) {
	f := g.Prepare()
	for _, poly := range f.Fills {
		p.DrawFilledPolygon(poly, g.brush)
	}
	if !g.pen.IsNone() {
		for _, line := range f.Lines {
			p.DrawPolyline(line, g.pen)
		}
		for _, seg := range f.Impulses {
			p.DrawSegment(seg[0], seg[1], g.pen)
		}
	}
	if len(f.Scatters) > 0 {
		p.DrawMarkers(f.Scatters, g.markerStyle())
	}
}

// markerStyle returns the scatter style with an unset pen replaced by the
// graph's pen.
func (g *Graph) markerStyle() ScatterStyle {
	s := g.scatter
	if s.Pen.IsNone() {
		s.Pen = g.pen
	}
	return s
}
