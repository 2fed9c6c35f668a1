package graph

import "slices"

// valueBasePixel returns the value axis pixel that fills and impulses
// extend to: zero on a linear axis, and the range bound closest to zero on
// a logarithmic one.
func (g *Graph) valueBasePixel() float64 {
	base := 0.0
	if g.valueAxis.ScaleType() == ScaleLogarithmic {
		r := g.valueAxis.Range()
		if r.Upper < 0 {
			base = r.Upper
		} else {
			base = r.Lower
		}
	}
	return g.valueAxis.CoordToPixel(base)
}

// fillPolygons returns the fill polygon of each line run. Runs are filled
// against the channel fill target's line where the two overlap, and
// against the value axis baseline otherwise.
func (g *Graph) fillPolygons(runs [][]Point) [][]Point {
	if g.brush.IsNone() || g.lineStyle == LineStyleNone || g.lineStyle == LineStyleImpulse {
		return nil
	}
	var other []Point
	if target := g.ChannelFillGraph(); target != nil && target.keyAxis.Orientation() == g.keyAxis.Orientation() {
		other = target.channelLine()
	}
	polys := make([][]Point, 0, len(runs))
	for _, run := range runs {
		if len(other) >= 2 {
			if poly := g.channelFillPolygon(run, other); len(poly) >= 3 {
				polys = append(polys, poly)
				continue
			}
		}
		if poly := g.baselineFillPolygon(run); poly != nil {
			polys = append(polys, poly)
		}
	}
	return polys
}

// baselineFillPolygon closes run against the value axis baseline.
func (g *Graph) baselineFillPolygon(run []Point) []Point {
	base := g.valueBasePixel()
	last := g.pixelPoint(g.keyPixel(run[len(run)-1]), base)
	first := g.pixelPoint(g.keyPixel(run[0]), base)
	if !first.Valid() || !last.Valid() {
		return nil
	}
	poly := make([]Point, 0, len(run)+2)
	poly = append(poly, run...)
	return append(poly, last, first)
}

// channelLine returns the valid points of the line other graphs fill a
// channel against. Graphs without a connected line style contribute a
// straight line through their data.
func (g *Graph) channelLine() []Point {
	style := g.lineStyle
	if style == LineStyleNone || style == LineStyleImpulse {
		style = LineStyleLine
	}
	return ValidPoints(g.linePoints(g.optimizedLineData(), style))
}

// channelFillPolygon builds the polygon between run and other over the key
// span both cover. It returns nil when they do not overlap.
func (g *Graph) channelFillPolygon(run, other []Point) []Point {
	a := g.ascendingByKey(run)
	b := g.ascendingByKey(other)
	lo := max(g.keyPixel(a[0]), g.keyPixel(b[0]))
	hi := min(g.keyPixel(a[len(a)-1]), g.keyPixel(b[len(b)-1]))
	if !(lo < hi) {
		return nil
	}
	a = g.cropToKeySpan(a, lo, hi)
	b = g.cropToKeySpan(b, lo, hi)
	slices.Reverse(b)
	return append(a, b...)
}

// ascendingByKey returns pts ordered by increasing key pixel. Lines are
// monotonic in key, so this is either pts itself or a reversed copy.
func (g *Graph) ascendingByKey(pts []Point) []Point {
	if g.keyPixel(pts[0]) <= g.keyPixel(pts[len(pts)-1]) {
		return pts
	}
	out := slices.Clone(pts)
	slices.Reverse(out)
	return out
}

// cropToKeySpan returns a new line following pts between the key pixels lo
// and hi, with interpolated end points on the bounds.
func (g *Graph) cropToKeySpan(pts []Point, lo, hi float64) []Point {
	out := make([]Point, 0, len(pts)+2)
	for i, p := range pts {
		k := g.keyPixel(p)
		if k < lo {
			continue
		}
		if len(out) == 0 && i > 0 && k > lo {
			out = append(out, g.interpolateAtKey(pts[i-1], p, lo))
		}
		if k > hi {
			if i > 0 && g.keyPixel(pts[i-1]) < hi {
				out = append(out, g.interpolateAtKey(pts[i-1], p, hi))
			}
			break
		}
		out = append(out, p)
	}
	return out
}

// interpolateAtKey returns the point on segment ab at key pixel k.
func (g *Graph) interpolateAtKey(a, b Point, k float64) Point {
	t := (k - g.keyPixel(a)) / (g.keyPixel(b) - g.keyPixel(a))
	return Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
}
