// Package vgpaint draws graphs onto gonum/plot canvases, which can be
// exported as SVG, PDF or raster images.
package vgpaint

import (
	"git.sr.ht/~whereswaldon/plot-wiser/graph"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Painter draws onto a canvas region. Graph pixels are canvas lengths,
// with x measured from the canvas origin and y measured downwards from the
// top of the region.
type Painter struct {
	c *draw.Canvas
}

var _ graph.Painter = Painter{}

func New(c *draw.Canvas) Painter {
	return Painter{c: c}
}

func (p Painter) pt(q graph.Point) vg.Point {
	return vg.Point{X: vg.Length(q.X), Y: p.c.Max.Y - vg.Length(q.Y)}
}

func (p Painter) pts(in []graph.Point) []vg.Point {
	out := make([]vg.Point, len(in))
	for i, q := range in {
		out[i] = p.pt(q)
	}
	return out
}

func lineStyle(pen graph.Pen) draw.LineStyle {
	return draw.LineStyle{Color: pen.Color, Width: vg.Length(pen.StrokeWidth())}
}

func (p Painter) DrawPolyline(pts []graph.Point, pen graph.Pen) {
	if pen.IsNone() {
		return
	}
	var lines [][]vg.Point
	for _, run := range graph.SplitValid(pts) {
		if len(run) >= 2 {
			lines = append(lines, p.pts(run))
		}
	}
	if len(lines) > 0 {
		p.c.StrokeLines(lineStyle(pen), lines...)
	}
}

func (p Painter) DrawSegment(a, b graph.Point, pen graph.Pen) {
	if pen.IsNone() || !a.Valid() || !b.Valid() {
		return
	}
	va, vb := p.pt(a), p.pt(b)
	p.c.StrokeLine2(lineStyle(pen), va.X, va.Y, vb.X, vb.Y)
}

func (p Painter) DrawFilledPolygon(pts []graph.Point, brush graph.Brush) {
	pts = graph.ValidPoints(pts)
	if brush.IsNone() || len(pts) < 3 {
		return
	}
	p.c.FillPolygon(brush.Color, p.pts(pts))
}

// glyph returns the gonum glyph drawing shape, if there is one.
func glyph(shape graph.ScatterShape) (draw.GlyphDrawer, bool) {
	switch shape {
	case graph.ScatterDot, graph.ScatterDisc:
		return draw.CircleGlyph{}, true
	case graph.ScatterCircle:
		return draw.RingGlyph{}, true
	case graph.ScatterCross:
		return draw.CrossGlyph{}, true
	case graph.ScatterPlus:
		return draw.PlusGlyph{}, true
	case graph.ScatterSquare:
		return draw.SquareGlyph{}, true
	case graph.ScatterTriangle:
		return draw.TriangleGlyph{}, true
	default:
		return nil, false
	}
}

func (p Painter) DrawMarkers(pts []graph.Point, style graph.ScatterStyle) {
	shape := style.Marker()
	drawer, haveGlyph := glyph(style.Shape)
	radius := vg.Length(style.MarkerSize() / 2)
	if style.Shape == graph.ScatterDot {
		radius = vg.Length(style.Pen.StrokeWidth() / 2)
	}
	for _, c := range pts {
		if !c.Valid() {
			continue
		}
		m := shape.At(c)
		if !m.Solid && len(m.Outline) >= 3 && !style.Brush.IsNone() {
			p.c.FillPolygon(style.Brush.Color, p.pts(m.Outline))
		}
		if style.Pen.IsNone() {
			continue
		}
		if haveGlyph {
			p.c.DrawGlyph(draw.GlyphStyle{Color: style.Pen.Color, Radius: radius, Shape: drawer}, p.pt(c))
			continue
		}
		if len(m.Outline) > 0 {
			outline := append(p.pts(m.Outline), p.pt(m.Outline[0]))
			p.c.StrokeLines(lineStyle(style.Pen), outline)
		}
		for _, s := range m.Strokes {
			a, b := p.pt(s[0]), p.pt(s[1])
			p.c.StrokeLine2(lineStyle(style.Pen), a.X, a.Y, b.X, b.Y)
		}
	}
}
