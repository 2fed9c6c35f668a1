// Package giopaint draws graphs into Gio operation lists.
package giopaint

import (
	"gioui.org/f32"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/x/stroke"
	"git.sr.ht/~whereswaldon/plot-wiser/graph"
)

// Painter records graph drawing into Ops. Coordinates are in pixels
// relative to the current transform.
type Painter struct {
	Ops *op.Ops
}

var _ graph.Painter = Painter{}

func pt(p graph.Point) f32.Point {
	return f32.Pt(float32(p.X), float32(p.Y))
}

func (p Painter) DrawPolyline(pts []graph.Point, pen graph.Pen) {
	if pen.IsNone() {
		return
	}
	var path stroke.Path
	for _, run := range graph.SplitValid(pts) {
		if len(run) < 2 {
			continue
		}
		path.Segments = append(path.Segments, stroke.MoveTo(pt(run[0])))
		for _, q := range run[1:] {
			path.Segments = append(path.Segments, stroke.LineTo(pt(q)))
		}
	}
	p.stroke(path, pen)
}

func (p Painter) DrawSegment(a, b graph.Point, pen graph.Pen) {
	if pen.IsNone() || !a.Valid() || !b.Valid() {
		return
	}
	var path stroke.Path
	path.Segments = []stroke.Segment{stroke.MoveTo(pt(a)), stroke.LineTo(pt(b))}
	p.stroke(path, pen)
}

func (p Painter) stroke(path stroke.Path, pen graph.Pen) {
	if len(path.Segments) == 0 {
		return
	}
	area := stroke.Stroke{Path: path, Width: float32(pen.StrokeWidth())}.Op(p.Ops)
	paint.FillShape(p.Ops, pen.Color, area)
}

func (p Painter) DrawFilledPolygon(pts []graph.Point, brush graph.Brush) {
	pts = graph.ValidPoints(pts)
	if brush.IsNone() || len(pts) < 3 {
		return
	}
	var path clip.Path
	path.Begin(p.Ops)
	addPolygon(&path, pts)
	paint.FillShape(p.Ops, brush.Color, clip.Outline{Path: path.End()}.Op())
}

func addPolygon(path *clip.Path, pts []graph.Point) {
	path.MoveTo(pt(pts[0]))
	for _, q := range pts[1:] {
		path.LineTo(pt(q))
	}
	path.Close()
}

// DrawMarkers draws all markers with at most two paint operations: one for
// their interiors and one for their outlines.
func (p Painter) DrawMarkers(pts []graph.Point, style graph.ScatterStyle) {
	shape := style.Marker()
	if len(shape.Outline) == 0 && len(shape.Strokes) == 0 {
		return
	}
	fillColor := style.Brush.Color
	if shape.Solid {
		fillColor = style.Pen.Color
	}
	fill := len(shape.Outline) >= 3 && fillColor.A != 0

	var area clip.Path
	if fill {
		area.Begin(p.Ops)
	}
	var lines stroke.Path
	for _, c := range pts {
		if !c.Valid() {
			continue
		}
		m := shape.At(c)
		if fill {
			addPolygon(&area, m.Outline)
		}
		if !m.Solid && len(m.Outline) > 0 {
			lines.Segments = append(lines.Segments, stroke.MoveTo(pt(m.Outline[0])))
			for _, q := range m.Outline[1:] {
				lines.Segments = append(lines.Segments, stroke.LineTo(pt(q)))
			}
			lines.Segments = append(lines.Segments, stroke.LineTo(pt(m.Outline[0])))
		}
		for _, s := range m.Strokes {
			lines.Segments = append(lines.Segments, stroke.MoveTo(pt(s[0])), stroke.LineTo(pt(s[1])))
		}
	}
	if fill {
		paint.FillShape(p.Ops, fillColor, clip.Outline{Path: area.End()}.Op())
	}
	if !style.Pen.IsNone() {
		p.stroke(lines, style.Pen)
	}
}
