// Package rasterpaint draws graphs onto in-memory images using the
// golang.org/x/image/vector rasterizer.
package rasterpaint

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"git.sr.ht/~whereswaldon/plot-wiser/graph"
	"golang.org/x/image/vector"
)

// Painter rasterizes graphs onto Dst. Point (0,0) maps to the top left
// corner of Dst's bounds.
type Painter struct {
	Dst draw.Image
	r   *vector.Rasterizer
}

var _ graph.Painter = (*Painter)(nil)

func New(dst draw.Image) *Painter {
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	r.DrawOp = draw.Over
	return &Painter{Dst: dst, r: r}
}

// NewImage returns a painter onto a new w by h image filled with
// background.
func NewImage(w, h int, background color.Color) (*Painter, *image.RGBA) {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return New(img), img
}

func (p *Painter) reset() {
	b := p.Dst.Bounds()
	p.r.Reset(b.Dx(), b.Dy())
	p.r.DrawOp = draw.Over
}

func (p *Painter) flush(c color.Color) {
	p.r.Draw(p.Dst, p.Dst.Bounds(), image.NewUniform(c), image.Point{})
}

func f32(v float64) float32 { return float32(v) }

// quad adds a closed quadrilateral. Every shape added for a stroke winds
// the same way, so overlaps do not cancel.
func (p *Painter) quad(a, b, c, d graph.Point) {
	p.r.MoveTo(f32(a.X), f32(a.Y))
	p.r.LineTo(f32(b.X), f32(b.Y))
	p.r.LineTo(f32(c.X), f32(c.Y))
	p.r.LineTo(f32(d.X), f32(d.Y))
	p.r.ClosePath()
}

// joint covers the corner between two stroked segments.
func (p *Painter) joint(c graph.Point, half float64) {
	p.quad(
		graph.Pt(c.X-half, c.Y+half),
		graph.Pt(c.X+half, c.Y+half),
		graph.Pt(c.X+half, c.Y-half),
		graph.Pt(c.X-half, c.Y-half),
	)
}

func (p *Painter) segment(a, b graph.Point, half float64) {
	d := b.Sub(a)
	length := math.Hypot(d.X, d.Y)
	if length == 0 {
		p.joint(a, half)
		return
	}
	n := graph.Pt(-d.Y/length*half, d.X/length*half)
	p.quad(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

func (p *Painter) polyline(pts []graph.Point, half float64) {
	for i := 1; i < len(pts); i++ {
		p.segment(pts[i-1], pts[i], half)
		if i > 1 {
			p.joint(pts[i-1], half)
		}
	}
}

func (p *Painter) DrawPolyline(pts []graph.Point, pen graph.Pen) {
	if pen.IsNone() {
		return
	}
	p.reset()
	half := pen.StrokeWidth() / 2
	for _, run := range graph.SplitValid(pts) {
		p.polyline(run, half)
	}
	p.flush(pen.Color)
}

func (p *Painter) DrawSegment(a, b graph.Point, pen graph.Pen) {
	if pen.IsNone() || !a.Valid() || !b.Valid() {
		return
	}
	p.reset()
	p.segment(a, b, pen.StrokeWidth()/2)
	p.flush(pen.Color)
}

func (p *Painter) polygon(pts []graph.Point) {
	p.r.MoveTo(f32(pts[0].X), f32(pts[0].Y))
	for _, q := range pts[1:] {
		p.r.LineTo(f32(q.X), f32(q.Y))
	}
	p.r.ClosePath()
}

func (p *Painter) DrawFilledPolygon(pts []graph.Point, brush graph.Brush) {
	pts = graph.ValidPoints(pts)
	if brush.IsNone() || len(pts) < 3 {
		return
	}
	p.reset()
	p.polygon(pts)
	p.flush(brush.Color)
}

func (p *Painter) DrawMarkers(pts []graph.Point, style graph.ScatterStyle) {
	shape := style.Marker()
	fillColor := style.Brush.Color
	if shape.Solid {
		fillColor = style.Pen.Color
	}
	if len(shape.Outline) >= 3 && fillColor.A != 0 {
		p.reset()
		for _, c := range pts {
			if c.Valid() {
				p.polygon(shape.At(c).Outline)
			}
		}
		p.flush(fillColor)
	}
	if style.Pen.IsNone() || (shape.Solid && len(shape.Strokes) == 0) {
		return
	}
	p.reset()
	half := style.Pen.StrokeWidth() / 2
	for _, c := range pts {
		if !c.Valid() {
			continue
		}
		m := shape.At(c)
		if !m.Solid && len(m.Outline) > 0 {
			p.polyline(append(m.Outline, m.Outline[0]), half)
		}
		for _, s := range m.Strokes {
			p.segment(s[0], s[1], half)
		}
	}
	p.flush(style.Pen.Color)
}

// WritePNG encodes the painter's image as PNG.
func (p *Painter) WritePNG(w io.Writer) error {
	if err := png.Encode(w, p.Dst); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
