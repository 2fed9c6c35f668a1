package graph

import "math"

// Marker is the geometry of a scatter marker centred on the origin.
type Marker struct {
	// Outline is a closed polygon filled with the style's brush and
	// stroked with its pen. When Solid is set it is filled with the pen's
	// colour instead.
	Outline []Point
	Solid   bool
	// Strokes are open segments stroked with the style's pen.
	Strokes [][2]Point
}

const circleSegments = 16

func circle(radius float64) []Point {
	pts := make([]Point, circleSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = Pt(radius*math.Cos(a), radius*math.Sin(a))
	}
	return pts
}

// Marker returns the geometry of the style's marker shape.
func (s ScatterStyle) Marker() Marker {
	w := s.MarkerSize() / 2
	switch s.Shape {
	case ScatterDot:
		h := s.Pen.StrokeWidth() / 2
		return Marker{Outline: []Point{{-h, -h}, {h, -h}, {h, h}, {-h, h}}, Solid: true}
	case ScatterCross:
		return Marker{Strokes: [][2]Point{{{-w, -w}, {w, w}}, {{-w, w}, {w, -w}}}}
	case ScatterPlus:
		return Marker{Strokes: [][2]Point{{{-w, 0}, {w, 0}}, {{0, -w}, {0, w}}}}
	case ScatterCircle:
		return Marker{Outline: circle(w)}
	case ScatterDisc:
		return Marker{Outline: circle(w), Solid: true}
	case ScatterSquare:
		return Marker{Outline: []Point{{-w, -w}, {w, -w}, {w, w}, {-w, w}}}
	case ScatterDiamond:
		return Marker{Outline: []Point{{0, -w}, {w, 0}, {0, w}, {-w, 0}}}
	case ScatterStar:
		d := w * math.Sqrt2 / 2
		return Marker{Strokes: [][2]Point{
			{{-w, 0}, {w, 0}},
			{{0, -w}, {0, w}},
			{{-d, -d}, {d, d}},
			{{-d, d}, {d, -d}},
		}}
	case ScatterTriangle:
		return Marker{Outline: []Point{{-w, 0.755 * w}, {w, 0.755 * w}, {0, -0.977 * w}}}
	case ScatterTriangleInverted:
		return Marker{Outline: []Point{{-w, -0.755 * w}, {w, -0.755 * w}, {0, 0.977 * w}}}
	default:
		return Marker{}
	}
}

// At returns the marker translated to centre.
func (m Marker) At(centre Point) Marker {
	out := Marker{Solid: m.Solid}
	if len(m.Outline) > 0 {
		out.Outline = make([]Point, len(m.Outline))
		for i, p := range m.Outline {
			out.Outline[i] = p.Add(centre)
		}
	}
	if len(m.Strokes) > 0 {
		out.Strokes = make([][2]Point, len(m.Strokes))
		for i, s := range m.Strokes {
			out.Strokes[i] = [2]Point{s[0].Add(centre), s[1].Add(centre)}
		}
	}
	return out
}
