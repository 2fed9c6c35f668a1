package graph

import "math"

// Point is a position in pixel space.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Valid reports whether both coordinates are finite.
func (p Point) Valid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Painter is a drawing surface. Painters never receive invalid points from
// a Graph, and are free to drop any they are handed directly.
type Painter interface {
	DrawPolyline(pts []Point, pen Pen)
	DrawFilledPolygon(pts []Point, brush Brush)
	DrawMarkers(pts []Point, style ScatterStyle)
	DrawSegment(a, b Point, pen Pen)
}

// SplitValid splits pts into the runs of consecutive valid points.
func SplitValid(pts []Point) [][]Point {
	var runs [][]Point
	start := -1
	for i, p := range pts {
		if p.Valid() {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, pts[start:i])
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, pts[start:])
	}
	return runs
}

// ValidPoints returns the valid points of pts.
func ValidPoints(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, p := range pts {
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out
}

// distToSegment returns the distance between p and the segment ab.
func distToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	lenSq := ab.X*ab.X + ab.Y*ab.Y
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / lenSq
	t = max(0, min(1, t))
	return math.Hypot(p.X-(a.X+t*ab.X), p.Y-(a.Y+t*ab.Y))
}
