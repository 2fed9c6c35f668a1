package graph

import (
	"git.sr.ht/~whereswaldon/plot-wiser/backend"
)

// linePoints converts data into the pixel points of the line drawn in the
// given style. The result may contain invalid points where data cannot be
// plotted; callers split it with SplitValid. Impulse and none styles
// produce no line points.
func (g *Graph) linePoints(data []backend.GraphData, style LineStyle) []Point {
	switch style {
	case LineStyleLine:
		return g.dataToLines(data)
	case LineStyleStepLeft:
		return g.dataToStepLeftLines(data)
	case LineStyleStepRight:
		return g.dataToStepRightLines(data)
	case LineStyleStepCenter:
		return g.dataToStepCenterLines(data)
	default:
		return nil
	}
}

func (g *Graph) dataToLines(data []backend.GraphData) []Point {
	out := make([]Point, len(data))
	for i, d := range data {
		out[i] = g.coordsToPixels(d.Key, d.Value)
	}
	return out
}

// dataToStepLeftLines changes height at the left edge of each interval:
// before every point but the first, a point at the previous key and the
// current value is inserted.
func (g *Graph) dataToStepLeftLines(data []backend.GraphData) []Point {
	if len(data) == 0 {
		return nil
	}
	out := make([]Point, 0, 2*len(data)-1)
	prevKey := g.keyAxis.CoordToPixel(data[0].Key)
	out = append(out, g.pixelPoint(prevKey, g.valueAxis.CoordToPixel(data[0].Value)))
	for _, d := range data[1:] {
		key := g.keyAxis.CoordToPixel(d.Key)
		value := g.valueAxis.CoordToPixel(d.Value)
		out = append(out, g.pixelPoint(prevKey, value), g.pixelPoint(key, value))
		prevKey = key
	}
	return out
}

// dataToStepRightLines changes height at the right edge of each interval:
// after every point but the last, a point at the next key and the current
// value is inserted.
func (g *Graph) dataToStepRightLines(data []backend.GraphData) []Point {
	if len(data) == 0 {
		return nil
	}
	out := make([]Point, 0, 2*len(data)-1)
	prevValue := g.valueAxis.CoordToPixel(data[0].Value)
	out = append(out, g.pixelPoint(g.keyAxis.CoordToPixel(data[0].Key), prevValue))
	for _, d := range data[1:] {
		key := g.keyAxis.CoordToPixel(d.Key)
		value := g.valueAxis.CoordToPixel(d.Value)
		out = append(out, g.pixelPoint(key, prevValue), g.pixelPoint(key, value))
		prevValue = value
	}
	return out
}

// dataToStepCenterLines changes height halfway between consecutive keys.
func (g *Graph) dataToStepCenterLines(data []backend.GraphData) []Point {
	if len(data) == 0 {
		return nil
	}
	out := make([]Point, 0, 2*len(data))
	prevKey := g.keyAxis.CoordToPixel(data[0].Key)
	prevValue := g.valueAxis.CoordToPixel(data[0].Value)
	out = append(out, g.pixelPoint(prevKey, prevValue))
	if len(data) == 1 {
		return out
	}
	for _, d := range data[1:] {
		key := g.keyAxis.CoordToPixel(d.Key)
		value := g.valueAxis.CoordToPixel(d.Value)
		mid := (prevKey + key) * 0.5
		out = append(out, g.pixelPoint(mid, prevValue), g.pixelPoint(mid, value))
		prevKey, prevValue = key, value
	}
	out = append(out, g.pixelPoint(prevKey, prevValue))
	return out
}

// impulseSegments returns one segment per plottable point, running from
// the value axis baseline to the point.
func (g *Graph) impulseSegments(data []backend.GraphData) [][2]Point {
	base := g.valueBasePixel()
	out := make([][2]Point, 0, len(data))
	for _, d := range data {
		key := g.keyAxis.CoordToPixel(d.Key)
		a := g.pixelPoint(key, base)
		b := g.pixelPoint(key, g.valueAxis.CoordToPixel(d.Value))
		if !a.Valid() || !b.Valid() {
			continue
		}
		out = append(out, [2]Point{a, b})
	}
	return out
}

// lineRuns returns the polylines of the graph's line, split wherever the
// data cannot be plotted. Runs of a single point are dropped.
func lineRuns(pts []Point) [][]Point {
	runs := SplitValid(pts)
	out := runs[:0]
	for _, r := range runs {
		if len(r) >= 2 {
			out = append(out, r)
		}
	}
	return out
}
