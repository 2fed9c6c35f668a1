package graph

import (
	"math"

	"git.sr.ht/~whereswaldon/plot-wiser/backend"
)

// NoHit is returned by SelectTest when the graph cannot be hit.
const NoHit = -1

// SelectDetails describes the data point closest to a hit test.
type SelectDetails struct {
	// Index of the closest sample in the graph's data.
	Index int
	Data  backend.GraphData
}

// SelectTest returns the distance in pixels between pos and the closest
// drawn part of the graph: its line, impulses or scatter markers within the
// visible key range. It returns NoHit if the graph is invisible, empty,
// draws nothing, or is not selectable while onlySelectable is set. If
// details is non-nil and the graph can be hit, it receives the sample
// closest to pos.
func (g *Graph) SelectTest(pos Point, onlySelectable bool, details *SelectDetails) float64 {
	if (onlySelectable && !g.selectable) || !g.visible || g.data.IsEmpty() {
		return NoHit
	}
	if g.lineStyle == LineStyleNone && g.scatter.IsNone() {
		return NoHit
	}
	if g.keyAxis.PixelExtent() <= 0 || g.valueAxis.PixelExtent() <= 0 {
		return NoHit
	}
	begin, end := g.visibleDataBounds()
	if begin == end {
		return NoHit
	}
	best := math.Inf(1)
	if !g.scatter.IsNone() {
		best = min(best, g.scatterDistance(pos))
	}
	switch g.lineStyle {
	case LineStyleNone:
	case LineStyleImpulse:
		for _, seg := range g.impulseSegments(g.optimizedLineData()) {
			best = min(best, distToSegment(pos, seg[0], seg[1]))
		}
	default:
		for _, run := range lineRuns(g.linePoints(g.optimizedLineData(), g.lineStyle)) {
			for i := 1; i < len(run); i++ {
				best = min(best, distToSegment(pos, run[i-1], run[i]))
			}
		}
	}
	if math.IsInf(best, 1) {
		return NoHit
	}
	if details != nil {
		if idx, ok := g.closestSample(pos, begin, end); ok {
			*details = SelectDetails{Index: idx, Data: g.data.At(idx)}
		}
	}
	return best
}

// keyWindow returns the visible sample indices whose keys lie within the
// selection tolerance of pos along the key axis.
func (g *Graph) keyWindow(pos Point, begin, end int) (int, int) {
	center := g.keyPixel(pos)
	k0 := g.keyAxis.PixelToCoord(center - g.tolerance)
	k1 := g.keyAxis.PixelToCoord(center + g.tolerance)
	r := backend.Range{Lower: k0, Upper: k1}.Normalize()
	lo := max(begin, g.data.FindBegin(r.Lower, true))
	hi := min(end, g.data.FindEnd(r.Upper, true))
	return lo, max(lo, hi)
}

// scatterDistance returns the distance from pos to the nearest marker
// centre near it.
func (g *Graph) scatterDistance(pos Point) float64 {
	sBegin, sEnd := g.scatterDataBounds()
	lo, hi := g.keyWindow(pos, sBegin, sEnd)
	best := math.Inf(1)
	for _, d := range g.data.Slice(lo, hi) {
		p := g.coordsToPixels(d.Key, d.Value)
		if !p.Valid() {
			continue
		}
		best = min(best, math.Hypot(p.X-pos.X, p.Y-pos.Y))
	}
	return best
}

// closestSample returns the index of the plottable sample nearest to pos,
// searching near pos first and falling back to the whole visible range.
func (g *Graph) closestSample(pos Point, begin, end int) (int, bool) {
	search := func(lo, hi int) (int, bool) {
		bestIdx, best := -1, math.Inf(1)
		for i := lo; i < hi; i++ {
			d := g.data.At(i)
			p := g.coordsToPixels(d.Key, d.Value)
			if !p.Valid() {
				continue
			}
			if dist := math.Hypot(p.X-pos.X, p.Y-pos.Y); dist < best {
				bestIdx, best = i, dist
			}
		}
		return bestIdx, bestIdx >= 0
	}
	if idx, ok := search(g.keyWindow(pos, begin, end)); ok {
		return idx, true
	}
	return search(begin, end)
}
