package graph

import (
	"math"
	"slices"

	"git.sr.ht/~whereswaldon/plot-wiser/backend"
)

// SamplingFactor is how many samples per pixel column the visible data may
// hold before adaptive sampling reduces it.
const SamplingFactor = 10

// keyPixelSpan returns the number of key axis pixels covered by data,
// bounded by the length of the axis.
func (g *Graph) keyPixelSpan(data []backend.GraphData) float64 {
	first := g.keyAxis.CoordToPixel(data[0].Key)
	last := g.keyAxis.CoordToPixel(data[len(data)-1].Key)
	span := math.Abs(last - first)
	if math.IsNaN(span) || math.IsInf(span, 0) {
		span = float64(g.keyAxis.PixelExtent())
	}
	return max(1, min(span, float64(g.keyAxis.PixelExtent())))
}

func (g *Graph) shouldSample(data []backend.GraphData) bool {
	return g.adaptiveSampling && len(data) > 0 &&
		float64(len(data)) > SamplingFactor*g.keyPixelSpan(data)
}

// pixelColumn returns the key axis pixel column of key. Keys that cannot be
// mapped yield NaN, which never equals another column.
func (g *Graph) pixelColumn(key float64) float64 {
	return math.Floor(g.keyAxis.CoordToPixel(key))
}

// optimizedLineData returns the samples to draw the graph's line from: the
// visible samples, reduced to at most four per pixel column when they are
// dense.
func (g *Graph) optimizedLineData() []backend.GraphData {
	begin, end := g.visibleDataBounds()
	if begin == end {
		return nil
	}
	data := g.data.Slice(begin, end)
	if !g.shouldSample(data) {
		return data
	}
	return sampleLineData(data, g.pixelColumn)
}

// sampleLineData reduces data to the first, lowest, highest and last sample
// of each pixel column, in their original order. NaN samples inside a column
// are skipped. A NaN run at either edge of a column is kept as one gap
// marker in place of that edge's first or last sample, so every column
// yields at most four samples and gaps between columns survive sampling.
func sampleLineData(data []backend.GraphData, column func(key float64) float64) []backend.GraphData {
	out := make([]backend.GraphData, 0, 256)
	for i := 0; i < len(data); {
		col := column(data[i].Key)
		j := i + 1
		for ; j < len(data) && column(data[j].Key) == col; j++ {
		}
		out = appendColumnSamples(out, data[i:j])
		i = j
	}
	return out
}

func appendColumnSamples(out, bucket []backend.GraphData) []backend.GraphData {
	isGap := func(d backend.GraphData) bool { return math.IsNaN(d.Value) }
	leadGap, trailGap := isGap(bucket[0]), isGap(bucket[len(bucket)-1])
	if leadGap && (len(out) == 0 || !isGap(out[len(out)-1])) {
		out = append(out, bucket[0])
	}
	first, last, minIdx, maxIdx := -1, -1, -1, -1
	for k, d := range bucket {
		if isGap(d) {
			continue
		}
		if first < 0 {
			first, minIdx, maxIdx = k, k, k
		}
		last = k
		if d.Value < bucket[minIdx].Value {
			minIdx = k
		}
		if d.Value > bucket[maxIdx].Value {
			maxIdx = k
		}
	}
	if first < 0 {
		return out
	}
	picks := make([]int, 0, 4)
	picks = append(picks, minIdx, maxIdx)
	if !leadGap {
		picks = append(picks, first)
	}
	if !trailGap {
		picks = append(picks, last)
	}
	slices.Sort(picks)
	for k, idx := range picks {
		if k > 0 && idx == picks[k-1] {
			continue
		}
		out = append(out, bucket[idx])
	}
	if trailGap {
		out = append(out, bucket[len(bucket)-1])
	}
	return out
}

// optimizedScatterData returns the samples to draw scatter markers for:
// the samples inside the visible key range with a plottable value, thinned
// to one marker per marker-sized cell of each pixel column when dense.
func (g *Graph) optimizedScatterData() []backend.GraphData {
	begin, end := g.scatterDataBounds()
	if begin == end {
		return nil
	}
	data := g.data.Slice(begin, end)
	if g.scatterSkip > 0 {
		skipped := make([]backend.GraphData, 0, len(data)/(g.scatterSkip+1)+1)
		for i := 0; i < len(data); i += g.scatterSkip + 1 {
			skipped = append(skipped, data[i])
		}
		data = skipped
	}
	if !g.shouldSample(data) {
		out := make([]backend.GraphData, 0, len(data))
		for _, d := range data {
			if !math.IsNaN(d.Value) {
				out = append(out, d)
			}
		}
		return out
	}
	cellSize := max(1, g.scatter.MarkerSize()/2)
	out := make([]backend.GraphData, 0, 256)
	seen := make(map[float64]struct{})
	col := math.NaN()
	for _, d := range data {
		if math.IsNaN(d.Value) {
			continue
		}
		if c := g.pixelColumn(d.Key); c != col {
			col = c
			clear(seen)
		}
		cell := math.Floor(g.valueAxis.CoordToPixel(d.Value) / cellSize)
		if _, ok := seen[cell]; ok {
			continue
		}
		seen[cell] = struct{}{}
		out = append(out, d)
	}
	return out
}
