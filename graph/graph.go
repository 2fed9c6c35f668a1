// Package graph turns sorted key/value samples into the pixel geometry of a
// line or scatter graph: visible-range extraction, adaptive sampling, line
// styles, fills and hit testing.
//
// Graphs are not safe for concurrent use. A GraphDataContainer may be
// shared by several graphs; holders that mutate it from other goroutines
// must synchronize externally.
package graph

import (
	"errors"
	"log"
	"weak"

	"git.sr.ht/~whereswaldon/plot-wiser/backend"
)

// ErrInvalidAxis is returned when a graph is created without a usable pair
// of axes.
var ErrInvalidAxis = errors.New("graph needs two distinct axes")

// DefaultSelectionTolerance is the distance, in pixels, within which a
// point counts as hitting a graph.
const DefaultSelectionTolerance = 8

// Graph is a series of key/value samples drawn against a key axis and a
// value axis.
type Graph struct {
	keyAxis, valueAxis Axis
	data               *backend.GraphDataContainer

	name             string
	lineStyle        LineStyle
	scatter          ScatterStyle
	scatterSkip      int
	pen              Pen
	brush            Brush
	channelFill      weak.Pointer[Graph]
	adaptiveSampling bool
	visible          bool
	selectable       bool
	tolerance        float64
	// removed is set once the owning plot drops the graph.
	removed bool
}

// New creates an empty graph drawn against the given axes. The axes are
// fixed for the lifetime of the graph.
func New(keyAxis, valueAxis Axis) (*Graph, error) {
	if keyAxis == nil || valueAxis == nil || keyAxis == valueAxis {
		return nil, ErrInvalidAxis
	}
	if keyAxis.Orientation() == valueAxis.Orientation() {
		return nil, ErrInvalidAxis
	}
	return &Graph{
		keyAxis:          keyAxis,
		valueAxis:        valueAxis,
		data:             backend.NewGraphDataContainer(),
		lineStyle:        LineStyleLine,
		pen:              Pen{Color: colorBlack, Width: 1},
		adaptiveSampling: true,
		visible:          true,
		selectable:       true,
		tolerance:        DefaultSelectionTolerance,
	}, nil
}

func (g *Graph) KeyAxis() Axis   { return g.keyAxis }
func (g *Graph) ValueAxis() Axis { return g.valueAxis }

// Data returns the container holding the graph's samples. It may be shared
// with other graphs.
func (g *Graph) Data() *backend.GraphDataContainer {
	return g.data
}

// SetSharedData makes the graph draw the samples held in data, without
// copying them. A nil container gives the graph fresh empty storage.
func (g *Graph) SetSharedData(data *backend.GraphDataContainer) {
	if data == nil {
		data = backend.NewGraphDataContainer()
	}
	g.data = data
}

// AssignData replaces the graph's samples with a copy of those in data.
// Graphs sharing the container with g observe the change.
func (g *Graph) AssignData(data *backend.GraphDataContainer) {
	g.data.SetContainer(data)
}

// SetData replaces the graph's samples with the pairs formed from keys and
// values. Surplus elements of the longer slice are ignored.
func (g *Graph) SetData(keys, values []float64, alreadySorted bool) {
	g.data.Set(backend.GraphDataFrom(keys, values), alreadySorted)
}

// AddData merges the pairs formed from keys and values into the graph.
// Existing samples at the same keys are replaced.
func (g *Graph) AddData(keys, values []float64, alreadySorted bool) {
	g.data.Add(backend.GraphDataFrom(keys, values), alreadySorted)
}

func (g *Graph) AddDataPoint(key, value float64) {
	g.data.AddOne(backend.GraphData{Key: key, Value: value})
}

func (g *Graph) AddDataContainer(data *backend.GraphDataContainer) {
	g.data.AddContainer(data)
}

func (g *Graph) RemoveDataBefore(key float64) { g.data.RemoveBefore(key) }
func (g *Graph) RemoveDataAfter(key float64)  { g.data.RemoveAfter(key) }

// RemoveData removes the samples with keys in [fromKey, toKey].
func (g *Graph) RemoveData(fromKey, toKey float64) { g.data.Remove(fromKey, toKey) }
func (g *Graph) RemoveDataAt(key float64)          { g.data.RemoveKey(key) }
func (g *Graph) ClearData()                        { g.data.Clear() }

// KeyRange returns the range of keys with plottable values.
func (g *Graph) KeyRange(domain backend.SignDomain) (backend.Range, bool) {
	return g.data.KeyRange(domain)
}

// ValueRange returns the range of plottable values.
func (g *Graph) ValueRange(domain backend.SignDomain) (backend.Range, bool) {
	return g.data.ValueRange(domain)
}

// ValueRangeIn returns the range of plottable values among the samples with
// keys in keyRange.
func (g *Graph) ValueRangeIn(domain backend.SignDomain, keyRange backend.Range) (backend.Range, bool) {
	return g.data.ValueRangeIn(domain, keyRange)
}

func (g *Graph) Name() string        { return g.name }
func (g *Graph) SetName(name string) { g.name = name }

func (g *Graph) LineStyle() LineStyle         { return g.lineStyle }
func (g *Graph) SetLineStyle(style LineStyle) { g.lineStyle = style }

func (g *Graph) ScatterStyle() ScatterStyle         { return g.scatter }
func (g *Graph) SetScatterStyle(style ScatterStyle) { g.scatter = style }

// SetScatterSkip draws a marker only on every (skip+1)th visible point.
func (g *Graph) SetScatterSkip(skip int) { g.scatterSkip = max(skip, 0) }
func (g *Graph) ScatterSkip() int        { return g.scatterSkip }

func (g *Graph) Pen() Pen         { return g.pen }
func (g *Graph) SetPen(pen Pen)   { g.pen = pen }
func (g *Graph) Brush() Brush     { return g.brush }
func (g *Graph) SetBrush(b Brush) { g.brush = b }

func (g *Graph) AdaptiveSampling() bool { return g.adaptiveSampling }

// SetAdaptiveSampling controls whether dense data is reduced to a few points
// per pixel column before drawing. It is enabled by default.
func (g *Graph) SetAdaptiveSampling(enabled bool) { g.adaptiveSampling = enabled }

func (g *Graph) Visible() bool           { return g.visible }
func (g *Graph) SetVisible(visible bool) { g.visible = visible }

// Selectable reports whether Plot.GraphAt, and SelectTest calls restricted
// to selectable graphs, can pick the graph.
func (g *Graph) Selectable() bool              { return g.selectable }
func (g *Graph) SetSelectable(selectable bool) { g.selectable = selectable }

// SelectionTolerance is the largest pixel distance from the graph at which
// Plot.GraphAt still picks it. It defaults to DefaultSelectionTolerance.
func (g *Graph) SelectionTolerance() float64 { return g.tolerance }

// SetSelectionTolerance sets the selection tolerance in pixels. Negative
// values are treated as zero.
func (g *Graph) SetSelectionTolerance(pixels float64) {
	g.tolerance = max(pixels, 0)
}

// SetChannelFillGraph makes the graph's fill extend to the line of target
// rather than to the value axis baseline. The graph does not keep target
// alive, and once target is removed from its plot the fill reverts to the
// baseline. Passing nil clears the relation.
func (g *Graph) SetChannelFillGraph(target *Graph) {
	switch {
	case target == nil:
		g.channelFill = weak.Pointer[Graph]{}
	case target == g:
		log.Printf("graph %q: cannot fill a channel to itself", g.name)
		g.channelFill = weak.Pointer[Graph]{}
	case target.keyAxis.Orientation() != g.keyAxis.Orientation():
		log.Printf("graph %q: channel fill target %q has a differently oriented key axis", g.name, target.name)
		g.channelFill = weak.Pointer[Graph]{}
	default:
		g.channelFill = weak.Make(target)
	}
}

// ChannelFillGraph returns the channel fill target, or nil when there is
// none or it no longer exists.
func (g *Graph) ChannelFillGraph() *Graph {
	target := g.channelFill.Value()
	if target == nil || target.removed {
		return nil
	}
	return target
}

// keyPixel returns the key axis pixel coordinate of p.
func (g *Graph) keyPixel(p Point) float64 {
	if g.keyAxis.Orientation() == Horizontal {
		return p.X
	}
	return p.Y
}

// coordsToPixels maps a key/value pair to pixel space.
func (g *Graph) coordsToPixels(key, value float64) Point {
	k := g.keyAxis.CoordToPixel(key)
	v := g.valueAxis.CoordToPixel(value)
	if g.keyAxis.Orientation() == Horizontal {
		return Point{X: k, Y: v}
	}
	return Point{X: v, Y: k}
}

// pixelPoint builds a point from a key pixel and a value pixel.
func (g *Graph) pixelPoint(keyPx, valuePx float64) Point {
	if g.keyAxis.Orientation() == Horizontal {
		return Point{X: keyPx, Y: valuePx}
	}
	return Point{X: valuePx, Y: keyPx}
}
