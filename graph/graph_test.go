package graph

import (
	"image/color"
	"math"
	"testing"

	"git.sr.ht/~whereswaldon/plot-wiser/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Painter that records what it is asked to draw.
type recorder struct {
	polylines [][]Point
	polygons  [][]Point
	markers   [][]Point
	segments  [][2]Point
	calls     []string
}

func (r *recorder) DrawPolyline(pts []Point, pen Pen) {
	r.calls = append(r.calls, "polyline")
	r.polylines = append(r.polylines, pts)
}

func (r *recorder) DrawFilledPolygon(pts []Point, brush Brush) {
	r.calls = append(r.calls, "polygon")
	r.polygons = append(r.polygons, pts)
}

func (r *recorder) DrawMarkers(pts []Point, style ScatterStyle) {
	r.calls = append(r.calls, "markers")
	r.markers = append(r.markers, pts)
}

func (r *recorder) DrawSegment(a, b Point, pen Pen) {
	r.calls = append(r.calls, "segment")
	r.segments = append(r.segments, [2]Point{a, b})
}

func (r *recorder) allPoints() []Point {
	var out []Point
	for _, l := range r.polylines {
		out = append(out, l...)
	}
	for _, l := range r.polygons {
		out = append(out, l...)
	}
	for _, l := range r.markers {
		out = append(out, l...)
	}
	for _, s := range r.segments {
		out = append(out, s[0], s[1])
	}
	return out
}

// newTestGraph returns a graph whose keys map to x = 100*key and whose
// values map to y = height - 100*value.
func newTestGraph(t *testing.T, keys, values backend.Range) *Graph {
	t.Helper()
	keyAxis := NewAxis(Horizontal)
	keyAxis.SetRange(keys)
	keyAxis.SetPixelSpan(0, int(100*keys.Size()))
	valueAxis := NewAxis(Vertical)
	valueAxis.SetRange(values)
	valueAxis.SetPixelSpan(0, int(100*values.Size()))
	g, err := New(keyAxis, valueAxis)
	require.NoError(t, err)
	return g
}

var red = color.NRGBA{R: 255, A: 255}

func TestNewRejectsAxes(t *testing.T) {
	horizontal := NewAxis(Horizontal)
	vertical := NewAxis(Vertical)
	for _, tc := range []struct {
		name       string
		key, value Axis
	}{
		{name: "nil key", value: vertical},
		{name: "nil value", key: horizontal},
		{name: "same axis", key: horizontal, value: horizontal},
		{name: "same orientation", key: horizontal, value: NewAxis(Horizontal)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.key, tc.value)
			assert.ErrorIs(t, err, ErrInvalidAxis)
		})
	}
}

func TestGraphDefaults(t *testing.T) {
	g := newTestGraph(t, backend.Range{Lower: 0, Upper: 2}, backend.Range{Lower: 0, Upper: 2})
	assert.Equal(t, LineStyleLine, g.LineStyle())
	assert.True(t, g.ScatterStyle().IsNone())
	assert.True(t, g.AdaptiveSampling())
	assert.Nil(t, g.ChannelFillGraph())
	assert.True(t, g.Data().IsEmpty())
}

func TestLineStyleTopology(t *testing.T) {
	type testcase struct {
		style    LineStyle
		lines    [][]Point
		impulses [][2]Point
	}
	for _, tc := range []testcase{
		{style: LineStyleNone},
		{
			style: LineStyleLine,
			lines: [][]Point{{{0, 200}, {100, 0}, {200, 200}}},
		},
		{
			style: LineStyleStepLeft,
			lines: [][]Point{{{0, 200}, {0, 0}, {100, 0}, {100, 200}, {200, 200}}},
		},
		{
			style: LineStyleStepRight,
			lines: [][]Point{{{0, 200}, {100, 200}, {100, 0}, {200, 0}, {200, 200}}},
		},
		{
			style: LineStyleStepCenter,
			lines: [][]Point{{{0, 200}, {50, 200}, {50, 0}, {150, 0}, {150, 200}, {200, 200}}},
		},
		{
			style:    LineStyleImpulse,
			impulses: [][2]Point{{{0, 200}, {0, 200}}, {{100, 200}, {100, 0}}, {{200, 200}, {200, 200}}},
		},
	} {
		t.Run(tc.style.String(), func(t *testing.T) {
			g := newTestGraph(t, backend.Range{Lower: 0, Upper: 2}, backend.Range{Lower: 0, Upper: 2})
			g.SetData([]float64{0, 1, 2}, []float64{0, 2, 0}, true)
			g.SetLineStyle(tc.style)
			f := g.Prepare()
			assert.Equal(t, tc.lines, f.Lines)
			assert.Equal(t, tc.impulses, f.Impulses)
		})
	}
}

func TestLineStylesDegenerateInput(t *testing.T) {
	for _, style := range []LineStyle{LineStyleLine, LineStyleStepLeft, LineStyleStepRight, LineStyleStepCenter} {
		t.Run(style.String(), func(t *testing.T) {
			g := newTestGraph(t, backend.Range{Lower: 0, Upper: 2}, backend.Range{Lower: 0, Upper: 2})
			g.SetLineStyle(style)
			assert.True(t, g.Prepare().Empty(), "empty graph")
			g.AddDataPoint(1, 1)
			assert.Empty(t, g.Prepare().Lines, "single point")
		})
	}
}

func TestInvalidValuesSplitLines(t *testing.T) {
	g := newTestGraph(t, backend.Range{Lower: 0, Upper: 5}, backend.Range{Lower: 0, Upper: 2})
	g.SetData(
		[]float64{0, 1, 2, 3, 4, 5},
		[]float64{1, 1, math.NaN(), 1, math.Inf(1), 1},
		true,
	)
	g.SetBrush(Brush{Color: red})
	g.SetScatterStyle(ScatterStyle{Shape: ScatterCircle})
	f := g.Prepare()
	require.Len(t, f.Lines, 1)
	assert.Equal(t, []Point{{0, 100}, {100, 100}}, f.Lines[0])
	require.Len(t, f.Fills, 1)
	assert.Len(t, f.Scatters, 4)

	var r recorder
	g.Draw(&r)
	for _, p := range r.allPoints() {
		assert.True(t, p.Valid(), "painter received invalid point %v", p)
	}
	assert.Equal(t, []string{"polygon", "polyline", "markers"}, r.calls)

	g.SetLineStyle(LineStyleImpulse)
	r = recorder{}
	g.Draw(&r)
	assert.Len(t, r.segments, 4)
	for _, p := range r.allPoints() {
		assert.True(t, p.Valid(), "painter received invalid point %v", p)
	}
}

func TestVisibleDataBounds(t *testing.T) {
	type testcase struct {
		name     string
		keyRange backend.Range
		keys     []float64
	}
	for _, tc := range []testcase{
		{name: "padded", keyRange: backend.Range{Lower: 2.5, Upper: 3.5}, keys: []float64{2, 3, 4}},
		{name: "whole", keyRange: backend.Range{Lower: 0, Upper: 10}, keys: []float64{1, 2, 3, 4, 5}},
		{name: "between samples", keyRange: backend.Range{Lower: 4.2, Upper: 4.8}, keys: []float64{4, 5}},
		{name: "after data", keyRange: backend.Range{Lower: 10, Upper: 20}},
		{name: "before data", keyRange: backend.Range{Lower: -20, Upper: -10}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := newTestGraph(t, tc.keyRange, backend.Range{Lower: 0, Upper: 10})
			g.SetData([]float64{5, 4, 3, 2, 1}, []float64{1, 2, 3, 4, 5}, false)
			var keys []float64
			for _, d := range g.optimizedLineData() {
				keys = append(keys, d.Key)
			}
			assert.Equal(t, tc.keys, keys)
		})
	}
}

func TestBaselineFill(t *testing.T) {
	g := newTestGraph(t, backend.Range{Lower: 0, Upper: 2}, backend.Range{Lower: 0, Upper: 2})
	g.SetData([]float64{0, 1, 2}, []float64{1, 2, 1}, true)
	assert.Empty(t, g.Prepare().Fills, "no brush, no fill")

	g.SetBrush(Brush{Color: red})
	f := g.Prepare()
	require.Len(t, f.Fills, 1)
	assert.Equal(t, []Point{{0, 100}, {100, 0}, {200, 100}, {200, 200}, {0, 200}}, f.Fills[0])

	g.SetLineStyle(LineStyleImpulse)
	assert.Empty(t, g.Prepare().Fills, "impulses are never filled")
}

func TestLogBaseline(t *testing.T) {
	keyAxis := NewAxis(Horizontal)
	keyAxis.SetRange(backend.Range{Lower: 0, Upper: 2})
	keyAxis.SetPixelSpan(0, 200)
	valueAxis := NewAxis(Vertical)
	valueAxis.SetScaleType(ScaleLogarithmic)
	valueAxis.SetRange(backend.Range{Lower: 1, Upper: 100})
	valueAxis.SetPixelSpan(0, 200)
	g, err := New(keyAxis, valueAxis)
	require.NoError(t, err)
	assert.InDelta(t, 200, g.valueBasePixel(), 1e-9)

	valueAxis.SetRange(backend.Range{Lower: -100, Upper: -1})
	assert.InDelta(t, 0, g.valueBasePixel(), 1e-9)
}

func TestChannelFill(t *testing.T) {
	keys := backend.Range{Lower: 0, Upper: 4}
	values := backend.Range{Lower: 0, Upper: 4}
	plot := NewPlot()
	plot.KeyAxis.SetRange(keys)
	plot.ValueAxis.SetRange(values)
	plot.KeyAxis.SetPixelSpan(0, 400)
	plot.ValueAxis.SetPixelSpan(0, 400)
	upper, err := plot.AddGraph()
	require.NoError(t, err)
	lower, err := plot.AddGraph()
	require.NoError(t, err)

	upper.SetData([]float64{0, 4}, []float64{3, 3}, true)
	upper.SetBrush(Brush{Color: red})
	lower.SetData([]float64{1, 3}, []float64{1, 1}, true)
	upper.SetChannelFillGraph(lower)
	require.Same(t, lower, upper.ChannelFillGraph())

	baseline := []Point{{0, 100}, {400, 100}, {400, 400}, {0, 400}}
	channel := []Point{{100, 100}, {300, 100}, {300, 300}, {100, 300}}
	assert.Equal(t, [][]Point{channel}, upper.Prepare().Fills)

	t.Run("target without visible data", func(t *testing.T) {
		plot.KeyAxis.SetRange(backend.Range{Lower: 3.5, Upper: 4})
		defer plot.KeyAxis.SetRange(keys)
		f := upper.Prepare()
		require.Len(t, f.Fills, 1)
		assert.Equal(t, 4, len(f.Fills[0]))
		assert.Equal(t, f.Fills[0][2].Y, 400.0, "filled to the baseline")
	})

	t.Run("target cleared", func(t *testing.T) {
		lower.ClearData()
		defer lower.SetData([]float64{1, 3}, []float64{1, 1}, true)
		assert.Equal(t, [][]Point{baseline}, upper.Prepare().Fills)
	})

	t.Run("target removed", func(t *testing.T) {
		assert.Equal(t, [][]Point{channel}, upper.Prepare().Fills)
		require.True(t, plot.RemoveGraph(lower))
		assert.Nil(t, upper.ChannelFillGraph())
		assert.Equal(t, [][]Point{baseline}, upper.Prepare().Fills)
		assert.False(t, plot.RemoveGraph(lower))
	})
}

func TestChannelFillRejectsTargets(t *testing.T) {
	g := newTestGraph(t, backend.Range{Lower: 0, Upper: 2}, backend.Range{Lower: 0, Upper: 2})
	g.SetChannelFillGraph(g)
	assert.Nil(t, g.ChannelFillGraph())

	rotated, err := New(g.ValueAxis(), g.KeyAxis())
	require.NoError(t, err)
	g.SetChannelFillGraph(rotated)
	assert.Nil(t, g.ChannelFillGraph())

	other := newTestGraph(t, backend.Range{Lower: 0, Upper: 2}, backend.Range{Lower: 0, Upper: 2})
	g.SetChannelFillGraph(other)
	assert.Same(t, other, g.ChannelFillGraph())
	g.SetChannelFillGraph(nil)
	assert.Nil(t, g.ChannelFillGraph())
}

func TestSharedData(t *testing.T) {
	a := newTestGraph(t, backend.Range{Lower: 0, Upper: 2}, backend.Range{Lower: 0, Upper: 2})
	b := newTestGraph(t, backend.Range{Lower: 0, Upper: 2}, backend.Range{Lower: 0, Upper: 2})
	b.SetSharedData(a.Data())
	a.AddDataPoint(1, 1)
	assert.Equal(t, 1, b.Data().Len())

	c := newTestGraph(t, backend.Range{Lower: 0, Upper: 2}, backend.Range{Lower: 0, Upper: 2})
	c.AssignData(a.Data())
	a.AddDataPoint(2, 2)
	assert.Equal(t, 1, c.Data().Len(), "assigned data is a copy")

	b.SetSharedData(nil)
	assert.True(t, b.Data().IsEmpty())
	assert.Equal(t, 2, a.Data().Len())
}

func TestGraphDataMutations(t *testing.T) {
	g := newTestGraph(t, backend.Range{Lower: 0, Upper: 10}, backend.Range{Lower: 0, Upper: 10})
	g.SetData([]float64{1, 2, 3, 4, 5, 6}, []float64{1, 2, 3, 4, 5, 6, 7}, true)
	require.Equal(t, 6, g.Data().Len())
	g.AddData([]float64{7, 0}, []float64{7, 0}, false)
	g.RemoveDataBefore(1)
	g.RemoveDataAfter(6)
	g.RemoveData(2, 3)
	g.RemoveDataAt(5)
	keys, ok := g.KeyRange(backend.SignBoth)
	require.True(t, ok)
	assert.Equal(t, backend.Range{Lower: 1, Upper: 6}, keys)
	assert.Equal(t, 3, g.Data().Len())

	other := backend.NewGraphDataContainer()
	other.Set([]backend.GraphData{{Key: 2, Value: 20}}, true)
	g.AddDataContainer(other)
	values, ok := g.ValueRange(backend.SignBoth)
	require.True(t, ok)
	assert.Equal(t, backend.Range{Lower: 1, Upper: 20}, values)
	values, ok = g.ValueRangeIn(backend.SignBoth, backend.Range{Lower: 4, Upper: 10})
	require.True(t, ok)
	assert.Equal(t, backend.Range{Lower: 4, Upper: 6}, values)

	g.ClearData()
	_, ok = g.KeyRange(backend.SignBoth)
	assert.False(t, ok)
}

func TestScatterSkip(t *testing.T) {
	g := newTestGraph(t, backend.Range{Lower: 0, Upper: 10}, backend.Range{Lower: 0, Upper: 10})
	g.SetData([]float64{0, 1, 2, 3, 4, 5, 6}, []float64{1, 1, 1, 1, 1, 1, 1}, true)
	g.SetScatterStyle(ScatterStyle{Shape: ScatterDisc})
	g.SetScatterSkip(2)
	assert.Len(t, g.Prepare().Scatters, 3)
}

func TestZeroExtentDrawsNothing(t *testing.T) {
	g := newTestGraph(t, backend.Range{Lower: 0, Upper: 2}, backend.Range{Lower: 0, Upper: 2})
	g.SetData([]float64{0, 1, 2}, []float64{0, 2, 0}, true)
	g.KeyAxis().(*ScaleAxis).SetPixelSpan(0, 0)
	assert.True(t, g.Prepare().Empty())
	assert.Equal(t, float64(NoHit), g.SelectTest(Pt(0, 0), false, nil))
}
