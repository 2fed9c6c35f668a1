package main

import (
	"testing"

	"git.sr.ht/~whereswaldon/plot-wiser/backend"
	"git.sr.ht/~whereswaldon/plot-wiser/graph"
	"git.sr.ht/~whereswaldon/plot-wiser/palette"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNiceTicks(t *testing.T) {
	for _, tc := range []struct {
		name  string
		r     backend.Range
		scale graph.ScaleType
		n     int
		want  []float64
	}{
		{name: "unit steps", r: backend.Range{Lower: 0.5, Upper: 3.2}, n: 3, want: []float64{1, 2, 3}},
		{name: "twos", r: backend.Range{Lower: 0, Upper: 10}, n: 5, want: []float64{0, 2, 4, 6, 8, 10}},
		{name: "negative", r: backend.Range{Lower: -10, Upper: 10}, n: 2, want: []float64{-10, 0, 10}},
		{name: "decades", r: backend.Range{Lower: 0.5, Upper: 2000}, scale: graph.ScaleLogarithmic, n: 8, want: []float64{1, 10, 100, 1000}},
		{name: "log of non-positive", r: backend.Range{Lower: -1, Upper: 10}, scale: graph.ScaleLogarithmic, n: 8},
		{name: "empty range", r: backend.Range{Lower: 1, Upper: 1}, n: 8},
		{name: "no ticks wanted", r: backend.Range{Lower: 0, Upper: 1}, n: 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, niceTicks(tc.r, tc.scale, tc.n))
		})
	}
}

func TestFollowRange(t *testing.T) {
	full := backend.Range{Lower: 0, Upper: 100}
	assert.Equal(t, full, followRange(full, 0))
	assert.Equal(t, full, followRange(full, 200))
	assert.Equal(t, backend.Range{Lower: 90, Upper: 100}, followRange(full, 10))
}

func TestClampView(t *testing.T) {
	full := backend.Range{Lower: 0, Upper: 100}
	assert.Equal(t, backend.Range{Lower: 90, Upper: 100}, clampView(backend.Range{Lower: 95, Upper: 105}, full))
	assert.Equal(t, backend.Range{Lower: 0, Upper: 10}, clampView(backend.Range{Lower: -5, Upper: 5}, full))
	assert.Equal(t, backend.Range{Lower: 40, Upper: 50}, clampView(backend.Range{Lower: 40, Upper: 50}, full))
	wide := backend.Range{Lower: -50, Upper: 150}
	assert.Equal(t, wide, clampView(wide, full), "views wider than the data are left alone")
}

func TestViewportFraction(t *testing.T) {
	full := backend.Range{Lower: 0, Upper: 100}
	start, end := viewportFraction(backend.Range{Lower: 25, Upper: 50}, full)
	assert.InDelta(t, 0.25, start, 1e-6)
	assert.InDelta(t, 0.5, end, 1e-6)
	start, end = viewportFraction(backend.Range{Lower: -10, Upper: 200}, full)
	assert.Equal(t, float32(0), start)
	assert.Equal(t, float32(1), end)
	start, end = viewportFraction(full, backend.Range{})
	assert.Equal(t, float32(0), start)
	assert.Equal(t, float32(1), end)
}

func newTestData(headings ...string) *backend.RWBox[backend.Dataset] {
	box := &backend.RWBox[backend.Dataset]{}
	box.Write(func(ds *backend.Dataset) {
		ds.SetHeadings(headings)
		ds.Insert([]backend.Row{
			{Key: 0, Values: []backend.Cell{{Series: 0, Value: 1}, {Series: 1, Value: 10}}},
			{Key: 1, Values: []backend.Cell{{Series: 0, Value: 2}, {Series: 1, Value: 20}}},
		})
	})
	return box
}

func TestSyncGraphs(t *testing.T) {
	box := newTestData("time (s)", "a (W)", "b (W)")
	chart := NewChart(box)
	sync := func() {
		box.Read(func(ds *backend.Dataset) {
			chart.syncGraphs(ds)
		})
	}
	sync()
	graphs := chart.plot.Graphs()
	require.Len(t, graphs, 2)
	require.Len(t, chart.Enabled, 2)
	assert.Equal(t, "a (W)", graphs[0].Name())
	assert.Equal(t, "time (s)", chart.keyName)
	first := graphs[0]

	box.Write(func(ds *backend.Dataset) {
		ds.SetHeadings([]string{"c (W)"})
	})
	chart.Enabled[0].Value = false
	sync()
	graphs = chart.plot.Graphs()
	require.Len(t, graphs, 3)
	assert.Same(t, first, graphs[0], "existing graphs are kept")
	assert.False(t, chart.Enabled[0].Value)

	chart.paused = true
	box.Write(func(ds *backend.Dataset) {
		*ds = backend.Dataset{}
		ds.SetHeadings([]string{"key", "z"})
	})
	sync()
	graphs = chart.plot.Graphs()
	require.Len(t, graphs, 1)
	assert.Equal(t, "z", graphs[0].Name())
	assert.True(t, chart.Enabled[0].Value)
	assert.False(t, chart.paused, "a new trace is followed")
	box.Read(func(ds *backend.Dataset) {
		assert.Same(t, ds.Series[0].Data, graphs[0].Data())
	})
}

func TestApplyStyle(t *testing.T) {
	box := newTestData("time (s)", "a (W)", "b (W)")
	chart := NewChart(box)
	box.Read(func(ds *backend.Dataset) {
		chart.syncGraphs(ds)
	})
	chart.applyStyle(2)
	graphs := chart.plot.Graphs()
	assert.Equal(t, graph.LineStyleLine, graphs[0].LineStyle())
	assert.Equal(t, graph.Pen{Color: palette.At(1), Width: 2}, graphs[1].Pen())
	assert.True(t, graphs[0].Brush().IsNone())
	assert.Equal(t, graph.ScaleLinear, chart.plot.ValueAxis.ScaleType())

	chart.Enabled[1].Value = false
	chart.Filled.Value = true
	chart.LogScale.Value = true
	chart.lineStyle.Value = graph.LineStyleNone.String()
	chart.applyStyle(2)
	assert.True(t, graphs[0].Visible())
	assert.False(t, graphs[1].Visible())
	assert.Equal(t, graph.LineStyleNone, graphs[0].LineStyle())
	assert.Equal(t, graph.ScatterDisc, graphs[0].ScatterStyle().Shape)
	assert.Equal(t, palette.WithAlpha(palette.At(0), fillAlpha), graphs[0].Brush().Color)
	assert.Equal(t, graph.ScaleLogarithmic, chart.plot.ValueAxis.ScaleType())

	chart.lineStyle.Value = "bogus"
	chart.applyStyle(2)
	assert.Equal(t, graph.LineStyleLine, graphs[0].LineStyle())
	assert.True(t, graphs[0].ScatterStyle().IsNone())
}

func TestStatusText(t *testing.T) {
	assert.Equal(t, "No trace loaded.", statusText(backend.Status{}))
	assert.Equal(t, "following trace.csv: 12,345 rows, 24,690 samples",
		statusText(backend.Status{Source: "trace.csv", Mode: backend.ModeFollowing, Rows: 12345, Samples: 24690}))
	assert.Equal(t, "loaded trace.csv: 2 rows, 4 samples",
		statusText(backend.Status{Source: "trace.csv", Mode: backend.ModeReplaying, Rows: 2, Samples: 4, Done: true}))
}

func TestSeriesColor(t *testing.T) {
	assert.Equal(t, palette.At(3), seriesColor(3, true))
	assert.Equal(t, disabledAlpha, seriesColor(3, false).A)
}
