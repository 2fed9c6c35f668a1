package graph

import (
	"math"
	"testing"

	"git.sr.ht/~whereswaldon/plot-wiser/backend"
	"github.com/stretchr/testify/assert"
)

func newPeakGraph(t *testing.T) *Graph {
	g := newTestGraph(t, backend.Range{Lower: 0, Upper: 2}, backend.Range{Lower: 0, Upper: 2})
	g.SetData([]float64{0, 1, 2}, []float64{0, 2, 0}, true)
	return g
}

func TestSelectTest(t *testing.T) {
	type testcase struct {
		name    string
		setup   func(g *Graph)
		pos     Point
		want    float64
		wantIdx int
	}
	for _, tc := range []testcase{
		{name: "first point", pos: Pt(0, 200), want: 0, wantIdx: 0},
		{name: "peak", pos: Pt(100, 0), want: 0, wantIdx: 1},
		{name: "on segment", pos: Pt(60, 80), want: 0, wantIdx: 1},
		{name: "off line", pos: Pt(100, 100), want: 100 / math.Sqrt(5), wantIdx: 1},
		{
			name:    "scatter only",
			setup:   func(g *Graph) { g.SetLineStyle(LineStyleNone); g.SetScatterStyle(ScatterStyle{Shape: ScatterDisc}) },
			pos:     Pt(100, 10),
			want:    10,
			wantIdx: 1,
		},
		{
			name:    "impulse",
			setup:   func(g *Graph) { g.SetLineStyle(LineStyleImpulse) },
			pos:     Pt(104, 100),
			want:    4,
			wantIdx: 1,
		},
		{
			name:    "step left",
			setup:   func(g *Graph) { g.SetLineStyle(LineStyleStepLeft) },
			pos:     Pt(50, 5),
			want:    5,
			wantIdx: 1,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := newPeakGraph(t)
			if tc.setup != nil {
				tc.setup(g)
			}
			var details SelectDetails
			got := g.SelectTest(tc.pos, true, &details)
			assert.InDelta(t, tc.want, got, 1e-9)
			assert.Equal(t, tc.wantIdx, details.Index)
			assert.Equal(t, g.Data().At(tc.wantIdx), details.Data)
		})
	}
}

func TestSelectTestNoHit(t *testing.T) {
	type testcase struct {
		name  string
		setup func(g *Graph)
	}
	for _, tc := range []testcase{
		{name: "empty", setup: func(g *Graph) { g.ClearData() }},
		{name: "invisible", setup: func(g *Graph) { g.SetVisible(false) }},
		{name: "not selectable", setup: func(g *Graph) { g.SetSelectable(false) }},
		{name: "draws nothing", setup: func(g *Graph) { g.SetLineStyle(LineStyleNone) }},
		{name: "out of view", setup: func(g *Graph) {
			g.KeyAxis().(*ScaleAxis).SetRange(backend.Range{Lower: 10, Upper: 20})
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g := newPeakGraph(t)
			tc.setup(g)
			details := SelectDetails{Index: 42}
			assert.Equal(t, float64(NoHit), g.SelectTest(Pt(100, 0), true, &details))
			assert.Equal(t, 42, details.Index, "details untouched")
		})
	}
}

func TestSelectTestIgnoresSelectable(t *testing.T) {
	g := newPeakGraph(t)
	g.SetSelectable(false)
	assert.Equal(t, 0.0, g.SelectTest(Pt(100, 0), false, nil))
}

func TestSelectTestSkipsGaps(t *testing.T) {
	g := newTestGraph(t, backend.Range{Lower: 0, Upper: 4}, backend.Range{Lower: 0, Upper: 2})
	g.SetData([]float64{0, 1, 2, 3, 4}, []float64{1, 1, math.NaN(), 1, 1}, true)
	// The gap between keys 1 and 3 is not drawn, so the closest drawn part
	// is an end of one of the two runs.
	got := g.SelectTest(Pt(200, 100), true, nil)
	assert.InDelta(t, 100, got, 1e-9)
}
