package main

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"git.sr.ht/~whereswaldon/plot-wiser/backend"
	"git.sr.ht/~whereswaldon/plot-wiser/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trace = `time (s), upper (V), lower (V), spikes (A)
0, 3, 1, 1
1, 4, 2, 1
2, 3, NaN, 10
3, 5, 1, 1
`

const plotConfig = `
title = "test"
width = 320
height = 200

[value_axis]
min = 0

[[series]]
column = "upper (V)"
label = "upper"
line = "stepLeft"
color = "#ff0000"
width = 2
fill = "#0000ff40"
channel_to = "lower (V)"

[[series]]
column = "spikes (A)"
line = "impulse"
scatter = "disc"
scatter_size = 4
sampling = false
hidden = true
`

func loadTestDataset(t *testing.T) backend.Dataset {
	t.Helper()
	ds, err := backend.ReadDataset(strings.NewReader(trace))
	require.NoError(t, err)
	return ds
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(strings.NewReader(plotConfig))
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	require.Len(t, cfg.Series, 2)
	require.NotNil(t, cfg.Series[0].Line)
	assert.Equal(t, graph.LineStyleStepLeft, *cfg.Series[0].Line)
	assert.Equal(t, color.NRGBA{B: 0xff, A: 0x40}, cfg.Series[0].Fill.NRGBA)
	assert.Equal(t, graph.ScatterDisc, cfg.Series[1].Scatter)
	require.NotNil(t, cfg.ValueAxis.Min)
	assert.Nil(t, cfg.ValueAxis.Max)
}

func TestLoadConfigErrors(t *testing.T) {
	for _, tc := range []struct {
		name, config, want string
	}{
		{name: "unknown key", config: "colour = 1", want: "colour"},
		{name: "bad line style", config: "[[series]]\nline = \"dotted\"", want: "dotted"},
		{name: "bad colour", config: "background = \"blue\"", want: "blue"},
		{name: "bad size", config: "width = -1", want: "invalid size"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := loadConfig(strings.NewReader(tc.config))
			assert.ErrorContains(t, err, tc.want)
		})
	}
}

func TestBuildPlot(t *testing.T) {
	cfg, err := loadConfig(strings.NewReader(plotConfig))
	require.NoError(t, err)
	plot, err := buildPlot(loadTestDataset(t), cfg)
	require.NoError(t, err)

	graphs := plot.Graphs()
	require.Len(t, graphs, 3)
	upper, lower, spikes := graphs[0], graphs[1], graphs[2]
	assert.Equal(t, "upper", upper.Name())
	assert.Equal(t, graph.LineStyleStepLeft, upper.LineStyle())
	assert.Equal(t, color.NRGBA{R: 0xff, A: 0xff}, upper.Pen().Color)
	assert.Same(t, lower, upper.ChannelFillGraph())
	assert.False(t, spikes.Visible())
	assert.False(t, spikes.AdaptiveSampling())

	assert.Equal(t, backend.Range{Lower: 0, Upper: 3}, plot.KeyAxis.Range())
	assert.Equal(t, backend.Range{Lower: 0, Upper: 5}, plot.ValueAxis.Range(), "hidden spikes ignored, min fixed")
}

func TestBuildPlotErrors(t *testing.T) {
	ds := loadTestDataset(t)
	_, err := buildPlot(ds, Config{Series: []SeriesConfig{{Column: "missing"}}})
	assert.ErrorContains(t, err, "missing")
	_, err = buildPlot(ds, Config{Series: []SeriesConfig{{Column: "upper (V)", ChannelTo: "nowhere"}}})
	assert.ErrorContains(t, err, "nowhere")
	_, err = buildPlot(ds, Config{KeyAxis: AxisConfig{Scale: "cubic"}})
	assert.ErrorContains(t, err, "cubic")
}

func TestRender(t *testing.T) {
	cfg, err := loadConfig(strings.NewReader(plotConfig))
	require.NoError(t, err)
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.svg", "out.pdf"} {
		t.Run(name, func(t *testing.T) {
			plot, err := buildPlot(loadTestDataset(t), cfg)
			require.NoError(t, err)
			output := filepath.Join(dir, name)
			require.NoError(t, render(plot, cfg, "time (s)", output))
			info, err := os.Stat(output)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}

	f, err := os.Open(filepath.Join(dir, "out.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 320, img.Bounds().Dx())
}

func TestEngineFor(t *testing.T) {
	engine, err := engineFor(Config{}, "png")
	require.NoError(t, err)
	assert.Equal(t, "raster", engine)
	engine, err = engineFor(Config{Engine: "gonum"}, "png")
	require.NoError(t, err)
	assert.Equal(t, "gonum", engine)
	_, err = engineFor(Config{Engine: "raster"}, "svg")
	assert.Error(t, err)
	_, err = engineFor(Config{Engine: "cairo"}, "png")
	assert.Error(t, err)
}
