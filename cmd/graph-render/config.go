package main

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"git.sr.ht/~whereswaldon/plot-wiser/backend"
	"git.sr.ht/~whereswaldon/plot-wiser/graph"
	"git.sr.ht/~whereswaldon/plot-wiser/palette"
	"github.com/pelletier/go-toml/v2"
)

// Config describes how a trace is rendered.
type Config struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// Engine is "raster" or "gonum". When empty it is chosen from the
	// output file's extension.
	Engine     string         `toml:"engine"`
	Background *Color         `toml:"background"`
	KeyAxis    AxisConfig     `toml:"key_axis"`
	ValueAxis  AxisConfig     `toml:"value_axis"`
	Series     []SeriesConfig `toml:"series"`
}

type AxisConfig struct {
	Scale    string   `toml:"scale"`
	Reversed bool     `toml:"reversed"`
	Min      *float64 `toml:"min"`
	Max      *float64 `toml:"max"`
	// FitVisible fits a value axis to the data within the key axis range
	// rather than to all data.
	FitVisible bool `toml:"fit_visible"`
}

// SeriesConfig styles the series read from the trace column named Column.
type SeriesConfig struct {
	Column      string             `toml:"column"`
	Label       string             `toml:"label"`
	Line        *graph.LineStyle   `toml:"line"`
	Color       *Color             `toml:"color"`
	Width       float64            `toml:"width"`
	Fill        *Color             `toml:"fill"`
	Scatter     graph.ScatterShape `toml:"scatter"`
	ScatterSize float64            `toml:"scatter_size"`
	ScatterSkip int                `toml:"scatter_skip"`
	ChannelTo   string             `toml:"channel_to"`
	Sampling    *bool              `toml:"sampling"`
	Hidden      bool               `toml:"hidden"`
}

// Color is a colour written as #rrggbb or #rrggbbaa.
type Color struct {
	color.NRGBA
}

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := palette.Parse(string(b))
	if err != nil {
		return err
	}
	c.NRGBA = parsed
	return nil
}

func defaultConfig() Config {
	return Config{
		Width:  800,
		Height: 500,
	}
}

// loadConfig decodes a TOML plot description on top of the defaults.
func loadConfig(r io.Reader) (Config, error) {
	cfg := defaultConfig()
	if err := toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("unknown configuration keys:\n%s", strict.String())
		}
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return cfg, fmt.Errorf("invalid size %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

func parseScale(s string) (graph.ScaleType, error) {
	switch s {
	case "", "linear":
		return graph.ScaleLinear, nil
	case "log":
		return graph.ScaleLogarithmic, nil
	default:
		return 0, fmt.Errorf("unknown axis scale %q", s)
	}
}

func (a AxisConfig) apply(axis *graph.ScaleAxis) error {
	scale, err := parseScale(a.Scale)
	if err != nil {
		return err
	}
	axis.SetScaleType(scale)
	axis.SetReversed(a.Reversed)
	return nil
}

// clamp replaces the bounds of axis that the configuration fixes.
func (a AxisConfig) clamp(axis *graph.ScaleAxis) {
	r := axis.Range()
	if a.Min != nil {
		r.Lower = *a.Min
	}
	if a.Max != nil {
		r.Upper = *a.Max
	}
	axis.SetRange(r)
}

func (s SeriesConfig) apply(g *graph.Graph) {
	if s.Label != "" {
		g.SetName(s.Label)
	}
	if s.Line != nil {
		g.SetLineStyle(*s.Line)
	}
	pen := g.Pen()
	if s.Color != nil {
		pen.Color = s.Color.NRGBA
	}
	if s.Width > 0 {
		pen.Width = s.Width
	}
	g.SetPen(pen)
	if s.Fill != nil {
		g.SetBrush(graph.Brush{Color: s.Fill.NRGBA})
	}
	if s.Scatter != graph.ScatterNone {
		g.SetScatterStyle(graph.ScatterStyle{Shape: s.Scatter, Size: s.ScatterSize})
	}
	g.SetScatterSkip(s.ScatterSkip)
	if s.Sampling != nil {
		g.SetAdaptiveSampling(*s.Sampling)
	}
	g.SetVisible(!s.Hidden)
}

// buildPlot creates one graph per series of ds, styled by cfg, and fits
// the axes to the visible graphs.
func buildPlot(ds backend.Dataset, cfg Config) (*graph.Plot, error) {
	plot := graph.NewPlot()
	if err := cfg.KeyAxis.apply(plot.KeyAxis); err != nil {
		return nil, fmt.Errorf("key axis: %w", err)
	}
	if err := cfg.ValueAxis.apply(plot.ValueAxis); err != nil {
		return nil, fmt.Errorf("value axis: %w", err)
	}

	byColumn := make(map[string]*graph.Graph, len(ds.Series))
	for i, s := range ds.Series {
		g, err := plot.AddGraph()
		if err != nil {
			return nil, err
		}
		g.SetName(s.Name)
		g.SetSharedData(s.Data)
		g.SetPen(graph.Pen{Color: palette.At(i), Width: 1.5})
		byColumn[s.Name] = g
	}
	for _, sc := range cfg.Series {
		g, ok := byColumn[sc.Column]
		if !ok {
			return nil, fmt.Errorf("series %q: no such column", sc.Column)
		}
		sc.apply(g)
	}
	for _, sc := range cfg.Series {
		if sc.ChannelTo == "" {
			continue
		}
		target, ok := byColumn[sc.ChannelTo]
		if !ok {
			return nil, fmt.Errorf("series %q: channel target %q: no such column", sc.Column, sc.ChannelTo)
		}
		byColumn[sc.Column].SetChannelFillGraph(target)
	}

	plot.RescaleAxes(true)
	cfg.KeyAxis.clamp(plot.KeyAxis)
	if cfg.ValueAxis.FitVisible {
		plot.RescaleValueAxis(true)
	}
	cfg.ValueAxis.clamp(plot.ValueAxis)
	return plot, nil
}
