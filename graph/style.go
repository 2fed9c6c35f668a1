package graph

import (
	"fmt"
	"image/color"
)

// LineStyle selects how consecutive data points are connected.
type LineStyle uint8

const (
	// LineStyleNone draws no line. Scatter markers are still drawn.
	LineStyleNone LineStyle = iota
	// LineStyleLine connects points with straight lines.
	LineStyleLine
	// LineStyleStepLeft changes height at the left edge of each interval.
	LineStyleStepLeft
	// LineStyleStepRight changes height at the right edge of each interval.
	LineStyleStepRight
	// LineStyleStepCenter changes height halfway between two keys.
	LineStyleStepCenter
	// LineStyleImpulse draws a segment from the value axis baseline to
	// each point.
	LineStyleImpulse
)

var lineStyleNames = [...]string{
	LineStyleNone:       "none",
	LineStyleLine:       "line",
	LineStyleStepLeft:   "stepLeft",
	LineStyleStepRight:  "stepRight",
	LineStyleStepCenter: "stepCenter",
	LineStyleImpulse:    "impulse",
}

func (s LineStyle) String() string {
	if int(s) < len(lineStyleNames) {
		return lineStyleNames[s]
	}
	return fmt.Sprintf("LineStyle(%d)", uint8(s))
}

func (s LineStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *LineStyle) UnmarshalText(b []byte) error {
	for i, name := range lineStyleNames {
		if name == string(b) {
			*s = LineStyle(i)
			return nil
		}
	}
	return fmt.Errorf("unknown line style %q", b)
}

var colorBlack = color.NRGBA{A: 0xff}

// Pen describes how lines are stroked. A zero width strokes one pixel wide.
type Pen struct {
	Color color.NRGBA
	Width float64
}

// StrokeWidth returns the width to stroke with.
func (p Pen) StrokeWidth() float64 {
	if p.Width <= 0 {
		return 1
	}
	return p.Width
}

func (p Pen) IsNone() bool {
	return p.Color.A == 0
}

// Brush describes how areas are filled. The zero Brush fills nothing.
type Brush struct {
	Color color.NRGBA
}

func (b Brush) IsNone() bool {
	return b.Color.A == 0
}

type ScatterShape uint8

const (
	ScatterNone ScatterShape = iota
	ScatterDot
	ScatterCross
	ScatterPlus
	ScatterCircle
	ScatterDisc
	ScatterSquare
	ScatterDiamond
	ScatterStar
	ScatterTriangle
	ScatterTriangleInverted
)

var scatterShapeNames = [...]string{
	ScatterNone:             "none",
	ScatterDot:              "dot",
	ScatterCross:            "cross",
	ScatterPlus:             "plus",
	ScatterCircle:           "circle",
	ScatterDisc:             "disc",
	ScatterSquare:           "square",
	ScatterDiamond:          "diamond",
	ScatterStar:             "star",
	ScatterTriangle:         "triangle",
	ScatterTriangleInverted: "triangleInverted",
}

func (s ScatterShape) String() string {
	if int(s) < len(scatterShapeNames) {
		return scatterShapeNames[s]
	}
	return fmt.Sprintf("ScatterShape(%d)", uint8(s))
}

func (s ScatterShape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ScatterShape) UnmarshalText(b []byte) error {
	for i, name := range scatterShapeNames {
		if name == string(b) {
			*s = ScatterShape(i)
			return nil
		}
	}
	return fmt.Errorf("unknown scatter shape %q", b)
}

// DefaultScatterSize is the marker size, in pixels, used when a
// ScatterStyle leaves Size unset.
const DefaultScatterSize = 6

// ScatterStyle describes the markers drawn at each data point.
type ScatterStyle struct {
	Shape ScatterShape
	Size  float64
	Pen   Pen
	Brush Brush
}

func (s ScatterStyle) IsNone() bool {
	return s.Shape == ScatterNone
}

// MarkerSize returns the marker size in pixels.
func (s ScatterStyle) MarkerSize() float64 {
	if s.Size <= 0 {
		return DefaultScatterSize
	}
	return s.Size
}
