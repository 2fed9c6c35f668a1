package graph

import (
	"math"

	"git.sr.ht/~whereswaldon/plot-wiser/backend"
)

type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

type ScaleType uint8

const (
	ScaleLinear ScaleType = iota
	ScaleLogarithmic
)

func (s ScaleType) String() string {
	if s == ScaleLogarithmic {
		return "log"
	}
	return "linear"
}

// Axis maps plot coordinates along one dimension to pixels.
type Axis interface {
	// CoordToPixel maps a plot coordinate to a pixel position. The result
	// is NaN for coordinates the axis cannot represent.
	CoordToPixel(value float64) float64
	PixelToCoord(pixel float64) float64
	// Range is the visible coordinate range.
	Range() backend.Range
	// PixelExtent is the length of the axis in pixels.
	PixelExtent() int
	Orientation() Orientation
	ScaleType() ScaleType
}

// ScaleAxis is a linear or logarithmic Axis spanning a pixel interval.
// Vertical axes grow upwards, so their larger coordinates map to smaller
// pixel values.
type ScaleAxis struct {
	orientation Orientation
	scale       ScaleType
	rng         backend.Range
	reversed    bool
	offset      float64
	extent      int
}

var _ Axis = (*ScaleAxis)(nil)

func NewAxis(orientation Orientation) *ScaleAxis {
	return &ScaleAxis{
		orientation: orientation,
		rng:         backend.Range{Lower: 0, Upper: 5},
	}
}

func (a *ScaleAxis) Orientation() Orientation { return a.orientation }
func (a *ScaleAxis) ScaleType() ScaleType     { return a.scale }
func (a *ScaleAxis) Range() backend.Range     { return a.rng }
func (a *ScaleAxis) PixelExtent() int         { return a.extent }
func (a *ScaleAxis) Reversed() bool           { return a.reversed }

// SignDomain returns the side of zero a range must stay on to be shown on
// this axis.
func (a *ScaleAxis) SignDomain() backend.SignDomain {
	if a.scale != ScaleLogarithmic {
		return backend.SignBoth
	}
	if a.rng.Upper < 0 {
		return backend.SignNegative
	}
	return backend.SignPositive
}

// SetRange sets the visible coordinate range. Ranges containing NaN are
// ignored; zero-size ranges are widened. On a logarithmic axis a range
// spanning zero is clipped to its positive part.
func (a *ScaleAxis) SetRange(r backend.Range) {
	if math.IsNaN(r.Lower) || math.IsNaN(r.Upper) {
		return
	}
	r = r.Normalize()
	if a.scale == ScaleLogarithmic && r.Lower <= 0 && r.Upper >= 0 {
		if r.Upper <= 0 {
			return
		}
		r.Lower = min(r.Upper/1000, 1)
	}
	a.rng = r.Widen(a.SignDomain())
}

func (a *ScaleAxis) SetScaleType(s ScaleType) {
	a.scale = s
	a.SetRange(a.rng)
}

func (a *ScaleAxis) SetReversed(reversed bool) {
	a.reversed = reversed
}

// SetPixelSpan places the axis on the pixel interval [offset, offset+extent].
func (a *ScaleAxis) SetPixelSpan(offset float64, extent int) {
	a.offset = offset
	a.extent = max(extent, 0)
}

// fraction maps value to its relative position in the range, with 0 at the
// lower bound and 1 at the upper bound.
func (a *ScaleAxis) fraction(value float64) float64 {
	if a.scale == ScaleLogarithmic {
		if value*a.rng.Lower <= 0 {
			return math.NaN()
		}
		return math.Log(value/a.rng.Lower) / math.Log(a.rng.Upper/a.rng.Lower)
	}
	return (value - a.rng.Lower) / a.rng.Size()
}

func (a *ScaleAxis) unfraction(f float64) float64 {
	if a.scale == ScaleLogarithmic {
		return math.Pow(a.rng.Upper/a.rng.Lower, f) * a.rng.Lower
	}
	return a.rng.Lower + f*a.rng.Size()
}

// growsTowardsOrigin reports whether larger coordinates map to smaller
// pixels.
func (a *ScaleAxis) growsTowardsOrigin() bool {
	return (a.orientation == Vertical) != a.reversed
}

func (a *ScaleAxis) CoordToPixel(value float64) float64 {
	f := a.fraction(value)
	if a.growsTowardsOrigin() {
		f = 1 - f
	}
	return a.offset + f*float64(a.extent)
}

func (a *ScaleAxis) PixelToCoord(pixel float64) float64 {
	if a.extent == 0 {
		return a.rng.Lower
	}
	f := (pixel - a.offset) / float64(a.extent)
	if a.growsTowardsOrigin() {
		f = 1 - f
	}
	return a.unfraction(f)
}

// Pan shifts the visible range by the coordinate distance covered by the
// given number of pixels.
func (a *ScaleAxis) Pan(pixels float64) {
	if a.extent == 0 {
		return
	}
	from := a.PixelToCoord(a.offset)
	to := a.PixelToCoord(a.offset + pixels)
	if a.scale == ScaleLogarithmic {
		factor := from / to
		a.SetRange(backend.Range{Lower: a.rng.Lower * factor, Upper: a.rng.Upper * factor})
		return
	}
	delta := from - to
	a.SetRange(backend.Range{Lower: a.rng.Lower + delta, Upper: a.rng.Upper + delta})
}

// Zoom scales the visible range by factor around the coordinate at pixel.
// Factors below one zoom in.
func (a *ScaleAxis) Zoom(factor, pixel float64) {
	if factor <= 0 || math.IsNaN(factor) {
		return
	}
	center := a.PixelToCoord(pixel)
	if a.scale == ScaleLogarithmic {
		a.SetRange(backend.Range{
			Lower: center * math.Pow(a.rng.Lower/center, factor),
			Upper: center * math.Pow(a.rng.Upper/center, factor),
		})
		return
	}
	a.SetRange(backend.Range{
		Lower: center + (a.rng.Lower-center)*factor,
		Upper: center + (a.rng.Upper-center)*factor,
	})
}
