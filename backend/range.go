package backend

import "math"

// Range is a closed interval [Lower, Upper] of plot coordinates.
type Range struct {
	Lower, Upper float64
}

// Size returns the width of the range.
func (r Range) Size() float64 {
	return r.Upper - r.Lower
}

func (r Range) Center() float64 {
	return (r.Upper + r.Lower) * 0.5
}

// Contains reports whether v lies within the closed interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Lower && v <= r.Upper
}

// Normalize returns the range with its bounds ordered.
func (r Range) Normalize() Range {
	if r.Lower > r.Upper {
		r.Lower, r.Upper = r.Upper, r.Lower
	}
	return r
}

// Union returns the smallest range containing both r and o.
func (r Range) Union(o Range) Range {
	return Range{Lower: min(r.Lower, o.Lower), Upper: max(r.Upper, o.Upper)}
}

// Widen returns r with zero-size ranges expanded so that they can be
// displayed on an axis. Ranges touching zero are widened away from it
// when sign restricts the result to one side.
func (r Range) Widen(sign SignDomain) Range {
	if r.Size() != 0 {
		return r
	}
	c := r.Lower
	switch {
	case c == 0 && sign == SignPositive:
		return Range{Lower: 1e-3, Upper: 1}
	case c == 0:
		return Range{Lower: -1, Upper: 1}
	case sign == SignPositive || sign == SignNegative:
		return Range{Lower: c / 10, Upper: c * 10}.Normalize()
	default:
		half := math.Abs(c) * 0.05
		return Range{Lower: c - half, Upper: c + half}
	}
}

// SignDomain restricts range queries to one side of zero, as required
// by logarithmic axes.
type SignDomain uint8

const (
	SignBoth SignDomain = iota
	SignNegative
	SignPositive
)

func (s SignDomain) String() string {
	switch s {
	case SignBoth:
		return "both"
	case SignNegative:
		return "negative"
	case SignPositive:
		return "positive"
	default:
		return "?"
	}
}

// Admits reports whether v belongs to the sign domain.
func (s SignDomain) Admits(v float64) bool {
	switch s {
	case SignNegative:
		return v < 0
	case SignPositive:
		return v > 0
	default:
		return true
	}
}
