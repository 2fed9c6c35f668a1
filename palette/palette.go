// Package palette provides the series colours shared by the viewer and the
// renderer.
package palette

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Colors returns n colours of equal lightness and chroma, with hues spread
// by the golden angle so that neighbours differ strongly.
func Colors(n int) []color.NRGBA {
	out := make([]color.NRGBA, n)
	for i := range out {
		hue := math.Mod(float64(i)*math.Phi*360, 360)
		r, g, b := colorful.Hcl(hue, 0.5, 0.55).Clamped().RGB255()
		out[i] = color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}
	return out
}

// At returns the i-th colour of the default palette, wrapping around.
func At(i int) color.NRGBA {
	return defaultColors[i%len(defaultColors)]
}

var defaultColors = Colors(20)

// Parse reads a colour written as #rgb, #rrggbb or #rrggbbaa.
func Parse(s string) (color.NRGBA, error) {
	alpha := uint8(0xff)
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("parsing alpha of %q: %w", s, err)
		}
		alpha = uint8(a)
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parsing colour: %w", err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

// WithAlpha returns c with its alpha replaced.
func WithAlpha(c color.NRGBA, alpha uint8) color.NRGBA {
	c.A = alpha
	return c
}
