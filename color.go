package main

import (
	"image/color"

	"git.sr.ht/~whereswaldon/plot-wiser/palette"
)

const (
	disabledAlpha = uint8(100)
	fillAlpha     = uint8(60)
	stripeAlpha   = uint8(50)
)

// seriesColor returns the colour of the i-th series, faded when the series
// is hidden.
func seriesColor(i int, enabled bool) color.NRGBA {
	c := palette.At(i)
	if !enabled {
		c = palette.WithAlpha(c, disabledAlpha)
	}
	return c
}
