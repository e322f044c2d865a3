package imaging

import (
	"github.com/anthonynsimon/bild/blur"
)

// Smooth returns a Gaussian-blurred copy of the grid.
//
// Pre-filtering an image before segmentation suppresses sensor noise and
// dithering so regions grow past single-pixel speckle instead of stopping
// at it. A radius of 0 or less returns the grid unchanged.
func Smooth(g *Grid, radius float64) *Grid {
	if radius <= 0 {
		return g
	}
	return FromImage(blur.Gaussian(g.Image(), radius))
}
