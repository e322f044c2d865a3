package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmoothZeroRadiusIsIdentity(t *testing.T) {
	g := fillGrid(t, 4, 4, Color{R: 77, G: 77, B: 77})
	assert.Same(t, g, Smooth(g, 0))
	assert.Same(t, g, Smooth(g, -1))
}

func TestSmoothPreservesDimensions(t *testing.T) {
	g := fillGrid(t, 9, 5, Color{R: 128, G: 64, B: 32})
	out := Smooth(g, 2)
	require.NotNil(t, out)
	assert.Equal(t, 9, out.Width())
	assert.Equal(t, 5, out.Height())
}

func TestSmoothReducesSpeckleContrast(t *testing.T) {
	// A single white pixel in a black field should lose intensity.
	g := fillGrid(t, 7, 7, Color{})
	g.Set(3, 3, Color{R: 255, G: 255, B: 255})

	out := Smooth(g, 2)
	center := out.At(3, 3)
	assert.Less(t, int(center.R), 255, "blur must spread the speckle")
}
