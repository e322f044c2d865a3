package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// Grid is a dense width x height buffer of Colors addressed by (x, y).
//
// The grid exclusively owns its pixel buffer for its full lifetime; other
// components only read and write through At and Set.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner, X
// increasing rightward and Y increasing downward.
//
// # Out-of-bounds Access
//
// Region growth and neighbor enumeration routinely probe coordinates at
// grid edges, so out-of-bounds reads return black rather than failing and
// out-of-bounds writes are silent no-ops.
type Grid struct {
	width  int
	height int
	pixels []Color
}

// NewGrid creates an all-black grid of the given dimensions.
//
// Non-positive dimensions are a fatal configuration error: an error is
// returned and no partial grid is created.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d: both must be positive", width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		pixels: make([]Color, width*height),
	}, nil
}

// FromImage converts a decoded image into a Grid, discarding alpha.
// 16-bit channels are scaled down to 8 bits.
func FromImage(img image.Image) *Grid {
	bounds := img.Bounds()
	g := &Grid{
		width:  bounds.Dx(),
		height: bounds.Dy(),
		pixels: make([]Color, bounds.Dx()*bounds.Dy()),
	}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, gr, b, _ := img.At(x, y).RGBA()
			g.pixels[i] = Color{R: uint8(r >> 8), G: uint8(gr >> 8), B: uint8(b >> 8)}
			i++
		}
	}
	return g
}

// Width returns the grid width in pixels.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in pixels.
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (x, y) addresses a pixel inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the color at (x, y), or black for out-of-bounds coordinates.
func (g *Grid) At(x, y int) Color {
	if !g.InBounds(x, y) {
		return Color{}
	}
	return g.pixels[y*g.width+x]
}

// Set writes the color at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, c Color) {
	if !g.InBounds(x, y) {
		return
	}
	g.pixels[y*g.width+x] = c
}

// Image renders the grid as a standard library image for encoding.
func (g *Grid) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, g.width, g.height))
	i := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			c := g.pixels[i]
			img.SetNRGBA(x, y, toNRGBA(c))
			i++
		}
	}
	return img
}

func toNRGBA(c Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	pixels := make([]Color, len(g.pixels))
	copy(pixels, g.pixels)
	return &Grid{width: g.width, height: g.height, pixels: pixels}
}
