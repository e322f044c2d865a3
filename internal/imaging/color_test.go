package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarityIdentity(t *testing.T) {
	colors := []Color{
		{},
		{R: 255, G: 255, B: 255},
		{R: 12, G: 200, B: 99},
		{R: 255},
	}
	for _, c := range colors {
		assert.Equal(t, 1.0, Similarity(c, c), "similarity(%v, %v)", c, c)
	}
}

func TestSimilaritySymmetry(t *testing.T) {
	pairs := [][2]Color{
		{{}, {R: 255, G: 255, B: 255}},
		{{R: 10, G: 20, B: 30}, {R: 30, G: 20, B: 10}},
		{{R: 1}, {B: 1}},
		{{R: 200, G: 100}, {R: 100, G: 200, B: 55}},
	}
	for _, p := range pairs {
		assert.Equal(t, Similarity(p[0], p[1]), Similarity(p[1], p[0]))
	}
}

func TestSimilarityExtremes(t *testing.T) {
	blackWhite := Similarity(Color{}, Color{R: 255, G: 255, B: 255})
	assert.InDelta(t, 0.0, blackWhite, 1e-12, "black vs white should be maximally different")

	// A one-step channel difference stays very close to 1.
	near := Similarity(Color{R: 100, G: 100, B: 100}, Color{R: 101, G: 100, B: 100})
	assert.Greater(t, near, 0.997)
	assert.Less(t, near, 1.0)
}

func TestDistancePlain(t *testing.T) {
	// Black to white on normalized channels: sqrt(3).
	d := Distance(Color{}, Color{R: 255, G: 255, B: 255}, false)
	assert.InDelta(t, 1.7320508, d, 1e-6)

	assert.Equal(t, 0.0, Distance(Color{R: 9, G: 9, B: 9}, Color{R: 9, G: 9, B: 9}, false))
}

func TestDistancePerceptual(t *testing.T) {
	red := Color{R: 255}
	green := Color{G: 255}
	blue := Color{B: 255}
	black := Color{}

	// Perceptual weighting makes a full-green difference larger than
	// a full-red one, and full-blue the smallest.
	dg := Distance(black, green, true)
	dr := Distance(black, red, true)
	db := Distance(black, blue, true)
	assert.Greater(t, dg, dr)
	assert.Greater(t, dr, db)

	// Symmetric like the plain variant.
	assert.Equal(t, Distance(red, green, true), Distance(green, red, true))
}

func TestColorLess(t *testing.T) {
	assert.True(t, Color{R: 1}.Less(Color{R: 2}))
	assert.True(t, Color{R: 1, G: 1}.Less(Color{R: 1, G: 2}))
	assert.True(t, Color{R: 1, G: 1, B: 1}.Less(Color{R: 1, G: 1, B: 2}))
	assert.False(t, Color{R: 2}.Less(Color{R: 1}))
	assert.False(t, Color{R: 1}.Less(Color{R: 1}))
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#000000", Color{}.Hex())
	assert.Equal(t, "#ffffff", Color{R: 255, G: 255, B: 255}.Hex())
	assert.Equal(t, "#ff8040", Color{R: 255, G: 128, B: 64}.Hex())
}

func TestAverage(t *testing.T) {
	assert.Equal(t, Color{}, Average(nil))

	solid := Color{R: 40, G: 80, B: 120}
	assert.Equal(t, solid, Average([]Color{solid, solid, solid}))

	avg := Average([]Color{{R: 0, G: 100, B: 200}, {R: 100, G: 200, B: 0}})
	assert.Equal(t, Color{R: 50, G: 150, B: 100}, avg)
}

func TestVarianceInRegion(t *testing.T) {
	assert.Equal(t, 0.0, VarianceInRegion(nil))

	flat := []Color{{R: 7, G: 7, B: 7}, {R: 7, G: 7, B: 7}, {R: 7, G: 7, B: 7}}
	assert.Equal(t, 0.0, VarianceInRegion(flat))

	// Half black, half white: per-channel population variance is
	// (255/2)^2, so the normalized value is exactly 0.25.
	extreme := []Color{{}, {R: 255, G: 255, B: 255}}
	assert.InDelta(t, 0.25, VarianceInRegion(extreme), 1e-9)

	mixed := VarianceInRegion([]Color{{}, {R: 128, G: 128, B: 128}})
	require.Greater(t, mixed, 0.0)
	require.Less(t, mixed, 1.0)
}
