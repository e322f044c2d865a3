package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ironsheep/region-compress/internal/imaging"
)

func TestMeanShiftDefaults(t *testing.T) {
	s := NewMeanShiftSegmenter(solidGrid(t, 4, 4, black), MeanShiftConfig{})
	assert.Equal(t, defaultColorBandwidth, s.cfg.ColorBandwidth)
	assert.Equal(t, defaultSpatialBandwidth, s.cfg.SpatialBandwidth)
	assert.Equal(t, Connect8, s.cfg.Connectivity)
	assert.Equal(t, 4.0, s.spatialScale)
}

func TestMeanShiftSolidColorWithinReach(t *testing.T) {
	g := solidGrid(t, 4, 4, imaging.Color{R: 40, G: 80, B: 120})
	s := NewMeanShiftSegmenter(g, MeanShiftConfig{
		ColorBandwidth:   0.1,
		SpatialBandwidth: 2.0, // farthest corner is ~1.06 scale units away
	})

	mask := NewMask(4, 4)
	seed := Point{X: 0, Y: 0}
	region := s.FindRegion(seed, mask)

	assertRegionContract(t, region, seed, mask, 0)
	assert.Len(t, region, 16)
}

func TestMeanShiftColorBandwidthExcludes(t *testing.T) {
	// Black seed, white everywhere else: color distance sqrt(3) dwarfs
	// any bandwidth, so the seed stays alone.
	g := solidGrid(t, 3, 3, white)
	g.Set(1, 1, black)

	s := NewMeanShiftSegmenter(g, MeanShiftConfig{ColorBandwidth: 0.5, SpatialBandwidth: 5.0})
	region := s.FindRegion(Point{X: 1, Y: 1}, NewMask(3, 3))
	assert.Equal(t, Region{{X: 1, Y: 1}}, region)
}

func TestMeanShiftSpatialBandwidthLimitsReach(t *testing.T) {
	// One flat 20x1 row. With spatial bandwidth 0.1 of the width, only
	// pixels strictly closer than 2 columns from the seed qualify.
	g := solidGrid(t, 20, 1, imaging.Color{R: 128, G: 128, B: 128})
	s := NewMeanShiftSegmenter(g, MeanShiftConfig{ColorBandwidth: 0.5, SpatialBandwidth: 0.1})

	region := s.FindRegion(Point{X: 0, Y: 0}, NewMask(20, 1))
	assert.Equal(t, Region{{X: 0, Y: 0}, {X: 1, Y: 0}}, region)
}

func TestMeanShiftFollowsGentleGradient(t *testing.T) {
	// A shallow gray ramp: each step is far inside the color bandwidth,
	// and the running mean keeps the whole ramp admissible.
	row := make([]imaging.Color, 6)
	for x := range row {
		v := uint8(100 + 2*x)
		row[x] = imaging.Color{R: v, G: v, B: v}
	}
	g := gridFromRows(t, [][]imaging.Color{row})

	s := NewMeanShiftSegmenter(g, MeanShiftConfig{ColorBandwidth: 0.1, SpatialBandwidth: 2.0})
	region := s.FindRegion(Point{X: 0, Y: 0}, NewMask(6, 1))
	assert.Len(t, region, 6)
}

func TestMeanShiftRespectsVisitedAndCap(t *testing.T) {
	g := solidGrid(t, 6, 6, imaging.Color{R: 10, G: 200, B: 10})
	s := NewMeanShiftSegmenter(g, MeanShiftConfig{
		ColorBandwidth:   0.2,
		SpatialBandwidth: 3.0,
		MaxRegionSize:    9,
	})

	mask := NewMask(6, 6)
	for y := 0; y < 6; y++ {
		mask.Mark(Point{X: 5, Y: y})
	}

	seed := Point{X: 2, Y: 2}
	region := s.FindRegion(seed, mask)

	assertRegionContract(t, region, seed, mask, 9)
	assert.Len(t, region, 9)
	for _, p := range region {
		assert.Less(t, p.X, 5, "point %v landed on a visited column", p)
	}
}

func TestMeanShiftDeterministic(t *testing.T) {
	rows := make([][]imaging.Color, 7)
	for y := range rows {
		rows[y] = make([]imaging.Color, 7)
		for x := range rows[y] {
			rows[y][x] = imaging.Color{
				R: uint8(120 + x*3),
				G: uint8(120 + y*3),
				B: 100,
			}
		}
	}
	g := gridFromRows(t, rows)

	cfg := MeanShiftConfig{ColorBandwidth: 0.15, SpatialBandwidth: 0.6}
	seed := Point{X: 3, Y: 3}

	first := NewMeanShiftSegmenter(g, cfg).FindRegion(seed, NewMask(7, 7))
	for i := 0; i < 5; i++ {
		again := NewMeanShiftSegmenter(g, cfg).FindRegion(seed, NewMask(7, 7))
		assert.Equal(t, first, again, "run %d diverged", i)
	}
}
