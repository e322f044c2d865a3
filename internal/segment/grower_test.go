package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/region-compress/internal/imaging"
)

// solidGrid builds a grid filled with a single color.
func solidGrid(t *testing.T, width, height int, c imaging.Color) *imaging.Grid {
	t.Helper()
	g, err := imaging.NewGrid(width, height)
	require.NoError(t, err)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.Set(x, y, c)
		}
	}
	return g
}

// gridFromRows builds a grid from a row-major color matrix.
func gridFromRows(t *testing.T, rows [][]imaging.Color) *imaging.Grid {
	t.Helper()
	g, err := imaging.NewGrid(len(rows[0]), len(rows))
	require.NoError(t, err)
	for y, row := range rows {
		for x, c := range row {
			g.Set(x, y, c)
		}
	}
	return g
}

// assertRegionContract checks the shared grower guarantees: non-empty,
// seed first, no duplicates, no visited points, within the cap.
func assertRegionContract(t *testing.T, region Region, seed Point, visited *Mask, maxSize int) {
	t.Helper()
	require.NotEmpty(t, region)
	assert.Equal(t, seed, region[0], "seed must come first")
	if maxSize > 0 {
		assert.LessOrEqual(t, len(region), maxSize)
	}
	seen := make(map[Point]bool, len(region))
	for _, p := range region {
		assert.False(t, seen[p], "duplicate point %v", p)
		assert.False(t, visited.Visited(p), "claimed visited point %v", p)
		seen[p] = true
	}
}

func TestMaskVisitedAndMark(t *testing.T) {
	m := NewMask(3, 2)
	p := Point{X: 1, Y: 1}

	assert.False(t, m.Visited(p))
	m.Mark(p)
	assert.True(t, m.Visited(p))

	// All other cells stay untouched.
	assert.False(t, m.Visited(Point{X: 0, Y: 0}))
	assert.False(t, m.Visited(Point{X: 2, Y: 1}))
}

func TestMaskOutOfBoundsIsNeverAvailable(t *testing.T) {
	m := NewMask(2, 2)
	outside := []Point{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 2, Y: 0}, {X: 0, Y: 2}}
	for _, p := range outside {
		assert.True(t, m.Visited(p), "out-of-bounds %v must read as visited", p)
		m.Mark(p) // must not panic or corrupt anything
	}
	assert.False(t, m.Visited(Point{X: 0, Y: 0}))
}

func TestNeighborsConnectivity(t *testing.T) {
	center := Point{X: 1, Y: 1}

	n4 := neighbors(center, Connect4, 3, 3, nil)
	assert.Len(t, n4, 4)

	n8 := neighbors(center, Connect8, 3, 3, nil)
	assert.Len(t, n8, 8)
}

func TestNeighborsClippedAtCorner(t *testing.T) {
	corner := Point{X: 0, Y: 0}

	n4 := neighbors(corner, Connect4, 3, 3, nil)
	assert.ElementsMatch(t, []Point{{X: 0, Y: 1}, {X: 1, Y: 0}}, n4)

	n8 := neighbors(corner, Connect8, 3, 3, nil)
	assert.Len(t, n8, 3)
}

func TestNeighborsDeterministicOrder(t *testing.T) {
	center := Point{X: 2, Y: 2}
	first := neighbors(center, Connect8, 5, 5, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, neighbors(center, Connect8, 5, 5, nil))
	}
}
