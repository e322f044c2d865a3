package segment

// Point represents a pixel coordinate in grid space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Region is an ordered sequence of points produced by one FindRegion
// call, in growth order with the seed first.
type Region []Point

// Connectivity selects which pixels count as neighbors of a point.
type Connectivity int

const (
	// Connect4 considers the four axis-aligned neighbors.
	Connect4 Connectivity = 4
	// Connect8 extends Connect4 with the four diagonal neighbors.
	Connect8 Connectivity = 8
)

// offsets4 and offsets8 are enumerated in a fixed order (N, S, W, E, then
// diagonals) so that growth is deterministic.
var (
	offsets4 = [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	offsets8 = [][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
)

// Grower finds a contiguous region of perceptually similar pixels
// starting from a seed point.
//
// Implementations must return a non-empty sequence that includes the
// seed, contains no point marked in the visited mask, never exceeds the
// configured maximum region size (0 = unlimited), and is identical for
// identical seed, mask, and grid content.
type Grower interface {
	FindRegion(seed Point, visited *Mask) Region
}

// Mask is a width x height visited grid. The segmentation orchestrator
// exclusively owns and mutates it between grower calls; growers receive
// it read-only and must not claim a marked point.
type Mask struct {
	width  int
	height int
	cells  []bool
}

// NewMask creates an all-unset mask of the given dimensions.
func NewMask(width, height int) *Mask {
	return &Mask{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// Visited reports whether p has been claimed by a previous region.
// Out-of-bounds points report true: they are never available for growth.
func (m *Mask) Visited(p Point) bool {
	if p.X < 0 || p.X >= m.width || p.Y < 0 || p.Y >= m.height {
		return true
	}
	return m.cells[p.Y*m.width+p.X]
}

// Mark claims p. Out-of-bounds points are ignored.
func (m *Mask) Mark(p Point) {
	if p.X < 0 || p.X >= m.width || p.Y < 0 || p.Y >= m.height {
		return
	}
	m.cells[p.Y*m.width+p.X] = true
}

// neighbors appends the in-bounds neighbors of p to buf and returns it.
// Passing a reused buffer avoids an allocation per visited pixel.
func neighbors(p Point, conn Connectivity, width, height int, buf []Point) []Point {
	offsets := offsets8
	if conn == Connect4 {
		offsets = offsets4
	}
	for _, d := range offsets {
		nx, ny := p.X+d[0], p.Y+d[1]
		if nx >= 0 && nx < width && ny >= 0 && ny < height {
			buf = append(buf, Point{X: nx, Y: ny})
		}
	}
	return buf
}
