package segment

import (
	"math"

	"github.com/ironsheep/region-compress/internal/imaging"
)

// Default bandwidths applied when the zero value is configured. The
// color bandwidth is a radius in normalized (0-1) RGB space; the spatial
// bandwidth is a radius as a fraction of the larger image dimension.
const (
	defaultColorBandwidth   = 0.1
	defaultSpatialBandwidth = 0.05
)

// MeanShiftConfig configures a MeanShiftSegmenter.
type MeanShiftConfig struct {
	// ColorBandwidth bounds how far a pixel's color may sit from the
	// evolving region mode, in normalized RGB space. Zero value defaults
	// to defaultColorBandwidth.
	ColorBandwidth float64

	// SpatialBandwidth bounds how far a pixel may sit from the seed, as a
	// fraction of max(width, height). Zero value defaults to
	// defaultSpatialBandwidth.
	SpatialBandwidth float64

	// MaxRegionSize caps region cardinality. 0 means unlimited.
	MaxRegionSize int

	// Connectivity selects 4- or 8-connected expansion. Zero value
	// defaults to Connect8.
	Connectivity Connectivity
}

// MeanShiftSegmenter clusters pixels around a seed by density: a pixel
// joins the region when its color is close to the region's evolving mean
// color and its position is close to the seed, each distance scaled by
// its bandwidth.
//
// Compared to AdaptiveGrower the admission rule tracks the local color
// mode rather than the fixed seed color, so slow gradients accumulate
// into one region until they drift a full color bandwidth away from the
// running mean.
type MeanShiftSegmenter struct {
	grid         *imaging.Grid
	cfg          MeanShiftConfig
	spatialScale float64
}

// NewMeanShiftSegmenter creates a segmenter over the given grid.
// Zero-valued bandwidths and connectivity receive their defaults.
func NewMeanShiftSegmenter(grid *imaging.Grid, cfg MeanShiftConfig) *MeanShiftSegmenter {
	if cfg.ColorBandwidth <= 0 {
		cfg.ColorBandwidth = defaultColorBandwidth
	}
	if cfg.SpatialBandwidth <= 0 {
		cfg.SpatialBandwidth = defaultSpatialBandwidth
	}
	if cfg.Connectivity == 0 {
		cfg.Connectivity = Connect8
	}
	return &MeanShiftSegmenter{
		grid:         grid,
		cfg:          cfg,
		spatialScale: float64(max(grid.Width(), grid.Height())),
	}
}

// FindRegion grows a cluster from seed by breadth-first expansion and
// returns its points in admission order, seed first.
//
// A neighbor is admitted when
//
//	colorDist/colorBandwidth + spatialDist/spatialBandwidth < 1.0
//
// where colorDist is the Euclidean distance between the pixel's
// normalized color and the region's running mean color, and spatialDist
// is the pixel's offset from the seed normalized by the larger image
// dimension. Each admission folds the pixel into the mean by incremental
// average. FIFO expansion with a fixed neighbor order keeps the result
// deterministic for identical inputs.
func (m *MeanShiftSegmenter) FindRegion(seed Point, visited *Mask) Region {
	meanR, meanG, meanB := normColor(m.grid.At(seed.X, seed.Y))
	count := 1.0

	region := Region{seed}
	inRegion := map[Point]bool{seed: true}
	queue := []Point{seed}
	nbuf := make([]Point, 0, 8)

	for len(queue) > 0 && (m.cfg.MaxRegionSize <= 0 || len(region) < m.cfg.MaxRegionSize) {
		current := queue[0]
		queue = queue[1:]

		nbuf = nbuf[:0]
		for _, n := range neighbors(current, m.cfg.Connectivity, m.grid.Width(), m.grid.Height(), nbuf) {
			if inRegion[n] || visited.Visited(n) {
				continue
			}
			if m.cfg.MaxRegionSize > 0 && len(region) >= m.cfg.MaxRegionSize {
				break
			}

			r, g, b := normColor(m.grid.At(n.X, n.Y))
			colorDist := math.Sqrt((r-meanR)*(r-meanR) + (g-meanG)*(g-meanG) + (b-meanB)*(b-meanB))

			dx := float64(n.X-seed.X) / m.spatialScale
			dy := float64(n.Y-seed.Y) / m.spatialScale
			spatialDist := math.Sqrt(dx*dx + dy*dy)

			if colorDist/m.cfg.ColorBandwidth+spatialDist/m.cfg.SpatialBandwidth >= 1.0 {
				continue
			}

			region = append(region, n)
			inRegion[n] = true
			queue = append(queue, n)

			// Fold the new member into the running mean.
			meanR = (meanR*count + r) / (count + 1)
			meanG = (meanG*count + g) / (count + 1)
			meanB = (meanB*count + b) / (count + 1)
			count++
		}
	}

	return region
}

func normColor(c imaging.Color) (r, g, b float64) {
	return float64(c.R) / 255.0, float64(c.G) / 255.0, float64(c.B) / 255.0
}
