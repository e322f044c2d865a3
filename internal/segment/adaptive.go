package segment

import (
	"container/heap"
	"math"

	"github.com/ironsheep/region-compress/internal/imaging"
)

// defaultSampleRadius is the window radius used when computing the local
// adaptive threshold around a point.
const defaultSampleRadius = 3

// exploreGate relaxes the acceptance threshold for frontier admission so
// gradient regions keep being explored: a neighbor only needs 80% of the
// threshold to enter the frontier, while final acceptance re-applies the
// full threshold.
const exploreGate = 0.8

// AdaptiveConfig configures an AdaptiveGrower.
type AdaptiveConfig struct {
	// Threshold is the base similarity a candidate must reach to join a
	// region. Expected in [0,1]; validated by the caller.
	Threshold float64

	// MaxRegionSize caps region cardinality. 0 means unlimited.
	MaxRegionSize int

	// Adaptive enables locally adaptive thresholds derived from window
	// variance. When false the fixed Threshold is used everywhere.
	Adaptive bool

	// Connectivity selects 4- or 8-connected growth. Zero value defaults
	// to Connect8.
	Connectivity Connectivity

	// SampleRadius is the adaptive-threshold window radius. Zero value
	// defaults to defaultSampleRadius.
	SampleRadius int
}

// AdaptiveGrower grows regions by greedy best-first expansion over a
// similarity-ordered frontier, with optionally adaptive thresholds that
// tighten near textured areas and relax in flat ones.
//
// A grower instance carries a similarity cache scoped to its own
// lifetime (one compression run over one image); do not reuse an
// instance across images.
type AdaptiveGrower struct {
	grid  *imaging.Grid
	cfg   AdaptiveConfig
	cache *similarityCache
}

// NewAdaptiveGrower creates a grower over the given grid. Zero-valued
// Connectivity and SampleRadius fields receive their defaults.
func NewAdaptiveGrower(grid *imaging.Grid, cfg AdaptiveConfig) *AdaptiveGrower {
	if cfg.Connectivity == 0 {
		cfg.Connectivity = Connect8
	}
	if cfg.SampleRadius == 0 {
		cfg.SampleRadius = defaultSampleRadius
	}
	return &AdaptiveGrower{
		grid:  grid,
		cfg:   cfg,
		cache: newSimilarityCache(),
	}
}

// FindRegion grows a region from seed and returns its points in growth
// order, seed first.
//
// # Algorithm
//
//  1. Score the seed's unvisited neighbors by similarity to the seed
//     color and push them onto a max-priority frontier (priority key
//     1 - similarity; FIFO among exact ties).
//  2. Pop the most similar candidate. Accept it if its similarity to the
//     seed meets the working threshold: in adaptive mode the stricter
//     (minimum) of the seed-side and candidate-side local thresholds,
//     otherwise the fixed base threshold.
//  3. On acceptance, score each unvisited, not-yet-included neighbor by
//     the better of its similarity to the seed and to the accepted
//     candidate (either anchor can justify continued exploration) and
//     enqueue it if that reaches 80% of the threshold.
//  4. Stop when the frontier empties or the size cap is reached.
func (a *AdaptiveGrower) FindRegion(seed Point, visited *Mask) Region {
	seedColor := a.grid.At(seed.X, seed.Y)

	region := Region{seed}
	inRegion := map[Point]bool{seed: true}

	f := &frontier{}
	heap.Init(f)
	nbuf := make([]Point, 0, 8)

	for _, n := range neighbors(seed, a.cfg.Connectivity, a.grid.Width(), a.grid.Height(), nbuf) {
		if visited.Visited(n) {
			continue
		}
		sim := a.cache.similarity(seedColor, a.grid.At(n.X, n.Y))
		f.push(n, sim)
	}

	// Seed-side threshold anchors the whole region.
	baseThreshold := a.cfg.Threshold
	if a.cfg.Adaptive {
		baseThreshold = a.localThreshold(seed)
	}

	for f.Len() > 0 && (a.cfg.MaxRegionSize <= 0 || len(region) < a.cfg.MaxRegionSize) {
		current := heap.Pop(f).(frontierItem).point
		if inRegion[current] || visited.Visited(current) {
			continue
		}

		currentColor := a.grid.At(current.X, current.Y)
		simToSeed := a.cache.similarity(seedColor, currentColor)

		threshold := a.cfg.Threshold
		if a.cfg.Adaptive {
			// Stricter of the two anchors: growth only relaxes where both
			// the seed's and the candidate's neighborhoods are flat.
			threshold = math.Min(baseThreshold, a.localThreshold(current))
		}

		if simToSeed < threshold {
			continue
		}

		region = append(region, current)
		inRegion[current] = true

		nbuf = nbuf[:0]
		for _, n := range neighbors(current, a.cfg.Connectivity, a.grid.Width(), a.grid.Height(), nbuf) {
			if inRegion[n] || visited.Visited(n) {
				continue
			}
			nc := a.grid.At(n.X, n.Y)
			best := math.Max(
				a.cache.similarity(seedColor, nc),
				a.cache.similarity(currentColor, nc),
			)
			if best >= threshold*exploreGate {
				f.push(n, best)
			}
		}
	}

	return region
}

// localThreshold derives a per-location threshold from the color variance
// of the (2*radius+1)^2 window around p, clipped to grid bounds.
//
// Flat, low-variance neighborhoods relax the base threshold upward by up
// to 30% of the remaining headroom toward 1.0; textured neighborhoods
// stay near the base.
func (a *AdaptiveGrower) localThreshold(p Point) float64 {
	r := a.cfg.SampleRadius
	xMin, xMax := max(0, p.X-r), min(a.grid.Width()-1, p.X+r)
	yMin, yMax := max(0, p.Y-r), min(a.grid.Height()-1, p.Y+r)

	window := make([]imaging.Color, 0, (2*r+1)*(2*r+1))
	for y := yMin; y <= yMax; y++ {
		for x := xMin; x <= xMax; x++ {
			window = append(window, a.grid.At(x, y))
		}
	}

	varianceFactor := math.Min(1.0, imaging.VarianceInRegion(window)*2.0)
	return a.cfg.Threshold + (1.0-a.cfg.Threshold)*(1.0-varianceFactor)*0.3
}

// frontierItem is one candidate in the growth frontier. Priority is
// 1 - similarity so that the most similar candidate pops first; seq
// breaks exact ties in insertion order to keep growth deterministic.
type frontierItem struct {
	priority float64
	seq      int
	point    Point
}

type frontier struct {
	items []frontierItem
	next  int
}

func (f *frontier) Len() int { return len(f.items) }

func (f *frontier) Less(i, j int) bool {
	if f.items[i].priority != f.items[j].priority {
		return f.items[i].priority < f.items[j].priority
	}
	return f.items[i].seq < f.items[j].seq
}

func (f *frontier) Swap(i, j int) { f.items[i], f.items[j] = f.items[j], f.items[i] }

func (f *frontier) Push(x any) { f.items = append(f.items, x.(frontierItem)) }

func (f *frontier) Pop() any {
	old := f.items
	n := len(old)
	item := old[n-1]
	f.items = old[:n-1]
	return item
}

// push enqueues a candidate scored by similarity.
func (f *frontier) push(p Point, similarity float64) {
	heap.Push(f, frontierItem{
		priority: 1.0 - similarity,
		seq:      f.next,
		point:    p,
	})
	f.next++
}
