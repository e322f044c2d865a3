package segment

import (
	"github.com/ironsheep/region-compress/internal/imaging"
)

// colorPair is an unordered pair of colors canonicalized so that the
// lexicographically smaller color comes first. Lookup order therefore
// never causes a cache miss.
type colorPair struct {
	lo, hi imaging.Color
}

func makeColorPair(a, b imaging.Color) colorPair {
	if b.Less(a) {
		a, b = b, a
	}
	return colorPair{lo: a, hi: b}
}

// similarityCache memoizes color similarity values for one grower
// instance. Photographic content repeats the same color pairs across
// overlapping neighborhoods, so the cache amortizes the metric cost.
//
// The cache is scoped to a single compression run over a single image
// and must never be shared across runs: a process-wide cache would leak
// one image's values into the next.
type similarityCache struct {
	values map[colorPair]float64
}

func newSimilarityCache() *similarityCache {
	return &similarityCache{values: make(map[colorPair]float64)}
}

// similarity returns the memoized similarity of the pair, computing and
// storing it on first sight.
func (c *similarityCache) similarity(a, b imaging.Color) float64 {
	key := makeColorPair(a, b)
	if v, ok := c.values[key]; ok {
		return v
	}
	v := imaging.Similarity(a, b)
	c.values[key] = v
	return v
}
