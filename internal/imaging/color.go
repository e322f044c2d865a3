package imaging

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/stat"
)

// maxSquaredDistance is the largest possible squared Euclidean distance
// in 8-bit RGB space: 3 * 255 * 255. Dividing by its exact square root
// keeps similarity inside [0, 1] without any clamping; pure black vs
// pure white lands on exactly 0.
const maxSquaredDistance = 3 * 255 * 255

// Color represents an RGB color with 8-bit components.
//
// Color is a comparable value type: it can be used directly as a map key,
// which the segmentation engine relies on for similarity caching.
type Color struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Hex returns the color in "#rrggbb" notation.
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// Less reports whether c orders before o under channel-wise lexicographic
// comparison (R, then G, then B). It provides the canonical ordering used
// to key unordered color pairs.
func (c Color) Less(o Color) bool {
	if c.R != o.R {
		return c.R < o.R
	}
	if c.G != o.G {
		return c.G < o.G
	}
	return c.B < o.B
}

// colorful converts to a go-colorful color with 0-1 channels.
func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// String returns a readable representation, e.g. "rgb(255,128,0)".
func (c Color) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Similarity computes how alike two colors are on a 0-to-1 scale.
//
// The value is 1 - d/dMax where d is the plain Euclidean distance in
// 8-bit RGB space and dMax the exact maximum sqrt(3*255*255). Identical
// colors yield exactly 1.0 and maximally different colors (pure black vs
// pure white) exactly 0.0, so no clamping is applied or needed.
//
// Similarity is pure, deterministic, and symmetric in its arguments.
func Similarity(c1, c2 Color) float64 {
	dr := float64(c1.R) - float64(c2.R)
	dg := float64(c1.G) - float64(c2.G)
	db := float64(c1.B) - float64(c2.B)
	return 1.0 - math.Sqrt((dr*dr+dg*dg+db*db)/maxSquaredDistance)
}

// Distance computes the distance between two colors on normalized (0-1)
// channels.
//
// When perceptual is true the channel differences are weighted by the
// ITU-R BT.601 luminance coefficients (red 0.299, green 0.587, blue
// 0.114), approximating human sensitivity: most sensitive to green,
// least to blue. Otherwise the plain Euclidean distance is returned.
func Distance(c1, c2 Color, perceptual bool) float64 {
	dr := (float64(c1.R) - float64(c2.R)) / 255.0
	dg := (float64(c1.G) - float64(c2.G)) / 255.0
	db := (float64(c1.B) - float64(c2.B)) / 255.0

	if perceptual {
		return math.Sqrt(0.299*dr*dr + 0.587*dg*dg + 0.114*db*db)
	}
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// DistanceLab computes the perceptually uniform CIE-Lab distance between
// two colors. It is used for ordering palette entries; the segmentation
// thresholds themselves use Similarity.
func DistanceLab(c1, c2 Color) float64 {
	return c1.colorful().DistanceLab(c2.colorful())
}

// Average returns the arithmetic per-channel mean of a set of colors.
// An empty input yields black.
func Average(colors []Color) Color {
	if len(colors) == 0 {
		return Color{}
	}
	var sr, sg, sb uint64
	for _, c := range colors {
		sr += uint64(c.R)
		sg += uint64(c.G)
		sb += uint64(c.B)
	}
	n := uint64(len(colors))
	return Color{
		R: uint8(sr / n),
		G: uint8(sg / n),
		B: uint8(sb / n),
	}
}

// VarianceInRegion returns the color variance of a pixel sample,
// normalized to 0-1 by the maximum possible channel variance.
//
// The value is the sum of the per-channel population variances divided by
// 3*255*255. Flat single-color samples score 0; a 50/50 mix of black and
// white scores 0.25, the most any sample of bounded channels can reach.
// The adaptive region grower uses this to judge how textured a
// neighborhood is.
func VarianceInRegion(colors []Color) float64 {
	if len(colors) == 0 {
		return 0
	}

	rs := make([]float64, len(colors))
	gs := make([]float64, len(colors))
	bs := make([]float64, len(colors))
	for i, c := range colors {
		rs[i] = float64(c.R)
		gs[i] = float64(c.G)
		bs[i] = float64(c.B)
	}

	variance := stat.PopVariance(rs, nil) + stat.PopVariance(gs, nil) + stat.PopVariance(bs, nil)
	return variance / (3.0 * 255.0 * 255.0)
}
