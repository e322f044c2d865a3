// Package segment implements the region-growth strategies behind
// region-based image compression.
//
// Two strategies satisfy the shared Grower contract:
//
//   - AdaptiveGrower: priority-queue greedy expansion from a seed with
//     locally adaptive similarity thresholds and a per-run similarity
//     cache. Acceptance is always judged against the seed color, so a
//     region stays anchored to where it started.
//
//   - MeanShiftSegmenter: bandwidth-parameterized density clustering
//     around a seed. Admission tracks the region's evolving mean color
//     instead of the seed color, trading anchor stability for better
//     handling of slow gradients.
//
// # Contract
//
// Given a seed and a read-only visited mask, FindRegion returns a
// non-empty ordered point sequence (seed first) containing no visited
// point and no duplicates, bounded by the configured maximum region size
// (0 = unlimited). Identical seed, mask, and grid content always produce
// an identical sequence; the orchestrator's fixed raster sweep plus this
// guarantee makes whole-image segmentation deterministic.
//
// The strategies are greedy and seed-order dependent: they do not search
// for a globally minimal segmentation, trading optimality for a single
// linear-ish pass.
//
// # Ownership
//
// The Mask is owned and mutated exclusively by the caller between
// FindRegion calls. Growers never mark it. A grower instance (and its
// similarity cache) is scoped to one compression run over one image.
package segment
