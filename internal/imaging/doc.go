// Package imaging provides the pixel-level primitives for region-based
// image compression: the Grid pixel buffer, the color similarity and
// distance metrics, the file codec boundary, and palette extraction.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left
// corner: X increases rightward and Y increases downward.
//
// # Out-of-bounds Leniency
//
// Unlike most image APIs, Grid reads outside the buffer return black and
// writes are silently dropped. Region growth probes edge coordinates
// constantly and treating those probes as errors would push bounds checks
// into every hot loop of the segmentation engine.
//
// # Color Metrics
//
// Similarity maps Euclidean RGB distance onto a 0-to-1 scale where 1.0
// means identical. Distance offers both plain and perceptually weighted
// (ITU-R BT.601) variants. Both are pure functions, symmetric in their
// arguments.
//
// # Thread Safety
//
// Grid is not synchronized; the compression engine owns one grid per run
// and runs single-threaded. The metric functions are stateless and safe
// to call concurrently.
package imaging
