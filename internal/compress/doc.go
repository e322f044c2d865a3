// Package compress orchestrates region-based lossy image compression.
//
// The Compressor sweeps the pixel grid in raster order (row-major,
// increasing Y then X), hands every unvisited pixel as a seed to the
// configured growth strategy, flattens each returned region to its
// average color, and finally re-encodes the painted result.
//
// # Lifecycle
//
// A Compressor walks a strict one-way state machine:
//
//	Idle -> Loaded -> Compressing -> Compressed -> Saved
//
// Load (or LoadGrid) moves Idle to Loaded, Compress requires Loaded and
// ends at Compressed, Save requires Compressed and ends at Saved. Calls
// out of order fail with ErrWrongState. One instance handles exactly one
// image; create a new Compressor per run.
//
// # Determinism
//
// The raster sweep order is fixed and both growth strategies are
// deterministic, so identical inputs and parameters always yield an
// identical partition and byte-identical output pixels.
//
// # Concurrency
//
// Everything runs single-threaded and synchronously. Progress callbacks
// are invoked inline on the compressing goroutine, throttled to the
// configured interval with one guaranteed final call at 1.0. There is no
// cancellation: a long sweep only stops with the process.
package compress
