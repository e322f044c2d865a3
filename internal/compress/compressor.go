package compress

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ironsheep/region-compress/internal/imaging"
	"github.com/ironsheep/region-compress/internal/segment"
)

// State is a stage in a Compressor's lifecycle. Transitions are strictly
// ordered with no way back: Idle -> Loaded -> Compressing -> Compressed
// -> Saved.
type State int

const (
	StateIdle State = iota
	StateLoaded
	StateCompressing
	StateCompressed
	StateSaved
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoaded:
		return "loaded"
	case StateCompressing:
		return "compressing"
	case StateCompressed:
		return "compressed"
	case StateSaved:
		return "saved"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Algorithm selects the region-growth strategy.
type Algorithm string

const (
	// AlgorithmAdaptive is priority-queue greedy growth with adaptive
	// thresholds (the default).
	AlgorithmAdaptive Algorithm = "adaptive"
	// AlgorithmDensity is bandwidth-based mean-shift clustering.
	AlgorithmDensity Algorithm = "density"
)

// ParseAlgorithm maps a user-facing name onto an Algorithm.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch Algorithm(name) {
	case AlgorithmAdaptive, AlgorithmDensity:
		return Algorithm(name), nil
	default:
		return "", fmt.Errorf("unknown algorithm %q (want %q or %q)", name, AlgorithmAdaptive, AlgorithmDensity)
	}
}

// ErrWrongState is returned when an operation is invoked outside its
// required lifecycle state.
var ErrWrongState = errors.New("operation not valid in current state")

// ProgressFunc receives throttled progress updates during compression.
//
// The fraction is in [0, 1] and stats carries named numeric statistics
// (see Stats.Summary). The callback runs inline on the compressing
// goroutine; a slow callback directly delays the sweep. It may be called
// zero or many times but always receives one final call at 1.0.
type ProgressFunc func(fraction float64, stats map[string]float64)

// Options configures a Compressor. Use DefaultOptions as the starting
// point; the zero value is not a valid configuration (a zero threshold
// is legal and means "accept everything").
type Options struct {
	// Threshold is the base color similarity in [0, 1] a pixel must reach
	// to join a region. Higher means stricter matching and less
	// compression.
	Threshold float64

	// MaxRegionSize caps region cardinality; 0 means unbounded.
	MaxRegionSize int

	// Algorithm picks the growth strategy.
	Algorithm Algorithm

	// AdaptiveMode enables locally adaptive thresholds (adaptive
	// algorithm only).
	AdaptiveMode bool

	// Connectivity selects 4- or 8-connected growth.
	Connectivity segment.Connectivity

	// SmoothRadius applies a Gaussian pre-filter of this radius before
	// segmentation. 0 disables smoothing.
	SmoothRadius float64

	// Progress, when non-nil, receives throttled progress updates.
	Progress ProgressFunc

	// ProgressInterval throttles Progress to at most one call per
	// interval. Zero value defaults to 500ms.
	ProgressInterval time.Duration
}

// DefaultOptions returns the documented defaults: threshold 0.9,
// unbounded regions, adaptive algorithm with adaptive mode on,
// 8-connectivity, no smoothing, 500ms progress throttle.
func DefaultOptions() Options {
	return Options{
		Threshold:        0.9,
		Algorithm:        AlgorithmAdaptive,
		AdaptiveMode:     true,
		Connectivity:     segment.Connect8,
		ProgressInterval: 500 * time.Millisecond,
	}
}

// Compressor partitions an image into contiguous regions of similar
// color and rebuilds it with each region flattened to its average color.
//
// One Compressor instance processes exactly one image through the
// Idle -> Loaded -> Compressing -> Compressed -> Saved lifecycle and is
// not safe for concurrent use: the visited mask and the grower's
// similarity cache are exclusively owned by the single active run.
type Compressor struct {
	opts  Options
	state State

	grid   *imaging.Grid
	source string

	regions []segment.Region
	colors  []imaging.Color
	stats   *Stats

	lastProgress time.Time
}

// New creates an idle Compressor after validating the options.
func New(opts Options) (*Compressor, error) {
	if opts.Threshold < 0 || opts.Threshold > 1 {
		return nil, fmt.Errorf("similarity threshold %v out of range [0, 1]", opts.Threshold)
	}
	if opts.MaxRegionSize < 0 {
		return nil, fmt.Errorf("max region size %d must not be negative", opts.MaxRegionSize)
	}
	switch opts.Algorithm {
	case AlgorithmAdaptive, AlgorithmDensity:
	case "":
		opts.Algorithm = AlgorithmAdaptive
	default:
		return nil, fmt.Errorf("unknown algorithm %q", opts.Algorithm)
	}
	if opts.Connectivity == 0 {
		opts.Connectivity = segment.Connect8
	}
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = 500 * time.Millisecond
	}
	return &Compressor{
		opts:  opts,
		state: StateIdle,
		stats: NewStats(),
	}, nil
}

// State returns the current lifecycle state.
func (c *Compressor) State() State { return c.state }

// Stats returns the statistics of the current or most recent run.
func (c *Compressor) Stats() *Stats { return c.stats }

// Regions returns the regions produced by Compress, in sweep order.
func (c *Compressor) Regions() []segment.Region { return c.regions }

// Colors returns the average color of each region, aligned with Regions.
func (c *Compressor) Colors() []imaging.Color { return c.colors }

// Options returns the configuration this compressor was built with.
func (c *Compressor) Options() Options { return c.opts }

// Source returns the input path given to Load, if any.
func (c *Compressor) Source() string { return c.source }

// Load decodes the image at path and moves Idle -> Loaded. A decode
// failure is fatal for the run: the compressor stays Idle.
func (c *Compressor) Load(path string) error {
	if c.state != StateIdle {
		return fmt.Errorf("%w: Load requires %v, compressor is %v", ErrWrongState, StateIdle, c.state)
	}
	grid, err := imaging.Open(path)
	if err != nil {
		return err
	}
	c.source = path
	return c.adoptGrid(grid, path)
}

// LoadGrid adopts an already-decoded grid and moves Idle -> Loaded. It
// serves library callers that produce pixels without a file.
func (c *Compressor) LoadGrid(grid *imaging.Grid) error {
	if c.state != StateIdle {
		return fmt.Errorf("%w: LoadGrid requires %v, compressor is %v", ErrWrongState, StateIdle, c.state)
	}
	if grid == nil {
		return errors.New("nil grid")
	}
	return c.adoptGrid(grid, "")
}

func (c *Compressor) adoptGrid(grid *imaging.Grid, path string) error {
	if c.opts.SmoothRadius > 0 {
		grid = imaging.Smooth(grid, c.opts.SmoothRadius)
	}
	c.grid = grid
	c.state = StateLoaded
	slog.Info("image loaded",
		"run", c.stats.RunID,
		"path", path,
		"width", grid.Width(),
		"height", grid.Height(),
		"smooth_radius", c.opts.SmoothRadius,
	)
	return nil
}

// Compress sweeps the grid in raster order, growing one region per
// unvisited seed, and moves Loaded -> Compressed.
//
// For each seed the active grower returns an ordered region; its points
// are marked visited, averaged into a single color, and recorded. The
// partition invariant holds by construction: after the sweep every pixel
// belongs to exactly one region.
func (c *Compressor) Compress() error {
	if c.state != StateLoaded {
		return fmt.Errorf("%w: Compress requires %v, compressor is %v", ErrWrongState, StateLoaded, c.state)
	}
	c.state = StateCompressing

	width, height := c.grid.Width(), c.grid.Height()
	mask := segment.NewMask(width, height)
	grower := c.newGrower()

	c.stats.Start(width, height)
	slog.Info("compression started",
		"run", c.stats.RunID,
		"algorithm", string(c.opts.Algorithm),
		"threshold", c.opts.Threshold,
		"adaptive", c.opts.AdaptiveMode,
		"max_region_size", c.opts.MaxRegionSize,
	)
	c.reportProgress(false)

	colorBuf := make([]imaging.Color, 0, 256)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			seed := segment.Point{X: x, Y: y}
			if mask.Visited(seed) {
				continue
			}

			region := grower.FindRegion(seed, mask)
			if len(region) == 0 {
				continue
			}

			colorBuf = colorBuf[:0]
			for _, p := range region {
				colorBuf = append(colorBuf, c.grid.At(p.X, p.Y))
				mask.Mark(p)
			}

			c.regions = append(c.regions, region)
			c.colors = append(c.colors, imaging.Average(colorBuf))
			c.stats.AddRegion(len(region))

			if time.Since(c.lastProgress) >= c.opts.ProgressInterval {
				c.reportProgress(false)
			}
		}
	}

	c.stats.Finish()
	c.reportProgress(true)
	c.state = StateCompressed

	slog.Info("compression finished",
		"run", c.stats.RunID,
		"regions", c.stats.TotalRegions(),
		"ratio", c.stats.CompressionRatio(),
		"elapsed", c.stats.Elapsed(),
	)
	return nil
}

// newGrower builds the configured strategy over the loaded grid. A fresh
// grower (and therefore a fresh similarity cache) is created per run so
// nothing leaks between images.
func (c *Compressor) newGrower() segment.Grower {
	if c.opts.Algorithm == AlgorithmDensity {
		return segment.NewMeanShiftSegmenter(c.grid, segment.MeanShiftConfig{
			ColorBandwidth: 1.0 - c.opts.Threshold,
			MaxRegionSize:  c.opts.MaxRegionSize,
			Connectivity:   c.opts.Connectivity,
		})
	}
	return segment.NewAdaptiveGrower(c.grid, segment.AdaptiveConfig{
		Threshold:     c.opts.Threshold,
		MaxRegionSize: c.opts.MaxRegionSize,
		Adaptive:      c.opts.AdaptiveMode,
		Connectivity:  c.opts.Connectivity,
	})
}

// reportProgress invokes the progress callback inline. The final call
// (force) bypasses throttling so callers always observe 1.0.
func (c *Compressor) reportProgress(force bool) {
	c.lastProgress = time.Now()
	if c.opts.Progress == nil {
		return
	}
	summary := c.stats.Summary()
	fraction := summary["progress"]
	if force {
		fraction = 1.0
		summary["progress"] = 1.0
	}
	c.opts.Progress(fraction, summary)
}

// Rendered paints every region with its stored average color into a
// fresh grid of identical dimensions.
func (c *Compressor) Rendered() (*imaging.Grid, error) {
	if c.state < StateCompressed {
		return nil, fmt.Errorf("%w: no compressed data, compressor is %v", ErrWrongState, c.state)
	}
	out, err := imaging.NewGrid(c.grid.Width(), c.grid.Height())
	if err != nil {
		return nil, err
	}
	for i, region := range c.regions {
		for _, p := range region {
			out.Set(p.X, p.Y, c.colors[i])
		}
	}
	return out, nil
}

// Save renders the flattened image, encodes it to path (format chosen by
// extension), writes the sidecar report, and moves Compressed -> Saved.
// An encode failure is surfaced without retry; completed compression
// work is kept.
func (c *Compressor) Save(path string) error {
	if c.state != StateCompressed {
		return fmt.Errorf("%w: Save requires %v, compressor is %v", ErrWrongState, StateCompressed, c.state)
	}
	out, err := c.Rendered()
	if err != nil {
		return err
	}
	if err := imaging.Save(path, out); err != nil {
		return err
	}
	c.state = StateSaved

	if err := c.writeSidecar(path); err != nil {
		// The image itself saved fine; a failed sidecar is not fatal.
		slog.Warn("failed to write report sidecar", "run", c.stats.RunID, "error", err)
	}
	slog.Info("compressed image saved", "run", c.stats.RunID, "path", path)
	return nil
}
