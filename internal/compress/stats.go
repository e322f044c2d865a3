package compress

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// bytesPerPixel is the uncompressed RGB cost used for byte estimates.
const bytesPerPixel = 3

// Stats aggregates counters about one compression run.
//
// Lifecycle is Start at the first pixel, one AddRegion per completed
// region, Finish at sweep end; after Finish the values are read-only.
// Stats has no coupling to the growth strategy: it only ever sees region
// sizes.
type Stats struct {
	// RunID uniquely identifies this compression run in logs and reports.
	RunID string

	startTime time.Time
	endTime   time.Time

	totalPixels     int
	processedPixels int
	totalRegions    int

	regionSizes []float64
	largest     int
	smallest    int

	bytesOriginal   int64
	bytesCompressed int64
}

// NewStats creates an idle Stats with a fresh run identifier.
func NewStats() *Stats {
	return &Stats{RunID: uuid.NewString()}
}

// Start begins tracking a run over an image of the given dimensions.
func (s *Stats) Start(width, height int) {
	s.startTime = time.Now()
	s.totalPixels = width * height
	s.bytesOriginal = int64(s.totalPixels) * bytesPerPixel
}

// AddRegion records one completed region of the given pixel count.
func (s *Stats) AddRegion(size int) {
	s.regionSizes = append(s.regionSizes, float64(size))
	s.processedPixels += size
	s.totalRegions++
}

// Finish marks the run complete and freezes the final numbers.
func (s *Stats) Finish() {
	s.endTime = time.Now()
	if len(s.regionSizes) > 0 {
		s.largest = int(s.regionSizes[0])
		s.smallest = int(s.regionSizes[0])
		for _, sz := range s.regionSizes {
			if int(sz) > s.largest {
				s.largest = int(sz)
			}
			if int(sz) < s.smallest {
				s.smallest = int(sz)
			}
		}
	}
	// Estimate: 3 bytes per region color plus 4 bytes per member
	// coordinate pair, matching the archive wire format.
	s.bytesCompressed = int64(s.totalRegions)*3 + 4*int64(s.processedPixels)
}

// Elapsed returns how long the run has been going, or its final duration
// once finished.
func (s *Stats) Elapsed() time.Duration {
	if s.startTime.IsZero() {
		return 0
	}
	if s.endTime.IsZero() {
		return time.Since(s.startTime)
	}
	return s.endTime.Sub(s.startTime)
}

// Progress returns the processed-pixel fraction in [0, 1].
func (s *Stats) Progress() float64 {
	if s.totalPixels == 0 {
		return 0
	}
	return math.Min(1.0, float64(s.processedPixels)/float64(s.totalPixels))
}

// ProcessingRate returns the current throughput in pixels per second.
func (s *Stats) ProcessingRate() float64 {
	elapsed := s.Elapsed().Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(s.processedPixels) / elapsed
}

// TotalPixels returns the pixel count of the image being compressed.
func (s *Stats) TotalPixels() int { return s.totalPixels }

// ProcessedPixels returns how many pixels have been assigned to regions.
func (s *Stats) ProcessedPixels() int { return s.processedPixels }

// TotalRegions returns how many regions have been completed.
func (s *Stats) TotalRegions() int { return s.totalRegions }

// LargestRegion returns the size of the largest region. Valid after Finish.
func (s *Stats) LargestRegion() int { return s.largest }

// SmallestRegion returns the size of the smallest region. Valid after Finish.
func (s *Stats) SmallestRegion() int { return s.smallest }

// AverageRegionSize returns the mean region size in pixels.
func (s *Stats) AverageRegionSize() float64 {
	if len(s.regionSizes) == 0 {
		return 0
	}
	return stat.Mean(s.regionSizes, nil)
}

// MedianRegionSize returns the median region size in pixels.
func (s *Stats) MedianRegionSize() float64 {
	if len(s.regionSizes) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.regionSizes))
	copy(sorted, s.regionSizes)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// CompressionRatio returns pixels per region: how many source pixels the
// average flat region replaces.
func (s *Stats) CompressionRatio() float64 {
	return float64(s.totalPixels) / math.Max(1, float64(s.totalRegions))
}

// BytesOriginal returns the estimated uncompressed size (3 bytes/pixel).
func (s *Stats) BytesOriginal() int64 { return s.bytesOriginal }

// BytesCompressed returns the estimated compressed size. Valid after Finish.
func (s *Stats) BytesCompressed() int64 { return s.bytesCompressed }

// Summary returns the named numeric statistics handed to progress
// callbacks: progress fraction, elapsed seconds, estimated remaining
// seconds, processing rate, compression ratio, and the pixel and region
// counters.
func (s *Stats) Summary() map[string]float64 {
	elapsed := s.Elapsed().Seconds()
	progress := s.Progress()

	remaining := 0.0
	if progress > 0 && progress < 1.0 {
		remaining = elapsed/math.Max(0.001, progress) - elapsed
	}

	return map[string]float64{
		"progress":            progress,
		"elapsed_seconds":     elapsed,
		"estimated_remaining": remaining,
		"processing_rate":     s.ProcessingRate(),
		"compression_ratio":   s.CompressionRatio(),
		"total_pixels":        float64(s.totalPixels),
		"processed_pixels":    float64(s.processedPixels),
		"total_regions":       float64(s.totalRegions),
	}
}
