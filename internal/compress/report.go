package compress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteReport writes a human-readable summary of a finished run.
func (c *Compressor) WriteReport(w io.Writer) error {
	s := c.stats
	savings := 0.0
	if s.BytesOriginal() > 0 {
		savings = (1 - float64(s.BytesCompressed())/float64(s.BytesOriginal())) * 100
	}

	var b strings.Builder
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "%20s%s\n", "", "COMPRESSION REPORT")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "Run ID:              %s\n", s.RunID)
	fmt.Fprintf(&b, "Total time:          %s\n", formatDuration(s.Elapsed()))
	fmt.Fprintf(&b, "Processing rate:     %.0f pixels/second\n", s.ProcessingRate())
	fmt.Fprintf(&b, "Total pixels:        %d\n", s.TotalPixels())
	fmt.Fprintf(&b, "Regions identified:  %d\n", s.TotalRegions())
	fmt.Fprintf(&b, "Compression ratio:   %.2f:1\n", s.CompressionRatio())
	fmt.Fprintln(&b, strings.Repeat("-", 60))
	fmt.Fprintf(&b, "Original size:       %s\n", formatBytes(s.BytesOriginal()))
	fmt.Fprintf(&b, "Compressed size:     %s\n", formatBytes(s.BytesCompressed()))
	fmt.Fprintf(&b, "Space saved:         %s (%.1f%%)\n", formatBytes(s.BytesOriginal()-s.BytesCompressed()), savings)
	fmt.Fprintln(&b, strings.Repeat("-", 60))
	fmt.Fprintf(&b, "Largest region:      %d pixels\n", s.LargestRegion())
	fmt.Fprintf(&b, "Smallest region:     %d pixels\n", s.SmallestRegion())
	fmt.Fprintf(&b, "Average region size: %.2f pixels\n", s.AverageRegionSize())
	fmt.Fprintf(&b, "Median region size:  %.2f pixels\n", s.MedianRegionSize())
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}

// writeSidecar records run metadata next to the saved image as
// "<output>_info.txt".
func (c *Compressor) writeSidecar(outputPath string) error {
	s := c.stats

	size := int64(0)
	if fi, err := os.Stat(outputPath); err == nil {
		size = fi.Size()
	}

	sidecarPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + "_info.txt"
	f, err := os.Create(sidecarPath)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "Image Compression Report\n")
	fmt.Fprintf(f, "========================\n\n")
	fmt.Fprintf(f, "Timestamp: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(f, "Run ID: %s\n", s.RunID)
	fmt.Fprintf(f, "Algorithm: %s\n", c.opts.Algorithm)
	fmt.Fprintf(f, "Similarity threshold: %v\n", c.opts.Threshold)
	fmt.Fprintf(f, "Adaptive mode: %v\n\n", c.opts.AdaptiveMode)
	fmt.Fprintf(f, "Original dimensions: %dx%d = %d pixels\n", c.grid.Width(), c.grid.Height(), s.TotalPixels())
	fmt.Fprintf(f, "Regions identified: %d\n", s.TotalRegions())
	fmt.Fprintf(f, "Compression ratio: %.2f:1\n\n", s.CompressionRatio())
	fmt.Fprintf(f, "Processing time: %.2f seconds\n", s.Elapsed().Seconds())
	fmt.Fprintf(f, "Processing rate: %.0f pixels/second\n\n", s.ProcessingRate())
	fmt.Fprintf(f, "Output file size: %.2f KB\n", float64(size)/1024)
	return nil
}

// formatDuration renders a duration the way a human reads one: seconds
// below a minute, then minutes and seconds, then hours.
func formatDuration(d time.Duration) string {
	sec := d.Seconds()
	switch {
	case sec < 60:
		return fmt.Sprintf("%.2f seconds", sec)
	case sec < 3600:
		return fmt.Sprintf("%d minutes, %.2f seconds", int(sec)/60, sec-float64(int(sec)/60*60))
	default:
		h := int(sec) / 3600
		m := (int(sec) % 3600) / 60
		return fmt.Sprintf("%d hours, %d minutes, %.2f seconds", h, m, sec-float64(h*3600+m*60))
	}
}

// formatBytes renders a byte count as bytes, KB, or MB.
func formatBytes(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d bytes", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.2f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.2f MB", float64(n)/(1024*1024))
	}
}
