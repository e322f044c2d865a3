package main

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// barWidth is the progress bar width in characters.
const barWidth = 50

// redrawInterval limits console redraws to avoid flickering.
const redrawInterval = 200 * time.Millisecond

// progressBar renders compression progress as a single console line,
// rewritten in place with carriage returns.
type progressBar struct {
	out         io.Writer
	description string
	start       time.Time
	lastDraw    time.Time
	done        bool
}

func newProgressBar(out io.Writer, description string) *progressBar {
	return &progressBar{out: out, description: description}
}

// Start begins timing and draws the empty bar.
func (b *progressBar) Start() {
	b.start = time.Now()
	b.Update(0, nil)
}

// Update redraws the bar. It matches the engine's ProgressFunc signature
// so it can be handed to the compressor directly; stats keys it knows
// about (processing_rate, total_regions) are appended when present.
func (b *progressBar) Update(fraction float64, stats map[string]float64) {
	if b.done {
		return
	}
	now := time.Now()
	if fraction < 1.0 && now.Sub(b.lastDraw) < redrawInterval {
		return
	}
	b.lastDraw = now
	if b.start.IsZero() {
		b.start = now
	}

	elapsed := now.Sub(b.start)
	eta := "?"
	if fraction >= 1.0 {
		eta = "done"
	} else if fraction > 0.001 {
		remaining := time.Duration(float64(elapsed)/fraction) - elapsed
		eta = formatShort(remaining)
	}

	filled := int(barWidth * fraction)
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	line := fmt.Sprintf("\r%s: [%s] %6.2f%% | %s elapsed | ETA: %s",
		b.description, bar, fraction*100, formatShort(elapsed), eta)
	if rate, ok := stats["processing_rate"]; ok {
		line += fmt.Sprintf(" | %.0f px/sec", rate)
	}
	if regions, ok := stats["total_regions"]; ok {
		line += fmt.Sprintf(" | %.0f regions", regions)
	}

	fmt.Fprint(b.out, line)
	if fraction >= 1.0 {
		fmt.Fprintln(b.out)
		b.done = true
	}
}

// formatShort renders a duration compactly: "4.2s", "3m 12s", "1h 5m".
func formatShort(d time.Duration) string {
	if d < 0 {
		return "?"
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
}
