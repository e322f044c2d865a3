package imaging

import (
	"sort"
)

// PaletteEntry is one color of an extracted palette together with the
// share of pixels it covers.
type PaletteEntry struct {
	Hex        string  `json:"hex"`        // Color in "#rrggbb" notation
	RGB        Color   `json:"rgb"`        // RGB components
	Percentage float64 `json:"percentage"` // Share of weighted pixels (0-100)
}

// Palette summarizes a set of colors into the count most common entries.
//
// Each color may carry a weight (typically the pixel count of the region
// painted with it); a nil weights slice treats every color as weight 1.
// Identical colors are merged, entries are sorted by coverage descending,
// and ties are broken by hue so the ordering is deterministic.
//
// This is the flattened-image analogue of dominant-color extraction: after
// compression every region is one flat color, so exact equality is the
// right grouping and no quantization step is needed.
func Palette(colors []Color, weights []int, count int) []PaletteEntry {
	if len(colors) == 0 || count <= 0 {
		return nil
	}

	totals := make(map[Color]int)
	total := 0
	for i, c := range colors {
		w := 1
		if weights != nil && i < len(weights) {
			w = weights[i]
		}
		totals[c] += w
		total += w
	}
	if total == 0 {
		return nil
	}

	entries := make([]PaletteEntry, 0, len(totals))
	for c, w := range totals {
		entries = append(entries, PaletteEntry{
			Hex:        c.Hex(),
			RGB:        c,
			Percentage: float64(w) / float64(total) * 100,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Percentage != entries[j].Percentage {
			return entries[i].Percentage > entries[j].Percentage
		}
		hi, _, _ := entries[i].RGB.colorful().Hsv()
		hj, _, _ := entries[j].RGB.colorful().Hsv()
		return hi < hj
	})

	if len(entries) > count {
		entries = entries[:count]
	}
	return entries
}
