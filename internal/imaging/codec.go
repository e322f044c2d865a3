package imaging

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/xfmoulet/qoi"
)

// Open decodes the image file at path into a Grid.
//
// PNG, JPEG, GIF, TIFF, and BMP sources are decoded through the imaging
// library; ".qoi" files are decoded with the qoi codec. A missing or
// corrupt source returns an error and no grid.
func Open(path string) (*Grid, error) {
	if strings.EqualFold(filepath.Ext(path), ".qoi") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()
		img, err := qoi.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode qoi image: %w", err)
		}
		return FromImage(img), nil
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}

// Save encodes the grid to a file, choosing the format from the
// destination extension.
//
// Recognized extensions are png, jpg/jpeg, bmp, and qoi. Anything else
// is written as PNG data under the given name. JPEG output uses quality
// 95 to keep the flat region fills crisp.
func Save(path string, g *Grid) error {
	img := g.Image()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".bmp":
		if err := imaging.Save(img, path); err != nil {
			return fmt.Errorf("failed to encode image: %w", err)
		}
	case ".jpg", ".jpeg":
		if err := imaging.Save(img, path, imaging.JPEGQuality(95)); err != nil {
			return fmt.Errorf("failed to encode image: %w", err)
		}
	case ".qoi":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		if err := qoi.Encode(f, img); err != nil {
			return fmt.Errorf("failed to encode qoi image: %w", err)
		}
	default:
		// Unrecognized extension: default to PNG under the given name.
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("failed to encode image: %w", err)
		}
	}
	return nil
}
