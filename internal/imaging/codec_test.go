package imaging

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkerGrid builds a small two-color checkerboard for round trips.
func checkerGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := NewGrid(8, 6)
	require.NoError(t, err)
	a := Color{R: 250, G: 10, B: 10}
	b := Color{R: 10, G: 10, B: 250}
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			if (x+y)%2 == 0 {
				g.Set(x, y, a)
			} else {
				g.Set(x, y, b)
			}
		}
	}
	return g
}

func assertGridsEqual(t *testing.T, want, got *Grid) {
	t.Helper()
	require.Equal(t, want.Width(), got.Width())
	require.Equal(t, want.Height(), got.Height())
	for y := 0; y < want.Height(); y++ {
		for x := 0; x < want.Width(); x++ {
			if want.At(x, y) != got.At(x, y) {
				t.Fatalf("pixel (%d,%d): want %v, got %v", x, y, want.At(x, y), got.At(x, y))
			}
		}
	}
}

func TestSaveOpenRoundTripLossless(t *testing.T) {
	for _, ext := range []string{".png", ".bmp", ".qoi"} {
		t.Run(ext, func(t *testing.T) {
			g := checkerGrid(t)
			path := filepath.Join(t.TempDir(), "out"+ext)

			require.NoError(t, Save(path, g))
			got, err := Open(path)
			require.NoError(t, err)
			assertGridsEqual(t, g, got)
		})
	}
}

func TestSaveJPEGProducesDecodableFile(t *testing.T) {
	g := checkerGrid(t)
	path := filepath.Join(t.TempDir(), "out.jpg")

	require.NoError(t, Save(path, g))

	// JPEG is lossy; just verify it decodes with matching dimensions.
	got, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, g.Width(), got.Width())
	assert.Equal(t, g.Height(), got.Height())
}

func TestSaveUnknownExtensionDefaultsToPNG(t *testing.T) {
	g := checkerGrid(t)
	path := filepath.Join(t.TempDir(), "out.xyz")

	require.NoError(t, Save(path, g))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	_, format, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "does-not-exist.png"))
	assert.Error(t, err)
}

func TestOpenCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}
