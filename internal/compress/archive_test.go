package compress

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveRoundTrip(t *testing.T) {
	c := compressGrid(t, noisyGrid(t, 7, 5), DefaultOptions())

	var buf bytes.Buffer
	require.NoError(t, c.WriteArchive(&buf))

	rendered, err := c.Rendered()
	require.NoError(t, err)

	restored, err := ReadArchive(&buf)
	require.NoError(t, err)
	require.Equal(t, rendered.Width(), restored.Width())
	require.Equal(t, rendered.Height(), restored.Height())
	for y := 0; y < rendered.Height(); y++ {
		for x := 0; x < rendered.Width(); x++ {
			assert.Equal(t, rendered.At(x, y), restored.At(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestArchiveRequiresCompressedState(t *testing.T) {
	c, err := New(DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	assert.ErrorIs(t, c.WriteArchive(&buf), ErrWrongState)
	assert.Zero(t, buf.Len())
}

func TestReadArchiveRejectsBadMagic(t *testing.T) {
	_, err := ReadArchive(bytes.NewReader([]byte("NOPE\x00\x04\x00\x04\x00\x00\x00\x01")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad magic")
}

func TestReadArchiveRejectsTruncatedStream(t *testing.T) {
	c := compressGrid(t, noisyGrid(t, 6, 6), DefaultOptions())

	var buf bytes.Buffer
	require.NoError(t, c.WriteArchive(&buf))

	_, err := ReadArchive(bytes.NewReader(buf.Bytes()[:buf.Len()/2]))
	assert.Error(t, err)
}

func TestSaveArchiveFile(t *testing.T) {
	c := compressGrid(t, noisyGrid(t, 5, 5), DefaultOptions())

	path := filepath.Join(t.TempDir(), "regions.rgc")
	require.NoError(t, c.SaveArchive(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	restored, err := ReadArchive(f)
	require.NoError(t, err)
	assert.Equal(t, 5, restored.Width())
	assert.Equal(t, 5, restored.Height())
}
