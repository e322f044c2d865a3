package compress

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zstd"

	"github.com/ironsheep/region-compress/internal/imaging"
)

// archiveMagic identifies a region archive stream.
const archiveMagic = "RGC1"

// maxArchiveDim bounds archive dimensions: coordinates are stored as
// uint16 pairs, which also keeps the on-disk cost at the 4 bytes per
// pixel the statistics estimate assumes.
const maxArchiveDim = 1<<16 - 1

// WriteArchive serializes the compressed region set to w.
//
// The stream is a plain header (magic, width, height, region count)
// followed by a zstd frame holding each region as its average color and
// its member coordinates, in sweep and growth order. Reading the archive
// back yields exactly the flattened image Save would have produced.
// Requires a finished compression; does not change the lifecycle state.
func (c *Compressor) WriteArchive(w io.Writer) error {
	if c.state < StateCompressed {
		return fmt.Errorf("%w: no compressed data, compressor is %v", ErrWrongState, c.state)
	}
	width, height := c.grid.Width(), c.grid.Height()
	if width > maxArchiveDim || height > maxArchiveDim {
		return fmt.Errorf("image %dx%d exceeds archive coordinate range", width, height)
	}

	if _, err := io.WriteString(w, archiveMagic); err != nil {
		return err
	}
	for _, v := range []uint16{uint16(width), uint16(height)} {
		if err := binary.Write(w, binary.BigEndian, v); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(c.regions))); err != nil {
		return err
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(enc)

	for i, region := range c.regions {
		col := c.colors[i]
		if _, err := bw.Write([]byte{col.R, col.G, col.B}); err != nil {
			return err
		}
		if err := binary.Write(bw, binary.BigEndian, uint32(len(region))); err != nil {
			return err
		}
		for _, p := range region {
			if err := binary.Write(bw, binary.BigEndian, uint16(p.X)); err != nil {
				return err
			}
			if err := binary.Write(bw, binary.BigEndian, uint16(p.Y)); err != nil {
				return err
			}
		}
	}

	if err := bw.Flush(); err != nil {
		return err
	}
	return enc.Close()
}

// SaveArchive writes the region archive to a file.
func (c *Compressor) SaveArchive(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer f.Close()
	if err := c.WriteArchive(f); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}
	slog.Info("region archive saved", "run", c.stats.RunID, "path", path, "regions", len(c.regions))
	return nil
}

// ReadArchive decodes a region archive and paints it back into a grid.
func ReadArchive(r io.Reader) (*imaging.Grid, error) {
	magic := make([]byte, len(archiveMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("failed to read archive header: %w", err)
	}
	if string(magic) != archiveMagic {
		return nil, errors.New("not a region archive: bad magic")
	}

	var width, height uint16
	var regionCount uint32
	if err := binary.Read(r, binary.BigEndian, &width); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, &height); err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.BigEndian, &regionCount); err != nil {
		return nil, err
	}

	grid, err := imaging.NewGrid(int(width), int(height))
	if err != nil {
		return nil, err
	}

	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	br := bufio.NewReader(dec)

	for i := uint32(0); i < regionCount; i++ {
		rgb := make([]byte, 3)
		if _, err := io.ReadFull(br, rgb); err != nil {
			return nil, fmt.Errorf("truncated archive at region %d: %w", i, err)
		}
		col := imaging.Color{R: rgb[0], G: rgb[1], B: rgb[2]}

		var count uint32
		if err := binary.Read(br, binary.BigEndian, &count); err != nil {
			return nil, fmt.Errorf("truncated archive at region %d: %w", i, err)
		}
		for j := uint32(0); j < count; j++ {
			var x, y uint16
			if err := binary.Read(br, binary.BigEndian, &x); err != nil {
				return nil, fmt.Errorf("truncated archive at region %d: %w", i, err)
			}
			if err := binary.Read(br, binary.BigEndian, &y); err != nil {
				return nil, fmt.Errorf("truncated archive at region %d: %w", i, err)
			}
			grid.Set(int(x), int(y), col)
		}
	}

	return grid, nil
}
