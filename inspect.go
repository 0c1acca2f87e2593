package identicon

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"io"

	"github.com/esimov/identicon/checksum"
	"github.com/esimov/identicon/chunk"
	kzlib "github.com/klauspost/compress/zlib"
	"github.com/pkg/errors"
)

// chunkOrder is the exact chunk sequence written by RasterRenderer.
var chunkOrder = []string{chunk.IHDR, chunk.PLTE, chunk.TRNS, chunk.IDAT, chunk.IEND}

// Info describes a PNG produced by RasterRenderer.
type Info struct {
	Chunks  []string      // chunk types in file order
	Size    int           // image edge
	Palette color.Palette // background then foreground, alpha from tRNS
	Adler32 uint32        // zlib trailer of the image data
	Image   *image.Paletted
}

// Inspect decodes a PNG written by RasterRenderer, checking the chunk order,
// every chunk CRC, the header fields and the Adler-32 trailer of the image data.
// A checksum mismatch, in a chunk CRC or in the trailer, matches chunk.ErrChecksum.
func Inspect(b []byte) (*Info, error) {
	chunks, err := chunk.Parse(b)
	if err != nil {
		return nil, errors.Wrap(err, "identicon: inspect")
	}

	info := &Info{}
	for _, c := range chunks {
		info.Chunks = append(info.Chunks, c.Type)
	}
	if len(chunks) != len(chunkOrder) {
		return nil, errors.Wrapf(ErrEncoding, "got chunks %v, want %v", info.Chunks, chunkOrder)
	}
	for i, c := range chunks {
		if c.Type != chunkOrder[i] {
			return nil, errors.Wrapf(ErrEncoding, "got chunks %v, want %v", info.Chunks, chunkOrder)
		}
	}
	ihdr, plte, trns, idat := chunks[0].Data, chunks[1].Data, chunks[2].Data, chunks[3].Data

	if len(ihdr) != 13 {
		return nil, errors.Wrapf(ErrEncoding, "IHDR has %d bytes", len(ihdr))
	}
	w, h := binary.BigEndian.Uint32(ihdr[0:4]), binary.BigEndian.Uint32(ihdr[4:8])
	if w != h || w == 0 || w > MaxSize {
		return nil, errors.Wrapf(ErrEncoding, "unexpected dimensions %dx%d", w, h)
	}
	want := []byte{bitDepth, colorTypeIndexed, compressionMethod, filterMethod, interlaceNone}
	if !bytes.Equal(ihdr[8:], want) {
		return nil, errors.Wrapf(ErrEncoding, "unexpected IHDR fields % x", ihdr[8:])
	}
	if len(plte) != 6 || len(trns) != 2 {
		return nil, errors.Wrapf(ErrEncoding, "PLTE has %d bytes and tRNS %d, want 6 and 2", len(plte), len(trns))
	}
	info.Size = int(w)
	info.Palette = color.Palette{
		color.NRGBA{R: plte[0], G: plte[1], B: plte[2], A: trns[0]},
		color.NRGBA{R: plte[3], G: plte[4], B: plte[5], A: trns[1]},
	}

	if len(idat) < 2+checksum.Size {
		return nil, errors.Wrap(ErrEncoding, "IDAT too short")
	}
	zr, err := kzlib.NewReader(bytes.NewReader(idat))
	if err != nil {
		return nil, errors.Wrapf(ErrEncoding, "IDAT: %v", err)
	}
	defer zr.Close()

	// The reader verifies the Adler-32 trailer once the last block is consumed.
	raw, err := io.ReadAll(zr)
	if errors.Is(err, kzlib.ErrChecksum) {
		return nil, errors.Wrapf(chunk.ErrChecksum, "IDAT: adler32 trailer %08x", binary.BigEndian.Uint32(idat[len(idat)-checksum.Size:]))
	}
	if err != nil {
		return nil, errors.Wrapf(ErrEncoding, "IDAT: %v", err)
	}
	info.Adler32 = binary.BigEndian.Uint32(idat[len(idat)-checksum.Size:])

	info.Image = image.NewPaletted(image.Rect(0, 0, info.Size, info.Size), info.Palette)
	if err := decodeScanlines(raw, info.Image); err != nil {
		return nil, err
	}
	return info, nil
}

// Grid reads the pattern back from the image, sampling the first pixel of every cell.
// The margin is not stored in the file and must be the one used to render it.
func (i *Info) Grid(margin float64) Grid {
	var g Grid
	geo := NewGeometry(i.Size, margin)

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			r := geo.CellRect(row, col)
			if r.Empty() {
				continue
			}
			g[row][col] = i.Image.ColorIndexAt(r.Min.X, r.Min.Y) == fgIndex
		}
	}
	return g
}
