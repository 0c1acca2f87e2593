package identicon

import (
	"encoding/binary"
	"io"

	"github.com/esimov/identicon/chunk"
	"github.com/esimov/identicon/zlib"
)

// IHDR field values for a 1-bit indexed, non interlaced image.
const (
	bitDepth          = 1
	colorTypeIndexed  = 3
	compressionMethod = 0 // deflate
	filterMethod      = 0 // adaptive, with per row filter bytes
	interlaceNone     = 0
)

// RasterRenderer encodes the identicon as a PNG image: 1-bit palette of two
// entries (background first), alpha for both entries, uncompressed image data.
type RasterRenderer struct{}

// MimeType implements Renderer.
func (RasterRenderer) MimeType() string { return "image/png" }

// Ext implements Renderer.
func (RasterRenderer) Ext() string { return ".png" }

func (RasterRenderer) format() Format { return Raster }

// Render writes the chunks IHDR, PLTE, tRNS, IDAT and IEND, in this order.
func (RasterRenderer) Render(w io.Writer, ic *Identicon) error {
	img := ic.Image()

	raw, err := encodeScanlines(img)
	if err != nil {
		return err
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], uint32(ic.Size))
	binary.BigEndian.PutUint32(ihdr[4:8], uint32(ic.Size))
	ihdr[8] = bitDepth
	ihdr[9] = colorTypeIndexed
	ihdr[10] = compressionMethod
	ihdr[11] = filterMethod
	ihdr[12] = interlaceNone

	bg, fg := ic.Background, ic.Foreground
	plte := []byte{bg.R, bg.G, bg.B, fg.R, fg.G, fg.B}
	trns := []byte{bg.A, fg.A}

	cw := chunk.NewWriter(w)
	cw.WriteSignature()
	cw.WriteChunk(chunk.IHDR, ihdr)
	cw.WriteChunk(chunk.PLTE, plte)
	cw.WriteChunk(chunk.TRNS, trns)
	cw.WriteChunk(chunk.IDAT, zlib.Store(raw))
	cw.WriteChunk(chunk.IEND, nil)

	return cw.Err()
}
