package identicon

import (
	"image"

	"github.com/pkg/errors"
)

// filterNone is the only scanline filter the encoder emits.
const filterNone = 0

// rowStride returns the bytes taken by one 1-bit scanline, filter byte included.
func rowStride(width int) int {
	return 1 + (width+7)/8
}

// encodeScanlines packs a two color paletted image into 1-bit PNG scanlines:
// a filter byte then the pixels, most significant bit first, each row padded to a byte.
func encodeScanlines(img *image.Paletted) ([]byte, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := rowStride(w)
	out := make([]byte, h*stride)

	for y := 0; y < h; y++ {
		row := out[y*stride : (y+1)*stride]
		row[0] = filterNone

		pix := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < w; x++ {
			switch pix[x] {
			case bgIndex:
			case fgIndex:
				row[1+x/8] |= 0x80 >> uint(x%8)
			default:
				return nil, errors.Wrapf(ErrEncoding, "palette index %d at (%d, %d) does not fit in one bit", pix[x], x, y)
			}
		}
	}
	return out, nil
}

// decodeScanlines unpacks unfiltered 1-bit scanlines into palette indexes.
func decodeScanlines(raw []byte, img *image.Paletted) error {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	stride := rowStride(w)

	if len(raw) != h*stride {
		return errors.Wrapf(ErrEncoding, "scanline data has %d bytes, want %d", len(raw), h*stride)
	}
	for y := 0; y < h; y++ {
		row := raw[y*stride : (y+1)*stride]
		if row[0] != filterNone {
			return errors.Wrapf(ErrEncoding, "row %d uses filter %d", y, row[0])
		}
		pix := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := 0; x < w; x++ {
			pix[x] = (row[1+x/8] >> uint(7-x%8)) & 1
		}
	}
	return nil
}
