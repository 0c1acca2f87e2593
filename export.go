package identicon

import (
	"image"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// ExportExtensions lists the file extensions accepted by Export.
var ExportExtensions = []string{".png", ".svg", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff"}

// Export encodes the identicon into the container selected by the file extension.
// PNG and SVG are written by the package renderers, the other containers
// are encoded from the rasterized image.
func Export(w io.Writer, ext string, ic *Identicon) error {
	var (
		b   []byte
		err error
	)
	switch ext = strings.ToLower(ext); ext {
	case ".png":
		b, err = ic.Render(RasterRenderer{})
	case ".svg":
		b, err = ic.Render(VectorRenderer{})
	case ".bmp":
		return bmp.Encode(w, imgToNRGBA(ic.Image()))
	case ".jpg", ".jpeg":
		// JPEG has no alpha channel: flatten over white so transparent pixels do not turn black.
		img := ic.Image()
		dst := imaging.New(ic.Size, ic.Size, color.White)
		dst = imaging.Overlay(dst, img, image.Point{}, 1.0)
		return imaging.Encode(w, dst, imaging.JPEG, imaging.JPEGQuality(100))
	case ".gif", ".tif", ".tiff":
		format, err := imaging.FormatFromExtension(ext)
		if err != nil {
			return errors.Wrapf(ErrUnsupportedFormat, "%s: %v", ext, err)
		}
		return imaging.Encode(w, ic.Image(), format)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "file extension %q", ext)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// ExportFile is Export with the extension taken from the file name.
func ExportFile(w io.Writer, name string, ic *Identicon) error {
	return Export(w, filepath.Ext(name), ic)
}

// imgToNRGBA converts the paletted image to *image.NRGBA.
func imgToNRGBA(src *image.Paletted) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		di := dst.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.Palette[src.ColorIndexAt(x, y)]).(color.NRGBA)
			dst.Pix[di+0] = c.R
			dst.Pix[di+1] = c.G
			dst.Pix[di+2] = c.B
			dst.Pix[di+3] = c.A
			di += 4
		}
	}
	return dst
}
