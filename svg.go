package identicon

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/pkg/errors"
)

// VectorRenderer writes the identicon as SVG markup: the background as a
// single path, then one rect per visible foreground cell, at the raster geometry.
type VectorRenderer struct{}

// MimeType implements Renderer.
func (VectorRenderer) MimeType() string { return "image/svg+xml" }

// Ext implements Renderer.
func (VectorRenderer) Ext() string { return ".svg" }

func (VectorRenderer) format() Format { return Vector }

// Render writes a standalone svg element. The XML prolog is left out
// so that the markup can be inlined into an HTML document.
func (VectorRenderer) Render(w io.Writer, ic *Identicon) error {
	var buf bytes.Buffer
	geo := ic.Geometry()

	canvas := svg.New(&buf)
	canvas.Start(geo.Size, geo.Size)

	// A fully transparent background is simply not painted.
	if ic.Background.A > 0 {
		canvas.Path(fmt.Sprintf("M0 0h%dv%dH0z", geo.Size, geo.Size), fill(canvas, ic.Background))
	}

	fg := fill(canvas, ic.Foreground)
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if !ic.Grid[row][col] {
				continue
			}
			// Below five pixels some cells fall outside the image and have no rect,
			// matching the raster output.
			r := geo.CellRect(row, col)
			if r.Empty() {
				continue
			}
			canvas.Rect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), fg)
		}
	}
	canvas.End()

	out := buf.Bytes()
	start := bytes.Index(out, []byte("<svg"))
	if start < 0 {
		return errors.Wrap(ErrEncoding, "svg element missing from markup")
	}
	_, err := w.Write(out[start:])
	return err
}

// fill returns the style attribute painting with c.
func fill(canvas *svg.SVG, c color.NRGBA) string {
	if c.A == 0xff {
		return canvas.RGB(int(c.R), int(c.G), int(c.B))
	}
	return canvas.RGBA(int(c.R), int(c.G), int(c.B), float64(c.A)/0xff)
}
