package identicon

import (
	"image"
	"image/color"
	"math"

	"github.com/esimov/identicon/utils"
)

// Palette indexes of the raster image.
const (
	bgIndex uint8 = iota
	fgIndex
)

// Geometry places the grid cells inside a square image.
type Geometry struct {
	Size   int // image edge
	Cell   int // cell edge, at least one pixel
	Offset int // distance of the first cell from the top and left edges
}

// NewGeometry computes the cell layout for an image of the given size and margin.
// The margin is first taken from each side, the remaining room is split into five
// cells, then the pattern is centered to absorb the rounding.
func NewGeometry(size int, margin float64) Geometry {
	base := int(math.Floor(float64(size) * margin))
	cell := utils.Max((size-2*base)/GridSize, 1)

	return Geometry{
		Size:   size,
		Cell:   cell,
		Offset: floorDiv(size-cell*GridSize, 2),
	}
}

// CellRect returns the pixels covered by the cell at (row, col), clipped to the image.
func (g Geometry) CellRect(row, col int) image.Rectangle {
	x := g.Offset + col*g.Cell
	y := g.Offset + row*g.Cell
	r := image.Rect(x, y, x+g.Cell, y+g.Cell)

	return r.Intersect(image.Rect(0, 0, g.Size, g.Size))
}

// Image returns the identicon as a two color paletted image,
// index 0 holding the background and index 1 the foreground.
func (ic *Identicon) Image() *image.Paletted {
	geo := ic.Geometry()
	img := image.NewPaletted(image.Rect(0, 0, geo.Size, geo.Size), color.Palette{ic.Background, ic.Foreground})

	// NewPaletted zeroes Pix, so every pixel already holds the background.
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if !ic.Grid[row][col] {
				continue
			}
			fillRect(img, geo.CellRect(row, col), fgIndex)
		}
	}
	return img
}

func fillRect(img *image.Paletted, r image.Rectangle, idx uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := img.PixOffset(r.Min.X, y)
		for x := 0; x < r.Dx(); x++ {
			img.Pix[off+x] = idx
		}
	}
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
