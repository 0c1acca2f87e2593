package identicon

import (
	"strings"

	"github.com/pkg/errors"
)

// GridSize is the number of cells along each side of the pattern.
const GridSize = 5

// Grid is the pattern of an identicon, indexed by row then column.
// A true cell is painted with the foreground color.
type Grid [GridSize][GridSize]bool

// NewGrid derives the pattern from the first 15 hex digits of the hash.
//
// An even digit gives a foreground cell, an odd digit a background cell.
// Digits 0-4 fill the center column top to bottom, digits 5-9 the columns
// next to it and digits 10-14 the outer columns, so the grid is always
// symmetric around the vertical axis.
func NewGrid(hash string) (Grid, error) {
	var g Grid

	if len(hash) < MinHashLen {
		return g, errors.Wrapf(ErrInvalidInput, "hash has %d characters, need at least %d", len(hash), MinHashLen)
	}
	for i := 0; i < MinHashLen; i++ {
		d, ok := hexValue(hash[i])
		if !ok {
			return g, errors.Wrapf(ErrInvalidInput, "hash character %d (%q) is not a hex digit", i, hash[i])
		}
		row, wing := i%GridSize, i/GridSize
		fill := d%2 == 0

		g[row][2-wing] = fill
		g[row][2+wing] = fill
	}
	return g, nil
}

// Mirrored reports whether every row reads the same from both ends.
func (g Grid) Mirrored() bool {
	for r := range g {
		for c := range g[r] {
			if g[r][c] != g[r][GridSize-1-c] {
				return false
			}
		}
	}
	return true
}

// Filled returns the number of foreground cells.
func (g Grid) Filled() int {
	n := 0
	for r := range g {
		for c := range g[r] {
			if g[r][c] {
				n++
			}
		}
	}
	return n
}

// String sketches the grid, one line per row, '@' for foreground and '.' for background.
func (g Grid) String() string {
	var sb strings.Builder
	for r := range g {
		for c := range g[r] {
			if g[r][c] {
				sb.WriteByte('@')
			} else {
				sb.WriteByte('.')
			}
		}
		if r < GridSize-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexValue(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
