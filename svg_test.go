package identicon

import (
	"encoding/xml"
	"image/color"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func renderSVG(t *testing.T, hash string, opts Options) string {
	t.Helper()
	opts.Format = Vector
	b, err := Generate(hash, opts)
	assert.NoError(t, err)
	return string(b)
}

func TestSVG_Markup(t *testing.T) {
	assert := assert.New(t)

	s := renderSVG(t, testHash, DefaultOptions())
	assert.True(strings.HasPrefix(s, `<svg width="64" height="64"`), s)
	assert.True(strings.HasSuffix(s, "</svg>\n"))
	assert.Contains(s, `<path d="M0 0h64v64H0z" style="fill:rgb(240,240,240)"`)
	assert.Contains(s, `<rect x="7" y="7" width="10" height="10" style="fill:rgb(38,105,217)"`)
	assert.Equal(13, strings.Count(s, "<rect "))

	var doc struct {
		XMLName xml.Name
		Width   int `xml:"width,attr"`
		Rects   []struct {
			X int `xml:"x,attr"`
			Y int `xml:"y,attr"`
		} `xml:"rect"`
	}
	assert.NoError(xml.Unmarshal([]byte(s), &doc))
	assert.Equal("svg", doc.XMLName.Local)
	assert.Equal(64, doc.Width)
	assert.Len(doc.Rects, 13)
}

func TestSVG_RectCountMatchesGrid(t *testing.T) {
	for _, id := range []string{"gopher", "alice", "bob", "carol@example.com", "42"} {
		hash := HashIdentity(id)
		g, err := NewGrid(hash)
		assert.NoError(t, err)

		s := renderSVG(t, hash, DefaultOptions())
		assert.Equal(t, g.Filled(), strings.Count(s, "<rect "), id)
	}
}

func TestSVG_ClippedCells(t *testing.T) {
	assert := assert.New(t)

	full := strings.Repeat("0", MinHashLen)
	opts := DefaultOptions()

	// At 2 px only the four cells around the center overlap the image.
	opts.Size = 2
	s := renderSVG(t, full, opts)
	assert.Equal(4, strings.Count(s, "<rect "))

	// From 5 px on every cell is visible.
	opts.Size = 5
	s = renderSVG(t, full, opts)
	assert.Equal(GridSize*GridSize, strings.Count(s, "<rect "))
}

func TestSVG_Transparency(t *testing.T) {
	assert := assert.New(t)

	opts := DefaultOptions()
	opts.Background = color.NRGBA{}
	fg := color.NRGBA{R: 255, A: 128}
	opts.Foreground = &fg

	s := renderSVG(t, testHash, opts)
	assert.NotContains(s, "<path")
	assert.Contains(s, "fill-opacity:0.50; fill:rgb(255,0,0)")
}

func TestSVG_EmptyGrid(t *testing.T) {
	s := renderSVG(t, "fffffffffffffff", DefaultOptions())
	assert.NotContains(t, s, "<rect")
	assert.Contains(t, s, "<path")
}

func TestSVG_InvalidHash(t *testing.T) {
	opts := DefaultOptions()
	opts.Format = Vector
	_, err := Generate("0123456789abcd", opts)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
