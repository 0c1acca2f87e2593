package identicon

import (
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Format is the serialization of an identicon.
type Format int

// The supported formats. A new format is a new constant plus a Renderer.
const (
	Raster Format = iota // PNG image
	Vector               // SVG markup
)

var formatNames = map[Format]string{
	Raster: "raster",
	Vector: "vector",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "Format(" + strconv.Itoa(int(f)) + ")"
}

// ParseFormat maps a name onto a Format. Both the abstract names
// ("raster", "vector") and the file types ("png", "svg") are accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raster", "png":
		return Raster, nil
	case "vector", "svg":
		return Vector, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedFormat, "%q", s)
}

// Renderer returns the renderer producing the format.
func (f Format) Renderer() (Renderer, error) {
	switch f {
	case Raster:
		return RasterRenderer{}, nil
	case Vector:
		return VectorRenderer{}, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "%v", f)
}

// Renderer serializes an identicon. The set of renderers is closed:
// RasterRenderer and VectorRenderer are the only implementations.
type Renderer interface {
	// Render writes the complete serialization of ic to w.
	Render(w io.Writer, ic *Identicon) error
	// MimeType is the media type of the output, as used in data URIs.
	MimeType() string
	// Ext is the file extension of the output, dot included.
	Ext() string

	format() Format
}

var (
	_ Renderer = RasterRenderer{}
	_ Renderer = VectorRenderer{}
)
