package identicon

import (
	"bytes"
	"encoding/base64"
	"image/color"

	"github.com/pkg/errors"
)

// Identicon is the pattern and the colors derived from one hash,
// together with the layout parameters needed to draw it.
type Identicon struct {
	Hash       string
	Grid       Grid
	Foreground color.NRGBA
	Background color.NRGBA
	Size       int
	Margin     float64
	Format     Format
}

// New validates the hash and the options and derives the identicon.
// A nil opts means DefaultOptions.
func New(hash string, opts *Options) (*Identicon, error) {
	if opts == nil {
		def := DefaultOptions()
		opts = &def
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := validateHash(hash); err != nil {
		return nil, err
	}

	grid, err := NewGrid(hash)
	if err != nil {
		return nil, err
	}

	var fg color.NRGBA
	if opts.Foreground != nil {
		fg = *opts.Foreground
	} else {
		fg, err = DeriveColor(hash, opts.Saturation, opts.Brightness)
		if err != nil {
			return nil, err
		}
	}

	return &Identicon{
		Hash:       hash,
		Grid:       grid,
		Foreground: fg,
		Background: opts.Background,
		Size:       opts.Size,
		Margin:     opts.Margin,
		Format:     opts.Format,
	}, nil
}

// validateHash requires at least MinHashLen characters, all of them hex digits.
func validateHash(hash string) error {
	if hash == "" {
		return errors.Wrap(ErrInvalidInput, "missing hash")
	}
	if len(hash) < MinHashLen {
		return errors.Wrapf(ErrInvalidInput, "hash has %d characters, need at least %d", len(hash), MinHashLen)
	}
	for i := 0; i < len(hash); i++ {
		if _, ok := hexValue(hash[i]); !ok {
			return errors.Wrapf(ErrInvalidInput, "hash character %d (%q) is not a hex digit", i, hash[i])
		}
	}
	return nil
}

// Geometry returns the cell layout of the identicon.
func (ic *Identicon) Geometry() Geometry {
	return NewGeometry(ic.Size, ic.Margin)
}

// Render serializes the identicon with r. Nothing is returned unless the whole output was produced.
func (ic *Identicon) Render(r Renderer) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, ic); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Bytes serializes the identicon in its own format.
func (ic *Identicon) Bytes() ([]byte, error) {
	r, err := ic.Format.Renderer()
	if err != nil {
		return nil, err
	}
	return ic.Render(r)
}

// Generate returns the PNG image or the SVG markup of the identicon for hash,
// depending on opts.Format.
func Generate(hash string, opts Options) ([]byte, error) {
	ic, err := New(hash, &opts)
	if err != nil {
		return nil, err
	}
	return ic.Bytes()
}

// GenerateBase64 is Generate with the output encoded in standard base64.
func GenerateBase64(hash string, opts Options) (string, error) {
	b, err := Generate(hash, opts)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DataURI returns the output of Generate as a base64 data URI,
// ready to be used as the src of an img element.
func DataURI(hash string, opts Options) (string, error) {
	r, err := opts.Format.Renderer()
	if err != nil {
		return "", err
	}
	b64, err := GenerateBase64(hash, opts)
	if err != nil {
		return "", err
	}
	return "data:" + r.MimeType() + ";base64," + b64, nil
}
