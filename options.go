package identicon

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
)

const (
	// MinHashLen is the number of hex digits consumed by the grid.
	MinHashLen = 15
	// MaxSize bounds the image edge so that every call stays cheap.
	MaxSize = 4096
)

// Options holds the rendering parameters. Start from DefaultOptions and override fields.
type Options struct {
	// Size is the edge of the square image in pixels. Default 64.
	Size int
	// Margin is the fraction of Size left blank around the pattern, 0..1. Default 0.08.
	Margin float64
	// Background fills every pixel not covered by a foreground cell. Default light gray.
	Background color.NRGBA
	// Foreground overrides the color derived from the hash when not nil.
	Foreground *color.NRGBA
	// Saturation of the derived color, 0..1. Default 0.7.
	Saturation float64
	// Brightness (HSL lightness) of the derived color, 0..1. Default 0.5.
	Brightness float64
	// Format selects the renderer used by Generate. Default Raster.
	Format Format
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		Size:       64,
		Margin:     0.08,
		Background: color.NRGBA{R: 240, G: 240, B: 240, A: 255},
		Saturation: 0.7,
		Brightness: 0.5,
		Format:     Raster,
	}
}

// Validate checks every field against its valid range.
func (o *Options) Validate() error {
	if o.Size < 1 || o.Size > MaxSize {
		return errors.Wrapf(ErrInvalidInput, "size %d out of range [1, %d]", o.Size, MaxSize)
	}
	if !unit(o.Margin) {
		return errors.Wrapf(ErrInvalidInput, "margin %v out of range [0, 1]", o.Margin)
	}
	if !unit(o.Saturation) {
		return errors.Wrapf(ErrInvalidInput, "saturation %v out of range [0, 1]", o.Saturation)
	}
	if !unit(o.Brightness) {
		return errors.Wrapf(ErrInvalidInput, "brightness %v out of range [0, 1]", o.Brightness)
	}
	if _, err := o.Format.Renderer(); err != nil {
		return err
	}
	return nil
}

// unit reports whether v lies in [0, 1]. NaN does not.
func unit(v float64) bool {
	return !math.IsNaN(v) && v >= 0 && v <= 1
}
