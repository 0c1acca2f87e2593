package identicon

import (
	"image/color"
	"math"
	"strconv"

	"github.com/esimov/identicon/utils"
	"github.com/pkg/errors"
)

// hueDigits is the number of trailing hash digits mapped onto the hue circle.
const hueDigits = 7

// maxHue is the largest value hueDigits hex digits can hold.
const maxHue = 0xfffffff

// DeriveColor returns the foreground color for a hash. The hue comes from the last
// seven hex digits, saturation and brightness are the HSL saturation and lightness.
func DeriveColor(hash string, saturation, brightness float64) (color.NRGBA, error) {
	if len(hash) < hueDigits {
		return color.NRGBA{}, errors.Wrapf(ErrInvalidInput, "hash %q too short to derive a color", hash)
	}
	if !unit(saturation) || !unit(brightness) {
		return color.NRGBA{}, errors.Wrapf(ErrInvalidInput, "saturation %v and brightness %v must lie in [0, 1]", saturation, brightness)
	}
	v, err := strconv.ParseUint(hash[len(hash)-hueDigits:], 16, 32)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(ErrInvalidInput, "hash %q does not end with hex digits", hash)
	}
	r, g, b := hslToRGB(float64(v)/maxHue, saturation, brightness)

	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// hslToRGB converts a color from HSL, with every component in [0, 1], to 8 bit RGB.
func hslToRGB(h, s, l float64) (uint8, uint8, uint8) {
	if s == 0 {
		v := channel(l)
		return v, v, v
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return channel(hueToRGB(p, q, h+1.0/3)),
		channel(hueToRGB(p, q, h)),
		channel(hueToRGB(p, q, h-1.0/3))
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 0.5:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	}
	return p
}

// channel scales v to 0..255, rounding half up.
func channel(v float64) uint8 {
	return uint8(utils.Clamp(math.Floor(v*255+0.5), 0, 255))
}
