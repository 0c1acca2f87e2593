package identicon

import (
	"image/color"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestColor_DeriveColor(t *testing.T) {
	assert := assert.New(t)

	c, err := DeriveColor(testHash, 0.7, 0.5)
	assert.NoError(err)
	assert.Equal(color.NRGBA{R: 38, G: 105, B: 217, A: 255}, c)

	// Both ends of the hue circle are red.
	for _, h := range []string{"000000000000000", "fffffffffffffff"} {
		c, err := DeriveColor(h, 0.7, 0.5)
		assert.NoError(err)
		assert.Equal(color.NRGBA{R: 217, G: 38, B: 38, A: 255}, c, h)
	}
}

func TestColor_Deterministic(t *testing.T) {
	a, err := DeriveColor(testHash, 0.7, 0.5)
	assert.NoError(t, err)
	for i := 0; i < 10; i++ {
		b, err := DeriveColor(testHash, 0.7, 0.5)
		assert.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestColor_Extremes(t *testing.T) {
	assert := assert.New(t)

	black, err := DeriveColor(testHash, 0.7, 0)
	assert.NoError(err)
	assert.Equal(color.NRGBA{A: 255}, black)

	white, err := DeriveColor(testHash, 0.7, 1)
	assert.NoError(err)
	assert.Equal(color.NRGBA{R: 255, G: 255, B: 255, A: 255}, white)

	gray, err := DeriveColor(testHash, 0, 0.5)
	assert.NoError(err)
	assert.Equal(color.NRGBA{R: 128, G: 128, B: 128, A: 255}, gray)
}

// Every derived color keeps the requested lightness and chroma, whatever the hue.
func TestColor_Bounds(t *testing.T) {
	hashes := []string{
		testHash,
		"000000000000000",
		"fffffffffffffff",
		HashIdentity("gopher"),
		HashIdentity("alice@example.com"),
		HashIdentity("bob"),
	}
	for _, h := range hashes {
		for i := 0; i <= 20; i++ {
			for j := 0; j <= 20; j++ {
				sat, bright := float64(i)/20, float64(j)/20

				c, err := DeriveColor(h, sat, bright)
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, uint8(0xff), c.A)

				hi := math.Max(float64(c.R), math.Max(float64(c.G), float64(c.B)))
				lo := math.Min(float64(c.R), math.Min(float64(c.G), float64(c.B)))
				chroma := sat * (1 - math.Abs(2*bright-1)) * 255

				assert.InDelta(t, bright*255, (hi+lo)/2, 1, "%s s=%v l=%v: %v", h, sat, bright, c)
				assert.InDelta(t, chroma, hi-lo, 1.5, "%s s=%v l=%v: %v", h, sat, bright, c)
			}
		}
	}
}

func TestColor_InvalidInput(t *testing.T) {
	testCases := []struct {
		hash      string
		sat, brig float64
	}{
		{"abc", 0.7, 0.5},
		{"0123456789abcdefxyz", 0.7, 0.5},
		{testHash, 1.1, 0.5},
		{testHash, 0.7, -0.2},
	}
	for _, tc := range testCases {
		_, err := DeriveColor(tc.hash, tc.sat, tc.brig)
		assert.True(t, errors.Is(err, ErrInvalidInput), "%v: got %v", tc, err)
	}
}
