package identicon

import (
	"bytes"
	"encoding/binary"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/esimov/identicon/checksum"
	"github.com/esimov/identicon/chunk"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPNG_Golden(t *testing.T) {
	assert := assert.New(t)

	want, err := os.ReadFile("testdata/identicon_64.png")
	assert.NoError(err)

	got, err := Generate(testHash, DefaultOptions())
	assert.NoError(err)
	assert.Equal(want, got)
}

func TestPNG_Structure(t *testing.T) {
	assert := assert.New(t)

	b, err := Generate(testHash, DefaultOptions())
	assert.NoError(err)
	assert.Equal([]byte(chunk.Signature), b[:8])

	chunks, err := chunk.Parse(b)
	assert.NoError(err)

	var types []string
	for _, c := range chunks {
		types = append(types, c.Type)
	}
	assert.Equal([]string{"IHDR", "PLTE", "tRNS", "IDAT", "IEND"}, types)

	ihdr := chunks[0].Data
	assert.Equal(uint32(64), binary.BigEndian.Uint32(ihdr[0:4]))
	assert.Equal(uint32(64), binary.BigEndian.Uint32(ihdr[4:8]))
	assert.Equal([]byte{1, 3, 0, 0, 0}, ihdr[8:])
	assert.Equal([]byte{240, 240, 240, 38, 105, 217}, chunks[1].Data)
	assert.Equal([]byte{255, 255}, chunks[2].Data)
	assert.Empty(chunks[4].Data)

	// 64 rows of one filter byte and eight pixel bytes, in a single stored block.
	idat := chunks[3].Data
	assert.Equal([]byte{0x78, 0x01, 0x01}, idat[:3])
	assert.Equal(uint16(576), binary.LittleEndian.Uint16(idat[3:5]))
	assert.Equal(^uint16(576), binary.LittleEndian.Uint16(idat[5:7]))
	assert.Equal(2+5+576+checksum.Size, len(idat))
	assert.Equal(uint32(0xaeceaa83), binary.BigEndian.Uint32(idat[len(idat)-4:]))
}

func TestPNG_DecodesWithImagePackage(t *testing.T) {
	sizes := []int{1, 7, 16, 64, 333, 1024}
	for _, size := range sizes {
		opts := DefaultOptions()
		opts.Size = size

		ic, err := New(HashIdentity("gopher"), &opts)
		assert.NoError(t, err)
		b, err := ic.Render(RasterRenderer{})
		assert.NoError(t, err)

		img, err := png.Decode(bytes.NewReader(b))
		if !assert.NoError(t, err, "size %d", size) {
			continue
		}
		assert.Equal(t, size, img.Bounds().Dx())
		assert.Equal(t, size, img.Bounds().Dy())

		want := ic.Image()
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				if want.At(x, y) != color.NRGBAModel.Convert(img.At(x, y)) {
					t.Fatalf("size %d: pixel (%d, %d) differs", size, x, y)
				}
			}
		}
	}
}

func TestPNG_Transparency(t *testing.T) {
	assert := assert.New(t)

	opts := DefaultOptions()
	opts.Background = color.NRGBA{}
	fg := color.NRGBA{R: 10, G: 20, B: 30, A: 128}
	opts.Foreground = &fg

	b, err := Generate(testHash, opts)
	assert.NoError(err)

	info, err := Inspect(b)
	assert.NoError(err)
	assert.Equal(color.NRGBA{}, info.Palette[0])
	assert.Equal(fg, info.Palette[1])
}

func TestPNG_Inspect(t *testing.T) {
	assert := assert.New(t)

	ic, err := New(testHash, nil)
	assert.NoError(err)
	b, err := ic.Bytes()
	assert.NoError(err)

	info, err := Inspect(b)
	assert.NoError(err)
	assert.Equal([]string{"IHDR", "PLTE", "tRNS", "IDAT", "IEND"}, info.Chunks)
	assert.Equal(64, info.Size)
	assert.Equal(uint32(0xaeceaa83), info.Adler32)
	assert.Equal(ic.Grid, info.Grid(ic.Margin))
	assert.Equal(ic.Image().Pix, info.Image.Pix)
}

func TestPNG_InspectRejectsCorruption(t *testing.T) {
	assert := assert.New(t)

	b, err := Generate(testHash, DefaultOptions())
	assert.NoError(err)

	// Flip one pixel byte inside IDAT: the chunk CRC no longer matches.
	broken := append([]byte(nil), b...)
	broken[len(broken)-12-8-4] ^= 0xff
	_, err = Inspect(broken)
	assert.True(errors.Is(err, chunk.ErrChecksum), "got %v", err)

	_, err = Inspect(b[:len(b)-5])
	assert.Error(err)

	// A valid container with a wrong Adler-32 trailer.
	chunks, err := chunk.Parse(b)
	assert.NoError(err)
	idat := append([]byte(nil), chunks[3].Data...)
	idat[len(idat)-1] ^= 0x01
	chunks[3].Data = idat
	tampered, err := chunk.Encode(chunks)
	assert.NoError(err)
	_, err = Inspect(tampered)
	if assert.Error(err) {
		assert.True(errors.Is(err, chunk.ErrChecksum), "got %v", err)
		assert.Contains(err.Error(), "adler32")
	}

	// Chunks out of order.
	chunks, err = chunk.Parse(b)
	assert.NoError(err)
	chunks[1], chunks[2] = chunks[2], chunks[1]
	reordered, err := chunk.Encode(chunks)
	assert.NoError(err)
	_, err = Inspect(reordered)
	assert.True(errors.Is(err, ErrEncoding), "got %v", err)
}
