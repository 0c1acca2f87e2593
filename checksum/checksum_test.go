package checksum

import (
	"hash/adler32"
	"hash/crc32"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var samples = []string{
	"",
	"a",
	"IEND",
	"IHDR\x00\x00\x00\x40\x00\x00\x00\x40\x01\x03\x00\x00\x00",
	"The quick brown fox jumps over the lazy dog",
	strings.Repeat("\xff", 6000),
	strings.Repeat("0123456789abcdef", 9000),
}

func TestCRC32_KnownValues(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(0), CRC32(nil))
	assert.Equal(uint32(0xcbf43926), CRC32([]byte("123456789")))
	// CRC of an empty IEND chunk is a constant found at the end of every PNG file.
	assert.Equal(uint32(0xae426082), CRC32([]byte("IEND")))
}

func TestCRC32_MatchesStdlib(t *testing.T) {
	for _, s := range samples {
		assert.Equal(t, crc32.ChecksumIEEE([]byte(s)), CRC32([]byte(s)), "len %d", len(s))
	}
}

func TestCRC32_Streaming(t *testing.T) {
	assert := assert.New(t)

	data := []byte(samples[4])
	h := NewCRC32()
	for i := 0; i < len(data); i += 7 {
		end := i + 7
		if end > len(data) {
			end = len(data)
		}
		_, err := h.Write(data[i:end])
		assert.NoError(err)
	}
	assert.Equal(CRC32(data), h.Sum32())
	assert.Equal(UpdateCRC32(CRC32(data[:10]), data[10:]), h.Sum32())
	assert.Equal(Size, h.Size())

	sum := h.Sum(nil)
	assert.Len(sum, 4)
	assert.Equal(byte(h.Sum32()>>24), sum[0])

	h.Reset()
	assert.Equal(uint32(0), h.Sum32())
}

func TestCRC32_ConcurrentInit(t *testing.T) {
	var wg sync.WaitGroup
	want := crc32.ChecksumIEEE([]byte(samples[4]))

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, CRC32([]byte(samples[4])))
		}()
	}
	wg.Wait()
}

func TestAdler32_KnownValues(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(uint32(1), Adler32(nil))
	assert.Equal(uint32(0x11e60398), Adler32([]byte("Wikipedia")))
}

func TestAdler32_MatchesStdlib(t *testing.T) {
	for _, s := range samples {
		assert.Equal(t, adler32.Checksum([]byte(s)), Adler32([]byte(s)), "len %d", len(s))
	}
}

func TestAdler32_Streaming(t *testing.T) {
	assert := assert.New(t)

	data := []byte(samples[6])
	h := NewAdler32()
	assert.Equal(uint32(1), h.Sum32())

	for i := 0; i < len(data); i += 4099 {
		end := i + 4099
		if end > len(data) {
			end = len(data)
		}
		_, err := h.Write(data[i:end])
		assert.NoError(err)
	}
	assert.Equal(Adler32(data), h.Sum32())

	h.Reset()
	assert.Equal(uint32(1), h.Sum32())
}
