// Package zlib wraps a payload into a zlib stream made only of "stored" deflate blocks.
// Nothing is compressed.
package zlib

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/esimov/identicon/checksum"
)

// MaxBlockSize is the largest payload a single stored block can carry.
const MaxBlockSize = 0xffff

const (
	// cmf selects deflate with a 32K window, flg carries no dictionary, the fastest
	// level and the check bits making the 16 bit header a multiple of 31.
	cmf = 0x78
	flg = 0x01

	blockHeaderLen = 5
	trailerLen     = checksum.Size
)

// ErrClosed is returned on writes after Close.
var ErrClosed = errors.New("zlib: write after close")

// StoredLen returns the length of the stream produced for a payload of n bytes.
func StoredLen(n int) int {
	blocks := (n + MaxBlockSize - 1) / MaxBlockSize
	if blocks == 0 {
		blocks = 1
	}
	return 2 + blocks*blockHeaderLen + n + trailerLen
}

// Store returns the payload wrapped into a zlib stream.
func Store(payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(StoredLen(len(payload)))

	w := NewWriter(&buf)
	w.Write(payload)
	w.Close()

	return buf.Bytes()
}

// Writer collects the payload and emits the whole stream on Close.
// The block boundaries depend only on the total length, so the output is
// identical whatever the sequence of Write calls was.
type Writer struct {
	w      io.Writer
	buf    bytes.Buffer
	closed bool
	err    error
}

// NewWriter returns a Writer emitting the zlib stream to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write buffers p. It never fails before Close.
func (z *Writer) Write(p []byte) (int, error) {
	if z.closed {
		return 0, ErrClosed
	}
	return z.buf.Write(p)
}

// Close writes the header, the stored blocks and the Adler-32 trailer.
func (z *Writer) Close() error {
	if z.closed {
		return z.err
	}
	z.closed = true

	payload := z.buf.Bytes()
	out := make([]byte, 0, StoredLen(len(payload)))
	out = append(out, cmf, flg)

	for {
		n := len(payload)
		final := byte(0)
		if n <= MaxBlockSize {
			final = 1
		} else {
			n = MaxBlockSize
		}
		// BFINAL in bit 0, BTYPE 00 in bits 1-2, the rest of the byte is padding.
		out = append(out, final)
		out = binary.LittleEndian.AppendUint16(out, uint16(n))
		out = binary.LittleEndian.AppendUint16(out, ^uint16(n))
		out = append(out, payload[:n]...)

		payload = payload[n:]
		if final == 1 {
			break
		}
	}
	out = binary.BigEndian.AppendUint32(out, checksum.Adler32(z.buf.Bytes()))

	_, z.err = z.w.Write(out)
	return z.err
}
