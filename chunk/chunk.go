// Package chunk reads and writes the chunked container used by PNG:
// an 8 byte signature followed by length prefixed, CRC protected chunks.
package chunk

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/esimov/identicon/checksum"
	"github.com/pkg/errors"
)

// Signature opens every PNG file.
const Signature = "\x89PNG\r\n\x1a\n"

// Critical and ancillary chunk types written by the identicon encoder.
const (
	IHDR = "IHDR"
	PLTE = "PLTE"
	TRNS = "tRNS"
	IDAT = "IDAT"
	IEND = "IEND"
)

// maxLength is the largest chunk length allowed by the format (2^31-1).
const maxLength = 1<<31 - 1

var (
	// ErrFormat reports a malformed container.
	ErrFormat = errors.New("chunk: invalid format")
	// ErrChecksum reports a stored checksum that does not match the content it guards.
	ErrChecksum = errors.New("chunk: checksum mismatch")
)

// Chunk is a typed unit of the container.
type Chunk struct {
	Type string
	Data []byte
}

// Len returns the number of bytes the chunk occupies once encoded.
func (c Chunk) Len() int {
	return 12 + len(c.Data)
}

// CRC returns the checksum stored after the chunk data: the CRC-32 of type and data.
func (c Chunk) CRC() uint32 {
	crc := checksum.UpdateCRC32(0, []byte(c.Type))
	return checksum.UpdateCRC32(crc, c.Data)
}

func validType(typ string) bool {
	if len(typ) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		c := typ[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return true
}

// Writer emits a container to an underlying io.Writer.
// After the first error every method returns it without writing anything else.
type Writer struct {
	w   io.Writer
	tmp [8]byte
	err error
}

// NewWriter returns a new Writer writing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) write(b []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(b)
}

// WriteSignature writes the 8 byte file signature.
func (w *Writer) WriteSignature() error {
	w.write([]byte(Signature))
	return w.err
}

// WriteChunk writes the big-endian length, the type, the data and the CRC-32 over type and data.
func (w *Writer) WriteChunk(typ string, data []byte) error {
	if w.err != nil {
		return w.err
	}
	if !validType(typ) {
		w.err = errors.Wrapf(ErrFormat, "bad chunk type %q", typ)
		return w.err
	}
	if len(data) > maxLength {
		w.err = errors.Wrapf(ErrFormat, "%s chunk too large: %d bytes", typ, len(data))
		return w.err
	}
	c := Chunk{Type: typ, Data: data}

	binary.BigEndian.PutUint32(w.tmp[:4], uint32(len(data)))
	copy(w.tmp[4:8], typ)
	w.write(w.tmp[:8])
	w.write(data)

	binary.BigEndian.PutUint32(w.tmp[:4], c.CRC())
	w.write(w.tmp[:4])

	return w.err
}

// Err returns the first error encountered, if any.
func (w *Writer) Err() error {
	return w.err
}

// Encode returns the signature followed by the chunks, in the given order.
func Encode(chunks []Chunk) ([]byte, error) {
	size := len(Signature)
	for _, c := range chunks {
		size += c.Len()
	}
	var buf bytes.Buffer
	buf.Grow(size)

	w := NewWriter(&buf)
	w.WriteSignature()
	for _, c := range chunks {
		if err := w.WriteChunk(c.Type, c.Data); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// Parse splits b into its chunks, verifying the signature, the lengths and every CRC.
// The returned chunk data aliases b.
func Parse(b []byte) ([]Chunk, error) {
	if len(b) < len(Signature) || string(b[:len(Signature)]) != Signature {
		return nil, errors.Wrap(ErrFormat, "missing signature")
	}
	b = b[len(Signature):]

	var chunks []Chunk
	for len(b) > 0 {
		if len(b) < 12 {
			return nil, errors.Wrapf(ErrFormat, "truncated chunk header at chunk %d", len(chunks))
		}
		n := binary.BigEndian.Uint32(b[:4])
		if n > maxLength || int(n) > len(b)-12 {
			return nil, errors.Wrapf(ErrFormat, "chunk %d: bad length %d", len(chunks), n)
		}
		c := Chunk{
			Type: string(b[4:8]),
			Data: b[8 : 8+n],
		}
		if !validType(c.Type) {
			return nil, errors.Wrapf(ErrFormat, "chunk %d: bad type %q", len(chunks), c.Type)
		}
		if got, want := binary.BigEndian.Uint32(b[8+n:12+n]), c.CRC(); got != want {
			return nil, errors.Wrapf(ErrChecksum, "%s: stored %08x, computed %08x", c.Type, got, want)
		}
		chunks = append(chunks, c)
		b = b[12+n:]
	}
	return chunks, nil
}
