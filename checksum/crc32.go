// Package checksum implements the two checksums needed to produce a PNG file:
// the CRC-32 which guards every chunk and the Adler-32 which closes the zlib stream.
package checksum

import (
	"hash"
	"sync"
)

// Size of a CRC-32 or Adler-32 checksum in bytes.
const Size = 4

// ieee is the reversed IEEE 802.3 polynomial used by PNG.
const ieee = 0xedb88320

var (
	crcTable [256]uint32
	crcOnce  sync.Once
)

// makeTable fills the lookup table. It runs exactly once, the table is read only afterwards.
func makeTable() {
	for i := range crcTable {
		c := uint32(i)
		for k := 0; k < 8; k++ {
			if c&1 == 1 {
				c = ieee ^ (c >> 1)
			} else {
				c >>= 1
			}
		}
		crcTable[i] = c
	}
}

// UpdateCRC32 returns the result of adding the bytes in b to the crc.
// The crc is the finalized value of a previous call, 0 to start a new checksum.
func UpdateCRC32(crc uint32, b []byte) uint32 {
	crcOnce.Do(makeTable)

	c := ^crc
	for _, v := range b {
		c = crcTable[byte(c)^v] ^ (c >> 8)
	}
	return ^c
}

// CRC32 returns the CRC-32 checksum of b.
func CRC32(b []byte) uint32 {
	return UpdateCRC32(0, b)
}

// crcDigest is a streaming CRC-32.
type crcDigest struct {
	crc uint32
}

var _ hash.Hash32 = (*crcDigest)(nil)

// NewCRC32 creates a new hash.Hash32 computing the CRC-32 checksum.
func NewCRC32() hash.Hash32 {
	return &crcDigest{}
}

func (d *crcDigest) Size() int { return Size }

func (d *crcDigest) BlockSize() int { return 1 }

func (d *crcDigest) Reset() { d.crc = 0 }

func (d *crcDigest) Write(p []byte) (n int, err error) {
	d.crc = UpdateCRC32(d.crc, p)
	return len(p), nil
}

func (d *crcDigest) Sum32() uint32 { return d.crc }

func (d *crcDigest) Sum(in []byte) []byte {
	s := d.Sum32()
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}
