package checksum

import "hash"

// mod is the largest prime smaller than 65536.
const mod = 65521

// nmax is the largest n such that 255 * n * (n+1) / 2 + (n+1) * (mod-1) <= 2^32-1.
// The running sums can be kept unreduced for that many bytes.
const nmax = 5552

// adlerDigest represents the partial evaluation of an Adler-32 checksum.
// The low 16 bits hold a, the high 16 bits hold b.
type adlerDigest uint32

var _ hash.Hash32 = (*adlerDigest)(nil)

// NewAdler32 returns a new hash.Hash32 computing the Adler-32 checksum.
func NewAdler32() hash.Hash32 {
	d := new(adlerDigest)
	d.Reset()
	return d
}

func (d *adlerDigest) Size() int { return Size }

func (d *adlerDigest) BlockSize() int { return 4 }

func (d *adlerDigest) Reset() { *d = 1 }

func (d *adlerDigest) Write(p []byte) (n int, err error) {
	*d = updateAdler(*d, p)
	return len(p), nil
}

func (d *adlerDigest) Sum32() uint32 { return uint32(*d) }

func (d *adlerDigest) Sum(in []byte) []byte {
	s := uint32(*d)
	return append(in, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

func updateAdler(d adlerDigest, p []byte) adlerDigest {
	s1, s2 := uint32(d&0xffff), uint32(d>>16)
	for len(p) > 0 {
		var q []byte
		if len(p) > nmax {
			p, q = p[:nmax], p[nmax:]
		}
		for _, x := range p {
			s1 += uint32(x)
			s2 += s1
		}
		s1 %= mod
		s2 %= mod
		p = q
	}
	return adlerDigest(s2<<16 | s1)
}

// Adler32 returns the Adler-32 checksum of data.
func Adler32(data []byte) uint32 {
	return uint32(updateAdler(1, data))
}
