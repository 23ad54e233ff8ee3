// Package sha1 implements the SHA-1 hash algorithm as defined in RFC 3174,
// with a serializable engine state and a pluggable compression backend.
//
// SHA-1 is cryptographically broken and should not be used for secure
// applications. It is still widely used for content addressing and
// integrity checking of existing data.
package sha1

import "encoding/binary"

// The size of a SHA-1 checksum in bytes.
const Size = 20

// The blocksize of SHA-1 in bytes.
const BlockSize = 64

const (
	chunk = 64
	init0 = 0x67452301
	init1 = 0xEFCDAB89
	init2 = 0x98BADCFE
	init3 = 0x10325476
	init4 = 0xC3D2E1F0
)

// CompressFunc folds a single 64-byte block into the running 5-word state.
// Implementations must be drop-in equivalent to the portable one:
// identical inputs must yield identical outputs.
type CompressFunc func(h *[5]uint32, block *[chunk]byte)

// Digest represents the partial evaluation of a checksum.
//
// A Digest is not safe for concurrent use. Independent instances
// (including clones) share no state and may be used in parallel.
type Digest struct {
	h        [5]uint32
	x        [chunk]byte
	nx       int
	len      uint64
	compress CompressFunc // nil means the portable implementation
}

// New returns a new Digest computing the SHA-1 checksum.
// The zero Digest is also valid after a call to Reset.
func New() *Digest {
	d := new(Digest)
	d.Reset()
	return d
}

// NewWithCompress returns a new Digest that uses f as its compression
// backend. Hardware accelerated implementations are injected here; the
// engine itself stays backend-agnostic.
func NewWithCompress(f CompressFunc) *Digest {
	d := New()
	d.compress = f
	return d
}

// Reset restores the initial state. The compression backend is kept.
func (d *Digest) Reset() {
	d.h[0] = init0
	d.h[1] = init1
	d.h[2] = init2
	d.h[3] = init3
	d.h[4] = init4
	d.nx = 0
	d.len = 0
}

// Clone returns an independent copy of d. Writing to the copy does not
// affect the original, so an in-progress hash can be branched into
// separate continuations without re-processing prior input.
func (d *Digest) Clone() *Digest {
	d2 := *d
	return &d2
}

func (d *Digest) Size() int { return Size }

func (d *Digest) BlockSize() int { return BlockSize }

// block processes complete 64-byte blocks of p through the compression
// backend. len(p) must be a multiple of the block size.
func (d *Digest) block(p []byte) {
	f := d.compress
	if f == nil {
		f = compressGeneric
	}
	for len(p) >= chunk {
		f(&d.h, (*[chunk]byte)(p))
		p = p[chunk:]
	}
}

func (d *Digest) Write(p []byte) (nn int, err error) {
	nn = len(p)
	d.len += uint64(nn)
	if d.nx > 0 {
		n := copy(d.x[d.nx:], p)
		d.nx += n
		if d.nx == chunk {
			d.block(d.x[:])
			d.nx = 0
		}
		p = p[n:]
	}
	if len(p) >= chunk {
		n := len(p) &^ (chunk - 1)
		d.block(p[:n])
		p = p[n:]
	}
	if len(p) > 0 {
		d.nx = copy(d.x[:], p)
	}
	return
}

// Sum appends the current checksum to in.
// It does not change the underlying state; the caller can keep writing.
func (d *Digest) Sum(in []byte) []byte {
	// Make a copy of d so that caller can keep writing and summing.
	d0 := *d
	hash := d0.checkSum()
	return append(in, hash[:]...)
}

// SumReset appends the current checksum to in and resets d for reuse,
// without allocating a new Digest.
func (d *Digest) SumReset(in []byte) []byte {
	hash := d.checkSum()
	d.Reset()
	return append(in, hash[:]...)
}

func (d *Digest) checkSum() [Size]byte {
	len := d.len
	// Padding. Add a 1 bit and 0 bits until 56 bytes mod 64.
	var tmp [64]byte
	tmp[0] = 0x80
	if len%64 < 56 {
		d.Write(tmp[0 : 56-len%64])
	} else {
		d.Write(tmp[0 : 64+56-len%64])
	}

	// Length in bits. The shift wraps modulo 2^64 for inputs past
	// 2^61 bytes, matching the width of the length field below.
	len <<= 3
	binary.BigEndian.PutUint64(tmp[:], len)
	d.Write(tmp[0:8])

	if d.nx != 0 {
		panic("d.nx != 0")
	}

	var digest [Size]byte
	binary.BigEndian.PutUint32(digest[0:], d.h[0])
	binary.BigEndian.PutUint32(digest[4:], d.h[1])
	binary.BigEndian.PutUint32(digest[8:], d.h[2])
	binary.BigEndian.PutUint32(digest[12:], d.h[3])
	binary.BigEndian.PutUint32(digest[16:], d.h[4])

	return digest
}

// Sum returns the SHA-1 checksum of data.
func Sum(data []byte) [Size]byte {
	var d Digest
	d.Reset()
	d.Write(data)
	return d.checkSum()
}
