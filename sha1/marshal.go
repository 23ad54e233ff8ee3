package sha1

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
)

// stateSize is the serialized size of the full engine state:
// 5 state words, the block buffer, the buffer cursor and the length counter.
const stateSize = 5*4 + chunk + 8 + 8

// ErrInvalidState is returned while unmarshaling a corrupt engine state.
var ErrInvalidState = errors.New("sha1: invalid digest state")

// MarshalText encodes the full engine state as hex so that an
// in-progress digest can be persisted and resumed later.
// It never returns an error.
func (d *Digest) MarshalText() ([]byte, error) { // nolint: unparam
	b := bytes.NewBuffer(make([]byte, 0, stateSize))
	binary.Write(b, binary.BigEndian, d.h[0]) // nolint: errcheck
	binary.Write(b, binary.BigEndian, d.h[1]) // nolint: errcheck
	binary.Write(b, binary.BigEndian, d.h[2]) // nolint: errcheck
	binary.Write(b, binary.BigEndian, d.h[3]) // nolint: errcheck
	binary.Write(b, binary.BigEndian, d.h[4]) // nolint: errcheck
	b.Write(d.x[:])
	binary.Write(b, binary.BigEndian, int64(d.nx)) // nolint: errcheck
	binary.Write(b, binary.BigEndian, d.len)       // nolint: errcheck
	ret := make([]byte, hex.EncodedLen(stateSize))
	hex.Encode(ret, b.Bytes())
	return ret, nil
}

// UnmarshalText restores an engine state produced by MarshalText.
// The compression backend is not part of the serialized state and
// is left unchanged.
func (d *Digest) UnmarshalText(text []byte) error {
	if len(text) != hex.EncodedLen(stateSize) {
		return ErrInvalidState
	}
	b := make([]byte, stateSize)
	_, err := hex.Decode(b, text)
	if err != nil {
		return ErrInvalidState
	}
	r := bytes.NewReader(b)
	binary.Read(r, binary.BigEndian, &d.h[0]) // nolint: errcheck
	binary.Read(r, binary.BigEndian, &d.h[1]) // nolint: errcheck
	binary.Read(r, binary.BigEndian, &d.h[2]) // nolint: errcheck
	binary.Read(r, binary.BigEndian, &d.h[3]) // nolint: errcheck
	binary.Read(r, binary.BigEndian, &d.h[4]) // nolint: errcheck
	r.Read(d.x[:])                            // nolint: errcheck
	var nx int64
	binary.Read(r, binary.BigEndian, &nx) // nolint: errcheck
	if nx < 0 || nx >= chunk {
		return ErrInvalidState
	}
	d.nx = int(nx)
	binary.Read(r, binary.BigEndian, &d.len) // nolint: errcheck
	return nil
}
