package main

import (
	"errors"
	"io"

	"damga/sha1"
)

// Sha1File calculates SHA-1 of the file as it is read.
// Re-reading already hashed ranges after a backwards seek does not
// feed the digest twice; seeking past hashed data is an error.
type Sha1File struct {
	rs         io.ReadSeeker
	position   int64
	calculated int64
	digest     *sha1.Digest
}

func NewSha1File(rs io.ReadSeeker) *Sha1File {
	return &Sha1File{
		rs:     rs,
		digest: sha1.New(),
	}
}

func (f *Sha1File) Read(p []byte) (int, error) {
	if f.position > f.calculated {
		return 0, errors.New("missing data for sha1")
	}
	prev := f.position
	n, err := f.rs.Read(p)
	f.position += int64(n)
	if f.position > f.calculated {
		// Hash only the part that has not been seen before.
		c := p[f.calculated-prev : n]
		f.digest.Write(c) // nolint: errcheck
		f.calculated += int64(len(c))
	}
	return n, err
}

func (f *Sha1File) Seek(offset int64, whence int) (int64, error) {
	newPosition, err := f.rs.Seek(offset, whence)
	if err != nil {
		return newPosition, err
	}
	if f.position < newPosition {
		return newPosition, errors.New("seeking forward is not supported")
	}
	f.position = newPosition
	return newPosition, nil
}

func (f *Sha1File) Sum(b []byte) []byte {
	return f.digest.Sum(b)
}
