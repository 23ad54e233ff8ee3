package main

import (
	"encoding/hex"
	"fmt"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"

	"damga/sha1"
)

// runBench hashes the requested amount of pseudorandom data through the
// engine and reports throughput.
func runBench(cfg *Config, sizeValue string) error {
	var total ChunkSize
	err := total.Set(sizeValue)
	if err != nil {
		return fmt.Errorf("invalid size %q: %s", sizeValue, err)
	}
	if total <= 0 {
		return fmt.Errorf("invalid size %q", sizeValue)
	}

	buf := make([]byte, int(cfg.Sum.ChunkSize))
	rand.Read(buf) // nolint: gas

	d := sha1.New()
	begin := time.Now()
	var written int64
	for written < int64(total) {
		n := int64(len(buf))
		if remaining := int64(total) - written; remaining < n {
			n = remaining
		}
		d.Write(buf[:n]) // nolint: errcheck
		written += n
	}
	digest := d.Sum(nil)
	elapsed := time.Since(begin)

	speed := float64(written) / elapsed.Seconds()
	fmt.Printf("%s hashed in %s (%s/s)\n", humanize.Bytes(uint64(written)), elapsed.Truncate(time.Millisecond), humanize.Bytes(uint64(speed)))
	fmt.Printf("digest: %s\n", hex.EncodeToString(digest))
	return nil
}
