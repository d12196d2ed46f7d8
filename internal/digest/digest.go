// Package digest computes streaming integrity digests over an encoded
// record stream, using the same xxHash64 family used elsewhere for short
// identifiers, but applied incrementally over the whole byte stream instead
// of a single short string. This gives stream.Encoder/stream.Decoder a way
// to detect silent truncation or corruption beyond what the record framing
// itself catches.
package digest

import "github.com/cespare/xxhash/v2"

// Digest accumulates an xxHash64 checksum over bytes written to it via
// Write. It is not safe for concurrent use.
type Digest struct {
	h *xxhash.Digest
}

// New creates a new, empty Digest.
func New() *Digest {
	return &Digest{h: xxhash.New()}
}

// Write feeds data into the running digest. It never returns an error.
func (d *Digest) Write(data []byte) {
	_, _ = d.h.Write(data)
}

// Sum64 returns the current digest value.
func (d *Digest) Sum64() uint64 {
	return d.h.Sum64()
}

// Reset clears the digest back to its initial state so it can be reused.
func (d *Digest) Reset() {
	d.h.Reset()
}
