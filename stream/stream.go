// Package stream implements colex's prefix-compressed record stream: the
// framing that carries a sequence of (path, value) byte pairs, compressing
// each key against the previous one and supporting forward-compatible
// extension records.
package stream

import (
	"fmt"
	"io"

	"github.com/kosmix/colex/endian"
	"github.com/kosmix/colex/errs"
	"github.com/kosmix/colex/internal/digest"
	"github.com/kosmix/colex/internal/pool"
	"github.com/kosmix/colex/path"
)

// headerSize is the fixed 6-byte record header: key_len, value_len,
// prefix_len, each a big-endian u16.
const headerSize = 6

// extensionBit marks key_len's top bit to flag an extension record.
const extensionBit uint16 = 0x8000

// optionalBit marks prefix_len's top bit to flag an optional-skippable
// extension record (as opposed to a mandatory-unknown one).
const optionalBit uint16 = 0x8000

// maxKeyLen is the largest key length representable once the extension bit
// is reserved out of key_len's 16 bits.
const maxKeyLen = 0x7FFF

// maxValueLen is the largest value length a 16-bit value_len can hold.
const maxValueLen = 0xFFFF

// Encoder writes a prefix-compressed record stream to an underlying writer.
// It is not safe for concurrent use.
type Encoder struct {
	w       io.Writer
	lastKey *pool.ByteBuffer
	digest  *digest.Digest
	hdr     [headerSize]byte
}

// NewEncoder creates an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{
		w:       w,
		lastKey: pool.Get(),
		digest:  digest.New(),
	}
}

// Close returns the encoder's pooled buffer. It does not close w.
func (e *Encoder) Close() {
	pool.Put(e.lastKey)
	e.lastKey = nil
}

// WriteNext writes one record: it computes the longest common prefix
// against the previously written key, emits the header and the key's
// non-shared tail, then the value, and updates the running key for the
// next call.
func (e *Encoder) WriteNext(key, value []byte) error {
	if len(key) > maxKeyLen {
		return fmt.Errorf("%w: %d bytes", errs.ErrKeyTooLarge, len(key))
	}
	if len(value) > maxValueLen {
		return fmt.Errorf("%w: %d bytes", errs.ErrValueTooLarge, len(value))
	}

	prefixLen := commonPrefixLen(e.lastKey.Bytes(), key)

	endian.Big.PutUint16(e.hdr[0:2], uint16(len(key)))
	endian.Big.PutUint16(e.hdr[2:4], uint16(len(value)))
	endian.Big.PutUint16(e.hdr[4:6], uint16(prefixLen))

	if err := e.write(e.hdr[:]); err != nil {
		return err
	}
	if err := e.write(key[prefixLen:]); err != nil {
		return err
	}
	if err := e.write(value); err != nil {
		return err
	}

	e.lastKey.SetLength(len(key))
	copy(e.lastKey.Bytes(), key)

	return nil
}

func (e *Encoder) write(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if _, err := e.w.Write(b); err != nil {
		return err
	}
	e.digest.Write(b)
	return nil
}

// Checksum returns the running xxHash64 digest of every byte written so
// far, for callers that want end-to-end integrity checking beyond the
// record framing itself.
func (e *Encoder) Checksum() uint64 { return e.digest.Sum64() }

// commonPrefixLen returns the number of leading bytes a and b share.
func commonPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// Decoder reads a prefix-compressed record stream from an underlying
// reader. It is not safe for concurrent use. A Decoder is poisoned after
// the first error: further calls to Next return ErrDecoderPoisoned.
type Decoder struct {
	r         io.Reader
	lastKey   *pool.ByteBuffer
	lastValue *pool.ByteBuffer
	digest    *digest.Digest
	hdr       [headerSize]byte
	poisoned  bool
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:         r,
		lastKey:   pool.Get(),
		lastValue: pool.Get(),
		digest:    digest.New(),
	}
}

// Close returns the decoder's pooled buffers. It does not close r.
func (d *Decoder) Close() {
	pool.Put(d.lastKey)
	pool.Put(d.lastValue)
	d.lastKey, d.lastValue = nil, nil
}

// Checksum returns the running xxHash64 digest of the record bytes consumed
// so far: every record header, extension headers included, plus the key
// tails and values of non-extension records. The skipped payloads of
// extension records are not included.
func (d *Decoder) Checksum() uint64 { return d.digest.Sum64() }

// VerifyChecksum compares want against the digest accumulated from records
// read so far, returning errs.ErrChecksumMismatch if they differ. Callers
// that carry an out-of-band checksum alongside the stream (for example one
// produced by Encoder.Checksum) call this
// once Next reports a clean end of stream, to detect corruption or silent
// truncation that the record framing itself does not catch.
func (d *Decoder) VerifyChecksum(want uint64) error {
	if got := d.Checksum(); got != want {
		return fmt.Errorf("%w: got 0x%x, want 0x%x", errs.ErrChecksumMismatch, got, want)
	}
	return nil
}

// Next reads and returns the next record as a borrowed Path and value byte
// slice, valid only until the next call to Next. ok is false with a nil
// err at a clean end of stream; ok is false with a non-nil err otherwise.
// Next transparently skips optional-skippable extension records and
// returns ErrUnsupportedExtension for mandatory-unknown ones.
func (d *Decoder) Next() (p path.Path, value []byte, ok bool, err error) {
	if d.poisoned {
		return path.Path{}, nil, false, errs.ErrDecoderPoisoned
	}

	for {
		var skipped bool
		p, value, ok, skipped, err = d.next()
		if err != nil {
			d.poisoned = true
			return path.Path{}, nil, false, err
		}
		if !ok {
			return path.Path{}, nil, false, nil
		}
		if !skipped {
			return p, value, true, nil
		}
		// optional-skippable extension record was discarded; read the next one
	}
}

// next reads one record. ok is false with no error at a clean end of
// stream. skipped is true when an optional-skippable extension record was
// consumed and discarded, in which case the caller should read again.
func (d *Decoder) next() (p path.Path, value []byte, ok bool, skipped bool, err error) {
	n, err := io.ReadFull(d.r, d.hdr[:])
	if err != nil {
		if err == io.EOF && n == 0 {
			return path.Path{}, nil, false, false, nil
		}
		return path.Path{}, nil, false, false, err
	}
	d.digest.Write(d.hdr[:])

	keyLenField := endian.Big.Uint16(d.hdr[0:2])
	valueLen := endian.Big.Uint16(d.hdr[2:4])
	prefixLenField := endian.Big.Uint16(d.hdr[4:6])

	if keyLenField&extensionBit != 0 {
		keyLen := keyLenField &^ extensionBit
		if prefixLenField&optionalBit != 0 {
			skip := int(keyLen) + int(valueLen)
			if err := d.discard(skip); err != nil {
				return path.Path{}, nil, false, false, err
			}
			return path.Path{}, nil, true, true, nil
		}
		return path.Path{}, nil, false, false, fmt.Errorf("%w: key_len=0x%04x", errs.ErrUnsupportedExtension, keyLenField)
	}

	keyLen := keyLenField
	prefixLen := prefixLenField

	if prefixLen > keyLen {
		d.poisoned = true
		return path.Path{}, nil, false, false, fmt.Errorf("%w: prefix_len %d exceeds key_len %d", errs.ErrInvalidFraming, prefixLen, keyLen)
	}

	d.lastKey.SetLength(int(keyLen))
	tail := d.lastKey.Bytes()[prefixLen:]
	if err := d.readFull(tail); err != nil {
		return path.Path{}, nil, false, false, err
	}

	d.lastValue.SetLength(int(valueLen))
	if err := d.readFull(d.lastValue.Bytes()); err != nil {
		return path.Path{}, nil, false, false, err
	}

	return path.FromBytes(d.lastKey.Bytes()), d.lastValue.Bytes(), true, false, nil
}

func (d *Decoder) readFull(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if _, err := io.ReadFull(d.r, b); err != nil {
		return err
	}
	d.digest.Write(b)
	return nil
}

func (d *Decoder) discard(n int) error {
	if n == 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, d.r, int64(n))
	return err
}
