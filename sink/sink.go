// Package sink wraps a colex byte stream with optional whole-stream
// compression, so an entire stream.Encoder/stream.Decoder session can be
// written to or read from a single compressed block.
//
// Unlike the per-record framing in the stream package, a sink operates on
// the stream as a single unit: a Writer buffers everything written to it
// and compresses the accumulated bytes once on Close, and a Reader reads
// and decompresses its whole input eagerly on construction. This trades
// streaming latency for a simpler, self-contained compressed artifact —
// appropriate for colex streams written to a file, object store, or
// network payload as a whole, rather than consumed incrementally.
package sink

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kosmix/colex/compress"
	"github.com/kosmix/colex/format"
)

// headerSize is 1 byte for the format.CompressionType tag plus an 8 byte
// big-endian uncompressed length, which NewReader checks against the
// length of the decompressed payload.
const headerSize = 1 + 8

// Writer buffers everything written to it and, on Close, compresses the
// accumulated bytes with the configured algorithm and writes them to the
// underlying io.Writer as a single framed block.
type Writer struct {
	w      io.Writer
	codec  compress.Codec
	ctype  format.CompressionType
	buf    bytes.Buffer
	closed bool
}

// NewWriter creates a Writer that compresses everything written to it with
// ctype before flushing to w on Close.
func NewWriter(w io.Writer, ctype format.CompressionType) (*Writer, error) {
	codec, err := compress.CreateCodec(ctype, "sink writer")
	if err != nil {
		return nil, err
	}
	return &Writer{w: w, codec: codec, ctype: ctype}, nil
}

// NewZstdWriter creates a Writer compressing with Zstandard.
func NewZstdWriter(w io.Writer) (*Writer, error) { return NewWriter(w, format.CompressionZstd) }

// NewS2Writer creates a Writer compressing with S2.
func NewS2Writer(w io.Writer) (*Writer, error) { return NewWriter(w, format.CompressionS2) }

// NewLZ4Writer creates a Writer compressing with LZ4.
func NewLZ4Writer(w io.Writer) (*Writer, error) { return NewWriter(w, format.CompressionLZ4) }

// Write buffers p for compression on Close. It never fails except after
// Close has already been called.
func (s *Writer) Write(p []byte) (int, error) {
	if s.closed {
		return 0, fmt.Errorf("sink: write after close")
	}
	return s.buf.Write(p)
}

// Close compresses the buffered bytes and writes the framed block to the
// underlying writer. Calls after the first do nothing and return nil.
func (s *Writer) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	raw := s.buf.Bytes()
	compressed, err := s.codec.Compress(raw)
	if err != nil {
		return fmt.Errorf("sink: compress with %s: %w", s.ctype, err)
	}

	var hdr [headerSize]byte
	hdr[0] = byte(s.ctype)
	binary.BigEndian.PutUint64(hdr[1:], uint64(len(raw)))

	if _, err := s.w.Write(hdr[:]); err != nil {
		return fmt.Errorf("sink: write header: %w", err)
	}
	if _, err := s.w.Write(compressed); err != nil {
		return fmt.Errorf("sink: write compressed payload: %w", err)
	}
	return nil
}

// Reader decompresses a block written by Writer and exposes the original
// bytes for reading.
type Reader struct {
	*bytes.Reader

	// CompressionType is the algorithm the block declared it was written
	// with, exposed for callers that want to report or log it.
	CompressionType format.CompressionType
}

// NewReader reads and decompresses r's entire contents eagerly, returning
// a Reader over the original uncompressed bytes.
func NewReader(r io.Reader) (*Reader, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("sink: read header: %w", err)
	}
	ctype := format.CompressionType(hdr[0])
	uncompressedLen := binary.BigEndian.Uint64(hdr[1:])

	codec, err := compress.CreateCodec(ctype, "sink reader")
	if err != nil {
		return nil, err
	}

	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sink: read compressed payload: %w", err)
	}

	raw, err := codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("sink: decompress with %s: %w", ctype, err)
	}
	if uint64(len(raw)) != uncompressedLen {
		return nil, fmt.Errorf("sink: decompressed length %d does not match header length %d", len(raw), uncompressedLen)
	}

	return &Reader{Reader: bytes.NewReader(raw), CompressionType: ctype}, nil
}
