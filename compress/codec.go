package compress

import (
	"fmt"

	"github.com/kosmix/colex/format"
)

// Compressor compresses an arbitrary byte slice, typically a full colex
// stream, into an algorithm-specific compressed form.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// The returned slice is newly allocated and owned by the caller; data
	// is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor's transform.
//
// Separate interfaces allow asymmetric implementations where compression
// and decompression have different resource requirements.
type Decompressor interface {
	// Decompress decompresses data and returns the original bytes.
	//
	// Returns an error if data is corrupted or was produced by a different
	// algorithm.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines compression and decompression for a single algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats records the outcome of a single compress/decompress
// operation, useful for deciding which algorithm a sink should use.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64

	// Ratio is the ratio of compressed size to original size (< 1.0 for compression)
	Ratio float64

	// CompressionTimeNs is the time taken to compress the data, in nanoseconds
	CompressionTimeNs int64

	// DecompressionTimeNs is the time taken to decompress the data, in
	// nanoseconds (if applicable)
	DecompressionTimeNs int64
}

// CompressionRatio returns compressed size / original size. Values below
// 1.0 indicate successful compression; 0.0 if OriginalSize is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec builds a Codec for compressionType. target names the caller
// for error messages (e.g. "sink writer").
func CreateCodec(compressionType format.CompressionType, target string) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("invalid %s compression: %s", target, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
