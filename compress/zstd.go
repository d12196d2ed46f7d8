package compress

// ZstdCompressor compresses a colex stream with Zstandard, trading
// compression speed for ratio. Best suited to archival sinks and
// bandwidth-constrained transport, where decompression happens far less
// often than compression.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
