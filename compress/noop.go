package compress

// NoOpCompressor is a pass-through Codec: it bypasses a colex stream's bytes
// without compressing them.
//
// Useful for:
//   - benchmarking sink overhead in isolation from any real codec
//   - disabling compression while debugging a stream's raw framing
//   - data that is already compressed upstream, or too small to benefit
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a pass-through compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged. The returned slice aliases the input;
// callers must not mutate data afterward if they still hold the result.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged, mirroring Compress.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
