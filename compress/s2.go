package compress

import "github.com/klauspost/compress/s2"

// S2Compressor compresses a colex stream with S2, Snappy's faster
// successor. Sits between NoOp and Zstd: a real ratio improvement at a
// fraction of Zstd's CPU cost, the middle choice for a sink that can't
// afford Zstd's encode latency but still wants the bytes shrunk.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates an S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress encodes data with S2.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// Decompress decodes S2-compressed data.
func (c S2Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Decode(nil, data)
}
