package compress

import (
	"bytes"
	"testing"

	"github.com/kosmix/colex/format"
	"github.com/stretchr/testify/require"
)

var allCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

func TestCodecsRoundTripEmptyInput(t *testing.T) {
	for name, codec := range allCodecs {
		compressed, err := codec.Compress(nil)
		require.NoErrorf(t, err, "%s compress", name)

		decompressed, err := codec.Decompress(compressed)
		require.NoErrorf(t, err, "%s decompress", name)
		require.Empty(t, decompressed)
	}
}

func TestCodecsRoundTripRepetitiveData(t *testing.T) {
	data := bytes.Repeat([]byte("colex-stream-payload"), 500)

	for name, codec := range allCodecs {
		compressed, err := codec.Compress(data)
		require.NoErrorf(t, err, "%s compress", name)

		decompressed, err := codec.Decompress(compressed)
		require.NoErrorf(t, err, "%s decompress", name)
		require.Equalf(t, data, decompressed, "%s round trip", name)
	}
}

func TestNoOpCompressorReturnsInputUnchanged(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	c := NewNoOpCompressor()

	compressed, err := c.Compress(data)
	require.NoError(t, err)
	require.Equal(t, data, compressed)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}

func TestCreateCodecKnownTypes(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := CreateCodec(ct, "test")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}
}

func TestCreateCodecRejectsUnknownType(t *testing.T) {
	_, err := CreateCodec(format.CompressionType(0xFF), "test")
	require.Error(t, err)
}

func TestGetCodecReturnsBuiltins(t *testing.T) {
	codec, err := GetCodec(format.CompressionLZ4)
	require.NoError(t, err)
	require.NotNil(t, codec)

	_, err = GetCodec(format.CompressionType(0xFF))
	require.Error(t, err)
}

func TestCompressionStatsRatioAndSavings(t *testing.T) {
	stats := CompressionStats{OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, stats.CompressionRatio(), 0.0001)
	require.InDelta(t, 75.0, stats.SpaceSavings(), 0.0001)

	zero := CompressionStats{}
	require.Equal(t, 0.0, zero.CompressionRatio())
}

func TestLZ4DecompressHandlesUndersizedInitialBuffer(t *testing.T) {
	data := bytes.Repeat([]byte("a"), 1<<20) // 1MB, well beyond the 4x initial guess for small inputs
	c := NewLZ4Compressor()

	compressed, err := c.Compress(data)
	require.NoError(t, err)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}
