// Package compress provides optional whole-stream compression codecs for a
// colex byte stream.
//
// A colex stream is already a compact columnar encoding of paths and
// values; this package adds a second, independent layer of general-purpose
// compression on top, applied to the stream's raw bytes by the sink
// package. It supports several algorithms trading ratio for speed:
//   - None: no compression, zero overhead
//   - Zstd: best ratio, moderate speed
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// CreateCodec and GetCodec construct a Codec from a format.CompressionType,
// letting a sink be configured by value rather than by concrete type.
//
// # Choosing an algorithm
//
// Zstd favors archival or bandwidth-constrained transport; S2 is a
// reasonable default for streaming pipelines; LZ4 favors read-heavy
// workloads where decompression speed dominates; None is for data that is
// already incompressible or where CPU is the scarcer resource.
package compress
