// Package endian provides byte order utilities for colex's binary encodings.
//
// The wire formats in this module are not byte-order-configurable the way a
// general-purpose binary format might be — stream record headers are fixed
// big-endian and FLOAT values fixed little-endian — so this package exists
// purely to give the rest of the codebase a single, allocation-light
// place to append multi-byte integers via AppendByteOrder, rather than
// scattering encoding/binary calls (and their intermediate buffers) across
// value and stream.
package endian

import "encoding/binary"

// Engine combines ByteOrder and AppendByteOrder from encoding/binary into a
// single interface.
//
// Using Engine.AppendUint16/AppendUint64 avoids the intermediate fixed-size
// buffer that PutUint16/PutUint64 require:
//
//	// extra allocation-free path
//	buf = engine.AppendUint16(buf, value)
//
//	// PutUint16 alone needs a temporary buffer
//	tmp := make([]byte, 2)
//	engine.PutUint16(tmp, value)
//	buf = append(buf, tmp...)
type Engine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Big is the engine used for stream record headers (key_len, value_len,
// prefix_len). Path Index segments are big-endian too, but the path
// package writes their bytes directly without this engine.
var Big Engine = binary.BigEndian

// Little is the engine used to encode FLOAT values.
var Little Engine = binary.LittleEndian
