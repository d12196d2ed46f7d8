// Package value implements colex's tagged scalar value encoding: the
// NULL, BOOL, STRING, FLOAT, and INTEGER wire representations that travel
// alongside each encoded path in a colex stream.
//
// Chunked string continuations are deliberately out of scope here: a
// continuation's wire value is raw bytes with no tag at all, so the
// document package handles those directly rather than through Decode.
package value

import (
	"fmt"
	"math"

	"github.com/kosmix/colex/endian"
	"github.com/kosmix/colex/errs"
)

// Tag bytes. NULL/BOOL/STRING/FLOAT all have the high bit set (>= 0x80);
// INTEGER tags are the literal payload byte length (0, 1, 2, 4, or 8) with
// the high bit clear, so the two families never collide.
const (
	TagBoolFalse byte = 0x80
	TagBoolTrue  byte = 0x81
	TagString    byte = 0x82
	TagFloat     byte = 0x83
	TagNull      byte = 0x84
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

// Value is a decoded scalar. Only the field matching Kind is meaningful.
type Value struct {
	Kind Kind
	Bool bool
	Int  int64
	Flt  float64
	Str  string
}

func Null() Value           { return Value{Kind: KindNull} }
func Bool(b bool) Value     { return Value{Kind: KindBool, Bool: b} }
func Int(n int64) Value     { return Value{Kind: KindInt, Int: n} }
func Float(f float64) Value { return Value{Kind: KindFloat, Flt: f} }
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Equal reports whether two Values hold the same kind and payload. NaN
// floats compare equal to themselves here, unlike Go's ==, since colex
// treats a value as data to round-trip rather than to do arithmetic on.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool == other.Bool
	case KindInt:
		return v.Int == other.Int
	case KindFloat:
		return v.Flt == other.Flt || (math.IsNaN(v.Flt) && math.IsNaN(other.Flt))
	case KindString:
		return v.Str == other.Str
	default:
		return false
	}
}

// zigZagEncode maps a signed integer to an unsigned one so that small
// magnitudes (positive or negative) encode in fewer bytes.
func zigZagEncode(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

// zigZagDecode reverses zigZagEncode.
func zigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// intByteLen returns the smallest of {0,1,2,4,8} bytes that can hold u.
func intByteLen(u uint64) int {
	switch {
	case u == 0:
		return 0
	case u <= 0xFF:
		return 1
	case u <= 0xFFFF:
		return 2
	case u <= 0xFFFFFFFF:
		return 4
	default:
		return 8
	}
}

// Encode appends v's wire representation to dst and returns the result.
func Encode(dst []byte, v Value) ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return append(dst, TagNull), nil

	case KindBool:
		if v.Bool {
			return append(dst, TagBoolTrue), nil
		}
		return append(dst, TagBoolFalse), nil

	case KindString:
		dst = append(dst, TagString)
		return append(dst, v.Str...), nil

	case KindFloat:
		dst = append(dst, TagFloat)
		return endian.Little.AppendUint64(dst, math.Float64bits(v.Flt)), nil

	case KindInt:
		u := zigZagEncode(v.Int)
		l := intByteLen(u)
		dst = append(dst, byte(l))
		for i := l - 1; i >= 0; i-- {
			dst = append(dst, byte(u>>(8*i)))
		}
		return dst, nil

	default:
		return nil, fmt.Errorf("%w: unknown value kind %d", errs.ErrUnknownTag, v.Kind)
	}
}

// Decode reads one tagged value from src, returning the decoded Value and
// the number of bytes consumed.
func Decode(src []byte) (Value, int, error) {
	if len(src) == 0 {
		return Value{}, 0, fmt.Errorf("%w: empty value buffer", errs.ErrUnknownTag)
	}

	tag := src[0]
	switch tag {
	case TagNull:
		return Null(), 1, nil
	case TagBoolFalse:
		return Bool(false), 1, nil
	case TagBoolTrue:
		return Bool(true), 1, nil
	case TagString:
		return String(string(src[1:])), len(src), nil
	case TagFloat:
		if len(src) < 9 {
			return Value{}, 0, fmt.Errorf("%w: truncated float payload", errs.ErrUnknownTag)
		}
		bits := endian.Little.Uint64(src[1:9])
		return Float(math.Float64frombits(bits)), 9, nil
	}

	if tag <= 0x08 && isValidIntLen(tag) {
		l := int(tag)
		if len(src) < 1+l {
			return Value{}, 0, fmt.Errorf("%w: truncated integer payload", errs.ErrUnknownTag)
		}
		var u uint64
		for i := 0; i < l; i++ {
			u = (u << 8) | uint64(src[1+i])
		}
		return Int(zigZagDecode(u)), 1 + l, nil
	}

	return Value{}, 0, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownTag, tag)
}

func isValidIntLen(l byte) bool {
	switch l {
	case 0, 1, 2, 4, 8:
		return true
	default:
		return false
	}
}
