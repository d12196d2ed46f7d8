// Package errs defines the sentinel errors shared across colex's packages.
//
// Every decoding or encoding failure that callers might want to branch on is
// represented here as a wrapped sentinel, following the same pattern as the
// rest of the codebase: concrete errors are built with fmt.Errorf("%w: ...",
// errs.ErrXxx) so callers can test with errors.Is while still getting a
// descriptive message.
package errs

import "errors"

var (
	// ErrInvalidKey is returned when a path key segment contains a byte in
	// the 0x00..=0x0F tag range, or is not valid UTF-8.
	ErrInvalidKey = errors.New("invalid path key")

	// ErrUnknownTag is returned when a path or value byte stream contains a
	// tag byte outside the defined set.
	ErrUnknownTag = errors.New("unknown tag byte")

	// ErrPathTooLong is returned when an encoded path would exceed the
	// 32 KiB size limit.
	ErrPathTooLong = errors.New("path exceeds 32KiB limit")

	// ErrKeyTooLarge is returned when a stream record's key exceeds the
	// 0x7FFF byte limit imposed by the 16-bit length header.
	ErrKeyTooLarge = errors.New("key exceeds maximum record length")

	// ErrValueTooLarge is returned when a stream record's value exceeds the
	// 0xFFFF byte limit imposed by the 16-bit length header.
	ErrValueTooLarge = errors.New("value exceeds maximum record length")

	// ErrUnsupportedExtension is returned when the decoder encounters an
	// extension record that is not marked optional-skippable.
	ErrUnsupportedExtension = errors.New("unsupported extension record")

	// ErrInvalidFraming is returned when a stream record's header fields
	// violate the framing's own invariants, such as prefix_len exceeding
	// key_len.
	ErrInvalidFraming = errors.New("invalid record framing")

	// ErrInvalidJSONPath is returned when a JSONPath query string fails to
	// parse.
	ErrInvalidJSONPath = errors.New("invalid JSONPath query")

	// ErrOffsetMismatch is returned by the merger when a chunk continuation
	// offset lies past the current end of the target string.
	ErrOffsetMismatch = errors.New("chunk offset does not match target string length")

	// ErrDecoderPoisoned is returned by a decoder once it has surfaced a
	// decoding error; its buffers are left in an unspecified state and
	// further calls are refused.
	ErrDecoderPoisoned = errors.New("decoder is poisoned by a previous error")

	// ErrChecksumMismatch is returned by Decoder.VerifyChecksum when the
	// caller-supplied checksum does not match the digest computed while
	// reading the stream.
	ErrChecksumMismatch = errors.New("stream checksum mismatch")
)
