// Package colex provides a streaming, columnar-leaning codec for flattened
// hierarchical documents: JSON-like trees are flattened into a sorted list
// of (path, value) leaves, encoded to a compact prefix-compressed byte
// stream, and can be merged back into a tree or queried in place with a
// JSONPath-subset matcher.
//
// # Core features
//
//   - Byte-lexicographic path encoding whose order matches document
//     traversal order, so encoded streams are naturally sortable
//   - Tagged scalar value encoding for null, bool, string, float, and
//     variable-length zig-zag integers
//   - Prefix-compressed record framing with forward-compatible extension
//     records
//   - A flattener/merger pair that round-trips JSON documents, chunking
//     long strings across records; null object fields, trailing null
//     array elements, and empty arrays or objects are not reproduced by
//     the merge
//   - A JSONPath-subset query matcher that tests a decoded path directly,
//     without rebuilding the document
//   - Optional whole-stream compression (Zstd, S2, LZ4) via the sink
//     package
//
// # Basic usage
//
// Flattening and encoding a document:
//
//	import "github.com/kosmix/colex"
//
//	root, _ := document.FromJSON(jsonBytes)
//	entries, _ := document.Flatten(root)
//
//	var buf bytes.Buffer
//	enc := colex.NewEncoder(&buf)
//	for _, e := range entries {
//	    enc.WriteNext(e.Path.Bytes(), e.Value)
//	}
//	enc.Close()
//
// Decoding and merging back into a document:
//
//	dec := colex.NewDecoder(&buf)
//	var entries []document.Entry
//	for {
//	    p, v, ok, err := dec.Next()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if !ok {
//	        break
//	    }
//	    entries = append(entries, document.Entry{Path: p.Clone(), Value: append([]byte(nil), v...)})
//	}
//	root, _ := document.Merge(entries)
//
// Querying a decoded path without merging:
//
//	q, _ := colex.ParseQuery("$.users[*].name")
//	if q.IsMatch(p) {
//	    // ...
//	}
//
// # Package structure
//
// This package provides convenient top-level wrappers around path, value,
// stream, document, and jsonpath. For advanced usage and fine-grained
// control over any single stage, use those packages directly.
package colex

import (
	"io"

	"github.com/kosmix/colex/document"
	"github.com/kosmix/colex/jsonpath"
	"github.com/kosmix/colex/path"
	"github.com/kosmix/colex/stream"
)

// NewEncoder creates a stream.Encoder writing a prefix-compressed record
// stream to w. Records are accepted in any order; prefix compression only
// saves space when they are written in encoded-path order.
func NewEncoder(w io.Writer) *stream.Encoder {
	return stream.NewEncoder(w)
}

// NewDecoder creates a stream.Decoder reading a prefix-compressed record
// stream from r.
func NewDecoder(r io.Reader) *stream.Decoder {
	return stream.NewDecoder(r)
}

// Flatten decodes a JSON document and flattens it into a sorted list of
// (path, value) entries, chunking any string value larger than the
// configured chunk size across multiple entries.
//
// Example:
//
//	entries, err := colex.Flatten(jsonBytes)
func Flatten(jsonData []byte, opts ...document.Option) ([]document.Entry, error) {
	root, err := document.FromJSON(jsonData)
	if err != nil {
		return nil, err
	}
	return document.Flatten(root, opts...)
}

// Merge reassembles a document.Node tree from flattened entries, applying
// the null-removal, array-growth, and chunk-reassembly rules of the
// merger.
func Merge(entries []document.Entry) (*document.Node, error) {
	return document.Merge(entries)
}

// ParseQuery parses a JSONPath-subset query string for use with
// jsonpath.Query.IsMatch against decoded paths.
func ParseQuery(query string) (*jsonpath.Query, error) {
	return jsonpath.Parse(query)
}

// ParsePath decodes a single encoded path's byte representation, without
// needing a running Decoder.
func ParsePath(encoded []byte) (path.Path, error) {
	p := path.FromBytes(encoded)
	if _, err := p.Segments(); err != nil {
		return path.Path{}, err
	}
	return p, nil
}
