package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/kosmix/colex/internal/options"
	"github.com/kosmix/colex/path"
	"github.com/kosmix/colex/value"
)

// StreamFlatten walks r token-by-token and invokes emit for every
// flattened (path, value) leaf, using the same token-walking/skip-value
// approach as a streaming decoder, generalized from a fixed shape to
// arbitrary JSON.
//
// Arrays are processed element-by-element in constant memory. Objects are
// buffered one level at a time — every field's raw JSON is read before any
// child is visited, so children can be emitted in sorted key order — which
// bounds memory to the size of the widest single object rather than to the
// whole document, the property that matters for documents dominated by
// large arrays.
func StreamFlatten(r io.Reader, emit func(Entry) error, opts ...Option) error {
	cfg := config{chunkSize: DefaultChunkSize}
	if err := options.Apply(&cfg, opts...); err != nil {
		return err
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()

	chunkSize := cfg.chunkSize
	if cfg.noChunking {
		chunkSize = -1
	}

	return streamValue(dec, chunkSize, path.NewPathBuf(), emit)
}

func streamValue(dec *json.Decoder, chunkSize int, p *path.PathBuf, emit func(Entry) error) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			return streamArray(dec, chunkSize, p, emit)
		case '{':
			return streamObject(dec, chunkSize, p, emit)
		default:
			return fmt.Errorf("document: unexpected closing delimiter %v", t)
		}

	case nil:
		return emitStream(p, value.Null(), emit)

	case bool:
		return emitStream(p, value.Bool(t), emit)

	case json.Number:
		if n, err := t.Int64(); err == nil {
			return emitStream(p, value.Int(n), emit)
		}
		f, err := t.Float64()
		if err != nil {
			return fmt.Errorf("document: number %q: %w", t.String(), err)
		}
		return emitStream(p, value.Float(f), emit)

	case string:
		return streamString(chunkSize, t, p, emit)

	default:
		return fmt.Errorf("document: unexpected JSON token %T", tok)
	}
}

func streamArray(dec *json.Decoder, chunkSize int, p *path.PathBuf, emit func(Entry) error) error {
	for i := 0; dec.More(); i++ {
		childPath := p.Clone()
		if err := childPath.PushIndex(uint64(i)); err != nil {
			return err
		}
		if err := streamValue(dec, chunkSize, childPath, emit); err != nil {
			return err
		}
	}
	_, err := dec.Token() // consume closing ']'
	return err
}

type objectField struct {
	key string
	raw json.RawMessage
}

func streamObject(dec *json.Decoder, chunkSize int, p *path.PathBuf, emit func(Entry) error) error {
	var fields []objectField
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := kt.(string)
		if !ok {
			return fmt.Errorf("document: expected string object key, got %T", kt)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("document: reading field %q: %w", key, err)
		}
		fields = append(fields, objectField{key: key, raw: raw})
	}
	if _, err := dec.Token(); err != nil { // consume closing '}'
		return err
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].key < fields[j].key })

	for _, f := range fields {
		childPath := p.Clone()
		if err := childPath.PushKey(f.key); err != nil {
			return err
		}

		sub := json.NewDecoder(bytes.NewReader(f.raw))
		sub.UseNumber()
		if err := streamValue(sub, chunkSize, childPath, emit); err != nil {
			return err
		}
	}

	return nil
}

func streamString(chunkSize int, s string, p *path.PathBuf, emit func(Entry) error) error {
	b := []byte(s)
	if chunkSize < 0 || len(b) <= chunkSize {
		return emitStream(p, value.String(s), emit)
	}

	index := 0
	for index < len(b) {
		chunkPath := p.Clone()
		if err := chunkPath.PushIndex(uint64(index)); err != nil {
			return err
		}
		if err := chunkPath.PushContinued(); err != nil {
			return err
		}

		pathLen := chunkPath.Len()
		chunkLen := chunkSize - pathLen - 6
		if remaining := len(b) - index; chunkLen > remaining {
			chunkLen = remaining
		}
		if chunkLen <= 0 {
			return fmt.Errorf("document: chunk size %d too small for path of length %d", chunkSize, pathLen)
		}

		chunk := make([]byte, chunkLen)
		copy(chunk, b[index:index+chunkLen])
		if err := emit(Entry{Path: chunkPath.View().Clone(), Value: chunk}); err != nil {
			return err
		}

		index += chunkLen
	}

	return nil
}

func emitStream(p *path.PathBuf, v value.Value, emit func(Entry) error) error {
	buf, err := value.Encode(nil, v)
	if err != nil {
		return err
	}
	return emit(Entry{Path: p.View().Clone(), Value: buf})
}
