package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// FromJSON decodes a JSON document into a Node tree, mirroring a generic
// JSON value's shape: null, bool, string, number, array, object. JSON
// numbers are classified as Int when they parse as a whole int64, Float
// otherwise.
func FromJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("document: decode JSON: %w", err)
	}

	return fromAny(raw)
}

func fromAny(raw any) (*Node, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return Int(n), nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("document: number %q: %w", v.String(), err)
		}
		return Float(f), nil
	case []any:
		items := make([]*Node, len(v))
		for i, item := range v {
			child, err := fromAny(item)
			if err != nil {
				return nil, err
			}
			items[i] = child
		}
		return &Node{Kind: KindArray, Array: items}, nil
	case map[string]any:
		obj := NewObject()
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			child, err := fromAny(v[k])
			if err != nil {
				return nil, err
			}
			obj.Set(k, child)
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("document: unsupported JSON value type %T", raw)
	}
}

// MarshalJSON renders n back to JSON, the inverse of FromJSON.
func (n *Node) MarshalJSON() ([]byte, error) {
	switch n.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(n.Bool)
	case KindInt:
		return json.Marshal(n.Int)
	case KindFloat:
		return json.Marshal(n.Flt)
	case KindString:
		return json.Marshal(n.Str)
	case KindArray:
		return json.Marshal(n.Array)
	case KindObject:
		m := make(map[string]*Node, len(n.Object))
		for k, v := range n.Object {
			m[k] = v
		}
		return json.Marshal(m)
	default:
		return nil, fmt.Errorf("document: unknown node kind %d", n.Kind)
	}
}
