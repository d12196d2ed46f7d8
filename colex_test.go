package colex

import (
	"bytes"
	"testing"

	"github.com/kosmix/colex/document"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTripViaTopLevelAPI(t *testing.T) {
	input := `{"user":{"name":"Alice","age":30,"tags":["a","b"]}}`

	entries, err := Flatten([]byte(input))
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for _, e := range entries {
		require.NoError(t, enc.WriteNext(e.Path.Bytes(), e.Value))
	}
	enc.Close()

	dec := NewDecoder(&buf)
	var got []document.Entry
	for {
		p, v, ok, err := dec.Next()
		require.NoError(t, err)
		if !ok {
			break
		}
		got = append(got, document.Entry{Path: p.Clone(), Value: append([]byte(nil), v...)})
	}
	dec.Close()

	root, err := Merge(got)
	require.NoError(t, err)

	out, err := root.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, input, string(out))
}

func TestParseQueryMatchesFlattenedPath(t *testing.T) {
	entries, err := Flatten([]byte(`{"users":[{"name":"Alice"},{"name":"Bob"}]}`))
	require.NoError(t, err)

	q, err := ParseQuery("$.users[*].name")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		if q.IsMatch(e.Path) {
			names = append(names, string(e.Value[1:]))
		}
	}
	require.Equal(t, []string{"Alice", "Bob"}, names)
}

func TestParsePathRoundTripsEncodedBytes(t *testing.T) {
	entries, err := Flatten([]byte(`{"a":1}`))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	p, err := ParsePath(entries[0].Path.Bytes())
	require.NoError(t, err)
	require.Equal(t, "$.a", p.String())
}
