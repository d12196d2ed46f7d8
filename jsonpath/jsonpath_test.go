package jsonpath

import (
	"testing"

	"github.com/kosmix/colex/document"
	"github.com/stretchr/testify/require"
)

// mixedSample builds a small "users" document fixture:
// a small "users" document exercising members, wildcards, slices, unions,
// and recursive descent against flattened output.
func mixedSample(t *testing.T) []document.Entry {
	t.Helper()

	input := `{
		"users": [
			{
				"name": "Alice",
				"surname": "Smith",
				"age": 25,
				"friends": [
					{"name": "Bob", "nick": "boreas"},
					{"nick": "crocodile91"}
				]
			},
			{"name": "Bob", "nick": "boreas", "age": 30},
			{"nick": "crocodile91", "age": 35},
			{"name": "Damian", "surname": "Smith", "age": 30},
			{"name": "Elise", "age": 35}
		]
	}`

	root, err := document.FromJSON([]byte(input))
	require.NoError(t, err)

	entries, err := document.Flatten(root, document.ChunkSize(100))
	require.NoError(t, err)
	return entries
}

func matchStrings(t *testing.T, query string, entries []document.Entry) []string {
	t.Helper()
	q, err := Parse(query)
	require.NoError(t, err)

	var got []string
	for _, e := range entries {
		if q.IsMatch(e.Path) {
			got = append(got, string(e.Value[1:])) // strip the STRING tag byte
		}
	}
	return got
}

func TestMemberFull(t *testing.T) {
	entries := mixedSample(t)
	require.Equal(t, []string{"Alice"}, matchStrings(t, "$.users[0].name", entries))
}

func TestMemberWildcardArray(t *testing.T) {
	entries := mixedSample(t)
	require.Equal(t, []string{"Alice", "Bob", "Damian", "Elise"}, matchStrings(t, "$.users[*].name", entries))
}

func TestMemberPartialNoDot(t *testing.T) {
	entries := mixedSample(t)
	require.Equal(t, []string{"Bob"}, matchStrings(t, "$.users[*]friends[*]name", entries))
}

func TestSlice(t *testing.T) {
	entries := mixedSample(t)
	require.Equal(t, []string{"boreas", "crocodile91"}, matchStrings(t, "$.users[1:3].nick", entries))
}

func TestIndexUnion(t *testing.T) {
	entries := mixedSample(t)
	require.Equal(t, []string{"Bob", "Damian"}, matchStrings(t, "$.users[1,3].name", entries))
}

func TestMemberUnion(t *testing.T) {
	entries := mixedSample(t)
	require.Equal(t, []string{"Alice", "Smith"}, matchStrings(t, "$.users[0]['name','surname']", entries))
}

func TestRecursiveDescend(t *testing.T) {
	entries := mixedSample(t)
	require.Equal(t,
		[]string{"Bob", "Alice", "Bob", "Damian", "Elise"},
		matchStrings(t, "$.users..name", entries))
}

func TestRecursiveDescendNoMatchFailsCleanly(t *testing.T) {
	entries := mixedSample(t)
	require.Empty(t, matchStrings(t, "$.users..missingfield", entries))
}

func TestParseRejectsMissingRoot(t *testing.T) {
	_, err := Parse("users[0].name")
	require.Error(t, err)
}

func TestQueryStringRoundTrip(t *testing.T) {
	q, err := Parse("$.users[0].name")
	require.NoError(t, err)
	require.Equal(t, "$.users[0].name", q.String())
}
