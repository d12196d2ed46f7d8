package digest

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigestDeterministic(t *testing.T) {
	a := New()
	a.Write([]byte("hello"))
	a.Write([]byte(" world"))

	b := New()
	b.Write([]byte("hello world"))

	require.Equal(t, a.Sum64(), b.Sum64())
}

func TestDigestResetClearsState(t *testing.T) {
	d := New()
	d.Write([]byte("abc"))
	sum := d.Sum64()

	d.Reset()
	require.NotEqual(t, sum, d.Sum64())

	d.Write([]byte("abc"))
	require.Equal(t, sum, d.Sum64())
}

func TestDigestDiffersOnDifferentInput(t *testing.T) {
	a := New()
	a.Write([]byte("abc"))

	b := New()
	b.Write([]byte("abd"))

	require.NotEqual(t, a.Sum64(), b.Sum64())
}
