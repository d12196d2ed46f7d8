package path

import (
	"errors"
	"testing"

	"github.com/kosmix/colex/errs"
	"github.com/stretchr/testify/require"
)

func TestPushKeyRejectsEmptyAndReservedBytes(t *testing.T) {
	p := NewPathBuf()
	require.ErrorIs(t, p.PushKey(""), errs.ErrInvalidKey)
	require.ErrorIs(t, p.PushKey("a\x00b"), errs.ErrInvalidKey)
	require.ErrorIs(t, p.PushKey("a\x0fb"), errs.ErrInvalidKey)
	require.NoError(t, p.PushKey("a\x10b"))
}

func TestPushIndexChoosesSmallestLength(t *testing.T) {
	cases := []struct {
		n       uint64
		wantTag byte
		wantLen int
	}{
		{0, tagIndexBase + 0, 0},
		{1, tagIndexBase + 1, 1},
		{255, tagIndexBase + 1, 1},
		{256, tagIndexBase + 2, 2},
		{65535, tagIndexBase + 2, 2},
		{65536, tagIndexBase + 3, 4},
		{4294967295, tagIndexBase + 3, 4},
		{4294967296, tagIndexBase + 4, 8},
	}

	for _, c := range cases {
		p := NewPathBuf()
		require.NoError(t, p.PushIndex(c.n))
		require.Equal(t, c.wantTag, p.Bytes()[0])
		require.Equal(t, 1+c.wantLen, p.Len())

		segs, err := p.View().Segments()
		require.NoError(t, err)
		require.Len(t, segs, 1)
		require.Equal(t, KindIndex, segs[0].Kind)
		require.Equal(t, c.n, segs[0].Index)
	}
}

func TestRoundTripMixedSegments(t *testing.T) {
	p := NewPathBuf()
	require.NoError(t, p.PushKey("users"))
	require.NoError(t, p.PushIndex(2))
	require.NoError(t, p.PushKey("name"))
	require.NoError(t, p.PushContinued())

	segs, err := p.View().Segments()
	require.NoError(t, err)
	require.Equal(t, []Segment{Key("users"), Index(2), Key("name"), Cont()}, segs)
}

func TestDisplayMatchesSpecExamples(t *testing.T) {
	p := NewPathBuf()
	require.NoError(t, p.PushKey("users"))
	require.NoError(t, p.PushIndex(2))
	require.NoError(t, p.PushKey("name"))
	require.Equal(t, "$.users[2].name", p.String())
}

func TestOrderInvariantKeyBeforeIndexAtSamePosition(t *testing.T) {
	// $.users.abc vs $.users[1].name
	a := NewPathBuf()
	require.NoError(t, a.PushKey("users"))
	require.NoError(t, a.PushKey("abc"))

	b := NewPathBuf()
	require.NoError(t, b.PushKey("users"))
	require.NoError(t, b.PushIndex(1))
	require.NoError(t, b.PushKey("name"))

	require.Equal(t, -1, a.View().Compare(b.View()))
}

func TestOrderInvariantIndexZeroBeforeIndexLarge(t *testing.T) {
	a := NewPathBuf()
	require.NoError(t, a.PushKey("file"))
	require.NoError(t, a.PushIndex(0))

	b := NewPathBuf()
	require.NoError(t, b.PushKey("file"))
	require.NoError(t, b.PushIndex(65535))

	require.Equal(t, -1, a.View().Compare(b.View()))
}

func TestOrderInvariantSmallerByteLengthSortsFirstRegardlessOfValue(t *testing.T) {
	// users[2] (1-byte index) must sort before users[300] (2-byte index)
	// even though the raw numeric comparison would disagree on content byte.
	a := NewPathBuf()
	require.NoError(t, a.PushKey("users"))
	require.NoError(t, a.PushIndex(2))

	b := NewPathBuf()
	require.NoError(t, b.PushKey("users"))
	require.NoError(t, b.PushIndex(300))

	require.Equal(t, -1, a.View().Compare(b.View()))
}

func TestOrderInvariantSameLengthComparesByBytes(t *testing.T) {
	a := NewPathBuf()
	require.NoError(t, a.PushKey("users"))
	require.NoError(t, a.PushIndex(1))

	b := NewPathBuf()
	require.NoError(t, b.PushKey("users"))
	require.NoError(t, b.PushIndex(2))

	require.Equal(t, -1, a.View().Compare(b.View()))
}

func TestIterUnknownTag(t *testing.T) {
	buf := []byte{0x0D}
	_, err := FromBytes(buf).Segments()
	require.ErrorIs(t, err, errs.ErrUnknownTag)
}

func TestIterTruncatedIndexPayload(t *testing.T) {
	buf := []byte{tagIndexBase + 2, 0x01} // claims 2-byte payload, has 1
	_, err := FromBytes(buf).Segments()
	require.Error(t, err)
	require.True(t, errors.Is(err, errs.ErrUnknownTag))
}

func TestPushKeyRejectsPathTooLong(t *testing.T) {
	p := NewPathBuf()
	big := make([]byte, MaxSize)
	for i := range big {
		big[i] = 'a'
	}
	require.ErrorIs(t, p.PushKey(string(big)), errs.ErrPathTooLong)
}

func TestCloneIsIndependent(t *testing.T) {
	p := NewPathBuf()
	require.NoError(t, p.PushKey("a"))

	clone := p.Clone()
	require.NoError(t, clone.PushKey("b"))

	require.NotEqual(t, p.Len(), clone.Len())
}

func TestSegmentEqual(t *testing.T) {
	require.True(t, Key("a").Equal(Key("a")))
	require.False(t, Key("a").Equal(Key("b")))
	require.True(t, Index(1).Equal(Index(1)))
	require.False(t, Index(1).Equal(Index(2)))
	require.True(t, Cont().Equal(Cont()))
	require.False(t, Key("a").Equal(Index(0)))
}
