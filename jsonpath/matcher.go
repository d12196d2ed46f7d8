package jsonpath

import "github.com/kosmix/colex/path"

// IsMatch reports whether q matches p under the query's prefix-closure
// semantics: the query matches if every token is consumed against some
// prefix of p's segments, regardless of any segments left over afterward.
// A path that fails to decode never matches.
func (q *Query) IsMatch(p path.Path) bool {
	segs, err := p.Segments()
	if err != nil {
		return false
	}
	return matchFrom(q.tokens, 0, segs, 0)
}

// matchFrom walks tokens[ti:] against segs starting at si. A
// RecursiveDescend token that finds no matching suffix fails the whole
// match immediately rather than falling through as a no-op.
func matchFrom(tokens []Token, ti int, segs []path.Segment, si int) bool {
	for ti < len(tokens) {
		tok := tokens[ti]

		switch tok.Kind {
		case KindRoot:
			si = 0

		case KindCurrent:
			// no-op

		case KindMember:
			if si >= len(segs) || segs[si].Kind != path.KindKey || segs[si].Key != tok.Member {
				return false
			}
			si++

		case KindIndex:
			if si >= len(segs) || segs[si].Kind != path.KindIndex || int64(segs[si].Index) != tok.Index {
				return false
			}
			si++

		case KindWildcard:
			if si >= len(segs) {
				return false
			}
			si++

		case KindMemberUnion:
			if si >= len(segs) || segs[si].Kind != path.KindKey || !containsStr(tok.Members, segs[si].Key) {
				return false
			}
			si++

		case KindIndexUnion:
			if si >= len(segs) || segs[si].Kind != path.KindIndex || !containsInt(tok.Indices, int64(segs[si].Index)) {
				return false
			}
			si++

		case KindSlice:
			if si >= len(segs) || segs[si].Kind != path.KindIndex {
				return false
			}
			idx := int64(segs[si].Index)
			if idx < tok.From || idx >= tok.To {
				return false
			}
			if tok.Step > 1 && (idx-tok.From)%tok.Step != 0 {
				return false
			}
			si++

		case KindRecursiveDescend:
			for i := si; i <= len(segs); i++ {
				if matchFrom(tokens, ti+1, segs, i) {
					return true
				}
			}
			return false
		}

		ti++
	}

	return true
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsInt(list []int64, n int64) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
