// Package jsonpath implements colex's JSONPath-subset query matcher:
// parsing a small query grammar and testing it against a decoded path via
// prefix-closure semantics.
package jsonpath

import (
	"fmt"
	"strings"
)

// Kind identifies which variant a Token holds.
type Kind uint8

const (
	KindRoot Kind = iota
	KindCurrent
	KindMember
	KindIndex
	KindWildcard
	KindRecursiveDescend
	KindSlice
	KindMemberUnion
	KindIndexUnion
)

// Token is one step of a parsed query.
type Token struct {
	Kind Kind

	Member  string   // KindMember
	Index   int64    // KindIndex
	Members []string // KindMemberUnion
	Indices []int64  // KindIndexUnion

	// KindSlice: matches array index i where From <= i < To. A Step above
	// 1 also requires (i - From) to be a multiple of Step; a Step of 1 or
	// less adds no filter beyond the range check.
	From, To, Step int64
}

// String renders a token the way it appears in a query string.
func (t Token) String() string {
	switch t.Kind {
	case KindRoot:
		return "$"
	case KindCurrent:
		return "@"
	case KindMember:
		if strings.ContainsAny(t.Member, " \t\n") {
			return fmt.Sprintf("['%s']", t.Member)
		}
		return "." + t.Member
	case KindIndex:
		return fmt.Sprintf("[%d]", t.Index)
	case KindWildcard:
		return ".*"
	case KindRecursiveDescend:
		return ".."
	case KindSlice:
		return fmt.Sprintf("[%d:%d:%d]", t.From, t.To, t.Step)
	case KindMemberUnion:
		return "['" + strings.Join(t.Members, "', '") + "']"
	case KindIndexUnion:
		parts := make([]string, len(t.Indices))
		for i, idx := range t.Indices {
			parts[i] = fmt.Sprintf("%d", idx)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "?"
	}
}

// Query is a parsed JSONPath-subset expression.
type Query struct {
	tokens []Token
}

// Tokens returns the query's token sequence.
func (q *Query) Tokens() []Token { return q.tokens }

// String renders the query by concatenating its tokens' String forms.
func (q *Query) String() string {
	var b strings.Builder
	for _, t := range q.tokens {
		b.WriteString(t.String())
	}
	return b.String()
}
