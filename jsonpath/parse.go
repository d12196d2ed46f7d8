package jsonpath

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kosmix/colex/errs"
)

// Parse parses a JSONPath-subset query string into a Query. The grammar
// accepts: "$" (root), "@" (current), ".name" / bare "name" directly after
// a "]" (member), ".*" / "[*]" (wildcard), "[i]" (index), "[a:b]" /
// "[a:b:step]" (slice), "[i,j,...]" (index union), "['a','b',...]" (member
// union), and ".." (recursive descend, which may be followed immediately by
// a member with no further separator, e.g. "..name").
func Parse(query string) (*Query, error) {
	p := &parser{src: query}

	if !p.consumeByte('$') {
		return nil, fmt.Errorf("%w: query must start with '$': %q", errs.ErrInvalidJSONPath, query)
	}
	tokens := []Token{{Kind: KindRoot}}

	for p.pos < len(p.src) {
		tok, err := p.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}

	return &Query{tokens: tokens}, nil
}

type parser struct {
	src string
	pos int
}

func (p *parser) consumeByte(b byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == b {
		p.pos++
		return true
	}
	return false
}

func (p *parser) peek() (byte, bool) {
	if p.pos >= len(p.src) {
		return 0, false
	}
	return p.src[p.pos], true
}

func (p *parser) errf(format string, args ...any) error {
	return fmt.Errorf("%w: %s (at byte %d of %q)", errs.ErrInvalidJSONPath, fmt.Sprintf(format, args...), p.pos, p.src)
}

// next parses the single next token starting at p.pos.
func (p *parser) next() (Token, error) {
	b, ok := p.peek()
	if !ok {
		return Token{}, p.errf("unexpected end of query")
	}

	switch b {
	case '@':
		p.pos++
		return Token{Kind: KindCurrent}, nil

	case '.':
		return p.parseDot()

	case '[':
		return p.parseBracket()

	default:
		if isIdentStart(b) {
			return Token{Kind: KindMember, Member: p.parseIdent()}, nil
		}
		return Token{}, p.errf("unexpected character %q", b)
	}
}

func (p *parser) parseDot() (Token, error) {
	p.pos++ // consume '.'

	if b, ok := p.peek(); ok && b == '.' {
		p.pos++ // consume second '.'
		return Token{Kind: KindRecursiveDescend}, nil
	}

	if b, ok := p.peek(); ok && b == '*' {
		p.pos++
		return Token{Kind: KindWildcard}, nil
	}

	b, ok := p.peek()
	if !ok || !isIdentStart(b) {
		return Token{}, p.errf("expected member name or '*' after '.'")
	}
	return Token{Kind: KindMember, Member: p.parseIdent()}, nil
}

func (p *parser) parseIdent() string {
	start := p.pos
	for p.pos < len(p.src) && isIdentByte(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

func (p *parser) parseBracket() (Token, error) {
	p.pos++ // consume '['

	end := strings.IndexByte(p.src[p.pos:], ']')
	if end < 0 {
		return Token{}, p.errf("unterminated '['")
	}
	body := strings.TrimSpace(p.src[p.pos : p.pos+end])
	p.pos += end + 1 // consume through ']'

	switch {
	case body == "*":
		return Token{Kind: KindWildcard}, nil

	case strings.HasPrefix(body, "'") || strings.HasPrefix(body, `"`):
		members, err := parseQuotedList(body)
		if err != nil {
			return Token{}, p.errf("%s", err)
		}
		if len(members) == 1 {
			return Token{Kind: KindMember, Member: members[0]}, nil
		}
		return Token{Kind: KindMemberUnion, Members: members}, nil

	case strings.Contains(body, ":"):
		from, to, step, err := parseSlice(body)
		if err != nil {
			return Token{}, p.errf("%s", err)
		}
		return Token{Kind: KindSlice, From: from, To: to, Step: step}, nil

	default:
		indices, err := parseIntList(body)
		if err != nil {
			return Token{}, p.errf("%s", err)
		}
		if len(indices) == 1 {
			return Token{Kind: KindIndex, Index: indices[0]}, nil
		}
		return Token{Kind: KindIndexUnion, Indices: indices}, nil
	}
}

func parseQuotedList(body string) ([]string, error) {
	var out []string
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		if len(part) < 2 {
			return nil, fmt.Errorf("invalid quoted member %q", part)
		}
		quote := part[0]
		if quote != '\'' && quote != '"' {
			return nil, fmt.Errorf("invalid quoted member %q", part)
		}
		if part[len(part)-1] != quote {
			return nil, fmt.Errorf("unterminated quoted member %q", part)
		}
		out = append(out, part[1:len(part)-1])
	}
	return out, nil
}

func parseIntList(body string) ([]int64, error) {
	var out []int64
	for _, part := range strings.Split(body, ",") {
		n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid index %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseSlice(body string) (from, to, step int64, err error) {
	parts := strings.Split(body, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, fmt.Errorf("invalid slice %q", body)
	}

	parse := func(s string, def int64) (int64, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return def, nil
		}
		return strconv.ParseInt(s, 10, 64)
	}

	from, err = parse(parts[0], 0)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid slice start %q", parts[0])
	}
	to, err = parse(parts[1], 0)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid slice end %q", parts[1])
	}
	step = 1
	if len(parts) == 3 {
		step, err = parse(parts[2], 1)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("invalid slice step %q", parts[2])
		}
	}

	return from, to, step, nil
}
