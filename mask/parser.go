package mask

import (
	"fmt"
	"strings"
	"unicode"
)

// MalformedMaskError reports syntactically invalid extended mask text. Pos is
// a byte offset into Input.
type MalformedMaskError struct {
	Input   string
	Pos     int
	Message string
}

func (e *MalformedMaskError) Error() string {
	return fmt.Sprintf("malformed object mask at offset %d: %s", e.Pos, e.Message)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLBracket
	tokRBracket
	tokLParen
	tokRParen
	tokDot
	tokComma
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokLBracket:
		return "'['"
	case tokRBracket:
		return "']'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokDot:
		return "'.'"
	case tokComma:
		return "','"
	default:
		return "unknown token"
	}
}

type token struct {
	kind tokenKind
	text string
	pos  int
}

// Parse parses an extended object mask string into one Node per top-level
// mask fragment. Fragments may be separated by a comma or simply
// concatenated; whitespace between tokens is ignored. Parsing retains no
// state between calls.
func Parse(s string) ([]Node, error) {
	if strings.TrimSpace(s) == "" {
		return nil, &MalformedMaskError{Input: s, Pos: 0, Message: "empty mask"}
	}

	tokens, err := lex(s)
	if err != nil {
		return nil, err
	}

	p := &parser{input: s, tokens: tokens}

	var nodes []Node
	for p.peek().kind != tokEOF {
		n, err := p.parseFragment()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
		// Optional separator between fragments.
		if p.peek().kind == tokComma {
			p.next()
			if p.peek().kind == tokEOF {
				return nil, p.errorf(p.peek().pos, "trailing comma")
			}
		}
	}

	return nodes, nil
}

func lex(s string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '[':
			tokens = append(tokens, token{tokLBracket, "[", i})
			i++
		case c == ']':
			tokens = append(tokens, token{tokRBracket, "]", i})
			i++
		case c == '(':
			tokens = append(tokens, token{tokLParen, "(", i})
			i++
		case c == ')':
			tokens = append(tokens, token{tokRParen, ")", i})
			i++
		case c == '.':
			tokens = append(tokens, token{tokDot, ".", i})
			i++
		case c == ',':
			tokens = append(tokens, token{tokComma, ",", i})
			i++
		case isIdentByte(c):
			start := i
			for i < len(s) && isIdentByte(s[i]) {
				i++
			}
			tokens = append(tokens, token{tokIdent, s[start:i], start})
		default:
			return nil, &MalformedMaskError{
				Input:   s,
				Pos:     i,
				Message: fmt.Sprintf("unexpected character %q", rune(c)),
			}
		}
	}
	tokens = append(tokens, token{tokEOF, "", len(s)})
	return tokens, nil
}

func isIdentByte(c byte) bool {
	return c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}

type parser struct {
	input  string
	tokens []token
	pos    int
}

func (p *parser) peek() token { return p.tokens[p.pos] }

func (p *parser) next() token {
	t := p.tokens[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.peek()
	if t.kind != kind {
		return t, p.errorf(t.pos, "expected %s, found %s", kind, t.kind)
	}
	return p.next(), nil
}

func (p *parser) errorf(pos int, format string, args ...any) error {
	return &MalformedMaskError{Input: p.input, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// parseFragment parses one top-level mask fragment:
//
//	"mask" "[" propertyList "]"
//	"mask" "(" TypeName ")" "." property
func (p *parser) parseFragment() (Node, error) {
	kw := p.peek()
	if kw.kind != tokIdent || kw.text != "mask" {
		return Node{}, p.errorf(kw.pos, "expected mask fragment, found %s", describe(kw))
	}
	p.next()

	switch t := p.peek(); t.kind {
	case tokLBracket:
		props, err := p.parseBracketList()
		if err != nil {
			return Node{}, err
		}
		return Node{Properties: props}, nil

	case tokLParen:
		p.next()
		name, err := p.expect(tokIdent)
		if err != nil {
			return Node{}, p.errorf(name.pos, "missing type name in mask(...)")
		}
		if _, err := p.expect(tokRParen); err != nil {
			return Node{}, err
		}
		if _, err := p.expect(tokDot); err != nil {
			return Node{}, err
		}
		prop, err := p.parseProperty()
		if err != nil {
			return Node{}, err
		}
		return Node{TypeScope: name.text, Properties: []Property{prop}}, nil

	default:
		return Node{}, p.errorf(t.pos, "expected '[' or '(' after mask, found %s", t.kind)
	}
}

// parseBracketList parses "[" property ("," property)* "]".
func (p *parser) parseBracketList() ([]Property, error) {
	open, err := p.expect(tokLBracket)
	if err != nil {
		return nil, err
	}

	var props []Property
	for {
		prop, err := p.parseProperty()
		if err != nil {
			return nil, err
		}
		// Duplicate requests for one property collapse on arrival.
		props = addProperty(props, prop)

		switch t := p.peek(); t.kind {
		case tokComma:
			p.next()
		case tokRBracket:
			p.next()
			return props, nil
		case tokEOF:
			return nil, p.errorf(open.pos, "unbalanced '['")
		default:
			return nil, p.errorf(t.pos, "expected ',' or ']', found %s", t.kind)
		}
	}
}

// parseProperty parses a property name with an optional nested sub-mask list.
func (p *parser) parseProperty() (Property, error) {
	t := p.peek()
	if t.kind != tokIdent {
		return Property{}, p.errorf(t.pos, "missing property name")
	}
	p.next()

	prop := Property{Name: t.text}
	if p.peek().kind == tokLBracket {
		sub, err := p.parseBracketList()
		if err != nil {
			return Property{}, err
		}
		prop.SubMask = []Node{{Properties: sub}}
	}
	return prop, nil
}

func describe(t token) string {
	if t.kind == tokIdent {
		return fmt.Sprintf("identifier %q", t.text)
	}
	return t.kind.String()
}
