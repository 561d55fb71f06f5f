package parser

import (
	"strings"

	"klarlint/internal/token"
)

// parseTypeRef consumes a type expression and returns its normalized
// string shape: "&T", "&mut T", "?T", "Name[A, B]", "(A, B)",
// "a::b::C". Shapes are compared textually by the rules; nothing is
// resolved.
func (p *Parser) parseTypeRef() string {
	var b strings.Builder
	p.writeTypeRef(&b, 0)
	return b.String()
}

const maxTypeDepth = 32

func (p *Parser) writeTypeRef(b *strings.Builder, depth int) {
	if depth > maxTypeDepth {
		return
	}

	switch p.peek().Kind {
	case token.Amp:
		p.next()
		b.WriteByte('&')
		if p.eat(token.KwMut) {
			b.WriteString("mut ")
		}
		p.writeTypeRef(b, depth+1)
		return
	case token.Question:
		p.next()
		b.WriteByte('?')
		p.writeTypeRef(b, depth+1)
		return
	case token.LParen:
		p.next()
		b.WriteByte('(')
		first := true
		for !p.at(token.RParen) && !p.at(token.EOF) {
			if !first {
				b.WriteString(", ")
			}
			first = false
			p.writeTypeRef(b, depth+1)
			if !p.eat(token.Comma) {
				break
			}
		}
		p.eat(token.RParen)
		b.WriteByte(')')
		return
	case token.KwSelfType:
		p.next()
		b.WriteString("Self")
	case token.Ident:
		// path segments: a::b::C
		b.WriteString(p.next().Text)
		for p.at(token.ColonColon) {
			p.next()
			seg, ok := p.expect(token.Ident, "path segment")
			if !ok {
				return
			}
			b.WriteString("::")
			b.WriteString(seg.Text)
		}
	default:
		// not a type; leave the token for the caller's error
		return
	}

	// generic arguments: Name[A, B]
	if p.at(token.LBracket) {
		p.next()
		b.WriteByte('[')
		first := true
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			if !first {
				b.WriteString(", ")
			}
			first = false
			p.writeTypeRef(b, depth+1)
			if !p.eat(token.Comma) {
				break
			}
		}
		p.eat(token.RBracket)
		b.WriteByte(']')
	}
}

// parseGenericParams consumes an optional `[T, E: Bound]` list after a
// declaration name. Bounds are kept as opaque strings.
func (p *Parser) parseGenericParams() []string {
	if !p.at(token.LBracket) {
		return nil
	}
	p.next()
	var params []string
	var cur strings.Builder
	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		t := p.next()
		switch t.Kind {
		case token.LBracket:
			depth++
			cur.WriteString(t.Text)
		case token.RBracket:
			depth--
			if depth > 0 {
				cur.WriteString(t.Text)
			}
		case token.Comma:
			if depth == 1 {
				if s := strings.TrimSpace(cur.String()); s != "" {
					params = append(params, s)
				}
				cur.Reset()
			} else {
				cur.WriteString(t.Text)
			}
		default:
			if cur.Len() > 0 {
				cur.WriteByte(' ')
			}
			cur.WriteString(t.Text)
		}
	}
	if s := strings.TrimSpace(cur.String()); s != "" {
		params = append(params, s)
	}
	return params
}

// skipWhereClause consumes an optional `where ...` up to '{' or ';'.
// Bounds are not modeled.
func (p *Parser) skipWhereClause() {
	if !p.at(token.KwWhere) {
		return
	}
	p.next()
	for {
		t := p.peek()
		if t.Kind == token.EOF || t.Kind == token.LBrace || t.Kind == token.Semicolon {
			return
		}
		p.next()
	}
}
