package parser

import (
	"klarlint/internal/decl"
	"klarlint/internal/source"
	"klarlint/internal/token"
)

// parseFn handles a function or method:
//
//	fn name[generics](params) -> Type { body }
//	fn name(params);                      // trait signature
//
// The body is not descended into: its byte span is recorded and rules
// re-scan the token slice inside it when they need body-level detail.
func (p *Parser) parseFn(isPub bool, doc string, hasDoc bool, parent decl.ID) (decl.ID, bool) {
	kw := p.next() // fn
	name, ok := p.expect(token.Ident, "function name")
	if !ok {
		return decl.NoID, false
	}
	generics := p.parseGenericParams()

	if _, ok := p.expect(token.LParen, "'(' opening parameter list"); !ok {
		return decl.NoID, false
	}

	d := decl.Decl{
		Kind:     decl.KindFunction,
		Name:     name.Text,
		Span:     kw.Span.Cover(name.Span),
		Parent:   parent,
		IsPublic: isPub,
		Doc:      doc,
		HasDoc:   hasDoc,
		Generics: generics,
	}

	if !p.parseParams(&d) {
		return decl.NoID, false
	}

	if p.eat(token.Arrow) {
		d.ReturnType = p.parseTypeRef()
		if d.ReturnType == "" {
			p.errorf(p.peek().Span, "expected return type after '->'")
			return decl.NoID, false
		}
	}
	p.skipWhereClause()

	switch p.peek().Kind {
	case token.Semicolon:
		// signature only (trait method without default body)
		end := p.next()
		d.Span = d.Span.Cover(end.Span)
	case token.LBrace:
		body, ok := p.parseBodySpan()
		if !ok {
			return decl.NoID, false
		}
		d.BodySpan = body
		d.Span = d.Span.Cover(body)
	default:
		p.errorf(p.peek().Span, "expected '{' or ';' after function signature")
		return decl.NoID, false
	}

	return p.out.Add(d), true
}

// parseParams fills the receiver and parameter list. Passing mode is
// inferred from the leading '&'/'&mut' markers.
func (p *Parser) parseParams(d *decl.Decl) bool {
	for !p.at(token.RParen) && !p.at(token.EOF) {
		// receiver forms: self | &self | &mut self
		if mode, isRecv := p.tryReceiver(); isRecv {
			if len(d.Params) > 0 || d.HasReceiver {
				p.errorf(p.peek().Span, "receiver must be the first parameter")
			}
			d.HasReceiver = true
			d.Receiver = mode
			if !p.eat(token.Comma) {
				break
			}
			continue
		}

		p.eat(token.KwMut) // `mut name: T` binding mutability
		pname, ok := p.expect(token.Ident, "parameter name")
		if !ok {
			return false
		}
		if _, ok := p.expect(token.Colon, "':' after parameter name"); !ok {
			return false
		}
		ptype := p.parseTypeRef()
		if ptype == "" {
			p.errorf(p.peek().Span, "expected parameter type")
			return false
		}
		d.Params = append(d.Params, decl.Param{
			Name: pname.Text,
			Type: ptype,
			Mode: passingMode(ptype),
			Span: pname.Span,
		})
		if !p.eat(token.Comma) {
			break
		}
	}
	_, ok := p.expect(token.RParen, "')' closing parameter list")
	return ok
}

// tryReceiver consumes a receiver parameter if present.
func (p *Parser) tryReceiver() (decl.PassingMode, bool) {
	switch p.peek().Kind {
	case token.KwSelf:
		p.next()
		return decl.Owned, true
	case token.Amp:
		// lookahead: '&' ['mut'] 'self'
		i := p.peekIdx()
		j := nextSignificant(p.toks, i+1)
		if j < len(p.toks) && p.toks[j].Kind == token.KwMut {
			k := nextSignificant(p.toks, j+1)
			if k < len(p.toks) && p.toks[k].Kind == token.KwSelf {
				p.next() // &
				p.next() // mut
				p.next() // self
				return decl.BorrowedMut, true
			}
			return decl.Owned, false
		}
		if j < len(p.toks) && p.toks[j].Kind == token.KwSelf {
			p.next() // &
			p.next() // self
			return decl.Borrowed, true
		}
	}
	return decl.Owned, false
}

func nextSignificant(toks []token.Token, from int) int {
	for from < len(toks) && toks[from].IsComment() {
		from++
	}
	return from
}

func passingMode(typeRef string) decl.PassingMode {
	switch {
	case len(typeRef) >= 4 && typeRef[:4] == "&mut":
		return decl.BorrowedMut
	case len(typeRef) >= 1 && typeRef[0] == '&':
		return decl.Borrowed
	default:
		return decl.Owned
	}
}

// parseBodySpan consumes a balanced '{ ... }' block and returns its
// byte span. Delimiters inside strings and comments cannot confuse the
// count because they were already folded into single tokens.
func (p *Parser) parseBodySpan() (source.Span, bool) {
	open := p.next() // '{'
	depth := 1
	last := open.Span
	for depth > 0 {
		t := p.next()
		switch t.Kind {
		case token.EOF:
			p.errorf(open.Span, "unterminated block: missing '}'")
			return open.Span.Cover(last), false
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
		last = t.Span
	}
	return open.Span.Cover(last), true
}
