package parser

import (
	"klarlint/internal/decl"
	"klarlint/internal/token"
)

// parseStruct handles `struct Name[generics] { fields }` and the
// fieldless `struct Name;` form.
func (p *Parser) parseStruct(isPub bool, doc string, hasDoc bool, parent decl.ID) (decl.ID, bool) {
	kw := p.next() // struct
	name, ok := p.expect(token.Ident, "struct name")
	if !ok {
		return decl.NoID, false
	}
	generics := p.parseGenericParams()
	p.skipWhereClause()

	d := decl.Decl{
		Kind:     decl.KindStruct,
		Name:     name.Text,
		Span:     kw.Span.Cover(name.Span),
		Parent:   parent,
		IsPublic: isPub,
		Doc:      doc,
		HasDoc:   hasDoc,
		Generics: generics,
	}

	if p.eat(token.Semicolon) {
		return p.out.Add(d), true
	}
	if !p.eat(token.LBrace) {
		p.errorf(p.peek().Span, "expected '{' or ';' after struct name")
		return decl.NoID, false
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if startsItemNotPub(p.peek()) {
			// unclosed body; do not swallow the next item
			break
		}
		fieldPub := p.eat(token.KwPub)
		fieldName, ok := p.expect(token.Ident, "field name")
		if !ok {
			p.skipToFieldBoundary()
			continue
		}
		if _, ok := p.expect(token.Colon, "':' after field name"); !ok {
			p.skipToFieldBoundary()
			continue
		}
		fieldType := p.parseTypeRef()
		if fieldType == "" {
			p.errorf(p.peek().Span, "expected field type")
			p.skipToFieldBoundary()
			continue
		}
		d.Fields = append(d.Fields, decl.Field{
			Name:     fieldName.Text,
			Type:     fieldType,
			IsPublic: fieldPub,
			Span:     fieldName.Span,
		})
		if !p.eat(token.Comma) {
			break
		}
	}

	end, closed := p.expect(token.RBrace, "'}' closing struct body")
	if closed {
		d.Span = d.Span.Cover(end.Span)
		return p.out.Add(d), true
	}
	// keep the fields that parsed and recover at the next item
	if !p.didRs {
		p.didRs = true
		p.resync = p.peek().Span
	}
	return p.out.Add(d), true
}

// startsItemNotPub reports whether t begins a new top-level item.
// 'pub' is excluded: inside a body it marks a public field.
func startsItemNotPub(t token.Token) bool {
	return t.StartsItem() && t.Kind != token.KwPub
}

// skipToFieldBoundary drops tokens until the next field separator or
// the end of the body.
func (p *Parser) skipToFieldBoundary() {
	depth := 0
	for {
		t := p.peek()
		if depth == 0 && startsItemNotPub(t) {
			return
		}
		switch t.Kind {
		case token.EOF:
			return
		case token.Comma:
			if depth == 0 {
				p.next()
				return
			}
		case token.LBrace, token.LBracket, token.LParen:
			depth++
		case token.RBrace, token.RBracket, token.RParen:
			if depth == 0 {
				return
			}
			depth--
		}
		p.next()
	}
}

// parseEnum handles `enum Name[generics] { Variant, Variant(T), ... }`.
// Variant payloads are skipped, only names are recorded.
func (p *Parser) parseEnum(isPub bool, doc string, hasDoc bool) (decl.ID, bool) {
	kw := p.next() // enum
	name, ok := p.expect(token.Ident, "enum name")
	if !ok {
		return decl.NoID, false
	}
	generics := p.parseGenericParams()
	p.skipWhereClause()

	d := decl.Decl{
		Kind:     decl.KindEnum,
		Name:     name.Text,
		Span:     kw.Span.Cover(name.Span),
		IsPublic: isPub,
		Doc:      doc,
		HasDoc:   hasDoc,
		Generics: generics,
	}

	if !p.eat(token.LBrace) {
		p.errorf(p.peek().Span, "expected '{' after enum name")
		return decl.NoID, false
	}

	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if startsItemNotPub(p.peek()) {
			break
		}
		varName, ok := p.expect(token.Ident, "enum variant name")
		if !ok {
			p.skipToFieldBoundary()
			continue
		}
		d.Variants = append(d.Variants, decl.Variant{
			Name: varName.Text,
			Span: varName.Span,
		})
		// skip optional payload: (T, ...) or { field: T }
		switch p.peek().Kind {
		case token.LParen, token.LBrace:
			p.skipBalanced()
		}
		if !p.eat(token.Comma) {
			break
		}
	}

	end, closed := p.expect(token.RBrace, "'}' closing enum body")
	if closed {
		d.Span = d.Span.Cover(end.Span)
		return p.out.Add(d), true
	}
	if !p.didRs {
		p.didRs = true
		p.resync = p.peek().Span
	}
	return p.out.Add(d), true
}

// skipBalanced consumes one balanced (), [] or {} group.
func (p *Parser) skipBalanced() {
	open := p.next()
	var closer token.Kind
	switch open.Kind {
	case token.LParen:
		closer = token.RParen
	case token.LBracket:
		closer = token.RBracket
	case token.LBrace:
		closer = token.RBrace
	default:
		return
	}
	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		t := p.next()
		switch t.Kind {
		case open.Kind:
			depth++
		case closer:
			depth--
		}
	}
}
