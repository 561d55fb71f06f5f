package parser

import (
	"klarlint/internal/decl"
	"klarlint/internal/token"
)

// skipUse consumes a `use a::b::c;` header. Imports are not modeled.
func (p *Parser) skipUse() (decl.ID, bool) {
	p.next() // use
	for {
		t := p.peek()
		if t.Kind == token.EOF || t.Kind == token.Semicolon {
			p.eat(token.Semicolon)
			return decl.NoID, true
		}
		if t.StartsItem() {
			// missing semicolon; do not swallow the next item
			return decl.NoID, true
		}
		p.next()
	}
}

// skipTypeAlias consumes `type Name = ...;` — aliases are not modeled.
func (p *Parser) skipTypeAlias() (decl.ID, bool) {
	p.next() // type
	for {
		t := p.peek()
		if t.Kind == token.EOF || t.Kind == token.Semicolon {
			p.eat(token.Semicolon)
			return decl.NoID, true
		}
		if t.StartsItem() {
			return decl.NoID, true
		}
		p.next()
	}
}

// parseModule handles `mod name;` and `mod name { items }`. The header
// itself is recorded; a brace body is walked for nested items.
func (p *Parser) parseModule(isPub bool, doc string, hasDoc bool) (decl.ID, bool) {
	kw := p.next() // mod
	name, ok := p.expect(token.Ident, "module name")
	if !ok {
		return decl.NoID, false
	}
	id := p.out.Add(decl.Decl{
		Kind:     decl.KindModule,
		Name:     name.Text,
		Span:     kw.Span.Cover(name.Span),
		IsPublic: isPub,
		Doc:      doc,
		HasDoc:   hasDoc,
	})

	if p.eat(token.Semicolon) {
		return id, true
	}
	if !p.eat(token.LBrace) {
		p.errorf(p.peek().Span, "expected ';' or '{' after module name")
		return id, false
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		childID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		if childID.IsValid() {
			child := p.out.Get(childID)
			child.Parent = id
		}
	}
	if end, ok := p.expect(token.RBrace, "'}' closing module body"); ok {
		d := p.out.Get(id)
		d.Span = d.Span.Cover(end.Span)
	}
	return id, true
}

// parseConst handles `const NAME: Type = init;`.
func (p *Parser) parseConst(isPub bool, doc string, hasDoc bool, parent decl.ID) (decl.ID, bool) {
	kw := p.next() // const
	name, ok := p.expect(token.Ident, "constant name")
	if !ok {
		return decl.NoID, false
	}
	constType := ""
	if p.eat(token.Colon) {
		constType = p.parseTypeRef()
	}

	initLit := ""
	if p.eat(token.Assign) {
		if t := p.peek(); t.IsLiteral() {
			initLit = t.Text
		}
		// initializer is not modeled beyond the literal peek
		for !p.at(token.Semicolon) && !p.at(token.EOF) {
			if p.peek().StartsItem() {
				break
			}
			p.next()
		}
	}
	end := p.peek().Span
	if !p.eat(token.Semicolon) {
		p.errorf(p.peek().Span, "expected ';' after constant")
	}

	id := p.out.Add(decl.Decl{
		Kind:      decl.KindConst,
		Name:      name.Text,
		Span:      kw.Span.Cover(end),
		Parent:    parent,
		IsPublic:  isPub,
		Doc:       doc,
		HasDoc:    hasDoc,
		ConstType: constType,
		InitLit:   initLit,
	})
	return id, true
}
