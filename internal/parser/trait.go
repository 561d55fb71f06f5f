package parser

import (
	"klarlint/internal/decl"
	"klarlint/internal/token"
)

// parseTrait handles `trait Name[generics] { fn sig; ... }`. Methods
// become child declarations linked to the trait by arena index.
func (p *Parser) parseTrait(isPub bool, doc string, hasDoc bool) (decl.ID, bool) {
	kw := p.next() // trait
	name, ok := p.expect(token.Ident, "trait name")
	if !ok {
		return decl.NoID, false
	}
	generics := p.parseGenericParams()
	p.skipWhereClause()

	id := p.out.Add(decl.Decl{
		Kind:     decl.KindTrait,
		Name:     name.Text,
		Span:     kw.Span.Cover(name.Span),
		IsPublic: isPub,
		Doc:      doc,
		HasDoc:   hasDoc,
		Generics: generics,
	})

	if !p.eat(token.LBrace) {
		p.errorf(p.peek().Span, "expected '{' after trait name")
		return decl.NoID, false
	}

	p.parseMemberFns(id, isPub)

	if end, ok := p.expect(token.RBrace, "'}' closing trait body"); ok {
		d := p.out.Get(id)
		d.Span = d.Span.Cover(end.Span)
	}
	return id, true
}

// parseImpl handles `impl Type { ... }` and `impl Trait for Type { ... }`.
func (p *Parser) parseImpl() (decl.ID, bool) {
	kw := p.next() // impl
	p.parseGenericParams()

	first := p.parseTypeRef()
	if first == "" {
		p.errorf(p.peek().Span, "expected type after 'impl'")
		return decl.NoID, false
	}

	target := first
	traitName := ""
	if p.eat(token.KwFor) {
		traitName = first
		target = p.parseTypeRef()
		if target == "" {
			p.errorf(p.peek().Span, "expected target type after 'for'")
			return decl.NoID, false
		}
	}
	p.skipWhereClause()

	id := p.out.Add(decl.Decl{
		Kind:       decl.KindImpl,
		Name:       target,
		Span:       kw.Span,
		TargetType: target,
		TraitName:  traitName,
	})

	if !p.eat(token.LBrace) {
		p.errorf(p.peek().Span, "expected '{' opening impl body")
		return decl.NoID, false
	}

	p.parseMemberFns(id, false)

	if end, ok := p.expect(token.RBrace, "'}' closing impl body"); ok {
		d := p.out.Get(id)
		d.Span = d.Span.Cover(end.Span)
	}
	return id, true
}

// parseMemberFns parses the fn and const members of a trait or impl
// body until the closing brace. parentPub marks trait methods public
// when the trait itself is public.
func (p *Parser) parseMemberFns(parent decl.ID, parentPub bool) {
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		doc, hasDoc := p.pendingDoc()
		isPub := p.eat(token.KwPub) || parentPub

		switch p.peek().Kind {
		case token.KwFn:
			fnID, ok := p.parseFn(isPub, doc, hasDoc, parent)
			if !ok {
				p.resyncMember()
				continue
			}
			d := p.out.Get(parent)
			d.Methods = append(d.Methods, fnID)
		case token.KwConst:
			if _, ok := p.parseConst(isPub, doc, hasDoc, parent); !ok {
				p.resyncMember()
			}
		default:
			got := p.peek()
			p.errorf(got.Span, "unexpected token %q in body", got.Text)
			p.resyncMember()
		}
	}
}

// resyncMember skips to the next member starter or the enclosing '}'.
func (p *Parser) resyncMember() {
	if !p.didRs {
		p.didRs = true
		p.resync = p.peek().Span
	}
	if p.at(token.EOF) || p.at(token.RBrace) {
		return
	}
	p.next()
	for {
		switch p.peek().Kind {
		case token.EOF, token.RBrace, token.KwFn, token.KwConst, token.KwPub:
			return
		}
		p.next()
	}
}
