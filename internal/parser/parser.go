// Package parser performs a single-pass, recursive-descent structural
// walk over a Klar token stream. It builds a lightweight declaration
// arena — no expression AST; function bodies are kept as opaque byte
// spans that rules re-scan on demand. Malformed top-level syntax makes
// the parser resynchronize at the next top-level keyword, so partial
// results are still produced for the well-formed portions.
package parser

import (
	"fmt"

	"klarlint/internal/decl"
	"klarlint/internal/source"
	"klarlint/internal/token"
)

// Error is one recovered syntax error.
type Error struct {
	Span source.Span
	Msg  string
}

// Result is the parse outcome for one file. Errors never abort the
// file; Decls holds everything that parsed cleanly.
type Result struct {
	Decls  *decl.File
	Errors []Error
	// Resynced is true when at least one recovery happened.
	Resynced bool
	// ResyncSpan is the location of the first recovery point.
	ResyncSpan source.Span
}

// Parser walks a pre-lexed token slice. Comments stay in the slice —
// doc pairing and the unsafe look-back both need them — and the
// significant-token helpers skip them.
type Parser struct {
	fs     *source.FileSet
	file   *source.File
	toks   []token.Token
	pos    int // index into toks
	out    *decl.File
	errs   []Error
	resync source.Span
	didRs  bool
}

// ParseFile parses one tokenized file into a declaration arena.
func ParseFile(fs *source.FileSet, file *source.File, toks []token.Token) Result {
	p := &Parser{
		fs:   fs,
		file: file,
		toks: toks,
		out:  decl.NewFile(file.ID),
	}
	p.parseItems()
	p.collectUnsafeRegions()
	return Result{
		Decls:      p.out,
		Errors:     p.errs,
		Resynced:   p.didRs,
		ResyncSpan: p.resync,
	}
}

// ===== token cursor =====

// peek returns the next significant token without consuming it.
func (p *Parser) peek() token.Token {
	i := p.pos
	for i < len(p.toks) && p.toks[i].IsComment() {
		i++
	}
	if i >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[i]
}

// next consumes and returns the next significant token.
func (p *Parser) next() token.Token {
	for p.pos < len(p.toks) && p.toks[p.pos].IsComment() {
		p.pos++
	}
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	t := p.toks[p.pos]
	p.pos++
	return t
}

// peekIdx returns the slice index of the next significant token.
func (p *Parser) peekIdx() int {
	i := p.pos
	for i < len(p.toks) && p.toks[i].IsComment() {
		i++
	}
	return i
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) eat(k token.Kind) bool {
	if p.at(k) {
		p.next()
		return true
	}
	return false
}

// expect consumes a token of kind k or records an error.
func (p *Parser) expect(k token.Kind, what string) (token.Token, bool) {
	if p.at(k) {
		return p.next(), true
	}
	got := p.peek()
	p.errorf(got.Span, "expected %s, found %q", what, got.Text)
	return got, false
}

// ===== top level =====

func (p *Parser) parseItems() {
	start := p.peek().Span
	for !p.at(token.EOF) {
		id, ok := p.parseItem()
		if !ok {
			p.resyncTop()
			continue
		}
		if id.IsValid() {
			p.out.Top = append(p.out.Top, id)
		}
	}
	p.out.Span = start.Cover(p.lastSpan())
}

// parseItem dispatches on the leading keyword. Returns (NoID, true)
// for headers that are recognized but not modeled (use, type aliases).
func (p *Parser) parseItem() (decl.ID, bool) {
	docText, hasDoc := p.pendingDoc()
	isPub := false
	if p.at(token.KwPub) {
		p.next()
		isPub = true
	}

	switch p.peek().Kind {
	case token.KwUse:
		return p.skipUse()
	case token.KwMod:
		return p.parseModule(isPub, docText, hasDoc)
	case token.KwStruct:
		return p.parseStruct(isPub, docText, hasDoc, decl.NoID)
	case token.KwEnum:
		return p.parseEnum(isPub, docText, hasDoc)
	case token.KwTrait:
		return p.parseTrait(isPub, docText, hasDoc)
	case token.KwImpl:
		return p.parseImpl()
	case token.KwFn:
		return p.parseFn(isPub, docText, hasDoc, decl.NoID)
	case token.KwConst:
		return p.parseConst(isPub, docText, hasDoc, decl.NoID)
	case token.KwType:
		return p.skipTypeAlias()
	default:
		got := p.peek()
		p.errorf(got.Span, "unexpected top-level token %q", got.Text)
		return decl.NoID, false
	}
}

// resyncTop skips tokens until the next top-level starter or EOF.
// Total and terminating: the position always advances.
func (p *Parser) resyncTop() {
	at := p.peek()
	if !p.didRs {
		p.didRs = true
		p.resync = at.Span
	}
	if at.Kind == token.EOF {
		return
	}
	p.next() // always drop the offending token
	for {
		t := p.peek()
		if t.Kind == token.EOF || t.StartsItem() {
			return
		}
		p.next()
	}
}

func (p *Parser) errorf(span source.Span, format string, args ...any) {
	p.errs = append(p.errs, Error{Span: span, Msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) lastSpan() source.Span {
	for i := len(p.toks) - 1; i >= 0; i-- {
		if p.toks[i].Kind != token.EOF {
			return p.toks[i].Span
		}
	}
	return source.Span{File: p.file.ID}
}
