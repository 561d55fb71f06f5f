package parser

import (
	"klarlint/internal/decl"
	"klarlint/internal/source"
	"klarlint/internal/token"
)

// collectUnsafeRegions walks every function body span and records each
// `unsafe { ... }` block together with the nearest preceding comment
// in the look-back window (same line or the line immediately above).
func (p *Parser) collectUnsafeRegions() {
	p.out.Walk(func(id decl.ID, d *decl.Decl) {
		if d.Kind != decl.KindFunction || d.BodySpan.Empty() {
			return
		}
		p.scanBodyForUnsafe(id, d.BodySpan)
	})
}

func (p *Parser) scanBodyForUnsafe(owner decl.ID, body source.Span) {
	for i := 0; i < len(p.toks); i++ {
		t := p.toks[i]
		if t.Span.Start < body.Start || t.Span.End > body.End {
			continue
		}
		if t.Kind != token.KwUnsafe {
			continue
		}
		j := nextSignificant(p.toks, i+1)
		if j >= len(p.toks) || p.toks[j].Kind != token.LBrace {
			continue
		}
		end := p.matchBrace(j)
		region := decl.UnsafeRegion{
			Span:  t.Span.Cover(p.toks[end].Span),
			Owner: owner,
		}
		if c, ok := p.lookBackComment(i, t.Span.Start); ok {
			region.Comment = c.Text
			region.HasSafety = c.Kind == token.SafetyComment
		}
		p.out.Unsafes = append(p.out.Unsafes, region)
		i = end
	}
}

// matchBrace returns the index of the brace closing toks[open].
func (p *Parser) matchBrace(open int) int {
	depth := 0
	for i := open; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(p.toks) - 1
}

// lookBackComment finds the nearest comment token before toks[idx]
// whose last line is the unsafe keyword's line or the line directly
// above it. Comments further away are outside the window.
func (p *Parser) lookBackComment(idx int, unsafeOff uint32) (token.Token, bool) {
	unsafeLine := p.lineOf(unsafeOff)
	for i := idx - 1; i >= 0; i-- {
		t := p.toks[i]
		if !t.IsComment() {
			continue
		}
		endLine := p.lineOf(t.Span.End - 1)
		if endLine == unsafeLine || endLine+1 == unsafeLine {
			return t, true
		}
		return token.Token{}, false
	}
	return token.Token{}, false
}
