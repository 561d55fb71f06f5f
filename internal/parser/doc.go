package parser

import (
	"strings"

	"klarlint/internal/token"
)

// pendingDoc returns the contiguous '///' block immediately preceding
// the next significant token. "Immediately" means the block's last
// line is directly above the declaration's first line, with no blank
// line and no other token in between.
func (p *Parser) pendingDoc() (string, bool) {
	declIdx := p.peekIdx()
	if declIdx >= len(p.toks) {
		return "", false
	}
	declLine := p.lineOf(p.toks[declIdx].Span.Start)

	// walk back over comment tokens, gathering doc lines
	var docs []token.Token
	wantLine := declLine - 1
	for i := declIdx - 1; i >= 0; i-- {
		t := p.toks[i]
		if !t.IsComment() {
			break
		}
		if t.Kind != token.DocComment {
			break
		}
		line := p.lineOf(t.Span.Start)
		if line != wantLine {
			break
		}
		docs = append(docs, t)
		wantLine = line - 1
	}
	if len(docs) == 0 {
		return "", false
	}

	// docs were collected bottom-up
	var b strings.Builder
	for i := len(docs) - 1; i >= 0; i-- {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(docs[i].Text)
	}
	return b.String(), true
}

func (p *Parser) lineOf(off uint32) uint32 {
	return p.fs.Position(p.file.ID, off).Line
}
