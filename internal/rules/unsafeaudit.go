package rules

import (
	"fmt"
	"strings"

	"klarlint/internal/decl"
	"klarlint/internal/report"
	"klarlint/internal/source"
	"klarlint/internal/token"
)

// UnsafeAudit demands a SAFETY: justification next to every unsafe
// block and bounds evidence before unchecked index calls. Part of the
// security rule subset.
type UnsafeAudit struct{}

func (UnsafeAudit) ID() string { return IDUnsafeAudit }

func (UnsafeAudit) Describe() string {
	return "unsafe blocks without SAFETY comments, unchecked calls without bounds checks"
}

func (u UnsafeAudit) Check(ctx *Context) []report.Finding {
	var out []report.Finding

	for _, region := range ctx.Decls.Unsafes {
		if !region.HasSafety {
			out = append(out, ctx.NewFinding(IDUnsafeAudit, report.SevCritical, region.Span,
				"unsafe block without a SAFETY: comment justifying it"))
		}
	}

	ctx.Decls.Walk(func(_ decl.ID, d *decl.Decl) {
		if d.Kind != decl.KindFunction || d.BodySpan.Empty() {
			return
		}
		out = append(out, u.checkUnchecked(ctx, d)...)
	})

	return out
}

// checkUnchecked finds `*_unchecked(i)` calls whose index variable has
// no earlier bounds-establishing assert or comparison in the same
// function body.
func (UnsafeAudit) checkUnchecked(ctx *Context, d *decl.Decl) []report.Finding {
	var out []report.Finding
	toks := ctx.TokensIn(d.BodySpan)

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Kind != token.Ident || !strings.HasSuffix(t.Text, "_unchecked") {
			continue
		}
		if i+1 >= len(toks) || toks[i+1].Kind != token.LParen {
			continue
		}
		// single-identifier index argument: name(idx)
		if i+3 >= len(toks) || toks[i+2].Kind != token.Ident || toks[i+3].Kind != token.RParen {
			continue
		}
		idx := toks[i+2].Text
		if boundsEstablished(toks[:i], idx) {
			continue
		}
		// A SAFETY: comment on the enclosing unsafe block vouches for
		// the whole block, unchecked indexing included.
		if insideJustifiedUnsafe(ctx.Decls.Unsafes, t.Span) {
			continue
		}
		out = append(out, ctx.NewFinding(IDUnsafeAudit, report.SevHigh, t.Span,
			fmt.Sprintf("unchecked call %q with index %q lacking a preceding bounds check", t.Text, idx)))
	}
	return out
}

func insideJustifiedUnsafe(regions []decl.UnsafeRegion, sp source.Span) bool {
	for _, r := range regions {
		if r.HasSafety && r.Span.Contains(sp) {
			return true
		}
	}
	return false
}

// boundsEstablished reports whether earlier body tokens assert or
// compare the index variable: `assert*(... idx ...)` or `idx < ...`,
// `... > idx`, and the <=/>= forms.
func boundsEstablished(toks []token.Token, idx string) bool {
	for i, t := range toks {
		switch t.Kind {
		case token.Ident:
			if strings.HasPrefix(t.Text, "assert") && i+1 < len(toks) && toks[i+1].Kind == token.LParen {
				if parenGroupMentions(toks, i+1, idx) {
					return true
				}
			}
			if t.Text != idx {
				continue
			}
			// idx < expr / idx <= expr
			if i+1 < len(toks) && (toks[i+1].Kind == token.Lt || toks[i+1].Kind == token.LtEq) {
				return true
			}
			// expr > idx / expr >= idx
			if i > 0 && (toks[i-1].Kind == token.Gt || toks[i-1].Kind == token.GtEq) {
				return true
			}
		}
	}
	return false
}

func parenGroupMentions(toks []token.Token, open int, idx string) bool {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return false
			}
		case token.Ident:
			if toks[i].Text == idx {
				return true
			}
		}
	}
	return false
}
