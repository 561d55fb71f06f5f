package rules

import (
	"fmt"
	"strings"

	"klarlint/internal/decl"
	"klarlint/internal/report"
	"klarlint/internal/token"
)

// Ownership audits struct field ownership shapes. Storing a bare
// reference in a struct is forbidden outright; shared-ownership
// wrappers (Rc/Arc) are flagged softly, escalating when the file shows
// no evidence of a second owner.
type Ownership struct{}

func (Ownership) ID() string { return IDOwnership }

func (Ownership) Describe() string {
	return "stored references and unjustified shared ownership in structs"
}

func (o Ownership) Check(ctx *Context) []report.Finding {
	var out []report.Finding

	ctx.Decls.Walk(func(_ decl.ID, d *decl.Decl) {
		if d.Kind != decl.KindStruct {
			return
		}
		for _, fl := range d.Fields {
			switch {
			case strings.HasPrefix(fl.Type, "&"):
				out = append(out, ctx.NewFinding(IDOwnership, report.SevCritical, fl.Span,
					fmt.Sprintf("field %q stores a reference (%s): stored references are forbidden, own the value instead", fl.Name, fl.Type)))
			case isSharedWrapper(fl.Type):
				sev := report.SevSuggestion
				msg := fmt.Sprintf("field %q uses shared ownership (%s); prefer single ownership when possible", fl.Name, fl.Type)
				if countConstructionSites(ctx, wrapperName(fl.Type)) < 2 {
					sev = report.SevMedium
					msg = fmt.Sprintf("field %q uses shared ownership (%s) without evidence of multiple owners in this file", fl.Name, fl.Type)
				}
				out = append(out, ctx.NewFinding(IDOwnership, sev, fl.Span, msg))
			}
		}
	})

	return out
}

func isSharedWrapper(typeRef string) bool {
	return strings.HasPrefix(typeRef, "Rc[") || strings.HasPrefix(typeRef, "Arc[")
}

func wrapperName(typeRef string) string {
	if strings.HasPrefix(typeRef, "Arc[") {
		return "Arc"
	}
	return "Rc"
}

// countConstructionSites counts `Rc::new(` / `Rc.new(` expressions in
// the whole file. Two or more sites are taken as evidence that the
// shared ownership is real.
func countConstructionSites(ctx *Context, wrapper string) int {
	count := 0
	toks := ctx.Tokens
	for i := 0; i+3 < len(toks); i++ {
		if toks[i].Kind != token.Ident || toks[i].Text != wrapper {
			continue
		}
		sep := toks[i+1].Kind
		if sep != token.ColonColon && sep != token.Dot {
			continue
		}
		if toks[i+2].Kind == token.Ident && toks[i+2].Text == "new" && toks[i+3].Kind == token.LParen {
			count++
		}
	}
	return count
}
