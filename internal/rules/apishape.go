package rules

import (
	"fmt"
	"strings"

	"klarlint/internal/decl"
	"klarlint/internal/report"
)

// maxParams is the parameter count above which a configuration
// aggregate is suggested. The receiver does not count.
const maxParams = 4

// maxTraitMethods is the method count above which an unfocused trait
// is suggested for splitting.
const maxTraitMethods = 3

// APIShape flags wide function signatures and kitchen-sink traits.
type APIShape struct{}

func (APIShape) ID() string { return IDAPIShape }

func (APIShape) Describe() string {
	return "oversized parameter lists and unfocused traits"
}

func (a APIShape) Check(ctx *Context) []report.Finding {
	var out []report.Finding

	ctx.Decls.Walk(func(_ decl.ID, d *decl.Decl) {
		switch d.Kind {
		case decl.KindFunction:
			if len(d.Params) > maxParams {
				f := ctx.NewFinding(IDAPIShape, report.SevSuggestion, d.Span,
					fmt.Sprintf("function %q takes %d parameters; consider a configuration struct", d.Name, len(d.Params)))
				f.SuggestedFix = configStructSkeleton(d)
				out = append(out, f)
			}
		case decl.KindTrait:
			if len(d.Methods) > maxTraitMethods && !methodsShareDomainWord(ctx, d) {
				out = append(out, ctx.NewFinding(IDAPIShape, report.SevSuggestion, d.Span,
					fmt.Sprintf("trait %q has %d methods with no shared domain word; consider splitting it into focused traits", d.Name, len(d.Methods))))
			}
		}
	})

	return out
}

// configStructSkeleton generates the field-by-field aggregate the
// finding proposes.
func configStructSkeleton(d *decl.Decl) string {
	var b strings.Builder
	fmt.Fprintf(&b, "struct %sConfig {\n", toPascal(segmentIdent(d.Name)))
	for _, p := range d.Params {
		fmt.Fprintf(&b, "    %s: %s,\n", p.Name, p.Type)
	}
	b.WriteString("}")
	return b.String()
}

// methodsShareDomainWord reports whether some word appears in every
// method name of the trait. A shared verb or domain word is taken as
// evidence the trait is focused.
func methodsShareDomainWord(ctx *Context, trait *decl.Decl) bool {
	if len(trait.Methods) == 0 {
		return true
	}

	shared := map[string]int{}
	for _, mid := range trait.Methods {
		m := ctx.Decls.Get(mid)
		if m == nil {
			continue
		}
		seen := map[string]bool{}
		for _, seg := range segmentIdent(m.Name) {
			seen[strings.ToLower(seg)] = true
		}
		for w := range seen {
			shared[w]++
		}
	}
	for _, n := range shared {
		if n == len(trait.Methods) {
			return true
		}
	}
	return false
}
