package rules

import (
	"fmt"

	"klarlint/internal/decl"
	"klarlint/internal/report"
)

// DocCoverage flags every public declaration without a paired doc
// comment. The aggregator additionally turns Stats into the run's
// documentation-coverage ratio.
type DocCoverage struct{}

func (DocCoverage) ID() string { return IDDocCoverage }

func (DocCoverage) Describe() string {
	return "public declarations missing documentation"
}

func (DocCoverage) Check(ctx *Context) []report.Finding {
	var out []report.Finding

	ctx.Decls.Walk(func(_ decl.ID, d *decl.Decl) {
		if !countsForCoverage(d) || d.HasDoc {
			return
		}
		out = append(out, ctx.NewFinding(IDDocCoverage, report.SevLow, d.Span,
			fmt.Sprintf("public %s %q has no documentation comment", d.Kind, d.Name)))
	})

	return out
}

// Stats counts documented and total public declarations for one file.
// Separate from Check so the aggregator gets exact numbers even when
// the doc-coverage rule is disabled.
func Stats(decls *decl.File) (documented, public int) {
	decls.Walk(func(_ decl.ID, d *decl.Decl) {
		if !countsForCoverage(d) {
			return
		}
		public++
		if d.HasDoc {
			documented++
		}
	})
	return documented, public
}

func countsForCoverage(d *decl.Decl) bool {
	return d.IsPublic && d.Kind != decl.KindImpl
}
