package rules

import (
	"fmt"
	"strings"

	"klarlint/internal/decl"
	"klarlint/internal/report"
	"klarlint/internal/token"
)

// boolPrefixes are the accepted spellings for boolean-valued names.
var boolPrefixes = []string{"is_", "has_", "can_", "should_", "was_", "will_"}

// Naming enforces the case convention derived from each declaration
// kind: type-like names are PascalCase, functions/variables/modules
// are snake_case, constants UPPER_SNAKE_CASE, enum variants
// PascalCase. Boolean-valued functions and variables must carry one of
// the boolean prefixes.
type Naming struct{}

func (Naming) ID() string { return IDNaming }

func (Naming) Describe() string {
	return "identifier case conventions and boolean name prefixes"
}

func (Naming) Check(ctx *Context) []report.Finding {
	var out []report.Finding

	ctx.Decls.Walk(func(_ decl.ID, d *decl.Decl) {
		switch d.Kind {
		case decl.KindStruct, decl.KindEnum, decl.KindTrait:
			out = appendCaseFinding(out, ctx, d, isPascalName, toPascal, "PascalCase")
			for _, v := range d.Variants {
				if !isPascalName(v.Name) {
					f := ctx.NewFinding(IDNaming, report.SevLow, v.Span,
						fmt.Sprintf("enum variant %q is not PascalCase", v.Name))
					f.SuggestedFix = toPascal(segmentIdent(v.Name))
					out = append(out, f)
				}
			}
			for _, fl := range d.Fields {
				if !isSnakeName(fl.Name) {
					f := ctx.NewFinding(IDNaming, report.SevLow, fl.Span,
						fmt.Sprintf("field %q is not snake_case", fl.Name))
					f.SuggestedFix = toSnake(segmentIdent(fl.Name))
					out = append(out, f)
				}
				if fl.Type == "bool" && !hasBoolPrefix(fl.Name) {
					out = append(out, ctx.NewFinding(IDNaming, report.SevMedium, fl.Span,
						fmt.Sprintf("boolean field %q should start with one of %s", fl.Name, strings.Join(boolPrefixes, ", "))))
				}
			}
		case decl.KindModule:
			out = appendCaseFinding(out, ctx, d, isSnakeName, toSnake, "snake_case")
		case decl.KindFunction:
			out = appendCaseFinding(out, ctx, d, isSnakeName, toSnake, "snake_case")
			out = append(out, checkLetBindings(ctx, d)...)
			if d.ReturnType == "bool" && !hasBoolPrefix(d.Name) {
				out = append(out, ctx.NewFinding(IDNaming, report.SevMedium, d.Span,
					fmt.Sprintf("boolean function %q should start with one of %s", d.Name, strings.Join(boolPrefixes, ", "))))
			}
			for _, prm := range d.Params {
				if !isSnakeName(prm.Name) {
					f := ctx.NewFinding(IDNaming, report.SevLow, prm.Span,
						fmt.Sprintf("parameter %q is not snake_case", prm.Name))
					f.SuggestedFix = toSnake(segmentIdent(prm.Name))
					out = append(out, f)
				}
			}
		case decl.KindConst:
			if !isUpperSnakeName(d.Name) {
				f := ctx.NewFinding(IDNaming, report.SevLow, d.Span,
					fmt.Sprintf("constant %q is not UPPER_SNAKE_CASE", d.Name))
				f.SuggestedFix = toUpperSnake(segmentIdent(d.Name))
				out = append(out, f)
			}
			isBool := d.ConstType == "bool" || d.InitLit == "true" || d.InitLit == "false"
			if isBool && !hasBoolPrefix(strings.ToLower(d.Name)) {
				out = append(out, ctx.NewFinding(IDNaming, report.SevMedium, d.Span,
					fmt.Sprintf("boolean constant %q should start with one of %s (upper-cased)", d.Name, strings.Join(boolPrefixes, ", "))))
			}
		case decl.KindImpl:
			// impl blocks have no name of their own
		}
	})

	return out
}

// checkLetBindings re-scans the function body for `let` bindings; the
// declaration model stops at signatures, so locals are token-level.
func checkLetBindings(ctx *Context, d *decl.Decl) []report.Finding {
	if d.BodySpan.Empty() {
		return nil
	}
	var out []report.Finding
	toks := ctx.TokensIn(d.BodySpan)
	for i := 0; i < len(toks); i++ {
		if toks[i].Kind != token.KwLet {
			continue
		}
		j := i + 1
		if j < len(toks) && toks[j].Kind == token.KwMut {
			j++
		}
		if j >= len(toks) || toks[j].Kind != token.Ident {
			continue
		}
		name := toks[j].Text
		if !isSnakeName(name) {
			f := ctx.NewFinding(IDNaming, report.SevLow, toks[j].Span,
				fmt.Sprintf("variable %q is not snake_case", name))
			f.SuggestedFix = toSnake(segmentIdent(name))
			out = append(out, f)
		}
		if isBoolBinding(toks, j+1) && !hasBoolPrefix(name) {
			out = append(out, ctx.NewFinding(IDNaming, report.SevMedium, toks[j].Span,
				fmt.Sprintf("boolean variable %q should start with one of %s", name, strings.Join(boolPrefixes, ", "))))
		}
		i = j
	}
	return out
}

// isBoolBinding recognizes the visibly boolean forms: a `: bool`
// annotation or a bare true/false initializer.
func isBoolBinding(toks []token.Token, at int) bool {
	if at+1 >= len(toks) {
		return false
	}
	if toks[at].Kind == token.Colon {
		return toks[at+1].Kind == token.Ident && toks[at+1].Text == "bool"
	}
	if toks[at].Kind == token.Assign {
		return toks[at+1].Kind == token.KwTrue || toks[at+1].Kind == token.KwFalse
	}
	return false
}

func appendCaseFinding(out []report.Finding, ctx *Context, d *decl.Decl, conforms func(string) bool, conv func([]string) string, label string) []report.Finding {
	if d.Name == "" || conforms(d.Name) {
		return out
	}
	f := ctx.NewFinding(IDNaming, report.SevLow, d.Span,
		fmt.Sprintf("%s name %q is not %s", d.Kind, d.Name, label))
	f.SuggestedFix = conv(segmentIdent(d.Name))
	return append(out, f)
}

func hasBoolPrefix(name string) bool {
	for _, p := range boolPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
