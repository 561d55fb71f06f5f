package rules

import (
	"fmt"
	"strings"

	"klarlint/internal/decl"
	"klarlint/internal/report"
	"klarlint/internal/token"
)

// rawErrorTypes are the text types that make a Result's error side
// unstructured.
var rawErrorTypes = map[string]bool{
	"string": true,
	"str":    true,
	"String": true,
	"&str":   true,
}

// ErrorHandling audits the fallible-result discipline: Result error
// sides must be structured types, and a Result-returning call must not
// be bound to a discard without propagation.
type ErrorHandling struct{}

func (ErrorHandling) ID() string { return IDErrorHandling }

func (ErrorHandling) Describe() string {
	return "stringly-typed errors and silently discarded results"
}

func (e ErrorHandling) Check(ctx *Context) []report.Finding {
	var out []report.Finding

	fallible := fallibleFunctions(ctx)

	ctx.Decls.Walk(func(_ decl.ID, d *decl.Decl) {
		if d.Kind != decl.KindFunction {
			return
		}
		if errType, ok := resultErrorType(d.ReturnType); ok && rawErrorTypes[errType] {
			out = append(out, ctx.NewFinding(IDErrorHandling, report.SevMedium, d.Span,
				fmt.Sprintf("function %q returns Result with raw text error type %q; define a structured error type", d.Name, errType)))
		}
		if !d.BodySpan.Empty() {
			out = append(out, e.checkDiscards(ctx, d, fallible)...)
		}
	})

	return out
}

// resultErrorType extracts E from "Result[T, E]".
func resultErrorType(ret string) (string, bool) {
	if !strings.HasPrefix(ret, "Result[") || !strings.HasSuffix(ret, "]") {
		return "", false
	}
	inner := ret[len("Result[") : len(ret)-1]
	// split at the top-level comma
	depth := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ',':
			if depth == 0 {
				return strings.TrimSpace(inner[i+1:]), true
			}
		}
	}
	return "", false
}

// fallibleFunctions collects the in-file function names returning a
// Result shape. Cross-file callees are invisible to this heuristic.
func fallibleFunctions(ctx *Context) map[string]bool {
	out := map[string]bool{}
	ctx.Decls.Walk(func(_ decl.ID, d *decl.Decl) {
		if d.Kind == decl.KindFunction && strings.HasPrefix(d.ReturnType, "Result[") {
			out[d.Name] = true
		}
	})
	return out
}

// checkDiscards re-scans a function body's tokens for
// `let _ = fallible(...)` and `_ = fallible(...)` bindings with no
// adjacent propagation ('?' after the call).
func (ErrorHandling) checkDiscards(ctx *Context, d *decl.Decl, fallible map[string]bool) []report.Finding {
	var out []report.Finding
	toks := ctx.TokensIn(d.BodySpan)

	for i := 0; i < len(toks); i++ {
		if toks[i].Kind != token.Underscore {
			continue
		}
		if i+1 >= len(toks) || toks[i+1].Kind != token.Assign {
			continue
		}
		callee, callEnd, ok := calleeAfter(toks, i+2)
		if !ok || !fallible[callee] {
			continue
		}
		if callEnd+1 < len(toks) && toks[callEnd+1].Kind == token.Question {
			continue // propagated
		}
		out = append(out, ctx.NewFinding(IDErrorHandling, report.SevHigh, toks[i].Span,
			fmt.Sprintf("result of fallible call %q is silently discarded; handle or propagate the error", callee)))
	}
	return out
}

// calleeAfter walks a call expression starting at toks[i] and returns
// the final callee name before '(' and the index of the matching ')'.
// Handles `name(...)`, `path::name(...)`, and `recv.name(...)`.
func calleeAfter(toks []token.Token, i int) (string, int, bool) {
	callee := ""
	for i < len(toks) {
		switch toks[i].Kind {
		case token.Ident, token.KwSelf:
			callee = toks[i].Text
			i++
		case token.ColonColon, token.Dot:
			i++
		case token.LParen:
			if callee == "" {
				return "", 0, false
			}
			depth := 0
			for j := i; j < len(toks); j++ {
				switch toks[j].Kind {
				case token.LParen:
					depth++
				case token.RParen:
					depth--
					if depth == 0 {
						return callee, j, true
					}
				}
			}
			return "", 0, false
		default:
			return "", 0, false
		}
	}
	return "", 0, false
}
