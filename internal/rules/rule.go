// Package rules implements the analyzer's rule engine. A Rule is a
// pure function from a parsed file to findings: it must not mutate
// shared state, and each rule is independently callable and testable.
// Rule order never affects the finding set — the aggregator sorts.
package rules

import (
	"klarlint/internal/decl"
	"klarlint/internal/report"
	"klarlint/internal/source"
	"klarlint/internal/token"
)

// Context is everything one rule may inspect for one file: the
// declaration arena, the raw token stream (comments included), and the
// source file itself.
type Context struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Decls   *decl.File
}

// Rule is one independent check.
type Rule interface {
	// ID is the stable identifier used in findings and configuration.
	ID() string
	// Describe is a one-line human description for `klarlint rules`.
	Describe() string
	// Check inspects one file and returns its findings.
	Check(ctx *Context) []report.Finding
}

// NewFinding builds a finding anchored at span, resolving line/column
// through the file set.
func (c *Context) NewFinding(rule string, sev report.Severity, span source.Span, msg string) report.Finding {
	pos := c.FileSet.Position(c.File.ID, span.Start)
	return report.Finding{
		Rule:     rule,
		Severity: sev,
		File:     c.File.Path,
		Line:     pos.Line,
		Column:   pos.Col,
		Message:  msg,
		Span:     span,
	}
}

// TokensIn returns the significant tokens whose spans lie inside span.
func (c *Context) TokensIn(span source.Span) []token.Token {
	out := make([]token.Token, 0, 16)
	for _, t := range c.Tokens {
		if t.Kind == token.EOF || t.IsComment() {
			continue
		}
		if t.Span.Start >= span.Start && t.Span.End <= span.End {
			out = append(out, t)
		}
	}
	return out
}
