package report

import (
	"klarlint/internal/source"
)

// Rule identifiers for findings synthesized outside the rule engine.
const (
	RuleParseError = "parse-error"
	RuleIOError    = "io-error"
	RulePanic      = "rule-panic"
)

// Finding is one reported issue. It is created once and never mutated.
type Finding struct {
	Rule         string        `json:"rule"`
	Severity     Severity      `json:"severity"`
	File         string        `json:"file"`
	Line         uint32        `json:"line"`
	Column       uint32        `json:"column"`
	Message      string        `json:"message"`
	SuggestedFix string        `json:"suggested_fix,omitempty"`
	Span         source.Span   `json:"-"`
}

// Less orders findings by (file, line, column, rule id) — the
// deterministic report order, independent of rule execution order.
func (f Finding) Less(other Finding) bool {
	if f.File != other.File {
		return f.File < other.File
	}
	if f.Line != other.Line {
		return f.Line < other.Line
	}
	if f.Column != other.Column {
		return f.Column < other.Column
	}
	return f.Rule < other.Rule
}
