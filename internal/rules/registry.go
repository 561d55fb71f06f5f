package rules

import (
	"fmt"
	"sort"

	"klarlint/internal/report"
	"klarlint/internal/source"
)

// Rule identifiers.
const (
	IDNaming        = "naming"
	IDOwnership     = "ownership"
	IDAPIShape      = "api-shape"
	IDErrorHandling = "error-handling"
	IDUnsafeAudit   = "unsafe-audit"
	IDSecretLeak    = "secret-leak"
	IDDocCoverage   = "doc-coverage"
)

// securityIDs is the subset run by `--rules security`.
var securityIDs = map[string]bool{
	IDUnsafeAudit: true,
	IDSecretLeak:  true,
}

// IsSecurity reports whether a rule id belongs to the security subset.
func IsSecurity(id string) bool { return securityIDs[id] }

// All returns every registered rule, in stable id order. A fresh slice
// each call; rules themselves are stateless.
func All() []Rule {
	rs := []Rule{
		Naming{},
		Ownership{},
		APIShape{},
		ErrorHandling{},
		UnsafeAudit{},
		SecretLeak{},
		DocCoverage{},
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i].ID() < rs[j].ID() })
	return rs
}

// Security returns the security-focused subset.
func Security() []Rule {
	out := make([]Rule, 0, len(securityIDs))
	for _, r := range All() {
		if IsSecurity(r.ID()) {
			out = append(out, r)
		}
	}
	return out
}

// Select filters rules by the enabled map from configuration. A rule
// missing from the map stays enabled.
func Select(rs []Rule, enabled map[string]bool) []Rule {
	out := make([]Rule, 0, len(rs))
	for _, r := range rs {
		if on, found := enabled[r.ID()]; found && !on {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Run executes every rule over one file and concatenates the results.
// A panicking rule never aborts the file: the panic is converted into
// a single diagnostic finding tagged with the rule id, and the
// remaining rules still run.
func Run(ctx *Context, rs []Rule) []report.Finding {
	var out []report.Finding
	for _, r := range rs {
		out = append(out, runOne(ctx, r)...)
	}
	return out
}

func runOne(ctx *Context, r Rule) (fs []report.Finding) {
	defer func() {
		if rec := recover(); rec != nil {
			fs = []report.Finding{ctx.NewFinding(
				report.RulePanic,
				report.SevMedium,
				source.Span{File: ctx.File.ID},
				fmt.Sprintf("rule %q failed internally: %v", r.ID(), rec),
			)}
		}
	}()
	return r.Check(ctx)
}
