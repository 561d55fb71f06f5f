package rules

import (
	"strings"
	"testing"

	"klarlint/internal/lexer"
	"klarlint/internal/parser"
	"klarlint/internal/report"
	"klarlint/internal/source"
)

func makeContext(t *testing.T, src string) *Context {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.klar", []byte(src))
	file := fs.Get(id)
	toks := lexer.Tokenize(file)
	res := parser.ParseFile(fs, file, toks)
	return &Context{FileSet: fs, File: file, Tokens: toks, Decls: res.Decls}
}

func checkSource(t *testing.T, r Rule, src string) []report.Finding {
	t.Helper()
	return r.Check(makeContext(t, src))
}

func countSeverity(fs []report.Finding, sev report.Severity) int {
	n := 0
	for _, f := range fs {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

func hasMessage(fs []report.Finding, fragment string) bool {
	for _, f := range fs {
		if strings.Contains(f.Message, fragment) {
			return true
		}
	}
	return false
}

func TestAll_StableOrder(t *testing.T) {
	rs := All()
	if len(rs) != 7 {
		t.Fatalf("rule count = %d, want 7", len(rs))
	}
	for i := 1; i < len(rs); i++ {
		if rs[i-1].ID() >= rs[i].ID() {
			t.Errorf("rules out of order: %q before %q", rs[i-1].ID(), rs[i].ID())
		}
	}
	for _, r := range rs {
		if r.Describe() == "" {
			t.Errorf("rule %q has no description", r.ID())
		}
	}
}

func TestSecurity_Subset(t *testing.T) {
	rs := Security()
	if len(rs) != 2 {
		t.Fatalf("security rule count = %d, want 2", len(rs))
	}
	want := map[string]bool{IDUnsafeAudit: true, IDSecretLeak: true}
	for _, r := range rs {
		if !want[r.ID()] {
			t.Errorf("unexpected security rule %q", r.ID())
		}
	}
}

func TestSelect_DisablesByConfig(t *testing.T) {
	selected := Select(All(), map[string]bool{
		IDNaming:      false,
		IDDocCoverage: true,
	})
	for _, r := range selected {
		if r.ID() == IDNaming {
			t.Error("naming should be disabled")
		}
	}
	if len(selected) != 6 {
		t.Errorf("selected count = %d, want 6", len(selected))
	}
}

type panicRule struct{}

func (panicRule) ID() string       { return "panic-rule" }
func (panicRule) Describe() string { return "always panics" }
func (panicRule) Check(ctx *Context) []report.Finding {
	panic("boom")
}

func TestRun_PanicIsolated(t *testing.T) {
	ctx := makeContext(t, "pub fn undocumented() {}")
	findings := Run(ctx, []Rule{panicRule{}, DocCoverage{}})

	panics := 0
	doc := 0
	for _, f := range findings {
		switch f.Rule {
		case report.RulePanic:
			panics++
			if f.Severity != report.SevMedium {
				t.Errorf("panic finding severity = %v, want medium", f.Severity)
			}
			if !strings.Contains(f.Message, "panic-rule") {
				t.Errorf("panic finding should name the rule: %q", f.Message)
			}
		case IDDocCoverage:
			doc++
		}
	}
	if panics != 1 {
		t.Errorf("panic finding count = %d, want 1", panics)
	}
	if doc != 1 {
		t.Error("rules after the panicking one must still run")
	}
}

func TestRun_OrderIndependentFindingSet(t *testing.T) {
	src := `
pub struct config_store { conn: &Database }
pub fn Check() -> bool { true }`
	a := Run(makeContext(t, src), []Rule{Naming{}, Ownership{}, DocCoverage{}})
	b := Run(makeContext(t, src), []Rule{DocCoverage{}, Ownership{}, Naming{}})
	if len(a) != len(b) {
		t.Fatalf("finding counts differ by rule order: %d vs %d", len(a), len(b))
	}
	seen := make(map[string]int, len(a))
	for _, f := range a {
		seen[f.Rule+"|"+f.Message]++
	}
	for _, f := range b {
		seen[f.Rule+"|"+f.Message]--
	}
	for k, n := range seen {
		if n != 0 {
			t.Errorf("finding %q differs between orders", k)
		}
	}
}
