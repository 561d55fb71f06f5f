package rules

import (
	"testing"

	"klarlint/internal/report"
)

func TestNaming_CleanFilePasses(t *testing.T) {
	findings := checkSource(t, Naming{}, `
pub struct UserAccount {
    display_name: String,
    is_active: bool,
}

enum HttpStatus { Ok, NotFound }

mod user_store;

pub fn find_user(user_id: u64) -> ?UserAccount { lookup(user_id) }

fn is_ready() -> bool { true }

const MAX_RETRIES: u32 = 3;`)
	if len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findings)
	}
}

func TestNaming_TypeCase(t *testing.T) {
	findings := checkSource(t, Naming{}, "struct user_account { name: String }")
	if len(findings) != 1 {
		t.Fatalf("finding count = %d, want 1", len(findings))
	}
	f := findings[0]
	if f.Severity != report.SevLow {
		t.Errorf("severity = %v, want low", f.Severity)
	}
	if f.SuggestedFix != "UserAccount" {
		t.Errorf("SuggestedFix = %q, want UserAccount", f.SuggestedFix)
	}
}

func TestNaming_FunctionCase(t *testing.T) {
	findings := checkSource(t, Naming{}, "fn DoThing() {}")
	if len(findings) != 1 {
		t.Fatalf("finding count = %d, want 1", len(findings))
	}
	if findings[0].SuggestedFix != "do_thing" {
		t.Errorf("SuggestedFix = %q, want do_thing", findings[0].SuggestedFix)
	}
}

func TestNaming_ConstCase(t *testing.T) {
	findings := checkSource(t, Naming{}, "const maxSize: u32 = 10;")
	if len(findings) != 1 {
		t.Fatalf("finding count = %d, want 1", len(findings))
	}
	if findings[0].SuggestedFix != "MAX_SIZE" {
		t.Errorf("SuggestedFix = %q, want MAX_SIZE", findings[0].SuggestedFix)
	}
}

func TestNaming_BoolFunctionNeedsPrefix(t *testing.T) {
	findings := checkSource(t, Naming{}, "fn ready() -> bool { true }")
	if countSeverity(findings, report.SevMedium) != 1 {
		t.Fatalf("expected one medium finding, got %v", findings)
	}
	if !hasMessage(findings, "boolean function") {
		t.Errorf("message should name the boolean function: %v", findings)
	}

	clean := checkSource(t, Naming{}, "fn has_capacity() -> bool { true }")
	if len(clean) != 0 {
		t.Errorf("prefixed boolean function should pass, got %v", clean)
	}
}

func TestNaming_BoolFieldNeedsPrefix(t *testing.T) {
	findings := checkSource(t, Naming{}, "struct Flags { ready: bool }")
	if countSeverity(findings, report.SevMedium) != 1 {
		t.Fatalf("expected one medium finding, got %v", findings)
	}
}

func TestNaming_BoolConstNeedsPrefix(t *testing.T) {
	findings := checkSource(t, Naming{}, "const VERBOSE: bool = false;")
	if countSeverity(findings, report.SevMedium) != 1 {
		t.Fatalf("expected one medium finding, got %v", findings)
	}

	clean := checkSource(t, Naming{}, "const IS_VERBOSE: bool = false;")
	if len(clean) != 0 {
		t.Errorf("IS_ prefixed boolean constant should pass, got %v", clean)
	}
}

func TestNaming_EnumVariantCase(t *testing.T) {
	findings := checkSource(t, Naming{}, "enum Status { Ok, not_found }")
	if len(findings) != 1 {
		t.Fatalf("finding count = %d, want 1", len(findings))
	}
	if findings[0].SuggestedFix != "NotFound" {
		t.Errorf("SuggestedFix = %q, want NotFound", findings[0].SuggestedFix)
	}
}

func TestNaming_AcronymSegmentation(t *testing.T) {
	// HTTPServer segments as HTTP + Server, already PascalCase
	findings := checkSource(t, Naming{}, "struct HTTPServer { port: u16 }")
	if len(findings) != 0 {
		t.Errorf("acronym-leading Pascal name should pass, got %v", findings)
	}
}

func TestNaming_ParamCase(t *testing.T) {
	findings := checkSource(t, Naming{}, "fn send(MaxValue: u32) {}")
	if len(findings) != 1 {
		t.Fatalf("finding count = %d, want 1", len(findings))
	}
	if findings[0].SuggestedFix != "max_value" {
		t.Errorf("SuggestedFix = %q, want max_value", findings[0].SuggestedFix)
	}
}

func TestNaming_LetBindingCase(t *testing.T) {
	findings := checkSource(t, Naming{}, `
fn run() {
    let userCount = 1;
}`)
	if countSeverity(findings, report.SevLow) != 1 {
		t.Fatalf("expected one low finding, got %v", findings)
	}
	if findings[0].SuggestedFix != "user_count" {
		t.Errorf("SuggestedFix = %q, want user_count", findings[0].SuggestedFix)
	}

	clean := checkSource(t, Naming{}, `
fn run() {
    let mut retry_count = 0;
}`)
	if len(clean) != 0 {
		t.Errorf("snake_case binding should pass, got %v", clean)
	}
}

func TestNaming_BoolLetNeedsPrefix(t *testing.T) {
	findings := checkSource(t, Naming{}, `
fn run() {
    let ready = true;
}`)
	if countSeverity(findings, report.SevMedium) != 1 {
		t.Fatalf("expected one medium finding, got %v", findings)
	}

	annotated := checkSource(t, Naming{}, `
fn run(source: Flags) {
    let done: bool = source.empty();
}`)
	if countSeverity(annotated, report.SevMedium) != 1 {
		t.Errorf("bool-annotated binding needs the prefix too, got %v", annotated)
	}

	clean := checkSource(t, Naming{}, `
fn run() {
    let is_ready = true;
    let count = compute(true);
}`)
	if len(clean) != 0 {
		t.Errorf("prefixed boolean and non-boolean bindings should pass, got %v", clean)
	}
}
