package parser

import (
	"strings"
	"testing"

	"klarlint/internal/decl"
	"klarlint/internal/lexer"
	"klarlint/internal/source"
	"klarlint/internal/testkit"
)

func parseSource(t *testing.T, src string) (*source.FileSet, *source.File, Result) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.klar", []byte(src))
	file := fs.Get(id)
	return fs, file, ParseFile(fs, file, lexer.Tokenize(file))
}

func findDecl(t *testing.T, res Result, kind decl.Kind, name string) *decl.Decl {
	t.Helper()
	var found *decl.Decl
	res.Decls.Walk(func(_ decl.ID, d *decl.Decl) {
		if d.Kind == kind && d.Name == name {
			found = d
		}
	})
	if found == nil {
		t.Fatalf("no %s declaration named %q (errors: %v)", kind, name, res.Errors)
	}
	return found
}

func TestParse_Struct(t *testing.T) {
	_, _, res := parseSource(t, `
pub struct User {
    pub name: String,
    age: u32,
    tags: Vec[String],
}`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	d := findDecl(t, res, decl.KindStruct, "User")
	if !d.IsPublic {
		t.Error("struct should be public")
	}
	if len(d.Fields) != 3 {
		t.Fatalf("field count = %d, want 3", len(d.Fields))
	}
	if !d.Fields[0].IsPublic || d.Fields[0].Name != "name" || d.Fields[0].Type != "String" {
		t.Errorf("fields[0] = %+v", d.Fields[0])
	}
	if d.Fields[1].IsPublic {
		t.Error("fields[1] should be private")
	}
	if d.Fields[2].Type != "Vec[String]" {
		t.Errorf("fields[2].Type = %q, want Vec[String]", d.Fields[2].Type)
	}
}

func TestParse_FieldlessStruct(t *testing.T) {
	_, _, res := parseSource(t, "struct Marker;")
	d := findDecl(t, res, decl.KindStruct, "Marker")
	if len(d.Fields) != 0 {
		t.Errorf("field count = %d, want 0", len(d.Fields))
	}
}

func TestParse_Enum(t *testing.T) {
	_, _, res := parseSource(t, `
enum ApiError {
    NotFound,
    Timeout(u32),
    Invalid { reason: String },
}`)
	d := findDecl(t, res, decl.KindEnum, "ApiError")
	want := []string{"NotFound", "Timeout", "Invalid"}
	if len(d.Variants) != len(want) {
		t.Fatalf("variant count = %d, want %d", len(d.Variants), len(want))
	}
	for i, v := range d.Variants {
		if v.Name != want[i] {
			t.Errorf("variant[%d] = %q, want %q", i, v.Name, want[i])
		}
	}
}

func TestParse_TraitAndImpl(t *testing.T) {
	_, _, res := parseSource(t, `
pub trait Store {
    fn store_get(&self, key: String) -> ?String;
    fn store_put(&mut self, key: String, value: String);
}

impl Store for MemStore {
    fn store_get(&self, key: String) -> ?String { none }
    fn store_put(&mut self, key: String, value: String) {}
}`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}

	tr := findDecl(t, res, decl.KindTrait, "Store")
	if len(tr.Methods) != 2 {
		t.Fatalf("trait method count = %d, want 2", len(tr.Methods))
	}
	m0 := res.Decls.Get(tr.Methods[0])
	if m0.Name != "store_get" || !m0.HasReceiver || m0.Receiver != decl.Borrowed {
		t.Errorf("method[0] = %+v", m0)
	}
	if m0.ReturnType != "?String" {
		t.Errorf("method[0].ReturnType = %q, want ?String", m0.ReturnType)
	}
	if !m0.IsPublic {
		t.Error("methods of a public trait should be public")
	}
	m1 := res.Decls.Get(tr.Methods[1])
	if m1.Receiver != decl.BorrowedMut {
		t.Errorf("method[1].Receiver = %v, want borrowed-mut", m1.Receiver)
	}

	var imp *decl.Decl
	res.Decls.Walk(func(_ decl.ID, d *decl.Decl) {
		if d.Kind == decl.KindImpl {
			imp = d
		}
	})
	if imp == nil {
		t.Fatal("impl block not found")
	}
	if imp.TraitName != "Store" || imp.TargetType != "MemStore" {
		t.Errorf("impl = %q for %q", imp.TraitName, imp.TargetType)
	}
	if len(imp.Methods) != 2 {
		t.Errorf("impl method count = %d, want 2", len(imp.Methods))
	}
}

func TestParse_FunctionSignature(t *testing.T) {
	_, _, res := parseSource(t, `
fn transfer(from: &mut Account, to: &Account, amount: u64) -> Result[Receipt, TransferError] {
    do_transfer(from, to, amount)
}`)
	d := findDecl(t, res, decl.KindFunction, "transfer")
	if len(d.Params) != 3 {
		t.Fatalf("param count = %d, want 3", len(d.Params))
	}
	if d.Params[0].Mode != decl.BorrowedMut || d.Params[0].Type != "&mut Account" {
		t.Errorf("params[0] = %+v", d.Params[0])
	}
	if d.Params[1].Mode != decl.Borrowed {
		t.Errorf("params[1].Mode = %v, want borrowed", d.Params[1].Mode)
	}
	if d.Params[2].Mode != decl.Owned {
		t.Errorf("params[2].Mode = %v, want owned", d.Params[2].Mode)
	}
	if d.ReturnType != "Result[Receipt, TransferError]" {
		t.Errorf("ReturnType = %q", d.ReturnType)
	}
	if d.BodySpan.Empty() {
		t.Error("body span should be recorded")
	}
}

func TestParse_Const(t *testing.T) {
	_, _, res := parseSource(t, "pub const MAX_RETRIES: u32 = 5;")
	d := findDecl(t, res, decl.KindConst, "MAX_RETRIES")
	if d.ConstType != "u32" {
		t.Errorf("ConstType = %q, want u32", d.ConstType)
	}
	if d.InitLit != "5" {
		t.Errorf("InitLit = %q, want 5", d.InitLit)
	}
}

func TestParse_ModuleChildren(t *testing.T) {
	_, _, res := parseSource(t, `
mod auth {
    pub fn login() {}
    struct Session { id: u64 }
}`)
	m := findDecl(t, res, decl.KindModule, "auth")
	_ = m

	var modID decl.ID
	res.Decls.Walk(func(id decl.ID, d *decl.Decl) {
		if d.Kind == decl.KindModule {
			modID = id
		}
	})
	children := 0
	res.Decls.Walk(func(_ decl.ID, d *decl.Decl) {
		if d.Parent == modID && modID.IsValid() {
			children++
		}
	})
	if children != 2 {
		t.Errorf("module child count = %d, want 2", children)
	}
}

func TestParse_DocPairing(t *testing.T) {
	_, _, res := parseSource(t, `
/// Adds two numbers.
/// Never overflows in practice.
pub fn add(a: i32, b: i32) -> i32 { a + b }

/// orphaned: blank line below

fn lonely() {}`)
	add := findDecl(t, res, decl.KindFunction, "add")
	if !add.HasDoc {
		t.Fatal("doc block directly above should attach")
	}
	if !strings.Contains(add.Doc, "Adds two numbers") || !strings.Contains(add.Doc, "Never overflows") {
		t.Errorf("Doc = %q", add.Doc)
	}
	lonely := findDecl(t, res, decl.KindFunction, "lonely")
	if lonely.HasDoc {
		t.Error("doc separated by a blank line must not attach")
	}
}

func TestParse_ResyncRecoversFollowingItems(t *testing.T) {
	_, _, res := parseSource(t, `
struct Broken {
fn still_parsed() {}`)
	if !res.Resynced && len(res.Errors) == 0 {
		t.Fatal("expected at least one recovered error")
	}
	findDecl(t, res, decl.KindFunction, "still_parsed")
}

func TestParse_GarbageThenGoodItem(t *testing.T) {
	_, _, res := parseSource(t, `
let top_level = 3;

fn good() {}`)
	if !res.Resynced {
		t.Fatal("expected parser to resynchronize")
	}
	if len(res.Errors) == 0 {
		t.Fatal("expected recorded errors")
	}
	if res.ResyncSpan.Len() == 0 {
		t.Error("resync span should anchor the first recovery point")
	}
	findDecl(t, res, decl.KindFunction, "good")
}

func TestParse_UnterminatedBody(t *testing.T) {
	_, _, res := parseSource(t, "fn broken() {")
	if len(res.Errors) == 0 {
		t.Fatal("unterminated body should produce an error")
	}
}

func TestParse_UnsafeRegions(t *testing.T) {
	_, _, res := parseSource(t, `
fn justified(idx: usize) {
    // SAFETY: idx is checked by the caller
    unsafe { raw_read(idx) }
}

fn commented(idx: usize) {
    // just a note
    unsafe { raw_read(idx) }
}

fn bare(idx: usize) {
    unsafe { raw_read(idx) }
}`)
	if len(res.Decls.Unsafes) != 3 {
		t.Fatalf("unsafe region count = %d, want 3", len(res.Decls.Unsafes))
	}
	r0, r1, r2 := res.Decls.Unsafes[0], res.Decls.Unsafes[1], res.Decls.Unsafes[2]
	if !r0.HasSafety {
		t.Error("region 0 should have a SAFETY comment")
	}
	if r1.HasSafety {
		t.Error("region 1 has a plain comment, not a SAFETY comment")
	}
	if r1.Comment == "" {
		t.Error("region 1 should still record the nearby comment")
	}
	if r2.HasSafety || r2.Comment != "" {
		t.Errorf("region 2 should have no comment, got %+v", r2)
	}
	if owner := res.Decls.Get(r0.Owner); owner == nil || owner.Name != "justified" {
		t.Errorf("region 0 owner = %+v", owner)
	}
}

func TestParse_SafetyCommentOutsideWindow(t *testing.T) {
	_, _, res := parseSource(t, `
fn f(idx: usize) {
    // SAFETY: too far away

    unsafe { raw_read(idx) }
}`)
	if len(res.Decls.Unsafes) != 1 {
		t.Fatalf("unsafe region count = %d, want 1", len(res.Decls.Unsafes))
	}
	if res.Decls.Unsafes[0].HasSafety {
		t.Error("a SAFETY comment separated by a blank line is outside the window")
	}
}

func TestParse_UseAndTypeAliasSkipped(t *testing.T) {
	_, _, res := parseSource(t, `
use std::collections::Map;
type Alias = Map[String, u64];

fn real() {}`)
	if len(res.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", res.Errors)
	}
	if got := len(res.Decls.Top); got != 1 {
		t.Errorf("top-level decl count = %d, want 1 (use/type are not modeled)", got)
	}
	findDecl(t, res, decl.KindFunction, "real")
}

func TestParse_SpanInvariants(t *testing.T) {
	_, file, res := parseSource(t, `
/// A user.
pub struct User { name: String }

pub trait Greeter {
    fn greet(&self) -> String;
}

fn helper(a: u32, b: u32) -> u32 { a + b }

const LIMIT: u32 = 8;`)
	if err := testkit.CheckSpanInvariants(res.Decls, file); err != nil {
		t.Fatalf("span invariants violated: %v", err)
	}
}

func TestParse_Deterministic(t *testing.T) {
	src := `
pub struct Account { balance: u64 }
impl Account {
    pub fn deposit(&mut self, amount: u64) { self.balance = self.balance + amount }
}`
	_, _, a := parseSource(t, src)
	_, _, b := parseSource(t, src)
	if a.Decls.Len() != b.Decls.Len() {
		t.Fatalf("decl counts differ: %d vs %d", a.Decls.Len(), b.Decls.Len())
	}
	if len(a.Errors) != len(b.Errors) || a.Resynced != b.Resynced {
		t.Error("parse outcome must be deterministic")
	}
}
