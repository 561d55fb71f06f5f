package lexer

import (
	"testing"

	"klarlint/internal/source"
	"klarlint/internal/token"
)

func makeTestFile(t *testing.T, content string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.klar", []byte(content))
	return fs.Get(id)
}

func collectAllTokens(t *testing.T, content string) []token.Token {
	t.Helper()
	return Tokenize(makeTestFile(t, content))
}

func kindsOf(tokens []token.Token) []token.Kind {
	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func expectKinds(t *testing.T, content string, want []token.Kind) {
	t.Helper()
	got := kindsOf(collectAllTokens(t, content))
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (got %v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexer_EmptyInput(t *testing.T) {
	tokens := collectAllTokens(t, "")
	if len(tokens) != 1 || tokens[0].Kind != token.EOF {
		t.Fatalf("empty input should yield exactly one EOF, got %v", kindsOf(tokens))
	}
}

func TestLexer_KeywordsAndIdents(t *testing.T) {
	expectKinds(t, "fn main self Self unsafe value", []token.Kind{
		token.KwFn, token.Ident, token.KwSelf, token.KwSelfType,
		token.KwUnsafe, token.Ident, token.EOF,
	})
}

func TestLexer_SimpleFunction(t *testing.T) {
	tokens := collectAllTokens(t, "fn add(a: i32, b: i32) -> i32 { a + b }")
	want := []token.Kind{
		token.KwFn, token.Ident, token.LParen,
		token.Ident, token.Colon, token.Ident, token.Comma,
		token.Ident, token.Colon, token.Ident, token.RParen,
		token.Arrow, token.Ident, token.LBrace,
		token.Ident, token.Plus, token.Ident, token.RBrace,
		token.EOF,
	}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d (got %v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if tokens[1].Text != "add" {
		t.Errorf("function name token = %q, want %q", tokens[1].Text, "add")
	}
}

func TestLexer_Operators(t *testing.T) {
	expectKinds(t, ":: -> => ? .. == != <= >= && || & |", []token.Kind{
		token.ColonColon, token.Arrow, token.FatArrow, token.Question,
		token.DotDot, token.EqEq, token.BangEq, token.LtEq, token.GtEq,
		token.AmpAmp, token.PipePipe, token.Amp, token.Pipe, token.EOF,
	})
}

func TestLexer_Underscore(t *testing.T) {
	expectKinds(t, "_ = foo()", []token.Kind{
		token.Underscore, token.Assign, token.Ident, token.LParen, token.RParen, token.EOF,
	})
	// underscore-prefixed names stay identifiers
	expectKinds(t, "_hidden", []token.Kind{token.Ident, token.EOF})
}

func TestLexer_Numbers(t *testing.T) {
	tokens := collectAllTokens(t, "42 3.14 0")
	if tokens[0].Kind != token.IntLit || tokens[0].Text != "42" {
		t.Errorf("tokens[0] = %v %q, want IntLit \"42\"", tokens[0].Kind, tokens[0].Text)
	}
	if tokens[1].Kind != token.FloatLit || tokens[1].Text != "3.14" {
		t.Errorf("tokens[1] = %v %q, want FloatLit \"3.14\"", tokens[1].Kind, tokens[1].Text)
	}
	if tokens[2].Kind != token.IntLit {
		t.Errorf("tokens[2] = %v, want IntLit", tokens[2].Kind)
	}
}

func TestLexer_Strings(t *testing.T) {
	tokens := collectAllTokens(t, `log.info("user logged in")`)
	var lit *token.Token
	for i := range tokens {
		if tokens[i].Kind == token.StringLit {
			lit = &tokens[i]
			break
		}
	}
	if lit == nil {
		t.Fatal("expected a string literal token")
	}
	if lit.Text != `"user logged in"` {
		t.Errorf("string text = %q", lit.Text)
	}
}

func TestLexer_UnterminatedStringCutAtNewline(t *testing.T) {
	tokens := collectAllTokens(t, "\"oops\nfn main() {}")
	if tokens[0].Kind != token.StringLit {
		t.Fatalf("tokens[0] = %v, want StringLit", tokens[0].Kind)
	}
	if tokens[1].Kind != token.KwFn {
		t.Errorf("lexing should continue on the next line, got %v", tokens[1].Kind)
	}
}

func TestLexer_CommentClassification(t *testing.T) {
	src := "// plain\n/// doc line\n// SAFETY: checked above\n/* block */\n/* SAFETY: block form */"
	tokens := collectAllTokens(t, src)
	want := []token.Kind{
		token.Comment, token.DocComment, token.SafetyComment,
		token.Comment, token.SafetyComment, token.EOF,
	}
	got := kindsOf(tokens)
	if len(got) != len(want) {
		t.Fatalf("token kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexer_NestedBlockComment(t *testing.T) {
	tokens := collectAllTokens(t, "/* outer /* inner */ still outer */ fn")
	if tokens[0].Kind != token.Comment {
		t.Fatalf("tokens[0] = %v, want Comment", tokens[0].Kind)
	}
	if tokens[1].Kind != token.KwFn {
		t.Errorf("tokens[1] = %v, want fn keyword after nested comment", tokens[1].Kind)
	}
}

func TestLexer_UnknownByte(t *testing.T) {
	tokens := collectAllTokens(t, "fn $ main")
	want := []token.Kind{token.KwFn, token.Unknown, token.Ident, token.EOF}
	got := kindsOf(tokens)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLexer_EOFIsSticky(t *testing.T) {
	lx := New(makeTestFile(t, "fn"))
	if lx.Next().Kind != token.KwFn {
		t.Fatal("expected fn")
	}
	for i := 0; i < 3; i++ {
		if got := lx.Next(); got.Kind != token.EOF {
			t.Fatalf("call %d after end = %v, want EOF", i, got.Kind)
		}
	}
}

func TestLexer_SetOffsetRescans(t *testing.T) {
	file := makeTestFile(t, "fn main() {}")
	lx := New(file)
	first := lx.Next()
	lx.Next()
	lx.SetOffset(first.Span.Start)
	again := lx.Next()
	if again.Kind != first.Kind || again.Span != first.Span {
		t.Errorf("re-scan from offset %d = %v, want %v", first.Span.Start, again, first)
	}
}

func TestLexer_SpansCoverSource(t *testing.T) {
	src := "fn is_ready() -> bool { true }"
	file := makeTestFile(t, src)
	for _, tok := range Tokenize(file) {
		if tok.Kind == token.EOF {
			continue
		}
		if tok.Span.End <= tok.Span.Start {
			t.Errorf("token %v has empty span %v", tok.Kind, tok.Span)
		}
		if int(tok.Span.End) > len(src) {
			t.Errorf("token %v span %v exceeds source length %d", tok.Kind, tok.Span, len(src))
		}
		if text := src[tok.Span.Start:tok.Span.End]; tok.Text != "" && text != tok.Text {
			t.Errorf("token text %q does not match span slice %q", tok.Text, text)
		}
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	src := "pub fn get_user(id: u64) -> Result[User, ApiError] { find(id)? }"
	file := makeTestFile(t, src)
	a := Tokenize(file)
	b := Tokenize(file)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("token[%d] differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}
