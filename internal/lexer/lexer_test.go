package lexer

import (
	"testing"

	"monoforce/internal/diag"
	"monoforce/internal/source"
	"monoforce/internal/token"
)

func lexString(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(src))
	bag := diag.NewBag(0)
	lx := New(fs.Get(id), Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx.All(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		out = append(out, tk.Kind)
	}
	return out
}

func expectKinds(t *testing.T, src string, want ...token.Kind) []token.Token {
	t.Helper()
	toks, bag := lexString(t, src)
	if bag.HasErrors() {
		t.Fatalf("%q: unexpected diagnostics: %+v", src, bag.Items())
	}
	want = append(want, token.EOF)
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d is %v, want %v (all: %v)", src, i, got[i], want[i], got)
		}
	}
	return toks
}

func TestAttributeTokens(t *testing.T) {
	toks := expectKinds(t, "#[mono(T = i32, 'a = 'static)]",
		token.Pound, token.LBracket, token.Ident, token.LParen,
		token.Ident, token.Eq, token.Ident, token.Comma,
		token.Lifetime, token.Eq, token.Lifetime,
		token.RParen, token.RBracket,
	)
	if toks[8].Text != "'a" || toks[10].Text != "'static" {
		t.Errorf("lifetime texts = %q, %q", toks[8].Text, toks[10].Text)
	}
}

func TestQualifiedPath(t *testing.T) {
	expectKinds(t, "<Foo as Tr<i32>>::foo",
		token.Lt, token.Ident, token.KwAs, token.Ident, token.Lt, token.Ident,
		token.Gt, token.Gt, token.ColonColon, token.Ident,
	)
}

func TestFnSignature(t *testing.T) {
	expectKinds(t, "pub fn foo<'a, T: Clone, const N: usize>(x: &'a T) -> [T; N] {}",
		token.KwPub, token.KwFn, token.Ident, token.Lt,
		token.Lifetime, token.Comma,
		token.Ident, token.Colon, token.Ident, token.Comma,
		token.KwConst, token.Ident, token.Colon, token.Ident, token.Gt,
		token.LParen, token.Ident, token.Colon, token.Amp, token.Lifetime, token.Ident, token.RParen,
		token.Arrow, token.LBracket, token.Ident, token.Semicolon, token.Ident, token.RBracket,
		token.LBrace, token.RBrace,
	)
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		src  string
		kind token.Kind
	}{
		{`"plain"`, token.StringLit},
		{`"esc \" quote"`, token.StringLit},
		{"\"multi\nline\"", token.StringLit},
		{`b"bytes"`, token.StringLit},
		{`c"cstr"`, token.StringLit},
		{`r"raw \ no escapes"`, token.StringLit},
		{`r#"has "quotes""#`, token.StringLit},
		{`br##"a "# b"##`, token.StringLit},
		{`'x'`, token.CharLit},
		{`'\n'`, token.CharLit},
		{`'\''`, token.CharLit},
		{`'\u{1F600}'`, token.CharLit},
		{`b'a'`, token.CharLit},
		{`'é'`, token.CharLit},
		{"42", token.IntLit},
		{"1_000u64", token.IntLit},
		{"0xFF_u8", token.IntLit},
		{"0b1010", token.IntLit},
		{"1.5", token.FloatLit},
		{"1.", token.FloatLit},
		{"2.5e-3f64", token.FloatLit},
		{"1e10", token.FloatLit},
	}
	for _, tt := range tests {
		toks := expectKinds(t, tt.src, tt.kind)
		if toks[0].Text != tt.src {
			t.Errorf("%q: text = %q", tt.src, toks[0].Text)
		}
	}
}

func TestRangeIsNotFloat(t *testing.T) {
	expectKinds(t, "0..10", token.IntLit, token.DotDot, token.IntLit)
	expectKinds(t, "1.max(2)", token.IntLit, token.Dot, token.Ident, token.LParen, token.IntLit, token.RParen)
	expectKinds(t, "t.0.1", token.Ident, token.Dot, token.FloatLit)
}

func TestIdentifiers(t *testing.T) {
	toks := expectKinds(t, "r#fn r#type _x _ Self self crate Тип bar",
		token.Ident, token.Ident, token.Ident, token.Underscore,
		token.KwSelfType, token.KwSelfValue, token.KwCrate, token.Ident, token.Ident,
	)
	if toks[0].Text != "r#fn" {
		t.Errorf("raw ident text = %q", toks[0].Text)
	}
	if toks[7].Text != "Тип" {
		t.Errorf("unicode ident text = %q", toks[7].Text)
	}
	// `b`, `r`, `c` on their own are ordinary identifiers.
	expectKinds(t, "b r c br", token.Ident, token.Ident, token.Ident, token.Ident)
}

func TestAnonymousLifetime(t *testing.T) {
	toks := expectKinds(t, "&'_ str", token.Amp, token.Lifetime, token.Ident)
	if toks[1].Text != "'_" {
		t.Errorf("text = %q", toks[1].Text)
	}
}

func TestTriviaAttachedToNextToken(t *testing.T) {
	src := "/// doc\n// plain\n/* block /* nested */ */ fn"
	toks := expectKinds(t, src, token.KwFn)
	lead := toks[0].Leading
	want := []token.TriviaKind{
		token.TriviaDocLine, token.TriviaNewline,
		token.TriviaLineComment, token.TriviaNewline,
		token.TriviaBlockComment, token.TriviaSpace,
	}
	if len(lead) != len(want) {
		t.Fatalf("leading trivia = %+v", lead)
	}
	for i, k := range want {
		if lead[i].Kind != k {
			t.Errorf("trivia %d = %v, want %v", i, lead[i].Kind, k)
		}
	}
	if !toks[0].HasLeadingNewline() {
		t.Errorf("expected leading newline")
	}
}

func TestSpansCoverSource(t *testing.T) {
	src := "fn  foo ( )"
	toks, _ := lexString(t, src)
	for _, tk := range toks[:len(toks)-1] {
		if got := src[tk.Span.Start:tk.Span.End]; got != tk.Text {
			t.Errorf("span %v text %q, want %q", tk.Span, got, tk.Text)
		}
	}
	eof := toks[len(toks)-1]
	if eof.Span.Start != uint32(len(src)) || !eof.Span.Empty() {
		t.Errorf("eof span = %v", eof.Span)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{`"open`, diag.LexUnterminatedString},
		{`r#"open"`, diag.LexUnterminatedString},
		{"/* never closed", diag.LexUnterminatedBlockComment},
		{`'\x`, diag.LexUnterminatedChar},
		{"'\n", diag.LexUnterminatedChar},
		{"0x", diag.LexBadNumber},
		{"→", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		toks, bag := lexString(t, tt.src)
		if !bag.HasErrors() {
			t.Errorf("%q: expected an error", tt.src)
			continue
		}
		if got := bag.Items()[0].Code; got != tt.code {
			t.Errorf("%q: code = %v, want %v", tt.src, got, tt.code)
		}
		if toks[len(toks)-1].Kind != token.EOF {
			t.Errorf("%q: stream does not end with EOF", tt.src)
		}
	}
}

func TestRangeLexer(t *testing.T) {
	src := "#[mono(T = u8)] fn f() {}"
	fs := source.NewFileSet()
	id := fs.AddVirtual("range.rs", []byte(src))
	// только содержимое скобок атрибута
	lx := NewRange(fs.Get(id), 7, 13, Options{})
	toks := lx.All()
	if len(toks) != 4 || toks[0].Text != "T" || toks[2].Text != "u8" || toks[3].Kind != token.EOF {
		t.Fatalf("range tokens = %+v", toks)
	}
	if toks[0].Span.Start != 7 {
		t.Errorf("spans must stay file-absolute, got %v", toks[0].Span)
	}
	if toks[3].Span.Start != 13 {
		t.Errorf("eof at %d, want 13", toks[3].Span.Start)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("peek.rs", []byte("a b"))
	lx := New(fs.Get(id), Options{})
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek = %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("next = %q", n.Text)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("want EOF, got %v", n.Kind)
	}
	if n := lx.Next(); n.Kind != token.EOF {
		t.Fatalf("EOF must be sticky, got %v", n.Kind)
	}
}
