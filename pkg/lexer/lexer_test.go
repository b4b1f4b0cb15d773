package lexer

import (
	"slices"
	"strings"
	"testing"

	"github.com/thomasrohde/eva/pkg/diagnostics"
)

func lex(t *testing.T, src string) []Token {
	t.Helper()
	toks, err := Tokenize(src, "test.eva")
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	if n := len(toks); n == 0 || toks[n-1].Type != TokEOF {
		t.Fatalf("Tokenize(%q) did not end with EOF: %+v", src, toks)
	}
	return toks[:len(toks)-1]
}

func lexFail(t *testing.T, src string) diagnostics.Diagnostic {
	t.Helper()
	_, err := Tokenize(src, "test.eva")
	le, ok := err.(*LexError)
	if !ok {
		t.Fatalf("Tokenize(%q) error = %v (%T), want *LexError", src, err, err)
	}
	return le.Diag
}

func types(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func values(toks []Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Value
	}
	return out
}

// checkStream compares types and, when words is non-empty, the
// space-separated token values.
func checkStream(t *testing.T, src string, words string, want ...TokenType) {
	t.Helper()
	toks := lex(t, src)
	if got := types(toks); !slices.Equal(got, want) {
		t.Errorf("%q types:\n got: %v\nwant: %v", src, got, want)
	}
	if words != "" {
		if got := strings.Join(values(toks), " "); got != words {
			t.Errorf("%q values: got %q, want %q", src, got, words)
		}
	}
}

func TestSingleTokens(t *testing.T) {
	cases := map[string]TokenType{
		"0": TokNumberLit, "42": TokNumberLit, "007": TokNumberLit, "9223372036854775807": TokNumberLit,
		"x": TokIdent, "_": TokIdent, "_private": TokIdent, "name123": TokIdent, "PascalCase": TokIdent,
		"classy": TokIdent, "defaults": TokIdent, "done": TokIdent, "newer": TokIdent,
		"superb": TokIdent, "modules": TokIdent, "nullable": TokIdent, "print": TokIdent,
		"{": TokLBrace, "}": TokRBrace, "[": TokLBracket, "]": TokRBracket,
		"(": TokLParen, ")": TokRParen, ":": TokColon, ";": TokSemicolon,
		",": TokComma, ".": TokDot, "=": TokEquals,
		"+": TokPlus, "-": TokMinus, "*": TokStar, "/": TokSlash,
		">": TokGt, "<": TokLt, ">=": TokGtEq, "<=": TokLtEq,
		"==": TokEqEq, "!=": TokBangEq, "!": TokBang, "&&": TokAndAnd, "||": TokOrOr,
	}
	for word, typ := range keywords {
		cases[word] = typ
	}
	for src, want := range cases {
		toks := lex(t, src)
		if len(toks) != 1 || toks[0].Type != want || toks[0].Value != src {
			t.Errorf("%q lexed as %+v, want single token of type %d", src, toks, want)
			continue
		}
		if _, kw := keywords[src]; IsKeyword(want) != kw {
			t.Errorf("IsKeyword(%q) = %v", src, IsKeyword(want))
		}
	}
}

func TestStrings(t *testing.T) {
	tests := []struct{ src, want string }{
		{`""`, ""},
		{`''`, ""},
		{`"hello world"`, "hello world"},
		{`"it's"`, "it's"},
		{`'say "hi"'`, `say "hi"`},
		{`"say \"hi\""`, `say "hi"`},
		{`'it\'s'`, "it's"},
		{`"a\\b"`, `a\b`},
		{`"one\ntwo\rthree\tfour"`, "one\ntwo\rthree\tfour"},
		{`"nul\0"`, "nul\x00"},
		{`"héllo"`, "héllo"},
		{`"http://x /* y */"`, "http://x /* y */"},
	}
	for _, tt := range tests {
		toks := lex(t, tt.src)
		if len(toks) != 1 || toks[0].Type != TokStringLit {
			t.Errorf("%s: got %+v", tt.src, toks)
			continue
		}
		if toks[0].Value != tt.want {
			t.Errorf("%s: value %q, want %q", tt.src, toks[0].Value, tt.want)
		}
	}
}

func TestNoFractionalNumbers(t *testing.T) {
	checkStream(t, "1.x", "1 . x", TokNumberLit, TokDot, TokIdent)
}

func TestLongestOperatorWins(t *testing.T) {
	checkStream(t, "= =", "", TokEquals, TokEquals)
	checkStream(t, "!!x", "", TokBang, TokBang, TokIdent)
	checkStream(t, "a<=-b", "a <= - b", TokIdent, TokLtEq, TokMinus, TokIdent)
	checkStream(t, "a/b", "", TokIdent, TokSlash, TokIdent)
	checkStream(t, "a===b", "a == = b", TokIdent, TokEqEq, TokEquals, TokIdent)
}

func TestTrivia(t *testing.T) {
	for _, src := range []string{"", "   ", "\t\n\r", "// nothing here", "/* block */", "/** doc **/"} {
		if toks := lex(t, src); len(toks) != 0 {
			t.Errorf("%q: expected only EOF, got %+v", src, toks)
		}
	}
	for _, src := range []string{"let   x", "let\tx", "let\r\nx", " \t\n let \r\n x ", "let /* a\nmulti-line\ncomment */ x", "let // c\nx"} {
		checkStream(t, src, "let x", TokLet, TokIdent)
	}
	checkStream(t, "42 // the answer\n;", "42 ;", TokNumberLit, TokSemicolon)
}

func TestPrograms(t *testing.T) {
	checkStream(t, "class P3 extends P { def constructor(self, z) { super(P3).constructor(self); } }",
		"class P3 extends P { def constructor ( self , z ) { super ( P3 ) . constructor ( self ) ; } }",
		TokClass, TokIdent, TokExtends, TokIdent, TokLBrace,
		TokDef, TokIdent, TokLParen, TokIdent, TokComma, TokIdent, TokRParen, TokLBrace,
		TokSuper, TokLParen, TokIdent, TokRParen, TokDot, TokIdent, TokLParen, TokIdent, TokRParen, TokSemicolon,
		TokRBrace, TokRBrace)

	checkStream(t, "for (let i = 0; i < 10; i = i + 1) {}", "",
		TokFor, TokLParen, TokLet, TokIdent, TokEquals, TokNumberLit, TokSemicolon,
		TokIdent, TokLt, TokNumberLit, TokSemicolon,
		TokIdent, TokEquals, TokIdent, TokPlus, TokNumberLit, TokRParen, TokLBrace, TokRBrace)

	checkStream(t, "switch (x) { case 1: y; default: z; }", "",
		TokSwitch, TokLParen, TokIdent, TokRParen, TokLBrace,
		TokCase, TokNumberLit, TokColon, TokIdent, TokSemicolon,
		TokDefault, TokColon, TokIdent, TokSemicolon, TokRBrace)

	checkStream(t, "let sq = lambda (x) x * x; let m = import Math;", "let sq = lambda ( x ) x * x ; let m = import Math ;",
		TokLet, TokIdent, TokEquals, TokLambda, TokLParen, TokIdent, TokRParen,
		TokIdent, TokStar, TokIdent, TokSemicolon,
		TokLet, TokIdent, TokEquals, TokImport, TokIdent, TokSemicolon)
}

func TestSpans(t *testing.T) {
	toks := lex(t, "let x = 42;\nprint(x);")
	want := [][2]int{{1, 1}, {1, 5}, {1, 7}, {1, 9}, {1, 11}, {2, 1}, {2, 6}, {2, 7}, {2, 8}, {2, 9}}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if got := [2]int{toks[i].Span.StartLine, toks[i].Span.StartCol}; got != w {
			t.Errorf("token %d %q starts at %v, want %v", i, toks[i].Value, got, w)
		}
		if toks[i].Span.File != "test.eva" {
			t.Errorf("token %d file = %q", i, toks[i].Span.File)
		}
	}

	if s := lex(t, "extends")[0].Span; s.EndLine != 1 || s.EndCol != 8 {
		t.Errorf("extends ends at (%d,%d), want (1,8)", s.EndLine, s.EndCol)
	}
	if s := lex(t, `'hello'`)[0].Span; s.StartCol != 1 || s.EndCol != 8 {
		t.Errorf("string spans cols %d..%d, want 1..8", s.StartCol, s.EndCol)
	}
	if s := lex(t, "/*\n\n*/ x")[0].Span; s.StartLine != 3 || s.StartCol != 4 {
		t.Errorf("x after block comment at (%d,%d), want (3,4)", s.StartLine, s.StartCol)
	}
	// columns count bytes
	if s := lex(t, `"é" x`)[1].Span; s.StartCol != 6 {
		t.Errorf("x after multibyte string at col %d, want 6", s.StartCol)
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		src, code, msg string
	}{
		{`"hello`, diagnostics.EEOF, "unterminated string literal"},
		{`'hello`, diagnostics.EEOF, "unterminated string literal"},
		{`"\`, diagnostics.EEOF, "unterminated string escape"},
		{"/* never closed", diagnostics.EEOF, "unterminated block comment"},
		{"\"hello\nworld\"", diagnostics.ELex, "unterminated string literal"},
		{`"hello\x"`, diagnostics.ELex, `invalid escape character: \x`},
		{"\"bad \xff\"", diagnostics.ELex, "invalid UTF-8"},
		{"12abc", diagnostics.ELex, "invalid number literal '12a'"},
		{"a & b", diagnostics.ELex, "did you mean '&&'?"},
		{"a | b", diagnostics.ELex, "did you mean '||'?"},
		{"λ", diagnostics.ELex, "unexpected character 'λ'"},
	}
	for _, tt := range tests {
		d := lexFail(t, tt.src)
		if d.Code != tt.code || !strings.Contains(d.Message, tt.msg) {
			t.Errorf("%q: got %s %q, want %s containing %q", tt.src, d.Code, d.Message, tt.code, tt.msg)
		}
	}
	for _, src := range []string{"@", "~", "`", "?", "^", "%", "#"} {
		if d := lexFail(t, src); d.Code != diagnostics.ELex {
			t.Errorf("%q: code %s, want E_LEX", src, d.Code)
		}
	}
}

func TestErrorSpanIsTokenStart(t *testing.T) {
	tests := []struct {
		src       string
		line, col int
	}{
		{"let x;\n  @", 2, 3},
		{`x = "ab\q";`, 1, 5},
		{"a\n/* open", 2, 1},
	}
	for _, tt := range tests {
		d := lexFail(t, tt.src)
		if d.Span == nil {
			t.Fatalf("%q: diagnostic has no span", tt.src)
		}
		if d.Span.StartLine != tt.line || d.Span.StartCol != tt.col || d.Span.EndCol != tt.col+1 {
			t.Errorf("%q: span %+v, want start (%d,%d)", tt.src, *d.Span, tt.line, tt.col)
		}
	}
}
