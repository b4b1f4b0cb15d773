// Package lexer implements the Eva language tokenizer.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/thomasrohde/eva/pkg/ast"
	"github.com/thomasrohde/eva/pkg/diagnostics"
)

// TokenType identifies the type of a lexer token.
type TokenType int

const (
	// Keywords
	TokLet TokenType = iota
	TokDef
	TokLambda
	TokReturn
	TokIf
	TokElse
	TokWhile
	TokDo
	TokFor
	TokSwitch
	TokCase
	TokDefault
	TokClass
	TokExtends
	TokNew
	TokSuper
	TokModule
	TokImport
	TokTrue
	TokFalse
	TokNull

	// Literals
	TokNumberLit
	TokStringLit

	// Identifiers
	TokIdent

	// Punctuation
	TokLBrace    // {
	TokRBrace    // }
	TokLBracket  // [
	TokRBracket  // ]
	TokLParen    // (
	TokRParen    // )
	TokColon     // :
	TokSemicolon // ;
	TokComma     // ,
	TokDot       // .
	TokEquals    // =

	// Comparison operators
	TokGtEq   // >=
	TokLtEq   // <=
	TokEqEq   // ==
	TokBangEq // !=
	TokGt     // >
	TokLt     // <

	// Logical operators
	TokAndAnd // &&
	TokOrOr   // ||
	TokBang   // !

	// Arithmetic operators
	TokPlus  // +
	TokMinus // -
	TokStar  // *
	TokSlash // /

	// Special
	TokEOF
)

// Token represents a single lexer token.
type Token struct {
	Type  TokenType
	Value string
	Span  ast.Span
}

var keywords = map[string]TokenType{
	"let":     TokLet,
	"def":     TokDef,
	"lambda":  TokLambda,
	"return":  TokReturn,
	"if":      TokIf,
	"else":    TokElse,
	"while":   TokWhile,
	"do":      TokDo,
	"for":     TokFor,
	"switch":  TokSwitch,
	"case":    TokCase,
	"default": TokDefault,
	"class":   TokClass,
	"extends": TokExtends,
	"new":     TokNew,
	"super":   TokSuper,
	"module":  TokModule,
	"import":  TokImport,
	"true":    TokTrue,
	"false":   TokFalse,
	"null":    TokNull,
}

// IsKeyword reports whether t is a reserved word.
func IsKeyword(t TokenType) bool {
	return t >= TokLet && t <= TokNull
}

// LexError wraps a diagnostic for lex errors.
type LexError struct {
	Diag diagnostics.Diagnostic
}

func (e *LexError) Error() string {
	return e.Diag.Message
}

// operators is searched in order, so two-character forms come first.
var operators = []struct {
	text string
	typ  TokenType
}{
	{"==", TokEqEq}, {"!=", TokBangEq}, {">=", TokGtEq}, {"<=", TokLtEq},
	{"&&", TokAndAnd}, {"||", TokOrOr},
	{"{", TokLBrace}, {"}", TokRBrace}, {"[", TokLBracket}, {"]", TokRBracket},
	{"(", TokLParen}, {")", TokRParen}, {":", TokColon}, {";", TokSemicolon},
	{",", TokComma}, {".", TokDot}, {"=", TokEquals}, {"!", TokBang},
	{">", TokGt}, {"<", TokLt}, {"+", TokPlus}, {"-", TokMinus},
	{"*", TokStar}, {"/", TokSlash},
}

var escapes = map[byte]byte{
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'0':  0,
}

// position is a byte offset with its line and byte column.
type position struct {
	off, line, col int
}

type lexer struct {
	src  string
	file string
	cur  position
	mark position
	toks []Token
}

// Tokenize breaks source code into a slice of tokens ending with TokEOF.
func Tokenize(source, filename string) ([]Token, error) {
	lx := &lexer{src: source, file: filename, cur: position{line: 1, col: 1}}
	for {
		if err := lx.skipTrivia(); err != nil {
			return nil, err
		}
		lx.mark = lx.cur
		if lx.cur.off >= len(lx.src) {
			lx.emit(TokEOF, "")
			return lx.toks, nil
		}
		if err := lx.scan(); err != nil {
			return nil, err
		}
	}
}

func (lx *lexer) rest() string { return lx.src[lx.cur.off:] }

// skip moves the cursor n bytes forward, tracking lines.
func (lx *lexer) skip(n int) {
	for ; n > 0; n-- {
		if lx.src[lx.cur.off] == '\n' {
			lx.cur.line++
			lx.cur.col = 1
		} else {
			lx.cur.col++
		}
		lx.cur.off++
	}
}

func (lx *lexer) emit(typ TokenType, value string) {
	lx.toks = append(lx.toks, Token{
		Type:  typ,
		Value: value,
		Span: ast.Span{
			File:      lx.file,
			StartLine: lx.mark.line,
			StartCol:  lx.mark.col,
			EndLine:   lx.cur.line,
			EndCol:    lx.cur.col,
		},
	})
}

// fail builds an error located at the start of the current token.
func (lx *lexer) fail(code, format string, args ...any) error {
	p := lx.mark
	span := &ast.Span{File: lx.file, StartLine: p.line, StartCol: p.col, EndLine: p.line, EndCol: p.col + 1}
	return &LexError{Diag: diagnostics.MakeDiag(code, fmt.Sprintf(format, args...), span, "")}
}

func (lx *lexer) skipTrivia() error {
	for {
		rest := lx.rest()
		switch {
		case rest == "":
			return nil
		case strings.IndexByte(" \t\r\n", rest[0]) >= 0:
			lx.skip(1)
		case strings.HasPrefix(rest, "//"):
			end := strings.IndexByte(rest, '\n')
			if end < 0 {
				end = len(rest)
			}
			lx.skip(end)
		case strings.HasPrefix(rest, "/*"):
			lx.mark = lx.cur
			end := strings.Index(rest[2:], "*/")
			if end < 0 {
				return lx.fail(diagnostics.EEOF, "unterminated block comment")
			}
			lx.skip(end + 4)
		default:
			return nil
		}
	}
}

func isLetter(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

// run returns the length of the prefix of s whose bytes satisfy ok.
func run(s string, ok func(byte) bool) int {
	n := 0
	for n < len(s) && ok(s[n]) {
		n++
	}
	return n
}

func (lx *lexer) scan() error {
	rest := lx.rest()
	c := rest[0]
	switch {
	case isDigit(c):
		n := run(rest, isDigit)
		if n < len(rest) && isLetter(rest[n]) {
			return lx.fail(diagnostics.ELex, "invalid number literal '%s'", rest[:n+1])
		}
		lx.skip(n)
		lx.emit(TokNumberLit, rest[:n])
		return nil
	case isLetter(c):
		n := run(rest, func(b byte) bool { return isLetter(b) || isDigit(b) })
		word := rest[:n]
		lx.skip(n)
		if kw, ok := keywords[word]; ok {
			lx.emit(kw, word)
		} else {
			lx.emit(TokIdent, word)
		}
		return nil
	case c == '"' || c == '\'':
		return lx.scanString(c)
	}
	for _, op := range operators {
		if strings.HasPrefix(rest, op.text) {
			lx.skip(len(op.text))
			lx.emit(op.typ, op.text)
			return nil
		}
	}
	switch c {
	case '&':
		return lx.fail(diagnostics.ELex, "unexpected character '&' (did you mean '&&'?)")
	case '|':
		return lx.fail(diagnostics.ELex, "unexpected character '|' (did you mean '||'?)")
	}
	r, _ := utf8.DecodeRuneInString(rest)
	return lx.fail(diagnostics.ELex, "unexpected character '%c'", r)
}

func (lx *lexer) scanString(quote byte) error {
	lx.skip(1)
	var sb strings.Builder
	for {
		rest := lx.rest()
		if rest == "" {
			return lx.fail(diagnostics.EEOF, "unterminated string literal")
		}
		switch c := rest[0]; c {
		case quote:
			lx.skip(1)
			lx.emit(TokStringLit, sb.String())
			return nil
		case '\n':
			return lx.fail(diagnostics.ELex, "unterminated string literal")
		case '\\':
			if len(rest) < 2 {
				return lx.fail(diagnostics.EEOF, "unterminated string escape")
			}
			out, ok := escapes[rest[1]]
			if !ok {
				return lx.fail(diagnostics.ELex, "invalid escape character: \\%c", rest[1])
			}
			sb.WriteByte(out)
			lx.skip(2)
		default:
			r, size := utf8.DecodeRuneInString(rest)
			if r == utf8.RuneError && size == 1 {
				return lx.fail(diagnostics.ELex, "invalid UTF-8 character in string")
			}
			sb.WriteString(rest[:size])
			lx.skip(size)
		}
	}
}
