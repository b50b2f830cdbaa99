package lexer

import (
	"testing"

	"github.com/malphas-lang/ski/internal/diag"
)

type expectedToken struct {
	typ   TokenType
	value string
}

func assertTokens(t *testing.T, input string, mode Mode, want []expectedToken) {
	t.Helper()

	toks, errs := Tokenize(input, mode)
	if len(errs) != 0 {
		t.Fatalf("unexpected lexer errors: %+v", errs)
	}
	if len(toks) != len(want) {
		t.Fatalf("expected %d tokens, got %d: %+v", len(want), len(toks), toks)
	}
	for i, w := range want {
		if toks[i].Type != w.typ {
			t.Fatalf("token %d: expected type %q, got %q", i, w.typ, toks[i].Type)
		}
		if toks[i].Value != w.value {
			t.Fatalf("token %d: expected value %q, got %q", i, w.value, toks[i].Value)
		}
	}
}

func TestEcmaScriptTokens(t *testing.T) {
	assertTokens(t, "s(k, :a)(x => x_1)", ModeEcmaScript, []expectedToken{
		{IDENT, "s"},
		{LPAREN, "("},
		{IDENT, "k"},
		{COMMA, ","},
		{SYMBOL, "a"},
		{RPAREN, ")"},
		{LPAREN, "("},
		{IDENT, "x"},
		{FATARROW, "=>"},
		{IDENT, "x_1"},
		{RPAREN, ")"},
		{EOF, ""},
	})
}

func TestLazyKSplitsLowerCaseLetters(t *testing.T) {
	assertTokens(t, "``skk`FOO BAR", ModeLazyK, []expectedToken{
		{BACKTICK, "`"},
		{BACKTICK, "`"},
		{IDENT, "s"},
		{IDENT, "k"},
		{IDENT, "k"},
		{BACKTICK, "`"},
		{IDENT, "FOO"},
		{IDENT, "BAR"},
		{EOF, ""},
	})
}

func TestLazyKLambdaAndIota(t *testing.T) {
	assertTokens(t, "λx.`ιx ^y.y", ModeLazyK, []expectedToken{
		{LAMBDA, "λ"},
		{IDENT, "x"},
		{DOT, "."},
		{BACKTICK, "`"},
		{IDENT, "ι"},
		{IDENT, "x"},
		{LAMBDA, "^"},
		{IDENT, "y"},
		{DOT, "."},
		{IDENT, "y"},
		{EOF, ""},
	})
}

func TestLazyKSymbolTakesOneIdentifier(t *testing.T) {
	assertTokens(t, ":abc", ModeLazyK, []expectedToken{
		{SYMBOL, "a"},
		{IDENT, "b"},
		{IDENT, "c"},
		{EOF, ""},
	})
}

func TestCommandPrefixTokens(t *testing.T) {
	for _, mode := range []Mode{ModeEcmaScript, ModeLazyK} {
		assertTokens(t, "!-12 ~~? _0 = ", mode, []expectedToken{
			{BANG, "!"},
			{MINUS, "-"},
			{INT, "12"},
			{TILDE, "~"},
			{TILDE, "~"},
			{QUESTION, "?"},
			{IDENT, "_0"},
			{ASSIGN, "="},
			{EOF, ""},
		})
	}
}

func TestSpansAreByteOffsets(t *testing.T) {
	toks, errs := Tokenize("λx.x", ModeLazyK)
	if len(errs) != 0 {
		t.Fatalf("unexpected lexer errors: %+v", errs)
	}

	// λ is two bytes wide.
	if toks[0].Span.Start != 0 || toks[0].Span.End != 2 {
		t.Fatalf("expected λ to span [0,2), got [%d,%d)", toks[0].Span.Start, toks[0].Span.End)
	}
	if toks[1].Span.Start != 2 || toks[1].Span.Column != 2 {
		t.Fatalf("expected x at byte 2 column 2, got byte %d column %d", toks[1].Span.Start, toks[1].Span.Column)
	}
	if toks[4].Type != EOF || toks[4].Span.Start != len("λx.x") {
		t.Fatalf("expected EOF at byte %d, got %+v", len("λx.x"), toks[4])
	}
}

func TestLineAndColumnTracking(t *testing.T) {
	toks, _ := Tokenize("a\n  b", ModeEcmaScript)
	if toks[1].Span.Line != 2 || toks[1].Span.Column != 3 {
		t.Fatalf("expected b at 2:3, got %d:%d", toks[1].Span.Line, toks[1].Span.Column)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	assertTokens(t, "i(x) = x # identity\nk", ModeEcmaScript, []expectedToken{
		{IDENT, "i"},
		{LPAREN, "("},
		{IDENT, "x"},
		{RPAREN, ")"},
		{ASSIGN, "="},
		{IDENT, "x"},
		{IDENT, "k"},
		{EOF, ""},
	})
}

func TestIllegalRune(t *testing.T) {
	l := New("a @")
	l.NextToken()
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL token, got %q", tok.Type)
	}
	if len(l.Errors) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors))
	}
	err := l.Errors[0]
	if err.Kind != ErrIllegalRune {
		t.Fatalf("expected ErrIllegalRune, got %v", err.Kind)
	}
	if err.Message != `illegal character "@" in EcmaScript input` {
		t.Fatalf("unexpected error message %q", err.Message)
	}
	if err.Span.Start != 2 || err.Span.End != 3 {
		t.Fatalf("expected span [2,3), got [%d,%d)", err.Span.Start, err.Span.End)
	}
}

func TestEmptySymbol(t *testing.T) {
	l := New(": x")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL token, got %q", tok.Type)
	}
	if len(l.Errors) != 1 || l.Errors[0].Kind != ErrEmptySymbol {
		t.Fatalf("expected one ErrEmptySymbol, got %+v", l.Errors)
	}
}

func TestLexerErrorToDiagnostic(t *testing.T) {
	err := LexerError{
		Kind:    ErrIllegalRune,
		Message: "illegal character",
		Span:    Span{Line: 1, Column: 3, Start: 2, End: 3},
	}

	d := err.ToDiagnostic()
	if d.Stage != diag.StageLexer {
		t.Fatalf("expected stage %q, got %q", diag.StageLexer, d.Stage)
	}
	if d.Code != diag.CodeLexerIllegalRune {
		t.Fatalf("expected code %q, got %q", diag.CodeLexerIllegalRune, d.Code)
	}
	if d.Severity != diag.SeverityError {
		t.Fatalf("expected severity %q, got %q", diag.SeverityError, d.Severity)
	}
	want := diag.Span{Line: 1, Column: 3, Start: 2, End: 3}
	if d.Span != want {
		t.Fatalf("expected span %+v, got %+v", want, d.Span)
	}
}

func TestSpanFragment(t *testing.T) {
	src := "s(k, k)"
	if got := (Span{Start: 2, End: 3}).Fragment(src); got != "k" {
		t.Fatalf("expected fragment k, got %q", got)
	}
	if got := (Span{Start: 5, End: 50}).Fragment(src); got != "" {
		t.Fatalf("expected empty fragment for out-of-range span, got %q", got)
	}
}
