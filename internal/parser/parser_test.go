package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/malphas-lang/ski/internal/diag"
	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/parser"
)

var (
	v = expr.V
	s = expr.S
	a = expr.A
	l = expr.L
)

func parseExpr(t *testing.T, src string, opts ...parser.Option) expr.Expr {
	t.Helper()

	e, err := parser.ParseExpr(src, opts...)
	if err != nil {
		t.Fatalf("ParseExpr(%q): unexpected error: %v", src, err)
	}
	return e
}

func assertExpr(t *testing.T, src string, want expr.Expr, opts ...parser.Option) {
	t.Helper()

	got := parseExpr(t, src, opts...)
	if !expr.Equal(got, want) {
		t.Fatalf("ParseExpr(%q): got %#v, want %#v", src, got, want)
	}
}

func parseError(t *testing.T, src string, opts ...parser.Option) *parser.ParseError {
	t.Helper()

	e, err := parser.ParseExpr(src, opts...)
	if err == nil {
		t.Fatalf("ParseExpr(%q): expected error, got %#v", src, e)
	}
	if e != nil {
		t.Fatalf("ParseExpr(%q): expected no partial tree alongside error", src)
	}
	var perr *parser.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *parser.ParseError, got %T", err)
	}
	return perr
}

func TestParseEcmaScriptCurriedApplication(t *testing.T) {
	assertExpr(t, "f(a, b)(c)", a(v("f"), v("a"), v("b"), v("c")))
	assertExpr(t, "f(g(x), :y)", a(v("f"), a(v("g"), v("x")), s("y")))
}

func TestParseEcmaScriptLambdas(t *testing.T) {
	assertExpr(t, "x => x", l("x", v("x")))
	assertExpr(t, "(x, y) => x", l("x", l("y", v("x"))))
	assertExpr(t, "x => y => f(y, x)", l("x", l("y", a(v("f"), v("y"), v("x")))))
	assertExpr(t, "(x) => x", l("x", v("x")))
}

func TestParseEcmaScriptLambdaBodyExtendsRight(t *testing.T) {
	// The body swallows the call: this is x => (x(y)), not (x => x)(y).
	assertExpr(t, "x => x(y)", l("x", a(v("x"), v("y"))))
	// Parentheses make the lambda a callee.
	assertExpr(t, "(x => x)(y)", a(l("x", v("x")), v("y")))
	// A comma ends a lambda argument.
	assertExpr(t, "f(x => x, y)", a(v("f"), l("x", v("x")), v("y")))
}

func TestParseEcmaScriptGrouping(t *testing.T) {
	assertExpr(t, "((f))(x)", a(v("f"), v("x")))
	assertExpr(t, "(f(x))(y)", a(v("f"), v("x"), v("y")))
}

func TestParseLazyK(t *testing.T) {
	assertExpr(t, "`ab", a(v("a"), v("b")))
	assertExpr(t, " ` ` a b c", a(v("a"), v("b"), v("c")))
	assertExpr(t, "`FOO BAR", a(v("FOO"), v("BAR")))
	assertExpr(t, "^a.b", l("a", v("b")))
	assertExpr(t, " λ a . b", l("a", v("b")))
	assertExpr(t, "`:x:y", a(s("x"), s("y")))
	assertExpr(t, "``s`kx`ιy", a(v("s"), a(v("k"), v("x")), a(v("ι"), v("y"))))
}

func TestParseLazyKFixture(t *testing.T) {
	want := a(v("s"), v("k"), v("k"), v("i"), v("k"), v("x"), v("y"))
	assertExpr(t, "``````skkikxy", want)
	assertExpr(t, "s(k, k, i)(k, x, y)", want)
}

func TestParseLazyKDeepSpineDoesNotRecurse(t *testing.T) {
	const n = 100000
	src := strings.Repeat("`", n) + "f" + strings.Repeat("x", n)
	e := parseExpr(t, src, parser.WithSyntax(expr.LazyK))

	callee, args := expr.Unapply(e)
	if !expr.Equal(callee, v("f")) || len(args) != n {
		t.Fatalf("expected f applied to %d args, got %d", n, len(args))
	}
}

func TestParseDetectionPrefersEcmaScript(t *testing.T) {
	// A lower-case run is one EcmaScript identifier.
	assertExpr(t, "skk", v("skk"))
	// Pinning Lazy_K splits it.
	assertExpr(t, "``skk", a(v("s"), v("k"), v("k")))
	err := parseError(t, "skk", parser.WithSyntax(expr.LazyK))
	if err.Code != diag.CodeParseTrailingInput || err.Span.Start != 1 {
		t.Fatalf("expected trailing input at byte 1, got %s at %d", err.Code, err.Span.Start)
	}
}

func TestParseErrorCarriesFragment(t *testing.T) {
	err := parseError(t, "f(x, )", parser.WithSyntax(expr.EcmaScript))
	if err.Message != "expected expression, found `)`" {
		t.Fatalf("unexpected message %q", err.Message)
	}
	if err.Fragment != ")" {
		t.Fatalf("expected fragment %q, got %q", ")", err.Fragment)
	}
	if err.Span.Start != 5 || err.Span.End != 6 {
		t.Fatalf("expected span [5,6), got [%d,%d)", err.Span.Start, err.Span.End)
	}
	if err.Code != diag.CodeParseUnexpectedToken {
		t.Fatalf("expected code %q, got %q", diag.CodeParseUnexpectedToken, err.Code)
	}
}

func TestParseErrorAtEndOfInput(t *testing.T) {
	err := parseError(t, "f(x", parser.WithSyntax(expr.EcmaScript))
	if err.Message != "expected ')', found end of input" {
		t.Fatalf("unexpected message %q", err.Message)
	}
	if err.Code != diag.CodeParseUnexpectedEOF {
		t.Fatalf("expected code %q, got %q", diag.CodeParseUnexpectedEOF, err.Code)
	}
}

func TestParseErrorTrailingInput(t *testing.T) {
	err := parseError(t, "`ab c", parser.WithSyntax(expr.LazyK))
	if err.Code != diag.CodeParseTrailingInput {
		t.Fatalf("expected code %q, got %q", diag.CodeParseTrailingInput, err.Code)
	}
	if err.Fragment != "c" {
		t.Fatalf("expected fragment c, got %q", err.Fragment)
	}
}

func TestParseErrorPicksFurthestAttempt(t *testing.T) {
	// EcmaScript fails at byte 0; Lazy_K reads to the missing operand.
	err := parseError(t, "``sk")
	if err.Span.Start != 4 {
		t.Fatalf("expected the Lazy_K error at byte 4, got %d (%s)", err.Span.Start, err.Message)
	}
}

func TestParseErrorRejectsEmptyCall(t *testing.T) {
	err := parseError(t, "f()", parser.WithSyntax(expr.EcmaScript))
	if err.Message != "expected argument, found `)`" {
		t.Fatalf("unexpected message %q", err.Message)
	}
}

func TestParseErrorRejectsCommaGroup(t *testing.T) {
	err := parseError(t, "(a, b)", parser.WithSyntax(expr.EcmaScript))
	if !strings.Contains(err.Message, "unexpected `,`") {
		t.Fatalf("unexpected message %q", err.Message)
	}
	if err.Help == "" {
		t.Fatalf("expected help text")
	}
}

func TestParseErrorDuplicateLambdaParam(t *testing.T) {
	err := parseError(t, "(x, x) => x", parser.WithSyntax(expr.EcmaScript))
	if err.Code != diag.CodeParseDuplicateParam {
		t.Fatalf("expected code %q, got %q", diag.CodeParseDuplicateParam, err.Code)
	}
}

func TestParseErrorNestingLimit(t *testing.T) {
	src := strings.Repeat("(", 50) + "x" + strings.Repeat(")", 50)
	err := parseError(t, src, parser.WithSyntax(expr.EcmaScript), parser.WithMaxNesting(10))
	if err.Code != diag.CodeParseTooDeep {
		t.Fatalf("expected code %q, got %q", diag.CodeParseTooDeep, err.Code)
	}

	assertExpr(t, src, v("x"), parser.WithSyntax(expr.EcmaScript))
}

func TestParseLazyKNestingLimit(t *testing.T) {
	opts := []parser.Option{parser.WithSyntax(expr.LazyK), parser.WithMaxNesting(10)}
	for _, src := range []string{
		strings.Repeat("`x", 20) + "x",
		strings.Repeat("λx.", 20) + "x",
	} {
		err := parseError(t, src, opts...)
		if err.Code != diag.CodeParseTooDeep {
			t.Fatalf("%q: expected code %q, got %q", src, diag.CodeParseTooDeep, err.Code)
		}
	}

	// Nine arguments deep is within the limit, and the callee spine is
	// never counted.
	parseExpr(t, strings.Repeat("`x", 9)+"x", opts...)
	parseExpr(t, strings.Repeat("`", 50)+"f"+strings.Repeat("x", 50), opts...)
}

func TestParseErrorFilename(t *testing.T) {
	err := parseError(t, "f(", parser.WithFilename("defs.ski"), parser.WithSyntax(expr.EcmaScript))
	if err.Span.Filename != "defs.ski" {
		t.Fatalf("expected filename defs.ski, got %q", err.Span.Filename)
	}
	d := err.ToDiagnostic()
	if d.Stage != diag.StageParser || d.Span.Filename != "defs.ski" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}

func TestParseIllegalCharacter(t *testing.T) {
	err := parseError(t, "f(@)", parser.WithSyntax(expr.EcmaScript))
	if err.Code != diag.CodeLexerIllegalRune {
		t.Fatalf("expected code %q, got %q", diag.CodeLexerIllegalRune, err.Code)
	}
	if err.Fragment != "@" {
		t.Fatalf("expected fragment @, got %q", err.Fragment)
	}
}
