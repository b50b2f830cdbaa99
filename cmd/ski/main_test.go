package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/malphas-lang/ski/internal/engine"
	"github.com/malphas-lang/ski/internal/expr"
)

func TestFormatScript(t *testing.T) {
	src := "# booleans\nTRUE(x, y) = x\n\n!-2 s(k, k, x)\n"
	got, err := formatScript(src, "bool.ski", expr.LazyK)
	if err != nil {
		t.Fatalf("formatScript: %v", err)
	}
	want := "# booleans\n``TRUExy = x\n\n!-2 ```skkx\n"
	if got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}

	back, err := formatScript(got, "bool.ski", expr.EcmaScript)
	if err != nil {
		t.Fatalf("formatScript: %v", err)
	}
	if back != src {
		t.Fatalf("round trip gave\n%s", back)
	}
}

func TestFormatScriptReportsLine(t *testing.T) {
	_, err := formatScript("i(x) = x\nf(x, )\n", "bad.ski", expr.EcmaScript)
	if err == nil || !strings.Contains(err.Error(), "2:") {
		t.Fatalf("expected an error on line 2, got %v", err)
	}
}

func TestPrinterPlain(t *testing.T) {
	s := engine.NewSession(nil, engine.DefaultOptions())
	out, err := s.Run("s(k, k, x)")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var buf bytes.Buffer
	printer{w: &buf}.output(out)
	if got := buf.String(); got != out.String() {
		t.Fatalf("plain output %q differs from %q", got, out.String())
	}
}

func TestPrinterColorKeepsText(t *testing.T) {
	s := engine.NewSession(nil, engine.DefaultOptions())
	out, err := s.Run("s(k, k, x)")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	colored := printer{color: true}.line(out.Lines[0])
	if colored == out.Lines[0].Text || !strings.Contains(colored, "s(k, k, x)") {
		t.Fatalf("expected the redex to be coloured, got %q", colored)
	}
	plain := engine.Line{Kind: engine.LineExpr, Text: "x"}
	if got := (printer{color: true}).line(plain); got != "x" {
		t.Fatalf("a line without ranges must not be coloured, got %q", got)
	}
}
