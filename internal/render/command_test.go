package render_test

import (
	"testing"

	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/parser"
	"github.com/malphas-lang/ski/internal/render"
)

func TestRenderCommand(t *testing.T) {
	cases := []struct {
		src   string
		ecma  string
		lazyK string
	}{
		{"s(x, y, z) = x(z, y(z))", "s(x, y, z) = x(z, y(z))", "```sxyz = ``xz`yz"},
		{"TRUE = TRUE", "TRUE = TRUE", "TRUE = TRUE"},
		{"k(x, y)", "k(x, y)", "``kxy"},
		{"!k(x, y)", "!k(x, y)", "!``kxy"},
		{"!3 k(x, y)", "!3 k(x, y)", "!3 ``kxy"},
		{"!-3 k(x, y)", "!-3 k(x, y)", "!-3 ``kxy"},
		{"? NOT", "? NOT", "? NOT"},
		{"?", "?", "?"},
		{"~~~ x => x", "~~~ x => x", "~~~ λx.x"},
	}
	for _, c := range cases {
		cmd, err := parser.ParseCommand(c.src)
		if err != nil {
			t.Fatalf("ParseCommand(%q): %v", c.src, err)
		}
		if got := render.Command(cmd, expr.EcmaScript); got != c.ecma {
			t.Errorf("%q: EcmaScript got %q, want %q", c.src, got, c.ecma)
		}
		lazy := render.Command(cmd, expr.LazyK)
		if lazy != c.lazyK {
			t.Errorf("%q: Lazy_K got %q, want %q", c.src, lazy, c.lazyK)
		}

		back, err := parser.ParseCommand(lazy, parser.WithSyntax(expr.LazyK))
		if err != nil {
			t.Fatalf("ParseCommand(%q) in Lazy_K: %v", lazy, err)
		}
		if again := render.Command(back, expr.EcmaScript); again != c.ecma {
			t.Errorf("%q: Lazy_K round trip gave %q", c.src, again)
		}
	}
}
