package expr_test

import (
	"testing"

	"github.com/malphas-lang/ski/internal/expr"
)

func mustFunc(t *testing.T, name string, params []expr.Identifier, body expr.Expr) expr.Func {
	t.Helper()

	f, err := expr.NewFunc(expr.Identifier(name), params, body)
	if err != nil {
		t.Fatalf("NewFunc(%s): %v", name, err)
	}
	return f
}

func TestContextDefGetDelete(t *testing.T) {
	ctx := expr.NewContext()
	i := mustFunc(t, "i", []expr.Identifier{"x"}, expr.V("x"))

	ctx.Def(i)
	got, ok := ctx.Get("i")
	if !ok {
		t.Fatalf("expected i to be defined")
	}
	if got.Arity() != 1 {
		t.Fatalf("expected arity 1, got %d", got.Arity())
	}

	if !ctx.Delete("i") {
		t.Fatalf("expected Delete to report an existing entry")
	}
	if _, ok := ctx.Get("i"); ok {
		t.Fatalf("expected i to be gone after Delete")
	}
	if ctx.Delete("i") {
		t.Fatalf("expected second Delete to report nothing removed")
	}
}

func TestContextCloneIsIndependent(t *testing.T) {
	ctx := expr.NewContext(mustFunc(t, "i", []expr.Identifier{"x"}, expr.V("x")))
	snap := ctx.Clone()

	ctx.Delete("i")
	ctx.Def(mustFunc(t, "k", []expr.Identifier{"x", "y"}, expr.V("x")))

	if !snap.Has("i") {
		t.Fatalf("snapshot lost i after the original was mutated")
	}
	if snap.Has("k") {
		t.Fatalf("snapshot observed a later definition")
	}
}

func TestContextListingOrder(t *testing.T) {
	ctx := expr.NewContext()
	for _, name := range []string{"TRUE", "x10", "s", "k", "x2", "AND", "i", "x", "and2"} {
		ctx.Def(mustFunc(t, name, nil, expr.S("v")))
	}

	want := []expr.Identifier{"i", "k", "s", "x", "AND", "and2", "TRUE", "x2", "x10"}
	got := ctx.Names()
	if len(got) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %s, got %s (full: %v)", i, want[i], got[i], got)
		}
	}
}

func TestContextClear(t *testing.T) {
	ctx := expr.NewContext(mustFunc(t, "i", []expr.Identifier{"x"}, expr.V("x")))
	ctx.Clear()
	if ctx.Len() != 0 {
		t.Fatalf("expected empty context, got %d entries", ctx.Len())
	}
}

func TestAliasesShiftAndDiscard(t *testing.T) {
	a := expr.NewAliases()
	for i := 0; i < expr.AliasCapacity+2; i++ {
		a.Push(expr.S(string(rune('a' + i))))
	}

	if a.Len() != expr.AliasCapacity {
		t.Fatalf("expected %d entries, got %d", expr.AliasCapacity, a.Len())
	}

	latest, ok := a.Get("_")
	if !ok || !expr.Equal(latest, expr.S("m")) {
		t.Fatalf("expected _ to be the latest push, got %#v", latest)
	}
	prev, ok := a.Get("_0")
	if !ok || !expr.Equal(prev, expr.S("l")) {
		t.Fatalf("expected _0 to be the previous push, got %#v", prev)
	}
	oldest, ok := a.Get("_9")
	if !ok || !expr.Equal(oldest, expr.S("c")) {
		t.Fatalf("expected _9 to be the oldest kept push, got %#v", oldest)
	}
	if _, ok := a.Get("_x"); ok {
		t.Fatalf("_x is not an alias")
	}
}

func TestAliasesCloneIsIndependent(t *testing.T) {
	a := expr.NewAliases()
	a.Push(expr.S("a"))
	snap := a.Clone()
	a.Push(expr.S("b"))

	got, _ := snap.Get("_")
	if !expr.Equal(got, expr.S("a")) {
		t.Fatalf("snapshot observed a later push")
	}
	if _, ok := snap.Get("_0"); ok {
		t.Fatalf("snapshot grew after the original was pushed")
	}
}

func TestAliasNames(t *testing.T) {
	if expr.AliasName(0) != "_" || expr.AliasName(1) != "_0" || expr.AliasName(10) != "_9" {
		t.Fatalf("unexpected alias naming")
	}
	if i, ok := expr.AliasIndex("_9"); !ok || i != 10 {
		t.Fatalf("expected _9 to map to slot 10, got %d %v", i, ok)
	}
}
