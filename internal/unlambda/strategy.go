package unlambda

import (
	"fmt"
	"strings"

	"github.com/malphas-lang/ski/internal/expr"
)

// Strategy is the combinator basis an elimination produces.
type Strategy int

const (
	// SKI uses s, k and i.
	SKI Strategy = iota
	// SK uses s and k, writing i as s(k, k).
	SK
	// IotaBasis writes everything with ι.
	IotaBasis
)

func (s Strategy) String() string {
	switch s {
	case SKI:
		return "ski"
	case SK:
		return "sk"
	case IotaBasis:
		return "iota"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy maps a configuration value to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(name) {
	case "ski", "":
		return SKI, nil
	case "sk":
		return SK, nil
	case "iota", "ι":
		return IotaBasis, nil
	}
	return SKI, fmt.Errorf("unknown strategy %q (want ski, sk or iota)", name)
}

// basis holds the terms a strategy writes S, K and I as, and the names
// that must stay unexpanded because those terms refer to them.
type basis struct {
	s, k, i  expr.Expr
	reserved expr.Vars
}

func (s Strategy) basis() basis {
	switch s {
	case SK:
		sv, kv := expr.V("s"), expr.V("k")
		return basis{s: sv, k: kv, i: expr.A(sv, kv, kv), reserved: vars("s", "k")}
	case IotaBasis:
		iota := expr.NewVariable(expr.Iota)
		i := expr.A(iota, iota)
		k := expr.A(iota, expr.A(iota, i))
		return basis{s: expr.A(iota, k), k: k, i: i, reserved: vars(expr.Iota)}
	default:
		return basis{s: expr.V("s"), k: expr.V("k"), i: expr.V("i"), reserved: vars("s", "k", "i")}
	}
}

func vars[T ~string](names ...T) expr.Vars {
	v := expr.Vars{}
	for _, name := range names {
		v.Add(expr.Identifier(name))
	}
	return v
}
