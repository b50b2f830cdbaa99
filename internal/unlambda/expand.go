package unlambda

import (
	"github.com/malphas-lang/ski/internal/expr"
)

// expander inlines definitions. Each definition is expanded once and the
// result shared by every reference to it.
type expander struct {
	ctx      *expr.Context
	limit    int
	reserved expr.Vars
	done     map[expr.Identifier]expr.Expr
}

func newExpander(ctx *expr.Context, limit int, reserved expr.Vars) *expander {
	return &expander{
		ctx:      ctx,
		limit:    limit,
		reserved: reserved,
		done:     make(map[expr.Identifier]expr.Expr),
	}
}

func (x *expander) run(e expr.Expr) (expr.Expr, error) {
	return x.expand(e, map[expr.Identifier]int{}, 0)
}

// expand rewrites e under the lambda parameters counted in bound. depth is
// the number of definitions being inlined around e; it is checked on every
// inlining step.
func (x *expander) expand(e expr.Expr, bound map[expr.Identifier]int, depth int) (expr.Expr, error) {
	switch n := e.(type) {
	case *expr.Variable:
		if bound[n.Name] > 0 || x.reserved.Contains(n.Name) {
			return n, nil
		}
		f, ok := x.ctx.Get(n.Name)
		if !ok {
			return n, nil
		}
		if done, ok := x.done[n.Name]; ok {
			return done, nil
		}
		if depth >= x.limit {
			return nil, &RecursionLimitError{Name: n.Name, Limit: x.limit}
		}
		// A definition's body sees only its own parameters.
		out, err := x.expand(f.Lambda(), map[expr.Identifier]int{}, depth+1)
		if err != nil {
			return nil, err
		}
		x.done[n.Name] = out
		return out, nil

	case *expr.Apply:
		lhs, err := x.expand(n.Lhs, bound, depth)
		if err != nil {
			return nil, err
		}
		rhs, err := x.expand(n.Rhs, bound, depth)
		if err != nil {
			return nil, err
		}
		if lhs == n.Lhs && rhs == n.Rhs {
			return n, nil
		}
		return &expr.Apply{Lhs: lhs, Rhs: rhs}, nil

	case *expr.Lambda:
		bound[n.Param]++
		body, err := x.expand(n.Body, bound, depth)
		bound[n.Param]--
		if err != nil {
			return nil, err
		}
		if body == n.Body {
			return n, nil
		}
		return &expr.Lambda{Param: n.Param, Body: body}, nil
	}
	return e, nil
}
