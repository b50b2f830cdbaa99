package unlambda

import (
	"github.com/malphas-lang/ski/internal/expr"
)

// translator performs bracket abstraction on lambda terms whose free
// variables need no further expansion.
type translator struct {
	basis   basis
	shorten bool
}

// translate removes every lambda from e, innermost first.
func (t *translator) translate(e expr.Expr) expr.Expr {
	switch n := e.(type) {
	case *expr.Apply:
		return &expr.Apply{Lhs: t.translate(n.Lhs), Rhs: t.translate(n.Rhs)}
	case *expr.Lambda:
		param, body := n.Param, n.Body
		if t.basis.reserved.Contains(param) {
			// The basis terms introduced inside body would be taken for
			// occurrences of the parameter.
			free := expr.FreeVars(body)
			param = param.Rename(func(id expr.Identifier) bool {
				return free.Contains(id) || t.basis.reserved.Contains(id)
			})
			body = expr.Substitute(body, n.Param, expr.NewVariable(param))
		}
		return t.abstract(param, t.translate(body))
	}
	return e
}

// abstract returns [x]e for a lambda-free e:
//
//	[x]x        = I
//	[x]e        = K e          x not free in e
//	[x](e x)    = e            x not free in e
//	[x](e1 e2)  = S [x]e1 [x]e2
func (t *translator) abstract(x expr.Identifier, e expr.Expr) expr.Expr {
	if v, ok := e.(*expr.Variable); ok && v.Name == x {
		return t.basis.i
	}
	if !expr.IsFree(e, x) {
		return expr.A(t.basis.k, e)
	}

	app := e.(*expr.Apply)
	if v, ok := app.Rhs.(*expr.Variable); ok && v.Name == x && !expr.IsFree(app.Lhs, x) {
		return app.Lhs
	}
	return t.s(t.abstract(x, app.Lhs), t.abstract(x, app.Rhs))
}

// s builds S p q, shortening S(K p)(K q) to K(p q) and S(K p) I to p when
// enabled.
func (t *translator) s(p, q expr.Expr) expr.Expr {
	if t.shorten {
		if kp, ok := t.unK(p); ok {
			if kq, ok := t.unK(q); ok {
				return expr.A(t.basis.k, expr.A(kp, kq))
			}
			if expr.Equal(q, t.basis.i) {
				return kp
			}
		}
	}
	return expr.A(t.basis.s, p, q)
}

// unK matches K p.
func (t *translator) unK(e expr.Expr) (expr.Expr, bool) {
	app, ok := e.(*expr.Apply)
	if !ok || !expr.Equal(app.Lhs, t.basis.k) {
		return nil, false
	}
	return app.Rhs, true
}
