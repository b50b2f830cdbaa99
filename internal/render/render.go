package render

import (
	"strings"

	"github.com/malphas-lang/ski/internal/expr"
)

// Expr renders e in the given syntax.
func Expr(e expr.Expr, style expr.DisplayStyle) string {
	return NewLayout(e, style).Text
}

// Func renders a definition as `signature = body`:
//
//	s(x, y, z) = x(z, y(z))     EcmaScript
//	```sxyz = ``xz`yz           Lazy_K
//	TRUE = (x, y) => x          arity 0, either syntax
func Func(f expr.Func, style expr.DisplayStyle) string {
	var b strings.Builder
	b.WriteString(signature(f, style))
	b.WriteString(" = ")
	b.WriteString(Expr(f.Body, style))
	return b.String()
}

func signature(f expr.Func, style expr.DisplayStyle) string {
	params := make([]expr.Expr, len(f.Params))
	for i, param := range f.Params {
		params[i] = expr.NewVariable(param)
	}
	return Expr(expr.NewApply(expr.NewVariable(f.Name), params...), style)
}

// Form renders the initial term of a reduction. reducible may be nil when
// the term is already in normal form.
func Form(e expr.Expr, style expr.DisplayStyle, reducible *Path) FormedExpr {
	var marks []Path
	if reducible != nil {
		marks = append(marks, *reducible)
	}

	l := NewLayout(e, style, marks...)
	formed := FormedExpr{Text: l.Text}
	if reducible != nil {
		formed.ReducibleRange, _ = l.Reducible(*reducible)
	}
	return formed
}

// FormReduced renders the term produced by one reduction step. reduced
// addresses the substituted subtree; reducible, if any, the next redex.
func FormReduced(e expr.Expr, style expr.DisplayStyle, reduced Path, reducible *Path) FormedReducedExpr {
	marks := []Path{reduced}
	if reducible != nil {
		marks = append(marks, *reducible)
	}

	l := NewLayout(e, style, marks...)
	formed := FormedReducedExpr{Text: l.Text}
	formed.ReducedRange, _ = l.Range(reduced)
	if reducible != nil {
		formed.ReducibleRange, _ = l.Reducible(*reducible)
	}
	return formed
}
