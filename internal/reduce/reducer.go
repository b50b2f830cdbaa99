// Package reduce steps expressions towards normal form one leftmost
// outermost reduction at a time.
package reduce

import (
	"golang.org/x/exp/slices"

	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/render"
)

// Step is the outcome of one reduction.
type Step struct {
	Step   int
	Expr   expr.Expr
	Formed render.FormedReducedExpr
}

// Option configures a Reducer.
type Option func(*Reducer)

// WithStyle selects the syntax steps are rendered in. The default is
// EcmaScript.
func WithStyle(style expr.DisplayStyle) Option {
	return func(r *Reducer) {
		r.style = style
	}
}

// Reducer is a resumable reduction of one expression. It owns snapshots of
// the context and aliases it was built with; later changes to the caller's
// copies are not seen. Callers drive it with Next and may stop at any
// point.
type Reducer struct {
	ctx     *expr.Context
	aliases *expr.Aliases
	style   expr.DisplayStyle

	expr expr.Expr
	step int
	next *render.Path
}

// New starts a reduction of e.
func New(ctx *expr.Context, aliases *expr.Aliases, e expr.Expr, opts ...Option) *Reducer {
	r := &Reducer{
		ctx:     ctx.Clone(),
		aliases: aliases.Clone(),
		style:   expr.EcmaScript,
		expr:    e,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.next = r.findRedex(e)
	return r
}

// DisplayStyle returns the syntax steps are rendered in.
func (r *Reducer) DisplayStyle() expr.DisplayStyle { return r.style }

// SetDisplayStyle changes the syntax for subsequent renderings.
func (r *Reducer) SetDisplayStyle(style expr.DisplayStyle) { r.style = style }

// Expr returns the current term.
func (r *Reducer) Expr() expr.Expr { return r.expr }

// HasNext reports whether another reduction is possible.
func (r *Reducer) HasNext() bool { return r.next != nil }

// Formed renders the current term with the range of its next redex.
func (r *Reducer) Formed() render.FormedExpr {
	return render.Form(r.expr, r.style, r.next)
}

// Next performs one reduction. It returns false once the term is in normal
// form.
func (r *Reducer) Next() (Step, bool) {
	if r.next == nil {
		return Step{}, false
	}

	e, reduced := r.reduceAt(*r.next)
	r.expr = e
	r.step++
	r.next = r.findRedex(e)

	return Step{
		Step:   r.step,
		Expr:   e,
		Formed: render.FormReduced(e, r.style, reduced, r.next),
	}, true
}

// arity is the number of arguments callee consumes, or false for a callee
// that never reduces: a Symbol or an unknown Variable.
func (r *Reducer) arity(callee expr.Expr) (int, bool) {
	switch c := callee.(type) {
	case *expr.Lambda:
		return 1, true
	case *expr.Variable:
		if _, ok := r.aliases.Get(c.Name); ok {
			return 0, true
		}
		if f, ok := r.ctx.Get(c.Name); ok {
			return f.Arity(), true
		}
	}
	return 0, false
}

// callable reports whether the spine is a redex. A definition taking no
// arguments is only expanded once something is applied to it; an alias is
// expanded even on its own.
func (r *Reducer) callable(callee expr.Expr, args []expr.Expr) bool {
	arity, ok := r.arity(callee)
	if !ok || arity > len(args) {
		return false
	}
	if len(args) > 0 {
		return true
	}
	v, isVar := callee.(*expr.Variable)
	if !isVar {
		return false
	}
	_, isAlias := r.aliases.Get(v.Name)
	return isAlias
}

type frame struct {
	e     expr.Expr
	route []int
}

// findRedex returns the path of the leftmost outermost redex: the first
// callable spine in a preorder walk that visits a spine before its
// arguments and never enters lambda bodies.
func (r *Reducer) findRedex(e expr.Expr) *render.Path {
	stack := []frame{{e: e, route: []int{}}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		callee, args := expr.Unapply(f.e)
		if r.callable(callee, args) {
			arity, _ := r.arity(callee)
			return &render.Path{Route: f.route, Arity: arity}
		}
		for i := len(args) - 1; i >= 0; i-- {
			if _, ok := args[i].(*expr.Apply); !ok && !r.isLoneAlias(args[i]) {
				continue
			}
			stack = append(stack, frame{e: args[i], route: append(slices.Clip(f.route), i+1)})
		}
	}
	return nil
}

func (r *Reducer) isLoneAlias(e expr.Expr) bool {
	v, ok := e.(*expr.Variable)
	if !ok {
		return false
	}
	_, isAlias := r.aliases.Get(v.Name)
	return isAlias
}

// reduceAt rewrites the redex at p and returns the new term together with
// the path of the substituted result.
func (r *Reducer) reduceAt(p render.Path) (expr.Expr, render.Path) {
	type level struct {
		callee expr.Expr
		args   []expr.Expr
	}

	levels := make([]level, 0, len(p.Route)+1)
	cur := r.expr
	for _, idx := range p.Route {
		callee, args := expr.Unapply(cur)
		levels = append(levels, level{callee: callee, args: args})
		cur = args[idx-1]
	}

	callee, args := expr.Unapply(cur)
	result := r.apply(callee, args[:p.Arity])
	_, resultArgs := expr.Unapply(result)
	replaced := expr.NewApply(result, args[p.Arity:]...)

	for i := len(levels) - 1; i >= 0; i-- {
		lv := levels[i]
		lv.args[p.Route[i]-1] = replaced
		replaced = expr.NewApply(lv.callee, lv.args...)
	}

	return replaced, p.WithArity(len(resultArgs))
}

// apply instantiates callee with exactly its arity's worth of args.
func (r *Reducer) apply(callee expr.Expr, args []expr.Expr) expr.Expr {
	switch c := callee.(type) {
	case *expr.Lambda:
		return expr.Substitute(c.Body, c.Param, args[0])
	case *expr.Variable:
		if alias, ok := r.aliases.Get(c.Name); ok {
			return alias
		}
		f, _ := r.ctx.Get(c.Name)
		return f.Apply(args)
	}
	panic("reduce: apply on a callee without arity")
}
