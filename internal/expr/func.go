package expr

import "fmt"

// Func is a named, curried combinator definition. Body may refer to Params
// as Variables and to any other definition, including Name itself.
type Func struct {
	Name   Identifier
	Params []Identifier
	Body   Expr
}

// NewFunc constructs a definition. It fails when a parameter is repeated.
func NewFunc(name Identifier, params []Identifier, body Expr) (Func, error) {
	seen := Vars{}
	for _, p := range params {
		if seen.Contains(p) {
			return Func{}, fmt.Errorf("duplicate parameter %q in definition of %q", p, name)
		}
		seen.Add(p)
	}
	return Func{Name: name, Params: append([]Identifier(nil), params...), Body: body}, nil
}

// Arity is the number of arguments the definition consumes.
func (f Func) Arity() int { return len(f.Params) }

// Lambda curries the definition into nested Lambdas.
func (f Func) Lambda() Expr {
	return NewLambda(f.Params, f.Body)
}

// Apply instantiates the body with args bound to the parameters. len(args)
// must equal Arity. Binding is simultaneous: an argument mentioning a later
// parameter's name is not substituted again.
func (f Func) Apply(args []Expr) Expr {
	if len(args) != len(f.Params) {
		panic(fmt.Sprintf("expr: %s applied to %d arguments, want %d", f.Name, len(args), len(f.Params)))
	}

	e := f.Lambda()
	for _, arg := range args {
		lam := e.(*Lambda)
		e = Substitute(lam.Body, lam.Param, arg)
	}
	return e
}
