package expr

// Expr is a term of the calculus. The variant set is closed: *Variable,
// *Symbol, *Apply and *Lambda. Nodes are never mutated after construction,
// so subtrees may be shared between expressions.
type Expr interface {
	exprNode()
}

// Variable is a plain name. Inside a Lambda binding the same name it refers
// to that parameter; otherwise it is free and is resolved against the
// aliases and the context when reduced or expanded.
type Variable struct {
	Name Identifier
}

// Symbol is an opaque atom written `:name`. Symbols are never resolved.
type Symbol struct {
	Name Identifier
}

// Apply applies Lhs to Rhs.
type Apply struct {
	Lhs Expr
	Rhs Expr
}

// Lambda abstracts Param over Body.
type Lambda struct {
	Param Identifier
	Body  Expr
}

func (*Variable) exprNode() {}
func (*Symbol) exprNode()   {}
func (*Apply) exprNode()    {}
func (*Lambda) exprNode()   {}

// NewVariable constructs a variable reference.
func NewVariable(name Identifier) *Variable {
	return &Variable{Name: name}
}

// NewSymbol constructs a symbol atom.
func NewSymbol(name Identifier) *Symbol {
	return &Symbol{Name: name}
}

// NewApply folds args onto callee from the left: NewApply(f, a, b) is ((f a) b).
func NewApply(callee Expr, args ...Expr) Expr {
	e := callee
	for _, arg := range args {
		e = &Apply{Lhs: e, Rhs: arg}
	}
	return e
}

// NewLambda nests one Lambda per parameter around body, outermost first.
func NewLambda(params []Identifier, body Expr) Expr {
	e := body
	for i := len(params) - 1; i >= 0; i-- {
		e = &Lambda{Param: params[i], Body: e}
	}
	return e
}

// V, S, A and L are short constructors used heavily by tests and by the
// eliminator. V and S take plain strings.

func V(name string) Expr { return NewVariable(Identifier(name)) }

func S(name string) Expr { return NewSymbol(Identifier(name)) }

func A(callee Expr, args ...Expr) Expr { return NewApply(callee, args...) }

func L(param string, body Expr) Expr {
	return &Lambda{Param: Identifier(param), Body: body}
}

// Unapply splits e into its spine: the leftmost non-Apply callee and the
// arguments applied to it, in order.
func Unapply(e Expr) (Expr, []Expr) {
	var rev []Expr
	for {
		app, ok := e.(*Apply)
		if !ok {
			break
		}
		rev = append(rev, app.Rhs)
		e = app.Lhs
	}
	args := make([]Expr, len(rev))
	for i, arg := range rev {
		args[len(rev)-1-i] = arg
	}
	return e, args
}

// Unlambda peels nested Lambdas off e, returning their parameters
// outermost first and the remaining body. It stops at a Lambda whose
// parameter repeats one already peeled, so the parameters are distinct.
func Unlambda(e Expr) ([]Identifier, Expr) {
	var params []Identifier
	seen := Vars{}
	for {
		lam, ok := e.(*Lambda)
		if !ok || seen.Contains(lam.Param) {
			return params, e
		}
		seen.Add(lam.Param)
		params = append(params, lam.Param)
		e = lam.Body
	}
}

// Size counts the nodes of e.
func Size(e Expr) int {
	n := 0
	Walk(e, func(Expr) bool {
		n++
		return true
	})
	return n
}
