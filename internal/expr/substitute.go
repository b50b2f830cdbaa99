package expr

// Substitute replaces every free occurrence of the Variable param in e by
// arg. Lambdas whose parameter would capture a free variable of arg are
// renamed first, so the result never changes the meaning of arg.
func Substitute(e Expr, param Identifier, arg Expr) Expr {
	s := substitution{param: param, arg: arg, argFree: FreeVars(arg)}
	return s.apply(e)
}

type substitution struct {
	param   Identifier
	arg     Expr
	argFree Vars
}

func (s *substitution) apply(e Expr) Expr {
	switch node := e.(type) {
	case *Variable:
		if node.Name == s.param {
			return s.arg
		}
		return node

	case *Symbol:
		return node

	case *Apply:
		lhs := s.apply(node.Lhs)
		rhs := s.apply(node.Rhs)
		if lhs == node.Lhs && rhs == node.Rhs {
			return node
		}
		return &Apply{Lhs: lhs, Rhs: rhs}

	case *Lambda:
		if node.Param == s.param {
			return node
		}
		bodyFree := FreeVars(node.Body)
		if !bodyFree.Contains(s.param) {
			return node
		}
		if !s.argFree.Contains(node.Param) {
			return &Lambda{Param: node.Param, Body: s.apply(node.Body)}
		}

		fresh := node.Param.Rename(func(id Identifier) bool {
			return id == s.param || s.argFree.Contains(id) || bodyFree.Contains(id)
		})
		body := Substitute(node.Body, node.Param, NewVariable(fresh))
		return &Lambda{Param: fresh, Body: s.apply(body)}
	}
	return e
}
