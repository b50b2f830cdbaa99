package expr

// Walk visits e and its descendants in pre-order, left before right. If fn
// returns false the children of that node are skipped. Walk keeps its own
// stack, so arbitrarily deep terms do not grow the goroutine stack.
func Walk(e Expr, fn func(Expr) bool) {
	stack := []Expr{e}
	for len(stack) > 0 {
		n := len(stack) - 1
		cur := stack[n]
		stack = stack[:n]

		if !fn(cur) {
			continue
		}

		switch node := cur.(type) {
		case *Apply:
			stack = append(stack, node.Rhs, node.Lhs)
		case *Lambda:
			stack = append(stack, node.Body)
		}
	}
}

// Equal reports whether a and b are structurally identical. Bound names
// must match exactly; Equal does not identify alpha-equivalent terms.
func Equal(a, b Expr) bool {
	type pair struct{ a, b Expr }
	stack := []pair{{a, b}}
	for len(stack) > 0 {
		n := len(stack) - 1
		p := stack[n]
		stack = stack[:n]

		if p.a == p.b {
			continue
		}

		switch x := p.a.(type) {
		case *Variable:
			y, ok := p.b.(*Variable)
			if !ok || x.Name != y.Name {
				return false
			}
		case *Symbol:
			y, ok := p.b.(*Symbol)
			if !ok || x.Name != y.Name {
				return false
			}
		case *Apply:
			y, ok := p.b.(*Apply)
			if !ok {
				return false
			}
			stack = append(stack, pair{x.Rhs, y.Rhs}, pair{x.Lhs, y.Lhs})
		case *Lambda:
			y, ok := p.b.(*Lambda)
			if !ok || x.Param != y.Param {
				return false
			}
			stack = append(stack, pair{x.Body, y.Body})
		default:
			return false
		}
	}
	return true
}
