package expr

import "github.com/samber/lo"

// Vars is a set of identifiers.
type Vars map[Identifier]struct{}

// Contains reports whether id is in the set.
func (v Vars) Contains(id Identifier) bool {
	_, ok := v[id]
	return ok
}

// Add inserts id into the set.
func (v Vars) Add(id Identifier) {
	v[id] = struct{}{}
}

// Slice returns the members of the set in no particular order.
func (v Vars) Slice() []Identifier {
	return lo.Keys(v)
}

// scope is a persistent list of names bound by enclosing lambdas.
type scope struct {
	name   Identifier
	parent *scope
}

func (s *scope) binds(id Identifier) bool {
	for ; s != nil; s = s.parent {
		if s.name == id {
			return true
		}
	}
	return false
}

// FreeVars returns the Variables occurring in e that no enclosing Lambda
// binds. Symbols are atoms and never appear in the result.
func FreeVars(e Expr) Vars {
	type frame struct {
		e     Expr
		bound *scope
	}

	free := Vars{}
	stack := []frame{{e: e}}
	for len(stack) > 0 {
		n := len(stack) - 1
		f := stack[n]
		stack = stack[:n]

		switch node := f.e.(type) {
		case *Variable:
			if !f.bound.binds(node.Name) {
				free.Add(node.Name)
			}
		case *Apply:
			stack = append(stack, frame{node.Rhs, f.bound}, frame{node.Lhs, f.bound})
		case *Lambda:
			stack = append(stack, frame{node.Body, &scope{name: node.Param, parent: f.bound}})
		}
	}
	return free
}

// IsFree reports whether id occurs free in e.
func IsFree(e Expr, id Identifier) bool {
	return FreeVars(e).Contains(id)
}
