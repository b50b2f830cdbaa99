package engine

import (
	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/reduce"
	"github.com/malphas-lang/ski/internal/unlambda"
)

// Effect is what a command asks of its caller. The variant set is closed.
type Effect interface {
	effectNode()
}

// Define inserts or replaces a definition.
type Define struct {
	Func expr.Func
}

// Apply performs the definition on ctx.
func (d Define) Apply(ctx *expr.Context) { ctx.Def(d.Func) }

// Undefine removes a definition.
type Undefine struct {
	Name expr.Identifier
}

// Apply removes the definition from ctx and reports whether it existed.
func (u Undefine) Apply(ctx *expr.Context) bool { return ctx.Delete(u.Name) }

// Policy selects which steps of a reduction are shown.
type Policy int

const (
	// PolicyAll shows every step up to the step limit.
	PolicyAll Policy = iota
	// PolicyLast shows only the final step.
	PolicyLast
	// PolicyHead shows the first Count steps.
	PolicyHead
	// PolicyTail shows the last Count steps.
	PolicyTail
)

func (p Policy) String() string {
	switch p {
	case PolicyAll:
		return "all"
	case PolicyLast:
		return "last"
	case PolicyHead:
		return "head"
	case PolicyTail:
		return "tail"
	default:
		return "unknown"
	}
}

// Reduction is a reduction ready to be driven. Nothing has been stepped
// yet.
type Reduction struct {
	Reducer *reduce.Reducer
	Policy  Policy
	Count   int
}

// Run drives the reducer according to the policy. maxSteps bounds every
// policy except Head, whose Count is its own bound.
func (r Reduction) Run(maxSteps int) []reduce.Step {
	switch r.Policy {
	case PolicyLast:
		if step, ok := reduce.Last(r.Reducer, maxSteps); ok {
			return []reduce.Step{step}
		}
		return nil
	case PolicyHead:
		return reduce.Head(r.Reducer, r.Count)
	case PolicyTail:
		return reduce.Tail(r.Reducer, r.Count, maxSteps)
	default:
		return reduce.All(r.Reducer, maxSteps)
	}
}

// QueryResult is the outcome of looking a name up. Func is meaningful only
// when Found is set.
type QueryResult struct {
	Name  expr.Identifier
	Func  expr.Func
	Found bool
}

// Listing is every definition, in listing order.
type Listing struct {
	Funcs []expr.Func
}

// Elimination is the result of removing lambdas at Level.
type Elimination struct {
	Level unlambda.Level
	Input expr.Expr
	Expr  expr.Expr
}

func (Define) effectNode()      {}
func (Undefine) effectNode()    {}
func (Reduction) effectNode()   {}
func (QueryResult) effectNode() {}
func (Listing) effectNode()     {}
func (Elimination) effectNode() {}
