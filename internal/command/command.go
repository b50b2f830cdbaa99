// Package command defines the parsed form of a workbench input line.
package command

import (
	"fmt"

	"github.com/malphas-lang/ski/internal/expr"
)

// Command is one parsed input line. The variant set is closed.
type Command interface {
	commandNode()
}

// Delete removes a definition. Written `id = id`.
type Delete struct {
	Name expr.Identifier
}

// Update inserts or replaces a definition. Written `id(params) = body`.
type Update struct {
	Func expr.Func
}

// Reduce shows every step of a reduction. Written as a bare expression.
type Reduce struct {
	Expr expr.Expr
}

// ReduceLast shows only the final step. Written `!expr`.
type ReduceLast struct {
	Expr expr.Expr
}

// ReduceHead shows the first Count steps. Written `!N expr`.
type ReduceHead struct {
	Count int
	Expr  expr.Expr
}

// ReduceTail shows the last Count steps. Written `!-N expr`.
type ReduceTail struct {
	Count int
	Expr  expr.Expr
}

// Query looks up one definition. Written `? id`.
type Query struct {
	Name expr.Identifier
}

// Context lists every definition. Written `?`.
type Context struct{}

// Unlambda eliminates lambdas at Level 1–4. Written with 1–4 leading `~`.
type Unlambda struct {
	Level int
	Expr  expr.Expr
}

func (Delete) commandNode()     {}
func (Update) commandNode()     {}
func (Reduce) commandNode()     {}
func (ReduceLast) commandNode() {}
func (ReduceHead) commandNode() {}
func (ReduceTail) commandNode() {}
func (Query) commandNode()      {}
func (Context) commandNode()    {}
func (Unlambda) commandNode()   {}

// Name returns a short label for cmd, used in logs and RPC replies.
func Name(cmd Command) string {
	switch c := cmd.(type) {
	case Delete:
		return "delete"
	case Update:
		return "update"
	case Reduce:
		return "reduce"
	case ReduceLast:
		return "reduce-last"
	case ReduceHead:
		return "reduce-head"
	case ReduceTail:
		return "reduce-tail"
	case Query:
		return "query"
	case Context:
		return "context"
	case Unlambda:
		return fmt.Sprintf("unlambda-%d", c.Level)
	default:
		return fmt.Sprintf("%T", cmd)
	}
}
