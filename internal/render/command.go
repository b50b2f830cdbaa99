package render

import (
	"fmt"
	"strings"

	"github.com/malphas-lang/ski/internal/command"
	"github.com/malphas-lang/ski/internal/expr"
)

// Command renders cmd as an input line that parses back to the same
// command in the given syntax.
func Command(cmd command.Command, style expr.DisplayStyle) string {
	switch c := cmd.(type) {
	case command.Update:
		return Func(c.Func, style)
	case command.Delete:
		return fmt.Sprintf("%s = %s", c.Name, c.Name)
	case command.Reduce:
		return Expr(c.Expr, style)
	case command.ReduceLast:
		return "!" + Expr(c.Expr, style)
	case command.ReduceHead:
		return fmt.Sprintf("!%d %s", c.Count, Expr(c.Expr, style))
	case command.ReduceTail:
		return fmt.Sprintf("!-%d %s", c.Count, Expr(c.Expr, style))
	case command.Query:
		return "? " + string(c.Name)
	case command.Context:
		return "?"
	case command.Unlambda:
		return strings.Repeat("~", c.Level) + " " + Expr(c.Expr, style)
	}
	return ""
}
