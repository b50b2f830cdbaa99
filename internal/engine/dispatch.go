// Package engine turns parsed commands into effects and runs them against
// a session's definitions and result history.
package engine

import (
	"fmt"

	"github.com/malphas-lang/ski/internal/command"
	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/reduce"
	"github.com/malphas-lang/ski/internal/unlambda"
)

// Options tunes how commands are carried out.
type Options struct {
	Style       expr.DisplayStyle
	MaxSteps    int
	ExpandLimit int
	Strategy    unlambda.Strategy
}

// DefaultOptions returns the options used when the caller has none.
func DefaultOptions() Options {
	return Options{
		Style:       expr.EcmaScript,
		MaxSteps:    reduce.DefaultMaxSteps,
		ExpandLimit: unlambda.DefaultLimit,
		Strategy:    unlambda.SKI,
	}
}

// Dispatch maps cmd to the effect it has on ctx and aliases. It changes
// neither: mutations come back as Define and Undefine for the caller to
// apply, and reductions come back unstarted. Only eliminations are carried
// out here, and they fail when inlining nests too deeply.
func Dispatch(cmd command.Command, ctx *expr.Context, aliases *expr.Aliases, opts Options) (Effect, error) {
	switch c := cmd.(type) {
	case command.Update:
		return Define{Func: c.Func}, nil

	case command.Delete:
		return Undefine{Name: c.Name}, nil

	case command.Reduce:
		return newReduction(ctx, aliases, c.Expr, opts, PolicyAll, 0), nil
	case command.ReduceLast:
		return newReduction(ctx, aliases, c.Expr, opts, PolicyLast, 1), nil
	case command.ReduceHead:
		return newReduction(ctx, aliases, c.Expr, opts, PolicyHead, c.Count), nil
	case command.ReduceTail:
		return newReduction(ctx, aliases, c.Expr, opts, PolicyTail, c.Count), nil

	case command.Query:
		f, ok := ctx.Get(c.Name)
		return QueryResult{Name: c.Name, Func: f, Found: ok}, nil

	case command.Context:
		return Listing{Funcs: ctx.Funcs()}, nil

	case command.Unlambda:
		eliminate, err := unlambda.ByLevel(c.Level)
		if err != nil {
			return nil, err
		}
		out, err := eliminate(ctx, c.Expr,
			unlambda.WithLimit(opts.ExpandLimit),
			unlambda.WithStrategy(opts.Strategy),
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", unlambda.Level(c.Level), err)
		}
		return Elimination{Level: unlambda.Level(c.Level), Input: c.Expr, Expr: out}, nil
	}
	return nil, fmt.Errorf("unsupported command %s", command.Name(cmd))
}

func newReduction(ctx *expr.Context, aliases *expr.Aliases, e expr.Expr, opts Options, policy Policy, count int) Reduction {
	return Reduction{
		Reducer: reduce.New(ctx, aliases, e, reduce.WithStyle(opts.Style)),
		Policy:  policy,
		Count:   count,
	}
}
