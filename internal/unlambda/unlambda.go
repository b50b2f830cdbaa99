// Package unlambda removes lambdas from expressions by bracket
// abstraction, at four levels:
//
//	1  Expand          inline every definition, keep the lambdas
//	2  Recursive       S, K and I
//	3  RecursiveShort  as 2, with S(K p)(K q) => K(p q) and S(K p) I => p
//	4  Iota            as 3, with S, K and I written in ι alone
//
// Every level inlines the definitions an expression refers to before it
// abstracts, leaving the names of the chosen basis in place, unless
// WithShallow asks for context-free abstraction. None of them consult
// aliases.
package unlambda

import (
	"github.com/malphas-lang/ski/internal/expr"
)

// DefaultLimit bounds how deeply inlining may nest.
const DefaultLimit = 1000

// Level selects an elimination.
type Level int

const (
	LevelExpand Level = iota + 1
	LevelRecursive
	LevelRecursiveShort
	LevelIota
)

func (l Level) String() string {
	switch l {
	case LevelExpand:
		return "expand"
	case LevelRecursive:
		return "recursive"
	case LevelRecursiveShort:
		return "recursive-short"
	case LevelIota:
		return "iota"
	default:
		return "unknown"
	}
}

// Eliminator is the shape shared by the four levels.
type Eliminator func(ctx *expr.Context, e expr.Expr, opts ...Option) (expr.Expr, error)

// ByLevel returns the eliminator run by a line starting with level tildes.
func ByLevel(level int) (Eliminator, error) {
	switch Level(level) {
	case LevelExpand:
		return Expand, nil
	case LevelRecursive:
		return Recursive, nil
	case LevelRecursiveShort:
		return RecursiveShort, nil
	case LevelIota:
		return Iota, nil
	}
	return nil, &LevelError{Level: level}
}

// Option configures an elimination.
type Option func(*options)

type options struct {
	limit    int
	strategy Strategy
	shallow  bool
}

// WithLimit overrides DefaultLimit.
func WithLimit(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.limit = n
		}
	}
}

// WithStrategy selects the basis levels 2 and 3 translate into. Level 4
// always uses Iota.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithShallow abstracts without inlining: free names that refer to
// definitions stay in the result as they are.
func WithShallow() Option {
	return func(o *options) {
		o.shallow = true
	}
}

func buildOptions(opts []Option) options {
	cfg := options{limit: DefaultLimit, strategy: SKI}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Expand inlines every free variable that names a definition, repeatedly,
// until none is left. It fails with a *RecursionLimitError when inlining
// nests deeper than the limit.
func Expand(ctx *expr.Context, e expr.Expr, opts ...Option) (expr.Expr, error) {
	cfg := buildOptions(opts)
	return newExpander(ctx, cfg.limit, nil).run(e)
}

// Recursive translates e into the strategy's basis.
func Recursive(ctx *expr.Context, e expr.Expr, opts ...Option) (expr.Expr, error) {
	cfg := buildOptions(opts)
	return eliminate(ctx, e, cfg, cfg.strategy, false)
}

// RecursiveShort is Recursive with the size-reducing rewrites.
func RecursiveShort(ctx *expr.Context, e expr.Expr, opts ...Option) (expr.Expr, error) {
	cfg := buildOptions(opts)
	return eliminate(ctx, e, cfg, cfg.strategy, true)
}

// Iota translates e into applications of ι.
func Iota(ctx *expr.Context, e expr.Expr, opts ...Option) (expr.Expr, error) {
	cfg := buildOptions(opts)
	return eliminate(ctx, e, cfg, IotaBasis, true)
}

func eliminate(ctx *expr.Context, e expr.Expr, cfg options, strategy Strategy, shorten bool) (expr.Expr, error) {
	b := strategy.basis()
	if cfg.shallow {
		ctx = expr.NewContext()
	}
	expanded, err := newExpander(ctx, cfg.limit, b.reserved).run(e)
	if err != nil {
		return nil, err
	}
	t := translator{basis: b, shorten: shorten}
	return t.translate(expanded), nil
}
