package parser

import (
	"github.com/malphas-lang/ski/internal/command"
	"github.com/malphas-lang/ski/internal/expr"
)

// ParseExpr parses input as a single expression. Unless WithSyntax pins
// one, EcmaScript is tried first and Lazy_K second; when both fail, the
// error of the attempt that read further is returned.
func ParseExpr(input string, opts ...Option) (expr.Expr, error) {
	return parseWith(input, opts, (*Parser).ParseExpr)
}

// ParseCommand parses input as one command line, detecting the syntax the
// same way ParseExpr does.
func ParseCommand(input string, opts ...Option) (command.Command, error) {
	return parseWith(input, opts, (*Parser).ParseCommand)
}

func parseWith[T any](input string, opts []Option, parse func(*Parser) T) (T, error) {
	cfg := buildOptions(opts)

	syntaxes := []expr.DisplayStyle{expr.EcmaScript, expr.LazyK}
	if cfg.pinned {
		syntaxes = []expr.DisplayStyle{cfg.syntax}
	}

	var (
		zero T
		best *ParseError
	)
	for _, syntax := range syntaxes {
		attempt := make([]Option, 0, len(opts)+1)
		attempt = append(attempt, opts...)
		attempt = append(attempt, WithSyntax(syntax))

		p := New(input, attempt...)
		out := parse(p)
		if !p.failed() {
			return out, nil
		}

		err := p.Errors()[0]
		if best == nil || err.Span.Start > best.Span.Start {
			best = &err
		}
	}
	return zero, best
}
