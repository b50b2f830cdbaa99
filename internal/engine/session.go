package engine

import (
	"fmt"
	"log"

	"github.com/samber/lo"

	"github.com/malphas-lang/ski/internal/command"
	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/parser"
	"github.com/malphas-lang/ski/internal/prelude"
	"github.com/malphas-lang/ski/internal/reduce"
	"github.com/malphas-lang/ski/internal/render"
)

// Session is the state one user works against: the live definitions, the
// result history and the display options. It is not safe for concurrent
// use.
type Session struct {
	ctx     *expr.Context
	aliases *expr.Aliases
	opts    Options
	logger  *log.Logger
}

// NewSession starts a session over ctx, or over the built-in definitions
// when ctx is nil. The session keeps ctx; callers should not mutate it
// afterwards.
func NewSession(ctx *expr.Context, opts Options) *Session {
	if ctx == nil {
		ctx = prelude.Default()
	}
	if opts.MaxSteps <= 0 {
		opts.MaxSteps = reduce.DefaultMaxSteps
	}
	return &Session{ctx: ctx, aliases: expr.NewAliases(), opts: opts}
}

// SetLogger enables verbose tracing of every command. A nil logger turns
// it off.
func (s *Session) SetLogger(l *log.Logger) { s.logger = l }

// Context returns a snapshot of the definitions.
func (s *Session) Context() *expr.Context { return s.ctx.Clone() }

// Aliases returns a snapshot of the result history.
func (s *Session) Aliases() *expr.Aliases { return s.aliases.Clone() }

// Options returns the session's options.
func (s *Session) Options() Options { return s.opts }

// DisplayStyle returns the syntax output is rendered in.
func (s *Session) DisplayStyle() expr.DisplayStyle { return s.opts.Style }

// SetDisplayStyle changes the syntax of later output.
func (s *Session) SetDisplayStyle(style expr.DisplayStyle) { s.opts.Style = style }

// Reset restores the built-in definitions and forgets every result.
func (s *Session) Reset() {
	s.ctx.Replace(prelude.Default())
	s.aliases = expr.NewAliases()
}

// Clear removes every definition. Results are kept.
func (s *Session) Clear() { s.ctx.Clear() }

// Reducer starts a reduction of e against the session's current state,
// for callers that drive steps themselves.
func (s *Session) Reducer(e expr.Expr) *reduce.Reducer {
	return reduce.New(s.ctx, s.aliases, e, reduce.WithStyle(s.opts.Style))
}

// Run parses line as a command and executes it. A parse error is returned
// as is, so callers can turn it into a diagnostic against line.
func (s *Session) Run(line string) (Output, error) {
	cmd, err := parser.ParseCommand(line)
	if err != nil {
		return Output{}, err
	}
	return s.Exec(cmd)
}

// Exec executes an already parsed command. Definitions are applied to the
// session; the final term of a reduction or elimination becomes `_`.
func (s *Session) Exec(cmd command.Command) (Output, error) {
	effect, err := Dispatch(cmd, s.ctx, s.aliases, s.opts)
	if err != nil {
		return Output{}, err
	}
	out := Output{Command: command.Name(cmd)}

	switch e := effect.(type) {
	case Define:
		e.Apply(s.ctx)
		out.Lines = append(out.Lines, Line{Kind: LineFunc, Text: render.Func(e.Func, s.opts.Style)})
		s.logf("defined %s/%d", e.Func.Name, e.Func.Arity())

	case Undefine:
		text := fmt.Sprintf("%s is not defined", e.Name)
		if e.Apply(s.ctx) {
			text = fmt.Sprintf("deleted %s", e.Name)
		}
		out.Lines = append(out.Lines, Line{Kind: LineNotice, Text: text})
		s.logf("undefine %s", e.Name)

	case Reduction:
		s.reduction(e, &out)

	case QueryResult:
		if e.Found {
			out.Lines = append(out.Lines, Line{Kind: LineFunc, Text: render.Func(e.Func, s.opts.Style)})
		} else {
			out.Lines = append(out.Lines, Line{Kind: LineNotice, Text: fmt.Sprintf("%s is not defined", e.Name)})
		}

	case Listing:
		out.Lines = lo.Map(e.Funcs, func(f expr.Func, _ int) Line {
			return Line{Kind: LineFunc, Text: render.Func(f, s.opts.Style)}
		})

	case Elimination:
		out.Lines = append(out.Lines,
			Line{Kind: LineExpr, Text: render.Expr(e.Input, s.opts.Style)},
			Line{Kind: LineStep, Text: render.Expr(e.Expr, s.opts.Style)},
		)
		s.aliases.Push(e.Expr)
		s.logf("%s: %d nodes", e.Level, expr.Size(e.Expr))
	}
	return out, nil
}

func (s *Session) reduction(e Reduction, out *Output) {
	r := e.Reducer
	out.Lines = append(out.Lines, ExprLine(r.Formed()))

	steps := e.Run(s.opts.MaxSteps)
	if len(steps) > 0 && steps[0].Step > 1 {
		out.Lines = append(out.Lines, ellipsis())
	}
	out.Lines = append(out.Lines, lo.Map(steps, func(step reduce.Step, _ int) Line {
		return StepLine(step)
	})...)

	if r.HasNext() {
		out.Lines = append(out.Lines, ellipsis())
		out.Truncated = e.Policy != PolicyHead
	}
	s.aliases.Push(r.Expr())
	s.logf("%s reduction: %d steps shown, normal form %t", e.Policy, len(steps), !r.HasNext())
}

func (s *Session) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
