package parser

import (
	"fmt"
	"strconv"

	"github.com/malphas-lang/ski/internal/command"
	"github.com/malphas-lang/ski/internal/diag"
	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/lexer"
)

// MaxUnlambdaLevel is the longest accepted run of `~`.
const MaxUnlambdaLevel = 4

// ParseCommand parses the whole input as one command line:
//
//	id(params) = body   update (Lazy_K: ``fxy = body)
//	id = id             delete
//	expr                reduce, showing every step
//	!expr               reduce, showing the last step
//	!N expr             reduce, showing the first N steps
//	!-N expr            reduce, showing the last N steps
//	~ … ~~~~ expr       eliminate lambdas at level 1 … 4
//	? id                query one definition
//	?                   list the context
func (p *Parser) ParseCommand() command.Command {
	switch p.curTok.Type {
	case lexer.QUESTION:
		return p.parseQuery()
	case lexer.TILDE:
		return p.parseUnlambda()
	case lexer.BANG:
		return p.parseReduceVariant()
	default:
		return p.parseDefinitionOrReduce()
	}
}

func (p *Parser) parseQuery() command.Command {
	if p.peekTok.Type == lexer.EOF {
		p.nextToken()
		return command.Context{}
	}
	if !p.expect(lexer.IDENT) {
		return nil
	}
	name := expr.Identifier(p.curTok.Value)
	if !p.expectEnd() {
		return nil
	}
	return command.Query{Name: name}
}

func (p *Parser) parseUnlambda() command.Command {
	start := p.curTok
	level := 0
	for p.curTok.Type == lexer.TILDE {
		level++
		p.nextToken()
	}
	if level > MaxUnlambdaLevel {
		p.reportErrorWithHelp(
			"too many `~`: at most "+strconv.Itoa(MaxUnlambdaLevel)+" levels exist",
			diag.CodeParseInvalidTildeRun,
			start.Span,
			start.Raw,
			"use ~ to expand, ~~ for S/K/I, ~~~ for the shortened S/K/I form, ~~~~ for iota",
		)
		return nil
	}

	e := p.parseTerm()
	if e == nil || !p.expectEnd() {
		return nil
	}
	return command.Unlambda{Level: level, Expr: e}
}

func (p *Parser) parseReduceVariant() command.Command {
	switch p.peekTok.Type {
	case lexer.INT:
		p.nextToken()
		count, ok := p.parseCount()
		if !ok {
			return nil
		}
		p.nextToken()
		e := p.parseTerm()
		if e == nil || !p.expectEnd() {
			return nil
		}
		return command.ReduceHead{Count: count, Expr: e}

	case lexer.MINUS:
		p.nextToken()
		if !p.expect(lexer.INT) {
			return nil
		}
		count, ok := p.parseCount()
		if !ok {
			return nil
		}
		p.nextToken()
		e := p.parseTerm()
		if e == nil || !p.expectEnd() {
			return nil
		}
		return command.ReduceTail{Count: count, Expr: e}

	default:
		p.nextToken()
		e := p.parseTerm()
		if e == nil || !p.expectEnd() {
			return nil
		}
		return command.ReduceLast{Expr: e}
	}
}

// parseCount reads the positive step count under curTok.
func (p *Parser) parseCount() (int, bool) {
	n, err := strconv.Atoi(p.curTok.Value)
	if err != nil || n <= 0 {
		p.reportError("step count must be a positive integer, found `"+p.curTok.Raw+"`", diag.CodeParseInvalidCount, p.curTok)
		return 0, false
	}
	return n, true
}

// parseDefinitionOrReduce reads a term; a following `=` makes the term the
// signature of a definition.
func (p *Parser) parseDefinitionOrReduce() command.Command {
	first := p.curTok
	lhs := p.parseTerm()
	if lhs == nil {
		return nil
	}

	if p.peekTok.Type != lexer.ASSIGN {
		if !p.expectEnd() {
			return nil
		}
		return command.Reduce{Expr: lhs}
	}

	sigSpan := mergeSpan(first.Span, p.curTok.Span)
	name, params, ok := p.signature(lhs, sigSpan)
	if !ok {
		return nil
	}

	p.nextToken() // '='
	p.nextToken()
	body := p.parseTerm()
	if body == nil || !p.expectEnd() {
		return nil
	}

	if v, isVar := body.(*expr.Variable); isVar && len(params) == 0 && v.Name == name {
		return command.Delete{Name: name}
	}

	f, err := expr.NewFunc(name, params, body)
	if err != nil {
		p.reportErrorWithHelp(err.Error(), diag.CodeParseDuplicateParam, sigSpan, sigSpan.Fragment(p.source()), "")
		return nil
	}
	return command.Update{Func: f}
}

// signature checks that lhs is a name, other than an alias, applied to
// distinct parameter names.
func (p *Parser) signature(lhs expr.Expr, span lexer.Span) (expr.Identifier, []expr.Identifier, bool) {
	callee, args := expr.Unapply(lhs)

	name, ok := callee.(*expr.Variable)
	if ok {
		params := make([]expr.Identifier, len(args))
		for i, arg := range args {
			v, isVar := arg.(*expr.Variable)
			if !isVar {
				ok = false
				break
			}
			params[i] = v.Name
		}
		if ok && expr.IsAlias(name.Name) {
			p.reportErrorWithHelp(
				fmt.Sprintf("`%s` names a previous result and cannot be defined", name.Name),
				diag.CodeParseInvalidSignature,
				span,
				span.Fragment(p.source()),
				"choose a name other than `_` and `_0` to `_9`",
			)
			return "", nil, false
		}
		if ok {
			return name.Name, params, true
		}
	}

	help := "write `f(x, y) = body`"
	if p.syntax == expr.LazyK {
		help = "write ``fxy = body"
	}
	p.reportErrorWithHelp(
		"left side of `=` must be a name applied to parameter names",
		diag.CodeParseInvalidSignature,
		span,
		span.Fragment(p.source()),
		help,
	)
	return "", nil, false
}
