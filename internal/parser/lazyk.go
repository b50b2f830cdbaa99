package parser

import (
	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/lexer"
)

// lazyKFrame is a pending prefix form: a backtick still waiting for one or
// both operands, or a lambda waiting for its body.
type lazyKFrame struct {
	lambda bool
	param  expr.Identifier
	lhs    expr.Expr
}

// parseLazyK reads one prefix term: a backtick application, `λx.E` / `^x.E`, `:sym`, or
// an identifier. The term is assembled on an explicit stack so long
// backtick runs do not recurse. nested counts the frames holding a term
// in argument or body position; only those are bounded by maxNesting, so
// a long callee spine is accepted at any length.
func (p *Parser) parseLazyK() expr.Expr {
	var stack []lazyKFrame
	nested := 0
	for {
		var e expr.Expr

		switch p.curTok.Type {
		case lexer.BACKTICK:
			if nested >= p.maxNesting {
				p.reportTooDeep(p.curTok)
				return nil
			}
			stack = append(stack, lazyKFrame{})
			p.nextToken()
			continue

		case lexer.LAMBDA:
			if nested >= p.maxNesting {
				p.reportTooDeep(p.curTok)
				return nil
			}
			if !p.expect(lexer.IDENT) {
				return nil
			}
			param := expr.Identifier(p.curTok.Value)
			if !p.expect(lexer.DOT) {
				return nil
			}
			stack = append(stack, lazyKFrame{lambda: true, param: param})
			nested++
			p.nextToken()
			continue

		case lexer.IDENT, lexer.INT:
			e = expr.NewVariable(expr.Identifier(p.curTok.Value))

		case lexer.SYMBOL:
			e = expr.NewSymbol(expr.Identifier(p.curTok.Value))

		default:
			p.reportExpected("expression", p.curTok)
			return nil
		}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.lambda {
				e = &expr.Lambda{Param: top.param, Body: e}
				stack = stack[:len(stack)-1]
				nested--
				continue
			}
			if top.lhs == nil {
				top.lhs = e
				e = nil
				nested++
				break
			}
			e = &expr.Apply{Lhs: top.lhs, Rhs: e}
			stack = stack[:len(stack)-1]
			nested--
		}

		if e != nil {
			return e
		}
		p.nextToken()
	}
}
