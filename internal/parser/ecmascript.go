package parser

import (
	"github.com/malphas-lang/ski/internal/diag"
	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/lexer"
)

// parseExpression is the Pratt loop for the EcmaScript syntax. The only
// infix operator is the call parenthesis; lambdas are prefix forms whose
// body extends as far right as possible.
func (p *Parser) parseExpression(precedence int) expr.Expr {
	if !p.enter() {
		return nil
	}
	defer p.leave()

	prefix := p.prefixFns[p.curTok.Type]
	if prefix == nil {
		p.reportExpected("expression", p.curTok)
		return nil
	}

	left := prefix()
	for left != nil && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekTok.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

// parseIdentifier handles `x` and `x => body`.
func (p *Parser) parseIdentifier() expr.Expr {
	name := expr.Identifier(p.curTok.Value)
	if p.peekTok.Type != lexer.FATARROW {
		return expr.NewVariable(name)
	}

	p.nextToken() // '=>'
	p.nextToken()
	body := p.parseExpression(precedenceLowest)
	if body == nil {
		return nil
	}
	return &expr.Lambda{Param: name, Body: body}
}

func (p *Parser) parseSymbol() expr.Expr {
	return expr.NewSymbol(expr.Identifier(p.curTok.Value))
}

// parseGroupedExpr handles `(e)` and the parameter list of `(x, y) => body`.
// The contents are read as a comma separated list; a following `=>` turns
// it into parameters, otherwise it must hold exactly one expression.
func (p *Parser) parseGroupedExpr() expr.Expr {
	open := p.curTok
	if p.peekTok.Type == lexer.RPAREN {
		p.nextToken()
		p.reportExpected("expression", p.curTok)
		return nil
	}

	var (
		items      []expr.Expr
		itemToks   []lexer.Token
		firstComma *lexer.Token
	)
	for {
		p.nextToken()
		itemToks = append(itemToks, p.curTok)
		item := p.parseExpression(precedenceLowest)
		if item == nil {
			return nil
		}
		items = append(items, item)

		if p.peekTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
		if firstComma == nil {
			comma := p.curTok
			firstComma = &comma
		}
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}

	if p.peekTok.Type == lexer.FATARROW {
		return p.parseParenLambda(open, items, itemToks)
	}

	if firstComma != nil {
		p.reportErrorWithHelp(
			"unexpected `,` in parenthesized expression",
			diag.CodeParseUnexpectedToken,
			firstComma.Span,
			",",
			"write `f(a, b)` to apply f to several arguments",
		)
		return nil
	}
	return items[0]
}

func (p *Parser) parseParenLambda(open lexer.Token, items []expr.Expr, itemToks []lexer.Token) expr.Expr {
	params := make([]expr.Identifier, 0, len(items))
	seen := expr.Vars{}
	for i, item := range items {
		v, ok := item.(*expr.Variable)
		if !ok {
			p.reportExpected("parameter name", itemToks[i])
			return nil
		}
		if seen.Contains(v.Name) {
			p.reportError("duplicate parameter `"+string(v.Name)+"`", diag.CodeParseDuplicateParam, itemToks[i])
			return nil
		}
		seen.Add(v.Name)
		params = append(params, v.Name)
	}

	p.nextToken() // '=>'
	p.nextToken()
	body := p.parseExpression(precedenceLowest)
	if body == nil {
		return nil
	}
	return expr.NewLambda(params, body)
}

// parseCallExpr handles `callee(a, b, ...)`, folding the arguments onto the
// callee from the left.
func (p *Parser) parseCallExpr(callee expr.Expr) expr.Expr {
	if p.peekTok.Type == lexer.RPAREN {
		p.nextToken()
		p.reportErrorWithHelp(
			"expected argument, found `)`",
			diag.CodeParseUnexpectedToken,
			p.curTok.Span,
			")",
			"every application takes at least one argument",
		)
		return nil
	}

	var args []expr.Expr
	for {
		p.nextToken()
		arg := p.parseExpression(precedenceLowest)
		if arg == nil {
			return nil
		}
		args = append(args, arg)

		if p.peekTok.Type != lexer.COMMA {
			break
		}
		p.nextToken()
	}
	if !p.expect(lexer.RPAREN) {
		return nil
	}
	return expr.NewApply(callee, args...)
}
