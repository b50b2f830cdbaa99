package parser

import (
	"github.com/malphas-lang/ski/internal/lexer"
)

// mergeSpan assumes start.End <= end.End and returns a span covering both.
func mergeSpan(start, end lexer.Span) lexer.Span {
	span := start

	if end.End > span.End {
		span.End = end.End
	}

	return span
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekTok.Type]; ok {
		return prec
	}

	return precedenceLowest
}
