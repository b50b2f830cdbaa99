package parser

import (
	"fmt"
	"strconv"

	"github.com/malphas-lang/ski/internal/diag"
	"github.com/malphas-lang/ski/internal/lexer"
)

// ParseError describes malformed input: what was wrong and the offending
// fragment of source text.
type ParseError struct {
	Message  string
	Fragment string
	Span     lexer.Span
	Severity diag.Severity
	Code     diag.Code
	Help     string
}

// Error implements error.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Line, e.Span.Column, e.Message)
}

// ToDiagnostic converts the error into the shared diagnostic structure.
func (e *ParseError) ToDiagnostic() diag.Diagnostic {
	d := diag.Diagnostic{
		Stage:    diag.StageParser,
		Severity: e.Severity,
		Code:     e.Code,
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
	if e.Help != "" {
		d = d.WithHelp(e.Help)
	}
	return d
}

// emitParseDiagnostic records a diagnostic. Only the first error is kept:
// the parser is fail-fast and later errors would describe fallout.
func (p *Parser) emitParseDiagnostic(err ParseError) {
	if p.failed() {
		return
	}
	if err.Span.Filename == "" && p.filename != "" {
		err.Span.Filename = p.filename
	}
	if err.Severity == "" {
		err.Severity = diag.SeverityError
	}
	p.errors = append(p.errors, err)
}

// describe renders a token the way messages quote it.
func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of input"
	case lexer.ILLEGAL:
		return "illegal character " + strconv.Quote(tok.Raw)
	default:
		return "`" + tok.Raw + "`"
	}
}

func fragment(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return ""
	}
	return tok.Raw
}

// reportExpected reports that want was expected where tok was found.
func (p *Parser) reportExpected(want string, tok lexer.Token) {
	code := diag.CodeParseUnexpectedToken
	if tok.Type == lexer.EOF {
		code = diag.CodeParseUnexpectedEOF
	}
	if tok.Type == lexer.ILLEGAL {
		code = diag.CodeLexerIllegalRune
	}
	p.emitParseDiagnostic(ParseError{
		Message:  fmt.Sprintf("expected %s, found %s", want, describe(tok)),
		Fragment: fragment(tok),
		Span:     tok.Span,
		Code:     code,
	})
}

// reportError reports a simple error at tok.
func (p *Parser) reportError(msg string, code diag.Code, tok lexer.Token) {
	p.emitParseDiagnostic(ParseError{
		Message:  msg,
		Fragment: fragment(tok),
		Span:     tok.Span,
		Code:     code,
	})
}

// reportErrorWithHelp reports an error with help text.
func (p *Parser) reportErrorWithHelp(msg string, code diag.Code, span lexer.Span, frag, help string) {
	p.emitParseDiagnostic(ParseError{
		Message:  msg,
		Fragment: frag,
		Span:     span,
		Code:     code,
		Help:     help,
	})
}

func (p *Parser) reportTrailing(tok lexer.Token) {
	p.emitParseDiagnostic(ParseError{
		Message:  fmt.Sprintf("unexpected %s after expression", describe(tok)),
		Fragment: tok.Raw,
		Span:     tok.Span,
		Code:     diag.CodeParseTrailingInput,
	})
}

func (p *Parser) reportTooDeep(tok lexer.Token) {
	p.emitParseDiagnostic(ParseError{
		Message:  fmt.Sprintf("expression nests deeper than %d levels", p.maxNesting),
		Fragment: fragment(tok),
		Span:     tok.Span,
		Code:     diag.CodeParseTooDeep,
	})
}
