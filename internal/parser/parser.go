package parser

import (
	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/lexer"
)

type (
	prefixParseFn func() expr.Expr
	infixParseFn  func(expr.Expr) expr.Expr
)

type Option func(*options)

type options struct {
	filename   string
	syntax     expr.DisplayStyle
	pinned     bool
	maxNesting int
}

// DefaultMaxNesting bounds how deeply parentheses and lambdas may nest.
const DefaultMaxNesting = 4096

// WithFilename configures the parser to attribute all emitted spans to the provided filename.
func WithFilename(name string) Option {
	return func(o *options) {
		o.filename = name
	}
}

// WithSyntax pins the concrete syntax instead of detecting it.
func WithSyntax(style expr.DisplayStyle) Option {
	return func(o *options) {
		o.syntax = style
		o.pinned = true
	}
}

// WithMaxNesting overrides DefaultMaxNesting.
func WithMaxNesting(n int) Option {
	return func(o *options) {
		o.maxNesting = n
	}
}

func buildOptions(opts []Option) options {
	cfg := options{maxNesting: DefaultMaxNesting}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

const (
	precedenceLowest = iota
	precedenceCall
)

var precedences = map[lexer.TokenType]int{
	lexer.LPAREN: precedenceCall,
}

// Parser reads one syntax. Invariants:
//   - Lookahead: curTok is the token under examination and peekTok the one
//     after it; both only move through nextToken.
//   - Diagnostics: errors is append-only. Parsing stops at the first error
//     and every parse method then returns nil, so no partial tree escapes.
//   - A Parser is single use; the package-level functions build a fresh one
//     per attempt so no lookahead survives a failed parse.
type Parser struct {
	lx      *lexer.Lexer
	curTok  lexer.Token
	peekTok lexer.Token

	errors []ParseError

	filename string
	syntax   expr.DisplayStyle

	depth      int
	maxNesting int

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// New returns a parser initialised with the provided source input. The
// syntax is EcmaScript unless WithSyntax says otherwise.
func New(input string, opts ...Option) *Parser {
	cfg := buildOptions(opts)

	mode := lexer.ModeEcmaScript
	if cfg.syntax == expr.LazyK {
		mode = lexer.ModeLazyK
	}

	p := &Parser{
		lx:         lexer.NewWithMode(input, mode),
		prefixFns:  make(map[lexer.TokenType]prefixParseFn),
		infixFns:   make(map[lexer.TokenType]infixParseFn),
		filename:   cfg.filename,
		syntax:     cfg.syntax,
		maxNesting: cfg.maxNesting,
	}

	if cfg.filename != "" {
		p.lx.SetFilename(cfg.filename)
	}

	p.registerPrefix(lexer.IDENT, p.parseIdentifier)
	p.registerPrefix(lexer.SYMBOL, p.parseSymbol)
	p.registerPrefix(lexer.LPAREN, p.parseGroupedExpr)

	p.registerInfix(lexer.LPAREN, p.parseCallExpr)

	// Seed curTok/peekTok.
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tt lexer.TokenType, fn prefixParseFn) {
	p.prefixFns[tt] = fn
}

func (p *Parser) registerInfix(tt lexer.TokenType, fn infixParseFn) {
	p.infixFns[tt] = fn
}

// Errors returns the parse errors that were encountered.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// ParseExpr parses the whole input as one expression.
func (p *Parser) ParseExpr() expr.Expr {
	e := p.parseTerm()
	if e == nil {
		return nil
	}
	if !p.expectEnd() {
		return nil
	}
	return e
}

// parseTerm parses one expression in the parser's syntax, leaving curTok on
// its last token.
func (p *Parser) parseTerm() expr.Expr {
	if p.syntax == expr.LazyK {
		return p.parseLazyK()
	}
	return p.parseExpression(precedenceLowest)
}

// expectEnd reports trailing input after a complete expression.
func (p *Parser) expectEnd() bool {
	if p.peekTok.Type == lexer.EOF {
		p.nextToken()
		return true
	}
	p.reportTrailing(p.peekTok)
	return false
}

// nextToken advances the parser's token window.
// Contract: after calling nextToken, curTok == old(peekTok). The lexer is only
// queried from this hop to keep lookahead bookkeeping centralized.
func (p *Parser) nextToken() {
	p.curTok = p.peekTok
	p.peekTok = p.lx.NextToken()
}

// expect asserts that the peek token matches the provided type.
// On success it promotes peekTok into curTok; it never rewinds.
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.peekTok.Type == tt {
		p.nextToken()
		return true
	}
	p.reportExpected("'"+string(tt)+"'", p.peekTok)
	return false
}

// enter guards recursion depth; every successful enter needs a leave.
func (p *Parser) enter() bool {
	if p.depth >= p.maxNesting {
		p.reportTooDeep(p.curTok)
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) failed() bool {
	return len(p.errors) > 0
}

func (p *Parser) source() string {
	return p.lx.Input()
}
