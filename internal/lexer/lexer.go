package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/malphas-lang/ski/internal/diag"
)

type LexerErrorKind int

const (
	ErrIllegalRune LexerErrorKind = iota
	ErrEmptySymbol
)

type LexerError struct {
	Kind    LexerErrorKind
	Message string
	Span    Span
}

func (k LexerErrorKind) diagnosticCode() diag.Code {
	switch k {
	case ErrIllegalRune:
		return diag.CodeLexerIllegalRune
	case ErrEmptySymbol:
		return diag.CodeLexerEmptySymbol
	default:
		return diag.Code("LEXER_UNKNOWN_ERROR")
	}
}

// ToDiagnostic converts a lexer error into a shared diagnostic structure.
func (e LexerError) ToDiagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Stage:    diag.StageLexer,
		Severity: diag.SeverityError,
		Code:     e.Kind.diagnosticCode(),
		Message:  e.Message,
		Span: diag.Span{
			Filename: e.Span.Filename,
			Line:     e.Span.Line,
			Column:   e.Span.Column,
			Start:    e.Span.Start,
			End:      e.Span.End,
		},
	}
}

// Lexer represents the lexer state
type Lexer struct {
	input    string
	pos      int  // byte offset of the current rune
	width    int  // byte width of the current rune
	ch       rune // current rune (0 = EOF)
	line     int  // current line number (1-based)
	column   int  // current column number (1-based)
	mode     Mode
	filename string

	Errors []LexerError
}

func (l *Lexer) addError(kind LexerErrorKind, msg string, span Span) {
	l.Errors = append(l.Errors, LexerError{
		Kind:    kind,
		Message: msg,
		Span:    span,
	})
}

// New creates a lexer for EcmaScript-style input.
func New(input string) *Lexer {
	return NewWithMode(input, ModeEcmaScript)
}

// NewWithMode creates a lexer that splits identifiers according to mode.
func NewWithMode(input string, mode Mode) *Lexer {
	l := &Lexer{
		input:  input,
		pos:    0,
		line:   1,
		column: 1,
		mode:   mode,
	}
	l.decode()
	return l
}

// SetFilename attributes every subsequent span to name.
func (l *Lexer) SetFilename(name string) {
	l.filename = name
}

// Input returns the text being lexed.
func (l *Lexer) Input() string {
	return l.input
}

// Mode reports the identifier mode.
func (l *Lexer) Mode() Mode {
	return l.mode
}

// decode loads the rune at pos into ch.
func (l *Lexer) decode() {
	if l.pos >= len(l.input) {
		l.ch, l.width = 0, 0
		return
	}
	l.ch, l.width = utf8.DecodeRuneInString(l.input[l.pos:])
}

// read advances the lexer to the next character, keeping line/column in step
// with the character now under pos.
func (l *Lexer) read() {
	if l.pos >= len(l.input) {
		return
	}
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos += l.width
	l.decode()
}

// peek returns the next character without advancing
func (l *Lexer) peek() rune {
	next := l.pos + l.width
	if next >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[next:])
	return r
}

// currentSpanStart returns the position of the character we're about to tokenize
func (l *Lexer) currentSpanStart() (line, column, pos int) {
	return l.line, l.column, l.pos
}

// makeToken creates a token with span information
func (l *Lexer) makeToken(tokType TokenType, startLine, startColumn, startPos, endPos int, value string) Token {
	return Token{
		Type:  tokType,
		Raw:   l.input[startPos:endPos],
		Value: value,
		Span: Span{
			Filename: l.filename,
			Line:     startLine,
			Column:   startColumn,
			Start:    startPos,
			End:      endPos,
		},
	}
}

// single consumes the current character as a one-rune token.
func (l *Lexer) single(tokType TokenType) Token {
	startLine, startColumn, startPos := l.currentSpanStart()
	l.read()
	return l.makeToken(tokType, startLine, startColumn, startPos, l.pos, l.input[startPos:l.pos])
}

// skipWhitespace skips blanks and `#` comments running to end of line.
func (l *Lexer) skipWhitespace() {
	for {
		switch l.ch {
		case ' ', '\t', '\n', '\r':
			l.read()
		case '#':
			for l.ch != '\n' && l.ch != 0 {
				l.read()
			}
		default:
			return
		}
	}
}

// readIdentifier reads one identifier starting at the current character, or
// returns "" when the current character cannot start one in this mode.
func (l *Lexer) readIdentifier() string {
	start := l.pos
	switch l.mode {
	case ModeLazyK:
		switch {
		case isLower(l.ch) || l.ch == 'ι':
			l.read()
		case isUpperRun(l.ch):
			for isUpperRun(l.ch) {
				l.read()
			}
		}
	default:
		if isLetter(l.ch) {
			for isLetter(l.ch) || isDigit(l.ch) {
				l.read()
			}
		}
	}
	return l.input[start:l.pos]
}

// startsIdentifier reports whether ch can begin an identifier in this mode.
func (l *Lexer) startsIdentifier(ch rune) bool {
	if l.mode == ModeLazyK {
		return isLower(ch) || ch == 'ι' || isUpperRun(ch)
	}
	return isLetter(ch)
}

// readNumber reads a run of decimal digits.
func (l *Lexer) readNumber() string {
	start := l.pos
	for isDigit(l.ch) {
		l.read()
	}
	return l.input[start:l.pos]
}

// allDigitsAhead reports whether the upper-case run starting at pos is made
// of digits only. Such runs are numbers even in Lazy_K mode.
func (l *Lexer) allDigitsAhead() bool {
	i := l.pos
	for i < len(l.input) && isUpperRun(rune(l.input[i])) {
		if !isDigit(rune(l.input[i])) {
			return false
		}
		i++
	}
	return true
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	switch l.ch {
	case 0:
		startLine, startColumn, startPos := l.currentSpanStart()
		return l.makeToken(EOF, startLine, startColumn, startPos, startPos, "")

	case '=':
		startLine, startColumn, startPos := l.currentSpanStart()
		if l.peek() == '>' {
			l.read()
			l.read()
			return l.makeToken(FATARROW, startLine, startColumn, startPos, l.pos, "=>")
		}
		l.read()
		return l.makeToken(ASSIGN, startLine, startColumn, startPos, l.pos, "=")

	case '-':
		return l.single(MINUS)
	case '!':
		return l.single(BANG)
	case '~':
		return l.single(TILDE)
	case '?':
		return l.single(QUESTION)
	case '`':
		return l.single(BACKTICK)
	case 'λ', '^':
		return l.single(LAMBDA)
	case ',':
		return l.single(COMMA)
	case '.':
		return l.single(DOT)
	case '(':
		return l.single(LPAREN)
	case ')':
		return l.single(RPAREN)

	case ':':
		startLine, startColumn, startPos := l.currentSpanStart()
		l.read()
		name := l.readIdentifier()
		if name == "" {
			tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, ":")
			l.addError(ErrEmptySymbol, "expected identifier after ':'", tok.Span)
			return tok
		}
		return l.makeToken(SYMBOL, startLine, startColumn, startPos, l.pos, name)
	}

	startLine, startColumn, startPos := l.currentSpanStart()

	if isDigit(l.ch) && (l.mode == ModeEcmaScript || l.allDigitsAhead()) {
		literal := l.readNumber()
		return l.makeToken(INT, startLine, startColumn, startPos, l.pos, literal)
	}

	if l.startsIdentifier(l.ch) {
		literal := l.readIdentifier()
		return l.makeToken(IDENT, startLine, startColumn, startPos, l.pos, literal)
	}

	l.read()
	tok := l.makeToken(ILLEGAL, startLine, startColumn, startPos, l.pos, l.input[startPos:l.pos])
	l.addError(
		ErrIllegalRune,
		"illegal character "+strconv.Quote(tok.Raw)+" in "+l.mode.String()+" input",
		tok.Span,
	)
	return tok
}

// Tokenize lexes the whole input, EOF included.
func Tokenize(input string, mode Mode) ([]Token, []LexerError) {
	l := NewWithMode(input, mode)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, l.Errors
		}
	}
}

// isLetter accepts ASCII letters, underscore and ι, the iota combinator's
// name, so iota terms print and read back in both syntaxes.
func isLetter(ch rune) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_' || ch == 'ι'
}

func isLower(ch rune) bool {
	return 'a' <= ch && ch <= 'z'
}

func isUpperRun(ch rune) bool {
	return ('A' <= ch && ch <= 'Z') || isDigit(ch) || ch == '_'
}

func isDigit(ch rune) bool {
	// Numeric literals are restricted to ASCII digits.
	return ch >= '0' && ch <= '9'
}
