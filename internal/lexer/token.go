package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number, counted in runes
	Start    int    // byte offset into the input
	End      int    // exclusive byte offset
}

// Token represents a lexical token
type Token struct {
	Type  TokenType
	Raw   string // exact bytes from source
	Value string // decoded value (the name for SYMBOL, same as Raw otherwise)
	Span  Span   // source location information
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // x, foo, FOO, ι
	SYMBOL TokenType = ":IDENT" // :x, :foo
	INT    TokenType = "INT"    // step counts in reduction commands

	// Operators
	ASSIGN   TokenType = "="
	FATARROW TokenType = "=>"
	MINUS    TokenType = "-"
	BANG     TokenType = "!"
	TILDE    TokenType = "~"
	QUESTION TokenType = "?"
	BACKTICK TokenType = "`"
	LAMBDA   TokenType = "λ" // also written ^

	// Delimiters
	COMMA  TokenType = ","
	DOT    TokenType = "."
	LPAREN TokenType = "("
	RPAREN TokenType = ")"
)

// Mode selects how identifiers are split.
type Mode int

const (
	// ModeEcmaScript reads identifiers as [A-Za-z_][A-Za-z0-9_]*.
	ModeEcmaScript Mode = iota
	// ModeLazyK reads a single lower-case letter, ι, or a run of
	// [0-9A-Z_] as one identifier, so `skk` is three tokens.
	ModeLazyK
)

func (m Mode) String() string {
	if m == ModeLazyK {
		return "Lazy_K"
	}
	return "EcmaScript"
}

// Fragment returns the text of src the span covers, or "" when the span
// does not fit src.
func (s Span) Fragment(src string) string {
	if s.Start < 0 || s.End > len(src) || s.Start > s.End {
		return ""
	}
	return src[s.Start:s.End]
}
