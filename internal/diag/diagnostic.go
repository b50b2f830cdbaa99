// Package diag is the shared shape of user-facing problems and their
// rendering against the source they came from.
package diag

import "fmt"

// Stage names the component that found the problem.
type Stage string

const (
	StageLexer    Stage = "lexer"
	StageParser   Stage = "parser"
	StageUnlambda Stage = "unlambda"
	StageSession  Stage = "session"
)

// Severity captures how impactful the diagnostic is.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Code is a stable identifier for a diagnostic.
type Code string

const (
	CodeLexerIllegalRune Code = "LEXER_ILLEGAL_RUNE"
	CodeLexerEmptySymbol Code = "LEXER_EMPTY_SYMBOL"

	CodeParseUnexpectedToken  Code = "PARSE_UNEXPECTED_TOKEN"
	CodeParseUnexpectedEOF    Code = "PARSE_UNEXPECTED_EOF"
	CodeParseTrailingInput    Code = "PARSE_TRAILING_INPUT"
	CodeParseDuplicateParam   Code = "PARSE_DUPLICATE_PARAM"
	CodeParseInvalidCount     Code = "PARSE_INVALID_COUNT"
	CodeParseTooDeep          Code = "PARSE_TOO_DEEP"
	CodeParseInvalidSignature Code = "PARSE_INVALID_SIGNATURE"
	CodeParseInvalidTildeRun  Code = "PARSE_INVALID_TILDE_RUN"

	CodeUnlambdaRecursionLimit Code = "UNLAMBDA_RECURSION_LIMIT"
	CodeUnlambdaInvalidLevel   Code = "UNLAMBDA_INVALID_LEVEL"
)

// Span locates a problem. Line and Column are 1-based, Column counts
// runes; Start and End are byte offsets into the whole source.
type Span struct {
	Filename string
	Line     int
	Column   int
	Start    int
	End      int
}

func (s Span) String() string {
	if s.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", s.Filename, s.Line, s.Column)
	}
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// IsValid reports whether the span points anywhere.
func (s Span) IsValid() bool {
	return s.Line > 0 && s.Column > 0
}

// Diagnostic is a problem surfaced to end-users.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Span     Span
	Label    string   // printed after the underline
	Notes    []string // background, one per line
	Help     string   // what to write instead
}

// Error lets a diagnostic travel as an error value.
func (d Diagnostic) Error() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%s: %s", d.Span, d.Message)
	}
	return d.Message
}

// WithLabel returns a copy that annotates the underlined text.
func (d Diagnostic) WithLabel(label string) Diagnostic {
	d.Label = label
	return d
}

// WithNote returns a copy with one more note.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], note)
	return d
}

// WithHelp returns a copy carrying help text.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}
