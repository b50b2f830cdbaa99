package diag

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Formatter prints diagnostics with the offending source line and a caret
// underline beneath the span.
type Formatter struct {
	w       io.Writer
	sources map[string]string
}

// NewFormatter creates a formatter writing to w (os.Stderr when nil).
func NewFormatter(w io.Writer) *Formatter {
	if w == nil {
		w = os.Stderr
	}
	return &Formatter{w: w, sources: make(map[string]string)}
}

// AddSource registers in-memory source text, such as a REPL line, under name.
func (f *Formatter) AddSource(name, src string) {
	f.sources[name] = src
}

// LoadSource returns the text of filename, reading it from disk the first
// time.
func (f *Formatter) LoadSource(filename string) (string, error) {
	if src, ok := f.sources[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	f.sources[filename] = string(data)
	return string(data), nil
}

// Format prints d. Without a usable span or source only the header, notes
// and help are printed.
func (f *Formatter) Format(d Diagnostic) {
	severity := d.Severity
	if severity == "" {
		severity = SeverityError
	}
	if d.Code != "" {
		fmt.Fprintf(f.w, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.w, "%s: %s\n", severity, d.Message)
	}

	if d.Span.IsValid() {
		fmt.Fprintf(f.w, "  --> %s\n", d.Span)
		if src, ok := f.source(d.Span.Filename); ok {
			f.snippet(src, d)
		}
	}

	for _, note := range d.Notes {
		fmt.Fprintf(f.w, "  = note: %s\n", note)
	}
	if d.Help != "" {
		fmt.Fprintf(f.w, "help: %s\n", d.Help)
	}
}

func (f *Formatter) source(filename string) (string, bool) {
	if filename == "" {
		return "", false
	}
	src, err := f.LoadSource(filename)
	return src, err == nil
}

// snippet prints the span's line, the line before it for context, and the
// underline.
func (f *Formatter) snippet(src string, d Diagnostic) {
	lines := strings.Split(src, "\n")
	n := d.Span.Line
	if n > len(lines) {
		return
	}

	width := len(strconv.Itoa(n))
	gutter := strings.Repeat(" ", width+2) + "|"

	fmt.Fprintln(f.w, gutter)
	if n > 1 && strings.TrimSpace(lines[n-2]) != "" {
		fmt.Fprintf(f.w, "%*d | %s\n", width+1, n-1, lines[n-2])
	}
	fmt.Fprintf(f.w, "%*d | %s\n", width+1, n, strings.TrimRight(lines[n-1], "\r"))

	carets := strings.Repeat("^", underlineWidth(src, d.Span))
	underline := strings.Repeat(" ", d.Span.Column-1) + carets
	if d.Label != "" {
		underline += " " + d.Label
	}
	fmt.Fprintf(f.w, "%s %s\n", gutter, underline)
	fmt.Fprintln(f.w, gutter)
}

// underlineWidth is the number of runes the span covers, at least one so
// that a span at the end of input still gets a caret.
func underlineWidth(src string, span Span) int {
	if span.Start < 0 || span.End > len(src) || span.End <= span.Start {
		return 1
	}
	text := src[span.Start:span.End]
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	return max(1, utf8.RuneCountInString(text))
}
