package parser

import (
	"errors"
	"strings"

	"github.com/malphas-lang/ski/internal/command"
)

// ScriptLine is one line of a command script. Command is nil for blank and
// comment-only lines.
type ScriptLine struct {
	Line    int
	Text    string
	Command command.Command
}

// ParseScript parses src as one command per line. Blank lines and lines
// starting with `#` carry no command. Each line detects its syntax on its
// own. On failure the ParseError's span is positioned in src, not in the
// line, so it can be shown against the whole file.
func ParseScript(src string, opts ...Option) ([]ScriptLine, error) {
	var (
		lines  []ScriptLine
		offset int
	)
	for i, text := range strings.SplitAfter(src, "\n") {
		start := offset
		offset += len(text)
		text = strings.TrimRight(text, "\r\n")

		line := ScriptLine{Line: i + 1, Text: text}
		trimmed := strings.TrimSpace(text)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			if text != "" || offset < len(src) {
				lines = append(lines, line)
			}
			continue
		}

		cmd, err := ParseCommand(text, opts...)
		if err != nil {
			var perr *ParseError
			if errors.As(err, &perr) {
				perr.Span.Line += i
				perr.Span.Start += start
				perr.Span.End += start
			}
			return nil, err
		}
		line.Command = cmd
		lines = append(lines, line)
	}
	return lines, nil
}
