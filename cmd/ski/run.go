package main

import (
	"fmt"
	"os"

	"github.com/malphas-lang/ski/internal/config"
	"github.com/malphas-lang/ski/internal/diag"
	"github.com/malphas-lang/ski/internal/engine"
	"github.com/malphas-lang/ski/internal/parser"
)

func runScript(cfg config.Config, args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: ski run <file>\n")
		return 2
	}

	s := newSession(cfg)
	out := printer{w: os.Stdout, color: cfg.Color}
	fmtr := diag.NewFormatter(os.Stderr)
	if err := execFile(s, out, fmtr, args[0], true); err != nil {
		report(fmtr, err)
		return 1
	}
	return 0
}

// execFile runs every command in a script against s. With echo set each
// command line is printed before its output.
func execFile(s *engine.Session, out printer, fmtr *diag.Formatter, path string, echo bool) error {
	src, err := fmtr.LoadSource(path)
	if err != nil {
		return err
	}

	lines, err := parser.ParseScript(src, parser.WithFilename(path))
	if err != nil {
		return err
	}

	for _, line := range lines {
		if line.Command == nil {
			continue
		}
		if echo {
			fmt.Fprintf(out.w, "> %s\n", line.Text)
		}
		result, err := s.Exec(line.Command)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, line.Line, err)
		}
		out.output(result)
	}
	return nil
}
