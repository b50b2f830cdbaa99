package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/malphas-lang/ski/internal/config"
	"github.com/malphas-lang/ski/internal/diag"
	"github.com/malphas-lang/ski/internal/engine"
	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/parser"
	"github.com/malphas-lang/ski/internal/render"
)

const (
	prompt     = "ski> "
	replSource = "<repl>"
)

const replHelp = `Enter an expression to reduce it, or a command:
  f(x, y) = body   define          f = f        delete
  !expr            last step       !N expr      first N steps
  !-N expr         last N steps    ~ … ~~~~ e   remove lambdas
  ? name           show a definition            ?   list all
Session commands:
  /style [ecmascript|lazyk]   /aliases   /reset   /clear   /load <file>   /quit`

func runRepl(cfg config.Config, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Usage: ski repl\n")
		return 2
	}

	s := newSession(cfg)
	out := printer{w: os.Stdout, color: cfg.Color}
	fmtr := diag.NewFormatter(os.Stderr)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer saveHistory(ln, cfg.HistoryFile)
	}

	fmt.Println("ski: type /help for help, /quit to leave")
	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "ski: %v\n", err)
			return 1
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		if strings.HasPrefix(line, "/") {
			if quit := sessionCommand(s, out, fmtr, line); quit {
				return 0
			}
			continue
		}

		cmd, err := parser.ParseCommand(line, parser.WithFilename(replSource))
		if err != nil {
			fmtr.AddSource(replSource, line)
			report(fmtr, err)
			continue
		}
		result, err := s.Exec(cmd)
		if err != nil {
			report(fmtr, err)
			continue
		}
		out.output(result)
	}
}

// sessionCommand handles a line starting with `/`. It reports whether the
// REPL should end.
func sessionCommand(s *engine.Session, out printer, fmtr *diag.Formatter, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true

	case "/help":
		fmt.Fprintln(out.w, replHelp)

	case "/style":
		if len(fields) > 1 {
			style, err := expr.ParseDisplayStyle(fields[1])
			if err != nil {
				fmt.Fprintf(os.Stderr, "ski: %v\n", err)
				return false
			}
			s.SetDisplayStyle(style)
		}
		fmt.Fprintf(out.w, "style: %s\n", s.DisplayStyle())

	case "/aliases":
		for _, a := range s.Aliases().Entries() {
			fmt.Fprintf(out.w, "%s = %s\n", a.Name, render.Expr(a.Expr, s.DisplayStyle()))
		}

	case "/reset":
		s.Reset()
		fmt.Fprintln(out.w, "restored the built-in definitions")

	case "/clear":
		s.Clear()
		fmt.Fprintln(out.w, "removed every definition")

	case "/load":
		if len(fields) != 2 {
			fmt.Fprintf(os.Stderr, "Usage: /load <file>\n")
			return false
		}
		if err := execFile(s, out, fmtr, fields[1], false); err != nil {
			report(fmtr, err)
		}

	default:
		fmt.Fprintf(os.Stderr, "unknown session command %s, try /help\n", fields[0])
	}
	return false
}

func saveHistory(ln *liner.State, path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	if f, err := os.Create(path); err == nil {
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}
}

// report prints err as a diagnostic when it carries one.
func report(fmtr *diag.Formatter, err error) {
	var source interface{ ToDiagnostic() diag.Diagnostic }
	if errors.As(err, &source) {
		fmtr.Format(source.ToDiagnostic())
		return
	}
	fmtr.Format(diag.Diagnostic{
		Stage:    diag.StageSession,
		Severity: diag.SeverityError,
		Message:  err.Error(),
	})
}
