package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/malphas-lang/ski/internal/config"
	"github.com/malphas-lang/ski/internal/diag"
	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/parser"
	"github.com/malphas-lang/ski/internal/render"
)

func runFmt(cfg config.Config, args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	styleName := fs.String("style", cfg.Style.String(), "syntax to print in: ecmascript or lazyk")
	write := fs.Bool("w", false, "write the result back to the file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: ski fmt [-style ecmascript|lazyk] [-w] <file>\n")
		return 2
	}

	style, err := expr.ParseDisplayStyle(*styleName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ski: %v\n", err)
		return 2
	}

	path := fs.Arg(0)
	fmtr := diag.NewFormatter(os.Stderr)
	src, err := fmtr.LoadSource(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ski: %v\n", err)
		return 1
	}

	formatted, err := formatScript(src, path, style)
	if err != nil {
		report(fmtr, err)
		return 1
	}

	if *write {
		if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "ski: %v\n", err)
			return 1
		}
		return 0
	}
	fmt.Print(formatted)
	return 0
}

// formatScript reprints every command of a script in style. Blank lines and
// comments are kept as they are.
func formatScript(src, filename string, style expr.DisplayStyle) (string, error) {
	lines, err := parser.ParseScript(src, parser.WithFilename(filename))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, line := range lines {
		if line.Command == nil {
			b.WriteString(line.Text)
		} else {
			b.WriteString(render.Command(line.Command, style))
		}
		b.WriteByte('\n')
	}
	return b.String(), nil
}
