package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/time/rate"

	"github.com/malphas-lang/ski/internal/config"
	"github.com/malphas-lang/ski/internal/diag"
	"github.com/malphas-lang/ski/internal/engine"
	"github.com/malphas-lang/ski/internal/parser"
	"github.com/malphas-lang/ski/internal/reduce"
)

const traceSource = "<trace>"

func runTrace(cfg config.Config, args []string) int {
	fs := flag.NewFlagSet("trace", flag.ContinueOnError)
	steps := fs.Int("rate", cfg.Rate, "steps per second")
	limit := fs.Int("max", cfg.MaxSteps, "stop after this many steps")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 || *steps <= 0 {
		fmt.Fprintf(os.Stderr, "Usage: ski trace [-rate N] [-max N] <expr>\n")
		return 2
	}

	src := strings.Join(fs.Args(), " ")
	fmtr := diag.NewFormatter(os.Stderr)
	e, err := parser.ParseExpr(src, parser.WithFilename(traceSource))
	if err != nil {
		fmtr.AddSource(traceSource, src)
		report(fmtr, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := newSession(cfg)
	r := s.Reducer(e)
	out := printer{w: os.Stdout, color: cfg.Color}
	limiter := rate.NewLimiter(rate.Limit(*steps), 1)

	out.output(engine.Output{Lines: []engine.Line{engine.ExprLine(r.Formed())}})
	for step, err := range reduce.Steps(ctx, r, limiter) {
		if err != nil {
			fmt.Fprintln(out.w, out.paint(colorNotice, "(interrupted)"))
			return 130
		}
		out.output(engine.Output{Lines: []engine.Line{engine.StepLine(step)}})
		if step.Step >= *limit && r.HasNext() {
			out.output(engine.Output{Lines: []engine.Line{{Kind: engine.LineEllipsis}}, Truncated: true})
			return 0
		}
	}
	return 0
}
