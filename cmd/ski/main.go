package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/malphas-lang/ski/internal/config"
	"github.com/malphas-lang/ski/internal/engine"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ski [command] [options]\n")
		fmt.Fprintf(os.Stderr, "\nCommands:\n")
		fmt.Fprintf(os.Stderr, "  repl                  Start an interactive session (default)\n")
		fmt.Fprintf(os.Stderr, "  run <file>            Run every command in a script\n")
		fmt.Fprintf(os.Stderr, "  serve                 Serve a session over JSON-RPC on stdio\n")
		fmt.Fprintf(os.Stderr, "  fmt [-style] <file>   Reprint a script in one syntax\n")
		fmt.Fprintf(os.Stderr, "  trace [-rate] <expr>  Animate a reduction step by step\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %s, %s, %s, %s,\n", config.EnvStyle, config.EnvMaxSteps, config.EnvExpandLimit, config.EnvStrategy)
		fmt.Fprintf(os.Stderr, "  %s, %s, %s, %s\n", config.EnvHistory, config.EnvRate, config.EnvVerbose, config.EnvNoColor)
	}

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ski: %v\n", err)
		os.Exit(2)
	}

	command := "repl"
	var args []string
	if flag.NArg() > 0 {
		command = flag.Arg(0)
		args = flag.Args()[1:]
	}

	var code int
	switch command {
	case "repl":
		code = runRepl(cfg, args)
	case "run":
		code = runScript(cfg, args)
	case "serve":
		code = runServe(cfg, args)
	case "fmt":
		code = runFmt(cfg, args)
	case "trace":
		code = runTrace(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		flag.Usage()
		code = 2
	}
	os.Exit(code)
}

func newSession(cfg config.Config) *engine.Session {
	s := engine.NewSession(nil, engine.Options{
		Style:       cfg.Style,
		MaxSteps:    cfg.MaxSteps,
		ExpandLimit: cfg.ExpandLimit,
		Strategy:    cfg.Strategy,
	})
	if cfg.Verbose {
		s.SetLogger(newLogger())
	}
	return s
}

func newLogger() *log.Logger {
	return log.New(os.Stderr, "ski: ", log.Lmsgprefix)
}
