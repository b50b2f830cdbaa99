package main

import (
	"fmt"
	"os"

	"github.com/malphas-lang/ski/internal/config"
	"github.com/malphas-lang/ski/internal/server"
)

func runServe(cfg config.Config, args []string) int {
	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Usage: ski serve\n")
		return 2
	}

	srv := server.NewServer(os.Stdin, os.Stdout, newSession(cfg))
	if cfg.Verbose {
		srv.SetLogger(newLogger())
	}
	if err := srv.Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		return 1
	}
	return 0
}
