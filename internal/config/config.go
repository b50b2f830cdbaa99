// Package config reads the workbench's settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xyproto/env/v2"

	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/reduce"
	"github.com/malphas-lang/ski/internal/unlambda"
)

// Environment variables.
const (
	EnvStyle       = "SKI_STYLE"
	EnvMaxSteps    = "SKI_MAX_STEPS"
	EnvExpandLimit = "SKI_EXPAND_LIMIT"
	EnvStrategy    = "SKI_STRATEGY"
	EnvHistory     = "SKI_HISTORY"
	EnvRate        = "SKI_RATE"
	EnvVerbose     = "SKI_VERBOSE"
	EnvNoColor     = "NO_COLOR"
)

// DefaultRate is the number of steps per second an animated trace shows.
const DefaultRate = 4

// Config holds the settings shared by every front end.
type Config struct {
	Style       expr.DisplayStyle
	MaxSteps    int
	ExpandLimit int
	Strategy    unlambda.Strategy
	HistoryFile string
	Rate        int
	Verbose     bool
	Color       bool
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Style:       expr.EcmaScript,
		MaxSteps:    reduce.DefaultMaxSteps,
		ExpandLimit: unlambda.DefaultLimit,
		Strategy:    unlambda.SKI,
		HistoryFile: defaultHistoryFile(),
		Rate:        DefaultRate,
		Color:       true,
	}
}

// Load reads the environment on top of Default. Malformed values are
// reported rather than silently replaced.
func Load() (Config, error) {
	// env caches the environment on first lookup.
	env.Load()
	cfg := Default()

	if name := env.Str(EnvStyle); name != "" {
		style, err := expr.ParseDisplayStyle(name)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvStyle, err)
		}
		cfg.Style = style
	}
	if name := env.Str(EnvStrategy); name != "" {
		strategy, err := unlambda.ParseStrategy(name)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvStrategy, err)
		}
		cfg.Strategy = strategy
	}

	cfg.MaxSteps = env.Int(EnvMaxSteps, cfg.MaxSteps)
	cfg.ExpandLimit = env.Int(EnvExpandLimit, cfg.ExpandLimit)
	cfg.Rate = env.Int(EnvRate, cfg.Rate)
	cfg.HistoryFile = env.Str(EnvHistory, cfg.HistoryFile)
	cfg.Verbose = env.Bool(EnvVerbose)
	cfg.Color = !env.Has(EnvNoColor)

	if cfg.MaxSteps <= 0 {
		return cfg, fmt.Errorf("%s must be positive, got %d", EnvMaxSteps, cfg.MaxSteps)
	}
	if cfg.ExpandLimit <= 0 {
		return cfg, fmt.Errorf("%s must be positive, got %d", EnvExpandLimit, cfg.ExpandLimit)
	}
	if cfg.Rate <= 0 {
		return cfg, fmt.Errorf("%s must be positive, got %d", EnvRate, cfg.Rate)
	}
	return cfg, nil
}

func defaultHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ski", "history")
}
