package config_test

import (
	"testing"

	"github.com/malphas-lang/ski/internal/config"
	"github.com/malphas-lang/ski/internal/expr"
	"github.com/malphas-lang/ski/internal/reduce"
	"github.com/malphas-lang/ski/internal/unlambda"
)

func TestLoadDefaults(t *testing.T) {
	for _, name := range []string{
		config.EnvStyle, config.EnvMaxSteps, config.EnvExpandLimit, config.EnvStrategy,
		config.EnvRate, config.EnvVerbose,
	} {
		t.Setenv(name, "")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Style != expr.EcmaScript || cfg.MaxSteps != reduce.DefaultMaxSteps {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.ExpandLimit != unlambda.DefaultLimit || cfg.Strategy != unlambda.SKI {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Verbose {
		t.Fatalf("verbose must be off by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(config.EnvStyle, "lazyk")
	t.Setenv(config.EnvMaxSteps, "50")
	t.Setenv(config.EnvExpandLimit, "20")
	t.Setenv(config.EnvStrategy, "sk")
	t.Setenv(config.EnvRate, "10")
	t.Setenv(config.EnvVerbose, "1")
	t.Setenv(config.EnvHistory, "/tmp/ski-history")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Style != expr.LazyK || cfg.MaxSteps != 50 || cfg.ExpandLimit != 20 || cfg.Rate != 10 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Strategy != unlambda.SK || !cfg.Verbose || cfg.HistoryFile != "/tmp/ski-history" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv(config.EnvStyle, "cobol")
	if _, err := config.Load(); err == nil {
		t.Fatalf("expected an error for an unknown style")
	}

	t.Setenv(config.EnvStyle, "")
	t.Setenv(config.EnvMaxSteps, "-3")
	if _, err := config.Load(); err == nil {
		t.Fatalf("expected an error for a negative step limit")
	}
}
