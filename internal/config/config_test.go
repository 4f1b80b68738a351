package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/eugenenazirov/binpack/internal/experiment"
	"github.com/eugenenazirov/binpack/internal/packing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"BINPACK_INSTANCES", "BINPACK_HEURISTICS", "BINPACK_FORMAT", "DATABASE_URL", "LOG_LEVEL", "PORT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if !slices.Equal(cfg.InstanceFiles, defaultInstanceFiles) {
		t.Fatalf("unexpected instance files: %v", cfg.InstanceFiles)
	}
	if want := []string{packing.FirstFitName, packing.FirstFitDescendingName}; !slices.Equal(cfg.Heuristics, want) {
		t.Fatalf("expected heuristics %v, got %v", want, cfg.Heuristics)
	}
	if cfg.OutputFormat != experiment.FormatTSV || cfg.LogLevel != defaultLogLevel {
		t.Fatalf("unexpected format/level: %s/%s", cfg.OutputFormat, cfg.LogLevel)
	}
	if cfg.ShutdownGracePeriod != 10*time.Second {
		t.Fatalf("unexpected shutdown grace period: %s", cfg.ShutdownGracePeriod)
	}
}

func TestLoadEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("BINPACK_INSTANCES", "a.txt, b.txt ,")
	t.Setenv("BINPACK_HEURISTICS", "bf,bfd")
	t.Setenv("PORT", "9000")
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")

	cfg, err := Load(&CLIOverrides{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if !slices.Equal(cfg.InstanceFiles, []string{"a.txt", "b.txt"}) {
		t.Fatalf("unexpected instance files: %v", cfg.InstanceFiles)
	}
	if !slices.Equal(cfg.Heuristics, []string{"bf", "bfd"}) {
		t.Fatalf("unexpected heuristics: %v", cfg.Heuristics)
	}
	if cfg.Port != "9000" {
		t.Fatalf("expected overridden port, got %s", cfg.Port)
	}
	if cfg.RateLimitRPS != defaultRateLimitRPS {
		t.Fatalf("expected invalid RPS to be ignored, got %v", cfg.RateLimitRPS)
	}
}

func TestLoadPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "7000")
	t.Setenv("LOG_LEVEL", "warn")

	path := filepath.Join(t.TempDir(), "binpack.yaml")
	yamlDoc := `
port: "7100"
heuristics: [best-fit]
output_format: csv
summary: true
shutdown_grace_period: 3s
enable_request_logging: false
rate_limit:
  rps: 0
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	format := "json"
	cfg, err := Load(&CLIOverrides{
		ConfigFile:   path,
		Heuristics:   []string{"ffd", "ffd", "bfd"},
		OutputFormat: &format,
	})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "7100" {
		t.Fatalf("expected YAML port to beat env, got %s", cfg.Port)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected env log level, got %s", cfg.LogLevel)
	}
	if !slices.Equal(cfg.Heuristics, []string{"ffd", "bfd"}) {
		t.Fatalf("expected deduplicated CLI heuristics, got %v", cfg.Heuristics)
	}
	if cfg.OutputFormat != "json" || !cfg.Summary {
		t.Fatalf("unexpected format/summary: %s/%v", cfg.OutputFormat, cfg.Summary)
	}
	if cfg.ShutdownGracePeriod != 3*time.Second || cfg.EnableRequestLogging {
		t.Fatalf("unexpected YAML durations/logging: %s/%v", cfg.ShutdownGracePeriod, cfg.EnableRequestLogging)
	}
	if cfg.RateLimitRPS != 0 || cfg.RateLimitBurst != defaultRateLimitBurst {
		t.Fatalf("unexpected rate limit: %v/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
}

func TestLoadRejectsInvalidSettings(t *testing.T) {
	clearEnv(t)

	if _, err := Load(&CLIOverrides{Heuristics: []string{"worst-fit"}}); !errors.Is(err, packing.ErrUnknownHeuristic) {
		t.Fatalf("expected ErrUnknownHeuristic, got %v", err)
	}

	format := "xml"
	if _, err := Load(&CLIOverrides{OutputFormat: &format}); !errors.Is(err, experiment.ErrUnknownFormat) {
		t.Fatalf("expected ErrUnknownFormat, got %v", err)
	}

	if _, err := Load(&CLIOverrides{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")}); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

func TestParseList(t *testing.T) {
	if got := parseList(" , "); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
	if got := parseList("x,y"); !slices.Equal(got, []string{"x", "y"}) {
		t.Fatalf("unexpected list: %v", got)
	}
}
