package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/binpack/internal/experiment"
	"github.com/eugenenazirov/binpack/internal/packing"
)

const (
	defaultPort           = "8080"
	defaultRateLimitRPS   = 25.0
	defaultRateLimitBurst = 50
	defaultLogLevel       = "info"
)

var defaultInstanceFiles = []string{
	"instances/binpack1.txt", "instances/binpack2.txt", "instances/binpack3.txt", "instances/binpack4.txt",
	"instances/binpack5.txt", "instances/binpack6.txt", "instances/binpack7.txt", "instances/binpack8.txt",
}

// Config aggregates runtime configuration resolved from multiple sources.
// Precedence: CLI flags > YAML config > Environment variables > Defaults
type Config struct {
	InstanceFiles        []string
	Heuristics           []string
	OutputFormat         string
	Summary              bool
	DatabaseURL          string
	LogLevel             string
	Port                 string
	ShutdownGracePeriod  time.Duration
	ReadHeaderTimeout    time.Duration
	WriteTimeout         time.Duration
	IdleTimeout          time.Duration
	EnableRequestLogging bool
	RateLimitRPS         float64
	RateLimitBurst       int
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	InstanceFiles        []string      `yaml:"instance_files"`
	Heuristics           []string      `yaml:"heuristics"`
	OutputFormat         string        `yaml:"output_format"`
	Summary              *bool         `yaml:"summary"`
	DatabaseURL          string        `yaml:"database_url"`
	LogLevel             string        `yaml:"log_level"`
	Port                 string        `yaml:"port"`
	ShutdownGracePeriod  string        `yaml:"shutdown_grace_period"`
	ReadHeaderTimeout    string        `yaml:"read_header_timeout"`
	WriteTimeout         string        `yaml:"write_timeout"`
	IdleTimeout          string        `yaml:"idle_timeout"`
	EnableRequestLogging *bool         `yaml:"enable_request_logging"`
	RateLimit            yamlRateLimit `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	RPS   *float64 `yaml:"rps"`
	Burst *int     `yaml:"burst"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile     string
	InstanceFiles  []string
	Heuristics     []string
	OutputFormat   *string
	Summary        *bool
	DatabaseURL    *string
	LogLevel       *string
	Port           *string
	RateLimitRPS   *float64
	RateLimitBurst *int
}

// Load extracts configuration from multiple sources with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	cfg := defaultConfig()

	// Apply environment variables (overridden by YAML)
	applyEnvConfig(&cfg)

	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(&cfg, yamlCfg)
	}

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(&cfg, overrides)
	}

	cfg.Heuristics = lo.Uniq(cfg.Heuristics)

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// defaultConfig returns a Config with default values.
func defaultConfig() Config {
	return Config{
		InstanceFiles:        append([]string(nil), defaultInstanceFiles...),
		Heuristics:           []string{packing.FirstFitName, packing.FirstFitDescendingName},
		OutputFormat:         experiment.FormatTSV,
		LogLevel:             defaultLogLevel,
		Port:                 defaultPort,
		ShutdownGracePeriod:  10 * time.Second,
		ReadHeaderTimeout:    5 * time.Second,
		WriteTimeout:         15 * time.Second,
		IdleTimeout:          60 * time.Second,
		EnableRequestLogging: true,
		RateLimitRPS:         defaultRateLimitRPS,
		RateLimitBurst:       defaultRateLimitBurst,
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the Config struct.
func applyYAMLConfig(cfg *Config, yamlCfg *yamlConfig) {
	if len(yamlCfg.InstanceFiles) > 0 {
		cfg.InstanceFiles = yamlCfg.InstanceFiles
	}
	if len(yamlCfg.Heuristics) > 0 {
		cfg.Heuristics = yamlCfg.Heuristics
	}
	if yamlCfg.OutputFormat != "" {
		cfg.OutputFormat = yamlCfg.OutputFormat
	}
	if yamlCfg.Summary != nil {
		cfg.Summary = *yamlCfg.Summary
	}
	if yamlCfg.DatabaseURL != "" {
		cfg.DatabaseURL = yamlCfg.DatabaseURL
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.Port != "" {
		cfg.Port = yamlCfg.Port
	}

	applyDuration(&cfg.ShutdownGracePeriod, yamlCfg.ShutdownGracePeriod)
	applyDuration(&cfg.ReadHeaderTimeout, yamlCfg.ReadHeaderTimeout)
	applyDuration(&cfg.WriteTimeout, yamlCfg.WriteTimeout)
	applyDuration(&cfg.IdleTimeout, yamlCfg.IdleTimeout)

	if yamlCfg.EnableRequestLogging != nil {
		cfg.EnableRequestLogging = *yamlCfg.EnableRequestLogging
	}
	if yamlCfg.RateLimit.RPS != nil && *yamlCfg.RateLimit.RPS >= 0 {
		cfg.RateLimitRPS = *yamlCfg.RateLimit.RPS
	}
	if yamlCfg.RateLimit.Burst != nil && *yamlCfg.RateLimit.Burst >= 0 {
		cfg.RateLimitBurst = *yamlCfg.RateLimit.Burst
	}
}

func applyDuration(dst *time.Duration, raw string) {
	if raw == "" {
		return
	}
	if d, err := time.ParseDuration(raw); err == nil {
		*dst = d
	}
}

// applyEnvConfig applies environment variable configuration.
func applyEnvConfig(cfg *Config) {
	if files := parseList(os.Getenv("BINPACK_INSTANCES")); len(files) > 0 {
		cfg.InstanceFiles = files
	}

	if names := parseList(os.Getenv("BINPACK_HEURISTICS")); len(names) > 0 {
		cfg.Heuristics = names
	}

	if format := strings.TrimSpace(os.Getenv("BINPACK_FORMAT")); format != "" {
		cfg.OutputFormat = format
	}

	if url := strings.TrimSpace(os.Getenv("DATABASE_URL")); url != "" {
		cfg.DatabaseURL = url
	}

	if level := strings.TrimSpace(os.Getenv("LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Port = port
	}

	if rps := strings.TrimSpace(os.Getenv("RATE_LIMIT_RPS")); rps != "" {
		if value, err := strconv.ParseFloat(rps, 64); err == nil && value >= 0 {
			cfg.RateLimitRPS = value
		}
	}

	if burst := strings.TrimSpace(os.Getenv("RATE_LIMIT_BURST")); burst != "" {
		if value, err := strconv.Atoi(burst); err == nil && value >= 0 {
			cfg.RateLimitBurst = value
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(cfg *Config, overrides *CLIOverrides) {
	if len(overrides.InstanceFiles) > 0 {
		cfg.InstanceFiles = overrides.InstanceFiles
	}
	if len(overrides.Heuristics) > 0 {
		cfg.Heuristics = overrides.Heuristics
	}
	if overrides.OutputFormat != nil && *overrides.OutputFormat != "" {
		cfg.OutputFormat = *overrides.OutputFormat
	}
	if overrides.Summary != nil {
		cfg.Summary = *overrides.Summary
	}
	if overrides.DatabaseURL != nil && *overrides.DatabaseURL != "" {
		cfg.DatabaseURL = *overrides.DatabaseURL
	}
	if overrides.LogLevel != nil && *overrides.LogLevel != "" {
		cfg.LogLevel = *overrides.LogLevel
	}
	if overrides.Port != nil && *overrides.Port != "" {
		cfg.Port = *overrides.Port
	}
	if overrides.RateLimitRPS != nil && *overrides.RateLimitRPS >= 0 {
		cfg.RateLimitRPS = *overrides.RateLimitRPS
	}
	if overrides.RateLimitBurst != nil && *overrides.RateLimitBurst >= 0 {
		cfg.RateLimitBurst = *overrides.RateLimitBurst
	}
}

// validateConfig validates the final configuration.
func validateConfig(cfg Config) error {
	if cfg.RateLimitRPS < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be >= 0")
	}
	if cfg.RateLimitBurst < 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be >= 0")
	}
	if len(cfg.Heuristics) == 0 {
		return fmt.Errorf("at least one heuristic is required")
	}
	if _, err := packing.LookupAll(cfg.Heuristics); err != nil {
		return err
	}
	switch strings.ToLower(cfg.OutputFormat) {
	case experiment.FormatTSV, experiment.FormatCSV, experiment.FormatJSON:
	default:
		return fmt.Errorf("%w, got %q", experiment.ErrUnknownFormat, cfg.OutputFormat)
	}
	return nil
}

// parseList splits a comma-separated value, dropping blank entries.
func parseList(raw string) []string {
	parts := lo.Map(strings.Split(raw, ","), func(part string, _ int) string {
		return strings.TrimSpace(part)
	})
	return lo.Compact(parts)
}
