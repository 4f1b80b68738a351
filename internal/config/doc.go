// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > YAML config >
// Environment variables > Defaults. It covers both the experiment run (instance
// files, heuristics, report format) and the HTTP service settings.
package config
