// Package config loads the optional diagnose.yaml sidecar that sets
// defaults for cmd/diagnose, following the same "defaults struct plus
// functional options" shape builder.newBuilderConfig uses for graph
// constructors, but loaded from YAML instead of applied in code, since
// the CLI surface (a SPEC_FULL.md addition absent from the teacher) needs
// a file a user can edit between runs rather than a Go call site.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrMalformedConfig is returned when diagnose.yaml exists but fails to
// parse or carries an unrecognized log level.
var ErrMalformedConfig = errors.New("config: malformed configuration")

// Config holds the tunable defaults for a diagnose run. Every field has a
// zero-value-safe default applied by Load, so an absent or empty file
// yields the same behavior as no config at all.
type Config struct {
	ShowCycleGraphs bool   `yaml:"show_cycle_graphs"`
	LogLevel        string `yaml:"log_level"`
	Full            bool   `yaml:"full"`
}

// Option mutates a Config after defaults and file contents have both been
// applied; cmd/diagnose uses this to layer CLI flag overrides on top.
type Option func(*Config)

// WithShowCycleGraphs overrides ShowCycleGraphs when present, set is true.
func WithShowCycleGraphs(show bool, set bool) Option {
	return func(c *Config) {
		if set {
			c.ShowCycleGraphs = show
		}
	}
}

// WithLogLevel overrides LogLevel when level is non-empty.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		if level != "" {
			c.LogLevel = level
		}
	}
}

// WithFull overrides Full when present, set is true.
func WithFull(full bool, set bool) Option {
	return func(c *Config) {
		if set {
			c.Full = full
		}
	}
}

func defaults() Config {
	return Config{
		ShowCycleGraphs: false,
		LogLevel:        "info",
		Full:            false,
	}
}

// Load reads path if it exists, overlays it on the package defaults, and
// applies opts in order. A missing file is not an error: Load returns
// defaults with opts applied. An existing-but-unparseable file, or one
// naming an unrecognized log level, is.
func Load(path string, opts ...Option) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if uerr := yaml.Unmarshal(data, &cfg); uerr != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, uerr)
			}
		case os.IsNotExist(err):
			// no sidecar file: defaults stand
		default:
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedConfig, path, err)
		}
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if !validLevel(cfg.LogLevel) {
		return nil, fmt.Errorf("%w: unrecognized log_level %q", ErrMalformedConfig, cfg.LogLevel)
	}

	return &cfg, nil
}

func validLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
