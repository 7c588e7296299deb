package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if ROLLCALL_CONFIG is set
//  3. env (prefix ROLLCALL_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("ROLLCALL_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: ROLLCALL_DIRECTORY_PATH, ROLLCALL_TIMEZONE, ...
	// Map env keys like ROLLCALL_EVENT_LOG_PATH -> event_log_path (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("ROLLCALL_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rollcall_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Location resolves the configured timezone name.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %w", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) validate() error {
	switch {
	case c.DirectoryPath == "":
		return fmt.Errorf("%w: directory_path must not be empty", ErrInvalidConfig)
	case c.EventLogPath == "":
		return fmt.Errorf("%w: event_log_path must not be empty", ErrInvalidConfig)
	case c.ServiceLogPath == "":
		return fmt.Errorf("%w: service_log_path must not be empty", ErrInvalidConfig)
	case c.ActiveThreshold > c.CoreThreshold:
		return fmt.Errorf("%w: active_threshold must not exceed core_threshold", ErrInvalidConfig)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}
