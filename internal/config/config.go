// Package config loads the server configuration: defaults, then an
// optional YAML file, then REMINDERS_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Log        LogConfig        `koanf:"log"`
	Pagination PaginationConfig `koanf:"pagination"`
	Access     AccessConfig     `koanf:"access"`
}

type LogConfig struct {
	Level string `koanf:"level"` // trace, debug, info, warn, error
	File  string `koanf:"file"`  // empty means stderr
}

type PaginationConfig struct {
	// DefaultLimit caps list-returning tools when the caller passes no
	// limit. Zero or negative means unlimited.
	DefaultLimit int `koanf:"default_limit"`
}

type AccessConfig struct {
	// RequestOnStart asks for Reminders access before serving so the
	// permission dialog appears at launch rather than on the first
	// tool call.
	RequestOnStart bool `koanf:"request_on_start"`
}

func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	// Double underscore separates nesting levels so keys like
	// default_limit survive: REMINDERS_LOG__LEVEL=debug maps to
	// log.level, REMINDERS_PAGINATION__DEFAULT_LIMIT to
	// pagination.default_limit.
	if err := k.Load(env.Provider("REMINDERS_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "REMINDERS_")), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Log.File = expandPath(cfg.Log.File)

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level: %s (supported: trace, debug, info, warn, error)", c.Log.Level)
	}
	return nil
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
