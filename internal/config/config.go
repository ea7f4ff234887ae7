package config

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration values
type Config struct {
	SeedPath   string `yaml:"seed_path"`
	OutputPath string `yaml:"output_path"`
	RulesPath  string `yaml:"rules_path"`
	Backup     bool   `yaml:"backup"`
	LogLevel   string `yaml:"log_level"`

	SeedPathSource string // where SeedPath was set from: "default", "yaml file", or "env var"
}

// Load loads configuration from YAML file and overrides with env vars if present
func Load(path string) (*Config, error) {
	// Defaults
	cfg := &Config{
		SeedPath:       "./database/seed_data.sql",
		SeedPathSource: "default",
		Backup:         true,
		LogLevel:       "info",
	}

	// Load from YAML if file exists
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		prevSeedPath := cfg.SeedPath
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(cfg); err != nil {
			return nil, err
		}
		if cfg.SeedPath != prevSeedPath {
			cfg.SeedPathSource = "yaml file"
		}
	}

	// Override with environment variables
	if v := os.Getenv("SEED_PATH"); v != "" {
		cfg.SeedPath = v
		cfg.SeedPathSource = "env var"
	}
	if v := os.Getenv("OUTPUT_PATH"); v != "" {
		cfg.OutputPath = v
	}
	if v := os.Getenv("RULES_PATH"); v != "" {
		cfg.RulesPath = v
	}
	if v := os.Getenv("SEED_BACKUP"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("SEED_BACKUP: %w", err)
		}
		cfg.Backup = b
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	// Output defaults to rewriting the seed file in place
	if cfg.OutputPath == "" {
		cfg.OutputPath = cfg.SeedPath
	}

	if _, err := cfg.Level(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Level parses LogLevel into a zap level.
func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
