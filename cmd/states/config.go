package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config controls the demo run.
type Config struct {
	TTL        time.Duration `yaml:"ttl"`
	Wait       time.Duration `yaml:"wait"`
	FetchDelay time.Duration `yaml:"fetch_delay"`
	Verbose    bool          `yaml:"verbose"`
}

func defaultConfig() Config {
	return Config{
		TTL:        5 * time.Second,
		Wait:       7 * time.Second,
		FetchDelay: time.Second,
	}
}

// loadConfig reads YAML file on top of defaults, empty path returns defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}

	if cfg.TTL <= 0 {
		return cfg, fmt.Errorf("invalid ttl %s: must be positive", cfg.TTL)
	}

	return cfg, nil
}
