package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kolkov/staticref/internal/staticref/stress"
)

// fileConfig is the on-disk form of a stress configuration.
//
// Example:
//
//	writers: 8
//	readers: 8
//	swaps: 10000
//	timeout: 30s
type fileConfig struct {
	Writers *int    `yaml:"writers"`
	Readers *int    `yaml:"readers"`
	Swaps   *int    `yaml:"swaps"`
	Timeout *string `yaml:"timeout"`
}

// loadConfig reads a YAML stress configuration and applies it on top of
// base. Keys missing from the file keep their base value.
func loadConfig(path string, base stress.Config) (stress.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return parseConfig(data, base)
}

// parseConfig decodes YAML config data on top of base.
func parseConfig(data []byte, base stress.Config) (stress.Config, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return base, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := base
	if fc.Writers != nil {
		cfg.Writers = *fc.Writers
	}
	if fc.Readers != nil {
		cfg.Readers = *fc.Readers
	}
	if fc.Swaps != nil {
		cfg.Swaps = *fc.Swaps
	}
	if fc.Timeout != nil {
		d, err := time.ParseDuration(*fc.Timeout)
		if err != nil {
			return base, fmt.Errorf("failed to parse config timeout %q: %w", *fc.Timeout, err)
		}
		cfg.Timeout = d
	}
	return cfg, nil
}
