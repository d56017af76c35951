package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultShards = 1
const defaultDisplayPrecision = 4

// Config carries the engine's runtime options. Defaults are overridden by
// an optional YAML file named in ENGINE_CONFIG, and individual environment
// variables win over both.
type Config struct {
	// Shards is the number of independent ledger workers. Records are
	// partitioned by client id, so any value >= 1 produces the same report.
	Shards int `yaml:"shards"`
	// DisplayPrecision is the number of fractional digits in the report.
	DisplayPrecision int `yaml:"displayPrecision"`
}

func Load() (Config, error) {
	cfg := Config{
		Shards:           defaultShards,
		DisplayPrecision: defaultDisplayPrecision,
	}

	if path := strings.TrimSpace(os.Getenv("ENGINE_CONFIG")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if raw := strings.TrimSpace(os.Getenv("ENGINE_SHARDS")); raw != "" {
		shards, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: ENGINE_SHARDS: %w", err)
		}
		cfg.Shards = shards
	}

	if raw := strings.TrimSpace(os.Getenv("ENGINE_DISPLAY_PRECISION")); raw != "" {
		precision, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: ENGINE_DISPLAY_PRECISION: %w", err)
		}
		cfg.DisplayPrecision = precision
	}

	if cfg.Shards < 1 {
		return Config{}, fmt.Errorf("config: shards must be at least 1, got %d", cfg.Shards)
	}
	if cfg.DisplayPrecision < 0 {
		return Config{}, fmt.Errorf("config: displayPrecision must not be negative, got %d", cfg.DisplayPrecision)
	}

	return cfg, nil
}
