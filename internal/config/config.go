// Package config resolves the engine configuration from defaults, an
// optional YAML file, and environment overrides, in that order. CLI flags
// sit on top of all three.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every knob a run can set.
type Config struct {
	// MaxDepth bounds the transform chain length.
	MaxDepth int `yaml:"max_depth"`
	// TimeBudget bounds the wall time of a run.
	TimeBudget time.Duration `yaml:"time_budget"`
	// Workers is the concurrent expansion goroutine count; zero picks a
	// CPU-based default.
	Workers int `yaml:"workers"`
	// Sensitivity tunes the statistical recognizers: low, medium, or high.
	Sensitivity string `yaml:"sensitivity"`
	// ConfidenceThreshold is the minimum confidence for a result.
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	// TopResults is how many distinct plaintexts to collect before
	// stopping. -1 collects every passing result until exhaustion or
	// the time budget.
	TopResults int `yaml:"top_results"`
	// WordlistPath enables exact-match recognition against a file of
	// expected plaintexts, one per line.
	WordlistPath string `yaml:"wordlist"`
	// Regex, when set, replaces the whole recognizer pipeline with a
	// single expression match.
	Regex string `yaml:"regex"`
	// EnableClassifier adds the heavyweight ensemble recognizer.
	EnableClassifier bool `yaml:"enable_classifier"`
	// HumanVerify asks the operator to confirm each result interactively.
	HumanVerify bool `yaml:"human_verify"`
	// CacheCapacity sizes the in-memory transform cache.
	CacheCapacity int `yaml:"cache_capacity"`
	// RedisAddr, when set, backs the transform cache with Redis instead
	// of the in-memory store.
	RedisAddr string `yaml:"redis_addr"`
	// RedisTTL expires Redis cache entries; zero keeps them forever.
	RedisTTL time.Duration `yaml:"redis_ttl"`
	// Verbose enables debug-level event logging.
	Verbose bool `yaml:"verbose"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		MaxDepth:            6,
		TimeBudget:          5 * time.Second,
		Sensitivity:         "medium",
		ConfidenceThreshold: 0.6,
		TopResults:          1,
		CacheCapacity:       4096,
	}
}

// Load resolves the configuration. When path is empty only defaults and
// environment overrides apply; otherwise the file must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config YAML: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays DECIPHER_* environment variables.
func (c *Config) applyEnv() error {
	if v := os.Getenv("DECIPHER_MAX_DEPTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DECIPHER_MAX_DEPTH: %w", err)
		}
		c.MaxDepth = n
	}
	if v := os.Getenv("DECIPHER_TIME_BUDGET"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse DECIPHER_TIME_BUDGET: %w", err)
		}
		c.TimeBudget = d
	}
	if v := os.Getenv("DECIPHER_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DECIPHER_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("DECIPHER_SENSITIVITY"); v != "" {
		c.Sensitivity = v
	}
	if v := os.Getenv("DECIPHER_WORDLIST"); v != "" {
		c.WordlistPath = v
	}
	if v := os.Getenv("DECIPHER_REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	return nil
}

// Validate checks the configuration for values the engine would reject.
func (c Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.TimeBudget <= 0 {
		return fmt.Errorf("time_budget must be positive, got %s", c.TimeBudget)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}
	switch c.Sensitivity {
	case "", "low", "medium", "high":
	default:
		return fmt.Errorf("sensitivity must be low, medium, or high, got %q", c.Sensitivity)
	}
	if c.ConfidenceThreshold < 0 || c.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence_threshold must be in [0,1], got %g", c.ConfidenceThreshold)
	}
	if c.TopResults < 1 && c.TopResults != -1 {
		return fmt.Errorf("top_results must be at least 1, or -1 for all results, got %d", c.TopResults)
	}
	if c.CacheCapacity < 1 {
		return fmt.Errorf("cache_capacity must be at least 1, got %d", c.CacheCapacity)
	}
	return nil
}
