// Package config loads the planner service settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"dubins-planner/planner"
	"dubins-planner/scenario"
)

var ErrInvalid = errors.New("invalid configuration")

// RateLimit is a token bucket shared by all clients
type RateLimit struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// Config is the service configuration
type Config struct {
	Addr string `yaml:"addr"`
	// Strategy is the planner used when a request does not name one
	Strategy string `yaml:"strategy"`
	// Budget bounds each planning request; zero waits for the planner
	Budget    time.Duration    `yaml:"budget"`
	Planner   planner.Config   `yaml:"planner"`
	Scenario  scenario.Options `yaml:"scenario"`
	RateLimit RateLimit        `yaml:"rate_limit"`
}

// Default returns the settings used when no file is given
func Default() Config {
	return Config{
		Addr:      ":8080",
		Strategy:  planner.StrategyGrid,
		Budget:    5 * time.Second,
		Planner:   planner.DefaultConfig(),
		RateLimit: RateLimit{PerSecond: 20, Burst: 40},
	}
}

// Load reads path on top of the defaults. An empty path returns Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first unusable setting
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: empty listen address", ErrInvalid)
	}
	if _, err := planner.New(c.Strategy, c.Planner, nil); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Planner.Validate(); err != nil {
		return fmt.Errorf("%w: planner: %v", ErrInvalid, err)
	}
	if c.Budget < 0 {
		return fmt.Errorf("%w: negative budget %s", ErrInvalid, c.Budget)
	}
	if c.RateLimit.PerSecond < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("%w: rate limit must not be negative", ErrInvalid)
	}
	if c.Scenario.SimplifyEpsilon < 0 {
		return fmt.Errorf("%w: negative simplify epsilon", ErrInvalid)
	}
	return nil
}
