package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/bay-sim/bay-sim/sim"
	"github.com/bay-sim/bay-sim/sim/policy"
	"github.com/bay-sim/bay-sim/sim/trace"
)

// Config is the full run configuration: defaults, then the YAML file, then
// BAYSIM_* environment variables, then explicitly set flags.
// All fields must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	DimZ     int `yaml:"dim_z"`
	MaxTier  int `yaml:"max_tier"`
	MaxLabel int `yaml:"max_label"` // 0 = (dim_z-1)*max_tier+1

	Episodes   int    `yaml:"episodes" env:"BAYSIM_EPISODES"`
	MaxSteps   int    `yaml:"max_steps" env:"BAYSIM_MAX_STEPS"`
	Workers    int    `yaml:"workers" env:"BAYSIM_WORKERS"`
	Seed       int64  `yaml:"seed" env:"BAYSIM_SEED"`
	Policy     string `yaml:"policy" env:"BAYSIM_POLICY"`
	TraceLevel string `yaml:"trace_level" env:"BAYSIM_TRACE_LEVEL"`

	Rewards sim.Rewards `yaml:"rewards"`
	Log     LogConfig   `yaml:"log"`
}

// LogConfig controls where logrus writes and how the file is rotated.
type LogConfig struct {
	File       string `yaml:"file" env:"BAYSIM_LOG_FILE"`
	MaxSize    int    `yaml:"max_size"` // megabytes
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"` // days
}

// DefaultConfig returns the 3-lane, 4-tier training setup.
func DefaultConfig() Config {
	return Config{
		DimZ:       3,
		MaxTier:    4,
		Episodes:   100,
		MaxSteps:   10000,
		Workers:    1,
		Seed:       42,
		Policy:     "unblock",
		TraceLevel: string(trace.TraceLevelNone),
		Rewards:    sim.DefaultRewards(),
		Log: LogConfig{
			MaxSize:    1,
			MaxBackups: 2,
			MaxAge:     30,
		},
	}
}

// LoadConfig returns DefaultConfig overlaid with the YAML file at path
// (skipped when path is empty) and the environment.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		// Strict field checking: typos must cause errors
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// ResolvedMaxLabel applies the max_label default.
func (c Config) ResolvedMaxLabel() int {
	if c.MaxLabel == 0 {
		return (c.DimZ-1)*c.MaxTier + 1
	}
	return c.MaxLabel
}

// Validate checks the policy name, trace level and episode parameters.
func (c Config) Validate() error {
	if !policy.IsValidPolicy(c.Policy) {
		return fmt.Errorf("unknown policy %q", c.Policy)
	}
	if c.Episodes < 0 {
		return fmt.Errorf("episodes must be non-negative, got %d", c.Episodes)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	return c.RunConfig().Validate()
}

// warnDeadlock logs when no free slot is left for relocations.
func (c Config) warnDeadlock() {
	if maxLabel := c.ResolvedMaxLabel(); maxLabel == c.DimZ*c.MaxTier {
		logrus.Warnf("max_label %d fills the bay completely; episodes can deadlock and end at max_steps", maxLabel)
	}
}

// RunConfig converts the configuration for sim.NewRunner.
func (c Config) RunConfig() sim.RunConfig {
	maxLabel := c.ResolvedMaxLabel()
	return sim.RunConfig{
		EpisodeConfig: sim.EpisodeConfig{
			DimZ:       c.DimZ,
			MaxTier:    c.MaxTier,
			MaxLabel:   maxLabel,
			MaxSteps:   c.MaxSteps,
			Rewards:    c.Rewards,
			TraceLevel: trace.TraceLevel(c.TraceLevel),
		},
		Episodes: c.Episodes,
		Workers:  c.Workers,
		Seed:     c.Seed,
	}
}
