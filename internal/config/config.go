package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pable/go-hoops-metrics/internal/aggregator"
	"github.com/pable/go-hoops-metrics/internal/milestone"
)

type Config struct {
	Analysis       AnalysisConfig   `yaml:"analysis"`
	MilestoneRules []milestone.Rule `yaml:"milestone_rules"` // replaces the built-in table when set
}

type AnalysisConfig struct {
	RunMinPoints    int     `yaml:"run_min_points"`
	StreakMinPoints int     `yaml:"streak_min_points"`
	ClutchMinutes   float64 `yaml:"clutch_minutes"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			RunMinPoints:    aggregator.DefaultRunMinPoints,
			StreakMinPoints: aggregator.DefaultStreakMinPoints,
			ClutchMinutes:   aggregator.DefaultClutchMinutes,
		},
		MilestoneRules: milestone.DefaultRules(),
	}
}

// Load reads a YAML config file over the defaults. Keys missing from the file
// keep their default values.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if file.Analysis.RunMinPoints != 0 {
		cfg.Analysis.RunMinPoints = file.Analysis.RunMinPoints
	}
	if file.Analysis.StreakMinPoints != 0 {
		cfg.Analysis.StreakMinPoints = file.Analysis.StreakMinPoints
	}
	if file.Analysis.ClutchMinutes != 0 {
		cfg.Analysis.ClutchMinutes = file.Analysis.ClutchMinutes
	}
	if len(file.MilestoneRules) > 0 {
		cfg.MilestoneRules = file.MilestoneRules
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate rejects negative thresholds and malformed milestone rules.
func (c *Config) Validate() error {
	if c.Analysis.RunMinPoints < 0 {
		return fmt.Errorf("run_min_points must be >= 0, got %d", c.Analysis.RunMinPoints)
	}
	if c.Analysis.StreakMinPoints < 0 {
		return fmt.Errorf("streak_min_points must be >= 0, got %d", c.Analysis.StreakMinPoints)
	}
	if c.Analysis.ClutchMinutes < 0 {
		return fmt.Errorf("clutch_minutes must be >= 0, got %g", c.Analysis.ClutchMinutes)
	}
	return milestone.Validate(c.MilestoneRules)
}

// Options converts the config into analysis options.
func (c *Config) Options() aggregator.Options {
	return aggregator.Options{
		RunMinPoints:    c.Analysis.RunMinPoints,
		StreakMinPoints: c.Analysis.StreakMinPoints,
		ClutchMinutes:   c.Analysis.ClutchMinutes,
		Rules:           c.MilestoneRules,
	}
}
