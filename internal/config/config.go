package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/ripplepay/ripple/internal/metrics"
)

// FileName is the config file at the data repository root.
const FileName = "ripple.yaml"

// Storage backends.
const (
	BackendCSV    = "csv"
	BackendSQLite = "sqlite"
)

// Environment overrides applied by ApplyEnv.
const (
	EnvMonthlyBudget    = "RIPPLE_MONTHLY_BUDGET"
	EnvDailySavingGoal  = "RIPPLE_DAILY_SAVING_GOAL"
	EnvStressThreshold  = "RIPPLE_STRESS_THRESHOLD"
	EnvSavingMultiplier = "RIPPLE_SAVING_MULTIPLIER"
	EnvStorageBackend   = "RIPPLE_STORAGE_BACKEND"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the top-level ripple.yaml configuration.
type Config struct {
	Profile ProfileConfig `yaml:"profile"`
	Display DisplayConfig `yaml:"display"`
	Storage StorageConfig `yaml:"storage"`
	Git     GitConfig     `yaml:"git"`
}

// ProfileConfig holds the user's budget parameters.
type ProfileConfig struct {
	MonthlyBudget    float64 `yaml:"monthly_budget"`
	DailySavingGoal  float64 `yaml:"daily_saving_goal"`
	StressThreshold  float64 `yaml:"stress_threshold"`
	SavingMultiplier int     `yaml:"saving_multiplier"`
}

// DisplayConfig controls how views render amounts.
type DisplayConfig struct {
	Currency string `yaml:"currency"`
}

// StorageConfig selects where expenses are kept.
type StorageConfig struct {
	Backend       string `yaml:"backend"`     // "csv" or "sqlite"
	SQLitePath    string `yaml:"sqlite_path"` // relative to the repo root
	SnapshotLimit int    `yaml:"snapshot_limit"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a ripple.yaml file from disk. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the standard budget profile.
func Default() *Config {
	return &Config{
		Profile: ProfileConfig{
			MonthlyBudget:    30000,
			DailySavingGoal:  1000,
			StressThreshold:  500,
			SavingMultiplier: 5,
		},
		Display: DisplayConfig{
			Currency: "₹",
		},
		Storage: StorageConfig{
			Backend:       BackendCSV,
			SQLitePath:    "ripple.db",
			SnapshotLimit: 50,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Ripple",
			AuthorEmail: "ripple@localhost",
		},
	}
}

// ApplyEnv overrides profile and storage settings from the environment.
// lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvMonthlyBudget, &c.Profile.MonthlyBudget},
		{EnvDailySavingGoal, &c.Profile.DailySavingGoal},
		{EnvStressThreshold, &c.Profile.StressThreshold},
	}
	for _, f := range floats {
		v, ok := lookup(f.key)
		if !ok || strings.TrimSpace(v) == "" {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("parsing %s: %w", f.key, err)
		}
		*f.dst = n
	}

	if v, ok := lookup(EnvSavingMultiplier); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", EnvSavingMultiplier, err)
		}
		c.Profile.SavingMultiplier = n
	}

	if v, ok := lookup(EnvStorageBackend); ok && strings.TrimSpace(v) != "" {
		c.Storage.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	return nil
}

// Validate checks the profile and storage settings.
func (c *Config) Validate() error {
	if _, err := c.MetricsProfile(); err != nil {
		return err
	}
	switch c.Storage.Backend {
	case BackendCSV, BackendSQLite:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, c.Storage.Backend)
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.SQLitePath == "" {
		return fmt.Errorf("%w: sqlite_path is required for the sqlite backend", ErrInvalidConfig)
	}
	if c.Storage.SnapshotLimit < 0 {
		return fmt.Errorf("%w: snapshot_limit must not be negative", ErrInvalidConfig)
	}
	return nil
}

// MetricsProfile converts the profile section for the metrics engine.
func (c *Config) MetricsProfile() (metrics.Profile, error) {
	p := metrics.Profile{
		MonthlyBudget:    decimal.NewFromFloat(c.Profile.MonthlyBudget),
		DailySavingGoal:  decimal.NewFromFloat(c.Profile.DailySavingGoal),
		StressThreshold:  decimal.NewFromFloat(c.Profile.StressThreshold),
		SavingMultiplier: int64(c.Profile.SavingMultiplier),
	}
	if err := p.Validate(); err != nil {
		return metrics.Profile{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return p, nil
}
