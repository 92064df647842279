package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"WaveScan/internal/scanner"
	"WaveScan/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Database struct {
		CandlePath string `yaml:"candle_path"`
	} `yaml:"database"`
	Scan struct {
		Strategy  string   `yaml:"strategy"`
		Watchlist string   `yaml:"watchlist"`
		Symbols   []string `yaml:"symbols"`
		Workers   int      `yaml:"workers"`
	} `yaml:"scan"`
	Filter  scanner.Filter `yaml:"filter"`
	Results struct {
		SQLitePath       string `yaml:"sqlite_path"`
		CSVPath          string `yaml:"csv_path"`
		PromoteWatchlist string `yaml:"promote_watchlist"`
	} `yaml:"results"`
	Schedule struct {
		RescanCron string `yaml:"rescan_cron"`
		Watch      bool   `yaml:"watch"`
	} `yaml:"schedule"`
	Strategy strategy.Params `yaml:"strategy_params"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{Strategy: strategy.Defaults()}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("CANDLE_DB_PATH"); v != "" {
		cfg.Database.CandlePath = v
	}
	if v := os.Getenv("SCAN_STRATEGY"); v != "" {
		cfg.Scan.Strategy = v
	}
	if v := os.Getenv("SCAN_WATCHLIST"); v != "" {
		cfg.Scan.Watchlist = v
	}
	if v := os.Getenv("SCAN_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scan.Workers = n
		}
	}
	if v := os.Getenv("RESULTS_SQLITE_PATH"); v != "" {
		cfg.Results.SQLitePath = v
	}
	if v := os.Getenv("RESULTS_CSV_PATH"); v != "" {
		cfg.Results.CSVPath = v
	}
	if v := os.Getenv("RESCAN_CRON"); v != "" {
		cfg.Schedule.RescanCron = v
	}

	// Defaults
	if cfg.Database.CandlePath == "" {
		cfg.Database.CandlePath = "data/candles.db"
	}
	if cfg.Scan.Strategy == "" {
		cfg.Scan.Strategy = string(strategy.VariantPivotRetest)
	}
	if cfg.Scan.Workers == 0 {
		cfg.Scan.Workers = 4
	}
	if cfg.Schedule.RescanCron == "" {
		cfg.Schedule.RescanCron = "0 0 18 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Database.CandlePath == "" {
		return fmt.Errorf("database.candle_path is required")
	}
	known := false
	for _, v := range strategy.Variants() {
		if string(v) == c.Scan.Strategy {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("scan.strategy %q is not a registered variant", c.Scan.Strategy)
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be positive")
	}
	return nil
}
