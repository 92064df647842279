package config

import (
	"os"
	"path/filepath"
	"testing"

	"WaveScan/internal/strategy"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  candle_path: /tmp/candles.db
scan:
  strategy: double_retest
  symbols: [sh600000, sz000001]
strategy_params:
  min_reversal_pct: 4
  confirm_bullish_candle: false
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.CandlePath != "/tmp/candles.db" {
		t.Errorf("candle path %q", cfg.Database.CandlePath)
	}
	if cfg.Scan.Strategy != "double_retest" {
		t.Errorf("strategy %q", cfg.Scan.Strategy)
	}
	if len(cfg.Scan.Symbols) != 2 {
		t.Errorf("symbols %v", cfg.Scan.Symbols)
	}
	if cfg.Scan.Workers != 4 {
		t.Errorf("workers %d, want the default 4", cfg.Scan.Workers)
	}
	if cfg.Strategy.MinReversalPct != 4 {
		t.Errorf("min reversal %v, want the file value", cfg.Strategy.MinReversalPct)
	}
	if cfg.Strategy.ConfirmBullishCandle {
		t.Error("explicit false in the file must survive loading")
	}
	// untouched parameters keep their defaults
	if cfg.Strategy.MajorReversalPct != strategy.Defaults().MajorReversalPct {
		t.Errorf("major reversal %v, want the default", cfg.Strategy.MajorReversalPct)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scan.Strategy != string(strategy.VariantPivotRetest) {
		t.Errorf("strategy %q, want the default variant", cfg.Scan.Strategy)
	}
	if cfg.Database.CandlePath == "" {
		t.Error("expected a default candle path")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate defaults: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "database:\n  candle_path: /tmp/from_file.db\n")
	t.Setenv("CANDLE_DB_PATH", "/tmp/from_env.db")
	t.Setenv("SCAN_STRATEGY", "volume_double_long")
	t.Setenv("SCAN_WORKERS", "8")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.CandlePath != "/tmp/from_env.db" {
		t.Errorf("candle path %q, want the env override", cfg.Database.CandlePath)
	}
	if cfg.Scan.Strategy != "volume_double_long" {
		t.Errorf("strategy %q", cfg.Scan.Strategy)
	}
	if cfg.Scan.Workers != 8 {
		t.Errorf("workers %d", cfg.Scan.Workers)
	}
}

func TestValidate_UnknownStrategy(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Scan.Strategy = "momentum"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation to reject an unknown strategy")
	}
	cfg.Scan.Strategy = string(strategy.VariantDoubleRetest)
	cfg.Scan.Workers = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation to reject zero workers")
	}
}
