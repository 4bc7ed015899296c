package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENGINE_EXECUTION_MODE", "ENGINE_WORKERS", "CHART_OUTPUT_DIR", "CHART_PRICE_FILE", "CHART_GREEKS_FILE"} {
		t.Setenv(key, "")
	}

	cfg := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.Engine.ExecutionMode != "auto" {
		t.Errorf("Expected auto execution mode, got %s", cfg.Engine.ExecutionMode)
	}
	if cfg.Engine.Workers != runtime.NumCPU() {
		t.Errorf("Expected %d workers, got %d", runtime.NumCPU(), cfg.Engine.Workers)
	}
	if cfg.Charts.PricePath() != "option_vs_strike.png" {
		t.Errorf("Unexpected price chart path %s", cfg.Charts.PricePath())
	}
	if cfg.Charts.GreeksPath() != "greeks_vs_strike.png" {
		t.Errorf("Unexpected greeks chart path %s", cfg.Charts.GreeksPath())
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("ENGINE_EXECUTION_MODE", "sequential")
	t.Setenv("ENGINE_WORKERS", "3")
	t.Setenv("CHART_OUTPUT_DIR", "/tmp/charts")

	cfg := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml"))

	if cfg.Engine.ExecutionMode != "sequential" || cfg.Engine.Workers != 3 {
		t.Errorf("Expected sequential/3 from env, got %s/%d", cfg.Engine.ExecutionMode, cfg.Engine.Workers)
	}
	if cfg.Charts.PricePath() != "/tmp/charts/option_vs_strike.png" {
		t.Errorf("Unexpected price chart path %s", cfg.Charts.PricePath())
	}
}

func TestYAMLOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENGINE_EXECUTION_MODE", "sequential")

	path := writeYAML(t, `
server:
  port: "9100"
logging:
  log_level: debug
engine:
  execution_mode: parallel
  workers: 6
charts:
  output_dir: out
  greeks_file: g.png
  width_inches: 12
`)

	cfg := LoadFrom(path)

	if cfg.Port != "9100" {
		t.Errorf("Expected YAML port 9100, got %s", cfg.Port)
	}
	if cfg.Logging.LogLevel != "debug" {
		t.Errorf("Expected debug log level, got %s", cfg.Logging.LogLevel)
	}
	if cfg.Engine.ExecutionMode != "parallel" || cfg.Engine.Workers != 6 {
		t.Errorf("Expected parallel/6, got %s/%d", cfg.Engine.ExecutionMode, cfg.Engine.Workers)
	}
	if cfg.Charts.GreeksPath() != filepath.Join("out", "g.png") {
		t.Errorf("Unexpected greeks path %s", cfg.Charts.GreeksPath())
	}
	if cfg.Charts.PriceFile != "option_vs_strike.png" {
		t.Errorf("Unset YAML price_file should keep default, got %s", cfg.Charts.PriceFile)
	}
	if cfg.Charts.WidthInches != 12 {
		t.Errorf("Expected width 12, got %v", cfg.Charts.WidthInches)
	}
}

func TestInvalidExecutionModeFallsBackToAuto(t *testing.T) {
	path := writeYAML(t, "engine:\n  execution_mode: cuda\n")

	cfg := LoadFrom(path)

	if cfg.Engine.ExecutionMode != "auto" {
		t.Errorf("Expected auto for unknown mode, got %s", cfg.Engine.ExecutionMode)
	}
}

func TestBrokenYAMLKeepsDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	path := writeYAML(t, "server: [unterminated")

	cfg := LoadFrom(path)

	if cfg.Port != "8080" {
		t.Errorf("Expected default port on parse failure, got %s", cfg.Port)
	}
}
