package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	DefaultConfigFile = "config.yaml"
	DefaultEnvFile    = ".env"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// EngineConfig represents computation engine configuration
type EngineConfig struct {
	ExecutionMode string `yaml:"execution_mode"` // auto, parallel, sequential
	Workers       int    `yaml:"workers"`        // Max concurrent contracts in parallel mode
}

// ChartsConfig controls where and how the strike sweep charts are written
type ChartsConfig struct {
	OutputDir    string  `yaml:"output_dir"`
	PriceFile    string  `yaml:"price_file"`
	GreeksFile   string  `yaml:"greeks_file"`
	WidthInches  float64 `yaml:"width_inches"`
	HeightInches float64 `yaml:"height_inches"`
}

// PricePath is the full path of the price-vs-strike chart
func (c ChartsConfig) PricePath() string {
	return filepath.Join(c.OutputDir, c.PriceFile)
}

// GreeksPath is the full path of the Greeks-vs-strike chart
func (c ChartsConfig) GreeksPath() string {
	return filepath.Join(c.OutputDir, c.GreeksFile)
}

type Config struct {
	// Server settings
	Port string

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
	// Engine settings
	Engine EngineConfig `yaml:"engine"`
	// Chart output settings
	Charts ChartsConfig `yaml:"charts"`
}

type YAMLConfig struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`

	Logging LoggingConfig `yaml:"logging"`
	Engine  EngineConfig  `yaml:"engine"`
	Charts  ChartsConfig  `yaml:"charts"`
}

// Load reads .env and config.yaml from the working directory
func Load() *Config {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom builds the config from environment defaults, then applies the YAML
// file at path on top. A missing or unparsable file leaves the defaults.
func LoadFrom(path string) *Config {
	// .env never overrides variables that are already set
	_ = godotenv.Load(DefaultEnvFile)

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Logging: LoggingConfig{
			LogLevel: getEnv("LOG_LEVEL", "info"),
			LogFile:  getEnv("LOG_FILE", "optionpricer.log"),
		},

		// Default engine configuration
		Engine: EngineConfig{
			ExecutionMode: getEnv("ENGINE_EXECUTION_MODE", "auto"),
			Workers:       getEnvInt("ENGINE_WORKERS", runtime.NumCPU()),
		},

		// Default chart configuration
		Charts: ChartsConfig{
			OutputDir:    getEnv("CHART_OUTPUT_DIR", "."),
			PriceFile:    getEnv("CHART_PRICE_FILE", "option_vs_strike.png"),
			GreeksFile:   getEnv("CHART_GREEKS_FILE", "greeks_vs_strike.png"),
			WidthInches:  getEnvFloat("CHART_WIDTH_INCHES", 10),
			HeightInches: getEnvFloat("CHART_HEIGHT_INCHES", 6),
		},
	}

	if yamlCfg := loadYAMLConfig(path); yamlCfg != nil {
		if yamlCfg.Server.Port != "" {
			cfg.Port = yamlCfg.Server.Port
		}

		// Logging configuration from YAML
		if yamlCfg.Logging.LogLevel != "" {
			cfg.Logging.LogLevel = yamlCfg.Logging.LogLevel
		}
		if yamlCfg.Logging.LogFile != "" {
			cfg.Logging.LogFile = yamlCfg.Logging.LogFile
		}

		// Engine configuration from YAML
		if yamlCfg.Engine.ExecutionMode != "" {
			cfg.Engine.ExecutionMode = yamlCfg.Engine.ExecutionMode
		}
		if yamlCfg.Engine.Workers > 0 {
			cfg.Engine.Workers = yamlCfg.Engine.Workers
		}

		// Chart configuration from YAML
		if yamlCfg.Charts.OutputDir != "" {
			cfg.Charts.OutputDir = yamlCfg.Charts.OutputDir
		}
		if yamlCfg.Charts.PriceFile != "" {
			cfg.Charts.PriceFile = yamlCfg.Charts.PriceFile
		}
		if yamlCfg.Charts.GreeksFile != "" {
			cfg.Charts.GreeksFile = yamlCfg.Charts.GreeksFile
		}
		if yamlCfg.Charts.WidthInches > 0 {
			cfg.Charts.WidthInches = yamlCfg.Charts.WidthInches
		}
		if yamlCfg.Charts.HeightInches > 0 {
			cfg.Charts.HeightInches = yamlCfg.Charts.HeightInches
		}
	}

	// Validate execution mode
	switch cfg.Engine.ExecutionMode {
	case "auto", "parallel", "sequential":
	default:
		cfg.Engine.ExecutionMode = "auto"
	}
	if cfg.Engine.Workers <= 0 {
		cfg.Engine.Workers = runtime.NumCPU()
	}

	return cfg
}

func loadYAMLConfig(path string) *YAMLConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		// Could not read config file - silently return nil
		return nil
	}

	var yamlCfg YAMLConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		// Could not parse config file - silently return nil
		return nil
	}

	return &yamlCfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
