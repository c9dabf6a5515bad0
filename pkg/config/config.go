package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultDatabase is the database name used when none is given
const DefaultDatabase = "sharknado_default"

// Config holds server configuration. Values from a config file are
// overridden by command-line flags.
type Config struct {
	// Listen is the TCP address for the document store protocol
	Listen string `yaml:"listen"`

	// MetricsListen is the HTTP address for /metrics and /healthz;
	// empty disables the endpoint
	MetricsListen string `yaml:"metrics_listen"`

	// DataDir holds the operation log and users.json
	DataDir string `yaml:"data_dir"`

	// Database is the database name; the log file is <database>.log
	Database string `yaml:"database"`

	Log LogConfig `yaml:"log"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Listen:   ":8080",
		DataDir:  ".",
		Database: DefaultDatabase,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "."
	}
	return cfg, nil
}
