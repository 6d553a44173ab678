// Package config loads the application configuration from YAML or JSON files
// with environment variable overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Storage  StorageConfig  `json:"storage"`
	Logging  LoggingConfig  `json:"logging"`
	Metrics  MetricsConfig  `json:"metrics"`
	Journal  JournalConfig  `json:"journal"`
	Display  DisplayConfig  `json:"display"`
	Vehicles VehiclesConfig `json:"vehicles"`
}

// Load reads the configuration at path, applies GARAGE_* environment
// overrides, then defaults and validation. An empty path skips the file and
// yields the default configuration, still overridable via environment.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional .env file, then environment overrides in
	// GARAGE_STORAGE__BACKEND=memory style.
	_ = godotenv.Load()
	if err := k.Load(env.Provider("GARAGE_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "garage_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Storage.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.Journal.SetDefaults()
	cfg.Display.SetDefaults()
	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Journal.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Display.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Vehicles.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file and no environment
// overrides are present.
func Default() *Config {
	cfg := &Config{}
	cfg.Storage.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.Journal.SetDefaults()
	cfg.Display.SetDefaults()
	return cfg
}
