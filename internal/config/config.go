// Package config loads the Deskulpt host configuration from YAML.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Config is the host configuration.
type Config struct {
	LogLevel   string    `yaml:"log_level"`
	PluginsDir string    `yaml:"plugins_dir"`
	WidgetsDir string    `yaml:"widgets_dir"`
	Database   string    `yaml:"database"`
	API        APIConfig `yaml:"api"`
}

// APIConfig configures the local HTTP API.
type APIConfig struct {
	Listen string `yaml:"listen"`
}

// Defaults returns the configuration used when a field is not set.
func Defaults() *Config {
	base := "."
	if home, err := os.UserHomeDir(); err == nil {
		base = filepath.Join(home, ".deskulpt")
	}
	return &Config{
		LogLevel:   "info",
		PluginsDir: filepath.Join(base, "plugins"),
		WidgetsDir: filepath.Join(base, "widgets"),
		Database:   filepath.Join(base, "settings.db"),
		API:        APIConfig{Listen: "127.0.0.1:8780"},
	}
}

// Load reads and parses configuration from path. ${VAR} placeholders are
// replaced with environment variable values before parsing; undefined
// variables are left as-is and fail validation.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path %q: %w", path, err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("config file not found: %s\n"+
			"Hint: Check the path or run with --config flag", absPath)
	}

	interpolated := interpolateEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(interpolated), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	defaults := Defaults()
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.PluginsDir == "" {
		cfg.PluginsDir = defaults.PluginsDir
	}
	if cfg.WidgetsDir == "" {
		cfg.WidgetsDir = defaults.WidgetsDir
	}
	if cfg.Database == "" {
		cfg.Database = defaults.Database
	}
	if cfg.API.Listen == "" {
		cfg.API.Listen = defaults.API.Listen
	}
}

func validate(cfg *Config) error {
	validLogLevels := map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[cfg.LogLevel] {
		return fmt.Errorf("log_level must be one of: trace, debug, info, warn, error (got %q)", cfg.LogLevel)
	}

	for field, value := range map[string]string{
		"plugins_dir": cfg.PluginsDir,
		"widgets_dir": cfg.WidgetsDir,
		"database":    cfg.Database,
		"api.listen":  cfg.API.Listen,
	} {
		if envVarPattern.MatchString(value) {
			matches := envVarPattern.FindStringSubmatch(value)
			return fmt.Errorf("%s: environment variable ${%s} is not set", field, matches[1])
		}
	}
	return nil
}

// interpolateEnv replaces ${VAR} with environment variable values.
// Undefined variables are left as-is.
func interpolateEnv(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if value, exists := os.LookupEnv(varName); exists {
			return value
		}
		return match
	})
}
